//go:build windows

package webgpu

import "fmt"

// WGSL shader templates for fixed elementwise operations. Every shader
// shares the same skeleton: a bounds check against the element count
// followed by one expression per work item, so the templates are built
// from the op expression alone.

// workgroupSize is the number of threads per workgroup; the dispatch sizes
// the grid as ceil(n / workgroupSize), the same quantum rule the CPU
// driver uses for its blocks.
const workgroupSize = 256

// binaryShader renders the shader for result[i] = expr(a[i], b[i]).
func binaryShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = %s;
    }
}
`, workgroupSize, expr)
}

// unaryShader renders the shader for result[i] = expr(x[i]).
func unaryShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = %s;
    }
}
`, workgroupSize, expr)
}

// Supported fixed operations.
var binaryExprs = map[string]string{
	"add": "a[idx] + b[idx]",
	"sub": "a[idx] - b[idx]",
	"mul": "a[idx] * b[idx]",
	"div": "a[idx] / b[idx]",
}

var unaryExprs = map[string]string{
	"neg":  "-x[idx]",
	"exp":  "exp(x[idx])",
	"log":  "log(x[idx])",
	"sqrt": "sqrt(x[idx])",
}
