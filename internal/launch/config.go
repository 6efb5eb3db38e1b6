// Package launch implements the elementwise kernel-launch engine: grid
// sizing, strided offset computation, callable introspection, vectorization
// width selection and the vectorized/checked execution policies.
package launch

import "runtime"

// Launch geometry. A block is NumThreads conceptual threads each processing
// ThreadWorkSize elements, so BlockWorkSize is the work quantum the grid is
// sized against. The block kernels assume exactly this quantum; changing one
// constant without the others diverges the element indexing.
const (
	// NumThreads is the number of threads per block.
	NumThreads = 128

	// ThreadWorkSize is the number of elements processed per thread.
	ThreadWorkSize = 4

	// BlockWorkSize is the number of elements processed per block.
	BlockWorkSize = NumThreads * ThreadWorkSize

	// MaxWidth is the widest vectorized memory transaction, in elements.
	MaxWidth = 4
)

// Config controls how block kernels are fanned out over worker goroutines.
type Config struct {
	Workers     int  // max concurrent blocks; 0 means GOMAXPROCS
	Synchronous bool // wait for completion instead of returning after enqueue
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
	}
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
