// Package device provides the execution-device abstraction for the Weft
// launch engine: a device tag plus asynchronous work streams that kernel
// launches are enqueued on.
package device

// Device represents the compute device tensor data lives on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}
