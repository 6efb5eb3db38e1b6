package launch

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/weft-ml/weft/internal/device"
)

// Option adjusts how a launch is issued.
type Option func(*settings)

type settings struct {
	stream *device.Stream
	cfg    Config
}

// WithStream enqueues the launch on the given stream instead of the
// process default stream.
func WithStream(s *device.Stream) Option {
	return func(set *settings) { set.stream = s }
}

// WithConfig overrides the worker fan-out configuration.
func WithConfig(c Config) Option {
	return func(set *settings) { set.cfg = c }
}

// Synchronous makes the launch wait for completion before returning.
// Launches are asynchronous by default: they return right after enqueue
// with the stream's last-error state.
func Synchronous() Option {
	return func(set *settings) { set.cfg.Synchronous = true }
}

// GridSize returns the number of blocks needed to cover n elements.
func GridSize(n int) int {
	return (n + BlockWorkSize - 1) / BlockWorkSize
}

// run sizes the grid, enqueues the block kernel on the stream and surfaces
// the stream's error state. n == 0 is a no-op: nothing is enqueued.
// Element counts beyond int32 range are a caller contract violation.
//
// A panic escaping a block kernel is converted into a launch error rather
// than tearing down the process, so a failed launch reports like any other
// device error.
func run(n int, kern blockKernel, opts []Option) error {
	set := settings{stream: device.Default(), cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&set)
	}

	if n == 0 {
		return nil
	}
	if n < 0 || n > math.MaxInt32 {
		panic(fmt.Sprintf("launch: element count %d out of int32 range", n))
	}

	blocks := GridSize(n)
	workers := set.cfg.workers()

	set.stream.Submit(func() error {
		g := new(errgroup.Group)
		g.SetLimit(workers)
		for b := 0; b < blocks; b++ {
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("launch: block %d: %v", b, r)
					}
				}()
				remaining := n - b*BlockWorkSize
				if remaining > BlockWorkSize {
					remaining = BlockWorkSize
				}
				kern(b, remaining)
				return nil
			})
		}
		return g.Wait()
	})

	if set.cfg.Synchronous {
		return set.stream.Synchronize()
	}
	return set.stream.Err()
}

// assertArity checks the plan's operand count against the function's
// introspected arity. A mismatch is a caller bug, not a runtime condition.
func assertArity(p *Plan, sig Signature) {
	if p.Arity() != sig.Arity {
		panic(fmt.Sprintf("launch: plan has %d inputs but function takes %d", p.Arity(), sig.Arity))
	}
}
