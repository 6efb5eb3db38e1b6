package device

import (
	"fmt"
	"sync"
)

// Stream is an ordered, asynchronous work queue. Tasks submitted to a
// stream run one at a time in submission order on a dedicated goroutine,
// mirroring the completion-ordering guarantee of a device queue.
//
// A task that returns an error (or panics) sets the stream's last-error
// state; Err is the last-error query consulted right after each launch.
type Stream struct {
	tasks chan func() error
	wg    sync.WaitGroup

	mu      sync.Mutex
	lastErr error
	closed  bool

	closeOnce sync.Once
}

const streamQueueDepth = 64

// NewStream creates a stream and starts its worker goroutine.
func NewStream() *Stream {
	s := &Stream{
		tasks: make(chan func() error, streamQueueDepth),
	}
	go s.worker()
	return s
}

var (
	defaultStream     *Stream
	defaultStreamOnce sync.Once
)

// Default returns the process-wide default stream, creating it on first use.
func Default() *Stream {
	defaultStreamOnce.Do(func() {
		defaultStream = NewStream()
	})
	return defaultStream
}

func (s *Stream) worker() {
	for task := range s.tasks {
		s.run(task)
		s.wg.Done()
	}
}

// run executes one task, converting a panic into a recorded launch error.
func (s *Stream) run(task func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.setErr(fmt.Errorf("stream: task panic: %v", r))
		}
	}()
	if err := task(); err != nil {
		s.setErr(err)
	}
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	if s.lastErr == nil {
		s.lastErr = err
	}
	s.mu.Unlock()
}

// Submit enqueues a task. It never blocks the caller beyond queue
// backpressure and returns immediately once enqueued. Submitting to a
// closed stream is a caller bug and panics.
func (s *Stream) Submit(task func() error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		panic("stream: Submit on closed stream")
	}
	s.wg.Add(1)
	s.mu.Unlock()
	s.tasks <- task
}

// Synchronize waits for every submitted task to complete and returns the
// stream's last error, if any.
func (s *Stream) Synchronize() error {
	s.wg.Wait()
	return s.Err()
}

// Err returns the last error recorded on the stream without waiting.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErr resets the stream's last-error state.
func (s *Stream) ClearErr() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// Close drains the stream and stops its worker. The default stream is
// never closed.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.wg.Wait()
		close(s.tasks)
	})
}
