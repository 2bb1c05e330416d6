// Package pool runs tasks on a fixed set of long-lived workers shared by the
// whole process.
package pool

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned when submitting to a pool that has been closed.
var ErrClosed = errors.New("pool is closed")

// PanicError is reported for a task that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Outcome is the completion record of one task passed to Run.
type Outcome struct {
	Index int
	Err   error
}

// Pool is a fixed-size worker pool. Create it once at startup and Close it at
// shutdown; it is safe for concurrent use.
type Pool struct {
	size   int
	jobs   chan func()
	group  *errgroup.Group
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// DefaultSize is the number of logical CPUs.
func DefaultSize() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// New starts a pool with size workers. size <= 0 uses DefaultSize.
func New(size int, logger *zap.Logger) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pool{
		size:   size,
		jobs:   make(chan func(), size),
		group:  new(errgroup.Group),
		logger: logger,
	}
	for i := 0; i < size; i++ {
		p.group.Go(func() error {
			for job := range p.jobs {
				job()
			}
			return nil
		})
	}
	logger.Debug("worker pool started", zap.Int("workers", size))
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Submit queues fn for execution. It blocks while every worker is busy and
// the queue is full. A panic in fn is recovered and logged.
func (p *Pool) Submit(fn func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	p.jobs <- func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("task panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			}
		}()
		fn()
	}
	return nil
}

// Run submits every task and returns a channel that yields one Outcome per
// task in completion order. The channel is closed after the last outcome.
// A panicking task is reported with a *PanicError.
func (p *Pool) Run(tasks ...func() error) <-chan Outcome {
	out := make(chan Outcome, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		err := p.Submit(func() {
			defer wg.Done()
			out <- Outcome{Index: i, Err: protect(task)}
		})
		if err != nil {
			wg.Done()
			out <- Outcome{Index: i, Err: err}
		}
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func protect(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return task()
}

// Close stops accepting tasks, lets queued tasks finish and waits for every
// worker to exit. Closing twice is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	err := p.group.Wait()
	p.logger.Debug("worker pool stopped")
	return err
}
