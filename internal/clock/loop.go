package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// Loop is a real-time Clock that runs every callback on the goroutine calling Run,
// giving the engine the cooperative single-threaded model it expects.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

// NewLoop creates a loop with room for buffer queued tasks.
func NewLoop(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues f to run on the loop. It reports false once the loop has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc fires f on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

// Run executes queued tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.tasks:
			f()
		}
	}
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop also suppresses a callback that already fired but is still queued on the loop.
func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.stopped.CompareAndSwap(false, true)
}
