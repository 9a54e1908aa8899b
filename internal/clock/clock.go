// Package clock schedules the engine's callbacks. The engine is single-threaded: every
// callback runs on one goroutine, either a Loop's or the test driving a Fake.
package clock

import "time"

// Timer is a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented it from running.
	Stop() bool
}

// Clock is the engine's only source of time and deferred work.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Stop stops t if it is non-nil, so callers can keep nil handles for "nothing scheduled".
func Stop(t Timer) {
	if t != nil {
		t.Stop()
	}
}
