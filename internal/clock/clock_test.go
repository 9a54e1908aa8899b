package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeFiresInOrder(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var fired []string

	f.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	f.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	f.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })

	f.Advance(9 * time.Millisecond)
	assert.Empty(t, fired)

	f.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 34*time.Millisecond, f.Now().Sub(time.Unix(0, 0)))
	assert.Zero(t, f.Pending())
}

func TestFakeChainedTimers(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var at []time.Duration
	start := f.Now()

	f.AfterFunc(10*time.Millisecond, func() {
		at = append(at, f.Now().Sub(start))
		f.AfterFunc(10*time.Millisecond, func() {
			at = append(at, f.Now().Sub(start))
		})
	})

	f.Advance(time.Second)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, at)
}

func TestFakeStop(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	ran := false
	timer := f.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	f.Advance(2 * time.Second)
	assert.False(t, ran)

	Stop(nil)
}

func TestLoopRunsCallbacksOnLoop(t *testing.T) {
	l := NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	fired := make(chan struct{})
	stopped := l.AfterFunc(5*time.Millisecond, func() { t.Error("stopped timer fired") })
	require.True(t, stopped.Stop())

	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.False(t, l.Post(func() {}))
}
