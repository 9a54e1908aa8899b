package clock

import (
	"container/heap"
	"time"
)

// Fake is a manually advanced Clock for tests. Callbacks run synchronously inside
// Advance, in due-time order. It is not safe for concurrent use.
type Fake struct {
	now    time.Time
	seq    int
	timers timerHeap
}

// NewFake starts a fake clock at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{clock: f, when: f.now.Add(d), seq: f.seq, fn: fn, index: -1}
	heap.Push(&f.timers, t)
	return t
}

// Advance moves time forward by d, firing every timer that falls due, including
// timers scheduled by callbacks during the advance.
func (f *Fake) Advance(d time.Duration) {
	target := f.now.Add(d)
	for len(f.timers) > 0 && !f.timers[0].when.After(target) {
		t := heap.Pop(&f.timers).(*fakeTimer)
		if t.when.After(f.now) {
			f.now = t.when
		}
		t.fn()
	}
	f.now = target
}

// Pending counts timers that have not fired or been stopped.
func (f *Fake) Pending() int {
	return len(f.timers)
}

type fakeTimer struct {
	clock *Fake
	when  time.Time
	seq   int
	fn    func()
	index int
}

func (t *fakeTimer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.timers, t.index)
	return true
}

type timerHeap []*fakeTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*fakeTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
