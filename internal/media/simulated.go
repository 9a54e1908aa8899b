package media

import (
	"time"

	"github.com/ivlev/slideplay/internal/clock"
	"github.com/ivlev/slideplay/internal/scenario"
)

// DefaultInterval is how often a simulated transport reports its position.
const DefaultInterval = 250 * time.Millisecond

// SimulatedOptions configures a SimulatedTransport.
type SimulatedOptions struct {
	Duration float64 // seconds
	Interval time.Duration
	Loop     bool
	// BlockAutoplay makes Play fail with ErrAutoplayBlocked until Unblock is called.
	BlockAutoplay bool
}

// SimulatedTransport is a clock-driven playback head with no real audio output. It is
// used for slides without audio, headless playback and tests.
type SimulatedTransport struct {
	clock    clock.Clock
	interval time.Duration
	duration float64
	loop     bool
	blocked  bool

	pos     float64
	playing bool
	muted   bool
	closed  bool
	tick    clock.Timer

	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// NewSimulated creates a paused transport positioned at 0.
func NewSimulated(c clock.Clock, opts SimulatedOptions) *SimulatedTransport {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &SimulatedTransport{
		clock:    c,
		interval: interval,
		duration: max(opts.Duration, 0),
		loop:     opts.Loop,
		blocked:  opts.BlockAutoplay,
	}
}

// Unblock lifts autoplay blocking, as a user gesture would.
func (t *SimulatedTransport) Unblock() {
	t.blocked = false
}

func (t *SimulatedTransport) Play() error {
	if t.closed {
		return ErrClosed
	}
	if t.blocked {
		return ErrAutoplayBlocked
	}
	if t.playing {
		return nil
	}
	if t.pos >= t.duration {
		t.pos = 0
	}
	t.playing = true
	t.emit(EventPlay)
	t.schedule()
	return nil
}

func (t *SimulatedTransport) Pause() {
	if !t.playing || t.closed {
		return
	}
	t.playing = false
	clock.Stop(t.tick)
	t.tick = nil
	t.emit(EventPause)
}

func (t *SimulatedTransport) SetMuted(muted bool) {
	t.muted = muted
}

// Muted reports the mute flag; a simulated transport produces no sound either way.
func (t *SimulatedTransport) Muted() bool {
	return t.muted
}

// Playing reports whether the head is advancing.
func (t *SimulatedTransport) Playing() bool {
	return t.playing
}

func (t *SimulatedTransport) CurrentTime() float64 {
	return t.pos
}

func (t *SimulatedTransport) Duration() float64 {
	return t.duration
}

func (t *SimulatedTransport) Subscribe(l Listener) func() {
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, subscription{id: id, fn: l})
	return func() {
		for i, s := range t.listeners {
			if s.id == id {
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// Close stops playback and drops every listener. Further calls are no-ops.
func (t *SimulatedTransport) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.playing = false
	clock.Stop(t.tick)
	t.tick = nil
	t.listeners = nil
}

func (t *SimulatedTransport) schedule() {
	t.tick = t.clock.AfterFunc(t.interval, t.advance)
}

func (t *SimulatedTransport) advance() {
	if !t.playing || t.closed {
		return
	}
	t.pos += t.interval.Seconds()
	if t.pos < t.duration {
		t.emit(EventTimeUpdate)
		t.schedule()
		return
	}

	t.pos = t.duration
	t.emit(EventTimeUpdate)
	if t.closed {
		return
	}
	if t.loop && t.duration > 0 {
		t.pos = 0
		t.emit(EventTimeUpdate)
		t.schedule()
		return
	}
	t.playing = false
	t.tick = nil
	t.emit(EventEnded)
}

func (t *SimulatedTransport) emit(ev Event) {
	pos := t.pos
	for _, s := range append([]subscription(nil), t.listeners...) {
		s.fn(ev, pos)
	}
}

// Simulator builds simulated transports for slides.
type Simulator struct {
	Clock    clock.Clock
	Interval time.Duration
	// AudioDuration resolves an audio URL to its length in seconds. Zero or a nil func
	// falls back to the slide's natural length.
	AudioDuration func(url string) float64
	// BlockAutoplay applies to slides with audio only; silent timelines always start.
	BlockAutoplay bool
}

// Factory returns a Factory producing one SimulatedTransport per mounted slide.
func (s Simulator) Factory() Factory {
	return func(slide *scenario.Slide) Transport {
		opts := SimulatedOptions{
			Duration: NaturalLength(slide),
			Interval: s.Interval,
		}
		if slide != nil && slide.Audio != nil && slide.Audio.URL != "" {
			if s.AudioDuration != nil {
				if d := s.AudioDuration(slide.Audio.URL); d > 0 {
					opts.Duration = d
				}
			}
			opts.Loop = slide.Audio.Loop
			opts.BlockAutoplay = s.BlockAutoplay
		}
		return NewSimulated(s.Clock, opts)
	}
}
