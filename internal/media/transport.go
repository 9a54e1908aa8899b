package media

import (
	"errors"

	"github.com/ivlev/slideplay/internal/scenario"
)

var (
	// ErrAutoplayBlocked is returned by Play when the environment refuses playback
	// without a user gesture.
	ErrAutoplayBlocked = errors.New("autoplay blocked")
	// ErrClosed is returned by Play on a closed transport.
	ErrClosed = errors.New("transport closed")
)

// Event is something a transport reports to its listeners.
type Event int

const (
	EventTimeUpdate Event = iota
	EventPlay
	EventPause
	EventEnded
)

func (e Event) String() string {
	switch e {
	case EventTimeUpdate:
		return "timeupdate"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Listener receives transport events with the transport time in seconds.
type Listener func(ev Event, t float64)

// Transport is one audio (or silent) playback head.
type Transport interface {
	Play() error
	Pause()
	SetMuted(muted bool)
	CurrentTime() float64
	Duration() float64
	// Subscribe registers l and returns a function that removes it.
	Subscribe(l Listener) (unsubscribe func())
	Close()
}

// Factory creates the transport for a slide being mounted.
type Factory func(slide *scenario.Slide) Transport

// NaturalLength is how long a slide's timed content runs without audio: its declared
// duration, else the latest subtitle or element end.
func NaturalLength(slide *scenario.Slide) float64 {
	if slide == nil {
		return 0
	}
	if slide.Duration != nil && *slide.Duration > 0 {
		return *slide.Duration
	}
	length := 0.0
	for _, sub := range slide.Subtitles {
		length = max(length, sub.End)
	}
	if stage, ok := slide.Content.(*scenario.StageContent); ok {
		for _, el := range stage.Elements {
			if el.TimingEnd != nil {
				length = max(length, *el.TimingEnd)
			} else if el.TimingStart != nil {
				length = max(length, *el.TimingStart)
			}
		}
	}
	return length
}
