// Package media keeps a slide's audio transport and its subtitles in step.
package media

import (
	"log/slog"

	"github.com/ivlev/slideplay/internal/scenario"
)

// Options configures a Synchronizer. Hooks run on the engine goroutine.
type Options struct {
	Transports Factory
	Logger     *slog.Logger

	OnTimeUpdate func(t float64)
	OnSubtitle   func(text string)
	OnEnded      func()
}

// Synchronizer owns the transport of the currently mounted slide.
type Synchronizer struct {
	opts   Options
	logger *slog.Logger

	slide       *scenario.Slide
	transport   Transport
	unsubscribe func()

	currentTime float64
	playing     bool
	muted       bool
	ended       bool
	subtitle    string
}

func NewSynchronizer(opts Options) *Synchronizer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{opts: opts, logger: logger}
}

// Mount detaches the previous slide and attaches a fresh transport for slide, starting
// at time 0. With autoplay set it tries to start playback; a refusal leaves it paused.
func (s *Synchronizer) Mount(slide *scenario.Slide, autoplay bool) {
	s.Unmount()

	s.slide = slide
	s.currentTime = 0
	s.playing = false
	s.ended = false
	s.subtitle = ""
	if slide != nil {
		s.subtitle = ActiveSubtitle(slide.Subtitles, 0)
	}

	if s.opts.Transports == nil {
		return
	}
	tr := s.opts.Transports(slide)
	if tr == nil {
		return
	}
	s.transport = tr
	s.unsubscribe = tr.Subscribe(func(ev Event, t float64) {
		if s.transport != tr {
			return
		}
		s.handle(ev, t)
	})
	tr.SetMuted(s.muted)

	if autoplay {
		s.Play()
	}
}

// Unmount detaches listeners and closes the transport. No hook fires afterwards.
func (s *Synchronizer) Unmount() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.transport != nil {
		s.transport.Close()
		s.transport = nil
	}
	s.playing = false
}

// Play starts playback. It is a no-op while playing; a refusal is logged and swallowed.
func (s *Synchronizer) Play() {
	if s.transport == nil || s.playing {
		return
	}
	if err := s.transport.Play(); err != nil {
		s.logger.Debug("playback refused, staying paused", "slide_id", s.slideID(), "error", err)
		return
	}
	s.playing = true
	s.ended = false
}

// Pause stops playback. It is a no-op while paused.
func (s *Synchronizer) Pause() {
	if s.transport == nil || !s.playing {
		return
	}
	s.transport.Pause()
	s.playing = false
}

// TogglePlay flips between Play and Pause.
func (s *Synchronizer) TogglePlay() {
	if s.playing {
		s.Pause()
		return
	}
	s.Play()
}

// SetMuted sets the mute flag. The flag survives slide changes.
func (s *Synchronizer) SetMuted(muted bool) {
	if s.muted == muted {
		return
	}
	s.muted = muted
	if s.transport != nil {
		s.transport.SetMuted(muted)
	}
}

func (s *Synchronizer) ToggleMute() {
	s.SetMuted(!s.muted)
}

func (s *Synchronizer) CurrentTime() float64 { return s.currentTime }
func (s *Synchronizer) IsPlaying() bool      { return s.playing }
func (s *Synchronizer) IsMuted() bool        { return s.muted }

// Duration is the mounted transport's length in seconds, 0 when nothing is mounted.
func (s *Synchronizer) Duration() float64 {
	if s.transport == nil {
		return 0
	}
	return s.transport.Duration()
}

// ActiveSubtitle is the subtitle selected for the current time.
func (s *Synchronizer) ActiveSubtitle() string { return s.subtitle }

func (s *Synchronizer) handle(ev Event, t float64) {
	switch ev {
	case EventTimeUpdate:
		s.currentTime = t
		if s.slide != nil {
			if text := ActiveSubtitle(s.slide.Subtitles, t); text != s.subtitle {
				s.subtitle = text
				if s.opts.OnSubtitle != nil {
					s.opts.OnSubtitle(text)
				}
			}
		}
		if s.opts.OnTimeUpdate != nil {
			s.opts.OnTimeUpdate(t)
		}
	case EventPlay:
		if !s.playing {
			s.playing = true
			s.ended = false
		}
	case EventPause:
		s.playing = false
	case EventEnded:
		s.playing = false
		if s.ended {
			return
		}
		s.ended = true
		s.logger.Debug("playback ended", "slide_id", s.slideID(), "at", t)
		if s.opts.OnEnded != nil {
			s.opts.OnEnded()
		}
	}
}

func (s *Synchronizer) slideID() string {
	if s.slide == nil {
		return ""
	}
	return s.slide.ID
}
