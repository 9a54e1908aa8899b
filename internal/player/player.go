// Package player drives playback of a scenario: slide index, transitions, auto-advance,
// audio and completion. A Player is not safe for concurrent use; every method and every
// callback runs on the goroutine that owns its clock.
package player

import (
	"log/slog"
	"time"

	"github.com/ivlev/slideplay/internal/clock"
	"github.com/ivlev/slideplay/internal/media"
	"github.com/ivlev/slideplay/internal/render"
	"github.com/ivlev/slideplay/internal/scenario"
)

const (
	DefaultTransitionDuration = 600 * time.Millisecond
	DefaultSettleDelay        = 50 * time.Millisecond
	DefaultLoadingDelay       = 100 * time.Millisecond
	DefaultSwipeThreshold     = 50.0
)

// Options embeds a Player in its host.
type Options struct {
	InitialSlide int

	OnExit        func(PlaybackState)
	OnComplete    func(Result)
	OnSlideChange func(index int)
	OnSubtitle    func(index int, text string)

	// Clock is required. Every callback runs on its goroutine.
	Clock clock.Clock
	// Transports may be nil, in which case slides play without a timeline.
	Transports media.Factory
	Logger     *slog.Logger

	// TransitionDuration is overridden by a non-zero Settings.TransitionDuration.
	TransitionDuration time.Duration
	SettleDelay        time.Duration
	LoadingDelay       time.Duration
	SwipeThreshold     float64
}

// Player is the playback state machine for one session.
type Player struct {
	doc    *scenario.Scenario
	opts   Options
	clock  clock.Clock
	logger *slog.Logger

	renderer *render.Renderer
	mounted  *render.Mounted
	audio    *media.Synchronizer

	state        State
	index        int
	completed    map[int]struct{}
	startedAt    time.Time
	interactions []Interaction

	// gen invalidates callbacks scheduled for a previous slide or session phase.
	gen     uint64
	phase   clock.Timer
	advance clock.Timer
	// due is set when auto-advance fires before the entering transition settles.
	due bool
}

// New creates a player for doc. The document is treated as read-only.
func New(doc *scenario.Scenario, opts Options) *Player {
	if opts.Clock == nil {
		panic("player: Options.Clock is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TransitionDuration <= 0 {
		opts.TransitionDuration = DefaultTransitionDuration
	}
	if doc.Settings.TransitionDuration > 0 {
		opts.TransitionDuration = time.Duration(doc.Settings.TransitionDuration) * time.Millisecond
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.LoadingDelay <= 0 {
		opts.LoadingDelay = DefaultLoadingDelay
	}
	if opts.SwipeThreshold <= 0 {
		opts.SwipeThreshold = DefaultSwipeThreshold
	}

	p := &Player{
		doc:       doc,
		opts:      opts,
		clock:     opts.Clock,
		logger:    opts.Logger.With("scenario", doc.Title),
		renderer:  render.New(doc.Theme, opts.Logger),
		state:     Loading,
		index:     clampIndex(opts.InitialSlide, len(doc.Slides)),
		completed: make(map[int]struct{}),
	}
	p.audio = media.NewSynchronizer(media.Options{
		Transports: opts.Transports,
		Logger:     opts.Logger,
		OnSubtitle: func(text string) {
			if opts.OnSubtitle != nil && !p.finished() {
				opts.OnSubtitle(p.index, text)
			}
		},
	})
	return p
}

func clampIndex(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Start begins the loading phase. The initial slide is entered once it elapses.
func (p *Player) Start() {
	if p.state != Loading || p.phase != nil {
		return
	}
	p.startedAt = p.clock.Now()
	gen := p.gen
	p.phase = p.clock.AfterFunc(p.opts.LoadingDelay, func() {
		if gen != p.gen || p.state != Loading {
			return
		}
		p.phase = nil
		if len(p.doc.Slides) == 0 {
			p.complete()
			return
		}
		p.state = Ready
		p.enter(p.index)
	})
	p.logger.Debug("playback loading", "slides", len(p.doc.Slides), "initial", p.index)
}

// Next moves forward one slide, or completes the session on the last slide.
func (p *Player) Next() {
	if p.state != Ready {
		p.dropped("next")
		return
	}
	if p.index < len(p.doc.Slides)-1 {
		p.transitionTo(p.index + 1)
		return
	}
	p.complete()
}

// Previous moves back one slide. It is a no-op on the first slide.
func (p *Player) Previous() {
	if p.state != Ready {
		p.dropped("previous")
		return
	}
	if p.index > 0 {
		p.transitionTo(p.index - 1)
	}
}

// GoTo jumps to index regardless of the navigation mode. Out of range indexes and the
// current slide are ignored.
func (p *Player) GoTo(index int) {
	if p.state != Ready {
		p.dropped("goto")
		return
	}
	if index < 0 || index >= len(p.doc.Slides) || index == p.index {
		return
	}
	p.transitionTo(index)
}

// Exit ends the session from any state. Pending timers are cancelled and no further
// callbacks fire.
func (p *Player) Exit() {
	if p.state == Exited {
		return
	}
	p.cancel()
	p.state = Exited
	p.audio.Unmount()
	p.logger.Debug("playback exited", "slide", p.index)
	if p.opts.OnExit != nil {
		p.opts.OnExit(p.Snapshot())
	}
}

// Interact records a learner action on the current slide. A "choice" interaction also
// selects the answer on an interactive slide.
func (p *Player) Interact(kind, value string) {
	if p.finished() || p.state == Loading {
		return
	}
	slide := p.currentSlide()
	p.interactions = append(p.interactions, Interaction{
		SlideID:    slide.ID,
		SlideIndex: p.index,
		Kind:       kind,
		Value:      value,
		At:         p.clock.Now(),
	})
	if kind == "choice" && p.mounted != nil {
		if _, ok := p.mounted.Choose(value); !ok {
			p.logger.Debug("unknown choice", "slide_id", slide.ID, "choice", value)
		}
	}
}

// TogglePlay pauses or resumes the slide's audio.
func (p *Player) TogglePlay() {
	if p.finished() {
		return
	}
	p.audio.TogglePlay()
}

// ToggleMute flips the session mute flag.
func (p *Player) ToggleMute() {
	p.audio.ToggleMute()
}

// MediaLoaded tells the renderer the current background media is ready.
func (p *Player) MediaLoaded() {
	if p.mounted != nil {
		p.mounted.MediaLoaded()
	}
}

func (p *Player) State() State {
	return p.state
}

// Snapshot copies the observable state.
func (p *Player) Snapshot() PlaybackState {
	return PlaybackState{
		State:           p.state,
		CurrentSlide:    p.index,
		TotalSlides:     len(p.doc.Slides),
		IsPlaying:       p.audio.IsPlaying(),
		IsMuted:         p.audio.IsMuted(),
		AudioTime:       p.audio.CurrentTime(),
		Duration:        p.audio.Duration(),
		Subtitle:        p.audio.ActiveSubtitle(),
		IsTransitioning: p.state == Transitioning,
		CompletedSlides: sortedKeys(p.completed),
		StartedAt:       p.startedAt,
		Interactions:    append([]Interaction(nil), p.interactions...),
	}
}

// Frame renders the current slide at the current audio time. It is empty while loading.
func (p *Player) Frame() render.View {
	if p.mounted == nil {
		return render.View{}
	}
	return p.mounted.Frame(p.audio.CurrentTime())
}

func (p *Player) transitionTo(target int) {
	p.state = Transitioning
	clock.Stop(p.advance)
	p.advance = nil

	gen := p.gen
	p.phase = p.clock.AfterFunc(p.opts.TransitionDuration/2, func() {
		if gen != p.gen || p.state != Transitioning {
			return
		}
		p.enter(target)
		settled := p.gen
		p.phase = p.clock.AfterFunc(p.opts.SettleDelay, func() {
			if settled != p.gen || p.state != Transitioning {
				return
			}
			p.phase = nil
			p.state = Ready
			if p.due {
				p.due = false
				p.Next()
			}
		})
	})
}

// enter swaps in slide index: fresh render mount, fresh audio at time 0, rearmed
// auto-advance. Callbacks scheduled for the previous slide become stale.
func (p *Player) enter(index int) {
	p.gen++
	clock.Stop(p.advance)
	p.advance = nil
	p.due = false

	p.index = index
	p.completed[index] = struct{}{}

	slide := p.currentSlide()
	p.mounted = p.renderer.Mount(slide)
	p.audio.Mount(slide, p.autoplay(slide))

	if p.doc.Settings.AutoAdvance && slide.Duration != nil && *slide.Duration > 0 {
		gen := p.gen
		d := time.Duration(*slide.Duration * float64(time.Second))
		p.advance = p.clock.AfterFunc(d, func() {
			if gen != p.gen {
				return
			}
			p.advance = nil
			if p.state == Transitioning {
				p.due = true
				return
			}
			p.Next()
		})
	}

	p.logger.Debug("slide entered", "index", index, "slide_id", slide.ID, "type", string(slide.Type))
	if p.opts.OnSlideChange != nil {
		p.opts.OnSlideChange(index)
	}
}

// autoplay starts silent timelines unconditionally; audio follows the document and
// slide flags.
func (p *Player) autoplay(slide *scenario.Slide) bool {
	if slide.Audio == nil || slide.Audio.URL == "" {
		return true
	}
	return p.doc.Settings.AutoplayAudio || slide.Audio.Autoplay
}

func (p *Player) complete() {
	p.cancel()
	p.state = Completed
	p.audio.Unmount()

	res := Result{
		CurrentSlide:    p.index,
		TotalSlides:     len(p.doc.Slides),
		CompletedSlides: sortedKeys(p.completed),
		StartedAt:       p.startedAt,
		Interactions:    append([]Interaction(nil), p.interactions...),
	}
	p.logger.Info("playback completed", "visited", len(res.CompletedSlides), "total", res.TotalSlides,
		"interactions", len(res.Interactions))
	if p.opts.OnComplete != nil {
		p.opts.OnComplete(res)
	}
}

func (p *Player) cancel() {
	p.gen++
	clock.Stop(p.phase)
	clock.Stop(p.advance)
	p.phase, p.advance = nil, nil
}

func (p *Player) finished() bool {
	return p.state == Completed || p.state == Exited
}

func (p *Player) dropped(cmd string) {
	p.logger.Debug("navigation dropped", "command", cmd, "state", p.state.String())
}

func (p *Player) currentSlide() *scenario.Slide {
	if s := p.doc.At(p.index); s != nil {
		return s
	}
	return &scenario.Slide{}
}
