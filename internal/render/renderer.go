// Package render turns a slide into frames: resolved background, positioned blocks with
// their entrance poses, and the active subtitle.
package render

import (
	"log/slog"

	"github.com/ivlev/slideplay/internal/background"
	"github.com/ivlev/slideplay/internal/media"
	"github.com/ivlev/slideplay/internal/scenario"
)

// Renderer renders slides of one document against its theme.
type Renderer struct {
	theme  scenario.Theme
	logger *slog.Logger
}

func New(theme scenario.Theme, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{theme: theme, logger: logger}
}

// Mounted is a slide on screen. Entrance animations are tracked per mount: mounting
// the same slide again replays them.
type Mounted struct {
	slide    *scenario.Slide
	paint    background.Paint
	surface  *background.Surface
	appeared map[string]float64
	chosen   string
}

// Mount prepares slide for display. A nil slide renders as an empty placeholder.
func (r *Renderer) Mount(slide *scenario.Slide) *Mounted {
	if slide == nil {
		slide = &scenario.Slide{}
	}
	paint := background.Resolve(slide.Background, r.theme)
	m := &Mounted{
		slide:    slide,
		paint:    paint,
		surface:  background.NewSurface(paint),
		appeared: make(map[string]float64),
	}
	if _, ok := slide.Content.(*scenario.Unsupported); ok || slide.Content == nil {
		r.logger.Warn("slide content not renderable, showing placeholder",
			"slide_id", slide.ID, "type", string(slide.Type))
	}
	return m
}

// Slide returns the mounted slide.
func (m *Mounted) Slide() *scenario.Slide {
	return m.slide
}

// MediaLoaded records that the background media finished loading. It reports true
// only the first time.
func (m *Mounted) MediaLoaded() bool {
	return m.surface.MarkLoaded()
}

// Choose records an answer on an interactive slide. It reports false when the slide
// has no such choice; a second answer replaces the first.
func (m *Mounted) Choose(id string) (scenario.Choice, bool) {
	ic, ok := m.slide.Content.(*scenario.InteractiveContent)
	if !ok {
		return scenario.Choice{}, false
	}
	for _, c := range ic.Choices {
		if c.ID == id {
			m.chosen = id
			return c, true
		}
	}
	return scenario.Choice{}, false
}

// Frame renders the slide t seconds into its timeline.
func (m *Mounted) Frame(t float64) View {
	v := View{
		SlideID:    m.slide.ID,
		Kind:       m.slide.Type,
		Time:       t,
		Background: m.paint,
		Revealed:   m.surface.Loaded(),
		Subtitle:   media.ActiveSubtitle(m.slide.Subtitles, t),
	}
	v.Blocks, v.Unsupported = layout(m.slide, t, m.chosen)

	for i := range v.Blocks {
		b := &v.Blocks[i]
		first, seen := m.appeared[b.ID]
		if !seen {
			first = t
			m.appeared[b.ID] = t
			b.Entering = true
		}
		b.Pose = PoseAt(b.anim, t-first)
	}
	return v
}
