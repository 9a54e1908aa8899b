package scenario

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SlideType is the variant tag of a slide.
type SlideType string

const (
	TypeTitle       SlideType = "title"
	TypeContent     SlideType = "content"
	TypeQuote       SlideType = "quote"
	TypeVideo       SlideType = "video"
	TypeStats       SlideType = "stats"
	TypeCarousel    SlideType = "carousel"
	TypeScenario    SlideType = "scenario"
	TypeInteractive SlideType = "interactive"
	TypeTimeline    SlideType = "timeline"
	TypeGallery     SlideType = "gallery"
	TypeComparison  SlideType = "comparison"
)

// SlideTypes lists every tag this version understands, in editor menu order.
var SlideTypes = []SlideType{
	TypeTitle, TypeContent, TypeQuote, TypeVideo, TypeStats, TypeCarousel,
	TypeScenario, TypeInteractive, TypeTimeline, TypeGallery, TypeComparison,
}

// Known reports whether t is one of SlideTypes.
func (t SlideType) Known() bool {
	return slices.Contains(SlideTypes, t)
}

// BackgroundType selects the paint of a Background.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
	BackgroundVideo    BackgroundType = "video"
)

// Background describes what is painted behind a slide.
type Background struct {
	Type      BackgroundType `json:"type"`
	Color     string         `json:"color,omitempty"`
	Colors    []string       `json:"colors,omitempty"`
	Direction string         `json:"direction,omitempty"`
	URL       string         `json:"url,omitempty"`
	Overlay   string         `json:"overlay,omitempty"`
	Opacity   *float64       `json:"opacity,omitempty"`
}

// Clone returns a deep copy; nil stays nil.
func (b *Background) Clone() *Background {
	if b == nil {
		return nil
	}
	out := *b
	out.Colors = cloneList(b.Colors)
	out.Opacity = cloneFloat(b.Opacity)
	return &out
}

// Audio is the narration track attached to a slide.
type Audio struct {
	URL      string   `json:"url"`
	Autoplay bool     `json:"autoplay,omitempty"`
	Loop     bool     `json:"loop,omitempty"`
	Volume   *float64 `json:"volume,omitempty"`
}

// Subtitle is one caption window in seconds.
type Subtitle struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Slide is one screen of the lesson. Content carries the variant payload and
// always matches Type; unknown or malformed payloads decode to *Unsupported.
type Slide struct {
	ID         string
	Type       SlideType
	Order      int
	Duration   *float64 // seconds, drives auto-advance
	Background *Background
	Audio      *Audio
	Subtitles  []Subtitle
	Content    Content
}

// NewSlide returns a slide of the given type with the default payload an editor starts from.
func NewSlide(t SlideType, id string) Slide {
	return Slide{ID: id, Type: t, Content: defaultContent(t)}
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	out.Duration = cloneFloat(s.Duration)
	out.Background = s.Background.Clone()
	if s.Audio != nil {
		a := *s.Audio
		a.Volume = cloneFloat(s.Audio.Volume)
		out.Audio = &a
	}
	out.Subtitles = cloneList(s.Subtitles)
	if s.Content != nil {
		out.Content = s.Content.clone()
	}
	return out
}

// slideHeader holds the fields shared by every variant.
type slideHeader struct {
	ID         string      `json:"id"`
	Type       SlideType   `json:"type"`
	Order      int         `json:"order"`
	Duration   *float64    `json:"duration,omitempty"`
	Background *Background `json:"background,omitempty"`
	Audio      *Audio      `json:"audio,omitempty"`
	Subtitles  []Subtitle  `json:"subtitles,omitempty"`
}

var headerKeys = []string{"id", "type", "order", "duration", "background", "audio", "subtitles"}

// MarshalJSON flattens the header and the variant payload into one object.
func (s Slide) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}

	if s.Content != nil {
		var payload any = s.Content
		if u, ok := s.Content.(*Unsupported); ok {
			payload = u.Fields
		}
		if err := mergeObject(fields, payload); err != nil {
			return nil, fmt.Errorf("slide %s payload: %w", s.ID, err)
		}
	}

	header := slideHeader{
		ID:         s.ID,
		Type:       s.Type,
		Order:      s.Order,
		Duration:   s.Duration,
		Background: s.Background,
		Audio:      s.Audio,
		Subtitles:  s.Subtitles,
	}
	if header.Type == "" && s.Content != nil {
		header.Type = s.Content.Type()
	}
	if err := mergeObject(fields, header); err != nil {
		return nil, fmt.Errorf("slide %s header: %w", s.ID, err)
	}
	return json.Marshal(fields)
}

// UnmarshalJSON decodes the header, then the payload selected by the type tag.
func (s *Slide) UnmarshalJSON(data []byte) error {
	var h slideHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	content, err := decodeContent(h.Type, data)
	if err != nil {
		return err
	}
	*s = Slide{
		ID:         h.ID,
		Type:       h.Type,
		Order:      h.Order,
		Duration:   h.Duration,
		Background: h.Background,
		Audio:      h.Audio,
		Subtitles:  h.Subtitles,
		Content:    content,
	}
	return nil
}

// mergeObject marshals v and copies its top-level keys into dst, overwriting.
func mergeObject(dst map[string]json.RawMessage, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	for k, val := range obj {
		dst[k] = val
	}
	return nil
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// cloneList copies s. An empty list becomes nil, which is how an absent list decodes.
func cloneList[S ~[]E, E any](s S) S {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
