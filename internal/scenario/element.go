package scenario

import "maps"

// ElementType selects how an element's Content string is interpreted.
type ElementType string

const (
	ElementText   ElementType = "text"
	ElementImage  ElementType = "image"
	ElementIcon   ElementType = "icon" // emoji or icon name
	ElementVideo  ElementType = "video"
	ElementLottie ElementType = "lottie"
)

// Position is in percent of the slide surface.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is in percent of the slide surface.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Animation is an entrance effect. Delay and Duration are seconds.
type Animation struct {
	Type     string  `json:"type"`
	Delay    float64 `json:"delay,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Element is a positioned visual primitive inside a scenario slide.
type Element struct {
	ID          string            `json:"id"`
	Type        ElementType       `json:"type"`
	Content     string            `json:"content"`
	Position    *Position         `json:"position,omitempty"`
	Size        *Size             `json:"size,omitempty"`
	Animation   *Animation        `json:"animation,omitempty"`
	TimingStart *float64          `json:"timingStart,omitempty"`
	TimingEnd   *float64          `json:"timingEnd,omitempty"`
	Style       map[string]string `json:"style,omitempty"`
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	out := e
	if e.Position != nil {
		p := *e.Position
		out.Position = &p
	}
	if e.Size != nil {
		sz := *e.Size
		out.Size = &sz
	}
	if e.Animation != nil {
		a := *e.Animation
		out.Animation = &a
	}
	out.TimingStart = cloneFloat(e.TimingStart)
	out.TimingEnd = cloneFloat(e.TimingEnd)
	if len(e.Style) > 0 {
		out.Style = maps.Clone(e.Style)
	} else {
		out.Style = nil
	}
	return out
}

// Valid reports whether the timing window is well formed.
func (e Element) Valid() bool {
	if e.TimingStart != nil && e.TimingEnd != nil {
		return *e.TimingStart <= *e.TimingEnd
	}
	return true
}

// VisibleAt reports whether the element is shown at playback time t (seconds).
// Missing bounds are open; both bounds are inclusive.
func (e Element) VisibleAt(t float64) bool {
	if e.TimingStart != nil && t < *e.TimingStart {
		return false
	}
	if e.TimingEnd != nil && t > *e.TimingEnd {
		return false
	}
	return true
}

// AppearsAt returns the time the element first becomes visible.
func (e Element) AppearsAt() float64 {
	if e.TimingStart != nil {
		return *e.TimingStart
	}
	return 0
}
