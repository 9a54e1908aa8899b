package background

import (
	"fmt"
	"strings"

	"github.com/ivlev/slideplay/internal/scenario"
)

// Kind mirrors scenario.BackgroundType after resolution.
type Kind string

const (
	KindSolid    Kind = "solid"
	KindGradient Kind = "gradient"
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
)

// DefaultDirection is used for gradients with a missing or unknown direction.
const DefaultDirection = "to-bottom"

// fallbackMediaColor fills image/video paints until the media is available.
const fallbackMediaColor = "#111827"

var directions = map[string]float64{
	"to-top":          0,
	"to-top-right":    45,
	"to-right":        90,
	"to-bottom-right": 135,
	"to-bottom":       180,
	"to-bottom-left":  225,
	"to-left":         270,
	"to-top-left":     315,
}

// Paint is the resolved description of a slide surface.
type Paint struct {
	Kind     Kind     `json:"kind"`
	Color    string   `json:"color,omitempty"` // solid fill, or the fallback under media
	Stops    []string `json:"stops,omitempty"` // gradient colors, evenly spaced
	Angle    float64  `json:"angle,omitempty"` // degrees, CSS convention (0 = towards the top)
	Radial   bool     `json:"radial,omitempty"`
	MediaURL string   `json:"mediaUrl,omitempty"`
	Overlay  string   `json:"overlay,omitempty"` // composited above image/video media
	Opacity  float64  `json:"opacity"`
}

// Resolve maps a slide background to a paint. The slide's background wins, then the
// theme background, then a solid fill in the theme's primary color.
func Resolve(bg *scenario.Background, theme scenario.Theme) Paint {
	if bg == nil {
		bg = theme.Background
	}
	if bg == nil {
		return Paint{Kind: KindSolid, Color: orDefault(theme.PrimaryColor, "#000000"), Opacity: 1}
	}

	p := Paint{Opacity: 1}
	if bg.Opacity != nil {
		p.Opacity = clamp01(*bg.Opacity)
	}

	switch bg.Type {
	case scenario.BackgroundGradient:
		p.Kind = KindGradient
		p.Stops = gradientStops(bg.Colors, theme)
		p.Color = p.Stops[0]
		p.Angle, p.Radial = Direction(bg.Direction)
	case scenario.BackgroundImage, scenario.BackgroundVideo:
		p.Kind = KindImage
		if bg.Type == scenario.BackgroundVideo {
			p.Kind = KindVideo
		}
		p.MediaURL = bg.URL
		p.Overlay = bg.Overlay
		p.Color = orDefault(bg.Color, fallbackMediaColor)
	default: // solid
		p.Kind = KindSolid
		p.Color = orDefault(bg.Color, orDefault(theme.PrimaryColor, "#000000"))
	}
	return p
}

// Direction resolves a named gradient direction to an angle, or radial.
// Unknown names fall back to DefaultDirection.
func Direction(name string) (angle float64, radial bool) {
	if name == "radial" {
		return 0, true
	}
	if a, ok := directions[name]; ok {
		return a, false
	}
	return directions[DefaultDirection], false
}

func gradientStops(colors []string, theme scenario.Theme) []string {
	var stops []string
	for _, c := range colors {
		if strings.TrimSpace(c) != "" {
			stops = append(stops, c)
		}
	}
	switch len(stops) {
	case 0:
		return []string{orDefault(theme.PrimaryColor, "#000000"), orDefault(theme.SecondaryColor, "#000000")}
	case 1:
		return []string{stops[0], stops[0]}
	}
	return stops
}

// CSS renders the paint as a CSS declaration block for web hosts.
func (p Paint) CSS() string {
	var b strings.Builder
	switch p.Kind {
	case KindGradient:
		if p.Radial {
			fmt.Fprintf(&b, "background: radial-gradient(circle, %s);", strings.Join(p.Stops, ", "))
		} else {
			fmt.Fprintf(&b, "background: linear-gradient(%gdeg, %s);", p.Angle, strings.Join(p.Stops, ", "))
		}
	case KindImage:
		if p.Overlay != "" {
			fmt.Fprintf(&b, "background: linear-gradient(%s, %s), url(%q) center / cover no-repeat, %s;", p.Overlay, p.Overlay, p.MediaURL, p.Color)
		} else {
			fmt.Fprintf(&b, "background: url(%q) center / cover no-repeat, %s;", p.MediaURL, p.Color)
		}
	case KindVideo:
		// The video itself is a separate layer; the declaration paints the fallback
		// and the overlay sits in its own layer above the media.
		fmt.Fprintf(&b, "background-color: %s;", p.Color)
	default:
		fmt.Fprintf(&b, "background-color: %s;", p.Color)
	}
	if p.Opacity < 1 {
		fmt.Fprintf(&b, " opacity: %g;", p.Opacity)
	}
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
