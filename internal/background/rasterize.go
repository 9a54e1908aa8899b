package background

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/ivlev/slideplay/internal/system"
)

// Rasterize paints p into a w×h image taken from the shared image pool; callers that
// are done with it may return it with system.PutImage. Media paints render their
// fallback color with the overlay composited on top.
func Rasterize(p Paint, w, h int) *image.RGBA {
	rect := image.Rect(0, 0, w, h)
	dst := system.GetImage(rect)

	switch p.Kind {
	case KindGradient:
		fillGradient(dst, p)
	default:
		fill(dst, p.Color)
		if (p.Kind == KindImage || p.Kind == KindVideo) && p.Overlay != "" {
			if c, ok := ParseColor(p.Overlay); ok {
				draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
			}
		}
	}
	return dst
}

func fill(dst *image.RGBA, c string) {
	col, ok := ParseColor(c)
	if !ok {
		col = color.NRGBA{A: 255}
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func fillGradient(dst *image.RGBA, p Paint) {
	stops := make([]color.NRGBA, 0, len(p.Stops))
	for _, s := range p.Stops {
		c, ok := ParseColor(s)
		if !ok {
			c = color.NRGBA{A: 255}
		}
		stops = append(stops, c)
	}
	if len(stops) == 0 {
		stops = []color.NRGBA{{A: 255}}
	}

	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	cx, cy := w/2, h/2

	rad := p.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	lineLen := math.Abs(w*dx) + math.Abs(h*dy)
	maxRadius := math.Hypot(cx, cy)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px, py := float64(x)+0.5-cx, float64(y)+0.5-cy
			var t float64
			if p.Radial {
				t = math.Hypot(px, py) / maxRadius
			} else {
				t = (px*dx+py*dy)/lineLen + 0.5
			}
			dst.Set(x, y, sample(stops, clamp01(t)))
		}
	}
}

// sample picks the color at t in [0,1] across evenly spaced stops.
func sample(stops []color.NRGBA, t float64) color.NRGBA {
	if len(stops) == 1 {
		return stops[0]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return mix(stops[i], stops[i+1], pos-float64(i))
}
