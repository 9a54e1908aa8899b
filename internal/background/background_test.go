package background

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideplay/internal/scenario"
)

var theme = scenario.Theme{PrimaryColor: "#112233", SecondaryColor: "#445566"}

func TestResolveFallbacks(t *testing.T) {
	p := Resolve(nil, theme)
	assert.Equal(t, KindSolid, p.Kind)
	assert.Equal(t, "#112233", p.Color)

	themed := theme
	themed.Background = &scenario.Background{Type: scenario.BackgroundSolid, Color: "navy"}
	assert.Equal(t, "navy", Resolve(nil, themed).Color)

	own := &scenario.Background{Type: scenario.BackgroundSolid, Color: "#fff"}
	assert.Equal(t, "#fff", Resolve(own, themed).Color)

	unknown := &scenario.Background{Type: "plasma"}
	assert.Equal(t, KindSolid, Resolve(unknown, theme).Kind)
}

func TestGradientDirections(t *testing.T) {
	tests := []struct {
		direction string
		angle     float64
		radial    bool
	}{
		{"to-top", 0, false},
		{"to-right", 90, false},
		{"to-bottom", 180, false},
		{"to-left", 270, false},
		{"to-bottom-right", 135, false},
		{"radial", 0, true},
		{"sideways", 180, false},
		{"", 180, false},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			p := Resolve(&scenario.Background{
				Type:      scenario.BackgroundGradient,
				Colors:    []string{"#000", "#fff"},
				Direction: tt.direction,
			}, theme)
			assert.Equal(t, KindGradient, p.Kind)
			assert.Equal(t, tt.angle, p.Angle)
			assert.Equal(t, tt.radial, p.Radial)
		})
	}
}

func TestGradientStopsFallBackToTheme(t *testing.T) {
	p := Resolve(&scenario.Background{Type: scenario.BackgroundGradient}, theme)
	assert.Equal(t, []string{"#112233", "#445566"}, p.Stops)

	single := Resolve(&scenario.Background{Type: scenario.BackgroundGradient, Colors: []string{"red"}}, theme)
	assert.Equal(t, []string{"red", "red"}, single.Stops)
}

func TestMediaOverlay(t *testing.T) {
	p := Resolve(&scenario.Background{
		Type:    scenario.BackgroundImage,
		URL:     "https://cdn.example.com/a.jpg",
		Overlay: "rgba(0,0,0,0.5)",
	}, theme)

	assert.Equal(t, KindImage, p.Kind)
	assert.Equal(t, "rgba(0,0,0,0.5)", p.Overlay)
	assert.Contains(t, p.CSS(), "linear-gradient(rgba(0,0,0,0.5), rgba(0,0,0,0.5))")
	assert.Contains(t, p.CSS(), `url("https://cdn.example.com/a.jpg")`)

	v := Resolve(&scenario.Background{Type: scenario.BackgroundVideo, URL: "bg.mp4", Overlay: "#0008"}, theme)
	assert.Equal(t, KindVideo, v.Kind)
	assert.Equal(t, "bg.mp4", v.MediaURL)
}

func TestCSS(t *testing.T) {
	lin := Paint{Kind: KindGradient, Stops: []string{"#000", "#fff"}, Angle: 135, Opacity: 1}
	assert.Equal(t, "background: linear-gradient(135deg, #000, #fff);", lin.CSS())

	rad := Paint{Kind: KindGradient, Stops: []string{"#000", "#fff"}, Radial: true, Opacity: 0.5}
	assert.Equal(t, "background: radial-gradient(circle, #000, #fff); opacity: 0.5;", rad.CSS())
}

func TestSurfaceLoadedOnce(t *testing.T) {
	img := NewSurface(Paint{Kind: KindImage, Opacity: 1})
	assert.False(t, img.Loaded())
	assert.Equal(t, 0.0, img.Opacity())

	assert.True(t, img.MarkLoaded())
	assert.False(t, img.MarkLoaded())
	assert.Equal(t, 1.0, img.Opacity())

	solid := NewSurface(Paint{Kind: KindSolid, Opacity: 1})
	assert.True(t, solid.Loaded())
	assert.False(t, solid.MarkLoaded())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}, true},
		{"#11223344", color.NRGBA{0x11, 0x22, 0x33, 0x44}, true},
		{"#112233", color.NRGBA{0x11, 0x22, 0x33, 0xff}, true},
		{"rgba(255, 0, 0, 0.5)", color.NRGBA{255, 0, 0, 128}, true},
		{"rgb(0,128,0)", color.NRGBA{0, 128, 0, 255}, true},
		{"navy", color.NRGBA{0, 0, 128, 255}, true},
		{"Transparent", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, false},
		{"notacolor", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRasterizeGradient(t *testing.T) {
	p := Paint{Kind: KindGradient, Stops: []string{"#000000", "#ffffff"}, Angle: 180, Opacity: 1}
	img := Rasterize(p, 4, 100)
	require.Equal(t, 4, img.Bounds().Dx())

	top := img.RGBAAt(0, 0)
	bottom := img.RGBAAt(0, 99)
	assert.Less(t, top.R, uint8(10))
	assert.Greater(t, bottom.R, uint8(245))
}

func TestRasterizeOverlay(t *testing.T) {
	p := Paint{Kind: KindImage, Color: "#ffffff", Overlay: "rgba(0,0,0,0.5)", Opacity: 1}
	img := Rasterize(p, 2, 2)
	px := img.RGBAAt(1, 1)
	assert.InDelta(t, 127, int(px.R), 2)
}
