package deck

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideplay/internal/scenario"
)

// page draws white boxes on black.
func boxes(w, h int, rects ...image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestDetectSingleBlock(t *testing.T) {
	img := boxes(200, 200, image.Rect(50, 50, 150, 150))

	regions := DefaultRegionDetector().Detect(img)
	require.Len(t, regions, 1)
	r := regions[0]
	assert.GreaterOrEqual(t, r.Dx(), 100)
	assert.GreaterOrEqual(t, r.Dy(), 100)
	assert.True(t, r.Overlaps(image.Rect(50, 50, 150, 150)))
}

func TestDetectReadingOrder(t *testing.T) {
	img := boxes(300, 300,
		image.Rect(180, 200, 260, 260), // bottom right
		image.Rect(20, 20, 120, 80),    // top left
		image.Rect(20, 200, 100, 260),  // bottom left
	)

	regions := DefaultRegionDetector().Detect(img)
	require.Len(t, regions, 3)
	assert.Less(t, regions[0].Min.Y, 100)
	assert.Less(t, regions[1].Min.X, regions[2].Min.X)
}

func TestDetectFilters(t *testing.T) {
	img := boxes(300, 300,
		image.Rect(10, 10, 14, 14), // speck
		image.Rect(50, 50, 150, 100),
		image.Rect(50, 150, 250, 250),
	)

	d := DefaultRegionDetector()
	assert.Len(t, d.Detect(img), 2)

	d.Max = 1
	largest := d.Detect(img)
	require.Len(t, largest, 1)
	assert.Greater(t, largest[0].Min.Y, 100)

	assert.Empty(t, d.Detect(image.NewGray(image.Rect(0, 0, 2, 2))))
	assert.Empty(t, d.Detect(boxes(100, 100)))
}

func TestDetectHonoursBoundsOffset(t *testing.T) {
	full := boxes(200, 200, image.Rect(120, 120, 180, 180))
	sub := full.SubImage(image.Rect(100, 100, 200, 200))

	regions := DefaultRegionDetector().Detect(sub)
	require.Len(t, regions, 1)
	assert.True(t, regions[0].In(sub.Bounds()))
	assert.True(t, regions[0].Overlaps(image.Rect(120, 120, 180, 180)))
}

func TestImportReveal(t *testing.T) {
	in := t.TempDir()
	f, err := os.Create(filepath.Join(in, "slide.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, boxes(400, 200, image.Rect(20, 20, 180, 90), image.Rect(220, 110, 380, 180))))
	require.NoError(t, f.Close())
	f, err = os.Create(filepath.Join(in, "zblank.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, boxes(40, 20)))
	require.NoError(t, f.Close())

	src, err := Open(in)
	require.NoError(t, err)
	assets := t.TempDir()
	doc, err := Import(context.Background(), src, Options{
		AssetDir: assets,
		AssetURL: "media",
		Reveal:   true,
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, doc.Slides, 2)

	sl := doc.Slides[0]
	assert.Equal(t, scenario.TypeScenario, sl.Type)
	require.NotNil(t, sl.Background)
	assert.Equal(t, revealOverlay, sl.Background.Overlay)

	stage, ok := sl.Content.(*scenario.StageContent)
	require.True(t, ok)
	require.Len(t, stage.Elements, 2)

	first, second := stage.Elements[0], stage.Elements[1]
	assert.Equal(t, "page-1-r1", first.ID)
	assert.Equal(t, scenario.ElementImage, first.Type)
	assert.Equal(t, "media/page-001-region-1.png", first.Content)
	assert.Equal(t, 0.0, *first.TimingStart)
	assert.Equal(t, DefaultRevealStep, *second.TimingStart)
	assert.Less(t, first.Position.X, 10.0)
	assert.Greater(t, second.Position.X, 50.0)
	assert.InDelta(t, 40, first.Size.Width, 3)

	_, err = os.Stat(filepath.Join(assets, "page-001-region-2.png"))
	assert.NoError(t, err)

	assert.Equal(t, scenario.TypeContent, doc.Slides[1].Type, "a page without regions stays a content slide")
}
