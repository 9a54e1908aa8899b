// Package deck turns a PDF or a folder of images into a scenario with one slide per
// page. Pages are rasterized in parallel and written as PNG assets; each becomes the
// image background of a content slide. In reveal mode the content regions of a page
// are cropped out and shown one after another on a dimmed page.
package deck

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/system"
)

const (
	DefaultDPI        = 150
	DefaultMaxWidth   = 1920
	DefaultRevealStep = 1.5

	revealOverlay = "rgba(0,0,0,0.6)"
)

// ErrEmpty is returned for a source without pages.
var ErrEmpty = errors.New("deck has no pages")

type Options struct {
	Title    string
	AssetDir string
	// AssetURL prefixes background URLs; defaults to AssetDir in slash form.
	AssetURL string
	Workers  int
	DPI      int
	MaxWidth int
	// SlideDuration, when positive, is set on every slide so auto-advance applies.
	SlideDuration float64
	// Reveal builds scenario slides whose detected regions appear RevealStep seconds
	// apart. Pages without regions stay content slides.
	Reveal     bool
	RevealStep float64
	Detector   *RegionDetector

	NewID  func() string
	Logger *slog.Logger
	// OnPage is called from worker goroutines after each page is written.
	OnPage func(done, total int)
}

func (o *Options) defaults() {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.AssetURL == "" {
		o.AssetURL = filepath.ToSlash(o.AssetDir)
	}
	if o.RevealStep <= 0 {
		o.RevealStep = DefaultRevealStep
	}
	if o.Detector == nil {
		d := DefaultRegionDetector()
		o.Detector = &d
	}
}

type page struct {
	asset    string
	elements []scenario.Element
}

// Import renders every page of src into opts.AssetDir and returns the scenario. A page
// that fails to render becomes an empty content slide; I/O errors on the asset dir and
// context cancellation abort the import.
func Import(ctx context.Context, src Source, opts Options) (*scenario.Scenario, error) {
	opts.defaults()
	count := src.PageCount()
	if count == 0 {
		return nil, ErrEmpty
	}
	if err := os.MkdirAll(opts.AssetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}

	ids := make([]string, count)
	for i := range ids {
		ids[i] = opts.NewID()
	}
	pages := make([]page, count)
	var done atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := src.RenderPage(i, opts.DPI)
			if err != nil {
				opts.Logger.Warn("page render failed, using an empty slide", "page", i+1, "error", err)
				return nil
			}
			pg, err := writePage(img, i, ids[i], opts)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			pages[i] = pg
			if opts.OnPage != nil {
				opts.OnPage(int(done.Add(1)), count)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = "Imported deck"
	}
	doc := scenario.New(title, ids[0])
	doc.Slides = doc.Slides[:0]
	for i := range count {
		doc.Slides = append(doc.Slides, pageSlide(ids[i], i, pages[i], opts.SlideDuration))
	}
	doc.Reindex()
	return doc, nil
}

func writePage(img image.Image, index int, slideID string, opts Options) (page, error) {
	scaled, release := fit(img, opts.MaxWidth)
	defer release()

	name := fmt.Sprintf("page-%03d.png", index+1)
	if err := writePNG(filepath.Join(opts.AssetDir, name), scaled); err != nil {
		return page{}, err
	}
	pg := page{asset: path.Join(opts.AssetURL, name)}
	if !opts.Reveal {
		return pg, nil
	}

	b := scaled.Bounds()
	for k, r := range opts.Detector.Detect(scaled) {
		name := fmt.Sprintf("page-%03d-region-%d.png", index+1, k+1)
		if err := writePNG(filepath.Join(opts.AssetDir, name), crop(scaled, r)); err != nil {
			return page{}, err
		}
		pg.elements = append(pg.elements, scenario.Element{
			ID:          fmt.Sprintf("%s-r%d", slideID, k+1),
			Type:        scenario.ElementImage,
			Content:     path.Join(opts.AssetURL, name),
			Position:    &scenario.Position{X: percent(r.Min.X-b.Min.X, b.Dx()), Y: percent(r.Min.Y-b.Min.Y, b.Dy())},
			Size:        &scenario.Size{Width: percent(r.Dx(), b.Dx()), Height: percent(r.Dy(), b.Dy())},
			TimingStart: scenario.Float(float64(k) * opts.RevealStep),
			Animation:   &scenario.Animation{Type: "zoom", Duration: 0.6},
		})
	}
	return pg, nil
}

func pageSlide(id string, index int, pg page, duration float64) scenario.Slide {
	var sl scenario.Slide
	if len(pg.elements) > 0 {
		sl = scenario.NewSlide(scenario.TypeScenario, id)
		sl.Content = &scenario.StageContent{Elements: pg.elements}
		sl.Background = &scenario.Background{Type: scenario.BackgroundImage, URL: pg.asset, Overlay: revealOverlay}
	} else {
		sl = scenario.NewSlide(scenario.TypeContent, id)
		sl.Content = &scenario.TextContent{}
		if pg.asset != "" {
			sl.Background = &scenario.Background{Type: scenario.BackgroundImage, URL: pg.asset}
		}
	}
	sl.Order = index
	if duration > 0 {
		sl.Duration = scenario.Float(duration)
	}
	return sl
}

// fit downscales img to maxWidth when wider. release returns the pooled buffer.
func fit(img image.Image, maxWidth int) (scaled image.Image, release func()) {
	b := img.Bounds()
	if b.Dx() <= maxWidth {
		return img, func() {}
	}
	h := max(1, b.Dy()*maxWidth/b.Dx())
	dst := system.GetImage(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, func() { system.PutImage(dst) }
}

func crop(img image.Image, r image.Rectangle) image.Image {
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

func percent(v, total int) float64 {
	return math.Round(float64(v)*10000/float64(total)) / 100
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
