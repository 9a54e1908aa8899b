package deck

import (
	"cmp"
	"image"
	"image/color"
	"math"
	"slices"
)

// RegionDetector finds content regions on a page: Sobel edges are thresholded, grown
// so nearby strokes merge, and grouped into connected components.
type RegionDetector struct {
	MinArea   int     // smallest region kept, in pixels
	Threshold float64 // gradient magnitude counted as an edge
	Spread    int     // growth radius per pass
	Passes    int
	Max       int // largest regions kept; 0 keeps all
}

func DefaultRegionDetector() RegionDetector {
	return RegionDetector{MinArea: 500, Threshold: 30, Spread: 2, Passes: 2, Max: 6}
}

// Detect returns region bounds in reading order (top to bottom, then left to right).
func (d RegionDetector) Detect(img image.Image) []image.Rectangle {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return nil
	}

	mask := edges(luma(img), w, h, d.Threshold)
	for range d.Passes {
		mask = grow(mask, w, h, d.Spread)
	}

	var regions []image.Rectangle
	for _, r := range components(mask, w, h) {
		if r.Dx()*r.Dy() >= d.MinArea {
			regions = append(regions, r.Add(b.Min))
		}
	}

	if d.Max > 0 && len(regions) > d.Max {
		slices.SortFunc(regions, func(a, b image.Rectangle) int {
			return cmp.Compare(b.Dx()*b.Dy(), a.Dx()*a.Dy())
		})
		regions = regions[:d.Max]
	}
	slices.SortFunc(regions, func(a, b image.Rectangle) int {
		if c := cmp.Compare(a.Min.Y, b.Min.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Min.X, b.Min.X)
	})
	return regions
}

func luma(img image.Image) []uint8 {
	b := img.Bounds()
	out := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
		}
	}
	return out
}

func edges(gray []uint8, w, h int, threshold float64) []bool {
	out := make([]bool, w*h)
	at := func(x, y int) float64 { return float64(gray[y*w+x]) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) - at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) - at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			out[y*w+x] = math.Hypot(gx, gy) > threshold
		}
	}
	return out
}

// grow dilates mask with a (2r+1)² square, as a row pass followed by a column pass.
func grow(mask []bool, w, h, r int) []bool {
	if r <= 0 {
		return mask
	}
	rows := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] {
				continue
			}
			for i := max(0, x-r); i <= min(w-1, x+r); i++ {
				rows[y*w+i] = true
			}
		}
	}
	out := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !rows[y*w+x] {
				continue
			}
			for j := max(0, y-r); j <= min(h-1, y+r); j++ {
				out[j*w+x] = true
			}
		}
	}
	return out
}

// components returns the bounding box of each 4-connected set region of mask.
func components(mask []bool, w, h int) []image.Rectangle {
	seen := make([]bool, w*h)
	var out []image.Rectangle
	var stack []int
	for start := range mask {
		if !mask[start] || seen[start] {
			continue
		}
		minX, minY := start%w, start/w
		maxX, maxY := minX, minY
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)

			for _, n := range [4]int{i - 1, i + 1, i - w, i + w} {
				switch {
				case n < 0 || n >= len(mask):
					continue
				case (n == i-1 && x == 0) || (n == i+1 && x == w-1):
					continue
				case mask[n] && !seen[n]:
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		out = append(out, image.Rect(minX, minY, maxX+1, maxY+1))
	}
	return out
}
