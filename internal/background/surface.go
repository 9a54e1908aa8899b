package background

// Surface is a mounted background. Its only state is the one-shot loaded flag that
// drives the initial fade-in.
type Surface struct {
	Paint  Paint
	loaded bool
}

// NewSurface mounts a paint. Solid and gradient paints need nothing to load.
func NewSurface(p Paint) *Surface {
	return &Surface{
		Paint:  p,
		loaded: p.Kind == KindSolid || p.Kind == KindGradient,
	}
}

// MarkLoaded records that the media finished loading. It returns true only the first
// time, which is when the host should start the fade-in.
func (s *Surface) MarkLoaded() bool {
	if s.loaded {
		return false
	}
	s.loaded = true
	return true
}

func (s *Surface) Loaded() bool {
	return s.loaded
}

// Opacity is the target opacity of the surface: hidden until loaded.
func (s *Surface) Opacity() float64 {
	if !s.loaded {
		return 0
	}
	return s.Paint.Opacity
}
