package editor

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ivlev/slideplay/internal/scenario"
)

type op struct {
	Kind int // 0 add, 1 delete, 2 duplicate, 3 move
	A, B int
}

func genOps() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(op{}), map[string]gopter.Gen{
		"Kind": gen.IntRange(0, 3),
		"A":    gen.IntRange(0, 9),
		"B":    gen.IntRange(0, 9),
	}))
}

func apply(s *Session, o op) {
	doc := s.Current()
	n := len(doc.Slides)
	switch o.Kind {
	case 0:
		_, _ = s.AddSlide(scenario.SlideTypes[o.A%len(scenario.SlideTypes)])
	case 1:
		_ = s.DeleteSlide(doc.Slides[o.A%n].ID)
	case 2:
		_, _ = s.DuplicateSlide(doc.Slides[o.A%n].ID)
	case 3:
		_ = s.MoveSlide(o.A%n, o.B%n)
	}
}

func TestEditInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("slides stay non-empty with contiguous order", prop.ForAll(
		func(ops []op) bool {
			s := NewSession(scenario.New("P", "root"), Options{NewID: sequentialIDs()})
			for _, o := range ops {
				apply(s, o)
				doc := s.Current()
				if len(doc.Slides) == 0 || !doc.IsCanonical() {
					return false
				}
				if sel := s.Selected(); sel < 0 || sel >= len(doc.Slides) {
					return false
				}
			}
			return true
		},
		genOps(),
	))

	properties.Property("undo history never exceeds the limit", prop.ForAll(
		func(ops []op, limit int) bool {
			s := NewSession(scenario.New("P", "root"), Options{Limit: limit, NewID: sequentialIDs()})
			for _, o := range ops {
				apply(s, o)
				if undo, _ := s.Depth(); undo > limit {
					return false
				}
			}
			return true
		},
		genOps(),
		gen.IntRange(1, 25),
	))

	properties.Property("undo then redo is identity", prop.ForAll(
		func(ops []op) bool {
			s := NewSession(scenario.New("P", "root"), Options{NewID: sequentialIDs()})
			for _, o := range ops {
				before := s.Current()
				apply(s, o)
				after := s.Current()
				if after == before {
					continue
				}
				if !s.Undo() || s.Current() != before {
					return false
				}
				if !s.Redo() || s.Current() != after {
					return false
				}
			}
			return true
		},
		genOps(),
	))

	properties.TestingRun(t)
}
