package editor

import (
	"fmt"
	"slices"

	"github.com/ivlev/slideplay/internal/scenario"
)

// AddSlide appends a new slide of type t with default content and selects it.
func (s *Session) AddSlide(t scenario.SlideType) (string, error) {
	if !t.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSlideType, t)
	}
	id := s.newID()
	err := s.edit("add", func(doc *scenario.Scenario) error {
		sl := scenario.NewSlide(t, id)
		sl.Order = len(doc.Slides)
		doc.Slides = append(doc.Slides, sl)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.selected = len(s.current.Slides) - 1
	return id, nil
}

// DeleteSlide removes a slide and reindexes the rest. The last remaining slide cannot
// be deleted. A deleted selection moves to the slide now at the same index, or to the
// new last slide.
func (s *Session) DeleteSlide(id string) error {
	idx := s.current.SlideIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	if len(s.current.Slides) <= 1 {
		return ErrLastSlide
	}
	selected := s.selected
	err := s.edit("delete", func(doc *scenario.Scenario) error {
		doc.Slides = slices.Delete(doc.Slides, idx, idx+1)
		doc.Reindex()
		return nil
	})
	if err != nil {
		return err
	}
	switch {
	case selected == idx:
		s.selected = min(idx, len(s.current.Slides)-1)
	case selected > idx:
		s.selected = selected - 1
	}
	return nil
}

// DuplicateSlide appends a deep copy of a slide under a new id and selects it.
func (s *Session) DuplicateSlide(id string) (string, error) {
	src := s.current.At(s.current.SlideIndex(id))
	if src == nil {
		return "", fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	newID := s.newID()
	err := s.edit("duplicate", func(doc *scenario.Scenario) error {
		dup := src.Clone()
		dup.ID = newID
		dup.Order = len(doc.Slides)
		doc.Slides = append(doc.Slides, dup)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.selected = len(s.current.Slides) - 1
	return newID, nil
}

// MoveSlide moves the slide at from to index to and reindexes every slide. The
// selection follows the slide it pointed at.
func (s *Session) MoveSlide(from, to int) error {
	n := len(s.current.Slides)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d of %d", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	err := s.edit("move", func(doc *scenario.Scenario) error {
		moved := doc.Slides[from]
		doc.Slides = slices.Delete(doc.Slides, from, from+1)
		doc.Slides = slices.Insert(doc.Slides, to, moved)
		doc.Reindex()
		return nil
	})
	if err != nil {
		return err
	}
	switch sel := s.selected; {
	case sel == from:
		s.selected = to
	case from < sel && sel <= to:
		s.selected = sel - 1
	case to <= sel && sel < from:
		s.selected = sel + 1
	}
	return nil
}

// UpdateSlide edits one slide in place on a fresh copy of the document. The slide id
// and order are restored if fn changes them.
func (s *Session) UpdateSlide(id string, fn func(*scenario.Slide)) error {
	return s.edit("update_slide", func(doc *scenario.Scenario) error {
		sl := doc.At(doc.SlideIndex(id))
		if sl == nil {
			return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
		}
		order := sl.Order
		fn(sl)
		sl.ID, sl.Order = id, order
		return nil
	})
}

// ChangeType switches a slide to another type, resetting its content to that type's
// defaults. Header fields are kept.
func (s *Session) ChangeType(id string, t scenario.SlideType) error {
	if !t.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownSlideType, t)
	}
	return s.UpdateSlide(id, func(sl *scenario.Slide) {
		if sl.Type == t {
			return
		}
		sl.Type = t
		sl.Content = scenario.NewSlide(t, id).Content
	})
}

func (s *Session) UpdateSettings(fn func(*scenario.Settings)) {
	_ = s.edit("update_settings", func(doc *scenario.Scenario) error {
		fn(&doc.Settings)
		return nil
	})
}

func (s *Session) UpdateTheme(fn func(*scenario.Theme)) {
	_ = s.edit("update_theme", func(doc *scenario.Scenario) error {
		fn(&doc.Theme)
		return nil
	})
}

// Rename sets the document title and description.
func (s *Session) Rename(title, description string) {
	_ = s.edit("rename", func(doc *scenario.Scenario) error {
		doc.Title = title
		doc.Description = description
		return nil
	})
}
