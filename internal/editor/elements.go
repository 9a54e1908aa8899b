package editor

import (
	"fmt"
	"slices"

	"github.com/ivlev/slideplay/internal/scenario"
)

// AddElement appends el to a stage slide, assigning an id when el has none.
func (s *Session) AddElement(slideID string, el scenario.Element) (string, error) {
	if !el.Valid() {
		return "", ErrInvalidTiming
	}
	if el.ID == "" {
		el.ID = s.newID()
	}
	err := s.editStage("add_element", slideID, func(stage *scenario.StageContent) error {
		stage.Elements = append(stage.Elements, el.Clone())
		return nil
	})
	if err != nil {
		return "", err
	}
	return el.ID, nil
}

// UpdateElement edits one element of a stage slide.
func (s *Session) UpdateElement(slideID, elementID string, fn func(*scenario.Element)) error {
	return s.editStage("update_element", slideID, func(stage *scenario.StageContent) error {
		i := elementIndex(stage, elementID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrElementNotFound, elementID)
		}
		el := &stage.Elements[i]
		fn(el)
		el.ID = elementID
		if !el.Valid() {
			return ErrInvalidTiming
		}
		return nil
	})
}

// RemoveElement deletes one element of a stage slide.
func (s *Session) RemoveElement(slideID, elementID string) error {
	return s.editStage("remove_element", slideID, func(stage *scenario.StageContent) error {
		i := elementIndex(stage, elementID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrElementNotFound, elementID)
		}
		stage.Elements = slices.Delete(stage.Elements, i, i+1)
		return nil
	})
}

func (s *Session) editStage(op, slideID string, fn func(*scenario.StageContent) error) error {
	return s.edit(op, func(doc *scenario.Scenario) error {
		sl := doc.At(doc.SlideIndex(slideID))
		if sl == nil {
			return fmt.Errorf("%w: %s", ErrSlideNotFound, slideID)
		}
		stage, ok := sl.Content.(*scenario.StageContent)
		if !ok {
			return fmt.Errorf("%w: %s is %s", ErrNotStage, slideID, sl.Type)
		}
		return fn(stage)
	})
}

func elementIndex(stage *scenario.StageContent, id string) int {
	return slices.IndexFunc(stage.Elements, func(e scenario.Element) bool { return e.ID == id })
}
