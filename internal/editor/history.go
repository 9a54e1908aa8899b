// Package editor owns the document being authored: bounded undo/redo over immutable
// snapshots, slide selection, and the slide and element edits built on top of them.
package editor

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ivlev/slideplay/internal/scenario"
)

// DefaultLimit is the number of undo snapshots kept.
const DefaultLimit = 20

type Options struct {
	Limit  int
	NewID  func() string
	Logger *slog.Logger
}

// Session is one editing session. Every edit replaces the current document with a new
// value; a *Scenario returned by Current is never modified afterwards, so readers such
// as a running player can hold it without locks. A Session is not safe for concurrent use.
type Session struct {
	current  *scenario.Scenario
	undo     []*scenario.Scenario
	redo     []*scenario.Scenario
	selected int

	limit  int
	newID  func() string
	logger *slog.Logger
}

// NewSession starts editing doc. A nil doc starts from a new single-slide document.
func NewSession(doc *scenario.Scenario, opts Options) *Session {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if doc == nil {
		doc = scenario.New("", opts.NewID())
	}
	return &Session{
		current: doc,
		limit:   opts.Limit,
		newID:   opts.NewID,
		logger:  opts.Logger,
	}
}

// ApplyEdit adopts next as the current document. The previous document becomes the
// newest undo snapshot, the oldest is dropped beyond the limit, and redo is cleared.
func (s *Session) ApplyEdit(next *scenario.Scenario) {
	if next == nil || next == s.current {
		return
	}
	s.undo = append(s.undo, s.current)
	if len(s.undo) > s.limit {
		s.undo = append(s.undo[:0:0], s.undo[len(s.undo)-s.limit:]...)
	}
	s.redo = nil
	s.current = next
	s.clampSelection()
}

// Undo restores the most recent snapshot. It reports false when there is none.
func (s *Session) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.current)
	s.current = prev
	s.clampSelection()
	return true
}

// Redo re-applies the most recently undone edit. It reports false when there is none.
func (s *Session) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, s.current)
	s.current = next
	s.clampSelection()
	return true
}

func (s *Session) CanUndo() bool { return len(s.undo) > 0 }
func (s *Session) CanRedo() bool { return len(s.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (s *Session) Depth() (undo, redo int) {
	return len(s.undo), len(s.redo)
}

// Current is the document being edited. Treat it as read-only.
func (s *Session) Current() *scenario.Scenario {
	return s.current
}

// Selected is the index of the selected slide.
func (s *Session) Selected() int {
	return s.selected
}

// SelectedSlide is the selected slide.
func (s *Session) SelectedSlide() *scenario.Slide {
	return s.current.At(s.selected)
}

// Select selects the slide at index.
func (s *Session) Select(index int) error {
	if index < 0 || index >= len(s.current.Slides) {
		return ErrIndexOutOfRange
	}
	s.selected = index
	return nil
}

func (s *Session) clampSelection() {
	if n := len(s.current.Slides); s.selected >= n {
		s.selected = max(n-1, 0)
	}
}

// edit clones the current document, applies fn and adopts the result. Nothing is
// recorded when fn fails.
func (s *Session) edit(op string, fn func(doc *scenario.Scenario) error) error {
	next := s.current.Clone()
	if err := fn(next); err != nil {
		s.logger.Debug("edit rejected", "op", op, "error", err)
		return err
	}
	next.Normalize()
	s.ApplyEdit(next)
	s.logger.Debug("edit applied", "op", op, "slides", len(next.Slides))
	return nil
}
