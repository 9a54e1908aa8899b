package editor

import (
	"fmt"

	"github.com/ivlev/slideplay/internal/scenario"
)

// Import replaces the document with one parsed from JSON or YAML. On failure the
// current document and history are untouched and the error wraps ErrInvalidFile.
// A successful import can be undone.
func (s *Session) Import(data []byte) error {
	doc, err := scenario.Decode(data)
	if err != nil {
		s.logger.Warn("import rejected", "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	s.ApplyEdit(doc)
	s.selected = 0
	s.logger.Info("document imported", "title", doc.Title, "slides", len(doc.Slides))
	return nil
}

// Export serializes the current document as canonical JSON. It has no side effects.
func (s *Session) Export() ([]byte, error) {
	return scenario.Marshal(s.current)
}
