// Package store defines how scenario documents are saved and loaded. Backends live in
// the file and sqlite subpackages.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ivlev/slideplay/internal/scenario"
)

var (
	ErrNotFound  = errors.New("scenario not found")
	ErrInvalidID = errors.New("invalid scenario id")
)

// Summary describes a stored document without loading its slides.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slides    int       `json:"slides"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists documents under caller-chosen ids.
type Store interface {
	Save(ctx context.Context, id string, doc *scenario.Scenario) error
	Load(ctx context.Context, id string) (*scenario.Scenario, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// CheckID rejects ids that are empty, too long or unsafe as file names.
func CheckID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
