// Package file stores each scenario as one document in a directory: canonical JSON or
// YAML, chosen per store.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/store"
	"github.com/ivlev/slideplay/internal/system"
)

// Format selects the on-disk encoding for new documents.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Store keeps documents in Dir.
type Store struct {
	dir    string
	format Format
}

var _ store.Store = (*Store)(nil)

// Open creates dir if needed.
func Open(dir string, format Format) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if format == "" {
		format = JSON
	}
	if format != JSON && format != YAML {
		return nil, fmt.Errorf("unknown document format %q", format)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{dir: filepath.Clean(dir), format: format}, nil
}

// Save writes doc atomically. A document stored in the other format is replaced.
func (s *Store) Save(ctx context.Context, id string, doc *scenario.Scenario) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.CheckID(id); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if s.format == YAML {
		data, err = scenario.MarshalYAML(doc)
	} else {
		data, err = scenario.MarshalIndent(doc)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}

	path := filepath.Join(s.dir, id+"."+string(s.format))
	tmp, err := os.CreateTemp(s.dir, "."+id+"-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}

	for _, other := range s.candidates(id) {
		if other != path {
			_ = os.Remove(other)
		}
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.CheckID(id); err != nil {
		return nil, err
	}
	path, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return ReadFile(path)
}

func (s *Store) List(ctx context.Context) ([]store.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths, err := system.ListFiles(s.dir, system.ScenarioExtensions)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	var out []store.Summary
	for _, path := range paths {
		id := idOf(path)
		if store.CheckID(id) != nil {
			continue
		}
		doc, err := ReadFile(path)
		if err != nil {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		out = append(out, store.Summary{ID: id, Title: doc.Title, Slides: len(doc.Slides), UpdatedAt: info.ModTime().UTC()})
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.CheckID(id); err != nil {
		return err
	}
	paths := s.candidates(id)
	if len(paths) == 0 {
		return store.ErrNotFound
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", id, err)
		}
	}
	return nil
}

// Latest returns the id of the most recently saved document.
func (s *Store) Latest() (string, error) {
	path, err := system.FindLatest(s.dir, system.ScenarioExtensions)
	if err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}
	return idOf(path), nil
}

func (s *Store) Close() error { return nil }

func (s *Store) find(id string) (string, error) {
	paths := s.candidates(id)
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return paths[0], nil
}

// candidates lists existing files for id, preferring the store's own format.
func (s *Store) candidates(id string) []string {
	var out []string
	for _, ext := range system.ScenarioExtensions {
		p := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	own := "." + string(s.format)
	slices.SortStableFunc(out, func(a, b string) int {
		switch {
		case filepath.Ext(a) == own && filepath.Ext(b) != own:
			return -1
		case filepath.Ext(b) == own && filepath.Ext(a) != own:
			return 1
		}
		return 0
	})
	return out
}

func idOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadFile loads a JSON or YAML document from path.
func ReadFile(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, path)
		}
		return nil, err
	}
	doc, err := scenario.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile saves doc to path, as YAML for .yaml/.yml paths and canonical JSON otherwise.
func WriteFile(path string, doc *scenario.Scenario) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = scenario.MarshalYAML(doc)
	default:
		data, err = scenario.MarshalIndent(doc)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
