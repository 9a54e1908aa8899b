// Package storetest checks a store.Store implementation against the save/load contract.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/store"
)

// Document returns a small document covering several slide variants.
func Document(title string) *scenario.Scenario {
	doc := scenario.New(title, "intro")
	doc.Slides = append(doc.Slides, scenario.Slide{
		ID:       "facts",
		Type:     scenario.TypeStats,
		Order:    1,
		Duration: scenario.Float(6),
		Content:  &scenario.StatsContent{Title: "Numbers", Stats: []scenario.Stat{{ID: "a", Value: 3, Label: "Teams"}}},
	})
	return doc
}

// Run exercises s. The store must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.Load(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "missing"), store.ErrNotFound)

	doc := Document("First")
	require.NoError(t, s.Save(ctx, "first", doc))
	got, err := s.Load(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	doc.Title = "First, revised"
	require.NoError(t, s.Save(ctx, "first", doc))
	got, err = s.Load(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "First, revised", got.Title)

	require.NoError(t, s.Save(ctx, "second", Document("Second")))
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	titles := map[string]string{}
	for _, sum := range list {
		titles[sum.ID] = sum.Title
		assert.Equal(t, 2, sum.Slides)
	}
	assert.Equal(t, map[string]string{"first": "First, revised", "second": "Second"}, titles)

	require.NoError(t, s.Delete(ctx, "first"))
	_, err = s.Load(ctx, "first")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Save(ctx, "../escape", doc), store.ErrInvalidID)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, s.Save(cancelled, "third", doc), context.Canceled)
}
