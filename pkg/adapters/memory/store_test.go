package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cellar/pkg/adapters/memory"
	"github.com/aretw0/cellar/pkg/core"
)

func TestStore_NoteCRUD(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	n := core.Note{
		ID:    "n1",
		Title: "First",
		Cells: []core.Cell{{ID: "a", Type: core.CellMarkdown, Content: "hi"}},
	}
	require.NoError(t, s.PutNote(ctx, n))

	got, err := s.GetNote(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	// Reads must be isolated from later caller mutations.
	got.Cells[0].Content = "mutated"
	again, err := s.GetNote(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Cells[0].Content)

	require.NoError(t, s.DeleteNote(ctx, "n1"))
	_, err = s.GetNote(ctx, "n1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	// Idempotent
	assert.NoError(t, s.DeleteNote(ctx, "n1"))
}

func TestStore_ListNotes_InsertionOrderAndScope(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, s.PutNote(ctx, core.Note{ID: "a", FolderID: "f1"}))
	require.NoError(t, s.PutNote(ctx, core.Note{ID: "b"}))
	require.NoError(t, s.PutNote(ctx, core.Note{ID: "c", FolderID: "f1"}))

	all, err := s.ListNotes(ctx, core.AllNotes())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)

	filed, err := s.ListNotes(ctx, core.InFolder("f1"))
	require.NoError(t, err)
	require.Len(t, filed, 2)

	unfiled, err := s.ListNotes(ctx, core.Unfiled())
	require.NoError(t, err)
	require.Len(t, unfiled, 1)
	assert.Equal(t, "b", unfiled[0].ID)
}

func TestStore_Stats(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	_, err := s.GetStats(ctx)
	assert.ErrorIs(t, err, core.ErrNotFound)

	stats := core.UserStats{
		Streak:      core.Streak{Current: 1, Max: 1, LastActive: "2026-08-31"},
		ActivityLog: map[string]int{"2026-08-31": 2},
	}
	require.NoError(t, s.PutStats(ctx, stats))

	got, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Streak, got.Streak)

	// Stored record must not alias the caller's map.
	got.ActivityLog["2026-08-31"] = 99
	fresh, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.ActivityLog["2026-08-31"])
}

func TestStore_Watch(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := s.Watch(ctx, "note-*")
	require.NoError(t, err)

	require.NoError(t, s.PutNote(ctx, core.Note{ID: "note-1"}))
	require.NoError(t, s.PutNote(ctx, core.Note{ID: "other"})) // filtered out
	require.NoError(t, s.PutNote(ctx, core.Note{ID: "note-1", Title: "v2"}))
	require.NoError(t, s.DeleteNote(ctx, "note-1"))

	expect := func(eType core.EventType) {
		t.Helper()
		select {
		case e := <-events:
			assert.Equal(t, eType, e.Type)
			assert.Equal(t, "note-1", e.ID)
			assert.Equal(t, core.KindNote, e.Kind)
		case <-ctx.Done():
			t.Fatal("timed out waiting for event")
		}
	}

	expect(core.EventCreate)
	expect(core.EventModify)
	expect(core.EventDelete)
}

func TestStore_Watch_StopsOnCancel(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx, "**")
	require.NoError(t, err)

	cancel()

	// The channel must close once the context is gone.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel never closed after cancel")
		}
	}
}
