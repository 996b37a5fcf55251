package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aretw0/cellar/pkg/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "cellar.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return s
}

func TestStore_NoteCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n := core.Note{
		ID:        "n1",
		Title:     "Trip Plan",
		FolderID:  "f1",
		CreatedAt: 1000,
		UpdatedAt: 2000,
		Cells: []core.Cell{
			{ID: "a", Type: core.CellMarkdown, Content: "Day 1"},
			{ID: "b", Type: core.CellCode, Content: "x := 1", Metadata: core.Metadata{"lang": "go"}},
		},
	}

	if err := s.PutNote(ctx, n); err != nil {
		t.Fatalf("PutNote failed: %v", err)
	}

	got, err := s.GetNote(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Title != n.Title || got.FolderID != n.FolderID || got.UpdatedAt != n.UpdatedAt {
		t.Errorf("note mismatch: %+v", got)
	}
	if len(got.Cells) != 2 || got.Cells[1].Metadata["lang"] != "go" {
		t.Errorf("cells mismatch: %+v", got.Cells)
	}

	// Upsert replaces the record
	n.Title = "Renamed"
	n.Cells = n.Cells[:1]
	if err := s.PutNote(ctx, n); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	got, _ = s.GetNote(ctx, "n1")
	if got.Title != "Renamed" || len(got.Cells) != 1 {
		t.Errorf("upsert did not replace: %+v", got)
	}

	if err := s.DeleteNote(ctx, "n1"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, err := s.GetNote(ctx, "n1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteNote(ctx, "n1"); err != nil {
		t.Errorf("second delete must be a no-op, got %v", err)
	}
}

func TestStore_ListNotes_Scope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, n := range []core.Note{
		{ID: "a", FolderID: "f1"},
		{ID: "b"},
		{ID: "c", FolderID: "f1"},
	} {
		if err := s.PutNote(ctx, n); err != nil {
			t.Fatalf("PutNote failed: %v", err)
		}
	}

	all, err := s.ListNotes(ctx, core.AllNotes())
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Errorf("expected insertion order [a b c], got %+v", all)
	}

	filed, err := s.ListNotes(ctx, core.InFolder("f1"))
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(filed) != 2 {
		t.Errorf("expected 2 filed notes, got %d", len(filed))
	}

	unfiled, err := s.ListNotes(ctx, core.Unfiled())
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(unfiled) != 1 || unfiled[0].ID != "b" {
		t.Errorf("expected [b] unfiled, got %+v", unfiled)
	}
}

func TestStore_FolderCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	f := core.Folder{ID: "f1", Name: "Projects", ParentID: "root", CreatedAt: 42}
	if err := s.PutFolder(ctx, f); err != nil {
		t.Fatalf("PutFolder failed: %v", err)
	}

	got, err := s.GetFolder(ctx, "f1")
	if err != nil {
		t.Fatalf("GetFolder failed: %v", err)
	}
	if got != f {
		t.Errorf("folder mismatch: %+v", got)
	}

	folders, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}
	if len(folders) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(folders))
	}

	if err := s.DeleteFolder(ctx, "f1"); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}
	if _, err := s.GetFolder(ctx, "f1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetStats(ctx); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}

	stats := core.UserStats{
		Streak:      core.Streak{Current: 3, Max: 5, LastActive: "2026-08-30"},
		ActivityLog: map[string]int{"2026-08-30": 4},
		TotalNotes:  9,
		TotalWords:  120,
	}
	if err := s.PutStats(ctx, stats); err != nil {
		t.Fatalf("PutStats failed: %v", err)
	}

	got, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if got.Streak != stats.Streak || got.TotalWords != 120 || got.ActivityLog["2026-08-30"] != 4 {
		t.Errorf("stats mismatch: %+v", got)
	}

	// Singleton: a second write overwrites, not appends.
	stats.TotalNotes = 10
	if err := s.PutStats(ctx, stats); err != nil {
		t.Fatalf("PutStats failed: %v", err)
	}
	got, _ = s.GetStats(ctx)
	if got.TotalNotes != 10 {
		t.Errorf("expected overwritten record, got %+v", got)
	}
}
