package fs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/cellar/pkg/core"
)

func fakeCreate(path string) fsnotify.Event {
	return fsnotify.Event{Name: path, Op: fsnotify.Create}
}

func waitForEvent(t *testing.T, events <-chan core.Event, timeout time.Duration) core.Event {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(timeout):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestRepository_Watch(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Give the watcher a moment to arm.
	time.Sleep(100 * time.Millisecond)

	if err := repo.PutNote(ctx, core.Note{ID: "watched", Title: "hi"}); err != nil {
		t.Fatalf("PutNote failed: %v", err)
	}

	e := waitForEvent(t, events, 3*time.Second)
	if e.Kind != core.KindNote || e.ID != "watched" {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestRepository_Watch_FiltersByPattern(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "match-*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := repo.PutNote(ctx, core.Note{ID: "skip-1"}); err != nil {
		t.Fatalf("PutNote failed: %v", err)
	}
	if err := repo.PutNote(ctx, core.Note{ID: "match-1"}); err != nil {
		t.Fatalf("PutNote failed: %v", err)
	}

	e := waitForEvent(t, events, 3*time.Second)
	if e.ID != "match-1" {
		t.Errorf("pattern filter leaked event for %s", e.ID)
	}
}

func TestRepository_Watch_ClosesOnCancel(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := repo.Watch(ctx, "*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	cancel()

	deadline := time.After(10 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel never closed")
		}
	}
}

func TestWatchWorker_ResolveEvent(t *testing.T) {
	repo := newTestRepo(t)
	w := newWatchWorker(repo, "*", nil)

	cases := []struct {
		name string
		path string
		want bool
		kind core.RecordKind
		id   string
	}{
		{"Note File", filepath.Join(repo.Path, "notes", "n1.md"), true, core.KindNote, "n1"},
		{"Folder File", filepath.Join(repo.Path, "folders", "f1.yaml"), true, core.KindFolder, "f1"},
		{"Temp File", filepath.Join(repo.Path, "notes", TempFilePrefix+"x.md"), false, "", ""},
		{"Dotfile", filepath.Join(repo.Path, "notes", ".hidden.md"), false, "", ""},
		{"Wrong Extension", filepath.Join(repo.Path, "notes", "n1.txt"), false, "", ""},
		{"Outside Collections", filepath.Join(repo.Path, "stray.md"), false, "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := w.resolveEvent(fakeCreate(tc.path))
			if ok != tc.want {
				t.Fatalf("resolve = %v, want %v", ok, tc.want)
			}
			if !ok {
				return
			}
			if e.Kind != tc.kind || e.ID != tc.id || e.Type != core.EventCreate {
				t.Errorf("unexpected event: %+v", e)
			}
		})
	}

	// Pattern mismatch drops the event entirely.
	narrow := newWatchWorker(repo, "other-*", nil)
	if _, ok := narrow.resolveEvent(fakeCreate(filepath.Join(repo.Path, "notes", "n1.md"))); ok {
		t.Error("pattern mismatch must resolve to nothing")
	}
}
