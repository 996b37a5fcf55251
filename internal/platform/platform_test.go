package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cellar/pkg/adapters/memory"
	"github.com/aretw0/cellar/pkg/core"
	"github.com/aretw0/cellar/pkg/git"
)

func TestFindRoot(t *testing.T) {
	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "vault")
	nestedDir := filepath.Join(repoDir, "notes", "deep")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{nestedDir, emptyDir, filepath.Join(repoDir, ".cellar")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{"Start at Root", repoDir, repoDir, false},
		{"Start Nested Deeply", nestedDir, repoDir, false},
		{"No Root Found", emptyDir, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got root %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindRoot failed: %v", err)
			}
			if got != tt.wantRoot {
				t.Errorf("expected root %q, got %q", tt.wantRoot, got)
			}
		})
	}
}

func TestInit_AdapterSelection(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		store, err := Init("", WithAdapter("memory"))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, ok := store.(*memory.Store); !ok {
			t.Errorf("expected a memory store, got %T", store)
		}
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		if _, err := Init("", WithAdapter("etcd")); err == nil {
			t.Error("expected error for unknown adapter")
		}
	})

	t.Run("Injected Store Wins", func(t *testing.T) {
		injected := memory.NewStore()
		store, err := Init("", WithAdapter("fs"), WithStore(injected))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if store != core.Store(injected) {
			t.Error("expected the injected store to be returned as-is")
		}
	})
}

func TestInit_FS(t *testing.T) {
	t.Run("AutoInit Creates Layout", func(t *testing.T) {
		path := t.TempDir()
		if _, err := Init(path, WithAutoInit(true)); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(path, "notes")); err != nil {
			t.Errorf("notes dir missing after init: %v", err)
		}
	})

	t.Run("Missing Vault Without AutoInit", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		if _, err := Init(missing); err == nil {
			t.Error("expected error for a vault that does not exist")
		}
	})
}

func TestInit_SmartVersioning(t *testing.T) {
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}

	cfg := filepath.Join(t.TempDir(), "gitconfig")
	if err := os.WriteFile(cfg, []byte("[user]\n\tname = vault\n\temail = vault@localhost\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GIT_CONFIG_GLOBAL", cfg)

	// An existing .git directory opts the vault into versioning even when
	// WithVersioning was never given.
	path := t.TempDir()
	client := git.NewClient(path, "", nil)
	if err := client.Init(); err != nil {
		t.Fatalf("git init failed: %v", err)
	}

	store, err := Init(path, WithAutoInit(true))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	note := core.Note{ID: "auto", Cells: []core.Cell{{ID: "a", Type: core.CellMarkdown}}}
	if err := store.PutNote(context.Background(), note); err != nil {
		t.Fatalf("PutNote failed: %v", err)
	}

	out, err := client.Run("log", "-1", "--pretty=%B")
	if err != nil {
		t.Fatalf("git log failed: %v", err)
	}
	if out != "update auto" {
		t.Errorf("expected a commit for the note, got %q", out)
	}
}

func TestInit_SQLiteMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.db")
	if _, err := Init(missing, WithAdapter("sqlite"), WithMustExist(true)); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestWithWatcherErrorHandler(t *testing.T) {
	o := defaultOptions()
	WithWatcherErrorHandler(func(error) {})(o)
	if _, ok := o.config["watcher_error_handler"].(func(error)); !ok {
		t.Error("expected handler to be registered in the adapter config")
	}
}

func TestServiceOptions(t *testing.T) {
	if got := ServiceOptions(); len(got) != 0 {
		t.Errorf("expected no service options by default, got %d", len(got))
	}

	got := ServiceOptions(
		WithClock(func() int64 { return 42 }),
		WithIDSource(func() string { return "id" }),
		WithFolderDeletePolicy(core.CascadeNotes),
	)
	if len(got) != 3 {
		t.Errorf("expected 3 service options, got %d", len(got))
	}
}