package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_Load(t *testing.T) {
	t.Run("Starts Empty if File Missing", func(t *testing.T) {
		c := newCache(t.TempDir(), ".cellar")

		if err := c.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", c.Len())
		}
	})

	t.Run("Loads Valid JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		sysDir := filepath.Join(tmpDir, ".cellar")
		os.MkdirAll(sysDir, 0755)

		jsonContent := `{
			"version": 1,
			"entries": {
				"notes/note1.md": {
					"id": "note1",
					"folder": "projects",
					"updated": 1000
				}
			}
		}`
		os.WriteFile(filepath.Join(sysDir, "index.json"), []byte(jsonContent), 0644)

		c := newCache(tmpDir, ".cellar")
		if err := c.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		entry, ok := c.index.Entries["notes/note1.md"]
		if !ok {
			t.Fatal("expected entry notes/note1.md")
		}
		if entry.Folder != "projects" {
			t.Errorf("expected folder 'projects', got %q", entry.Folder)
		}
	})

	t.Run("Resets on Corrupted JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		sysDir := filepath.Join(tmpDir, ".cellar")
		os.MkdirAll(sysDir, 0755)
		os.WriteFile(filepath.Join(sysDir, "index.json"), []byte("{not json"), 0644)

		c := newCache(tmpDir, ".cellar")
		if err := c.Load(); err != nil {
			t.Fatalf("Load must self-heal, got: %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected empty cache after corruption, got %d", c.Len())
		}
	})
}

func TestCache_Get_MtimeValidation(t *testing.T) {
	c := newCache(t.TempDir(), ".cellar")
	mtime := time.Now()

	c.Set("notes/a.md", &indexEntry{ID: "a", LastModified: mtime})

	if _, hit := c.Get("notes/a.md", mtime); !hit {
		t.Error("expected hit for matching mtime")
	}
	if _, hit := c.Get("notes/a.md", mtime.Add(time.Second)); hit {
		t.Error("expected miss for stale mtime")
	}
	if _, hit := c.Get("notes/missing.md", mtime); hit {
		t.Error("expected miss for unknown path")
	}
}

func TestCache_SaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	c := newCache(tmpDir, ".cellar")

	c.Set("notes/a.md", &indexEntry{ID: "a", Folder: "f", Updated: 42, LastModified: time.Now()})
	if err := c.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fresh := newCache(tmpDir, ".cellar")
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if fresh.Len() != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", fresh.Len())
	}
	entry := fresh.index.Entries["notes/a.md"]
	if entry == nil || entry.Folder != "f" || entry.Updated != 42 {
		t.Errorf("entry corrupted on reload: %+v", entry)
	}
}

func TestCache_Prune(t *testing.T) {
	c := newCache(t.TempDir(), ".cellar")
	c.Set("notes/keep.md", &indexEntry{ID: "keep"})
	c.Set("notes/drop.md", &indexEntry{ID: "drop"})

	c.Prune(map[string]bool{"notes/keep.md": true})

	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after prune, got %d", c.Len())
	}
	if _, ok := c.index.Entries["notes/keep.md"]; !ok {
		t.Error("kept entry was pruned")
	}
}
