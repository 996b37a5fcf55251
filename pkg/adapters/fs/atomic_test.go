package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "note.md")

		if err := writeFileAtomic(path, []byte("hello"), 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back failed: %v", err)
		}
		if string(got) != "hello" {
			t.Errorf("expected 'hello', got %q", got)
		}
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "note.md")
		os.WriteFile(path, []byte("old"), 0644)

		if err := writeFileAtomic(path, []byte("new"), 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("expected 'new', got %q", got)
		}
	})

	t.Run("Leaves No Temp Files Behind", func(t *testing.T) {
		dir := t.TempDir()
		if err := writeFileAtomic(filepath.Join(dir, "note.md"), []byte("x"), 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("stray temp file: %s", e.Name())
			}
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "note.md")
		if err := writeFileAtomic(path, []byte("x"), 0644); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
