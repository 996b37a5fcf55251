// Package fs implements core.Store on a vault directory: notes as
// markdown files with YAML frontmatter, folders as small YAML records,
// stats under the hidden system directory. Writes are atomic (temp file +
// rename) and optionally versioned through git.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/cellar/pkg/core"
	"github.com/aretw0/cellar/pkg/git"
)

const (
	notesDir   = "notes"
	foldersDir = "folders"
	statsFile  = "stats.yaml"

	// DefaultSystemDir is the hidden directory holding the index cache
	// and the stats record.
	DefaultSystemDir = ".cellar"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Path        string
	AutoInit    bool
	Versioned   bool // commit every mutation through git
	MustExist   bool
	ReadOnly    bool // reject every mutation with core.ErrReadOnly
	Logger      *slog.Logger
	SystemDir   string // e.g. ".cellar"
	EventBuffer int    // watch channel buffer size
	// ErrorHandler receives asynchronous watcher errors. Optional.
	ErrorHandler func(error)
}

// Repository implements core.Store on the filesystem.
type Repository struct {
	Path   string
	git    *git.Client
	cache  *cache
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// NewRepository creates a new filesystem-backed store.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 16
	}
	return &Repository{
		Path:   config.Path,
		git:    git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config: config,
		cache:  newCache(config.Path, config.SystemDir),
	}
}

// Initialize performs the necessary setup for the store (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
	}

	if r.config.ReadOnly {
		return nil
	}

	for _, dir := range []string{r.Path, filepath.Join(r.Path, notesDir), filepath.Join(r.Path, foldersDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create vault directory: %w", err)
		}
	}

	if r.config.Versioned {
		if !git.IsInstalled() {
			return fmt.Errorf("git is not installed")
		}

		wasNewRepo := false
		if !r.git.IsRepo() {
			if !r.config.AutoInit {
				return fmt.Errorf("path is not a git repository: %s", r.Path)
			}
			if err := r.git.Init(); err != nil {
				return fmt.Errorf("failed to git init: %w", err)
			}
			wasNewRepo = true
		}

		mod, err := r.ensureIgnore()
		if err != nil {
			return fmt.Errorf("failed to ensure .gitignore: %w", err)
		}
		if mod && wasNewRepo {
			if err := r.git.Add(".gitignore"); err != nil {
				return fmt.Errorf("failed to add .gitignore: %w", err)
			}
			if err := r.git.Commit(fmt.Sprintf("chore: configure %s ignore", r.config.SystemDir)); err != nil {
				return fmt.Errorf("failed to commit .gitignore: %w", err)
			}
		}
	}

	return nil
}

func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.Path, ".gitignore")
	ignoreEntry := r.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}

	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}

	return true, nil
}

func (r *Repository) notePath(id string) (relPath, fullPath string) {
	relPath = filepath.ToSlash(filepath.Join(notesDir, id+".md"))
	return relPath, filepath.Join(r.Path, notesDir, id+".md")
}

func (r *Repository) folderPath(id string) (relPath, fullPath string) {
	relPath = filepath.ToSlash(filepath.Join(foldersDir, id+".yaml"))
	return relPath, filepath.Join(r.Path, foldersDir, id+".yaml")
}

// GetNote retrieves a note. A plain markdown file without cell delimiters
// parses as a single-cell note with a synthesized cell id.
func (r *Repository) GetNote(ctx context.Context, id string) (core.Note, error) {
	_, fullPath := r.notePath(id)

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Note{}, core.ErrNotFound
		}
		return core.Note{}, err
	}
	defer f.Close()

	n, err := parseNote(f)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to parse note %s: %w", id, err)
	}
	n.ID = id

	for i := range n.Cells {
		if n.Cells[i].ID == "" {
			n.Cells[i].ID = uuid.NewString()
		}
	}

	if n.CreatedAt == 0 || n.UpdatedAt == 0 {
		if info, err := f.Stat(); err == nil {
			mtime := info.ModTime().UnixMilli()
			if n.CreatedAt == 0 {
				n.CreatedAt = mtime
			}
			if n.UpdatedAt == 0 {
				n.UpdatedAt = mtime
			}
		}
	}

	return n, nil
}

// PutNote persists a note and, on versioned vaults, commits it.
func (r *Repository) PutNote(ctx context.Context, n core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if n.ID == "" {
		return fmt.Errorf("note has no ID")
	}

	relPath, fullPath := r.notePath(n.ID)

	data, err := serializeNote(n)
	if err != nil {
		return fmt.Errorf("failed to serialize note: %w", err)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}

	if info, err := os.Stat(fullPath); err == nil {
		r.cache.Set(relPath, &indexEntry{
			ID:           n.ID,
			Title:        n.Title,
			Folder:       n.FolderID,
			Updated:      n.UpdatedAt,
			LastModified: info.ModTime(),
		})
	}

	if r.config.Versioned {
		return r.commit(relPath, "update "+n.ID, false)
	}
	return nil
}

// DeleteNote removes a note. Missing ids are silently ignored.
func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	relPath, fullPath := r.notePath(id)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	r.cache.Delete(relPath)

	if r.config.Versioned {
		return r.commit(relPath, "delete "+id, true)
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove note: %w", err)
	}
	return nil
}

// ListNotes scans the notes directory for notes matching the scope.
//
// Strategy:
//  1. Load the index cache from disk.
//  2. Walk the notes directory.
//  3. Cache hit (mtime matches) with a folder outside the scope: skip the
//     file without parsing. Anything else: full parse, update cache.
//  4. Save the pruned cache back to disk.
func (r *Repository) ListNotes(ctx context.Context, scope core.Scope) ([]core.Note, error) {
	if err := r.cache.Load(); err != nil {
		r.config.Logger.Debug("index cache load failed, starting fresh", "error", err)
	}

	var notes []core.Note
	seen := make(map[string]bool)
	root := filepath.Join(r.Path, notesDir)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == r.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != ".md" {
			return nil
		}
		if strings.HasPrefix(d.Name(), TempFilePrefix) {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		seen[relPath] = true

		id := strings.TrimSuffix(filepath.Base(relPath), ".md")

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if entry, hit := r.cache.Get(relPath, info.ModTime()); hit {
			if !scope.Matches(core.Note{FolderID: entry.Folder}) {
				return nil
			}
		}

		n, err := r.GetNote(ctx, id)
		if err != nil {
			return nil // Skip unparseable
		}

		r.cache.Set(relPath, &indexEntry{
			ID:           n.ID,
			Title:        n.Title,
			Folder:       n.FolderID,
			Updated:      n.UpdatedAt,
			LastModified: info.ModTime(),
		})

		if scope.Matches(n) {
			notes = append(notes, n)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	r.cache.Prune(seen)
	if err := r.cache.Save(); err != nil {
		r.config.Logger.Debug("index cache save failed", "error", err)
	}

	return notes, nil
}

// GetFolder retrieves a folder record.
func (r *Repository) GetFolder(ctx context.Context, id string) (core.Folder, error) {
	_, fullPath := r.folderPath(id)

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Folder{}, core.ErrNotFound
		}
		return core.Folder{}, err
	}
	defer f.Close()

	folder, err := parseFolder(f)
	if err != nil {
		return core.Folder{}, fmt.Errorf("failed to parse folder %s: %w", id, err)
	}
	folder.ID = id
	return folder, nil
}

// PutFolder persists a folder record.
func (r *Repository) PutFolder(ctx context.Context, folder core.Folder) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if folder.ID == "" {
		return fmt.Errorf("folder has no ID")
	}

	relPath, fullPath := r.folderPath(folder.ID)

	data, err := serializeFolder(folder)
	if err != nil {
		return fmt.Errorf("failed to serialize folder: %w", err)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write folder: %w", err)
	}

	if r.config.Versioned {
		return r.commit(relPath, "update folder "+folder.ID, false)
	}
	return nil
}

// DeleteFolder removes a folder record. Notes referencing the folder are
// deliberately left untouched.
func (r *Repository) DeleteFolder(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	relPath, fullPath := r.folderPath(id)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	if r.config.Versioned {
		return r.commit(relPath, "delete folder "+id, true)
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove folder: %w", err)
	}
	return nil
}

// ListFolders returns all folder records.
func (r *Repository) ListFolders(ctx context.Context) ([]core.Folder, error) {
	root := filepath.Join(r.Path, foldersDir)

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var folders []core.Folder
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		folder, err := r.GetFolder(ctx, id)
		if err != nil {
			continue // Skip unparseable
		}
		folders = append(folders, folder)
	}
	return folders, nil
}

// GetStats reads the stats record from the system directory.
func (r *Repository) GetStats(ctx context.Context) (core.UserStats, error) {
	path := filepath.Join(r.Path, r.config.SystemDir, statsFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.UserStats{}, core.ErrNotFound
		}
		return core.UserStats{}, err
	}
	defer f.Close()

	return parseStats(f)
}

// PutStats overwrites the stats record. Stats live under the system
// directory and are never committed.
func (r *Repository) PutStats(ctx context.Context, s core.UserStats) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	dir := filepath.Join(r.Path, r.config.SystemDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}

	data, err := serializeStats(s)
	if err != nil {
		return fmt.Errorf("failed to serialize stats: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, statsFile), data, 0644)
}

// commit stages one path and records it, holding the vault lock.
func (r *Repository) commit(relPath, msg string, remove bool) error {
	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if remove {
		if err := r.git.Rm(relPath); err != nil {
			return fmt.Errorf("failed to git rm: %w", err)
		}
	} else {
		if err := r.git.Add(relPath); err != nil {
			return fmt.Errorf("failed to git add: %w", err)
		}
	}

	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}
