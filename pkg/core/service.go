package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time in epoch milliseconds.
type Clock func() int64

// IDSource returns a fresh collision-resistant identifier.
type IDSource func() string

func systemClock() int64 { return time.Now().UnixMilli() }

// ServiceOption configures the repository services.
type ServiceOption func(*serviceConfig)

type serviceConfig struct {
	logger       *slog.Logger
	clock        Clock
	newID        IDSource
	deletePolicy FolderDeletePolicy
}

func newServiceConfig(opts []ServiceOption) serviceConfig {
	cfg := serviceConfig{
		logger: slog.Default(),
		clock:  systemClock,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(c Clock) ServiceOption {
	return func(cfg *serviceConfig) { cfg.clock = c }
}

// WithIDSource overrides the identifier generator. Intended for tests.
func WithIDSource(src IDSource) ServiceOption {
	return func(cfg *serviceConfig) { cfg.newID = src }
}

// WithServiceLogger sets the logger used by the services.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(cfg *serviceConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithFolderDeletePolicy selects what happens to a deleted folder's notes.
func WithFolderDeletePolicy(p FolderDeletePolicy) ServiceOption {
	return func(cfg *serviceConfig) { cfg.deletePolicy = p }
}

// NoteService is the note-facing API. It layers default values, sorting
// policy and timestamp stamping on top of a Store.
type NoteService struct {
	store Store
	cfg   serviceConfig
}

// NewNoteService creates a NoteService backed by the given store.
func NewNoteService(store Store, opts ...ServiceOption) *NoteService {
	return &NoteService{store: store, cfg: newServiceConfig(opts)}
}

// List returns the notes in scope, sorted by UpdatedAt descending.
// The sort is stable: notes with equal timestamps keep storage order.
func (s *NoteService) List(ctx context.Context, scope Scope) ([]Note, error) {
	notes, err := s.store.ListNotes(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list notes (%s): %w", scope, err)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt > notes[j].UpdatedAt
	})
	return notes, nil
}

// Create assigns a fresh id, seeds exactly one empty markdown cell and
// persists the note with CreatedAt == UpdatedAt.
func (s *NoteService) Create(ctx context.Context, title, folderID string) (Note, error) {
	if title == "" {
		title = DefaultTitle
	}
	now := s.cfg.clock()
	n := Note{
		ID:        s.cfg.newID(),
		Title:     title,
		FolderID:  folderID,
		Cells:     []Cell{{ID: s.cfg.newID(), Type: CellMarkdown}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutNote(ctx, n); err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	s.cfg.logger.Debug("note created", "id", n.ID, "folder", folderID)
	return n, nil
}

// Update stamps UpdatedAt, persists the full record and returns the
// stamped note. Full replace: the caller passes the complete desired
// note, not a patch. Last writer wins on concurrent updates.
func (s *NoteService) Update(ctx context.Context, n Note) (Note, error) {
	stamp := s.cfg.clock()
	if stamp < n.UpdatedAt {
		stamp = n.UpdatedAt
	}
	if stamp < n.CreatedAt {
		stamp = n.CreatedAt
	}
	n.UpdatedAt = stamp
	if err := s.store.PutNote(ctx, n); err != nil {
		return Note{}, fmt.Errorf("update note %s: %w", n.ID, err)
	}
	return n, nil
}

// Delete removes a note permanently. Missing ids are not an error.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	s.cfg.logger.Debug("note deleted", "id", id)
	return nil
}

// Get retrieves a single note. A missing id surfaces as ErrNotFound,
// which callers treat as a distinct state rather than a failure.
func (s *NoteService) Get(ctx context.Context, id string) (Note, error) {
	return s.store.GetNote(ctx, id)
}

// FolderDeletePolicy decides what happens to the notes of a deleted folder.
type FolderDeletePolicy int

const (
	// KeepNotes leaves orphaned FolderID references in place. Notes stay
	// retrievable by id and the Unfiled scope is unaffected.
	KeepNotes FolderDeletePolicy = iota
	// UnfileNotes clears FolderID on the folder's notes.
	UnfileNotes
	// CascadeNotes deletes the folder's notes along with it.
	CascadeNotes
)

// FolderService is the folder-facing API. Folders have no update
// operation: once created they are immutable besides deletion.
type FolderService struct {
	store Store
	cfg   serviceConfig
}

// NewFolderService creates a FolderService backed by the given store.
func NewFolderService(store Store, opts ...ServiceOption) *FolderService {
	return &FolderService{store: store, cfg: newServiceConfig(opts)}
}

// List returns all folders, oldest first, ties broken by name.
func (s *FolderService) List(ctx context.Context) ([]Folder, error) {
	folders, err := s.store.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	sort.SliceStable(folders, func(i, j int) bool {
		if folders[i].CreatedAt != folders[j].CreatedAt {
			return folders[i].CreatedAt < folders[j].CreatedAt
		}
		return folders[i].Name < folders[j].Name
	})
	return folders, nil
}

// Create assigns a fresh id and persists the folder.
func (s *FolderService) Create(ctx context.Context, name, parentID string) (Folder, error) {
	f := Folder{
		ID:        s.cfg.newID(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: s.cfg.clock(),
	}
	if err := s.store.PutFolder(ctx, f); err != nil {
		return Folder{}, fmt.Errorf("create folder: %w", err)
	}
	s.cfg.logger.Debug("folder created", "id", f.ID, "name", name)
	return f, nil
}

// Get retrieves a single folder. Missing ids surface as ErrNotFound.
func (s *FolderService) Get(ctx context.Context, id string) (Folder, error) {
	return s.store.GetFolder(ctx, id)
}

// Delete removes a folder, applying the configured delete policy to the
// notes that reference it. The default policy keeps the notes untouched,
// orphaned references included.
func (s *FolderService) Delete(ctx context.Context, id string) error {
	if s.cfg.deletePolicy != KeepNotes {
		notes, err := s.store.ListNotes(ctx, InFolder(id))
		if err != nil {
			return fmt.Errorf("delete folder %s: %w", id, err)
		}
		for _, n := range notes {
			switch s.cfg.deletePolicy {
			case UnfileNotes:
				n.FolderID = ""
				if err := s.store.PutNote(ctx, n); err != nil {
					return fmt.Errorf("unfile note %s: %w", n.ID, err)
				}
			case CascadeNotes:
				if err := s.store.DeleteNote(ctx, n.ID); err != nil {
					return fmt.Errorf("cascade delete note %s: %w", n.ID, err)
				}
			}
		}
	}
	if err := s.store.DeleteFolder(ctx, id); err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}
	s.cfg.logger.Debug("folder deleted", "id", id, "policy", int(s.cfg.deletePolicy))
	return nil
}
