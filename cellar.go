package cellar

import (
	"log/slog"

	"github.com/aretw0/cellar/internal/platform"
	"github.com/aretw0/cellar/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Cell is a public alias for a single note cell.
type Cell = core.Cell

// Folder is a public alias for the domain folder.
type Folder = core.Folder

// UserStats is a public alias for the activity record.
type UserStats = core.UserStats

// Scope is a public alias for note listing scopes.
type Scope = core.Scope

// AllNotes selects every note in the vault.
func AllNotes() Scope { return core.AllNotes() }

// InFolder selects the notes filed under a folder.
func InFolder(id string) Scope { return core.InFolder(id) }

// Unfiled selects the notes that belong to no folder.
func Unfiled() Scope { return core.Unfiled() }

// --- Configuration ---

// Option defines a functional option for configuring Cellar.
type Option = platform.Option

// WithAutoInit enables automatic initialization of the vault (creates directory and layout).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables version control (Git) for the fs adapter.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the vault for reading only; mutations fail with
// core.ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return platform.WithReadOnly(readOnly)
}

// WithLogger sets the logger for the services.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter allows specifying the storage adapter to use by name
// ("fs", "sqlite" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".cellar").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithEventBuffer allows specifying the size of the watch channel buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler installs a callback for asynchronous watcher
// errors on the fs adapter.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock overrides the timestamp source.
func WithClock(c core.Clock) Option {
	return platform.WithClock(c)
}

// WithIDSource overrides the identifier generator.
func WithIDSource(src core.IDSource) Option {
	return platform.WithIDSource(src)
}

// WithFolderDeletePolicy selects what happens to a deleted folder's notes.
func WithFolderDeletePolicy(p core.FolderDeletePolicy) Option {
	return platform.WithFolderDeletePolicy(p)
}

// --- Vault ---

// Vault bundles the domain services wired to a single store.
type Vault struct {
	Notes   *core.NoteService
	Folders *core.FolderService
	Stats   *core.StatsService

	store core.Store
}

// Store exposes the underlying storage adapter (for Watch, introspection, Close).
func (v *Vault) Store() core.Store {
	return v.store
}

// --- Factory ---

// New opens a vault at path and wires the domain services to it.
func New(path string, opts ...Option) (*Vault, error) {
	store, err := platform.Init(path, opts...)
	if err != nil {
		return nil, err
	}

	svcOpts := platform.ServiceOptions(opts...)
	return &Vault{
		Notes:   core.NewNoteService(store, svcOpts...),
		Folders: core.NewFolderService(store, svcOpts...),
		Stats:   core.NewStatsService(store, svcOpts...),
		store:   store,
	}, nil
}

// Init initializes a store explicitly, without wiring services.
func Init(path string, opts ...Option) (core.Store, error) {
	return platform.Init(path, opts...)
}

// --- Utils ---

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
