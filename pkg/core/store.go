package core

import "context"

// Store defines the contract for persisting notes, folders and user stats.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (filesystem, SQLite, in-memory).
//
// Every operation is atomic with respect to its own record. Deletes are
// idempotent: removing a missing id is not an error. There are no
// cross-record transactions; concurrent writers follow last-writer-wins.
type Store interface {
	// GetNote retrieves a note by id. Returns ErrNotFound when absent.
	GetNote(ctx context.Context, id string) (Note, error)

	// PutNote upserts a note by id. Full overwrite, no merge.
	PutNote(ctx context.Context, n Note) error

	// DeleteNote removes a note. Missing ids are silently ignored.
	DeleteNote(ctx context.Context, id string) error

	// ListNotes returns the notes matching the scope, in storage order.
	// Callers that need a particular ordering sort the result themselves.
	ListNotes(ctx context.Context, scope Scope) ([]Note, error)

	// GetFolder retrieves a folder by id. Returns ErrNotFound when absent.
	GetFolder(ctx context.Context, id string) (Folder, error)

	// PutFolder upserts a folder by id.
	PutFolder(ctx context.Context, f Folder) error

	// DeleteFolder removes a folder. It never touches notes that
	// reference the folder; cascade behavior is a service-level policy.
	DeleteFolder(ctx context.Context, id string) error

	// ListFolders returns all folders.
	ListFolders(ctx context.Context) ([]Folder, error)

	// GetStats retrieves the singleton user stats record.
	// Returns ErrNotFound when no stats have been recorded yet.
	GetStats(ctx context.Context) (UserStats, error)

	// PutStats overwrites the singleton user stats record.
	PutStats(ctx context.Context, s UserStats) error
}

// Initializer is implemented by stores that need setup before first use
// (directory creation, git init, schema migration).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable is implemented by stores that can report changes as they
// happen. The pattern is a doublestar glob matched against record ids;
// "**" observes everything.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
