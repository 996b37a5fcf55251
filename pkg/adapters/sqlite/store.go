// Package sqlite implements core.Store on a single SQLite database file.
// Cells are stored as a JSON column; the folder membership lookup is
// backed by a real index on notes.folder_id.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/cellar/pkg/core"
)

const statsKey = "current-user"

// Store implements core.Store backed by SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// StoreOption configures the SQLite store.
type StoreOption func(*Store)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore opens (or creates) the database at dbPath.
func NewStore(dbPath string, opts ...StoreOption) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debug("sqlite store opened", "path", dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the schema.
func (s *Store) Initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		folder_id TEXT NOT NULL DEFAULT '',
		cells TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_folder ON notes(folder_id);

	CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stats (
		id TEXT PRIMARY KEY,
		record TEXT NOT NULL
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

type cellRecord struct {
	ID       string        `json:"id"`
	Type     core.CellType `json:"type"`
	Content  string        `json:"content"`
	Metadata core.Metadata `json:"metadata,omitempty"`
}

func encodeCells(cells []core.Cell) (string, error) {
	records := make([]cellRecord, 0, len(cells))
	for _, c := range cells {
		records = append(records, cellRecord(c))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode cells: %w", err)
	}
	return string(data), nil
}

func decodeCells(data string) ([]core.Cell, error) {
	var records []cellRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode cells: %w", err)
	}
	cells := make([]core.Cell, 0, len(records))
	for _, rec := range records {
		cells = append(cells, core.Cell(rec))
	}
	return cells, nil
}

// GetNote retrieves a note by id.
func (s *Store) GetNote(ctx context.Context, id string) (core.Note, error) {
	query := `SELECT id, title, folder_id, cells, created_at, updated_at FROM notes WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	var n core.Note
	var cells string
	err := row.Scan(&n.ID, &n.Title, &n.FolderID, &cells, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return core.Note{}, core.ErrNotFound
	}
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to get note: %w", err)
	}

	n.Cells, err = decodeCells(cells)
	if err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// PutNote upserts a note by id.
func (s *Store) PutNote(ctx context.Context, n core.Note) error {
	if n.ID == "" {
		return fmt.Errorf("note has no ID")
	}

	cells, err := encodeCells(n.Cells)
	if err != nil {
		return err
	}

	query := `INSERT INTO notes (id, title, folder_id, cells, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			folder_id = excluded.folder_id,
			cells = excluded.cells,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, n.ID, n.Title, n.FolderID, cells, n.CreatedAt, n.UpdatedAt); err != nil {
		return fmt.Errorf("failed to put note: %w", err)
	}
	return nil
}

// DeleteNote removes a note. Missing ids are silently ignored.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// ListNotes returns notes matching the scope in insertion (rowid) order.
func (s *Store) ListNotes(ctx context.Context, scope core.Scope) ([]core.Note, error) {
	query := `SELECT id, title, folder_id, cells, created_at, updated_at FROM notes`
	var args []any

	if folderID, ok := scope.FolderID(); ok {
		query += ` WHERE folder_id = ?`
		args = append(args, folderID)
	} else if scope.IsUnfiled() {
		query += ` WHERE folder_id = ''`
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var n core.Note
		var cells string
		if err := rows.Scan(&n.ID, &n.Title, &n.FolderID, &cells, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.Cells, err = decodeCells(cells)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetFolder retrieves a folder by id.
func (s *Store) GetFolder(ctx context.Context, id string) (core.Folder, error) {
	query := `SELECT id, name, parent_id, created_at FROM folders WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	var f core.Folder
	err := row.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return core.Folder{}, core.ErrNotFound
	}
	if err != nil {
		return core.Folder{}, fmt.Errorf("failed to get folder: %w", err)
	}
	return f, nil
}

// PutFolder upserts a folder by id.
func (s *Store) PutFolder(ctx context.Context, f core.Folder) error {
	if f.ID == "" {
		return fmt.Errorf("folder has no ID")
	}

	query := `INSERT INTO folders (id, name, parent_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			parent_id = excluded.parent_id,
			created_at = excluded.created_at`
	if _, err := s.db.ExecContext(ctx, query, f.ID, f.Name, f.ParentID, f.CreatedAt); err != nil {
		return fmt.Errorf("failed to put folder: %w", err)
	}
	return nil
}

// DeleteFolder removes a folder row. Notes keep their folder_id.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}

// ListFolders returns all folders in insertion (rowid) order.
func (s *Store) ListFolders(ctx context.Context) ([]core.Folder, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, parent_id, created_at FROM folders ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []core.Folder
	for rows.Next() {
		var f core.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// GetStats retrieves the singleton stats record.
func (s *Store) GetStats(ctx context.Context) (core.UserStats, error) {
	row := s.db.QueryRowContext(ctx, `SELECT record FROM stats WHERE id = ?`, statsKey)

	var record string
	err := row.Scan(&record)
	if err == sql.ErrNoRows {
		return core.UserStats{}, core.ErrNotFound
	}
	if err != nil {
		return core.UserStats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	var stats core.UserStats
	if err := json.Unmarshal([]byte(record), &stats); err != nil {
		return core.UserStats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	return stats, nil
}

// PutStats overwrites the singleton stats record.
func (s *Store) PutStats(ctx context.Context, stats core.UserStats) error {
	record, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	query := `INSERT INTO stats (id, record) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET record = excluded.record`
	if _, err := s.db.ExecContext(ctx, query, statsKey, string(record)); err != nil {
		return fmt.Errorf("failed to put stats: %w", err)
	}
	return nil
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string { return "sqlite" }
