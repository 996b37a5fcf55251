// Package memory provides a map-backed core.Store. It is the ephemeral
// adapter: used by tests as the service double and by callers that want a
// vault without touching disk.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/cellar/pkg/core"
)

// Store implements core.Store in memory. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	notes     map[string]core.Note
	noteIDs   []string // insertion order
	folders   map[string]core.Folder
	folderIDs []string
	stats     *core.UserStats
	broker    *broker
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		notes:   make(map[string]core.Note),
		folders: make(map[string]core.Folder),
		broker:  newBroker(),
	}
}

// Initialize implements core.Initializer. Nothing to set up.
func (s *Store) Initialize(ctx context.Context) error { return nil }

// GetNote retrieves a note by id.
func (s *Store) GetNote(ctx context.Context, id string) (core.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return core.Note{}, core.ErrNotFound
	}
	return cloneNote(n), nil
}

// PutNote upserts a note by id.
func (s *Store) PutNote(ctx context.Context, n core.Note) error {
	s.mu.Lock()
	_, existed := s.notes[n.ID]
	s.notes[n.ID] = cloneNote(n)
	if !existed {
		s.noteIDs = append(s.noteIDs, n.ID)
	}
	s.mu.Unlock()

	eType := core.EventCreate
	if existed {
		eType = core.EventModify
	}
	s.broker.publish(core.Event{Type: eType, Kind: core.KindNote, ID: n.ID, Timestamp: time.Now().Unix()})
	return nil
}

// DeleteNote removes a note. Missing ids are ignored.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	_, existed := s.notes[id]
	delete(s.notes, id)
	if existed {
		s.noteIDs = removeID(s.noteIDs, id)
	}
	s.mu.Unlock()

	if existed {
		s.broker.publish(core.Event{Type: core.EventDelete, Kind: core.KindNote, ID: id, Timestamp: time.Now().Unix()})
	}
	return nil
}

// ListNotes returns notes matching the scope in insertion order.
func (s *Store) ListNotes(ctx context.Context, scope core.Scope) ([]core.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var notes []core.Note
	for _, id := range s.noteIDs {
		n := s.notes[id]
		if scope.Matches(n) {
			notes = append(notes, cloneNote(n))
		}
	}
	return notes, nil
}

// GetFolder retrieves a folder by id.
func (s *Store) GetFolder(ctx context.Context, id string) (core.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.folders[id]
	if !ok {
		return core.Folder{}, core.ErrNotFound
	}
	return f, nil
}

// PutFolder upserts a folder by id.
func (s *Store) PutFolder(ctx context.Context, f core.Folder) error {
	s.mu.Lock()
	_, existed := s.folders[f.ID]
	s.folders[f.ID] = f
	if !existed {
		s.folderIDs = append(s.folderIDs, f.ID)
	}
	s.mu.Unlock()

	eType := core.EventCreate
	if existed {
		eType = core.EventModify
	}
	s.broker.publish(core.Event{Type: eType, Kind: core.KindFolder, ID: f.ID, Timestamp: time.Now().Unix()})
	return nil
}

// DeleteFolder removes a folder. Notes referencing it are untouched.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	_, existed := s.folders[id]
	delete(s.folders, id)
	if existed {
		s.folderIDs = removeID(s.folderIDs, id)
	}
	s.mu.Unlock()

	if existed {
		s.broker.publish(core.Event{Type: core.EventDelete, Kind: core.KindFolder, ID: id, Timestamp: time.Now().Unix()})
	}
	return nil
}

// ListFolders returns all folders in insertion order.
func (s *Store) ListFolders(ctx context.Context) ([]core.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders := make([]core.Folder, 0, len(s.folderIDs))
	for _, id := range s.folderIDs {
		folders = append(folders, s.folders[id])
	}
	return folders, nil
}

// GetStats returns the singleton stats record.
func (s *Store) GetStats(ctx context.Context) (core.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stats == nil {
		return core.UserStats{}, core.ErrNotFound
	}
	return cloneStats(*s.stats), nil
}

// PutStats overwrites the singleton stats record.
func (s *Store) PutStats(ctx context.Context, stats core.UserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneStats(stats)
	s.stats = &c
	return nil
}

// Watch implements core.Watchable. Events for record ids matching the
// doublestar pattern are delivered until the context is canceled.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	sub := s.broker.subscribe()
	out := make(chan core.Event)

	go func() {
		defer close(out)
		defer s.broker.unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-sub:
				if !ok {
					return
				}
				if match, err := doublestar.Match(pattern, e.ID); err != nil || !match {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string { return "memory" }

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func cloneNote(n core.Note) core.Note {
	cells := make([]core.Cell, len(n.Cells))
	copy(cells, n.Cells)
	for i, c := range cells {
		if c.Metadata != nil {
			meta := make(core.Metadata, len(c.Metadata))
			for k, v := range c.Metadata {
				meta[k] = v
			}
			cells[i].Metadata = meta
		}
	}
	n.Cells = cells
	return n
}

func cloneStats(s core.UserStats) core.UserStats {
	log := make(map[string]int, len(s.ActivityLog))
	for k, v := range s.ActivityLog {
		log[k] = v
	}
	s.ActivityLog = log
	return s
}
