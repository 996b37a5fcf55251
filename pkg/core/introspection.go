package core

import (
	"github.com/aretw0/introspection"
)

// NoteServiceState exposes internal state for observability.
type NoteServiceState struct {
	StoreType string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (s *NoteService) State() any {
	return NoteServiceState{StoreType: storeType(s.store)}
}

// ComponentType implements introspection.Component.
func (s *NoteService) ComponentType() string {
	return "note-service"
}

// State implements introspection.Introspectable.
func (s *FolderService) State() any {
	return NoteServiceState{StoreType: storeType(s.store)}
}

// ComponentType implements introspection.Component.
func (s *FolderService) ComponentType() string {
	return "folder-service"
}

func storeType(store Store) string {
	if comp, ok := store.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "store"
}

var _ introspection.Introspectable = (*NoteService)(nil)
var _ introspection.Component = (*NoteService)(nil)
var _ introspection.Introspectable = (*FolderService)(nil)
var _ introspection.Component = (*FolderService)(nil)
