package core

import "fmt"

// EventType represents the type of change in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// RecordKind identifies which collection an event belongs to.
type RecordKind string

const (
	KindNote   RecordKind = "note"
	KindFolder RecordKind = "folder"
)

// Event represents a change to a stored record. Mutating service calls
// emit events on stores that support them, so listings can refresh
// without polling.
type Event struct {
	Type      EventType
	Kind      RecordKind
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s %s", e.Type, e.Kind, e.ID)
}
