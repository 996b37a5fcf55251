package core

import "fmt"

type scopeKind int

const (
	scopeAll scopeKind = iota
	scopeFolder
	scopeUnfiled
)

// Scope selects which notes a listing returns. The zero value lists all
// notes. Using a tagged value instead of an optional folder id keeps
// "no filter", "inside folder X" and "notes without a folder" distinct.
type Scope struct {
	kind     scopeKind
	folderID string
}

// AllNotes returns a scope with no filter.
func AllNotes() Scope {
	return Scope{kind: scopeAll}
}

// InFolder returns a scope restricted to notes inside the given folder.
func InFolder(folderID string) Scope {
	return Scope{kind: scopeFolder, folderID: folderID}
}

// Unfiled returns a scope restricted to notes without a folder.
func Unfiled() Scope {
	return Scope{kind: scopeUnfiled}
}

// FolderID returns the folder filter and whether one is set.
func (s Scope) FolderID() (string, bool) {
	if s.kind == scopeFolder {
		return s.folderID, true
	}
	return "", false
}

// IsAll reports whether the scope has no filter.
func (s Scope) IsAll() bool { return s.kind == scopeAll }

// IsUnfiled reports whether the scope targets notes without a folder.
func (s Scope) IsUnfiled() bool { return s.kind == scopeUnfiled }

// Matches reports whether the note falls inside the scope.
func (s Scope) Matches(n Note) bool {
	switch s.kind {
	case scopeFolder:
		return n.FolderID == s.folderID
	case scopeUnfiled:
		return n.FolderID == ""
	default:
		return true
	}
}

func (s Scope) String() string {
	switch s.kind {
	case scopeFolder:
		return fmt.Sprintf("folder(%s)", s.folderID)
	case scopeUnfiled:
		return "unfiled"
	default:
		return "all"
	}
}
