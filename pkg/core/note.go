package core

import "strings"

// Metadata represents the flexible key-value pairs associated with a cell.
// It carries no schema; the core never inspects it.
type Metadata map[string]any

// CellType identifies the kind of content a cell holds.
type CellType string

const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
	CellAIPrompt CellType = "ai-prompt"
)

// DefaultTitle is assigned when a note is created without a title.
const DefaultTitle = "Untitled Note"

// Cell is a single content block within a note.
// Its ID is unique within the owning note's sequence.
type Cell struct {
	ID       string
	Type     CellType
	Content  string
	Metadata Metadata
}

// Note is the central entity of the domain: a document composed of an
// ordered sequence of cells. Cell order is significant (rendering order)
// and is preserved exactly as last written.
type Note struct {
	ID        string
	Title     string
	FolderID  string // empty = unfiled
	Cells     []Cell
	CreatedAt int64 // epoch milliseconds
	UpdatedAt int64 // epoch milliseconds, always >= CreatedAt
}

// DisplayTitle returns the title, or a placeholder when it is empty.
func (n Note) DisplayTitle() string {
	if strings.TrimSpace(n.Title) == "" {
		return DefaultTitle
	}
	return n.Title
}

// Words counts whitespace-separated words across all cells.
func (n Note) Words() int {
	total := 0
	for _, c := range n.Cells {
		total += len(strings.Fields(c.Content))
	}
	return total
}

// Folder is a named grouping of notes. Nesting via ParentID is supported by
// the shape but not enforced anywhere; a folder referencing a missing parent
// is still valid.
type Folder struct {
	ID        string
	Name      string
	ParentID  string
	CreatedAt int64 // epoch milliseconds
}
