package core

// Cell sequence operations.
//
// These are pure, synchronous transformations over a note's cell list.
// They never perform I/O and never fail: an unknown cell id degrades to a
// no-op, returning the input note unchanged. Each operation returns a new
// Note value with a fresh cell slice; the input is never mutated. Callers
// persist the result through NoteService.Update, which re-stamps UpdatedAt.

// InsertCell appends a fresh empty markdown cell with the given id.
// Position hints are deliberately not supported: new cells always land at
// the end of the sequence.
func InsertCell(n Note, newID string) Note {
	cells := make([]Cell, 0, len(n.Cells)+1)
	cells = append(cells, n.Cells...)
	cells = append(cells, Cell{ID: newID, Type: CellMarkdown})
	n.Cells = cells
	return n
}

// UpdateCellContent replaces the content of the cell matching cellID.
// All other cells and note fields are left untouched.
func UpdateCellContent(n Note, cellID, content string) Note {
	idx := indexOfCell(n.Cells, cellID)
	if idx < 0 {
		return n
	}
	cells := append([]Cell(nil), n.Cells...)
	cells[idx].Content = content
	n.Cells = cells
	return n
}

// DeleteCell removes the cell matching cellID. An empty sequence is a
// valid, if degenerate, result: the engine does not guarantee at least
// one remaining cell.
func DeleteCell(n Note, cellID string) Note {
	idx := indexOfCell(n.Cells, cellID)
	if idx < 0 {
		return n
	}
	cells := make([]Cell, 0, len(n.Cells)-1)
	cells = append(cells, n.Cells[:idx]...)
	cells = append(cells, n.Cells[idx+1:]...)
	n.Cells = cells
	return n
}

// MoveCell relocates the cell identified by fromID to the position
// currently occupied by toID, shifting intervening cells by one
// (remove-then-insert array move, not a swap). This consumes exactly the
// (draggedId, droppedOnId) pair a drag gesture reports.
func MoveCell(n Note, fromID, toID string) Note {
	if fromID == toID {
		return n
	}
	from := indexOfCell(n.Cells, fromID)
	to := indexOfCell(n.Cells, toID)
	if from < 0 || to < 0 {
		return n
	}

	cells := append([]Cell(nil), n.Cells...)
	moved := cells[from]
	cells = append(cells[:from], cells[from+1:]...)

	// The target index refers to the original sequence; after removal it
	// still lands the moved cell at toID's old slot in both directions.
	rest := append([]Cell(nil), cells[to:]...)
	cells = append(cells[:to], moved)
	cells = append(cells, rest...)

	n.Cells = cells
	return n
}

func indexOfCell(cells []Cell, id string) int {
	for i, c := range cells {
		if c.ID == id {
			return i
		}
	}
	return -1
}
