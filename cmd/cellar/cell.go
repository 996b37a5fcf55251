package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/cellar/pkg/core"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cellType string

var cellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Operate on the cells of a note",
}

var cellAddCmd = &cobra.Command{
	Use:   "add [note-id]",
	Short: "Append an empty cell to a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withNote(args[0], func(n core.Note) core.Note {
			id := uuid.NewString()
			n = core.InsertCell(n, id)
			if cellType != string(core.CellMarkdown) {
				n = setCellType(n, id, core.CellType(cellType))
			}
			fmt.Println(id)
			return n
		})
	},
}

var cellEditCmd = &cobra.Command{
	Use:   "edit [note-id] [cell-id] [content]",
	Short: "Replace a cell's content (use '-' to read from stdin)",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		content := strings.Join(args[2:], " ")
		if content == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content = string(data)
		}
		withNote(args[0], func(n core.Note) core.Note {
			return core.UpdateCellContent(n, args[1], content)
		})
	},
}

var cellMvCmd = &cobra.Command{
	Use:   "mv [note-id] [cell-id] [target-cell-id]",
	Short: "Move a cell to another cell's position",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		withNote(args[0], func(n core.Note) core.Note {
			return core.MoveCell(n, args[1], args[2])
		})
	},
}

var cellRmCmd = &cobra.Command{
	Use:   "rm [note-id] [cell-id]",
	Short: "Remove a cell from a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withNote(args[0], func(n core.Note) core.Note {
			return core.DeleteCell(n, args[1])
		})
	},
}

// withNote loads a note, applies a pure transformation and saves the result.
func withNote(id string, fn func(core.Note) core.Note) {
	v := mustOpenVault()

	ctx := context.Background()
	note, err := v.Notes.Get(ctx, id)
	if err != nil {
		reportNoteError(id, err)
	}

	if _, err := v.Notes.Update(ctx, fn(note)); err != nil {
		fatal("Failed to save note", err)
	}
}

func setCellType(n core.Note, cellID string, t core.CellType) core.Note {
	for i, c := range n.Cells {
		if c.ID == cellID {
			n.Cells[i].Type = t
		}
	}
	return n
}

func init() {
	rootCmd.AddCommand(cellCmd)
	cellCmd.AddCommand(cellAddCmd, cellEditCmd, cellMvCmd, cellRmCmd)
	cellAddCmd.Flags().StringVar(&cellType, "type", string(core.CellMarkdown), "Cell type (markdown, code, ai-prompt)")
}
