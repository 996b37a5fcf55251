package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/cellar/pkg/core"
)

// Note file layout: YAML frontmatter with the note-level fields, followed
// by the cell sequence. Each cell starts with an HTML-comment delimiter
// carrying its id, type and metadata as JSON, so the file still renders
// cleanly in any markdown viewer:
//
//	---
//	title: Trip Plan
//	folder: 4f9a...
//	created: 1756700000000
//	updated: 1756700001000
//	---
//	<!-- cell {"id":"a1","type":"markdown"} -->
//	Day 1
//	<!-- cell {"id":"b2","type":"code","metadata":{"lang":"go"}} -->
//	fmt.Println("hi")
//
// A plain markdown file without frontmatter or delimiters parses as a
// single-cell note, so foreign files dropped into the vault are picked up.

const (
	cellMarkerPrefix = "<!-- cell "
	cellMarkerSuffix = " -->"
)

// Content lines that look like a cell delimiter would be re-read as one, so
// the serializer hides them behind a backslash and the parser strips it.
// Lines already carrying backslashes in front of a delimiter gain one more,
// keeping the round trip exact.
func markerShaped(line string) bool {
	return strings.HasPrefix(line, cellMarkerPrefix) && strings.HasSuffix(line, cellMarkerSuffix)
}

func escapeContentLine(line string) string {
	if markerShaped(strings.TrimLeft(line, `\`)) {
		return `\` + line
	}
	return line
}

func unescapeContentLine(line string) string {
	if strings.HasPrefix(line, `\`) && markerShaped(strings.TrimLeft(line, `\`)) {
		return line[1:]
	}
	return line
}

type noteFrontmatter struct {
	Title   string `yaml:"title"`
	Folder  string `yaml:"folder,omitempty"`
	Created int64  `yaml:"created"`
	Updated int64  `yaml:"updated"`
}

type cellHeader struct {
	ID       string        `json:"id"`
	Type     core.CellType `json:"type"`
	Metadata core.Metadata `json:"metadata,omitempty"`
}

// parseNote decodes a note file. The caller owns filling in the note ID
// (derived from the filename) and synthesizing cell ids for plain files.
func parseNote(r io.Reader) (core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Note{}, err
	}

	var n core.Note
	body := data

	if bytes.HasPrefix(data, []byte("---\n")) || bytes.HasPrefix(data, []byte("---\r\n")) {
		rest := data[3:]
		parts := bytes.SplitN(rest, []byte("\n---"), 2)
		if len(parts) == 1 {
			return core.Note{}, errors.New("frontmatter started but no closing delimiter found")
		}

		var fm noteFrontmatter
		if err := yaml.Unmarshal(parts[0], &fm); err != nil {
			return core.Note{}, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		n.Title = fm.Title
		n.FolderID = fm.Folder
		n.CreatedAt = fm.Created
		n.UpdatedAt = fm.Updated

		body = parts[1]
		body = bytes.TrimPrefix(body, []byte("\r"))
		body = bytes.TrimPrefix(body, []byte("\n"))
	}

	cells, err := parseCells(string(body))
	if err != nil {
		return core.Note{}, err
	}
	n.Cells = cells
	return n, nil
}

func parseCells(body string) ([]core.Cell, error) {
	// The serializer terminates every cell with a newline; dropping the
	// final one keeps content roundtrip-exact.
	body = strings.TrimSuffix(body, "\n")
	lines := strings.Split(body, "\n")

	var cells []core.Cell
	var current *core.Cell
	var content []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(content, "\n")
		cells = append(cells, *current)
		current = nil
		content = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if strings.HasPrefix(trimmed, cellMarkerPrefix) && strings.HasSuffix(trimmed, cellMarkerSuffix) {
			payload := strings.TrimSuffix(strings.TrimPrefix(trimmed, cellMarkerPrefix), cellMarkerSuffix)
			var hdr cellHeader
			if err := json.Unmarshal([]byte(payload), &hdr); err != nil {
				return nil, fmt.Errorf("invalid cell header %q: %w", payload, err)
			}
			flush()
			cellType := hdr.Type
			if cellType == "" {
				cellType = core.CellMarkdown
			}
			current = &core.Cell{ID: hdr.ID, Type: cellType, Metadata: hdr.Metadata}
			continue
		}
		if current == nil {
			// Content before any delimiter: treat the whole body as one
			// markdown cell (plain file). The id stays empty here.
			if strings.TrimSpace(body) == "" {
				return nil, nil
			}
			return []core.Cell{{
				Type:    core.CellMarkdown,
				Content: body,
			}}, nil
		}
		content = append(content, unescapeContentLine(line))
	}
	flush()

	return cells, nil
}

// serializeNote encodes a note into the frontmatter + cell-delimiter form.
func serializeNote(n core.Note) ([]byte, error) {
	var buf bytes.Buffer

	fm := noteFrontmatter{
		Title:   n.Title,
		Folder:  n.FolderID,
		Created: n.CreatedAt,
		Updated: n.UpdatedAt,
	}
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, err
	}
	encoder.Close()
	buf.WriteString("---\n")

	for _, c := range n.Cells {
		hdr := cellHeader{ID: c.ID, Type: c.Type, Metadata: c.Metadata}
		payload, err := json.Marshal(hdr)
		if err != nil {
			return nil, fmt.Errorf("failed to encode cell header %s: %w", c.ID, err)
		}
		buf.WriteString(cellMarkerPrefix)
		buf.Write(payload)
		buf.WriteString(cellMarkerSuffix)
		buf.WriteString("\n")
		if strings.Contains(c.Content, cellMarkerPrefix) {
			lines := strings.Split(c.Content, "\n")
			for i, l := range lines {
				lines[i] = escapeContentLine(l)
			}
			buf.WriteString(strings.Join(lines, "\n"))
		} else {
			buf.WriteString(c.Content)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

type folderRecord struct {
	Name    string `yaml:"name"`
	Parent  string `yaml:"parent,omitempty"`
	Created int64  `yaml:"created"`
}

func parseFolder(r io.Reader) (core.Folder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Folder{}, err
	}
	var rec folderRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return core.Folder{}, fmt.Errorf("invalid folder record: %w", err)
	}
	return core.Folder{Name: rec.Name, ParentID: rec.Parent, CreatedAt: rec.Created}, nil
}

func serializeFolder(f core.Folder) ([]byte, error) {
	return yaml.Marshal(folderRecord{Name: f.Name, Parent: f.ParentID, Created: f.CreatedAt})
}

type statsRecord struct {
	Streak struct {
		Current    int    `yaml:"current"`
		Max        int    `yaml:"max"`
		LastActive string `yaml:"last_active,omitempty"`
	} `yaml:"streak"`
	Activity   map[string]int `yaml:"activity,omitempty"`
	TotalNotes int            `yaml:"total_notes"`
	TotalWords int            `yaml:"total_words"`
}

func parseStats(r io.Reader) (core.UserStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.UserStats{}, err
	}
	var rec statsRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return core.UserStats{}, fmt.Errorf("invalid stats record: %w", err)
	}
	return core.UserStats{
		Streak: core.Streak{
			Current:    rec.Streak.Current,
			Max:        rec.Streak.Max,
			LastActive: rec.Streak.LastActive,
		},
		ActivityLog: rec.Activity,
		TotalNotes:  rec.TotalNotes,
		TotalWords:  rec.TotalWords,
	}, nil
}

func serializeStats(s core.UserStats) ([]byte, error) {
	var rec statsRecord
	rec.Streak.Current = s.Streak.Current
	rec.Streak.Max = s.Streak.Max
	rec.Streak.LastActive = s.Streak.LastActive
	rec.Activity = s.ActivityLog
	rec.TotalNotes = s.TotalNotes
	rec.TotalWords = s.TotalWords
	return yaml.Marshal(rec)
}
