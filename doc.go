// Package cellar is the Composition Root for the Cellar application.
//
// It connects the core business logic (Domain Layer) with the infrastructure adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Cellar is a cell-based note engine for toolmakers. A note is an ordered
// sequence of cells (markdown, code, AI prompts) rather than a single blob,
// and the whole collection behaves like a small document database. While the
// default implementation uses the File System, Cellar's core is agnostic,
// allowing alternative adapters (SQLite, in-memory).
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Cell Sequences**: Pure, total operations for inserting, editing, moving and removing cells.
//   - **Folders**: Lightweight grouping with configurable delete semantics.
//   - **Activity Stats**: Daily streaks and a contribution-style heatmap.
//   - **Default Adapter (FS)**: Markdown files with frontmatter, optional Git versioning.
//   - **Extensible**: Designed to support other backends via `core.Store`.
//
// Usage:
//
//	// Open a vault with functional options
//	vault, err := cellar.New("./vault",
//		cellar.WithAutoInit(true),
//		cellar.WithLogger(logger),
//	)
//
//	// Create a note
//	note, err := vault.Notes.Create(ctx, "Trip Plan", "")
package cellar
