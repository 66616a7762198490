// Package vellum is the Composition Root for the Vellum engine.
//
// It connects the core business logic (Domain Layer) with the infrastructure adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Vellum is the persistence heart of a note-taking tool. It treats a
// directory of serialized notes as a durable working set, keeping an
// in-memory index in sync with disk while a debounced scheduler absorbs
// keystroke-frequency saves. The default implementation uses the File
// System, but the core is agnostic, allowing for future adapters (e.g.
// S3, SQLite).
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Atomic Persistence**: One file per note, written via temp-and-rename.
//   - **Auto-Save Scheduler**: Debounced background saves with explicit flush.
//   - **Live Index**: Ordered working set with selection tracking and full-text search.
//   - **Change Watching**: External edits surface as typed events (fsnotify based).
//   - **Extensible**: Pluggable codecs (JSON, YAML, TOML) and storage backends via `core.Storage`.
//
// Usage:
//
//	// Open a vault with functional options
//	sess, err := vellum.Open("./notes",
//		vellum.WithDelay(500*time.Millisecond),
//		vellum.WithLogger(logger),
//	)
//
//	// Create and edit a note
//	note, err := sess.Create(ctx)
//	_, err = sess.UpdateContent(ctx, note.ID, "<p>Hello</p>")
package vellum
