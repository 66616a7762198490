package core

import "context"

// Storage defines the contract for durable per-note persistence.
// Adhering to this interface keeps the engine independent of the
// underlying mechanism (filesystem today; anything keyed by identifier
// tomorrow).
//
// Error policy: implementations never panic for expected conditions.
// Load distinguishes ErrNotFound (no backing record, a normal outcome)
// from ErrCorrupt (record exists but cannot be decoded); I/O failures are
// returned wrapped to the immediate caller.
type Storage interface {
	// Initialize ensures the underlying storage is ready
	// (e.g. create the root directory).
	Initialize(ctx context.Context) error

	// Save persists a note, overwriting any prior version. A failure
	// mid-write must never corrupt a previously persisted record.
	Save(ctx context.Context, n *Note) error

	// Load retrieves a note by its ID.
	Load(ctx context.Context, id string) (*Note, error)

	// LoadAll enumerates every record, skipping (and logging) the ones
	// that fail to decode, and returns the survivors sorted by
	// ModifiedAt descending.
	LoadAll(ctx context.Context) ([]*Note, error)

	// Delete removes a note's record if present. It reports false for an
	// unknown identifier; that is not an error.
	Delete(ctx context.Context, id string) (bool, error)

	// Count reports the number of persisted records without decoding any
	// of them.
	Count(ctx context.Context) (int, error)
}

// Watchable is implemented by storages that can observe external changes
// to their records.
type Watchable interface {
	// Watch emits change events for records matching the glob pattern
	// until ctx is cancelled. An empty pattern matches everything.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
