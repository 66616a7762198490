// Package index keeps the in-memory working set of notes: recency
// ordering, selection tracking and display-time filtering. It mirrors
// what storage holds; it never touches disk itself.
package index

import (
	"sync"

	"github.com/aretw0/vellum/pkg/core"
)

// Index is the ordered note collection backing list views. The sequence
// is sorted most recently modified first at load time and maintained
// incrementally afterwards: new notes are prepended, edited notes keep
// their position until the next cold Load.
//
// The engine targets a single logical owner, but watchers and command
// surfaces read concurrently; an RWMutex keeps the projection safe.
type Index struct {
	mu       sync.RWMutex
	notes    []*core.Note
	selected string
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// Load replaces the whole working set. The slice is assumed pre-sorted by
// recency and is copied, so later inserts never alias the caller's backing
// array. A selection pointing at a note no longer present is cleared.
func (ix *Index) Load(notes []*core.Note) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.notes = make([]*core.Note, len(notes))
	copy(ix.notes, notes)

	if ix.selected != "" && ix.findLocked(ix.selected) == -1 {
		ix.selected = ""
	}
}

// InsertNew prepends. A freshly created note is the most recent by
// definition, so the front slot is correct without re-sorting.
func (ix *Index) InsertNew(n *core.Note) {
	if n == nil {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.notes = append([]*core.Note{n}, ix.notes...)
}

// Replace swaps in an updated record for the note matching n.ID. The note
// keeps its position in the sequence even though its modification time
// changed; recency order is restored on the next cold Load. Returns false
// when the id is unknown.
func (ix *Index) Replace(n *core.Note) bool {
	if n == nil {
		return false
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()

	i := ix.findLocked(n.ID)
	if i == -1 {
		return false
	}
	ix.notes[i] = n
	return true
}

// Remove drops the record with the given id, clearing the selection when
// it pointed at that note. Returns false when the id is unknown.
func (ix *Index) Remove(id string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	i := ix.findLocked(id)
	if i == -1 {
		return false
	}
	ix.notes = append(ix.notes[:i], ix.notes[i+1:]...)
	if ix.selected == id {
		ix.selected = ""
	}
	return true
}

// Select marks the note with the given id as the active selection.
// Selecting an unknown id is a no-op returning false.
func (ix *Index) Select(id string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.findLocked(id) == -1 {
		return false
	}
	ix.selected = id
	return true
}

// Selected returns the active selection, if any.
func (ix *Index) Selected() (*core.Note, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.selected == "" {
		return nil, false
	}
	if i := ix.findLocked(ix.selected); i != -1 {
		return ix.notes[i], true
	}
	return nil, false
}

// Search projects the sequence through a case-insensitive substring match
// against the title or the plain-text rendering of the content. An empty
// query matches everything. The projection preserves index order and
// never mutates the underlying sequence.
func (ix *Index) Search(query string) []*core.Note {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]*core.Note, 0, len(ix.notes))
	for _, n := range ix.notes {
		if n.Matches(query) {
			results = append(results, n)
		}
	}
	return results
}

// All returns a copy of the ordered sequence.
func (ix *Index) All() []*core.Note {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]*core.Note, len(ix.notes))
	copy(out, ix.notes)
	return out
}

// First returns the front of the sequence: on a freshly loaded set, the
// most recently modified note.
func (ix *Index) First() (*core.Note, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.notes) == 0 {
		return nil, false
	}
	return ix.notes[0], true
}

// Get returns the note with the given id.
func (ix *Index) Get(id string) (*core.Note, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if i := ix.findLocked(id); i != -1 {
		return ix.notes[i], true
	}
	return nil, false
}

// Len reports the size of the working set.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.notes)
}

func (ix *Index) findLocked(id string) int {
	for i, n := range ix.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
