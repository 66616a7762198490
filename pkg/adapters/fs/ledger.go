package fs

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// writeLedger remembers checksums of the store's own writes so the
// watcher can tell self-inflicted filesystem events from external edits.
// Keys are filenames relative to the root.
type writeLedger struct {
	mu   sync.Mutex
	sums map[string]uint64
}

func newWriteLedger() *writeLedger {
	return &writeLedger{sums: make(map[string]uint64)}
}

func (l *writeLedger) record(name string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sums[name] = xxhash.Sum64(data)
}

func (l *writeLedger) forget(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sums, name)
}

// matches reports whether data is byte-identical to the last content the
// store wrote under name.
func (l *writeLedger) matches(name string, data []byte) bool {
	l.mu.Lock()
	sum, ok := l.sums[name]
	l.mu.Unlock()
	return ok && sum == xxhash.Sum64(data)
}
