package fs

import (
	"sort"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Root          string   `json:"root"`
	Format        string   `json:"format"`
	Strict        bool     `json:"strict"`
	Codecs        []string `json:"codecs"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codecs := make([]string, 0, len(s.codecs))
	for ext := range s.codecs {
		codecs = append(codecs, ext)
	}
	sort.Strings(codecs)

	return StoreState{
		Root:          s.Root,
		Format:        s.config.Format,
		Strict:        s.config.Strict,
		Codecs:        codecs,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "storage"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
