package index

import (
	"github.com/aretw0/introspection"
)

// IndexState exposes internal state for observability.
type IndexState struct {
	Count    int    `json:"count"`
	Selected string `json:"selected,omitempty"`
}

// State implements introspection.Introspectable.
func (ix *Index) State() any {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return IndexState{
		Count:    len(ix.notes),
		Selected: ix.selected,
	}
}

// ComponentType implements introspection.Component.
func (ix *Index) ComponentType() string {
	return "index"
}

var _ introspection.Introspectable = (*Index)(nil)
var _ introspection.Component = (*Index)(nil)
