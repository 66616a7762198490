package core

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/vellum/pkg/richtext"
)

// DefaultTitle is the title of a note whose content is empty or renders
// to empty plain text.
const DefaultTitle = "Untitled"

// TitleLimit is the maximum number of characters kept from the first line
// of a note's plain-text rendering before the ellipsis marker is appended.
const TitleLimit = 50

// Note is the central entity of the domain: a single user-authored record.
// Title is derived from Content and never independently settable; ID and
// CreatedAt are immutable after construction. Callers must mutate content
// through UpdateContent so the derived fields stay consistent.
type Note struct {
	ID         string
	Title      string
	Content    string
	CreatedAt  time.Time
	ModifiedAt time.Time
	IsFavorite bool

	// plain caches the markup-stripped rendering of Content, recomputed
	// whenever Content changes. Search matches against it; it is never
	// persisted.
	plain string
}

// New creates a fresh note with a generated identifier, the default title,
// empty content and both timestamps set to now.
func New() *Note {
	now := time.Now()
	return &Note{
		ID:         uuid.NewString(),
		Title:      DefaultTitle,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Restore rebuilds a note from persisted fields, applying the
// graceful-degradation defaults: empty id gets a fresh identifier, empty
// title falls back to DefaultTitle, zero timestamps become now. The
// plain-text cache is recomputed from the restored content.
func Restore(id, title, content string, createdAt, modifiedAt time.Time, favorite bool) *Note {
	now := time.Now()
	if id == "" {
		id = uuid.NewString()
	}
	if title == "" {
		title = DefaultTitle
	}
	if createdAt.IsZero() {
		createdAt = now
	}
	if modifiedAt.IsZero() {
		modifiedAt = now
	}
	return &Note{
		ID:         id,
		Title:      title,
		Content:    content,
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		IsFavorite: favorite,
		plain:      richtext.ToPlain(content),
	}
}

// UpdateContent sets the content, bumps ModifiedAt and re-derives the
// title. It always succeeds and mutates the note in place.
func (n *Note) UpdateContent(content string) {
	n.Content = content
	n.ModifiedAt = time.Now()
	n.plain = richtext.ToPlain(content)
	n.Title = deriveTitle(n.plain)
}

// SetFavorite flips the favorite flag. The flag lives outside the content
// lifecycle, so ModifiedAt is left untouched.
func (n *Note) SetFavorite(fav bool) {
	n.IsFavorite = fav
}

// PlainText returns the cached markup-stripped rendering of the content.
func (n *Note) PlainText() string {
	return n.plain
}

// DeriveTitle computes the title for the given markup content:
// DefaultTitle when the content strips to nothing, otherwise the first
// non-empty line of the plain text, truncated to TitleLimit characters
// with an ellipsis marker when longer.
func DeriveTitle(content string) string {
	return deriveTitle(richtext.ToPlain(content))
}

func deriveTitle(plain string) string {
	first := richtext.FirstLine(plain)
	if first == "" {
		return DefaultTitle
	}

	runes := []rune(first)
	if len(runes) <= TitleLimit {
		return first
	}
	return string(runes[:TitleLimit]) + "..."
}

// Matches reports whether the note matches a case-insensitive substring
// query against its title or its plain-text content. The empty query
// matches every note.
func (n *Note) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(n.plain), q)
}
