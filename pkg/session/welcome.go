package session

import (
	"context"
	"fmt"

	"github.com/aretw0/vellum/pkg/core"
)

// welcomeContent is the first-run note seeded into an empty vault. Its
// heading line becomes the derived title.
const welcomeContent = `<h1>Welcome to Vellum!</h1>
<p>This vault was empty, so here is your first note.</p>
<br>
<h2>What you get:</h2>
<ul>
    <li><b>Rich text</b> - notes are HTML, titles derive from the first line</li>
    <li><b>Auto-save</b> - edits are debounced and persisted in the background</li>
    <li><b>Search</b> - case-insensitive lookup across titles and bodies</li>
    <li><b>Favorites</b> - flag the notes you keep coming back to</li>
</ul>
<br>
<p>Create your next note and start writing!</p>`

func (s *Session) seedWelcome(ctx context.Context) (*core.Note, error) {
	n := core.New()
	n.UpdateContent(welcomeContent)
	if err := s.store.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("seed welcome note: %w", err)
	}
	return n, nil
}
