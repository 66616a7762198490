package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/vellum/pkg/core"
)

// noteView is the machine-readable projection used by the --json outputs.
type noteView struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	IsFavorite bool      `json:"is_favorite"`
}

func toView(n *core.Note, withContent bool) noteView {
	v := noteView{
		ID:         n.ID,
		Title:      n.Title,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
		IsFavorite: n.IsFavorite,
	}
	if withContent {
		v.Content = n.Content
	}
	return v
}

func toViews(notes []*core.Note) []noteView {
	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, toView(n, false))
	}
	return views
}

func encodeJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printNoteLine writes the one-line layout shared by list and search.
// Favorites are marked with a star.
func printNoteLine(n *core.Note) {
	marker := " "
	if n.IsFavorite {
		marker = "*"
	}
	fmt.Printf("%s %s  %s  %s\n", marker, n.ID, n.ModifiedAt.Format("2006-01-02 15:04"), n.Title)
}
