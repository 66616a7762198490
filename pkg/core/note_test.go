package core

import (
	"strings"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	n := New()

	if n.ID == "" {
		t.Error("expected a generated ID")
	}
	if n.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", n.Title, DefaultTitle)
	}
	if n.Content != "" {
		t.Errorf("content = %q, want empty", n.Content)
	}
	if !n.CreatedAt.Equal(n.ModifiedAt) {
		t.Error("expected CreatedAt == ModifiedAt at construction")
	}
	if n.IsFavorite {
		t.Error("expected IsFavorite to default to false")
	}
}

func TestTitleDerivation(t *testing.T) {
	longLine := strings.Repeat("a", 60)

	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"empty content", "", DefaultTitle},
		{"whitespace markup", "<p>   </p>", DefaultTitle},
		{"plain multiline", "Hello\nworld", "Hello"},
		{"markup multiline", "<p>Hello</p><p>world</p>", "Hello"},
		{"inline markup", "<b>Bold</b> start", "Bold start"},
		{"exactly at limit", strings.Repeat("x", 50), strings.Repeat("x", 50)},
		{"over limit", longLine, strings.Repeat("a", 50) + "..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := New()
			n.UpdateContent(tc.content)
			if n.Title != tc.want {
				t.Errorf("title = %q, want %q", n.Title, tc.want)
			}
		})
	}
}

func TestTitleDerivationIdempotent(t *testing.T) {
	n := New()
	n.UpdateContent("<h1>Heading</h1><p>body</p>")
	first := n.Title

	n.UpdateContent("<h1>Heading</h1><p>body</p>")
	if n.Title != first {
		t.Errorf("second derivation gave %q, first gave %q", n.Title, first)
	}
}

func TestTitleTruncationCountsRunes(t *testing.T) {
	line := strings.Repeat("é", 60)
	n := New()
	n.UpdateContent(line)

	want := strings.Repeat("é", 50) + "..."
	if n.Title != want {
		t.Errorf("title = %q, want %q", n.Title, want)
	}
}

func TestUpdateContentTouchesModifiedAtOnly(t *testing.T) {
	n := New()
	created := n.CreatedAt
	before := n.ModifiedAt

	time.Sleep(time.Millisecond)
	n.UpdateContent("changed")

	if !n.CreatedAt.Equal(created) {
		t.Error("CreatedAt must not change on content update")
	}
	if !n.ModifiedAt.After(before) {
		t.Error("ModifiedAt must advance on content update")
	}
}

func TestSetFavoriteOutsideContentLifecycle(t *testing.T) {
	n := New()
	n.UpdateContent("body")
	modified := n.ModifiedAt

	n.SetFavorite(true)

	if !n.IsFavorite {
		t.Error("expected favorite to be set")
	}
	if !n.ModifiedAt.Equal(modified) {
		t.Error("SetFavorite must not touch ModifiedAt")
	}
}

func TestRestoreAppliesDefaults(t *testing.T) {
	n := Restore("", "", "", time.Time{}, time.Time{}, false)

	if n.ID == "" {
		t.Error("expected a fresh ID for an empty identifier")
	}
	if n.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", n.Title, DefaultTitle)
	}
	if n.CreatedAt.IsZero() || n.ModifiedAt.IsZero() {
		t.Error("expected zero timestamps to default to now")
	}
}

func TestRestoreRebuildsPlainCache(t *testing.T) {
	n := Restore("id-1", "Report", "<p>quarterly <b>figures</b></p>", time.Now(), time.Now(), false)

	if !n.Matches("quarterly figures") {
		t.Error("expected restored note to match against stripped content")
	}
}

func TestMatches(t *testing.T) {
	n := New()
	n.UpdateContent("<h1>Shopping</h1><p>buy <b>milk</b> and eggs</p>")

	cases := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches", "", true},
		{"title match", "shopping", true},
		{"title match different case", "SHOPPING", true},
		{"content-only match", "milk and eggs", true},
		{"markup never matches", "<b>", false},
		{"no match", "laundry", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Matches(tc.query); got != tc.want {
				t.Errorf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}
