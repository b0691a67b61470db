package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterPosts returns the posts whose text, author handle or author display
// name contains query, ignoring case. It only ever sees the page it is given;
// it is not a substitute for a remote full-text search.
// An empty query returns posts unchanged.
func FilterPosts(posts []Post, query string) []Post {
	if query == "" {
		return posts
	}
	lower := cases.Lower(language.Und)
	q := lower.String(query)

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(lower.String(p.Text), q) ||
			strings.Contains(lower.String(p.Author.Handle), q) ||
			strings.Contains(lower.String(p.Author.DisplayName), q) {
			out = append(out, p)
		}
	}
	return out
}
