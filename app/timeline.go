package app

import (
	"context"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// TimelineService fetches posts from the authenticated user's home timeline.
type TimelineService interface {
	// FetchTimeline returns one page of the timeline, newest first as delivered.
	FetchTimeline(ctx context.Context, limit int) domain.Result[[]domain.Post]

	// FetchThread returns a post with its parents and replies.
	FetchThread(ctx context.Context, uri string) domain.Result[domain.Thread]
}

// SearchService searches actors remotely and posts within the latest timeline page.
type SearchService interface {
	SearchActors(ctx context.Context, term string, limit int) domain.Result[[]domain.Actor]

	// SearchPosts combines a remote actor search with a client-side filter
	// over a freshly fetched timeline page.
	SearchPosts(ctx context.Context, query string) domain.Result[domain.SearchResult]
}

// FullTextSearcher is the optional remote post search. It is only wired
// when explicitly enabled; the default search stays client-side.
type FullTextSearcher interface {
	SearchPostsFullText(ctx context.Context, query string, limit int) domain.Result[[]domain.Post]
}
