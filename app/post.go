package app

import (
	"context"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// PostService publishes, reacts to and deletes posts.
// None of these update local state; callers re-fetch the timeline.
type PostService interface {
	// Post publishes a new top-level post.
	Post(ctx context.Context, text string) domain.Result[domain.PostRef]

	// Reply publishes text as a reply anchored to parent (root and parent both
	// reference parent).
	Reply(ctx context.Context, text string, parent domain.Post) domain.Result[domain.PostRef]

	// Like likes the post version identified by uri and cid.
	Like(ctx context.Context, uri, cid string) domain.Result[domain.PostRef]

	// Repost reposts the post version identified by uri and cid.
	Repost(ctx context.Context, uri, cid string) domain.Result[domain.PostRef]

	// Delete removes one of the user's own posts.
	Delete(ctx context.Context, uri string) domain.Result[domain.Unit]
}
