package bsky

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// postService implements app.PostService using the Bluesky API.
type postService struct {
	client *Client
	now    func() time.Time
}

// NewPostService creates a PostService backed by Bluesky.
func NewPostService(client *Client) *postService {
	return &postService{client: client, now: time.Now}
}

func (s *postService) Post(ctx context.Context, text string) domain.Result[domain.PostRef] {
	ref, err := s.publish(ctx, text, nil)
	return toResult(s.client.log, "post", ref, err)
}

// Reply always anchors both root and parent to the post being replied to.
func (s *postService) Reply(ctx context.Context, text string, parent domain.Post) domain.Result[domain.PostRef] {
	ref, err := s.reply(ctx, text, parent)
	return toResult(s.client.log, "reply", ref, err)
}

func (s *postService) reply(ctx context.Context, text string, parent domain.Post) (domain.PostRef, error) {
	if _, err := s.client.sessionDID(); err != nil {
		return domain.PostRef{}, err
	}
	if _, err := ParseATURI(parent.URI); err != nil {
		return domain.PostRef{}, err
	}
	if parent.CID == "" {
		return domain.PostRef{}, fmt.Errorf("%w: missing cid for %q", domain.ErrInvalidURI, parent.URI)
	}
	target := strongRef{URI: parent.URI, CID: parent.CID}
	return s.publish(ctx, text, &replyRef{Root: target, Parent: target})
}

func (s *postService) publish(ctx context.Context, text string, reply *replyRef) (domain.PostRef, error) {
	if _, err := s.client.sessionDID(); err != nil {
		return domain.PostRef{}, err
	}
	text, err := ValidatePostText(text)
	if err != nil {
		return domain.PostRef{}, err
	}

	record := postRecord{
		Type:      collectionPost,
		Text:      text,
		CreatedAt: recordTime(s.now()),
		Reply:     reply,
		Facets:    buildFacets(ctx, text, s.client.resolveHandle),
	}
	return s.client.createRecord(ctx, collectionPost, record)
}

func (s *postService) Like(ctx context.Context, uri, cid string) domain.Result[domain.PostRef] {
	ref, err := s.subject(ctx, collectionLike, uri, cid)
	return toResult(s.client.log, "like", ref, err)
}

func (s *postService) Repost(ctx context.Context, uri, cid string) domain.Result[domain.PostRef] {
	ref, err := s.subject(ctx, collectionRepost, uri, cid)
	return toResult(s.client.log, "repost", ref, err)
}

func (s *postService) subject(ctx context.Context, collection, uri, cid string) (domain.PostRef, error) {
	if _, err := s.client.sessionDID(); err != nil {
		return domain.PostRef{}, err
	}
	if _, err := ParseATURI(uri); err != nil {
		return domain.PostRef{}, err
	}
	if cid == "" {
		return domain.PostRef{}, fmt.Errorf("%w: missing cid for %q", domain.ErrInvalidURI, uri)
	}
	record := subjectRecord{
		Type:      collection,
		Subject:   strongRef{URI: uri, CID: cid},
		CreatedAt: recordTime(s.now()),
	}
	return s.client.createRecord(ctx, collection, record)
}

func (s *postService) Delete(ctx context.Context, uri string) domain.Result[domain.Unit] {
	err := s.delete(ctx, uri)
	return toResult(s.client.log, "delete", domain.Unit{}, err)
}

func (s *postService) delete(ctx context.Context, uri string) error {
	if _, err := s.client.sessionDID(); err != nil {
		return err
	}
	parsed, err := ParseATURI(uri)
	if err != nil {
		return err
	}
	if parsed.Collection != collectionPost {
		return fmt.Errorf("%w: %q is not a post", domain.ErrInvalidURI, uri)
	}
	return s.client.deleteRecord(ctx, parsed)
}

// ValidatePostText trims text and checks it against the service limits.
func ValidatePostText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrEmptyPost
	}
	if uniseg.GraphemeClusterCount(text) > domain.MaxPostGraphemes {
		return "", domain.ErrPostTooLong
	}
	return text, nil
}

// resolveHandle maps a handle to its DID.
func (c *Client) resolveHandle(ctx context.Context, handle string) (string, error) {
	params := url.Values{}
	params.Set("handle", handle)
	var out struct {
		DID string `json:"did"`
	}
	if err := c.query(ctx, "com.atproto.identity.resolveHandle", params, &out); err != nil {
		return "", fmt.Errorf("resolving %s: %w", handle, err)
	}
	return out.DID, nil
}
