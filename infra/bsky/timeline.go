package bsky

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CrestNiraj12/terminalsky/domain"
)

const (
	// DefaultTimelineLimit is the page size of a timeline fetch.
	DefaultTimelineLimit = 50
	maxPageLimit         = 100
	threadDepth          = 6
	threadParentHeight   = 80
)

// timelineService implements app.TimelineService using the Bluesky API.
type timelineService struct {
	client *Client
}

// NewTimelineService creates a TimelineService backed by Bluesky.
func NewTimelineService(client *Client) *timelineService {
	return &timelineService{client: client}
}

func (s *timelineService) FetchTimeline(ctx context.Context, limit int) domain.Result[[]domain.Post] {
	posts, err := s.fetchTimeline(ctx, limit)
	return toResult(s.client.log, "timeline", posts, err)
}

func (s *timelineService) fetchTimeline(ctx context.Context, limit int) ([]domain.Post, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit, DefaultTimelineLimit)))

	var out wireTimeline
	if err := s.client.query(ctx, "app.bsky.feed.getTimeline", params, &out); err != nil {
		return nil, fmt.Errorf("fetching timeline: %w", err)
	}
	return mapFeed(out.Feed), nil
}

func (s *timelineService) FetchThread(ctx context.Context, uri string) domain.Result[domain.Thread] {
	thread, err := s.fetchThread(ctx, uri)
	return toResult(s.client.log, "thread", thread, err)
}

func (s *timelineService) fetchThread(ctx context.Context, uri string) (domain.Thread, error) {
	if _, err := s.client.sessionDID(); err != nil {
		return domain.Thread{}, err
	}
	if _, err := ParseATURI(uri); err != nil {
		return domain.Thread{}, err
	}
	params := url.Values{}
	params.Set("uri", uri)
	params.Set("depth", strconv.Itoa(threadDepth))
	params.Set("parentHeight", strconv.Itoa(threadParentHeight))

	var out struct {
		Thread wireThreadNode `json:"thread"`
	}
	if err := s.client.query(ctx, "app.bsky.feed.getPostThread", params, &out); err != nil {
		return domain.Thread{}, fmt.Errorf("fetching thread: %w", err)
	}
	thread, ok := mapThread(out.Thread)
	if !ok {
		return domain.Thread{}, &APIError{StatusCode: 404, Code: "NotFound", Message: "Post not found"}
	}
	return thread, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxPageLimit)
}
