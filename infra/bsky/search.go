package bsky

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// DefaultActorLimit is the number of actors returned by a search.
const DefaultActorLimit = 10

// searchService implements app.SearchService and app.FullTextSearcher.
type searchService struct {
	client     *Client
	timeline   *timelineService
	pageSize   int
	actorLimit int
}

// NewSearchService creates a SearchService. pageSize is the timeline page the
// post filter runs over.
func NewSearchService(client *Client, pageSize int) *searchService {
	return &searchService{
		client:     client,
		timeline:   NewTimelineService(client),
		pageSize:   pageSize,
		actorLimit: DefaultActorLimit,
	}
}

// WithActorLimit sets how many actors SearchPosts asks for.
func (s *searchService) WithActorLimit(n int) *searchService {
	s.actorLimit = clampLimit(n, DefaultActorLimit)
	return s
}

func (s *searchService) SearchActors(ctx context.Context, term string, limit int) domain.Result[[]domain.Actor] {
	actors, err := s.searchActors(ctx, term, limit)
	return toResult(s.client.log, "search_actors", actors, err)
}

func (s *searchService) searchActors(ctx context.Context, term string, limit int) ([]domain.Actor, error) {
	if _, err := s.client.sessionDID(); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("q", term)
	params.Set("limit", strconv.Itoa(clampLimit(limit, DefaultActorLimit)))

	var out struct {
		Actors []wireAuthor `json:"actors"`
	}
	if err := s.client.query(ctx, "app.bsky.actor.searchActors", params, &out); err != nil {
		return nil, fmt.Errorf("searching actors: %w", err)
	}
	return mapActors(out.Actors), nil
}

// SearchPosts searches actors remotely and filters the latest timeline page
// locally. Matches outside that page are never found.
func (s *searchService) SearchPosts(ctx context.Context, query string) domain.Result[domain.SearchResult] {
	res, err := s.searchPosts(ctx, query)
	return toResult(s.client.log, "search_posts", res, err)
}

func (s *searchService) searchPosts(ctx context.Context, query string) (domain.SearchResult, error) {
	actors, err := s.searchActors(ctx, query, s.actorLimit)
	if err != nil {
		return domain.SearchResult{}, err
	}
	posts, err := s.timeline.fetchTimeline(ctx, s.pageSize)
	if err != nil {
		return domain.SearchResult{}, err
	}
	return domain.SearchResult{
		Query:  query,
		Posts:  domain.FilterPosts(posts, strings.TrimSpace(query)),
		Actors: actors,
	}, nil
}

// SearchPostsFullText runs the service's full-text post search.
func (s *searchService) SearchPostsFullText(ctx context.Context, query string, limit int) domain.Result[[]domain.Post] {
	posts, err := s.searchPostsFullText(ctx, query, limit)
	return toResult(s.client.log, "search_posts_fulltext", posts, err)
}

func (s *searchService) searchPostsFullText(ctx context.Context, query string, limit int) ([]domain.Post, error) {
	if _, err := s.client.sessionDID(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(clampLimit(limit, DefaultTimelineLimit)))

	var out struct {
		Posts []wirePostView `json:"posts"`
	}
	if err := s.client.query(ctx, "app.bsky.feed.searchPosts", params, &out); err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	posts := make([]domain.Post, 0, len(out.Posts))
	for _, pv := range out.Posts {
		posts = append(posts, mapPost(pv))
	}
	return posts, nil
}
