package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalsky/domain"
)

type stubTimeline struct {
	posts  []domain.Post
	err    string
	thread domain.Thread
}

func (s *stubTimeline) FetchTimeline(context.Context, int) domain.Result[[]domain.Post] {
	if s.err != "" {
		return domain.Fail[[]domain.Post](domain.KindRemoteRejected, s.err)
	}
	return domain.Ok(s.posts)
}

func (s *stubTimeline) FetchThread(_ context.Context, uri string) domain.Result[domain.Thread] {
	t := s.thread
	if t.Post.URI == "" {
		t.Post = domain.Post{URI: uri}
	}
	return domain.Ok(t)
}

type stubPost struct {
	liked   []string
	deleted []string
	err     string
}

func (s *stubPost) Post(context.Context, string) domain.Result[domain.PostRef] {
	return domain.Ok(domain.PostRef{})
}

func (s *stubPost) Reply(context.Context, string, domain.Post) domain.Result[domain.PostRef] {
	return domain.Ok(domain.PostRef{})
}

func (s *stubPost) Like(_ context.Context, uri, _ string) domain.Result[domain.PostRef] {
	if s.err != "" {
		return domain.Fail[domain.PostRef](domain.KindRemoteRejected, s.err)
	}
	s.liked = append(s.liked, uri)
	return domain.Ok(domain.PostRef{URI: "at://did:plc:self/app.bsky.feed.like/1"})
}

func (s *stubPost) Repost(context.Context, string, string) domain.Result[domain.PostRef] {
	return domain.Ok(domain.PostRef{})
}

func (s *stubPost) Delete(_ context.Context, uri string) domain.Result[domain.Unit] {
	s.deleted = append(s.deleted, uri)
	return domain.Ok(domain.Unit{})
}

type stubAccount struct {
	followed []string
	profile  domain.Profile
}

func (s *stubAccount) Profile(_ context.Context, actor string) domain.Result[domain.Profile] {
	p := s.profile
	if p.Handle == "" {
		p.Handle = actor
	}
	return domain.Ok(p)
}

func (s *stubAccount) Follow(_ context.Context, did string) domain.Result[domain.PostRef] {
	s.followed = append(s.followed, did)
	return domain.Ok(domain.PostRef{})
}

type stubSearch struct {
	result domain.Result[domain.SearchResult]
	calls  int
}

func (s *stubSearch) SearchActors(context.Context, string, int) domain.Result[[]domain.Actor] {
	return domain.Ok(s.result.Data.Actors)
}

func (s *stubSearch) SearchPosts(_ context.Context, query string) domain.Result[domain.SearchResult] {
	s.calls++
	res := s.result
	res.Data.Query = query
	return res
}

type stubs struct {
	timeline *stubTimeline
	post     *stubPost
	account  *stubAccount
	search   *stubSearch
}

func samplePosts() []domain.Post {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []domain.Post{
		{
			URI:       "at://did:plc:self/app.bsky.feed.post/1",
			CID:       "cid1",
			Author:    domain.Author{DID: "did:plc:self", Handle: "bob.bsky.social", DisplayName: "bob"},
			Text:      "hello world",
			CreatedAt: created,
			LikeCount: 2,
		},
		{
			URI:       "at://did:plc:alice/app.bsky.feed.post/2",
			CID:       "cid2",
			Author:    domain.Author{DID: "did:plc:alice", Handle: "alice.bsky.social", DisplayName: "Alice"},
			Text:      "goodbye",
			CreatedAt: created,
		},
	}
}

func newTestModel() (Model, stubs) {
	s := stubs{
		timeline: &stubTimeline{posts: samplePosts()},
		post:     &stubPost{},
		account:  &stubAccount{},
		search:   &stubSearch{result: domain.Ok(domain.SearchResult{})},
	}
	m := New(Deps{
		Timeline: s.timeline,
		Post:     s.post,
		Account:  s.account,
		Search:   s.search,
		Log:      zerolog.Nop(),
	})
	m = m.WithSession(domain.Session{DID: "did:plc:self", Handle: "bob.bsky.social"})
	return m, s
}

// loadedModel returns a model with the sample timeline applied.
func loadedModel() (Model, stubs) {
	m, s := newTestModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	m, _ = m.Update(TimelineLoadedMsg{Result: domain.Ok(samplePosts()), ReqSeq: m.feedReqSeq})
	return m, s
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	return m.Update(msg)
}
