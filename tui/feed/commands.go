package feed

import (
	"context"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalsky/domain"
)

func (m Model) fetchTimeline(reqSeq int) tea.Cmd {
	timeline := m.timeline
	limit := m.limit
	return func() tea.Msg {
		return TimelineLoadedMsg{
			Result: timeline.FetchTimeline(context.Background(), limit),
			ReqSeq: reqSeq,
		}
	}
}

// runSearch searches actors remotely. Posts come from the client-side filter
// unless full-text search is wired.
func (m Model) runSearch(reqSeq int, query string) tea.Cmd {
	search := m.search
	fullText := m.fullText
	actorLimit := m.actorLimit
	limit := m.limit
	return func() tea.Msg {
		ctx := context.Background()
		if fullText == nil {
			return SearchLoadedMsg{Query: query, Result: search.SearchPosts(ctx, query), ReqSeq: reqSeq}
		}

		actors := search.SearchActors(ctx, query, actorLimit)
		if !actors.OK {
			return SearchLoadedMsg{Query: query, Result: domain.Fail[domain.SearchResult](actors.Kind, actors.Error), ReqSeq: reqSeq}
		}
		posts := fullText.SearchPostsFullText(ctx, query, limit)
		if !posts.OK {
			return SearchLoadedMsg{Query: query, Result: domain.Fail[domain.SearchResult](posts.Kind, posts.Error), ReqSeq: reqSeq}
		}
		return SearchLoadedMsg{
			Query:  query,
			Result: domain.Ok(domain.SearchResult{Query: query, Posts: posts.Data, Actors: actors.Data}),
			ReqSeq: reqSeq,
		}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m Model) runAction(kind actionKind, p domain.Post) tea.Cmd {
	post := m.post
	return func() tea.Msg {
		ctx := context.Background()
		var (
			ok  bool
			msg string
		)
		switch kind {
		case actionLike:
			res := post.Like(ctx, p.URI, p.CID)
			ok, msg = res.OK, res.Error
		case actionRepost:
			res := post.Repost(ctx, p.URI, p.CID)
			ok, msg = res.OK, res.Error
		case actionDelete:
			res := post.Delete(ctx, p.URI)
			ok, msg = res.OK, res.Error
		default:
			return ActionResultMsg{Action: kind, Target: p.URI, Err: "unsupported action"}
		}
		if ok {
			msg = ""
		}
		return ActionResultMsg{Action: kind, Target: p.URI, Err: msg}
	}
}

func (m Model) followAccount(did, handle string) tea.Cmd {
	account := m.account
	return func() tea.Msg {
		res := account.Follow(context.Background(), did)
		if !res.OK {
			return ActionResultMsg{Action: actionFollow, Target: handle, Err: res.Error}
		}
		return ActionResultMsg{Action: actionFollow, Target: handle}
	}
}

func (m Model) fetchThread(uri string) tea.Cmd {
	timeline := m.timeline
	return func() tea.Msg {
		return ThreadLoadedMsg{URI: uri, Result: timeline.FetchThread(context.Background(), uri)}
	}
}

func (m Model) fetchProfile(actor string) tea.Cmd {
	account := m.account
	return func() tea.Msg {
		return ProfileLoadedMsg{Actor: actor, Result: account.Profile(context.Background(), actor)}
	}
}

// embedURLs lists the openable links of a post's embed.
func embedURLs(p domain.Post) []string {
	if p.Embed == nil {
		return nil
	}
	var urls []string
	for _, img := range p.Embed.Images {
		if img.Fullsize != "" {
			urls = append(urls, img.Fullsize)
		} else if img.Thumb != "" {
			urls = append(urls, img.Thumb)
		}
	}
	if p.Embed.External != nil {
		urls = append(urls, p.Embed.External.URI)
	}
	return urls
}

func openURL(rawURL string) tea.Cmd {
	return openURLs([]string{rawURL})
}

func openURLs(urls []string) tea.Cmd {
	clean := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || !isSafeExternalURL(u) {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		clean = append(clean, u)
	}
	if len(clean) == 0 {
		return nil
	}
	return func() tea.Msg {
		for _, u := range clean {
			name, args := browserCommand(u)
			_ = exec.Command(name, args...).Start()
		}
		return nil
	}
}

func browserCommand(u string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{u}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", u}
	default:
		return "xdg-open", []string{u}
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
