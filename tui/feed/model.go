package feed

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

// New creates a feed model with injected dependencies. The first fetch is
// already counted as issued; Init sends it.
func New(deps Deps) Model {
	if deps.Limit <= 0 {
		deps.Limit = defaultLimit
	}
	if deps.ActorLimit <= 0 {
		deps.ActorLimit = defaultActorLimit
	}
	if deps.RefreshInterval <= 0 {
		deps.RefreshInterval = defaultRefreshInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1185FE"))

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search posts and people"
	ti.CharLimit = 256

	return Model{
		timeline:         deps.Timeline,
		post:             deps.Post,
		account:          deps.Account,
		search:           deps.Search,
		fullText:         deps.FullText,
		limit:            deps.Limit,
		actorLimit:       deps.ActorLimit,
		refreshInterval:  deps.RefreshInterval,
		log:              deps.Log,
		showMediaPreview: deps.ImagePreview,
		mediaPreview:     make(map[string]string),
		mediaLoading:     make(map[string]bool),
		loading:          true,
		feedReqSeq:       1,
		searchInput:      ti,
		keys:             common.DefaultKeyMap(),
		spinner:          s,
		help:             help.New(),
	}
}

// Init starts the initial fetch, the refresh timer and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchTimeline(m.feedReqSeq),
		m.scheduleTick(),
		m.spinner.Tick,
	)
}

// WithSession records the logged-in account so own posts can be recognized.
func (m Model) WithSession(sess domain.Session) Model {
	m.self = sess
	return m
}

// Teardown stops the feed. Ticks and results that arrive afterwards are
// dropped and no further tick is scheduled. Calling it again is a no-op.
func (m Model) Teardown() Model {
	if m.torn {
		return m
	}
	m.torn = true
	m.log.Debug().Int("req_seq", m.feedReqSeq).Msg("feed torn down")
	return m
}

// TornDown reports whether Teardown has been called.
func (m Model) TornDown() bool {
	return m.torn
}

// CapturesInput reports whether keys currently go to a prompt rather than
// to global bindings.
func (m Model) CapturesInput() bool {
	return m.searchFocused || m.confirmDelete
}

// InSubview reports whether a thread, profile or the key overlay is open.
func (m Model) InSubview() bool {
	return m.showThread || m.showProfile || m.help.ShowAll
}

// Posts returns the posts currently listed: search results in search mode,
// the timeline otherwise.
func (m Model) Posts() []domain.Post {
	if m.query != "" {
		return m.results
	}
	return m.items
}

// Timeline returns the last fetched timeline page.
func (m Model) Timeline() []domain.Post {
	return m.items
}

// Actors returns the actor results of the active search.
func (m Model) Actors() []domain.Actor {
	return m.actors
}

// Query returns the active search query; empty in timeline mode.
func (m Model) Query() string {
	return m.query
}

// Loading returns whether the feed is currently loading.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the last fetch error, if any.
func (m Model) Err() string {
	return m.err
}

// Status returns the status line.
func (m Model) Status() string {
	return m.status
}

// ReplyTarget returns the post currently being replied to.
func (m Model) ReplyTarget() (domain.Post, bool) {
	if m.replyTarget == nil {
		return domain.Post{}, false
	}
	return *m.replyTarget, true
}

func (m *Model) setReplyTarget(p domain.Post) {
	target := p
	m.replyTarget = &target
}

func (m *Model) clearReplyTarget() {
	m.replyTarget = nil
}

func (m Model) isOwn(p domain.Post) bool {
	return m.self.DID != "" && p.Author.DID == m.self.DID
}

// threadPosts lists the thread view's posts in display order.
func (m Model) threadPosts() []domain.Post {
	posts := make([]domain.Post, 0, len(m.thread.Parents)+1+len(m.thread.Replies))
	posts = append(posts, m.thread.Parents...)
	if m.thread.Post.URI != "" {
		posts = append(posts, m.thread.Post)
	}
	for _, r := range m.thread.Replies {
		posts = append(posts, r.Post)
	}
	return posts
}

// selected returns the post under the cursor in the active view.
func (m Model) selected() (domain.Post, bool) {
	if m.showThread {
		posts := m.threadPosts()
		if m.threadCursor < 0 || m.threadCursor >= len(posts) {
			return domain.Post{}, false
		}
		return posts[m.threadCursor], true
	}
	posts := m.Posts()
	if m.cursor < 0 || m.cursor >= len(posts) {
		return domain.Post{}, false
	}
	return posts[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.Posts())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m Model) visibleCount() int {
	if m.height == 0 {
		return 5
	}
	reserved := 9
	if m.query != "" {
		reserved += 3 + min(len(m.actors), m.actorLimit)
	}
	reserved += m.mediaPanelHeight()
	return max((m.height-reserved)/itemHeight, 1)
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+visible {
		m.startIndex = m.cursor - visible + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}
