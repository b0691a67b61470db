package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalsky/app"
	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

const (
	defaultLimit           = 50
	defaultActorLimit      = 10
	defaultRefreshInterval = 30 * time.Second
	itemHeight             = 7 // rough rendered height of one post box
)

// Deps holds the services and settings the feed needs.
type Deps struct {
	Timeline app.TimelineService
	Post     app.PostService
	Account  app.AccountService
	Search   app.SearchService
	FullText app.FullTextSearcher // nil keeps post search client-side

	Limit           int
	ActorLimit      int
	RefreshInterval time.Duration
	ImagePreview    bool // draw image thumbnails under the selected post
	Log             zerolog.Logger
}

// --- Messages ---

// TimelineLoadedMsg carries the outcome of one timeline fetch. It is applied
// only if ReqSeq is the latest fetch issued.
type TimelineLoadedMsg struct {
	Result domain.Result[[]domain.Post]
	ReqSeq int
}

// SearchLoadedMsg carries the outcome of one search, sequenced like timeline
// fetches.
type SearchLoadedMsg struct {
	Query  string
	Result domain.Result[domain.SearchResult]
	ReqSeq int
}

// tickMsg drives the background refresh.
type tickMsg struct{}

// RefreshMsg asks the feed to re-fetch the timeline, optionally setting the
// status line.
type RefreshMsg struct {
	Status string
}

// ReplyMsg asks the root model to open the composer for Target.
type ReplyMsg struct {
	Target    domain.Post
	UseInline bool
}

// ComposeClosedMsg tells the feed the composer closed.
type ComposeClosedMsg struct {
	Posted bool
	Reply  bool
}

type actionKind int

const (
	actionLike actionKind = iota
	actionRepost
	actionFollow
	actionDelete
)

func (a actionKind) done(target string) string {
	switch a {
	case actionLike:
		return "Liked."
	case actionRepost:
		return "Reposted."
	case actionFollow:
		return "Following " + common.AtHandle(target) + "."
	case actionDelete:
		return "Post deleted."
	}
	return ""
}

// ActionResultMsg reports a like, repost, follow or delete.
type ActionResultMsg struct {
	Action actionKind
	Target string // post URI or followed handle
	Err    string // empty on success
}

// ThreadLoadedMsg carries a fetched thread.
type ThreadLoadedMsg struct {
	URI    string
	Result domain.Result[domain.Thread]
}

// ProfileLoadedMsg carries a fetched profile.
type ProfileLoadedMsg struct {
	Actor  string
	Result domain.Result[domain.Profile]
}

// MediaPreviewLoadedMsg carries one rendered image preview. An empty
// Preview with Err set marks the image as unavailable.
type MediaPreviewLoadedMsg struct {
	Key     string
	Preview string
	Err     error
}

// --- Model ---

// Model holds the state for the feed view: the timeline, search mode, the
// thread and profile sub-views and the reply target.
type Model struct {
	timeline        app.TimelineService
	post            app.PostService
	account         app.AccountService
	search          app.SearchService
	fullText        app.FullTextSearcher
	limit           int
	actorLimit      int
	refreshInterval time.Duration
	log             zerolog.Logger

	self domain.Session

	items      []domain.Post
	cursor     int
	startIndex int
	loading    bool
	err        string
	feedReqSeq int
	torn       bool

	searchInput     textinput.Model
	searchFocused   bool
	query           string // active query; "" means timeline mode
	searchSeq       int
	searchLoading   bool
	searchErr       string
	actors          []domain.Actor
	results         []domain.Post
	fullTextResults bool

	replyTarget *domain.Post

	confirmDelete bool
	deleteTarget  domain.Post

	showThread    bool
	threadURI     string
	thread        domain.Thread
	threadLoading bool
	threadErr     string
	threadCursor  int

	showProfile    bool
	profileActor   string
	profile        domain.Profile
	profileLoading bool
	profileErr     string

	showMediaPreview bool
	mediaPreview     map[string]string // keyed by mediaPreview*Key
	mediaLoading     map[string]bool

	status  string
	width   int
	height  int
	keys    common.KeyMap
	spinner spinner.Model
	help    help.Model
}
