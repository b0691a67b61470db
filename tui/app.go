package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalsky/app"
	"github.com/CrestNiraj12/terminalsky/infra/config"
	"github.com/CrestNiraj12/terminalsky/infra/editor"
	"github.com/CrestNiraj12/terminalsky/tui/common"
	"github.com/CrestNiraj12/terminalsky/tui/compose"
	"github.com/CrestNiraj12/terminalsky/tui/feed"
	"github.com/CrestNiraj12/terminalsky/tui/login"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Session  app.SessionService
	Timeline app.TimelineService
	Post     app.PostService
	Account  app.AccountService
	Search   app.SearchService
	FullText app.FullTextSearcher // nil unless full-text search is enabled
	Editor   *editor.EnvEditor

	TimelineLimit   int
	ActorLimit      int
	RefreshInterval time.Duration
	ImagePreview    bool

	StatePath  string // UI state file; empty disables persistence
	Identifier string // pre-fills the login form
	Password   string // with Identifier, logs in without prompting
	Log        zerolog.Logger
}

type activeView int

const (
	loginView activeView = iota
	feedView
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps     Deps
	active   activeView
	login    login.Model
	feed     feed.Model
	hasFeed  bool
	compose  compose.Model
	keys     common.KeyMap
	width    int
	height   int
	quitting bool
}

// NewApp creates the root model with all dependencies wired. It starts on
// the login form.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: loginView,
		login:  login.New(deps.Session, deps.Identifier, deps.Password),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the login form.
func (a App) Init() tea.Cmd {
	return a.login.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a.quit()
		}
		if a.active == feedView && !a.feed.CapturesInput() && !a.feed.InSubview() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a.quit()
			case key.Matches(msg, a.keys.NewEditor):
				a.active = composeView
				a.compose = compose.NewEditor(a.deps.Post, a.deps.Editor, nil)
				return a, a.compose.Init()
			case key.Matches(msg, a.keys.NewInline):
				a.active = composeView
				a.compose = compose.NewInline(a.deps.Post, nil)
				return a, a.compose.Init()
			}
		}

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.hasFeed {
			a.feed, _ = a.feed.Update(msg)
		}
		return a, nil

	case login.LoggedInMsg:
		a.saveState(msg.Identifier)
		a.feed = feed.New(feed.Deps{
			Timeline:        a.deps.Timeline,
			Post:            a.deps.Post,
			Account:         a.deps.Account,
			Search:          a.deps.Search,
			FullText:        a.deps.FullText,
			Limit:           a.deps.TimelineLimit,
			ActorLimit:      a.deps.ActorLimit,
			RefreshInterval: a.deps.RefreshInterval,
			ImagePreview:    a.deps.ImagePreview,
			Log:             a.deps.Log,
		}).WithSession(msg.Session)
		if a.width > 0 {
			a.feed, _ = a.feed.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		a.hasFeed = true
		a.active = feedView
		return a, a.feed.Init()

	case feed.ReplyMsg:
		target := msg.Target
		a.active = composeView
		if msg.UseInline {
			a.compose = compose.NewInline(a.deps.Post, &target)
		} else {
			a.compose = compose.NewEditor(a.deps.Post, a.deps.Editor, &target)
		}
		return a, a.compose.Init()

	case compose.DoneMsg:
		a.active = feedView
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(feed.ComposeClosedMsg{Posted: !msg.Cancelled, Reply: msg.Reply})
		return a, cmd

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if a.active == loginView {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			cmds = append(cmds, cmd)
		}
		if a.hasFeed {
			var cmd tea.Cmd
			a.feed, cmd = a.feed.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	// Delegate to the active sub-model. The feed keeps receiving its own
	// background messages while the composer is open.
	switch a.active {
	case loginView:
		updated, cmd := a.login.Update(msg)
		a.login = updated
		return a, cmd
	case feedView:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		if _, isKey := msg.(tea.KeyMsg); isKey || !a.hasFeed {
			return a, cmd
		}
		var feedCmd tea.Cmd
		a.feed, feedCmd = a.feed.Update(msg)
		return a, tea.Batch(cmd, feedCmd)
	}

	return a, nil
}

// quit tears the feed down before exiting so no refresh outlives the program.
func (a App) quit() (tea.Model, tea.Cmd) {
	if a.hasFeed {
		a.feed = a.feed.Teardown()
	}
	a.quitting = true
	return a, tea.Quit
}

func (a App) saveState(identifier string) {
	if a.deps.StatePath == "" || identifier == "" {
		return
	}
	if err := config.SaveUIState(a.deps.StatePath, config.UIState{Identifier: identifier}); err != nil {
		a.deps.Log.Warn().Err(err).Str("path", a.deps.StatePath).Msg("saving ui state")
	}
}

// View renders the active sub-model.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.active {
	case loginView:
		return a.login.View()
	case feedView:
		return a.feed.View()
	case composeView:
		return a.compose.View()
	}
	return ""
}
