package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalsky/domain"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.help.ShowAll {
		if key.Matches(msg, m.keys.ToggleHints) || key.Matches(msg, m.keys.Back) || msg.String() == "q" || msg.String() == "enter" {
			m.help.ShowAll = false
		}
		return m, nil
	}

	if m.searchFocused {
		return m.handleSearchInputKey(msg)
	}

	if m.confirmDelete {
		m.confirmDelete = false
		target := m.deleteTarget
		m.deleteTarget = domain.Post{}
		if msg.String() == "y" || msg.String() == "Y" {
			m.status = "Deleting..."
			return m, m.runAction(actionDelete, target)
		}
		m.status = "Delete cancelled."
		return m, nil
	}

	if m.showProfile {
		return m.handleProfileKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.help.ShowAll = true
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.showThread {
			m = m.closeThread()
			return m, m.ensureMediaPreviewCmd()
		}
		if m.query != "" {
			return m.clearSearch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.showThread {
			m.threadLoading = true
			return m, m.fetchThread(m.threadURI)
		}
		if m.query != "" {
			return m.startSearch(m.query)
		}
		return m.refresh()

	case key.Matches(msg, m.keys.Search):
		if m.showThread {
			return m, nil
		}
		m.searchFocused = true
		m.searchInput.SetValue(m.query)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.ToggleMedia):
		m.showMediaPreview = !m.showMediaPreview
		if !m.showMediaPreview {
			m.status = "Image previews off."
			m.ensureCursorVisible()
			return m, nil
		}
		m.status = "Image previews on."
		m.ensureCursorVisible()
		return m, m.ensureMediaPreviewCmd()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, m.ensureMediaPreviewCmd()

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, m.ensureMediaPreviewCmd()

	case key.Matches(msg, m.keys.Top):
		if m.showThread {
			m.threadCursor = 0
		} else {
			m.cursor = 0
			m.startIndex = 0
		}
		return m, m.ensureMediaPreviewCmd()
	}

	p, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Enter):
		if m.showThread && p.URI == m.threadURI {
			return m, nil
		}
		return m.openThread(p)

	case key.Matches(msg, m.keys.Reply), key.Matches(msg, m.keys.ReplyInline):
		m.setReplyTarget(p)
		inline := key.Matches(msg, m.keys.ReplyInline)
		return m, func() tea.Msg { return ReplyMsg{Target: p, UseInline: inline} }

	case key.Matches(msg, m.keys.Like):
		m.status = "Liking..."
		return m, m.runAction(actionLike, p)

	case key.Matches(msg, m.keys.Repost):
		m.status = "Reposting..."
		return m, m.runAction(actionRepost, p)

	case key.Matches(msg, m.keys.Follow):
		if m.isOwn(p) {
			m.status = "That's you."
			return m, nil
		}
		m.status = "Following..."
		return m, m.followAccount(p.Author.DID, p.Author.Handle)

	case key.Matches(msg, m.keys.Delete):
		if !m.isOwn(p) {
			m.status = "You can only delete your own posts."
			return m, nil
		}
		m.confirmDelete = true
		m.deleteTarget = p
		return m, nil

	case key.Matches(msg, m.keys.Profile):
		actor := p.Author.Handle
		if actor == "" {
			actor = p.Author.DID
		}
		return m.openProfile(actor)

	case key.Matches(msg, m.keys.Open):
		return m, openURL(p.WebURL())

	case key.Matches(msg, m.keys.OpenMedia):
		urls := embedURLs(p)
		if len(urls) == 0 {
			m.status = "No media or links on this post."
			return m, nil
		}
		return m, openURLs(urls)
	}
	return m, nil
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searchFocused = false
		m.searchInput.Blur()
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m.clearSearch()
		}
		return m.startSearch(query)

	case tea.KeyEsc:
		m.searchFocused = false
		m.searchInput.Blur()
		m.searchInput.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), msg.String() == "q":
		return m.closeProfile(), nil

	case key.Matches(msg, m.keys.ToggleHints):
		m.help.ShowAll = true
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.profileLoading = true
		return m, m.fetchProfile(m.profileActor)

	case key.Matches(msg, m.keys.Follow):
		if m.profile.DID == "" || m.profileLoading {
			return m, nil
		}
		if m.profile.DID == m.self.DID {
			m.status = "That's you."
			return m, nil
		}
		if m.profile.FollowingURI != "" {
			m.status = "Already following " + m.profile.Handle + "."
			return m, nil
		}
		m.status = "Following..."
		return m, m.followAccount(m.profile.DID, m.profile.Handle)

	case key.Matches(msg, m.keys.Open):
		if m.profile.Handle == "" {
			return m, nil
		}
		return m, openURL(domain.ProfileWebURL(m.profile.Handle))
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.showThread {
		n := len(m.threadPosts())
		m.threadCursor = min(max(m.threadCursor+delta, 0), max(n-1, 0))
		return
	}
	n := len(m.Posts())
	m.cursor = min(max(m.cursor+delta, 0), max(n-1, 0))
	m.ensureCursorVisible()
}
