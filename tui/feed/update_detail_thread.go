package feed

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalsky/domain"
)

func (m Model) handleDetailMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ThreadLoadedMsg:
		if !m.showThread || msg.URI != m.threadURI {
			return m, nil
		}
		m.threadLoading = false
		if !msg.Result.OK {
			m.threadErr = msg.Result.Error
			return m, nil
		}
		m.threadErr = ""
		m.thread = msg.Result.Data
		m.threadCursor = len(m.thread.Parents)
		return m, m.ensureMediaPreviewCmd()

	case ProfileLoadedMsg:
		if !m.showProfile || msg.Actor != m.profileActor {
			return m, nil
		}
		m.profileLoading = false
		if !msg.Result.OK {
			m.profileErr = msg.Result.Error
			return m, nil
		}
		m.profileErr = ""
		m.profile = msg.Result.Data
		return m, nil

	case MediaPreviewLoadedMsg:
		delete(m.mediaLoading, msg.Key)
		if msg.Err != nil {
			m.log.Debug().Err(msg.Err).Str("key", msg.Key).Msg("image preview failed")
			m.mediaPreview[msg.Key] = ""
			return m, nil
		}
		m.mediaPreview[msg.Key] = msg.Preview
		return m, nil
	}
	return m, nil
}

func (m Model) openThread(p domain.Post) (Model, tea.Cmd) {
	m.showThread = true
	m.threadURI = p.URI
	m.thread = domain.Thread{Post: p}
	m.threadCursor = 0
	m.threadLoading = true
	m.threadErr = ""
	m.confirmDelete = false
	return m, m.fetchThread(p.URI)
}

func (m Model) closeThread() Model {
	m.showThread = false
	m.threadURI = ""
	m.thread = domain.Thread{}
	m.threadCursor = 0
	m.threadLoading = false
	m.threadErr = ""
	return m
}

func (m Model) openProfile(actor string) (Model, tea.Cmd) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return m, nil
	}
	m.showProfile = true
	m.profileActor = actor
	m.profile = domain.Profile{}
	m.profileLoading = true
	m.profileErr = ""
	m.confirmDelete = false
	return m, m.fetchProfile(actor)
}

func (m Model) closeProfile() Model {
	m.showProfile = false
	m.profileActor = ""
	m.profile = domain.Profile{}
	m.profileLoading = false
	m.profileErr = ""
	return m
}
