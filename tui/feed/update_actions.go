package feed

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleActionMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ActionResultMsg:
		if msg.Err != "" {
			m.status = "Error: " + msg.Err
			return m, nil
		}
		m.status = msg.Action.done(msg.Target)
		if msg.Action == actionDelete && m.replyTarget != nil && m.replyTarget.URI == msg.Target {
			m.clearReplyTarget()
		}
		return m.refetchAfterChange(msg.Action == actionFollow)

	case ComposeClosedMsg:
		m.clearReplyTarget()
		if !msg.Posted {
			m.status = "Cancelled."
			return m, nil
		}
		m.status = "Posted."
		if msg.Reply {
			m.status = "Reply sent."
		}
		return m.refetchAfterChange(false)
	}
	return m, nil
}

// refetchAfterChange re-fetches the timeline and whatever sub-view is open.
func (m Model) refetchAfterChange(profileChanged bool) (Model, tea.Cmd) {
	m, cmd := m.refresh()
	cmds := []tea.Cmd{cmd}
	if m.showThread && m.threadURI != "" {
		cmds = append(cmds, m.fetchThread(m.threadURI))
	}
	if m.showProfile && profileChanged {
		cmds = append(cmds, m.fetchProfile(m.profileActor))
	}
	return m, tea.Batch(cmds...)
}
