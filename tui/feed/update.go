package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages for the feed view. After Teardown every message is
// dropped.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.torn {
		return m, nil
	}
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.searchInput.Width = max(msg.Width-8, 10)
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch msg.(type) {
	case TimelineLoadedMsg, SearchLoadedMsg, tickMsg, RefreshMsg:
		return m.handleFeedLoadingMsg(msg)
	case ThreadLoadedMsg, ProfileLoadedMsg, MediaPreviewLoadedMsg:
		return m.handleDetailMsg(msg)
	case ActionResultMsg, ComposeClosedMsg:
		return m.handleActionMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	if m.searchFocused {
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}
