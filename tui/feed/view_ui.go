package feed

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render("🦋 " + domain.AppTitle)
	if m.self.Handle != "" {
		title += " " + common.HandleStyle.Render(common.AtHandle(m.self.Handle))
	}
	label := "home timeline"
	if m.query != "" {
		label = "search: " + m.query
	}
	return title + common.TaglineStyle.Render(label) + "\n"
}

func (m Model) renderStatusLine() string {
	if m.status == "" {
		return ""
	}
	style := common.SuccessStyle
	if strings.HasPrefix(m.status, "Error") {
		style = common.ErrorStyle
	}
	return "  " + style.Render(m.status) + "\n"
}

func (m Model) helpView() string {
	if m.confirmDelete {
		return common.StatusBarStyle.Render("  y: delete • any other key: cancel")
	}
	if m.searchFocused {
		return common.StatusBarStyle.Render("  enter: search • esc: cancel • empty enter: back to timeline")
	}
	if m.showProfile {
		return common.StatusBarStyle.Render("  f: follow • o: open in browser • r: refresh • esc/q: back")
	}
	return common.StatusBarStyle.Width(max(m.width-2, 16)).Render("  " + m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderKeyDialog() string {
	body := "Keyboard Shortcuts\n\n" + m.help.FullHelpView(m.keys.FullHelp()) +
		"\n\nPress ?, esc, q, or enter to close."
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#1185FE")).
		Padding(1, 2).
		Margin(1, 2).
		Render(body)
}
