package compose

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	if m.mode == editorMode {
		return m.status + "\n"
	}

	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("🦋 " + domain.AppTitle))
	if m.parent != nil {
		b.WriteString("  Reply to " + common.AuthorStyle.Render(common.AtHandle(m.parent.Author.Handle)) + "\n")
		b.WriteString(common.MetadataStyle.Render("  ┃ "+common.TruncateLine(m.parent.Text, 68)) + "\n\n")
	} else {
		b.WriteString("  New post\n\n")
	}
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n" + common.ErrorStyle.Render("Error: "+m.err))
	}

	count := uniseg.GraphemeClusterCount(strings.TrimSpace(m.textarea.Value()))
	counter := fmt.Sprintf("%d/%d", count, domain.MaxPostGraphemes)
	if count > domain.MaxPostGraphemes {
		counter = common.ErrorStyle.Render(counter)
	}

	if m.status != "" && m.submitting {
		b.WriteString(common.StatusBarStyle.Render(m.status))
	} else {
		b.WriteString(common.StatusBarStyle.Render("  ctrl+d: post • esc: cancel • " + counter))
	}
	return b.String()
}
