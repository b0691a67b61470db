package login

import (
	"strings"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

// View renders the login form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("🦋 "+domain.AppTitle) + common.TaglineStyle.Render("sign in") + "\n\n")

	b.WriteString("  " + m.identifier.View() + "\n")
	b.WriteString("  " + m.password.View() + "\n\n")

	switch {
	case m.Submitting():
		b.WriteString("  " + m.spinner.View() + " Signing in...\n")
	case m.err != "":
		b.WriteString(common.ErrorStyle.Render("  "+m.err) + "\n")
	}

	b.WriteString(common.StatusBarStyle.Render("  Use an app password from Settings → Privacy and security.\n  tab: switch field • enter: sign in • ctrl+c: quit"))
	return b.String()
}
