package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

func (m Model) renderThreadView() string {
	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n")
	b.WriteString(common.AuthorStyle.Render("  Thread") + "\n\n")

	if m.threadErr != "" {
		b.WriteString(common.ErrorStyle.Render("  Error: "+m.threadErr) + "\n\n")
	}
	if m.threadLoading {
		b.WriteString(fmt.Sprintf("  %s Loading thread...\n", m.spinner.View()))
	}

	now := time.Now()
	posts := m.threadPosts()
	parents := len(m.thread.Parents)
	for i, p := range posts {
		depth := 0
		if i > parents {
			depth = m.thread.Replies[i-parents-1].Depth
		}
		box := m.renderPostBox(p, i == m.threadCursor, now)
		if depth > 0 {
			box = lipgloss.NewStyle().MarginLeft(min(depth, 6) * 2).Render(box)
		}
		if i == parents && parents > 0 {
			b.WriteString(common.MetadataStyle.Render("  ─── post ───") + "\n")
		}
		b.WriteString(box + "\n")
		if i == m.threadCursor {
			if panel := m.renderMediaPreviewPanel(p, true); panel != "" {
				b.WriteString(panel + "\n")
			}
		}
		if i == parents && len(m.thread.Replies) > 0 {
			b.WriteString(common.MetadataStyle.Render(fmt.Sprintf("  ─── %d replies ───", len(m.thread.Replies))) + "\n")
		}
	}
	if !m.threadLoading && m.threadErr == "" && len(m.thread.Replies) == 0 {
		b.WriteString(common.MetadataStyle.Render("  No replies yet.") + "\n")
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) renderProfileView() string {
	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n")

	switch {
	case m.profileLoading:
		b.WriteString(fmt.Sprintf("  %s Loading %s...\n", m.spinner.View(), common.AtHandle(m.profileActor)))
	case m.profileErr != "":
		b.WriteString(common.ErrorStyle.Render("  Error: "+m.profileErr) + "\n")
	default:
		b.WriteString(renderProfileCard(m.profile, m.self, max(m.width-4, 30)) + "\n")
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func renderProfileCard(p domain.Profile, self domain.Session, width int) string {
	name := p.DisplayName
	if name == "" {
		name = p.Handle
	}
	header := common.AuthorStyle.Render(name) + " " + common.TimestampStyle.Render(common.AtHandle(p.Handle))
	switch {
	case p.DID != "" && p.DID == self.DID:
		header += common.OwnBadgeStyle.Render("(you)")
	case p.FollowingURI != "":
		header += common.OwnBadgeStyle.Render("following")
	}

	lines := []string{header}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		lines = append(lines, "", common.ContentStyle.Render(truncateToLines(desc, width-4, 6)))
	}
	lines = append(lines, "", common.MetadataStyle.Render(fmt.Sprintf(
		"%d followers  %d following  %d posts", p.FollowersCount, p.FollowsCount, p.PostsCount)))

	return common.SelectedStyle.Width(width).Render(strings.Join(lines, "\n"))
}
