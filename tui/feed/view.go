package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

// View renders the feed as a string.
func (m Model) View() string {
	if m.help.ShowAll {
		return m.renderHeader() + "\n" + m.renderKeyDialog()
	}
	if m.showProfile {
		return m.renderProfileView()
	}
	if m.showThread {
		return m.renderThreadView()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n")
	if m.searchFocused || m.query != "" {
		b.WriteString("  " + m.searchInput.View() + "\n\n")
	}

	// A failed refresh shows above whatever was loaded before it.
	if m.err != "" {
		b.WriteString(common.ErrorStyle.Render("  Error: "+m.err) + "\n")
		b.WriteString("  Press r to retry.\n\n")
	}

	if m.query != "" {
		b.WriteString(m.renderSearch())
	} else {
		b.WriteString(m.renderTimeline())
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) renderTimeline() string {
	switch {
	case m.loading && len(m.items) == 0:
		return fmt.Sprintf("  %s Loading timeline...\n", m.spinner.View())
	case len(m.items) == 0 && m.err == "":
		return "  Your timeline is empty. Follow some people or press p to post.\n"
	}
	return m.renderPostList(m.items)
}

func (m Model) renderSearch() string {
	var b strings.Builder
	if m.searchLoading {
		b.WriteString(fmt.Sprintf("  %s Searching for %q...\n", m.spinner.View(), m.query))
	}
	if m.searchErr != "" {
		b.WriteString(common.ErrorStyle.Render("  Search failed: "+m.searchErr) + "\n")
		b.WriteString(common.MetadataStyle.Render("  Showing matches from the loaded timeline.") + "\n")
	}

	if len(m.actors) > 0 {
		b.WriteString(common.AuthorStyle.Render("  People") + "\n")
		width := max(m.width-6, 20)
		for i, a := range m.actors {
			if i >= m.actorLimit {
				break
			}
			line := a.DisplayName + " " + common.AtHandle(a.Handle)
			b.WriteString("  " + common.MetadataStyle.Render("• ") + common.TruncateLine(line, width) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(common.AuthorStyle.Render("  Posts") + "\n")
	if len(m.results) == 0 {
		if !m.searchLoading {
			b.WriteString("  No posts found matching your search.\n")
		}
		return b.String()
	}
	b.WriteString(m.renderPostList(m.results))
	return b.String()
}

func (m Model) renderPostList(posts []domain.Post) string {
	start := min(max(m.startIndex, 0), max(len(posts)-1, 0))
	end := min(start+m.visibleCount(), len(posts))

	now := time.Now()
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderPostBox(posts[i], i == m.cursor, now) + "\n")
		if i == m.cursor {
			if panel := m.renderMediaPreviewPanel(posts[i], false); panel != "" {
				b.WriteString(panel + "\n")
			}
		}
	}
	if end < len(posts) {
		b.WriteString(common.MetadataStyle.Render(fmt.Sprintf("  … %d more", len(posts)-end)) + "\n")
	}
	return b.String()
}

func (m Model) renderPostBox(p domain.Post, selected bool, now time.Time) string {
	boxWidth := max(m.width-4, 30)
	textWidth := boxWidth - 4

	var lines []string
	if p.RepostedBy != "" {
		lines = append(lines, common.RepostActiveStyle.Render("⟲ reposted by "+common.AtHandle(p.RepostedBy)))
	}

	author := common.AuthorStyle.Render(p.Author.DisplayName) + " " + common.TimestampStyle.Render(common.AtHandle(p.Author.Handle))
	if m.isOwn(p) {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	if ago := common.Ago(p.CreatedAt, now); ago != "" {
		author += common.TimestampStyle.Render(" · " + ago)
	}
	lines = append(lines, author)

	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")
	for _, line := range strings.Split(truncateToLines(p.Text, textWidth-2, 3), "\n") {
		lines = append(lines, indicator+common.ContentStyle.Render(line))
	}
	if embed := embedSummary(p.Embed, textWidth); embed != "" {
		lines = append(lines, common.MetadataStyle.Render(embed))
	}
	lines = append(lines, metaLine(p, m.replyTarget != nil && m.replyTarget.URI == p.URI))

	if m.confirmDelete && m.deleteTarget.URI == p.URI {
		lines = append(lines, common.ConfirmStyle.Render("Delete this post? (y/n)"))
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(boxWidth).Render(strings.Join(lines, "\n"))
}
