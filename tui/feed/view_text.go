package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

// truncateToLines wraps text to width and keeps at most n lines.
func truncateToLines(text string, width, n int) string {
	width = max(width, 12)
	wrapped := lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(text))
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	lines = lines[:n]
	lines[n-1] = ansi.Truncate(lines[n-1], width-1, "") + "…"
	return strings.Join(lines, "\n")
}

// embedSummary describes a post's embed on one line.
func embedSummary(e *domain.Embed, width int) string {
	if e == nil {
		return ""
	}
	var parts []string
	switch n := len(e.Images); {
	case n == 1:
		img := "🖼 1 image"
		if e.Images[0].Alt != "" {
			img += ": " + e.Images[0].Alt
		}
		parts = append(parts, img)
	case n > 1:
		parts = append(parts, fmt.Sprintf("🖼 %d images", n))
	}
	if e.External != nil {
		label := e.External.Title
		if label == "" {
			label = e.External.URI
		}
		parts = append(parts, "🔗 "+label)
	}
	if e.QuotedURI != "" {
		parts = append(parts, "❝ quoted post")
	}
	if len(parts) == 0 {
		return ""
	}
	return common.TruncateLine(strings.Join(parts, "  "), width)
}

// metaLine renders the counts row with the viewer's like and repost state.
func metaLine(p domain.Post, replying bool) string {
	likeIcon, likeStyle := "♡", common.MetadataStyle
	if p.Liked {
		likeIcon, likeStyle = "♥", common.LikeActiveStyle
	}
	repostStyle := common.MetadataStyle
	if p.Reposted {
		repostStyle = common.RepostActiveStyle
	}
	line := fmt.Sprintf("%s %d  %s %d  %s",
		likeStyle.Render(likeIcon), p.LikeCount,
		repostStyle.Render("⟲"), p.RepostCount,
		common.MetadataStyle.Render(fmt.Sprintf("↩ %d", p.ReplyCount)))
	if replying {
		line += common.ConfirmStyle.Render("replying")
	}
	return line
}
