package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/tui/common"
)

// renderMediaPreviewPanel draws the images of p. The list shows the first
// image only; the thread view shows all of them two per row.
func (m Model) renderMediaPreviewPanel(p domain.Post, all bool) string {
	if !m.showMediaPreview {
		return ""
	}
	targets := mediaPreviewTargets(p.Embed)
	if len(targets) == 0 {
		return ""
	}

	single := len(targets) == 1
	cols, rows := previewCols, previewRows
	if single {
		cols, rows = previewSingleCols, previewSingleRows
	}

	shown := targets
	if !all && len(shown) > 1 {
		shown = shown[:1]
	}
	tiles := make([]string, 0, len(shown))
	for _, t := range shown {
		tiles = append(tiles, m.renderMediaTile(t, cols, rows, single))
	}

	var body string
	if !all && len(targets) > 1 {
		more := common.MetadataStyle.Bold(true).
			Height(rows).
			AlignVertical(lipgloss.Center).
			Render(fmt.Sprintf("+%d more", len(targets)-1))
		body = lipgloss.JoinHorizontal(lipgloss.Top, tiles[0], "  ", more)
	} else {
		var grid []string
		for i := 0; i < len(tiles); i += 2 {
			if i+1 < len(tiles) {
				grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, tiles[i], "   ", tiles[i+1]))
			} else {
				grid = append(grid, tiles[i])
			}
		}
		body = strings.Join(grid, "\n\n")
	}

	header := common.MetadataStyle.Bold(true).Render("Images (i: hide, O: open)")
	return lipgloss.NewStyle().MarginLeft(2).Render(header + "\n" + body)
}

func (m Model) renderMediaTile(t mediaPreviewTarget, cols, rows int, single bool) string {
	baseKey := mediaPreviewBaseKey(t.URL)
	base, baseOK := m.mediaPreview[baseKey]
	hi, hiOK := m.mediaPreview[mediaPreviewSingleKey(t.URL)]

	content := "queued"
	switch {
	case single && hiOK && hi != "":
		content = hi
	case baseOK && base != "":
		content = base
	case baseOK:
		content = "preview unavailable"
	case m.mediaLoading[baseKey]:
		content = m.spinner.View() + " loading..."
	}

	alt := strings.TrimSpace(t.Alt)
	if alt == "" {
		alt = "(no alt)"
	}
	altLine := common.MetadataStyle.Width(cols).Render("alt: " + truncateToLines(alt, cols-5, 2))
	tile := lipgloss.NewStyle().
		Width(cols).
		Height(rows).
		AlignHorizontal(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
	return altLine + "\n" + tile
}

// mediaPanelHeight estimates the lines the panel takes under the selected post.
func (m Model) mediaPanelHeight() int {
	if !m.showMediaPreview {
		return 0
	}
	p, ok := m.selected()
	if !ok {
		return 0
	}
	switch n := len(mediaPreviewTargets(p.Embed)); {
	case n == 0:
		return 0
	case n == 1:
		return previewSingleRows + 4
	default:
		return previewRows + 4
	}
}
