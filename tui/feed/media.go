package feed

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "golang.org/x/image/webp"

	"github.com/CrestNiraj12/terminalsky/domain"
)

const (
	previewCols       = 24
	previewRows       = 6
	previewSingleCols = 48
	previewSingleRows = 12
	maxPreviewBytes   = 4 << 20
)

var previewHTTPClient = &http.Client{Timeout: 6 * time.Second}

type mediaPreviewTarget struct {
	URL string
	Alt string
}

// mediaPreviewTargets lists the images of an embed to draw, preferring the
// CDN thumbnail over the full-size image.
func mediaPreviewTargets(e *domain.Embed) []mediaPreviewTarget {
	if e == nil {
		return nil
	}
	out := make([]mediaPreviewTarget, 0, len(e.Images))
	seen := make(map[string]struct{}, len(e.Images))
	for _, img := range e.Images {
		url := strings.TrimSpace(img.Thumb)
		if url == "" {
			url = strings.TrimSpace(img.Fullsize)
		}
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, mediaPreviewTarget{URL: url, Alt: img.Alt})
	}
	return out
}

// ensureMediaPreviewCmd queues fetches for the selected post's images that
// are neither drawn nor in flight.
func (m *Model) ensureMediaPreviewCmd() tea.Cmd {
	if !m.showMediaPreview {
		return nil
	}
	p, ok := m.selected()
	if !ok {
		return nil
	}
	targets := mediaPreviewTargets(p.Embed)
	if len(targets) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(targets)+1)
	for _, t := range targets {
		key := mediaPreviewBaseKey(t.URL)
		if _, ok := m.mediaPreview[key]; ok || m.mediaLoading[key] {
			continue
		}
		m.mediaLoading[key] = true
		cmds = append(cmds, fetchMediaPreview(t.URL, key, previewCols, previewRows))
	}
	// A lone image gets a larger rendering as well.
	if len(targets) == 1 {
		key := mediaPreviewSingleKey(targets[0].URL)
		if _, ok := m.mediaPreview[key]; !ok && !m.mediaLoading[key] {
			m.mediaLoading[key] = true
			cmds = append(cmds, fetchMediaPreview(targets[0].URL, key, previewSingleCols, previewSingleRows))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func fetchMediaPreview(url, key string, cols, rows int) tea.Cmd {
	return func() tea.Msg {
		preview, err := loadStaticMediaPreview(url, cols, rows)
		return MediaPreviewLoadedMsg{Key: key, Preview: preview, Err: err}
	}
}

func loadStaticMediaPreview(url string, cols, rows int) (string, error) {
	resp, err := previewHTTPClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("preview status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		return "", err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding preview: %w", err)
	}
	return renderHalfBlocks(img, cols, rows), nil
}

func mediaPreviewBaseKey(url string) string {
	return "base|" + url
}

func mediaPreviewSingleKey(url string) string {
	return "single|" + url
}

// renderHalfBlocks draws img into cols x rows cells. Each cell is an upper
// half block: foreground is the top pixel, background the bottom one.
func renderHalfBlocks(img image.Image, cols, rows int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	cols = max(cols, 4)
	rows = max(rows, 2)
	pixelRows := rows * 2

	sample := func(x, py int) color.NRGBA {
		sx := b.Min.X + x*b.Dx()/cols
		sy := b.Min.Y + py*b.Dy()/pixelRows
		return color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
	}

	var out strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := sample(x, 2*y)
			bottom := sample(x, 2*y+1)
			fmt.Fprintf(&out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		out.WriteString("\x1b[0m")
		if y < rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
