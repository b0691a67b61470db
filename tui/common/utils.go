package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// TruncateLine shortens s to width terminal cells, ending with "…" when cut.
// Newlines are folded to spaces.
func TruncateLine(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// Ago formats t relative to now ("just now", "5m", "3h", "2d") and falls back
// to a date after a week.
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Local().Format("Jan 02 2006")
	}
}

// AtHandle renders a handle with its leading "@".
func AtHandle(handle string) string {
	if handle == "" {
		return ""
	}
	return "@" + strings.TrimPrefix(handle, "@")
}
