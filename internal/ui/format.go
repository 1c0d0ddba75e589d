package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"go.klb.dev/clipz/internal/protocol"
)

// RelativeTime renders a backend timestamp (ms since epoch) against now.
// Future timestamps from a skewed clock read as "just now".
func RelativeTime(ts int64, now time.Time) string {
	d := now.Sub(time.UnixMilli(ts))
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// DisplayText is what a row shows for e: the base name for image and file
// entries whose path still exists, otherwise the content on one line.
func DisplayText(e protocol.Entry) string {
	if e.Kind != protocol.KindText {
		if _, err := os.Stat(e.Content); err == nil {
			return filepath.Base(e.Content)
		}
	}
	return strings.Join(strings.Fields(e.Content), " ")
}

// truncate cuts s to at most w terminal cells.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// window returns the [start, end) slice of n rows to show in a list of the
// given height, keeping focus near the middle.
func window(n, focus, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := focus - height/2
	start = max(start, 0)
	start = min(start, n-height)
	return start, start + height
}
