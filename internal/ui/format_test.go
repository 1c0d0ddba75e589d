package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipz/internal/protocol"
)

func TestRelativeTime(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Minute, "just now"},
		{0, "just now"},
		{4 * time.Second, "just now"},
		{5 * time.Second, "5s ago"},
		{59 * time.Second, "59s ago"},
		{time.Minute, "1m ago"},
		{59 * time.Minute, "59m ago"},
		{2 * time.Hour, "2h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RelativeTime(now.Add(-c.ago).UnixMilli(), now), c.ago.String())
	}
}

func TestDisplayText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	assert.Equal(t, "report.pdf", DisplayText(protocol.Entry{Content: path, Kind: protocol.KindFile}))
	assert.Equal(t, "/gone/x.png", DisplayText(protocol.Entry{Content: "/gone/x.png", Kind: protocol.KindImage}))
	assert.Equal(t, "a b c", DisplayText(protocol.Entry{Content: "a\n b\tc\n"}))
	assert.Equal(t, path, DisplayText(protocol.Entry{Content: path}), "text entries are never treated as paths")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Empty(t, truncate("hello", 0))
}

func TestWindow(t *testing.T) {
	cases := []struct {
		n, focus, height int
		start, end       int
	}{
		{5, 0, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
		{20, 2, 5, 0, 5},
	}
	for _, c := range cases {
		start, end := window(c.n, c.focus, c.height)
		assert.Equal(t, c.start, start)
		assert.Equal(t, c.end, end)
	}
}
