//go:build darwin || windows || linux

package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

type systemWriter struct{}

// New returns the system clipboard writer, or the headless writer if the
// display environment is unavailable. clipboard.Init runs here rather than in
// init() so commands that never yank don't log the warning.
func New() Writer {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return Headless()
	}
	return systemWriter{}
}

func (systemWriter) Name() string { return "system clipboard" }

func (systemWriter) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (systemWriter) WriteImage(png []byte) error {
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}
