// clipz: terminal front end for the clipz clipboard-history backend.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/clipz/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := newUICmd("clipz")
	root.Short = "Clipboard history in the terminal"
	root.Long = `clipz browses, searches and restores clipboard history kept by the clipz
backend. The backend is started as a child process speaking its JSON line
protocol and is shut down again when the UI exits.

Backend lookup order (first found wins):
  --backend / CLIPZ_BACKEND
  ./zig-out/bin/clipz
  <exe dir>/../Resources/bin/clipz

Config file search order (first found wins):
  /etc/clipz/clipz.toml
  $HOME/.config/clipz/clipz.toml
  path supplied via --config

All flags can be set via CLIPZ_<FLAG> env vars or config-file keys.`
	root.SilenceUsage = true

	root.AddCommand(
		newUICmd("ui"),
		newEntriesCmd(),
		newActivateCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipz %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(w io.Writer, interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(w, format, level)
}
