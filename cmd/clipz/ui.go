package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipz/internal/backend"
	"go.klb.dev/clipz/internal/clip"
	"go.klb.dev/clipz/internal/ipc"
	"go.klb.dev/clipz/internal/logging"
	"go.klb.dev/clipz/internal/ui"
)

func newUICmd(use string) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   use,
		Short: "Browse and restore clipboard history",
		Long: `Starts the clipz backend and opens the history browser.

Type to filter, ↑/↓ to move, enter to make an entry the current clipboard,
ctrl+d to remove it, ctrl+x to clear the history, ctrl+y to copy it without
touching the backend, esc to quit.

While the UI runs it listens on the activation socket; "clipz activate"
resets it to a fresh search. Starting a second UI activates the first one
instead.

Logs go to --log-file because the terminal belongs to the UI.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runUI(v) },
	}

	f := cmd.Flags()
	f.Duration("poll-interval", ui.DefaultPoll, "how often backend messages are applied to the view")
	f.String("log-file", logging.DefaultFile(), "log file used while the UI owns the terminal")
	f.Bool("no-activation", false, "do not listen on the activation socket")
	addBackendFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runUI(v *viper.Viper) error {
	logFile, err := logging.OpenFile(v.GetString("log-file"))
	if err != nil {
		return err
	}
	defer logFile.Close()
	resolveLogging(logFile, false, v.GetString("log-format"), v.GetString("log-level"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	activate := make(chan struct{}, 1)
	if !v.GetBool("no-activation") {
		ln, err := ipc.Listen()
		switch {
		case errors.Is(err, ipc.ErrAlreadyRunning):
			slog.Info("ui already running, activating it")
			return ipc.Send(ipc.Activate)
		case err != nil:
			slog.Warn("activation socket unavailable", "err", err)
		default:
			slog.Info("activation socket listening", "path", ipc.SocketPath())
			go ipc.Serve(ctx, ln, activate)
		}
	}

	cfg := backendConfig(v)
	cfg.Stderr = logFile

	opts := ui.Options{
		Activate:  activate,
		Clipboard: clip.New(),
		Poll:      v.GetDuration("poll-interval"),
	}
	// Leave opts.Backend as a nil interface on failure so the view runs degraded.
	h, err := backend.Start(cfg)
	if err != nil {
		slog.Warn("backend unavailable, running degraded", "err", err)
	} else {
		defer h.Close()
		opts.Backend = h
		opts.Done = h.Done()
	}
	slog.Info("clipz ui starting", "version", Version, "clipboard", opts.Clipboard.Name())

	p := tea.NewProgram(ui.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
