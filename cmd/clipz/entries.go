package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipz/internal/backend"
	"go.klb.dev/clipz/internal/protocol"
	"go.klb.dev/clipz/internal/ui"
)

const contentWidth = 60

// errBackendExited means the backend's output ended before it answered.
var errBackendExited = errors.New("backend exited before sending entries")

func newEntriesCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Print the clipboard history",
		Long: `Starts the backend, asks it for the current history, prints it and shuts
the backend down again. The current clipboard entry is marked with "*".`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runEntries(cmd.Context(), v) },
	}

	f := cmd.Flags()
	f.Bool("json", false, "output raw JSON")
	f.Duration("timeout", 5*time.Second, "how long to wait for the backend's reply")
	addBackendFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runEntries(ctx context.Context, v *viper.Viper) error {
	setupLogging(v)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, v.GetDuration("timeout"))
	defer cancel()

	h, err := backend.Start(backendConfig(v))
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Send(protocol.CmdGetEntries); err != nil {
		return err
	}
	entries, err := waitEntries(ctx, h, 20*time.Millisecond)
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		return printJSON(os.Stdout, entries)
	}
	printEntries(os.Stdout, entries, time.Now())
	return nil
}

// entriesSource is the part of backend.Handle waitEntries reads from.
type entriesSource interface {
	Drain() []protocol.Message
	Done() <-chan struct{}
}

// waitEntries polls src until an entries message arrives. Other messages
// (ready, acks) are skipped.
func waitEntries(ctx context.Context, src entriesSource, every time.Duration) ([]protocol.Entry, error) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		for _, msg := range src.Drain() {
			if msg.Type == protocol.TypeEntries {
				return msg.Data, nil
			}
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for entries: %w", ctx.Err())
		case <-src.Done():
			// The reader may have queued the reply just before stopping.
			for _, msg := range src.Drain() {
				if msg.Type == protocol.TypeEntries {
					return msg.Data, nil
				}
			}
			return nil, errBackendExited
		case <-t.C:
		}
	}
}

func printJSON(out io.Writer, entries []protocol.Entry) error {
	if entries == nil {
		entries = []protocol.Entry{}
	}
	enc, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(enc)); err != nil {
		return fmt.Errorf("write entries: %w", err)
	}
	return nil
}

func printEntries(out io.Writer, entries []protocol.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No clipboard history.")
		return
	}

	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "\tID\tKIND\tCOPIED\tCONTENT\n")
	_, _ = fmt.Fprintf(tw, "\t--\t----\t------\t-------\n")
	for _, e := range entries {
		marker := ""
		if e.IsCurrent {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			marker, e.ID, e.Kind.Label(), ui.RelativeTime(e.Timestamp, now),
			runewidth.Truncate(ui.DisplayText(e), contentWidth, "…"),
		)
	}
	_ = tw.Flush()
}
