package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.klb.dev/clipz/internal/ipc"
)

func newActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Bring a running clipz UI back to a fresh search",
		Long: `Sends an activation request over the local socket. The running UI clears
its search, moves the cursor to the newest entry and refreshes the history.
Bind this to a desktop hotkey.

The socket is $CLIPZ_SOCKET if set, otherwise clipz.sock under
$XDG_RUNTIME_DIR or the temp dir (\\.\pipe\clipz on Windows).`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := ipc.Send(ipc.Activate); err != nil {
				return fmt.Errorf("no running clipz ui: %w", err)
			}
			return nil
		},
	}
}
