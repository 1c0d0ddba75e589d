package backend

import "go.klb.dev/clipz/internal/wire"

// pumpCommands writes queued commands in FIFO order, flushing after each.
// A write failure ends the pump for good and closes the queue so later Sends
// report ErrSendFailed instead of vanishing.
func (h *Handle) pumpCommands(w *wire.Writer) {
	defer close(h.writerDone)
	defer h.cmds.close()

	for {
		cmd, ok := h.cmds.pop()
		if !ok {
			return
		}
		if err := w.WriteLine(cmd); err != nil {
			h.log.Error("failed to write command to backend", "cmd", cmd, "err", err)
			return
		}
		h.log.Debug("command sent", "cmd", cmd)
	}
}
