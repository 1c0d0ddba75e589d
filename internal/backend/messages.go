package backend

import (
	"errors"
	"io"
	"os"

	"go.klb.dev/clipz/internal/protocol"
	"go.klb.dev/clipz/internal/wire"
)

// pumpMessages decodes stdout until it fails. Lines that do not decode are
// dropped; the stream ending is the only thing that stops the pump.
func (h *Handle) pumpMessages(r *wire.Reader) {
	defer close(h.readerDone)

	for {
		line, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, wire.ErrLineTooLong) {
				h.log.Warn("dropping oversized line", "err", err)
				continue
			}
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				h.log.Info("backend output closed")
			} else {
				h.log.Error("failed to read line from backend", "err", err)
			}
			return
		}

		msg, err := protocol.Decode(line)
		if err != nil {
			h.log.Debug("dropping undecodable line", "err", err, "len", len(line))
			continue
		}
		if !h.msgs.push(*msg) {
			return
		}
		h.log.Debug("message received", "type", msg.Type)
	}
}
