// Package ipc carries activation requests to a running clipz UI over a local
// socket (a Unix domain socket, or a named pipe on Windows).
//
// The protocol is one text line per connection. The only request is
// "activate", which brings the UI back to a fresh state: search cleared,
// cursor on the newest entry, history refreshed. A desktop hotkey bound to
// `clipz activate` is the usual sender.
package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"go.klb.dev/clipz/internal/wire"
)

// Activate is the single request line.
const Activate = "activate"

// ErrAlreadyRunning is returned by Listen when another UI owns the socket.
var ErrAlreadyRunning = errors.New("clipz ui already running")

// SocketPath returns the platform-appropriate path for the activation socket.
//
//   - Linux / macOS: $XDG_RUNTIME_DIR/clipz.sock, else $TMPDIR/clipz.sock
//   - Windows:       \\.\pipe\clipz
//
// $CLIPZ_SOCKET overrides both.
func SocketPath() string {
	if s := os.Getenv("CLIPZ_SOCKET"); s != "" {
		return s
	}
	return socketPath()
}

// IsRunning reports whether a UI appears to be listening on the socket. It
// does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := dialIPC(SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a listener on the activation socket. A stale socket file
// left by a crashed run is removed; a live one yields ErrAlreadyRunning.
func Listen() (net.Listener, error) {
	path := SocketPath()
	if IsRunning() {
		return nil, fmt.Errorf("%s: %w", path, ErrAlreadyRunning)
	}
	removeStale(path)
	ln, err := listenIPC(path)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}
	return ln, nil
}

// Send dials the socket and writes one request line.
func Send(request string) error {
	path := SocketPath()
	c, err := dialIPC(path)
	if err != nil {
		return fmt.Errorf("dial %s: %w", path, err)
	}
	defer c.Close()
	_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
	return wire.NewWriter(c).WriteLine(request)
}

// Serve accepts connections on ln until ctx is cancelled or ln is closed.
// Every "activate" request produces one non-blocking send on out; requests
// arriving while one is already pending collapse into it.
func Serve(ctx context.Context, ln net.Listener, out chan<- struct{}) {
	log := slog.With("component", "ipc")
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		c, err := ln.Accept()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				log.Error("accept failed", "err", err)
			}
			return
		}
		go handle(c, out, log)
	}
}

func handle(c net.Conn, out chan<- struct{}, log *slog.Logger) {
	defer c.Close()
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))

	line, err := wire.NewReader(c).ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		log.Debug("read request failed", "err", err)
		return
	}
	switch req := strings.TrimSpace(string(line)); req {
	case Activate:
		select {
		case out <- struct{}{}:
		default:
		}
	case "":
		// probe from IsRunning
	default:
		log.Debug("unknown request", "request", req)
	}
}
