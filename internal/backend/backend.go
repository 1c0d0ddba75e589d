// Package backend supervises the clipz backend process and moves commands and
// messages across its stdio boundary.
//
// A Handle owns the child process and two goroutines:
//
//	writer  drains the command queue onto the child's stdin, one line per command
//	reader  decodes the child's stdout line by line into the message queue
//
// Callers only ever touch the queues (Send, Drain), which never block, so the
// UI goroutine is isolated from process I/O.
package backend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.klb.dev/clipz/internal/protocol"
	"go.klb.dev/clipz/internal/wire"
)

var (
	// ErrBackendNotFound means no backend executable could be located.
	ErrBackendNotFound = errors.New("clipz backend not found")

	// ErrSendFailed means the command queue has been torn down, either by
	// Close or because the writer hit a stream error.
	ErrSendFailed = errors.New("failed to send command")
)

// DefaultArgs selects the machine-readable protocol and reduced-power mode.
var DefaultArgs = []string{"--json-api", "--low-power"}

// DefaultGrace is how long Close waits after sending quit before killing
// the child.
const DefaultGrace = 100 * time.Millisecond

// Config controls how the backend is found and launched.
type Config struct {
	// Path overrides discovery when non-empty.
	Path string
	// Args replaces DefaultArgs when non-nil.
	Args []string
	// Grace replaces DefaultGrace when positive.
	Grace time.Duration
	// Stderr receives the child's stderr. Defaults to os.Stderr.
	Stderr io.Writer
}

func (c Config) args() []string {
	if c.Args != nil {
		return c.Args
	}
	return DefaultArgs
}

func (c Config) grace() time.Duration {
	if c.Grace > 0 {
		return c.Grace
	}
	return DefaultGrace
}

// Handle is a running backend. The zero value is not usable; obtain one from
// Start, Spawn or NewFromPipes.
type Handle struct {
	cmd   *exec.Cmd // nil when created from pipes
	stdin io.Closer
	grace time.Duration
	log   *slog.Logger

	cmds *queue[string]
	msgs *queue[protocol.Message]

	writerDone chan struct{}
	readerDone chan struct{}

	closeOnce sync.Once
}

// Start discovers the backend executable and spawns it.
func Start(cfg Config) (*Handle, error) {
	path, err := Discover(cfg.Path)
	if err != nil {
		return nil, err
	}
	return Spawn(path, cfg)
}

// Spawn launches the executable at path with cfg's arguments and starts the
// pumps. The child's stderr is passed through untouched.
func Spawn(path string, cfg Config) (*Handle, error) {
	cmd := exec.Command(path, cfg.args()...)
	cmd.Stderr = cfg.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	configureChild(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start clipz backend %s: %w", path, err)
	}

	h := newHandle(stdin, stdout, cfg)
	h.cmd = cmd
	h.log = h.log.With("pid", cmd.Process.Pid)
	h.log.Info("backend started", "path", path, "args", cfg.args())
	return h, nil
}

// NewFromPipes runs the pumps over existing streams with no child process.
// Close still sends quit and then closes stdin.
func NewFromPipes(stdin io.WriteCloser, stdout io.Reader, cfg Config) *Handle {
	return newHandle(stdin, stdout, cfg)
}

func newHandle(stdin io.WriteCloser, stdout io.Reader, cfg Config) *Handle {
	h := &Handle{
		stdin:      stdin,
		grace:      cfg.grace(),
		log:        slog.With("component", "backend"),
		cmds:       newQueue[string](),
		msgs:       newQueue[protocol.Message](),
		writerDone: make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	go h.pumpCommands(wire.NewWriter(stdin))
	go h.pumpMessages(wire.NewReader(stdout))
	return h
}

// Send enqueues one command for the writer. It never blocks and fails only
// with ErrSendFailed once the queue is gone.
func (h *Handle) Send(command string) error {
	if !h.cmds.push(command) {
		return ErrSendFailed
	}
	return nil
}

// Drain returns every message received since the last call, oldest first,
// without blocking.
func (h *Handle) Drain() []protocol.Message {
	return h.msgs.drain()
}

// Done is closed when the reader stops, i.e. the backend went quiet.
func (h *Handle) Done() <-chan struct{} {
	return h.readerDone
}

// Close tears the backend down: best-effort quit, a fixed grace period, then
// kill and reap. It runs once; the handle is unusable afterwards.
func (h *Handle) Close() {
	h.closeOnce.Do(h.teardown)
}

func (h *Handle) teardown() {
	if err := h.Send(protocol.CmdQuit); err != nil {
		h.log.Debug("quit not queued", "err", err)
	}
	// The writer still flushes whatever was queued, quit included.
	h.cmds.close()

	time.Sleep(h.grace)

	if h.cmd != nil {
		if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			h.log.Warn("kill failed", "err", err)
		}
		// Wait also closes both pipes, which unblocks the pumps.
		err := h.cmd.Wait()
		h.log.Info("backend stopped", "status", exitStatus(err))
	} else {
		_ = h.stdin.Close()
	}
	h.msgs.close()
}

func exitStatus(err error) string {
	if err == nil {
		return "exit 0"
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ProcessState.String()
	}
	return err.Error()
}
