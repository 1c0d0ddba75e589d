package ipc_test

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipz/internal/ipc"
)

func useTempSocket(t *testing.T) string {
	t.Helper()
	// Unix socket paths are short; t.TempDir can exceed the limit on macOS.
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	path := filepath.Join(dir, "c.sock")
	t.Setenv("CLIPZ_SOCKET", path)
	return path
}

func serve(t *testing.T) (chan struct{}, net.Listener) {
	t.Helper()
	ln, err := ipc.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		ipc.Serve(ctx, ln, out)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return out, ln
}

func TestSocketPath_EnvOverride(t *testing.T) {
	path := useTempSocket(t)
	assert.Equal(t, path, ipc.SocketPath())
}

func TestActivate_RoundTrip(t *testing.T) {
	useTempSocket(t)
	out, _ := serve(t)

	assert.True(t, ipc.IsRunning())
	require.NoError(t, ipc.Send(ipc.Activate))

	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("activation not delivered")
	}
}

func TestActivate_Coalesces(t *testing.T) {
	useTempSocket(t)
	out, _ := serve(t)

	for range 3 {
		require.NoError(t, ipc.Send(ipc.Activate))
	}
	require.Eventually(t, func() bool { return len(out) == 1 }, 2*time.Second, 5*time.Millisecond)
	// Later requests were dropped, not queued behind a full channel.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, out, 1)
}

func TestUnknownRequestIgnored(t *testing.T) {
	useTempSocket(t)
	out, _ := serve(t)

	require.NoError(t, ipc.Send("explode"))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, out)
}

func TestListen_AlreadyRunning(t *testing.T) {
	useTempSocket(t)
	serve(t)

	_, err := ipc.Listen()
	assert.ErrorIs(t, err, ipc.ErrAlreadyRunning)
}

func TestNotRunning(t *testing.T) {
	useTempSocket(t)
	assert.False(t, ipc.IsRunning())
	assert.Error(t, ipc.Send(ipc.Activate))
}

func TestServe_StopsOnCancel(t *testing.T) {
	useTempSocket(t)
	ln, err := ipc.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ipc.Serve(ctx, ln, make(chan struct{}, 1))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	assert.False(t, ipc.IsRunning())
}
