package wire_test

import (
	"bytes"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipz/internal/wire"
)

func TestReadLine(t *testing.T) {
	r := wire.NewReader(strings.NewReader("one\ntwo\r\n\nlast"))

	for _, want := range []string{"one", "two", "", "last"} {
		line, err := r.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, want, string(line))
	}

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine_Empty(t *testing.T) {
	_, err := wire.NewReader(strings.NewReader("")).ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLine_PropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	r := wire.NewReader(io.MultiReader(strings.NewReader("ok\n"), &failingReader{err: boom}))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(line))

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, boom)
}

func TestReadLine_TooLongIsSkipped(t *testing.T) {
	long := strings.Repeat("x", wire.MaxMessageSize+10)
	r := wire.NewReader(strings.NewReader(long + "\nok\n"))

	_, err := r.ReadLine()
	require.ErrorIs(t, err, wire.ErrLineTooLong)

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(line), "reader resyncs on the next line")
}

func TestReadLine_MaxSizeAccepted(t *testing.T) {
	exact := strings.Repeat("y", wire.MaxMessageSize)
	r := wire.NewReader(strings.NewReader(exact + "\r\n"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Len(t, line, wire.MaxMessageSize)
}

func TestReadLine_UnterminatedTooLong(t *testing.T) {
	r := wire.NewReader(strings.NewReader(strings.Repeat("z", wire.MaxMessageSize+1)))

	_, err := r.ReadLine()
	require.ErrorIs(t, err, wire.ErrLineTooLong)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

// repeatReader yields the same byte forever without allocating.
type repeatReader byte

func (b repeatReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b)
	}
	return len(p), nil
}

func TestReadLine_TooLongIsNotBuffered(t *testing.T) {
	const size = 16 * wire.MaxMessageSize
	src := io.MultiReader(io.LimitReader(repeatReader('a'), size), strings.NewReader("\nok\n"))
	r := wire.NewReader(src)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := r.ReadLine()
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, err, wire.ErrLineTooLong)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(8*wire.MaxMessageSize),
		"allocation is bounded by the line limit, not the line length")

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(line))
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)

	require.NoError(t, w.WriteLine("get-entries"))
	// flushed immediately, no second write needed
	assert.Equal(t, "get-entries\n", buf.String())

	require.NoError(t, w.WriteLine("select-entry:3"))
	assert.Equal(t, "get-entries\nselect-entry:3\n", buf.String())
}

func TestWriteLine_Error(t *testing.T) {
	boom := errors.New("pipe closed")
	w := wire.NewWriter(&failingWriter{err: boom})
	err := w.WriteLine("quit")
	assert.ErrorIs(t, err, boom)
}

type failingReader struct{ err error }

func (f *failingReader) Read([]byte) (int, error) { return 0, f.err }

type failingWriter struct{ err error }

func (f *failingWriter) Write([]byte) (int, error) { return 0, f.err }
