// Package wire handles newline-delimited framing over the backend's stdio
// streams.
//
// Wire format, both directions:
//
//	<payload>\n
//
// Outbound payloads are plain text commands; inbound payloads are JSON
// objects. Framing is identical either way, so this package never looks
// inside a line.
package wire

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxMessageSize is the largest line we will read (16 MiB).
const MaxMessageSize = 16 * 1024 * 1024

// ErrLineTooLong is returned by ReadLine for a line over MaxMessageSize.
// The oversized line has been consumed; the next ReadLine starts fresh.
var ErrLineTooLong = errors.New("wire: line too long")

// Reader splits a byte stream into lines.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r with a 64 KiB read buffer.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// ReadLine reads one line and strips the trailing "\n" or "\r\n". A final
// unterminated line is returned as-is; the next call reports io.EOF.
//
// A line longer than MaxMessageSize is consumed but not kept: buffering stops
// at the limit and ReadLine returns ErrLineTooLong once the line ends.
func (r *Reader) ReadLine() ([]byte, error) {
	var (
		line []byte
		n    int // bytes consumed for this line, terminator included
	)
	for {
		chunk, err := r.br.ReadSlice('\n')
		n += len(chunk)
		if n <= maxRaw {
			line = append(line, chunk...)
		}
		switch {
		case err == nil:
			return finish(line, n)
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && n > 0:
			return finish(line, n)
		default:
			return nil, err
		}
	}
}

// maxRaw leaves room for a "\r\n" terminator after a maximal line.
const maxRaw = MaxMessageSize + 2

func finish(line []byte, n int) ([]byte, error) {
	if n > maxRaw {
		return nil, fmt.Errorf("%w (%d bytes)", ErrLineTooLong, n)
	}
	line = trim(line)
	if len(line) > MaxMessageSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrLineTooLong, n)
	}
	return line, nil
}

func trim(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}

// Writer writes lines and flushes after every one so the peer sees each
// command without batching delay.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteLine writes s followed by a newline, then flushes.
func (w *Writer) WriteLine(s string) error {
	if _, err := w.bw.WriteString(s); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
