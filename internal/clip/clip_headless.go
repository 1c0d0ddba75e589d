package clip

import "errors"

// ErrUnavailable is returned by the headless writer.
var ErrUnavailable = errors.New("clipboard unavailable")

// headlessWriter is used where no display server is reachable (SSH sessions,
// containers, CI). Every write fails with ErrUnavailable so the UI can say so.
type headlessWriter struct{}

// Headless returns the no-op writer.
func Headless() Writer { return headlessWriter{} }

func (headlessWriter) Name() string            { return "headless (no-op)" }
func (headlessWriter) WriteText(string) error  { return ErrUnavailable }
func (headlessWriter) WriteImage([]byte) error { return ErrUnavailable }
