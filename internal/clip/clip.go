// Package clip writes to the local system clipboard. Build constraints select
// the implementation:
//
//	clip_system.go   — macOS, Windows, Linux via golang.design/x/clipboard
//	clip_other.go    — everything else, headless no-op
//
// The backend owns clipboard history; this package only serves the UI's yank
// key, which copies an entry without making it the backend's current entry.
package clip

// Writer is the interface all clipboard implementations satisfy.
type Writer interface {
	// Name returns a human-readable name for the implementation.
	Name() string

	// WriteText puts text on the clipboard.
	WriteText(text string) error

	// WriteImage puts PNG-encoded image data on the clipboard.
	WriteImage(png []byte) error
}
