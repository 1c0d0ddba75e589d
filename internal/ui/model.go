// Package ui is the terminal front end: a bubbletea program rendering the
// reconciled history from package view and turning keys into view operations.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"go.klb.dev/clipz/internal/clip"
	"go.klb.dev/clipz/internal/protocol"
	"go.klb.dev/clipz/internal/view"
)

// DefaultPoll is how often arrived messages are folded into the view.
const DefaultPoll = 100 * time.Millisecond

const (
	kindWidth = 6
	ageWidth  = 9
	// header, search, status and help lines
	chromeHeight = 4
)

// Options wires the model to its collaborators. Only Backend is required for
// a working list; a nil Backend runs degraded.
type Options struct {
	Backend view.Backend
	// Done is closed when the backend's output ends.
	Done <-chan struct{}
	// Activate delivers activation requests from the ipc socket.
	Activate <-chan struct{}
	// Clipboard receives yanks. Defaults to clip.Headless.
	Clipboard clip.Writer
	Poll      time.Duration
	Now       func() time.Time
}

type tickMsg time.Time

// Model is the bubbletea model.
type Model struct {
	view     *view.Model
	done     <-chan struct{}
	activate <-chan struct{}
	clip     clip.Writer
	poll     time.Duration
	now      func() time.Time
	log      *slog.Logger

	keys   keyMap
	help   help.Model
	search textinput.Model

	width, height int
	status        string
	exited        bool
}

// New builds the model and requests the first snapshot.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Search"
	ti.Focus()

	m := &Model{
		view:     view.New(opts.Backend),
		done:     opts.Done,
		activate: opts.Activate,
		clip:     opts.Clipboard,
		poll:     opts.Poll,
		now:      opts.Now,
		log:      slog.With("component", "ui"),
		keys:     newKeyMap(),
		help:     help.New(),
		search:   ti,
	}
	if m.clip == nil {
		m.clip = clip.Headless()
	}
	if m.poll <= 0 {
		m.poll = DefaultPoll
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.view.Refresh()
	return m
}

// State returns the underlying reconciled view.
func (m *Model) State() *view.Model { return m.view }

// Status returns the transient status line.
func (m *Model) Status() string { return m.status }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tickMsg:
		m.onTick()
		cmd = m.tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-runewidth.StringWidth(m.search.Prompt)-1, 0)
	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.onKey(msg)
		if quit {
			return m, tea.Quit
		}
	}
	m.view.EnsureFocus()
	return m, cmd
}

func (m *Model) onTick() {
	m.view.Poll()

	select {
	case <-m.activate:
		m.search.SetValue("")
		m.status = ""
		m.view.Reset()
	default:
	}

	if !m.exited && m.done != nil {
		select {
		case <-m.done:
			m.exited = true
			m.log.Warn("backend exited")
		default:
		}
	}
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return nil, true
	case key.Matches(msg, m.keys.up):
		m.view.MovePrev()
	case key.Matches(msg, m.keys.down):
		m.view.MoveNext()
	case key.Matches(msg, m.keys.choose):
		if m.view.Confirm() {
			m.status = "selected"
		}
	case key.Matches(msg, m.keys.remove):
		m.removeFocused()
	case key.Matches(msg, m.keys.clear):
		m.view.Clear()
		m.status = "history cleared"
	case key.Matches(msg, m.keys.yank):
		m.yankFocused()
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.view.SetSearch(m.search.Value())
		return cmd, false
	}
	return nil, false
}

func (m *Model) removeFocused() {
	e, ok := m.view.Focused()
	if !ok {
		return
	}
	if e.ID == protocol.CurrentEntryID {
		m.status = "the current clipboard can't be removed"
		return
	}
	m.view.Remove(e.ID)
	m.status = "removed"
}

func (m *Model) yankFocused() {
	e, ok := m.view.Focused()
	if !ok {
		return
	}
	if err := yank(m.clip, e); err != nil {
		m.log.Warn("yank failed", "id", e.ID, "err", err)
		m.status = "yank failed: " + err.Error()
		return
	}
	m.status = "yanked to " + m.clip.Name()
}

// yank copies e to w. Images go over as PNG data when the file is readable;
// everything else is copied as its text content.
func yank(w clip.Writer, e protocol.Entry) error {
	if e.Kind == protocol.KindImage {
		b, err := os.ReadFile(e.Content)
		if err == nil {
			return w.WriteImage(b)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read image: %w", err)
		}
	}
	return w.WriteText(e.Content)
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	b.WriteString(m.search.View())
	b.WriteByte('\n')

	rows := max(height-chromeHeight, 1)
	b.WriteString(m.list(width, rows))

	b.WriteString(statusStyle.Render(truncate(m.status, width)))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	h := titleStyle.Render("Clipboard History")
	n := len(m.view.Entries())
	noun := "entries"
	if n == 1 {
		noun = "entry"
	}
	h += "  " + countStyle.Render(fmt.Sprintf("%d %s", n, noun))
	switch {
	case m.view.Degraded():
		h += "  " + warnStyle.Render("backend unavailable")
	case m.exited:
		h += "  " + warnStyle.Render("backend exited")
	}
	return h
}

func (m *Model) list(width, rows int) string {
	entries := m.view.Filtered()
	var b strings.Builder
	if len(entries) == 0 {
		msg := "No clipboard history"
		if m.view.Search() != "" {
			msg = "No matches"
		}
		b.WriteString(emptyStyle.Render(msg))
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("\n", rows-1))
		return b.String()
	}

	focus, focused := m.view.Focus()
	start, end := window(len(entries), focus, rows)
	now := m.now()
	for i := start; i < end; i++ {
		b.WriteString(m.row(entries[i], focused && i == focus, width, now))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("\n", rows-(end-start)))
	return b.String()
}

func (m *Model) row(e protocol.Entry, focused bool, width int, now time.Time) string {
	marker := "  "
	if e.IsCurrent {
		marker = "● "
	}
	age := RelativeTime(e.Timestamp, now)
	textWidth := width - runewidth.StringWidth(marker) - kindWidth - ageWidth - 2
	text := truncate(DisplayText(e), textWidth)
	text += strings.Repeat(" ", max(textWidth-runewidth.StringWidth(text), 0))

	line := marker + kindStyle(e.Kind).Render(e.Kind.Label()) + " " + text + " " +
		ageStyle.Render(fmt.Sprintf("%*s", ageWidth, age))
	switch {
	case focused:
		return focusStyle.Render(line)
	case e.IsCurrent:
		return currentStyle.Render(line)
	default:
		return line
	}
}
