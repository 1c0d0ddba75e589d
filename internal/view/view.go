// Package view holds the UI-side projection of the backend's clipboard
// history: the last authoritative snapshot, the search text, and a cursor
// into the filtered list.
//
// Every mutation is applied locally first and followed by an unconditional
// get-entries, so whatever the backend really did overwrites the optimistic
// guess within one round trip. A Model is owned by a single goroutine.
package view

import (
	"log/slog"
	"slices"
	"strings"

	"go.klb.dev/clipz/internal/protocol"
)

// Backend is the part of backend.Handle the model needs.
type Backend interface {
	Send(command string) error
	Drain() []protocol.Message
}

// Model is the reconciled view state. The zero value is a degraded model with
// no backend; use New.
type Model struct {
	backend Backend
	log     *slog.Logger

	entries []protocol.Entry
	search  string

	// focus indexes Filtered(), valid only when focused is true.
	focus   int
	focused bool
}

// New returns a model bound to b. A nil b yields a degraded model: the list
// stays empty and every mutating operation is a no-op.
func New(b Backend) *Model {
	return &Model{
		backend: b,
		log:     slog.With("component", "view"),
	}
}

// Degraded reports whether the model has no backend.
func (m *Model) Degraded() bool { return m.backend == nil }

// Entries returns a copy of the current snapshot in backend order.
func (m *Model) Entries() []protocol.Entry { return slices.Clone(m.entries) }

// Search returns the active search text.
func (m *Model) Search() string { return m.search }

// SetSearch changes the search text and re-validates the cursor against the
// new filtered view.
func (m *Model) SetSearch(s string) {
	if s == m.search {
		return
	}
	m.search = s
	m.clampFocus()
}

// Filtered returns the entries matching the search text.
func (m *Model) Filtered() []protocol.Entry {
	return Filter(m.entries, m.search)
}

// Filter keeps the entries whose content contains search, ignoring case.
// The result never shares a backing array with entries.
func Filter(entries []protocol.Entry, search string) []protocol.Entry {
	if search == "" {
		return slices.Clone(entries)
	}
	query := strings.ToLower(search)
	var out []protocol.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Content), query) {
			out = append(out, e)
		}
	}
	return out
}

// Refresh asks the backend for a fresh snapshot.
func (m *Model) Refresh() {
	if m.backend == nil {
		return
	}
	m.send(protocol.CmdGetEntries)
}

// Select makes entry id the current clipboard.
func (m *Model) Select(id uint64) {
	if m.backend == nil {
		return
	}
	for i := range m.entries {
		m.entries[i].IsCurrent = m.entries[i].ID == id
	}
	m.send(protocol.SelectEntry(id))
	m.Refresh()
}

// Remove deletes entry id. The reserved current entry is not special-cased
// here; callers decide whether to offer removing it.
func (m *Model) Remove(id uint64) {
	if m.backend == nil {
		return
	}
	m.entries = slices.DeleteFunc(m.entries, func(e protocol.Entry) bool { return e.ID == id })
	m.clampFocus()
	m.send(protocol.RemoveEntry(id))
	m.Refresh()
}

// Clear drops the history, keeping only the current entry if there is one.
func (m *Model) Clear() {
	if m.backend == nil {
		return
	}
	if cur, ok := protocol.Current(m.entries); ok {
		m.entries = []protocol.Entry{cur}
	} else {
		m.entries = nil
	}
	m.clampFocus()
	m.send(protocol.CmdClear)
	m.Refresh()
}

// Poll applies every message that has arrived since the last call and
// reports whether there were any.
func (m *Model) Poll() bool {
	if m.backend == nil {
		return false
	}
	msgs := m.backend.Drain()
	for _, msg := range msgs {
		m.apply(msg)
	}
	return len(msgs) > 0
}

func (m *Model) apply(msg protocol.Message) {
	switch msg.Type {
	case protocol.TypeEntries:
		m.entries = msg.Data
		m.clampFocus()
	case protocol.TypeSelectSuccess, protocol.TypeRemoveSuccess, protocol.TypeSuccess, protocol.TypeReady:
		// Acks carry nothing we can apply directly.
		m.Refresh()
	default:
	}
}

// Reset clears the search, puts the cursor back on the first entry and
// refreshes. Used when the UI is summoned again.
func (m *Model) Reset() {
	m.search = ""
	m.focused = false
	m.focus = 0
	m.EnsureFocus()
	m.Refresh()
}

func (m *Model) send(cmd string) {
	if err := m.backend.Send(cmd); err != nil {
		m.log.Warn("failed to send command", "cmd", cmd, "err", err)
	}
}
