package view

import "go.klb.dev/clipz/internal/protocol"

// Focus returns the cursor's index into Filtered().
func (m *Model) Focus() (int, bool) {
	return m.focus, m.focused
}

// Focused returns the entry under the cursor.
func (m *Model) Focused() (protocol.Entry, bool) {
	if !m.focused {
		return protocol.Entry{}, false
	}
	f := m.Filtered()
	if m.focus >= len(f) {
		return protocol.Entry{}, false
	}
	return f[m.focus], true
}

// EnsureFocus puts the cursor on the first entry if none is set and the
// filtered view is non-empty. Called before every render.
func (m *Model) EnsureFocus() {
	if !m.focused && len(m.Filtered()) > 0 {
		m.focus, m.focused = 0, true
	}
}

// MovePrev moves the cursor up, wrapping from the top to the bottom.
func (m *Model) MovePrev() {
	n := len(m.Filtered())
	switch {
	case n == 0:
		return
	case !m.focused:
		m.focus, m.focused = 0, true
	case m.focus > 0:
		m.focus--
	default:
		m.focus = n - 1
	}
}

// MoveNext moves the cursor down, wrapping from the bottom to the top.
func (m *Model) MoveNext() {
	n := len(m.Filtered())
	switch {
	case n == 0:
		return
	case !m.focused:
		m.focus, m.focused = 0, true
	case m.focus < n-1:
		m.focus++
	default:
		m.focus = 0
	}
}

// Confirm selects the entry under the cursor. It reports whether there was one.
func (m *Model) Confirm() bool {
	e, ok := m.Focused()
	if !ok {
		return false
	}
	m.Select(e.ID)
	return true
}

// clampFocus keeps the cursor inside the filtered view: past the end it moves
// to the last entry, and it is cleared when the view is empty.
func (m *Model) clampFocus() {
	if !m.focused {
		return
	}
	n := len(m.Filtered())
	switch {
	case n == 0:
		m.focus, m.focused = 0, false
	case m.focus >= n:
		m.focus = n - 1
	}
}
