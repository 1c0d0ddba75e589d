// Package protocol defines the clipz backend wire protocol.
//
// The backend speaks a line-oriented protocol over its stdin/stdout:
//
//	client → backend   plain text commands, one per line (get-entries, select-entry:<id>, ...)
//	backend → client   one JSON object per line, discriminated by "type"
//
// Unrecognised message types decode to TypeUnknown rather than failing, so a
// newer backend never breaks an older client.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Type identifies the kind of inbound message.
type Type string

const (
	TypeEntries       Type = "entries"
	TypeSelectSuccess Type = "select-success"
	TypeRemoveSuccess Type = "remove-success"
	TypeSuccess       Type = "success"
	TypeReady         Type = "ready"

	// TypeUnknown is the catch-all for any tag this client does not know.
	// It is never sent by the backend under this name.
	TypeUnknown Type = "unknown"
)

// Outbound commands without arguments.
const (
	CmdGetEntries = "get-entries"
	CmdClear      = "clear"
	CmdQuit       = "quit"
)

// CurrentEntryID is the reserved id of the entry mirroring the live system
// clipboard. The UI never offers to remove it.
const CurrentEntryID uint64 = 1

// SelectEntry returns the command that makes entry id the current clipboard.
func SelectEntry(id uint64) string {
	return "select-entry:" + strconv.FormatUint(id, 10)
}

// RemoveEntry returns the command that deletes entry id from the history.
func RemoveEntry(id uint64) string {
	return "remove-entry:" + strconv.FormatUint(id, 10)
}

// Kind is the content kind of an entry.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindFile
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindFile:
		return "file"
	default:
		return "text"
	}
}

// Label returns the human-facing name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindImage:
		return "Image"
	case KindFile:
		return "File"
	default:
		return "Text"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Only the three wire names
// are accepted.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "text":
		*k = KindText
	case "image":
		*k = KindImage
	case "file":
		*k = KindFile
	default:
		return fmt.Errorf("unknown entry type %q", b)
	}
	return nil
}

// Entry is one clipboard item as known to the backend.
// Content is literal text for KindText and a filesystem path otherwise.
type Entry struct {
	ID        uint64 `json:"id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // ms since epoch, backend clock
	Kind      Kind   `json:"type"`
	IsCurrent bool   `json:"isCurrent"`
}

// UnmarshalJSON requires id, content and timestamp; type defaults to text and
// isCurrent to false.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID        *uint64 `json:"id"`
		Content   *string `json:"content"`
		Timestamp *int64  `json:"timestamp"`
		Kind      *Kind   `json:"type"`
		IsCurrent bool    `json:"isCurrent"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.ID == nil:
		return errors.New("entry: missing id")
	case raw.Content == nil:
		return errors.New("entry: missing content")
	case raw.Timestamp == nil:
		return errors.New("entry: missing timestamp")
	}
	*e = Entry{
		ID:        *raw.ID,
		Content:   *raw.Content,
		Timestamp: *raw.Timestamp,
		IsCurrent: raw.IsCurrent,
	}
	if raw.Kind != nil {
		e.Kind = *raw.Kind
	}
	return nil
}

// Message is one decoded line from the backend. Only the fields belonging to
// Type are meaningful.
type Message struct {
	Type Type

	// entries
	Data []Entry

	// select-success, remove-success
	Index uint64

	// success
	Text string
}

// envelope is the outbound wire shape used by Encode.
type envelope struct {
	Type    *Type    `json:"type"`
	Data    *[]Entry `json:"data,omitempty"`
	Index   *uint64  `json:"index,omitempty"`
	Message *string  `json:"message,omitempty"`
}

// inbound holds the tag and the raw payload fields, so only the fields the
// tag calls for are ever type-checked.
type inbound struct {
	Type    *Type           `json:"type"`
	Data    json.RawMessage `json:"data"`
	Index   json.RawMessage `json:"index"`
	Message json.RawMessage `json:"message"`
}

// Decode deserialises one protocol line. A known type with a missing or
// malformed payload is an error; an unknown type is not. Fields that do not
// belong to the type are ignored.
func Decode(b []byte) (*Message, error) {
	var in inbound
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	if in.Type == nil {
		return nil, errors.New("message decode: missing type")
	}

	m := &Message{Type: *in.Type}
	switch m.Type {
	case TypeEntries:
		if !present(in.Data) {
			return nil, errors.New("message decode: entries without data")
		}
		if err := json.Unmarshal(in.Data, &m.Data); err != nil {
			return nil, fmt.Errorf("message decode: data: %w", err)
		}
	case TypeSelectSuccess, TypeRemoveSuccess:
		if !present(in.Index) {
			return nil, fmt.Errorf("message decode: %s without index", m.Type)
		}
		if err := json.Unmarshal(in.Index, &m.Index); err != nil {
			return nil, fmt.Errorf("message decode: index: %w", err)
		}
	case TypeSuccess:
		if !present(in.Message) {
			return nil, errors.New("message decode: success without message")
		}
		if err := json.Unmarshal(in.Message, &m.Text); err != nil {
			return nil, fmt.Errorf("message decode: message: %w", err)
		}
	case TypeReady:
	default:
		m.Type = TypeUnknown
	}
	return m, nil
}

// present reports whether a raw field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// Encode serialises the message to its wire form without a trailing newline.
// The client never sends messages; Encode exists for fakes and tooling.
func (m *Message) Encode() ([]byte, error) {
	t := m.Type
	env := envelope{Type: &t}
	switch m.Type {
	case TypeEntries:
		data := m.Data
		if data == nil {
			data = []Entry{}
		}
		env.Data = &data
	case TypeSelectSuccess, TypeRemoveSuccess:
		idx := m.Index
		env.Index = &idx
	case TypeSuccess:
		text := m.Text
		env.Message = &text
	case TypeReady:
	default:
		return nil, fmt.Errorf("message encode: unsupported type %q", m.Type)
	}
	return json.Marshal(env)
}

// Current returns the entry flagged as the live clipboard, if any.
func Current(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.IsCurrent {
			return e, true
		}
	}
	return Entry{}, false
}
