package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipz/internal/protocol"
)

func TestDecode_Entries(t *testing.T) {
	line := `{"type":"entries","data":[` +
		`{"id":1,"content":"hello","timestamp":1700000000000,"isCurrent":true},` +
		`{"id":7,"content":"/tmp/shot.png","timestamp":1700000001000,"type":"image"},` +
		`{"id":9,"content":"/tmp/doc.pdf","timestamp":1700000002000,"type":"file","isCurrent":false}]}`

	msg, err := protocol.Decode([]byte(line))
	require.NoError(t, err)
	assert.Equal(t, protocol.TypeEntries, msg.Type)
	require.Len(t, msg.Data, 3)

	assert.Equal(t, protocol.Entry{ID: 1, Content: "hello", Timestamp: 1700000000000, Kind: protocol.KindText, IsCurrent: true}, msg.Data[0])
	assert.Equal(t, protocol.KindImage, msg.Data[1].Kind)
	assert.False(t, msg.Data[1].IsCurrent)
	assert.Equal(t, protocol.KindFile, msg.Data[2].Kind)
}

func TestDecode_EmptyEntries(t *testing.T) {
	msg, err := protocol.Decode([]byte(`{"type":"entries","data":[]}`))
	require.NoError(t, err)
	assert.Equal(t, protocol.TypeEntries, msg.Type)
	assert.Empty(t, msg.Data)
}

func TestDecode_Acknowledgements(t *testing.T) {
	tests := []struct {
		line string
		want protocol.Message
	}{
		{`{"type":"select-success","index":3}`, protocol.Message{Type: protocol.TypeSelectSuccess, Index: 3}},
		{`{"type":"remove-success","index":0}`, protocol.Message{Type: protocol.TypeRemoveSuccess, Index: 0}},
		{`{"type":"success","message":"cleared"}`, protocol.Message{Type: protocol.TypeSuccess, Text: "cleared"}},
		{`{"type":"ready"}`, protocol.Message{Type: protocol.TypeReady}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			msg, err := protocol.Decode([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *msg)
		})
	}
}

func TestDecode_UnknownTypeIsNotAnError(t *testing.T) {
	msg, err := protocol.Decode([]byte(`{"type":"bogus","whatever":[1,2,3]}`))
	require.NoError(t, err)
	assert.Equal(t, protocol.TypeUnknown, msg.Type)
	assert.Nil(t, msg.Data)
}

func TestDecode_IgnoresFieldsOfOtherTypes(t *testing.T) {
	cases := []struct {
		line string
		want protocol.Message
	}{
		{`{"type":"ready","message":3}`, protocol.Message{Type: protocol.TypeReady}},
		{`{"type":"ready","data":"x","index":"y"}`, protocol.Message{Type: protocol.TypeReady}},
		{`{"type":"bogus","data":5}`, protocol.Message{Type: protocol.TypeUnknown}},
		{`{"type":"success","message":"ok","data":false}`, protocol.Message{Type: protocol.TypeSuccess, Text: "ok"}},
		{`{"type":"select-success","index":4,"message":[]}`, protocol.Message{Type: protocol.TypeSelectSuccess, Index: 4}},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			msg, err := protocol.Decode([]byte(c.line))
			require.NoError(t, err)
			assert.Equal(t, c.want, *msg)
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	for _, line := range []string{
		``,
		`not json`,
		`{"data":[]}`,
		`{"type":"entries"}`,
		`{"type":"select-success"}`,
		`{"type":"remove-success","index":-1}`,
		`{"type":"success"}`,
		`{"type":"success","message":null}`,
		`{"type":"success","message":3}`,
		`{"type":"entries","data":null}`,
		`{"type":"entries","data":{}}`,
		`{"type":null}`,
		`{"type":"entries","data":[{"id":1,"content":"x"}]}`,
		`{"type":"entries","data":[{"content":"x","timestamp":1}]}`,
		`{"type":"entries","data":[{"id":1,"timestamp":1}]}`,
		`{"type":"entries","data":[{"id":1,"content":"x","timestamp":1,"type":"video"}]}`,
		`{"type":"entries","data":[{"id":-4,"content":"x","timestamp":1}]}`,
	} {
		t.Run(line, func(t *testing.T) {
			_, err := protocol.Decode([]byte(line))
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	orig := &protocol.Message{
		Type: protocol.TypeEntries,
		Data: []protocol.Entry{
			{ID: 1, Content: "a", Timestamp: 10, IsCurrent: true},
			{ID: 2, Content: "/x/y.png", Timestamp: 20, Kind: protocol.KindImage},
		},
	}
	b, err := orig.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"isCurrent":true`)
	assert.Contains(t, string(b), `"type":"image"`)

	got, err := protocol.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestEncode_UnknownType(t *testing.T) {
	_, err := (&protocol.Message{Type: protocol.TypeUnknown}).Encode()
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	assert.Equal(t, "select-entry:42", protocol.SelectEntry(42))
	assert.Equal(t, "remove-entry:2", protocol.RemoveEntry(2))
	assert.Equal(t, "get-entries", protocol.CmdGetEntries)
	assert.Equal(t, "clear", protocol.CmdClear)
	assert.Equal(t, "quit", protocol.CmdQuit)
}

func TestKindLabels(t *testing.T) {
	assert.Equal(t, "Text", protocol.KindText.Label())
	assert.Equal(t, "Image", protocol.KindImage.Label())
	assert.Equal(t, "File", protocol.KindFile.Label())
	assert.Equal(t, "file", protocol.KindFile.String())
}

func TestCurrent(t *testing.T) {
	_, ok := protocol.Current(nil)
	assert.False(t, ok)

	e, ok := protocol.Current([]protocol.Entry{{ID: 4}, {ID: 1, IsCurrent: true}})
	require.True(t, ok)
	assert.Equal(t, uint64(1), e.ID)
}
