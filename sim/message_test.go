package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Functions

// TestMessage checks that a payload survives the wire
// representation of a message.
func TestMessage(t *testing.T) {

	msg, err := InitMessage("replica-1", 3, []string{"add", "✉"})
	require.NoError(t, err)

	raw, err := msg.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "replica-1", parsed.Sender)
	assert.Equal(t, uint64(3), parsed.Seq)
	assert.Equal(t, msgID{"replica-1", 3}, parsed.id())

	payload, err := Decode[[]string](parsed)
	require.NoError(t, err)
	assert.Equal(t, []string{"add", "✉"}, payload)
}

// TestParseInvalid feeds garbage to the parsers.
func TestParseInvalid(t *testing.T) {

	_, err := Parse([]byte{0xc1})
	assert.Error(t, err)

	msg := &Message{Sender: "a", Seq: 1, Payload: []byte("not msgpack")}
	_, err = Decode[map[string]int](msg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "a/1")
}
