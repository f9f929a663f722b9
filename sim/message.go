package sim

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Structs

// Message represents a synchronization message between
// replicas. It consists of the name of the originating
// replica, the sender-local sequence number and the
// encoded operation or state to apply at the receiver.
type Message struct {
	Sender  string `msgpack:"sender"`
	Seq     uint64 `msgpack:"seq"`
	Payload []byte `msgpack:"payload"`
}

// msgID identifies a message independent of
// its duplicates.
type msgID struct {
	sender string
	seq    uint64
}

// Functions

// InitMessage encodes v as the payload of a message.
func InitMessage[V any](sender string, seq uint64, v V) (*Message, error) {

	payload, err := msgpack.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding payload of message %s/%d", sender, seq)
	}

	return &Message{
		Sender:  sender,
		Seq:     seq,
		Payload: payload,
	}, nil
}

// Marshal turns m into its wire representation.
func (m *Message) Marshal() ([]byte, error) {
	return msgpack.Marshal(m)
}

// Parse takes in the wire representation of a
// message and turns it back into a Message.
func Parse(raw []byte) (*Message, error) {

	m := new(Message)

	if err := msgpack.Unmarshal(raw, m); err != nil {
		return nil, errors.Wrap(err, "invalid synchronization message")
	}

	return m, nil
}

// Decode extracts the payload of m into a value of type V.
func Decode[V any](m *Message) (V, error) {

	var v V

	if err := msgpack.Unmarshal(m.Payload, &v); err != nil {
		return v, errors.Wrapf(err, "decoding payload of message %s/%d", m.Sender, m.Seq)
	}

	return v, nil
}

func (m *Message) id() msgID {
	return msgID{m.Sender, m.Seq}
}
