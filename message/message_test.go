package message_test

import (
	"testing"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
	"github.com/stretchr/testify/require"
)

type pingMessage struct {
	message.Base
	id  int64
	seq *field.IntValue
}

func newPingMessage() *pingMessage {
	seq, _ := field.NewIntValue(2, false)
	m := &pingMessage{id: 1, seq: seq}
	m.Base = message.NewBase(seq)
	return m
}

func (m *pingMessage) MsgID() int64 { return m.id }
func (m *pingMessage) Name() string { return "Ping" }

type pongMessage struct {
	message.Base
	id int64
}

func newPongMessage() *pongMessage {
	m := &pongMessage{id: 2}
	m.Base = message.NewBase()
	return m
}

func (m *pongMessage) MsgID() int64 { return m.id }
func (m *pongMessage) Name() string { return "Pong" }

func TestBaseRoundTrip(t *testing.T) {
	m := newPingMessage()
	m.seq.SetValue(7)

	w := field.NewWriter()
	require.Equal(t, field.StatusSuccess, m.Write(w))

	out := newPingMessage()
	st, _ := out.Read(field.NewReader(w.Bytes()))
	require.Equal(t, field.StatusSuccess, st)
	require.Equal(t, int64(7), out.seq.Value())
}

func TestHandlerDispatchesByConcreteType(t *testing.T) {
	h := message.NewHandler[string]()
	message.Register(h, func(m *pingMessage) string { return "got ping" })
	message.Register(h, func(m *pongMessage) string { return "got pong" })

	require.Equal(t, "got ping", h.Dispatch(newPingMessage()))
	require.Equal(t, "got pong", h.Dispatch(newPongMessage()))
}

type otherMessage struct{ message.Base }

func TestHandlerFallback(t *testing.T) {
	h := message.NewHandler[string]()
	message.Register(h, func(m *pingMessage) string { return "got ping" })
	h.SetFallback(func(m message.Message) string { return "fallback" })

	other := &otherMessage{}
	require.Equal(t, "fallback", h.Dispatch(other))
	require.False(t, h.Registered(other))
	require.True(t, h.Registered(newPingMessage()))
}

func TestHandlerNoFallbackReturnsZeroValue(t *testing.T) {
	h := message.NewHandler[int]()
	require.Equal(t, 0, h.Dispatch(newPongMessage()))
}
