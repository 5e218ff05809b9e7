package main

import (
	"fmt"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// pingMessage and pongMessage are the two deliberately synthetic message
// types wirectl ships a sample stack for. Neither models a real protocol;
// they exist only to exercise the field/message/layer/stack packages end
// to end from the command line.
type pingMessage struct {
	message.Base
	id   int64
	Seq  *field.IntValue
	Text *field.String
}

func newPingMessage() message.Message {
	seq, _ := field.NewIntValue(4, false)
	text, _ := field.NewString(field.WithSequenceSizeFieldPrefix(func() field.Field {
		f, _ := field.NewIntValue(1, false)
		return f
	}))
	m := &pingMessage{id: 1, Seq: seq, Text: text}
	m.Base = message.NewBase(seq, text)
	return m
}

func (m *pingMessage) MsgID() int64  { return m.id }
func (m *pingMessage) Name() string  { return "Ping" }
func (m *pingMessage) String() string {
	return fmt.Sprintf("Ping{seq=%d text=%q}", m.Seq.Value(), m.Text.Value())
}

type pongMessage struct {
	message.Base
	id  int64
	Seq *field.IntValue
}

func newPongMessage() message.Message {
	seq, _ := field.NewIntValue(4, false)
	m := &pongMessage{id: 2, Seq: seq}
	m.Base = message.NewBase(seq)
	return m
}

func (m *pongMessage) MsgID() int64   { return m.id }
func (m *pongMessage) Name() string   { return "Pong" }
func (m *pongMessage) String() string { return fmt.Sprintf("Pong{seq=%d}", m.Seq.Value()) }

// messageFactories maps the "kind" string a wirectl.toml message entry
// names to the blank-message constructor it resolves to.
var messageFactories = map[string]func() message.Message{
	"ping": newPingMessage,
	"pong": newPongMessage,
}

func messageFactory(kind string) (func() message.Message, error) {
	f, ok := messageFactories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown message kind %q (known: ping, pong)", kind)
	}
	return f, nil
}

// describeMessage renders msg for CLI output, preferring its Name/String
// methods when available and falling back to a generic summary.
func describeMessage(msg message.Message) string {
	type stringer interface{ String() string }
	if s, ok := msg.(stringer); ok {
		return s.String()
	}
	if n, ok := msg.(message.Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", msg)
}
