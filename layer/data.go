package layer

import (
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// MsgDataLayer is the innermost layer: it reads/writes the message's own
// fields and nothing else (spec §4.3). It is always the last link in a
// stack's inner chain.
type MsgDataLayer struct{}

func NewMsgDataLayer() *MsgDataLayer { return &MsgDataLayer{} }

func (l *MsgDataLayer) Decode(r *field.Reader, msg message.Message) (int, field.Status) {
	st, missing := msg.Read(r)
	return missing, st
}

func (l *MsgDataLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	return msg.Write(w)
}
