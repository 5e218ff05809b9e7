package layer

import (
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// TransportValueLayer reads a field off the wire that logically belongs to
// the message rather than to framing — a protocol version or sequence
// number the message itself wants to see — and hands it to the message via
// setter on decode, pulling it back out via getter on encode (grounded on
// original_source's comms::protocol::TransportValueLayer). The value thus
// travels on the wire and reaches the message object through those
// closures, without the message type itself owning a wire field for it.
type TransportValueLayer struct {
	fieldFactory IDFieldFactory
	getter       func(msg message.Message) int64
	setter       func(msg message.Message, v int64)
	next         Layer
	lastRaw      []byte
}

func NewTransportValueLayer(
	fieldFactory IDFieldFactory,
	getter func(message.Message) int64,
	setter func(message.Message, int64),
	next Layer,
) *TransportValueLayer {
	return &TransportValueLayer{fieldFactory: fieldFactory, getter: getter, setter: setter, next: next}
}

func (l *TransportValueLayer) Decode(r *field.Reader) (message.Message, int, field.Status) {
	f := l.fieldFactory()
	markStart := r.Pos()
	if st, missing := f.Read(r); st != field.StatusSuccess {
		return nil, missing, st
	}
	l.lastRaw = r.Window(markStart, r.Pos())
	msg, missing, st := l.next.Decode(r)
	if st != field.StatusSuccess && st != field.StatusInvalidMsgData {
		return nil, missing, st
	}
	if l.setter != nil {
		l.setter(msg, f.Value())
	}
	return msg, 0, st
}

func (l *TransportValueLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	f := l.fieldFactory()
	if l.getter != nil {
		f.SetValue(l.getter(msg))
	}
	start := w.Pos()
	if st := f.Write(w); st != field.StatusSuccess {
		return st
	}
	l.lastRaw = w.Bytes()[start:w.Pos()]
	return l.next.Encode(w, msg)
}

func (l *TransportValueLayer) Update(buf []byte, frameStart int, msg message.Message) field.Status {
	return l.next.Update(buf, frameStart+l.fieldFactory().Length(), msg)
}

func (l *TransportValueLayer) LayerName() string { return "transport_value" }
func (l *TransportValueLayer) LastRaw() []byte   { return l.lastRaw }
