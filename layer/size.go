package layer

import (
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// MsgSizeLayer prefixes the frame with the serialized length of everything
// after the size field itself (teacher's frame.Header.PayloadLen), letting
// a reader know exactly how many more bytes to buffer before attempting to
// decode (spec §4.3). If the declared size exceeds what's actually
// available, Decode reports StatusNotEnoughData with missing set to
// declared-minus-remaining rather than treating it as a protocol error
// (spec §9 Open Question b): a partial frame on a streaming transport looks
// identical to a malformed one until more bytes arrive, and the caller
// should get the chance to wait for them.
type MsgSizeLayer struct {
	sizeFactory IDFieldFactory
	next        Layer
	lastRaw     []byte
}

func NewMsgSizeLayer(sizeFactory IDFieldFactory, next Layer) *MsgSizeLayer {
	return &MsgSizeLayer{sizeFactory: sizeFactory, next: next}
}

func (l *MsgSizeLayer) Decode(r *field.Reader) (message.Message, int, field.Status) {
	sizeF := l.sizeFactory()
	markStart := r.Pos()
	if st, missing := sizeF.Read(r); st != field.StatusSuccess {
		return nil, missing, st
	}
	l.lastRaw = r.Window(markStart, r.Pos())
	declared := int(sizeF.Value())
	if declared > r.Remaining() {
		return nil, declared - r.Remaining(), field.StatusNotEnoughData
	}
	sub, ok := r.Sub(declared)
	if !ok {
		return nil, declared - r.Remaining(), field.StatusNotEnoughData
	}
	msg, missing, st := l.next.Decode(sub)
	r.Skip(declared)
	return msg, missing, st
}

func (l *MsgSizeLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	sizeF := l.sizeFactory()
	placeholder := sizeF.Length()
	offset := w.Reserve(placeholder)

	bodyStart := w.Pos()
	if st := l.next.Encode(w, msg); st != field.StatusSuccess {
		return st
	}
	size := w.Pos() - bodyStart

	sizeF.SetValue(int64(size))
	sw := field.NewWriter()
	if st := sizeF.Write(sw); st != field.StatusSuccess {
		return st
	}
	l.lastRaw = sw.Bytes()
	if w.RandomAccess() {
		w.WriteAt(offset, sw.Bytes())
		return field.StatusSuccess
	}
	return field.StatusUpdateRequired
}

func (l *MsgSizeLayer) LayerName() string { return "size" }
func (l *MsgSizeLayer) LastRaw() []byte   { return l.lastRaw }

func (l *MsgSizeLayer) Update(buf []byte, frameStart int, msg message.Message) field.Status {
	sizeF := l.sizeFactory()
	headerLen := sizeF.Length()
	size := len(buf) - frameStart - headerLen
	sizeF.SetValue(int64(size))
	sw := field.NewWriter()
	if st := sizeF.Write(sw); st != field.StatusSuccess {
		return st
	}
	field.Update(buf, frameStart, 0, sw.Bytes())
	return l.next.Update(buf, frameStart+headerLen, msg)
}
