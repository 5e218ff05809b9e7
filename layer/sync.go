package layer

import (
	"bytes"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// SyncPrefixLayer requires a fixed byte sequence (a magic number, per
// teacher's frame.Header.Magic) at the start of every frame before
// delegating to the next layer; a mismatch is a framing error, not a
// content error (spec §4.3).
type SyncPrefixLayer struct {
	prefix  []byte
	next    Layer
	lastRaw []byte
}

func NewSyncPrefixLayer(prefix []byte, next Layer) *SyncPrefixLayer {
	return &SyncPrefixLayer{prefix: prefix, next: next}
}

func (l *SyncPrefixLayer) Decode(r *field.Reader) (message.Message, int, field.Status) {
	b, ok := r.Peek(len(l.prefix))
	if !ok {
		return nil, len(l.prefix) - r.Remaining(), field.StatusNotEnoughData
	}
	if !bytes.Equal(b, l.prefix) {
		return nil, 0, field.StatusProtocolError
	}
	r.Skip(len(l.prefix))
	l.lastRaw = b
	return l.next.Decode(r)
}

func (l *SyncPrefixLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	w.Write(l.prefix)
	l.lastRaw = l.prefix
	return l.next.Encode(w, msg)
}

func (l *SyncPrefixLayer) Update(buf []byte, frameStart int, msg message.Message) field.Status {
	return l.next.Update(buf, frameStart+len(l.prefix), msg)
}

func (l *SyncPrefixLayer) LayerName() string { return "sync" }
func (l *SyncPrefixLayer) LastRaw() []byte   { return l.lastRaw }
