// Package layer owns the protocol stack: composable transport layers that
// wrap an inner layer the way frame/header fields wrap a payload in a
// hand-rolled binary protocol, generalized so any stack of framing
// concerns (sync marker, size prefix, checksum, message ID, transport
// value) can be assembled around a message-data core (spec §4.3).
//
// Ownership boundary:
// - Layer/MsgLayer interfaces
// - sync, size, checksum, msg-id, transport-value, and data layers
// - cached-field introspection (Trace)
//
// Layer does not own overall stack assembly/ordering; see package stack.
package layer

import (
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// Layer is an outer, byte-framing layer: it reads/writes its own framing
// field(s) around an inner Layer and produces/consumes a fully decoded
// Message by delegation (spec §4.3's "stack of transport layers, each
// wrapping the next"). SyncPrefixLayer, MsgSizeLayer, ChecksumLayer, and
// TransportValueLayer all have this shape.
type Layer interface {
	// Decode reads this layer's own framing from r, delegates to the next
	// inner layer for the remainder, and returns the fully decoded message.
	Decode(r *field.Reader) (msg message.Message, missing int, status field.Status)
	// Encode writes this layer's framing and the inner layers' output to w.
	Encode(w *field.Writer, msg message.Message) field.Status
	// Update finalizes any placeholder bytes this layer reserved during an
	// append-only Encode, given the complete frame buffer and this frame's
	// start offset within it.
	Update(buf []byte, frameStart int, msg message.Message) field.Status
}

// MsgLayer is an inner layer: it operates on an already-allocated Message
// rather than producing one, the shape of MsgIdLayer's wrapped MsgDataLayer
// (spec §4.3: "the innermost layer ... reads/writes the message's own
// fields"). MsgIdLayer bridges MsgLayer to Layer by allocating the concrete
// message from the ID it reads before delegating to the wrapped MsgLayer.
type MsgLayer interface {
	Decode(r *field.Reader, msg message.Message) (missing int, status field.Status)
	Encode(w *field.Writer, msg message.Message) field.Status
}

// MsgLayerFunc adapts a pair of functions to MsgLayer, for trivial inner
// layers that need no type of their own.
type MsgLayerFunc struct {
	DecodeFunc func(r *field.Reader, msg message.Message) (int, field.Status)
	EncodeFunc func(w *field.Writer, msg message.Message) field.Status
}

func (f MsgLayerFunc) Decode(r *field.Reader, msg message.Message) (int, field.Status) {
	return f.DecodeFunc(r, msg)
}

func (f MsgLayerFunc) Encode(w *field.Writer, msg message.Message) field.Status {
	return f.EncodeFunc(w, msg)
}
