// Package stack assembles a layer.Layer chain into one entry point for
// decoding and encoding whole frames, generalizing teacher's
// protocol.Decode/protocol.Encode (one fixed header+TLV shape) into an
// arbitrary ordered stack of layers (spec §4.3/§4.4).
package stack

import (
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/layer"
	"github.com/netaudio/wirecodec/message"
)

// Stack is an assembled protocol: an outermost layer.Layer plus the same
// chain for introspection (stack.Trace).
type Stack struct {
	outer  layer.Layer
	layers []layer.Layer // outer-to-inner, for Trace; outer itself is layers[0]
}

// New wraps an already-composed layer chain. layers should be given
// outer-to-inner (the same order layers[0].Decode delegates through to
// layers[len-1]) purely for Trace's benefit — Decode/Encode/Update only
// ever touch outer.
func New(outer layer.Layer, layers ...layer.Layer) *Stack {
	return &Stack{outer: outer, layers: layers}
}

// Decode parses one complete frame from buf. On success it returns the
// decoded message and the number of bytes consumed. On StatusNotEnoughData
// missing reports the minimum number of additional bytes the caller needs
// to buffer before retrying — the value bubbles up unchanged from whichever
// layer first ran out of data (spec §6).
func (s *Stack) Decode(buf []byte) (msg message.Message, consumed int, missing int, status field.Status) {
	r := field.NewReader(buf)
	msg, missing, status = s.outer.Decode(r)
	switch status {
	case field.StatusSuccess, field.StatusInvalidMsgData:
		// A message that failed a validator is still framed correctly and
		// returned so the caller can inspect it (spec §7).
		return msg, r.Pos(), 0, status
	default:
		return nil, 0, missing, status
	}
}

// Encode renders one complete frame for msg into an in-memory,
// random-access buffer, so every layer's Update can run inline during
// Encode and the result is always immediately complete.
func (s *Stack) Encode(msg message.Message) ([]byte, field.Status) {
	w := field.NewWriter()
	if st := s.outer.Encode(w, msg); st != field.StatusSuccess && st != field.StatusUpdateRequired {
		return nil, st
	}
	return w.Bytes(), field.StatusSuccess
}

// EncodeAppend renders one frame using an append-only writer, the shape
// a raw io.Writer-backed sink forces (spec §5's two-pass Update pattern):
// size/checksum layers cannot patch in place during Encode, so when the
// chain reports StatusUpdateRequired EncodeAppend runs the outer layer's
// Update over the written bytes before returning them; the returned bytes
// are final.
func (s *Stack) EncodeAppend(msg message.Message) ([]byte, field.Status) {
	w := field.NewAppendWriter()
	st := s.outer.Encode(w, msg)
	if st != field.StatusSuccess && st != field.StatusUpdateRequired {
		return nil, st
	}
	buf := w.Bytes()
	if st == field.StatusUpdateRequired {
		if ust := s.outer.Update(buf, 0, msg); ust != field.StatusSuccess {
			return nil, ust
		}
	}
	return buf, field.StatusSuccess
}

// Trace reports the cached framing bytes of every traceable layer in the
// stack, outer to inner (spec §4.3 cached-fields introspection).
func (s *Stack) Trace() []layer.CachedField {
	return layer.Trace(s.layers...)
}
