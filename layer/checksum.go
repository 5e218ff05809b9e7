package layer

import (
	"bytes"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// ChecksumLayer appends a fixed-width checksum after everything the
// wrapped layer produces, covering exactly the bytes nested inside it
// (spec §4.3's checksum layer). Because the checksum trails its own
// coverage, both Encode and Decode need only one pass: by the time the
// checksum bytes are read or written, the covered bytes already exist.
type ChecksumLayer struct {
	width   int
	algo    func([]byte) []byte
	next    Layer
	lastRaw []byte
}

func NewChecksumLayer(width int, algo func([]byte) []byte, next Layer) *ChecksumLayer {
	return &ChecksumLayer{width: width, algo: algo, next: next}
}

// Decode verifies the trailing checksum against the body before handing
// the body to the wrapped layer, so a corrupted frame is rejected as
// ProtocolError even when the garbage bytes would otherwise parse as some
// other valid-looking message or ID.
func (l *ChecksumLayer) Decode(r *field.Reader) (message.Message, int, field.Status) {
	total := r.Remaining()
	if total < l.width {
		return nil, l.width - total, field.StatusNotEnoughData
	}
	bodyLen := total - l.width
	body, _ := r.Peek(bodyLen)
	trailer := r.Window(r.Pos()+bodyLen, r.Pos()+bodyLen+l.width)
	if !bytes.Equal(trailer, l.algo(body)) {
		return nil, 0, field.StatusProtocolError
	}
	sub := field.NewReader(body)
	msg, missing, st := l.next.Decode(sub)
	if st != field.StatusSuccess && st != field.StatusInvalidMsgData {
		return nil, missing, st
	}
	r.Skip(bodyLen + l.width)
	l.lastRaw = trailer
	return msg, 0, st
}

func (l *ChecksumLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	bodyStart := w.Pos()
	if st := l.next.Encode(w, msg); st != field.StatusSuccess {
		return st
	}
	body := w.Bytes()[bodyStart:]
	sum := l.algo(body)
	w.Write(sum)
	l.lastRaw = sum
	return field.StatusSuccess
}

func (l *ChecksumLayer) LayerName() string { return "checksum" }
func (l *ChecksumLayer) LastRaw() []byte   { return l.lastRaw }

func (l *ChecksumLayer) Update(buf []byte, frameStart int, msg message.Message) field.Status {
	if st := l.next.Update(buf, frameStart, msg); st != field.StatusSuccess {
		return st
	}
	trailerOff := len(buf) - l.width
	body := buf[frameStart:trailerOff]
	field.Update(buf, 0, trailerOff, l.algo(body))
	return field.StatusSuccess
}

// ChecksumPrefixLayer places the checksum before the bytes it covers,
// requiring the same reserve-then-patch two-pass pattern as MsgSizeLayer:
// on a random-access writer the checksum is patched in immediately; on an
// append-only writer Encode returns StatusUpdateRequired and the caller
// must invoke Update once the full frame exists (spec §5's "Update" pass).
type ChecksumPrefixLayer struct {
	width   int
	algo    func([]byte) []byte
	next    Layer
	lastRaw []byte
}

func NewChecksumPrefixLayer(width int, algo func([]byte) []byte, next Layer) *ChecksumPrefixLayer {
	return &ChecksumPrefixLayer{width: width, algo: algo, next: next}
}

func (l *ChecksumPrefixLayer) Decode(r *field.Reader) (message.Message, int, field.Status) {
	prefix, missing, st := r.ReadN(l.width)
	if st != field.StatusSuccess {
		return nil, missing, st
	}
	body := r.Bytes()
	if !bytes.Equal(prefix, l.algo(body)) {
		return nil, 0, field.StatusProtocolError
	}
	msg, missing, st := l.next.Decode(r)
	if st != field.StatusSuccess && st != field.StatusInvalidMsgData {
		return nil, missing, st
	}
	l.lastRaw = prefix
	return msg, 0, st
}

func (l *ChecksumPrefixLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	offset := w.Reserve(l.width)
	bodyStart := w.Pos()
	if st := l.next.Encode(w, msg); st != field.StatusSuccess {
		return st
	}
	body := w.Bytes()[bodyStart:]
	sum := l.algo(body)
	l.lastRaw = sum
	if w.RandomAccess() {
		w.WriteAt(offset, sum)
		return field.StatusSuccess
	}
	return field.StatusUpdateRequired
}

func (l *ChecksumPrefixLayer) LayerName() string { return "checksum_prefix" }
func (l *ChecksumPrefixLayer) LastRaw() []byte   { return l.lastRaw }

func (l *ChecksumPrefixLayer) Update(buf []byte, frameStart int, msg message.Message) field.Status {
	if st := l.next.Update(buf, frameStart+l.width, msg); st != field.StatusSuccess {
		return st
	}
	body := buf[frameStart+l.width:]
	field.Update(buf, frameStart, 0, l.algo(body))
	return field.StatusSuccess
}
