package field

// Reader is a forward cursor over an in-memory byte slice. A successful
// read advances pos by exactly the number of bytes consumed; on failure the
// position is left pointing at the byte where the decision was made, so the
// caller can pinpoint the error (spec §3 Field invariants).
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading from position 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Bytes returns the unread tail of the buffer without advancing.
func (r *Reader) Bytes() []byte { return r.buf[r.pos:] }

// Peek returns the next n bytes without advancing the cursor. ok is false
// if fewer than n bytes remain.
func (r *Reader) Peek(n int) (b []byte, ok bool) {
	if r.Remaining() < n {
		return nil, false
	}
	return r.buf[r.pos : r.pos+n], true
}

// ReadN consumes and returns the next n bytes, advancing the cursor. If
// fewer than n bytes remain it returns StatusNotEnoughData with missing set
// to how many additional bytes are required, and the cursor is unchanged.
func (r *Reader) ReadN(n int) (b []byte, missing int, status Status) {
	if r.Remaining() < n {
		return nil, n - r.Remaining(), StatusNotEnoughData
	}
	b = r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, 0, StatusSuccess
}

// ReadByte consumes and returns the next byte.
func (r *Reader) ReadByte() (b byte, status Status) {
	buf, _, st := r.ReadN(1)
	if st != StatusSuccess {
		return 0, st
	}
	return buf[0], StatusSuccess
}

// Skip advances the cursor by n bytes without returning them. Used to
// resynchronize a framed stream one byte at a time (spec §4.3/§7).
func (r *Reader) Skip(n int) {
	if n > r.Remaining() {
		n = r.Remaining()
	}
	r.pos += n
}

// Mark/Reset let composite fields (Variant, terminator-scanning sequences)
// and layers trying multiple message-ID candidates attempt a read and roll
// back the cursor on failure without copying the underlying buffer.
func (r *Reader) Mark() int      { return r.pos }
func (r *Reader) Reset(mark int) { r.pos = mark }

// Window returns the bytes of the underlying buffer between two positions
// previously observed via Pos, for layers that want to report the raw
// bytes of a framing field they just consumed.
func (r *Reader) Window(from, to int) []byte { return r.buf[from:to] }

// Sub returns a bounded child Reader over the next n bytes of r without
// advancing r; used by layers to clamp an inner layer's view to a declared
// length-prefix window.
func (r *Reader) Sub(n int) (*Reader, bool) {
	b, ok := r.Peek(n)
	if !ok {
		return nil, false
	}
	return NewReader(b), true
}

// Writer is a write cursor over a growable in-memory buffer. RandomAccess
// reports whether deferred transport fields (checksum, size) may be
// finalized immediately via WriteAt, or must instead return
// StatusUpdateRequired and be finalized by a later Update pass. Both modes
// are backed by the same growable []byte — see SPEC_FULL.md §3 for why the
// second pass is always random-access in practice even when the original
// sink is not.
type Writer struct {
	buf          []byte
	randomAccess bool
}

// NewWriter returns a random-access writer suitable for building a complete
// frame in memory before sending it anywhere.
func NewWriter() *Writer {
	return &Writer{randomAccess: true}
}

// NewAppendWriter returns a writer that models an append-only output
// iterator (e.g. a raw socket write): fields that cannot finalize their
// value until downstream bytes exist return StatusUpdateRequired instead of
// patching in place.
func NewAppendWriter() *Writer {
	return &Writer{randomAccess: false}
}

// RandomAccess reports whether WriteAt may be used to finalize a deferred
// field immediately instead of deferring to Update.
func (w *Writer) RandomAccess() bool { return w.randomAccess }

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int { return len(w.buf) }

// Write appends p to the buffer. It never fails: BufferOverflow is a
// concept for fixed-capacity destinations, which this in-memory writer is
// not; callers writing into a fixed-size slice should use WriteFixed.
func (w *Writer) Write(p []byte) {
	w.buf = append(w.buf, p...)
}

// WriteFixed appends p, returning StatusBufferOverflow if doing so would
// exceed limit bytes total.
func (w *Writer) WriteFixed(p []byte, limit int) Status {
	if len(w.buf)+len(p) > limit {
		return StatusBufferOverflow
	}
	w.Write(p)
	return StatusSuccess
}

// Reserve appends n zero bytes and returns their offset, for a field that
// will be finalized in place (random-access) or during a later Update pass.
func (w *Writer) Reserve(n int) int {
	off := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return off
}

// WriteAt patches p into the buffer starting at offset. Valid for both
// writer modes since the backing store is always an addressable slice; the
// RandomAccess flag governs whether a *field* is permitted to call this
// from within its own Write, not whether the slice supports it.
func (w *Writer) WriteAt(offset int, p []byte) {
	copy(w.buf[offset:offset+len(p)], p)
}

// Bytes returns the buffer written so far.
func (w *Writer) Bytes() []byte { return w.buf }

// Update applies a random-access patch to buf at frameStart+offset. Layers
// expose an Update method built on this to finalize size/checksum fields
// written as placeholders during an append-only first pass.
func Update(buf []byte, frameStart, offset int, patch []byte) {
	copy(buf[frameStart+offset:frameStart+offset+len(patch)], patch)
}
