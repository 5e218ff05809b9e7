package field

import "bytes"

// ElementFactory builds one blank element for sequence decoding.
type ElementFactory func() Field

// seqConfig holds the single termination discipline an ArrayList was built
// with; exactly one of the four wire-length strategies catalogued in spec
// §4.1 applies to a given sequence, and newSeqConfig rejects combining them.
type seqConfig struct {
	fixedSize    int
	fixedSizeSet bool
	forceSize    bool

	countPrefix  ElementFactory // element count, as an integer-like Field
	lenPrefix    ElementFactory // serialized byte length of the sequence body

	terminator    []byte // sentinel byte sequence ending the element stream
	trailingField ElementFactory // unconditional field written/read after elements
}

// SeqOption configures an ArrayList/String's termination discipline at
// construction time.
type SeqOption func(*seqConfig) error

func newSeqConfig(opts []SeqOption) (seqConfig, error) {
	var c seqConfig
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return seqConfig{}, err
		}
	}
	modes := 0
	if c.fixedSizeSet {
		modes++
	}
	if c.countPrefix != nil {
		modes++
	}
	if c.lenPrefix != nil {
		modes++
	}
	if c.terminator != nil {
		modes++
	}
	if modes > 1 {
		return seqConfig{}, ErrConflictingTermination
	}
	return c, nil
}

// WithSequenceFixedSize declares a constant element count with no prefix
// and no terminator; if forcing is true, Write rejects a backing slice
// whose length differs from n (spec's SequenceSizeForcingEnabled).
func WithSequenceFixedSize(n int, forcing bool) SeqOption {
	return func(c *seqConfig) error {
		if n < 0 {
			return ErrInvalidFixedLength
		}
		c.fixedSize = n
		c.fixedSizeSet = true
		c.forceSize = forcing
		return nil
	}
}

// WithSequenceSizeFieldPrefix prefixes the sequence with an element count,
// encoded by a field built from countField each time (spec's
// SequenceSizeFieldPrefix).
func WithSequenceSizeFieldPrefix(countField ElementFactory) SeqOption {
	return func(c *seqConfig) error {
		if countField == nil {
			return ErrMissingSequenceLength
		}
		c.countPrefix = countField
		return nil
	}
}

// WithSequenceSerLengthFieldPrefix prefixes the sequence with its own
// serialized byte length rather than an element count, letting a reader
// skip an unrecognized sequence without decoding its elements (spec's
// SequenceSerLengthFieldPrefix).
func WithSequenceSerLengthFieldPrefix(lenField ElementFactory) SeqOption {
	return func(c *seqConfig) error {
		if lenField == nil {
			return ErrMissingSequenceLength
		}
		c.lenPrefix = lenField
		return nil
	}
}

// WithSequenceTerminationFieldSuffix stops reading elements as soon as the
// next bytes match term, consuming the terminator; Write appends term
// after the last element (spec's SequenceTerminationFieldSuffix, the
// classic null-terminated-string case).
func WithSequenceTerminationFieldSuffix(term []byte) SeqOption {
	return func(c *seqConfig) error {
		if len(term) == 0 {
			return ErrMissingSequenceLength
		}
		c.terminator = term
		return nil
	}
}

// WithSequenceTrailingFieldSuffix attaches an unconditional field, built
// fresh by factory, read and written once immediately after the element
// stream regardless of how its length was determined (spec's
// SequenceTrailingFieldSuffix).
func WithSequenceTrailingFieldSuffix(factory ElementFactory) SeqOption {
	return func(c *seqConfig) error {
		c.trailingField = factory
		return nil
	}
}

// ArrayList is a homogeneous, variable- or fixed-length sequence of fields
// (spec §3/§4.1). Exactly one termination discipline governs how a reader
// knows where the sequence ends.
type ArrayList struct {
	cfg     seqConfig
	factory ElementFactory
	elems   []Field
}

// NewArrayList builds a sequence whose elements are produced by factory.
func NewArrayList(factory ElementFactory, opts ...SeqOption) (*ArrayList, error) {
	cfg, err := newSeqConfig(opts)
	if err != nil {
		return nil, err
	}
	return &ArrayList{cfg: cfg, factory: factory}, nil
}

// Elements returns the decoded/appended elements in order.
func (f *ArrayList) Elements() []Field { return f.elems }

// SetElements replaces the element list, e.g. before Write.
func (f *ArrayList) SetElements(elems []Field) { f.elems = elems }

// Append adds one element, typically built via the same factory.
func (f *ArrayList) Append(elem Field) { f.elems = append(f.elems, elem) }

func (f *ArrayList) Read(r *Reader) (Status, int) {
	switch {
	case f.cfg.fixedSizeSet:
		return f.readCount(r, f.cfg.fixedSize)
	case f.cfg.countPrefix != nil:
		return f.readWithCountPrefix(r)
	case f.cfg.lenPrefix != nil:
		return f.readWithLenPrefix(r)
	case f.cfg.terminator != nil:
		return f.readUntilTerminator(r)
	default:
		// No termination discipline configured: nothing on the wire
		// belongs to this sequence, so it decodes to zero elements.
		f.elems = f.elems[:0]
		return StatusSuccess, 0
	}
}

func (f *ArrayList) readCount(r *Reader, n int) (Status, int) {
	f.elems = f.elems[:0]
	for i := 0; i < n; i++ {
		e := f.factory()
		if st, missing := e.Read(r); st != StatusSuccess {
			return st, missing
		}
		f.elems = append(f.elems, e)
	}
	return f.readTrailing(r)
}

func (f *ArrayList) readWithCountPrefix(r *Reader) (Status, int) {
	prefix := f.cfg.countPrefix()
	if st, missing := prefix.Read(r); st != StatusSuccess {
		return st, missing
	}
	n, ok := intFieldValue(prefix)
	if !ok {
		return StatusProtocolError, 0
	}
	return f.readCount(r, int(n))
}

func (f *ArrayList) readWithLenPrefix(r *Reader) (Status, int) {
	prefix := f.cfg.lenPrefix()
	if st, missing := prefix.Read(r); st != StatusSuccess {
		return st, missing
	}
	n, ok := intFieldValue(prefix)
	if !ok {
		return StatusProtocolError, 0
	}
	sub, ok := r.Sub(int(n))
	if !ok {
		return StatusNotEnoughData, int(n) - r.Remaining()
	}
	f.elems = f.elems[:0]
	for sub.Remaining() > 0 {
		e := f.factory()
		if st, missing := e.Read(sub); st != StatusSuccess {
			return st, missing
		}
		f.elems = append(f.elems, e)
	}
	r.Skip(int(n))
	return f.readTrailing(r)
}

func (f *ArrayList) readUntilTerminator(r *Reader) (Status, int) {
	f.elems = f.elems[:0]
	term := f.cfg.terminator
	for {
		if b, ok := r.Peek(len(term)); ok && bytes.Equal(b, term) {
			r.Skip(len(term))
			return f.readTrailing(r)
		}
		if r.Remaining() == 0 {
			return StatusNotEnoughData, len(term)
		}
		e := f.factory()
		if st, missing := e.Read(r); st != StatusSuccess {
			return st, missing
		}
		f.elems = append(f.elems, e)
	}
}

func (f *ArrayList) readTrailing(r *Reader) (Status, int) {
	if f.cfg.trailingField == nil {
		return StatusSuccess, 0
	}
	t := f.cfg.trailingField()
	return t.Read(r)
}

func (f *ArrayList) Write(w *Writer) Status {
	if f.cfg.forceSize && len(f.elems) != f.cfg.fixedSize {
		return StatusProtocolError
	}
	switch {
	case f.cfg.countPrefix != nil:
		prefix := f.cfg.countPrefix()
		setIntFieldValue(prefix, int64(len(f.elems)))
		if st := prefix.Write(w); st != StatusSuccess {
			return st
		}
		return f.writeElemsAndTrailing(w)
	case f.cfg.lenPrefix != nil:
		body := NewWriter()
		for _, e := range f.elems {
			if st := e.Write(body); st != StatusSuccess {
				return st
			}
		}
		prefix := f.cfg.lenPrefix()
		setIntFieldValue(prefix, int64(len(body.Bytes())))
		if st := prefix.Write(w); st != StatusSuccess {
			return st
		}
		w.Write(body.Bytes())
		return f.writeTrailing(w)
	case f.cfg.terminator != nil:
		for _, e := range f.elems {
			if st := e.Write(w); st != StatusSuccess {
				return st
			}
		}
		w.Write(f.cfg.terminator)
		return f.writeTrailing(w)
	default:
		return f.writeElemsAndTrailing(w)
	}
}

func (f *ArrayList) writeElemsAndTrailing(w *Writer) Status {
	for _, e := range f.elems {
		if st := e.Write(w); st != StatusSuccess {
			return st
		}
	}
	return f.writeTrailing(w)
}

func (f *ArrayList) writeTrailing(w *Writer) Status {
	if f.cfg.trailingField == nil {
		return StatusSuccess
	}
	return f.cfg.trailingField().Write(w)
}

func (f *ArrayList) Length() int {
	total := 0
	switch {
	case f.cfg.countPrefix != nil:
		p := f.cfg.countPrefix()
		setIntFieldValue(p, int64(len(f.elems)))
		total += p.Length()
	case f.cfg.lenPrefix != nil:
		total += f.cfg.lenPrefix().Length()
	}
	for _, e := range f.elems {
		total += e.Length()
	}
	if f.cfg.terminator != nil {
		total += len(f.cfg.terminator)
	}
	if f.cfg.trailingField != nil {
		total += f.cfg.trailingField().Length()
	}
	return total
}

func (f *ArrayList) MinLength() int {
	if f.cfg.fixedSizeSet {
		return f.cfg.fixedSize * f.factory().MinLength()
	}
	return 0
}

func (f *ArrayList) MaxLength() int {
	if f.cfg.fixedSizeSet {
		return f.cfg.fixedSize * f.factory().MaxLength()
	}
	return -1 // unbounded
}

func (f *ArrayList) Valid() bool {
	if f.cfg.forceSize && len(f.elems) != f.cfg.fixedSize {
		return false
	}
	for _, e := range f.elems {
		if !e.Valid() {
			return false
		}
	}
	return true
}

func (f *ArrayList) Refresh() bool {
	changed := false
	for _, e := range f.elems {
		if e.Refresh() {
			changed = true
		}
	}
	return changed
}

// intFieldValue extracts an integer from a prefix field built by an
// ElementFactory; only *IntValue and *EnumValue are supported as size
// prefixes.
func intFieldValue(f Field) (int64, bool) {
	switch v := f.(type) {
	case *IntValue:
		return v.Value(), true
	case *EnumValue:
		return v.Value(), true
	}
	return 0, false
}

func setIntFieldValue(f Field, v int64) {
	switch t := f.(type) {
	case *IntValue:
		t.SetValue(v)
	case *EnumValue:
		t.SetValue(v)
	}
}

// String is an ArrayList of bytes specialized with convenience accessors
// for Go's string type (spec §3's "String (length- or terminator-bounded
// byte sequence)").
type String struct {
	seq *ArrayList
}

// byteField adapts a single byte into a Field for use as a String element.
type byteField struct{ v byte }

func (b *byteField) Read(r *Reader) (Status, int) {
	c, st := r.ReadByte()
	if st != StatusSuccess {
		return st, 1
	}
	b.v = c
	return StatusSuccess, 0
}
func (b *byteField) Write(w *Writer) Status { w.Write([]byte{b.v}); return StatusSuccess }
func (b *byteField) Length() int            { return 1 }
func (b *byteField) MinLength() int         { return 1 }
func (b *byteField) MaxLength() int         { return 1 }
func (b *byteField) Valid() bool            { return true }
func (b *byteField) Refresh() bool          { return false }

// NewString builds a string field with the given termination discipline.
func NewString(opts ...SeqOption) (*String, error) {
	seq, err := NewArrayList(func() Field { return &byteField{} }, opts...)
	if err != nil {
		return nil, err
	}
	return &String{seq: seq}, nil
}

func (s *String) Value() string {
	b := make([]byte, len(s.seq.elems))
	for i, e := range s.seq.elems {
		b[i] = e.(*byteField).v
	}
	return string(b)
}

func (s *String) SetValue(v string) {
	elems := make([]Field, len(v))
	for i := 0; i < len(v); i++ {
		elems[i] = &byteField{v: v[i]}
	}
	s.seq.SetElements(elems)
}

func (s *String) Read(r *Reader) (Status, int) { return s.seq.Read(r) }
func (s *String) Write(w *Writer) Status       { return s.seq.Write(w) }
func (s *String) Length() int                  { return s.seq.Length() }
func (s *String) MinLength() int               { return s.seq.MinLength() }
func (s *String) MaxLength() int               { return s.seq.MaxLength() }
func (s *String) Valid() bool                  { return s.seq.Valid() }
func (s *String) Refresh() bool                { return s.seq.Refresh() }
