package field

// Variant is a tagged union: exactly one of its alternatives is active at a
// time (spec §3/§4.1). Read with no alternative selected tries each
// alternative in declaration order against a rolled-back cursor until one
// succeeds, the approach used
// when the wire format carries no explicit tag of its own and the
// alternatives must be distinguished by trial decode. When the enclosing
// layer or bundle already knows the tag (e.g. a preceding EnumValue member),
// call Select then Read to decode directly into the chosen alternative
// without trial and error.
type Variant struct {
	alternatives []Field
	current      int // index into alternatives, -1 if none selected
}

// NewVariant builds a variant over the given alternatives in declaration
// order. None is selected initially.
func NewVariant(alternatives ...Field) *Variant {
	return &Variant{alternatives: alternatives, current: -1}
}

// Select fixes the active alternative by index, as driven by an external
// tag. Subsequent Read/Write operate on it directly.
func (f *Variant) Select(index int) {
	if index < 0 || index >= len(f.alternatives) {
		f.current = -1
		return
	}
	f.current = index
}

// CurrentIndex returns the active alternative's index, or -1 if none.
func (f *Variant) CurrentIndex() int { return f.current }

// Current returns the active alternative, or nil if none is selected.
func (f *Variant) Current() Field {
	if f.current < 0 {
		return nil
	}
	return f.alternatives[f.current]
}

// Read decodes into the already-selected alternative. Call Select first;
// if none is selected it tries the alternatives in order (readUntagged).
func (f *Variant) Read(r *Reader) (Status, int) {
	if f.current < 0 {
		return f.readUntagged(r)
	}
	return f.alternatives[f.current].Read(r)
}

// readUntagged tries every alternative in order against a rolled-back
// cursor, selecting the first that reads successfully. A NotEnoughData from
// one alternative doesn't rule out a later alternative needing fewer bytes,
// so the largest reported missing size across all attempts is surfaced. If
// none succeed and none reported NotEnoughData, the last alternative's own
// failure status is propagated rather than a hardcoded one.
func (f *Variant) readUntagged(r *Reader) (Status, int) {
	maxMissing := 0
	anyNotEnough := false
	lastStatus := StatusInvalidMsgData
	for i, alt := range f.alternatives {
		m := r.Mark()
		st, missing := alt.Read(r)
		if st == StatusSuccess {
			f.current = i
			return StatusSuccess, 0
		}
		r.Reset(m)
		lastStatus = st
		if st == StatusNotEnoughData {
			anyNotEnough = true
			if missing > maxMissing {
				maxMissing = missing
			}
			continue
		}
	}
	if anyNotEnough {
		return StatusNotEnoughData, maxMissing
	}
	return lastStatus, 0
}

func (f *Variant) Write(w *Writer) Status {
	if f.current < 0 {
		return StatusProtocolError
	}
	return f.alternatives[f.current].Write(w)
}

func (f *Variant) Length() int {
	if f.current < 0 {
		return 0
	}
	return f.alternatives[f.current].Length()
}

func (f *Variant) MinLength() int {
	min := -1
	for _, alt := range f.alternatives {
		if min < 0 || alt.MinLength() < min {
			min = alt.MinLength()
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

func (f *Variant) MaxLength() int {
	max := 0
	for _, alt := range f.alternatives {
		if alt.MaxLength() > max {
			max = alt.MaxLength()
		}
	}
	return max
}

func (f *Variant) Valid() bool {
	if f.current < 0 {
		return false
	}
	return f.alternatives[f.current].Valid()
}

func (f *Variant) Refresh() bool {
	if f.current < 0 {
		return false
	}
	return f.alternatives[f.current].Refresh()
}
