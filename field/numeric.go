package field

import "math"

// IntValue is a signed or unsigned integer field, fixed-width or
// base-128 variable length, with an optional serialization offset,
// scaling ratio, and validity range (spec §3/§4.1).
type IntValue struct {
	cfg    numConfig
	width  int // byte width used when not VarLength
	signed bool
	value  int64
}

// NewIntValue builds an integer field of the given byte width (ignored
// when WithVarLength is supplied). width must be 1..8.
func NewIntValue(width int, signed bool, opts ...NumOption) (*IntValue, error) {
	cfg, err := newNumConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.fixedLenSet {
		width = cfg.fixedLen
	}
	f := &IntValue{cfg: cfg, width: width, signed: signed}
	if cfg.hasDefault {
		f.value = cfg.defaultVal
	}
	return f, nil
}

func (f *IntValue) Value() int64     { return f.value }
func (f *IntValue) SetValue(v int64) { f.value = v }

func (f *IntValue) wireValue() int64 {
	v := f.value
	if f.cfg.hasScale {
		v = v * f.cfg.scaleP / f.cfg.scaleQ
	}
	return v + f.cfg.serOffset
}

func (f *IntValue) fromWireValue(wire int64) {
	v := wire - f.cfg.serOffset
	if f.cfg.hasScale {
		v = v * f.cfg.scaleQ / f.cfg.scaleP
	}
	f.value = v
}

func (f *IntValue) Read(r *Reader) (Status, int) {
	if f.cfg.varLen {
		u, _, st := readVarint(r, f.cfg.varLenMax)
		if st == StatusNotEnoughData {
			return st, 1
		}
		if st != StatusSuccess {
			return st, 0
		}
		f.fromWireValue(int64(u))
	} else {
		b, missing, st := r.ReadN(f.width)
		if st != StatusSuccess {
			return st, missing
		}
		u := f.cfg.endian.uint(b, f.width)
		v := int64(u)
		if f.signed {
			v = signExtend(u, f.width)
		}
		f.fromWireValue(v)
	}
	if f.cfg.failOnInvalid && !f.Valid() {
		return StatusInvalidMsgData, 0
	}
	return StatusSuccess, 0
}

func signExtend(u uint64, width int) int64 {
	bits := uint(width * 8)
	shift := 64 - bits
	return int64(u<<shift) >> shift
}

func (f *IntValue) Write(w *Writer) Status {
	wire := f.wireValue()
	if f.cfg.varLen {
		enc := putVarint(uint64(wire))
		if f.cfg.varLenMax > 0 && len(enc) > f.cfg.varLenMax {
			return StatusBufferOverflow
		}
		w.Write(enc)
		return StatusSuccess
	}
	b := make([]byte, f.width)
	f.cfg.endian.putUint(b, uint64(wire), f.width)
	w.Write(b)
	return StatusSuccess
}

func (f *IntValue) Length() int {
	if f.cfg.varLen {
		return len(putVarint(uint64(f.wireValue())))
	}
	return f.width
}

func (f *IntValue) MinLength() int {
	if f.cfg.varLen {
		if f.cfg.varLenMin > 0 {
			return f.cfg.varLenMin
		}
		return 1
	}
	return f.width
}

func (f *IntValue) MaxLength() int {
	if f.cfg.varLen {
		return f.cfg.varLenMax
	}
	return f.width
}

func (f *IntValue) Valid() bool {
	if f.cfg.ignoreInvalid {
		return true
	}
	return f.cfg.inRange(f.value)
}

// Refresh on a plain IntValue never changes state on its own; composites
// that key an Optional's mode off this value drive refresh externally.
func (f *IntValue) Refresh() bool { return false }

// EnumValue is an integer field whose validity is "< Limit" (spec §3).
type EnumValue struct {
	IntValue
	limit int64
}

// NewEnumValue builds an enum field of the given byte width with the given
// exclusive upper bound.
func NewEnumValue(width int, limit int64, opts ...NumOption) (*EnumValue, error) {
	base, err := NewIntValue(width, false, opts...)
	if err != nil {
		return nil, err
	}
	return &EnumValue{IntValue: *base, limit: limit}, nil
}

func (f *EnumValue) Valid() bool {
	if f.cfg.ignoreInvalid {
		return true
	}
	return f.value >= 0 && f.value < f.limit
}

// Read decodes like IntValue.Read, then applies FailOnInvalid against the
// enum's own Valid (the "< Limit" rule).
func (f *EnumValue) Read(r *Reader) (Status, int) {
	st, missing := f.IntValue.Read(r)
	if st == StatusSuccess && f.cfg.failOnInvalid && !f.Valid() {
		return StatusInvalidMsgData, 0
	}
	return st, missing
}

// FloatValue is an IEEE-754 field of fixed width (4 or 8 bytes).
type FloatValue struct {
	endian Endian
	width  int
	value  float64
}

// NewFloatValue builds a 4- or 8-byte IEEE-754 field.
func NewFloatValue(width int, opts ...FloatOption) (*FloatValue, error) {
	if width != 4 && width != 8 {
		return nil, ErrInvalidFixedLength
	}
	f := &FloatValue{width: width}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FloatOption configures a FloatValue at construction time.
type FloatOption func(*FloatValue)

// WithFloatEndian selects byte order. Default BigEndian.
func WithFloatEndian(e Endian) FloatOption {
	return func(f *FloatValue) { f.endian = e }
}

func (f *FloatValue) Value() float64     { return f.value }
func (f *FloatValue) SetValue(v float64) { f.value = v }

func (f *FloatValue) Read(r *Reader) (Status, int) {
	b, missing, st := r.ReadN(f.width)
	if st != StatusSuccess {
		return st, missing
	}
	if f.width == 4 {
		bits := uint32(f.endian.uint(b, 4))
		f.value = float64(math.Float32frombits(bits))
		return StatusSuccess, 0
	}
	bits := f.endian.uint(b, 8)
	f.value = math.Float64frombits(bits)
	return StatusSuccess, 0
}

func (f *FloatValue) Write(w *Writer) Status {
	b := make([]byte, f.width)
	if f.width == 4 {
		f.endian.putUint(b, uint64(math.Float32bits(float32(f.value))), 4)
	} else {
		f.endian.putUint(b, math.Float64bits(f.value), 8)
	}
	w.Write(b)
	return StatusSuccess
}

func (f *FloatValue) Length() int    { return f.width }
func (f *FloatValue) MinLength() int { return f.width }
func (f *FloatValue) MaxLength() int { return f.width }
func (f *FloatValue) Valid() bool    { return true }
func (f *FloatValue) Refresh() bool  { return false }
