package field

// numConfig accumulates the options recognized for scalar numeric fields
// (IntValue, EnumValue). Conflicting options are rejected by the field
// constructor at build time (spec §4.1: "Options conflicting at type level
// ... must be rejected at type construction").
type numConfig struct {
	endian Endian

	fixedLen    int // byte width; 0 means "derive from value type"
	fixedLenSet bool

	varLen       bool
	varLenMin    int
	varLenMax    int

	serOffset int64

	hasScale bool
	scaleP   int64
	scaleQ   int64

	hasDefault bool
	defaultVal int64

	validRanges [][2]int64

	failOnInvalid bool
	ignoreInvalid bool
}

// NumOption configures a scalar numeric field at construction time.
type NumOption func(*numConfig) error

func newNumConfig(opts []NumOption) (numConfig, error) {
	var cfg numConfig
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return numConfig{}, err
		}
	}
	if cfg.failOnInvalid && cfg.ignoreInvalid {
		return numConfig{}, ErrConflictingInvalidPolicy
	}
	if cfg.fixedLenSet && cfg.varLen {
		return numConfig{}, ErrConflictingLength
	}
	return cfg, nil
}

// WithEndian selects byte order for multi-byte encoding. Default BigEndian.
func WithEndian(e Endian) NumOption {
	return func(c *numConfig) error { c.endian = e; return nil }
}

// WithFixedLength declares the wire size in bytes.
func WithFixedLength(n int) NumOption {
	return func(c *numConfig) error {
		if n <= 0 {
			return ErrInvalidFixedLength
		}
		c.fixedLen = n
		c.fixedLenSet = true
		return nil
	}
}

// WithVarLength enables base-128 continuation encoding bounded to
// [min,max] encoded bytes.
func WithVarLength(min, max int) NumOption {
	return func(c *numConfig) error {
		if min < 0 || max < min {
			return ErrInvalidVarLengthRange
		}
		c.varLen = true
		c.varLenMin = min
		c.varLenMax = max
		return nil
	}
}

// WithNumValueSerOffset adds K before write and subtracts it after read.
func WithNumValueSerOffset(k int64) NumOption {
	return func(c *numConfig) error { c.serOffset = k; return nil }
}

// WithScalingRatio declares logical_value * (p/q) = wire_integer.
func WithScalingRatio(p, q int64) NumOption {
	return func(c *numConfig) error {
		if p == 0 || q == 0 {
			return ErrInvalidScalingRatio
		}
		c.hasScale = true
		c.scaleP = p
		c.scaleQ = q
		return nil
	}
}

// WithDefaultNumValue sets the default-construction value.
func WithDefaultNumValue(v int64) NumOption {
	return func(c *numConfig) error { c.hasDefault = true; c.defaultVal = v; return nil }
}

// WithValidNumValueRange adds an inclusive [lo,hi] range to the validity
// predicate. Multiple ranges form a union; any match is valid.
func WithValidNumValueRange(lo, hi int64) NumOption {
	return func(c *numConfig) error {
		c.validRanges = append(c.validRanges, [2]int64{lo, hi})
		return nil
	}
}

// FailOnInvalid causes Read to return StatusInvalidMsgData when, after a
// successful decode, Valid() is false.
func FailOnInvalid() NumOption {
	return func(c *numConfig) error { c.failOnInvalid = true; return nil }
}

// IgnoreInvalid suppresses Valid() from ever influencing Read's status.
func IgnoreInvalid() NumOption {
	return func(c *numConfig) error { c.ignoreInvalid = true; return nil }
}

func (c numConfig) inRange(v int64) bool {
	if len(c.validRanges) == 0 {
		return true
	}
	for _, r := range c.validRanges {
		if v >= r[0] && v <= r[1] {
			return true
		}
	}
	return false
}
