package field

import "errors"

// Construction-time errors: invalid or conflicting option combinations are
// rejected when a field type is built, not at first use.
var (
	ErrConflictingInvalidPolicy = errors.New("field: FailOnInvalid and IgnoreInvalid are mutually exclusive")
	ErrConflictingLength        = errors.New("field: FixedLength and VarLength are mutually exclusive")
	ErrConflictingTermination   = errors.New("field: at most one sequence termination discipline is allowed")
	ErrInvalidScalingRatio      = errors.New("field: ScalingRatio numerator and denominator must be non-zero")
	ErrInvalidBitWidth          = errors.New("field: bitfield member widths must sum to a whole number of bytes")
	ErrInvalidFixedLength       = errors.New("field: FixedLength must be positive")
	ErrInvalidVarLengthRange    = errors.New("field: VarLength min must be <= max and both non-negative")
	ErrMissingSequenceLength    = errors.New("field: sequence requires exactly one size discipline")
)
