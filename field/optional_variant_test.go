package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalMissingConsumesNothing(t *testing.T) {
	inner, _ := NewIntValue(4, false)
	opt := NewOptional(inner)
	r := NewReader([]byte{1, 2, 3})
	st, _ := opt.Read(r)
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, 0, r.Pos())
	require.Equal(t, 0, opt.Length())
}

func TestOptionalExistsDelegates(t *testing.T) {
	inner, _ := NewIntValue(1, false)
	opt := NewOptional(inner)
	opt.SetMode(OptionalExists)
	r := NewReader([]byte{42})
	st, _ := opt.Read(r)
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, int64(42), inner.Value())
}

func TestVariantSelectedDecode(t *testing.T) {
	a, _ := NewIntValue(1, false)
	b, _ := NewIntValue(2, false)
	v := NewVariant(a, b)
	v.Select(1)
	st, _ := v.Read(NewReader([]byte{0x01, 0x02}))
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, int64(0x0102), b.Value())
}

func TestVariantUntaggedTriesAlternativesInOrder(t *testing.T) {
	short, _ := NewIntValue(1, false, WithValidNumValueRange(100, 200), FailOnInvalid())
	long, _ := NewIntValue(2, false)
	v := NewVariant(short, long)

	st, _ := v.Read(NewReader([]byte{0x00, 0x05}))
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, 1, v.CurrentIndex())
}

func TestVariantUntaggedPropagatesLastAlternativeStatus(t *testing.T) {
	// Neither alternative succeeds and neither runs short on bytes, so the
	// untagged trial must surface the last alternative's real failure
	// status rather than a hardcoded one.
	outOfRange, _ := NewIntValue(1, false, WithValidNumValueRange(200, 255), FailOnInvalid())
	tooLong, _ := NewIntValue(1, false, WithVarLength(1, 1))
	v := NewVariant(outOfRange, tooLong)

	st, _ := v.Read(NewReader([]byte{0x80}))
	require.Equal(t, StatusProtocolError, st)
	require.Equal(t, -1, v.CurrentIndex())
}

func TestVariantWriteWithoutSelectionFails(t *testing.T) {
	a, _ := NewIntValue(1, false)
	v := NewVariant(a)
	if st := v.Write(NewWriter()); st != StatusProtocolError {
		t.Fatalf("got %v, want StatusProtocolError", st)
	}
}

func TestNoValueAlwaysValid(t *testing.T) {
	var n NoValue
	r := NewReader([]byte{1, 2, 3})
	st, _ := n.Read(r)
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, 0, r.Pos())
	require.True(t, n.Valid())
}
