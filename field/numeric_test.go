package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntValueBigEndianRoundTrip(t *testing.T) {
	f, err := NewIntValue(2, false, WithEndian(BigEndian))
	require.NoError(t, err)
	f.SetValue(0x1234)

	w := NewWriter()
	if st := f.Write(w); st != StatusSuccess {
		t.Fatalf("write: got status %v", st)
	}
	if got := w.Bytes(); len(got) != 2 || got[0] != 0x12 || got[1] != 0x34 {
		t.Fatalf("unexpected wire bytes: %x", got)
	}

	out, err := NewIntValue(2, false, WithEndian(BigEndian))
	require.NoError(t, err)
	r := NewReader(w.Bytes())
	st, missing := out.Read(r)
	if st != StatusSuccess {
		t.Fatalf("read: got status %v missing %d", st, missing)
	}
	if out.Value() != 0x1234 {
		t.Fatalf("got %#x, want %#x", out.Value(), 0x1234)
	}
}

func TestIntValueLittleEndianRoundTrip(t *testing.T) {
	f, err := NewIntValue(4, true, WithEndian(LittleEndian))
	require.NoError(t, err)
	f.SetValue(-1)

	w := NewWriter()
	require.Equal(t, StatusSuccess, f.Write(w))

	out, err := NewIntValue(4, true, WithEndian(LittleEndian))
	require.NoError(t, err)
	st, _ := out.Read(NewReader(w.Bytes()))
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, int64(-1), out.Value())
}

func TestIntValueNotEnoughDataReportsMissing(t *testing.T) {
	f, err := NewIntValue(4, false)
	require.NoError(t, err)
	r := NewReader([]byte{0x01, 0x02})
	st, missing := f.Read(r)
	if st != StatusNotEnoughData {
		t.Fatalf("got status %v, want NotEnoughData", st)
	}
	if missing != 2 {
		t.Fatalf("got missing=%d, want 2", missing)
	}
}

func TestIntValueScalingRatioAndOffset(t *testing.T) {
	// logical 100 -> wire 100*1/10 + 5 = 15; read back: (15-5)*10/1 = 100.
	f, err := NewIntValue(2, false, WithScalingRatio(1, 10), WithNumValueSerOffset(5))
	require.NoError(t, err)
	f.SetValue(100)

	w := NewWriter()
	require.Equal(t, StatusSuccess, f.Write(w))

	out, err := NewIntValue(2, false, WithScalingRatio(1, 10), WithNumValueSerOffset(5))
	require.NoError(t, err)
	_, _ = out.Read(NewReader(w.Bytes()))
	require.Equal(t, f.Value(), out.Value())
}

func TestIntValueValidRangeFailOnInvalid(t *testing.T) {
	f, err := NewIntValue(1, false, WithValidNumValueRange(1, 10), FailOnInvalid())
	require.NoError(t, err)
	r := NewReader([]byte{200})
	st, _ := f.Read(r)
	if st != StatusInvalidMsgData {
		t.Fatalf("got status %v, want InvalidMsgData", st)
	}
}

func TestIntValueConflictingOptionsRejected(t *testing.T) {
	_, err := NewIntValue(1, false, FailOnInvalid(), IgnoreInvalid())
	if err != ErrConflictingInvalidPolicy {
		t.Fatalf("got err %v, want ErrConflictingInvalidPolicy", err)
	}
	_, err = NewIntValue(1, false, WithFixedLength(2), WithVarLength(1, 5))
	if err != ErrConflictingLength {
		t.Fatalf("got err %v, want ErrConflictingLength", err)
	}
}

func TestIntValueVarLengthRoundTrip(t *testing.T) {
	f, err := NewIntValue(0, false, WithVarLength(1, 5))
	require.NoError(t, err)
	f.SetValue(300)

	w := NewWriter()
	require.Equal(t, StatusSuccess, f.Write(w))
	require.Equal(t, 2, len(w.Bytes()))

	out, err := NewIntValue(0, false, WithVarLength(1, 5))
	require.NoError(t, err)
	st, _ := out.Read(NewReader(w.Bytes()))
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, int64(300), out.Value())
}

func TestEnumValueValidity(t *testing.T) {
	f, err := NewEnumValue(1, 3)
	require.NoError(t, err)
	f.SetValue(2)
	if !f.Valid() {
		t.Fatalf("expected 2 to be valid under limit 3")
	}
	f.SetValue(3)
	if f.Valid() {
		t.Fatalf("expected 3 to be invalid under limit 3")
	}
}

func TestFloatValueRoundTrip(t *testing.T) {
	f, err := NewFloatValue(4, WithFloatEndian(BigEndian))
	require.NoError(t, err)
	f.SetValue(3.5)

	w := NewWriter()
	require.Equal(t, StatusSuccess, f.Write(w))

	out, err := NewFloatValue(4, WithFloatEndian(BigEndian))
	require.NoError(t, err)
	st, _ := out.Read(NewReader(w.Bytes()))
	require.Equal(t, StatusSuccess, st)
	require.InDelta(t, 3.5, out.Value(), 0.0001)
}

func TestFloatValueRejectsBadWidth(t *testing.T) {
	_, err := NewFloatValue(3)
	if err != ErrInvalidFixedLength {
		t.Fatalf("got err %v, want ErrInvalidFixedLength", err)
	}
}
