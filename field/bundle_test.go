package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBundleRoundTrip(t *testing.T) {
	a, _ := NewIntValue(1, false)
	b, _ := NewIntValue(2, false, WithEndian(BigEndian))
	bundle := NewBundle([]string{"a", "b"}, a, b)
	a.SetValue(7)
	b.SetValue(0x0102)

	w := NewWriter()
	require.Equal(t, StatusSuccess, bundle.Write(w))
	require.Equal(t, []byte{7, 0x01, 0x02}, w.Bytes())

	a2, _ := NewIntValue(1, false)
	b2, _ := NewIntValue(2, false, WithEndian(BigEndian))
	out := NewBundle([]string{"a", "b"}, a2, b2)
	st, _ := out.Read(NewReader(w.Bytes()))
	require.Equal(t, StatusSuccess, st)
	require.Equal(t, int64(7), a2.Value())
	require.Equal(t, int64(0x0102), b2.Value())
	require.Equal(t, a2, out.MemberByName("a"))
}

func TestBundleContentsValidator(t *testing.T) {
	lo, _ := NewIntValue(1, false)
	hi, _ := NewIntValue(1, false)
	bundle := NewBundle(nil, lo, hi).WithContentsValidator(func(b *Bundle) bool {
		l := b.Members()[0].(*IntValue).Value()
		h := b.Members()[1].(*IntValue).Value()
		return l <= h
	})
	lo.SetValue(5)
	hi.SetValue(3)
	if bundle.Valid() {
		t.Fatalf("expected invalid when lo > hi")
	}
	hi.SetValue(10)
	if !bundle.Valid() {
		t.Fatalf("expected valid when lo <= hi")
	}
}

func TestBundlePropagatesMemberFailure(t *testing.T) {
	a, _ := NewIntValue(4, false)
	bundle := NewBundle(nil, a)
	st, missing := bundle.Read(NewReader([]byte{1, 2}))
	if st != StatusNotEnoughData || missing != 2 {
		t.Fatalf("got status=%v missing=%d, want NotEnoughData/2", st, missing)
	}
}
