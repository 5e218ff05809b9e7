package layer_test

import (
	"testing"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/layer"
	"github.com/netaudio/wirecodec/layer/crc"
	"github.com/netaudio/wirecodec/message"
	"github.com/stretchr/testify/require"
)

func TestMsgSizeLayerDeclaredSizeExceedsBuffer(t *testing.T) {
	l := layer.NewMsgSizeLayer(idField, stubMsgLayerAsLayer(t))
	// declared size (1 byte) says 9, but only 2 bytes of body follow.
	r := field.NewReader([]byte{0x09, 0x01, 0x02})
	_, missing, st := l.Decode(r)
	require.Equal(t, field.StatusNotEnoughData, st)
	require.Equal(t, 7, missing)
}

// stubMsgLayerAsLayer adapts MsgDataLayer wrapped in a minimal MsgIdLayer so
// MsgSizeLayer has a concrete next Layer to delegate to in isolation.
func stubMsgLayerAsLayer(t *testing.T) layer.Layer {
	t.Helper()
	alloc := layer.NewDynamicAllocator()
	return layer.NewMsgIdLayer(idField, alloc, layer.NewMsgDataLayer())
}

func TestChecksumPrefixLayerRoundTrip(t *testing.T) {
	inner := layer.NewMsgIdLayer(idField, idOnlyAllocator(), layer.NewMsgDataLayer())
	l := layer.NewChecksumPrefixLayer(4, crc.CRC32IEEE, inner)

	w := field.NewWriter()
	msg := &idOnlyMsg{id: 5}
	require.Equal(t, field.StatusSuccess, l.Encode(w, msg))

	decoded, _, st := l.Decode(field.NewReader(w.Bytes()))
	require.Equal(t, field.StatusSuccess, st)
	require.Equal(t, int64(5), decoded.(*idOnlyMsg).MsgID())
}

func TestChecksumPrefixLayerDetectsCorruption(t *testing.T) {
	inner := layer.NewMsgIdLayer(idField, idOnlyAllocator(), layer.NewMsgDataLayer())
	l := layer.NewChecksumPrefixLayer(4, crc.CRC32IEEE, inner)

	w := field.NewWriter()
	msg := &idOnlyMsg{id: 5}
	require.Equal(t, field.StatusSuccess, l.Encode(w, msg))

	corrupted := append([]byte(nil), w.Bytes()...)
	corrupted[len(corrupted)-1] ^= 0xFF // flip a body byte, prefix stays stale
	_, _, st := l.Decode(field.NewReader(corrupted))
	require.Equal(t, field.StatusProtocolError, st)
}

func TestTransportValueLayerRoundTrip(t *testing.T) {
	var seen int64
	idLayer := layer.NewMsgIdLayer(idField, idOnlyAllocator(), layer.NewMsgDataLayer())
	tv := layer.NewTransportValueLayer(
		func() layer.IDField { f, _ := field.NewIntValue(1, false); return f },
		func(m message.Message) int64 { return 3 },
		func(m message.Message, v int64) { seen = v },
		idLayer,
	)

	w := field.NewWriter()
	require.Equal(t, field.StatusSuccess, tv.Encode(w, &idOnlyMsg{id: 5}))

	_, _, st := tv.Decode(field.NewReader(w.Bytes()))
	require.Equal(t, field.StatusSuccess, st)
	require.Equal(t, int64(3), seen)
}

func TestInPlaceAllocatorEnforcesSingleBusySlot(t *testing.T) {
	a := layer.NewInPlaceAllocator()
	a.Register(5, func() message.Message { return &idOnlyMsg{id: 5} })

	first, known := a.Candidates(5)
	require.True(t, known)
	require.Len(t, first, 1)

	busy, stillKnown := a.Candidates(5)
	require.True(t, stillKnown)
	require.Nil(t, busy)

	a.Release(5, first[0]())
	again, _ := a.Candidates(5)
	require.Len(t, again, 1)
}

func TestInPlaceAllocatorUnknownID(t *testing.T) {
	a := layer.NewInPlaceAllocator()
	candidates, known := a.Candidates(99)
	require.False(t, known)
	require.Nil(t, candidates)
}

func TestMsgIdLayerUnknownIDIsInvalidMsgId(t *testing.T) {
	alloc := layer.NewDynamicAllocator()
	alloc.Register(5, func() message.Message { return &idOnlyMsg{id: 5} })
	idLayer := layer.NewMsgIdLayer(idField, alloc, layer.NewMsgDataLayer())

	w := field.NewWriter()
	require.Equal(t, field.StatusSuccess, mustIDField(t, 9).Write(w))
	_, _, st := idLayer.Decode(field.NewReader(w.Bytes()))
	require.Equal(t, field.StatusInvalidMsgId, st)
}

func TestMsgIdLayerBusySlotIsAllocFailure(t *testing.T) {
	alloc := layer.NewInPlaceAllocator()
	alloc.Register(5, func() message.Message { return &idOnlyMsg{id: 5} })
	idLayer := layer.NewMsgIdLayer(idField, alloc, layer.NewMsgDataLayer())

	w := field.NewWriter()
	require.Equal(t, field.StatusSuccess, mustIDField(t, 5).Write(w))
	frame := w.Bytes()

	// First decode takes the only slot and never releases it.
	_, _, first := idLayer.Decode(field.NewReader(frame))
	require.Equal(t, field.StatusSuccess, first)

	_, _, second := idLayer.Decode(field.NewReader(frame))
	require.Equal(t, field.StatusMsgAllocFailure, second)
}

func mustIDField(t *testing.T, id int64) layer.IDField {
	t.Helper()
	f := idField()
	f.SetValue(id)
	return f
}

func TestDynamicAllocatorTriesCandidatesInOrder(t *testing.T) {
	a := layer.NewDynamicAllocator()
	a.Register(5, func() message.Message { return &idOnlyMsg{id: 5} })
	a.Register(5, func() message.Message { return &idOnlyMsg{id: 50} })

	candidates, known := a.Candidates(5)
	require.True(t, known)
	require.Len(t, candidates, 2)
	require.Equal(t, int64(5), candidates[0]().(*idOnlyMsg).MsgID())
	require.Equal(t, int64(50), candidates[1]().(*idOnlyMsg).MsgID())
}
