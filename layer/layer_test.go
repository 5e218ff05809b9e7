package layer_test

import (
	"testing"

	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/layer"
	"github.com/netaudio/wirecodec/layer/crc"
	"github.com/netaudio/wirecodec/message"
	"github.com/stretchr/testify/require"
)

func idField() layer.IDField {
	f, _ := field.NewIntValue(1, false)
	return f
}

// stubLayer is a no-op Layer used where a test's sync-layer scenario never
// reaches its inner layer.
type stubLayer struct{}

func (stubLayer) Decode(r *field.Reader) (message.Message, int, field.Status) {
	return nil, 0, field.StatusSuccess
}
func (stubLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	return field.StatusSuccess
}
func (stubLayer) Update(buf []byte, frameStart int, msg message.Message) field.Status {
	return field.StatusSuccess
}

func TestSyncPrefixLayerMismatch(t *testing.T) {
	l := layer.NewSyncPrefixLayer([]byte{0xAB, 0xCD}, stubLayer{})
	_, _, st := l.Decode(field.NewReader([]byte{0x00, 0x00}))
	require.Equal(t, field.StatusProtocolError, st)
}

func TestSyncPrefixLayerNotEnoughData(t *testing.T) {
	l := layer.NewSyncPrefixLayer([]byte{0xAB, 0xCD}, stubLayer{})
	_, missing, st := l.Decode(field.NewReader([]byte{0xAB}))
	require.Equal(t, field.StatusNotEnoughData, st)
	require.Equal(t, 1, missing)
}

func TestChecksumLayerDetectsCorruption(t *testing.T) {
	inner := layer.NewMsgIdLayer(idField, idOnlyAllocator(), layer.NewMsgDataLayer())
	l := layer.NewChecksumLayer(4, crc.CRC32IEEE, inner)

	w := field.NewWriter()
	msg := &idOnlyMsg{id: 5}
	require.Equal(t, field.StatusSuccess, l.Encode(w, msg))

	corrupted := append([]byte(nil), w.Bytes()...)
	corrupted[0] ^= 0xFF
	_, _, st := l.Decode(field.NewReader(corrupted))
	require.Equal(t, field.StatusProtocolError, st)

	_, _, st2 := l.Decode(field.NewReader(w.Bytes()))
	require.Equal(t, field.StatusSuccess, st2)
}

type idOnlyMsg struct {
	message.Base
	id int64
}

func (m *idOnlyMsg) MsgID() int64 { return m.id }

func idOnlyAllocator() *layer.DynamicAllocator {
	a := layer.NewDynamicAllocator()
	a.Register(5, func() message.Message { return &idOnlyMsg{id: 5} })
	return a
}
