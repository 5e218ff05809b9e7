package layer

// Traceable is implemented by layers that remember the raw bytes of their
// own framing field(s) from the most recent Decode or Encode, letting a
// caller inspect a stack layer-by-layer the way teacher's
// semantic.SemanticMessage splits known fields from raw Unknown bytes for
// diagnostics (spec §4.3's "cached fields" introspection). Not every Layer
// needs to implement this — MsgDataLayer has no framing of its own to cache.
type Traceable interface {
	LayerName() string
	LastRaw() []byte
}

// CachedField is one layer's most recently observed framing bytes.
type CachedField struct {
	Layer string
	Raw   []byte
}

// Trace walks layers in outer-to-inner order and reports the cached
// framing bytes of every layer that implements Traceable.
func Trace(layers ...Layer) []CachedField {
	var out []CachedField
	for _, l := range layers {
		if t, ok := l.(Traceable); ok {
			out = append(out, CachedField{Layer: t.LayerName(), Raw: t.LastRaw()})
		}
	}
	return out
}
