package field

// NoValue is a zero-byte field: it consumes and emits nothing, and is
// always valid (spec §3's "NoValue (zero-byte, always-valid sentinel)").
// Used as a Variant/Optional alternative standing in for "nothing here",
// or as a placeholder member in a Bundle reserved for future use.
type NoValue struct{}

func (NoValue) Read(r *Reader) (Status, int) { return StatusSuccess, 0 }
func (NoValue) Write(w *Writer) Status        { return StatusSuccess }
func (NoValue) Length() int                   { return 0 }
func (NoValue) MinLength() int                { return 0 }
func (NoValue) MaxLength() int                { return 0 }
func (NoValue) Valid() bool                   { return true }
func (NoValue) Refresh() bool                  { return false }
