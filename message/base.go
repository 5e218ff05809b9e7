package message

import "github.com/netaudio/wirecodec/field"

// Base is an embeddable helper that implements Message (plus ValidChecker
// and Refresher) by delegating to an ordered list of fields, the common
// case of "a message is its fields read/written in sequence" (spec §4.2).
// Concrete message types embed Base and add MsgID()/Name() themselves.
type Base struct {
	Fields []field.Field
}

// NewBase wraps fields in declaration order.
func NewBase(fields ...field.Field) Base {
	return Base{Fields: fields}
}

func (b *Base) Read(r *field.Reader) (field.Status, int) {
	for _, f := range b.Fields {
		if st, missing := f.Read(r); st != field.StatusSuccess {
			return st, missing
		}
	}
	return field.StatusSuccess, 0
}

func (b *Base) Write(w *field.Writer) field.Status {
	for _, f := range b.Fields {
		if st := f.Write(w); st != field.StatusSuccess {
			return st
		}
	}
	return field.StatusSuccess
}

func (b *Base) Length() int {
	total := 0
	for _, f := range b.Fields {
		total += f.Length()
	}
	return total
}

func (b *Base) Valid() bool {
	for _, f := range b.Fields {
		if !f.Valid() {
			return false
		}
	}
	return true
}

func (b *Base) Refresh() bool {
	changed := false
	for _, f := range b.Fields {
		if f.Refresh() {
			changed = true
		}
	}
	return changed
}
