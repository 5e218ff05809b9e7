// Package message owns message identity and the capability interfaces a
// concrete message type opts into, plus the polymorphic dispatch registry
// used to route a decoded message to type-specific handling without a
// closed type switch.
//
// Ownership boundary:
// - Message and its optional capability interfaces
// - generic Handler[R] dispatch
//
// Message does not own wire framing; see package layer and package stack.
package message

import "github.com/netaudio/wirecodec/field"

// Message is the minimum every wire message implements: it can read and
// write itself through the same Reader/Writer cursors a field uses (spec
// §4.2). A concrete message is typically a Bundle of fields plus an ID.
type Message interface {
	Read(r *field.Reader) (status field.Status, missing int)
	Write(w *field.Writer) field.Status
	Length() int
}

// IDGetter is implemented by messages carrying a numeric identifier used
// for dispatch (spec §4.2: "messages... tagged with a numeric ID").
type IDGetter interface {
	MsgID() int64
}

// ValidChecker is implemented by messages with a content validity
// predicate beyond successful framing.
type ValidChecker interface {
	Valid() bool
}

// Refresher is implemented by messages that can recompute derived fields
// (e.g. a length field from its sibling list) before being written.
type Refresher interface {
	Refresh() bool
}

// Named is implemented by messages that report a human-readable type name,
// used in logs and CLI output rather than in any wire-level decision.
type Named interface {
	Name() string
}
