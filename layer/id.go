package layer

import (
	"github.com/netaudio/wirecodec/field"
	"github.com/netaudio/wirecodec/message"
)

// Factory builds one blank message instance.
type Factory func() message.Message

// Allocator resolves a decoded numeric ID to one or more candidate message
// factories (spec §4.3/§5's allocator policy). More than one factory per ID
// models protocol versions or variants that share a wire ID but differ in
// body shape; MsgIdLayer tries each candidate in registration order until
// one reads successfully.
//
// known distinguishes an ID nothing was ever registered for (MsgIdLayer
// reports StatusInvalidMsgId) from an ID that is registered but currently
// cannot hand out an instance, e.g. an InPlaceAllocator slot still busy
// from a prior decode (MsgIdLayer reports StatusMsgAllocFailure instead —
// spec §4.3/§7 treats these as distinct error classes).
type Allocator interface {
	Candidates(id int64) (candidates []Factory, known bool)
	// Release is called once MsgIdLayer is done with a message obtained
	// from this allocator, so an in-place policy can mark its slot free.
	Release(id int64, msg message.Message)
}

// DynamicAllocator heap-allocates a fresh message via the matching
// factory on every decode (spec's "dynamic heap-backed" policy) — the
// default, unconstrained choice. Release is a no-op since nothing is
// reused.
type DynamicAllocator struct {
	factories map[int64][]Factory
}

func NewDynamicAllocator() *DynamicAllocator {
	return &DynamicAllocator{factories: make(map[int64][]Factory)}
}

// Register adds f as another candidate factory for id, tried after any
// already registered for the same id.
func (a *DynamicAllocator) Register(id int64, f Factory) {
	a.factories[id] = append(a.factories[id], f)
}

func (a *DynamicAllocator) Candidates(id int64) ([]Factory, bool) {
	fs, ok := a.factories[id]
	return fs, ok
}

func (a *DynamicAllocator) Release(int64, message.Message) {}

// InPlaceAllocator keeps exactly one message instance per ID, built on
// first use, and hands out the same pointer on every decode, the "in-place
// single-slot" policy spec §5 allows as an alternative to per-message heap
// churn. Since Go has no placement-new, "in place" means reuse of one
// long-lived instance rather than reuse of a literal memory region; busy
// flags enforce that at most one instance is live at a time: while any
// slot handed out has not been Released, Candidates hands out nothing,
// standing in for the single-ownership invariant the original allocator
// gets from the caller never holding two overlapping decodes at once.
type InPlaceAllocator struct {
	factories map[int64]Factory
	slots     map[int64]message.Message
	busy      map[int64]bool
}

func NewInPlaceAllocator() *InPlaceAllocator {
	return &InPlaceAllocator{
		factories: make(map[int64]Factory),
		slots:     make(map[int64]message.Message),
		busy:      make(map[int64]bool),
	}
}

// Register sets the single factory for id, replacing the slot if one was
// already registered. Only one alternative per ID is supported by this
// policy; a protocol needing multiple alternatives per ID should use
// DynamicAllocator instead.
func (a *InPlaceAllocator) Register(id int64, f Factory) {
	a.factories[id] = f
	delete(a.slots, id)
}

func (a *InPlaceAllocator) Candidates(id int64) ([]Factory, bool) {
	f, ok := a.factories[id]
	if !ok {
		return nil, false
	}
	for _, busy := range a.busy {
		if busy {
			// Known ID, but a slot handed out earlier hasn't been Released yet.
			return nil, true
		}
	}
	if a.slots[id] == nil {
		a.slots[id] = f()
	}
	slot := a.slots[id]
	a.busy[id] = true
	return []Factory{func() message.Message { return slot }}, true
}

func (a *InPlaceAllocator) Release(id int64, msg message.Message) {
	a.busy[id] = false
}

// IDField is the shape an ID field must expose: it is a regular field.Field
// (so MsgIdLayer can Read/Write it like any other framing field) plus an
// int64 accessor MsgIdLayer uses to index the Allocator. *field.IntValue
// and *field.EnumValue both satisfy this already.
type IDField interface {
	field.Field
	Value() int64
	SetValue(v int64)
}

// IDFieldFactory builds a blank ID field, e.g. func() IDField { f, _ :=
// field.NewIntValue(2, false); return f }.
type IDFieldFactory func() IDField

// MsgIdLayer reads a numeric ID field, resolves it to a candidate message
// via its Allocator, and delegates the remaining bytes to the wrapped
// MsgLayer — the outer/inner bridge described in layer.go's MsgLayer
// doc comment. It implements Layer outward and wraps a MsgLayer inward.
type MsgIdLayer struct {
	idFactory IDFieldFactory
	alloc     Allocator
	inner     MsgLayer
	lastRaw   []byte
}

// NewMsgIdLayer builds an ID layer keying messages from alloc, using
// idFactory to read/write the ID field itself and inner to decode/encode
// the message body once a candidate is chosen.
func NewMsgIdLayer(idFactory IDFieldFactory, alloc Allocator, inner MsgLayer) *MsgIdLayer {
	return &MsgIdLayer{idFactory: idFactory, alloc: alloc, inner: inner}
}

func (l *MsgIdLayer) Decode(r *field.Reader) (message.Message, int, field.Status) {
	idF := l.idFactory()
	markStart := r.Pos()
	if st, missing := idF.Read(r); st != field.StatusSuccess {
		return nil, missing, st
	}
	l.lastRaw = r.Window(markStart, r.Pos())
	id := idF.Value()
	candidates, known := l.alloc.Candidates(id)
	if !known {
		return nil, 0, field.StatusInvalidMsgId
	}
	if len(candidates) == 0 {
		return nil, 0, field.StatusMsgAllocFailure
	}
	maxMissing := 0
	anyNotEnough := false
	var invalidMsg message.Message
	invalidEnd := 0
	for _, factory := range candidates {
		msg := factory()
		mark := r.Mark()
		missing, st := l.inner.Decode(r, msg)
		if st == field.StatusSuccess {
			return msg, 0, field.StatusSuccess
		}
		if st == field.StatusInvalidMsgData && invalidMsg == nil {
			// Framed correctly but failed a validator: keep it in case no
			// later candidate decodes cleanly.
			invalidMsg, invalidEnd = msg, r.Pos()
			r.Reset(mark)
			continue
		}
		r.Reset(mark)
		l.alloc.Release(id, msg)
		if st == field.StatusNotEnoughData {
			anyNotEnough = true
			if missing > maxMissing {
				maxMissing = missing
			}
			continue
		}
	}
	if invalidMsg != nil {
		r.Reset(invalidEnd)
		return invalidMsg, 0, field.StatusInvalidMsgData
	}
	if anyNotEnough {
		return nil, maxMissing, field.StatusNotEnoughData
	}
	return nil, 0, field.StatusInvalidMsgData
}

func (l *MsgIdLayer) Encode(w *field.Writer, msg message.Message) field.Status {
	getter, ok := msg.(message.IDGetter)
	if !ok {
		return field.StatusProtocolError
	}
	idF := l.idFactory()
	idF.SetValue(getter.MsgID())
	idStart := w.Pos()
	if st := idF.Write(w); st != field.StatusSuccess {
		return st
	}
	l.lastRaw = w.Bytes()[idStart:w.Pos()]
	return l.inner.Encode(w, msg)
}

// Update is a no-op: MsgIdLayer never defers any of its own bytes to a
// later pass, only layers outside it (size, checksum prefix) might.
func (l *MsgIdLayer) Update(buf []byte, frameStart int, msg message.Message) field.Status {
	return field.StatusSuccess
}

func (l *MsgIdLayer) LayerName() string { return "msg_id" }
func (l *MsgIdLayer) LastRaw() []byte   { return l.lastRaw }
