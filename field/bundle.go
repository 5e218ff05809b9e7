package field

// ContentsValidator runs after a Bundle's members are individually valid,
// to enforce cross-member invariants the members can't express alone
// (spec §4.1's "ContentsValidator" option, lifted to bundle granularity).
type ContentsValidator func(b *Bundle) bool

// ContentsRefresher runs after Refresh folds over members, to derive one
// member's value from another (e.g. a length field from a sibling list).
type ContentsRefresher func(b *Bundle) bool

// Bundle is an ordered, fixed-shape group of fields read and written
// sequentially (spec §3/§4.1). Validity is the AND of every member's
// Valid() and any ContentsValidator; Refresh is the OR of every member's
// Refresh() and any ContentsRefresher.
type Bundle struct {
	members    []Field
	names      map[string]int
	validator  ContentsValidator
	refresher  ContentsRefresher
}

// NewBundle builds a bundle from fields in declaration order. Names are
// optional positional labels used by MemberByName; pass an empty
// string to leave a member unnamed.
func NewBundle(names []string, members ...Field) *Bundle {
	b := &Bundle{members: members}
	if len(names) > 0 {
		b.names = make(map[string]int, len(names))
		for i, n := range names {
			if n != "" {
				b.names[n] = i
			}
		}
	}
	return b
}

// WithContentsValidator attaches a bundle-level validity check.
func (b *Bundle) WithContentsValidator(v ContentsValidator) *Bundle {
	b.validator = v
	return b
}

// WithContentsRefresher attaches a bundle-level refresh rule.
func (b *Bundle) WithContentsRefresher(r ContentsRefresher) *Bundle {
	b.refresher = r
	return b
}

// Members returns the bundle's fields in declaration order.
func (b *Bundle) Members() []Field { return b.members }

// MemberByName returns the named member, or nil if unknown or unnamed.
func (b *Bundle) MemberByName(name string) Field {
	if b.names == nil {
		return nil
	}
	i, ok := b.names[name]
	if !ok {
		return nil
	}
	return b.members[i]
}

func (b *Bundle) Read(r *Reader) (Status, int) {
	for _, m := range b.members {
		if st, missing := m.Read(r); st != StatusSuccess {
			return st, missing
		}
	}
	return StatusSuccess, 0
}

func (b *Bundle) Write(w *Writer) Status {
	for _, m := range b.members {
		if st := m.Write(w); st != StatusSuccess {
			return st
		}
	}
	return StatusSuccess
}

func (b *Bundle) Length() int {
	total := 0
	for _, m := range b.members {
		total += m.Length()
	}
	return total
}

func (b *Bundle) MinLength() int {
	total := 0
	for _, m := range b.members {
		total += m.MinLength()
	}
	return total
}

func (b *Bundle) MaxLength() int {
	total := 0
	for _, m := range b.members {
		total += m.MaxLength()
	}
	return total
}

func (b *Bundle) Valid() bool {
	for _, m := range b.members {
		if !m.Valid() {
			return false
		}
	}
	if b.validator != nil {
		return b.validator(b)
	}
	return true
}

func (b *Bundle) Refresh() bool {
	changed := false
	for _, m := range b.members {
		if m.Refresh() {
			changed = true
		}
	}
	if b.refresher != nil {
		if b.refresher(b) {
			changed = true
		}
	}
	return changed
}
