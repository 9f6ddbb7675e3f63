package syrup

// Hooks are lightweight callbacks for high-signal parsing/decoding
// events that are not errors but are worth surfacing to an operator.
// Implementations MUST be cheap and non-blocking; do not perform I/O.
// If work may block, buffer it and drop on backpressure (see
// hooks/async for a ready-made wrapper).
type Hooks interface {
	// DuplicateDictionaryKey fires when canonicalizing a Dictionary
	// collapses two or more entries whose keys share a canonical
	// encoding; kept is the key's canonical encoding, dropped is the
	// count of entries that lost.
	DuplicateDictionaryKey(kept []byte, dropped int)
	// InvalidUTF8Replaced fires when a String/Symbol payload contained
	// invalid UTF-8 and was lossily repaired.
	InvalidUTF8Replaced(kind string, length int)
	// AmbiguousRecordVariant fires when a Record whose first field is a
	// Symbol is decoded into an interface target but its label and that
	// Symbol are not registered as an enum variant; the decode then
	// fails with an error. label is the Record's label.
	AmbiguousRecordVariant(label string)
	// TruncatedInput fires when Parse reaches end of input where it
	// expects the start of a value. Truncation inside a fixed-width or
	// length-prefixed payload, or before a record's closing '>', is
	// returned as a parse error without firing it.
	TruncatedInput(offset int)
}

// NopHooks is a default no-op.
type NopHooks struct{}

func (NopHooks) DuplicateDictionaryKey([]byte, int) {}
func (NopHooks) InvalidUTF8Replaced(string, int)    {}
func (NopHooks) AmbiguousRecordVariant(string)      {}
func (NopHooks) TruncatedInput(int)                 {}

// Multi returns a Hooks that fans out to all provided hooks, in order.
// Nil entries are ignored. Panics from a hook propagate to the caller.
//
// example usage:
//
//	logH := sloghook.New(slog.Default())
//	metH := promhook.New(...) // some metrics adapter
//
//	hooks := syrup.Multi(logH, metH)
//	// or wrap in hooks/async to isolate backpressure
//	hooks = asynchook.New(hooks, 1, 1000)
func Multi(hs ...Hooks) Hooks {
	nn := make([]Hooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			nn = append(nn, h)
		}
	}
	return multiHooks(nn)
}

type multiHooks []Hooks

func (m multiHooks) DuplicateDictionaryKey(kept []byte, dropped int) {
	for _, h := range m {
		h.DuplicateDictionaryKey(kept, dropped)
	}
}
func (m multiHooks) InvalidUTF8Replaced(kind string, length int) {
	for _, h := range m {
		h.InvalidUTF8Replaced(kind, length)
	}
}
func (m multiHooks) AmbiguousRecordVariant(label string) {
	for _, h := range m {
		h.AmbiguousRecordVariant(label)
	}
}
func (m multiHooks) TruncatedInput(offset int) {
	for _, h := range m {
		h.TruncatedInput(offset)
	}
}
