// Package binding is Syrup's reflection-driven data-binding layer. It
// maps idiomatic Go values — primitives, pointers, slices, maps,
// structs, and (via explicit opt-in) sum types — onto Syrup's wire
// grammar and back, without requiring callers to build a syrup.Value
// tree by hand.
//
// The encoder (encode.go) writes Syrup bytes directly from a
// reflect.Value walk, matching the byte grammar syrup.Encode produces
// but without the intermediate Value allocation. The decoder
// (decode.go) works from an already-parsed syrup.Value — effectively
// a single-entry "pending" stack per SPEC_FULL.md §7, realized as
// plain recursion since the parser already materializes the whole
// tree up front.
package binding

import "github.com/syrupdev/syrup"

// Option configures a single Marshal/Unmarshal/UnmarshalValue call.
type Option func(*options)

type options struct {
	hooks  syrup.Hooks
	logger syrup.Logger
}

func newOptions(opts []Option) options {
	o := options{hooks: syrup.NopHooks{}, logger: syrup.NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHooks routes diagnostic events (ambiguous record-variant
// dispatch, duplicate dictionary keys, lossy UTF-8 replacement) to
// hooks instead of the default no-op.
func WithHooks(hooks syrup.Hooks) Option {
	return func(o *options) {
		if hooks != nil {
			o.hooks = hooks
		}
	}
}

// WithLogger routes the same diagnostic events as WithHooks to logger
// instead of the default no-op.
func WithLogger(logger syrup.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Char is an explicit opt-in wrapper for Go's rune type. Because `rune`
// is only an alias for int32 and carries no distinct runtime identity,
// reflect cannot otherwise tell "a 32-bit integer" from "a single
// character" the way a host language with a dedicated char type can;
// wrapping in Char selects the String-of-one-character encoding from
// SPEC_FULL.md §7's host-concept table.
type Char rune

// ShapeKind selects how a struct type's single Go shape maps onto a
// Syrup Record, for the cases the default (named struct, fields in a
// single Dictionary) doesn't cover.
type ShapeKind int

const (
	// ShapeStruct is the default: Record{Symbol(name), [Dictionary]}.
	ShapeStruct ShapeKind = iota
	// ShapeNewtype wraps exactly one field transparently:
	// Record{Symbol(name), [encode(field)]}.
	ShapeNewtype
	// ShapeTuple encodes fields positionally, in declaration order,
	// without a Dictionary: Record{Symbol(name), field...}.
	ShapeTuple
	// ShapeUnit encodes no fields at all: Record{Symbol(name)}.
	ShapeUnit
)

// Shaped is implemented by a struct type that needs a non-default
// Record shape (see ShapeKind). Types that don't implement it always
// get ShapeStruct.
type Shaped interface {
	SyrupShape() ShapeKind
}
