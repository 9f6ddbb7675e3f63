// Package cursor is a small bounds-checked byte cursor used by the
// Syrup parser. Every read is preceded by an explicit length check and
// returns ErrTruncated rather than panicking or slicing out of range —
// the same defensive discipline the teacher's internal/wire package
// uses for its fixed-width binary frames, generalized here to Syrup's
// digit-length-prefixed grammar.
package cursor

import (
	"errors"
	"fmt"
)

// ErrTruncated is returned when the cursor runs out of bytes before
// satisfying a read.
var ErrTruncated = errors.New("cursor: truncated input")

// Cursor reads bytes from a fixed underlying slice, tracking position.
// It does not retain ownership beyond borrowing b; callers must not
// mutate b while a Cursor is in use.
type Cursor struct {
	b   []byte
	pos int
}

// New wraps b for reading from offset 0.
func New(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Pos returns the current byte offset into the original slice.
func (c *Cursor) Pos() int { return c.pos }

// Rest returns the unconsumed tail of the original slice.
func (c *Cursor) Rest() []byte { return c.b[c.pos:] }

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int { return len(c.b) - c.pos }

// PeekByte returns the next byte without consuming it.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.pos >= len(c.b) {
		return 0, false
	}
	return c.b[c.pos], true
}

// TakeByte consumes and returns the next byte.
func (c *Cursor) TakeByte() (byte, error) {
	if c.pos >= len(c.b) {
		return 0, ErrTruncated
	}
	b := c.b[c.pos]
	c.pos++
	return b, nil
}

// Expect consumes the next byte iff it equals want, else leaves the
// cursor unmoved and returns an error.
func (c *Cursor) Expect(want byte) error {
	got, ok := c.PeekByte()
	if !ok {
		return ErrTruncated
	}
	if got != want {
		return fmt.Errorf("cursor: expected %q, got %q", want, got)
	}
	c.pos++
	return nil
}

// TakeN consumes and returns exactly n raw bytes.
func (c *Cursor) TakeN(n int) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, ErrTruncated
	}
	out := c.b[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// TakeDigits consumes one or more ASCII decimal digits and returns the
// raw digit bytes (no sign). Fails if the next byte is not a digit.
func (c *Cursor) TakeDigits() ([]byte, error) {
	start := c.pos
	for c.pos < len(c.b) && c.b[c.pos] >= '0' && c.b[c.pos] <= '9' {
		c.pos++
	}
	if c.pos == start {
		return nil, errors.New("cursor: expected a decimal digit")
	}
	return c.b[start:c.pos], nil
}
