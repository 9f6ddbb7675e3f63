package syrup

import (
	"encoding/binary"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/syrupdev/syrup/internal/cursor"
)

// Parse consumes a prefix of b and returns the parsed Value along with
// the unconsumed remainder. Dictionaries and Sets are re-sorted into
// canonical order (and, for Dictionary, de-duplicated keeping the last
// occurrence) regardless of whether the producer emitted them that way.
func Parse(b []byte) (Value, []byte, error) {
	return ParseWithHooksAndLogger(b, NopHooks{}, NopLogger{})
}

// ParseWithHooks is Parse, additionally notifying hooks of
// non-fatal events encountered while parsing (duplicate dictionary
// keys, lossy UTF-8 replacement, truncated input).
func ParseWithHooks(b []byte, hooks Hooks) (Value, []byte, error) {
	return ParseWithHooksAndLogger(b, hooks, NopLogger{})
}

// ParseWithHooksAndLogger is ParseWithHooks, additionally routing the
// same diagnostic events to logger (duplicate dictionary keys fire a
// Debug, lossy UTF-8 replacement fires a Warn).
func ParseWithHooksAndLogger(b []byte, hooks Hooks, logger Logger) (Value, []byte, error) {
	if hooks == nil {
		hooks = NopHooks{}
	}
	if logger == nil {
		logger = NopLogger{}
	}
	c := cursor.New(b)
	v, err := parseValue(c, hooks, logger)
	if err != nil {
		return nil, nil, err
	}
	return v, c.Rest(), nil
}

// ParseAll parses exactly one value from b and fails if any bytes
// remain unconsumed afterward.
func ParseAll(b []byte) (Value, error) {
	return ParseAllWithHooksAndLogger(b, NopHooks{}, NopLogger{})
}

// ParseAllWithHooks is ParseAll with hook notifications; see
// ParseWithHooks.
func ParseAllWithHooks(b []byte, hooks Hooks) (Value, error) {
	return ParseAllWithHooksAndLogger(b, hooks, NopLogger{})
}

// ParseAllWithHooksAndLogger is ParseAll with both hook and logger
// notifications; see ParseWithHooksAndLogger.
func ParseAllWithHooksAndLogger(b []byte, hooks Hooks, logger Logger) (Value, error) {
	v, rest, err := ParseWithHooksAndLogger(b, hooks, logger)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, NewParseError("unexpected trailing bytes after top-level value", len(b)-len(rest), near(rest))
	}
	return v, nil
}

func near(b []byte) []byte {
	const maxNear = 24
	if len(b) > maxNear {
		return b[:maxNear]
	}
	return b
}

func parseValue(c *cursor.Cursor, hooks Hooks, logger Logger) (Value, error) {
	lead, ok := c.PeekByte()
	if !ok {
		hooks.TruncatedInput(c.Pos())
		return nil, NewParseError("unexpected end of input", c.Pos(), nil)
	}

	switch {
	case lead == 't' || lead == 'f':
		_, _ = c.TakeByte()
		return Boolean(lead == 't'), nil
	case lead == 'F':
		_, _ = c.TakeByte()
		raw, err := c.TakeN(4)
		if err != nil {
			return nil, wrapTruncated(c, err)
		}
		return Float(math.Float32frombits(binary.BigEndian.Uint32(raw))), nil
	case lead == 'D':
		_, _ = c.TakeByte()
		raw, err := c.TakeN(8)
		if err != nil {
			return nil, wrapTruncated(c, err)
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(raw))), nil
	case lead >= '0' && lead <= '9':
		return parseLengthPrefixed(c, hooks, logger)
	case lead == '[':
		return parseSequence(c, hooks, logger)
	case lead == '{':
		return parseDictionary(c, hooks, logger)
	case lead == '<':
		return parseRecord(c, hooks, logger)
	case lead == '#':
		return parseSet(c, hooks, logger)
	default:
		return nil, NewParseError("unrecognized leading byte '"+string(lead)+"'", c.Pos(), near(c.Rest()))
	}
}

// parseLengthPrefixed handles the ambiguous "digits..." production:
// digits followed by '+'/'-' is an Integer; digits followed by
// ':'/'"'/''' is a length-prefixed Binary/String/Symbol.
func parseLengthPrefixed(c *cursor.Cursor, hooks Hooks, logger Logger) (Value, error) {
	start := c.Pos()
	digits, err := c.TakeDigits()
	if err != nil {
		return nil, NewParseError("expected a decimal digit", c.Pos(), near(c.Rest()))
	}
	delim, err := c.TakeByte()
	if err != nil {
		return nil, wrapTruncated(c, err)
	}

	switch delim {
	case '+', '-':
		mag := new(big.Int)
		if _, ok := mag.SetString(string(digits), 10); !ok {
			return nil, NewParseError("invalid integer magnitude", start, near(digits))
		}
		if delim == '-' {
			mag.Neg(mag)
		}
		return NewBigInteger(mag), nil
	case ':', '"', '\'':
		n, convErr := strconv.Atoi(string(digits))
		if convErr != nil {
			return nil, NewParseError("length prefix overflow", start, near(digits))
		}
		payload, err := c.TakeN(n)
		if err != nil {
			return nil, wrapTruncated(c, err)
		}
		switch delim {
		case ':':
			cp := make([]byte, len(payload))
			copy(cp, payload)
			return Binary(cp), nil
		case '"':
			return String(decodeUTF8Lossy(payload, "string", hooks, logger)), nil
		default: // '\''
			return Symbol(decodeUTF8Lossy(payload, "symbol", hooks, logger)), nil
		}
	default:
		return nil, NewParseError("expected one of '+-:\"'\\''' after length digits, got '"+string(delim)+"'", c.Pos()-1, nil)
	}
}

func parseSequence(c *cursor.Cursor, hooks Hooks, logger Logger) (Value, error) {
	_ = mustExpect(c, '[')
	var elems Sequence
	for {
		if b, ok := c.PeekByte(); ok && b == ']' {
			_, _ = c.TakeByte()
			return elems, nil
		}
		v, err := parseValue(c, hooks, logger)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

func parseDictionary(c *cursor.Cursor, hooks Hooks, logger Logger) (Value, error) {
	_ = mustExpect(c, '{')
	var entries []DictEntry
	for {
		if b, ok := c.PeekByte(); ok && b == '}' {
			_, _ = c.TakeByte()
			return canonicalizeDictNotify(entries, hooks, logger), nil
		}
		k, err := parseValue(c, hooks, logger)
		if err != nil {
			return nil, err
		}
		v, err := parseValue(c, hooks, logger)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DictEntry{Key: k, Value: v})
	}
}

func parseRecord(c *cursor.Cursor, hooks Hooks, logger Logger) (Value, error) {
	_ = mustExpect(c, '<')
	label, err := parseValue(c, hooks, logger)
	if err != nil {
		return nil, err
	}
	var fields []Value
	for {
		if b, ok := c.PeekByte(); ok && b == '>' {
			_, _ = c.TakeByte()
			return Record{Label: label, Fields: fields}, nil
		}
		if _, ok := c.PeekByte(); !ok {
			return nil, NewParseError("missing record terminator '>'", c.Pos(), nil)
		}
		v, err := parseValue(c, hooks, logger)
		if err != nil {
			return nil, err
		}
		fields = append(fields, v)
	}
}

func parseSet(c *cursor.Cursor, hooks Hooks, logger Logger) (Value, error) {
	_ = mustExpect(c, '#')
	var elems []Value
	for {
		if b, ok := c.PeekByte(); ok && b == '$' {
			_, _ = c.TakeByte()
			return NewSet(elems), nil
		}
		v, err := parseValue(c, hooks, logger)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

func mustExpect(c *cursor.Cursor, b byte) error {
	// callers only reach here after already peeking b, so this cannot
	// fail; retained as a named step for readability/symmetry with the
	// other production functions.
	return c.Expect(b)
}

func wrapTruncated(c *cursor.Cursor, cause error) error {
	return NewParseError("truncated input", c.Pos(), nil)
}

// canonicalizeDictNotify is canonicalizeDict plus a hook/logger
// notification for each canonical key that collapsed more than one
// input entry.
func canonicalizeDictNotify(entries []DictEntry, hooks Hooks, logger Logger) Dictionary {
	if len(entries) == 0 {
		return nil
	}
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[string(Encode(e.Key))]++
	}
	out := canonicalizeDict(entries)
	for _, e := range out {
		enc := Encode(e.Key)
		if n := counts[string(enc)]; n > 1 {
			hooks.DuplicateDictionaryKey(enc, n-1)
			logger.Debug("duplicate dictionary key", Fields{"key": string(enc), "dropped": n - 1})
		}
	}
	return out
}

func decodeUTF8Lossy(b []byte, kind string, hooks Hooks, logger Logger) string {
	if utf8.Valid(b) {
		return string(b)
	}
	hooks.InvalidUTF8Replaced(kind, len(b))
	logger.Warn("invalid UTF-8 replaced", Fields{"kind": kind, "length": len(b)})
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		sb.WriteRune(r)
		i += size
	}
	return sb.String()
}
