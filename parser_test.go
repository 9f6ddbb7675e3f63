package syrup

import (
	"errors"
	"testing"
)

func parseAll(t *testing.T, s string) Value {
	t.Helper()
	v, err := ParseAll([]byte(s))
	if err != nil {
		t.Fatalf("ParseAll(%q): %v", s, err)
	}
	return v
}

func TestParseBooleans(t *testing.T) {
	if v := parseAll(t, "t"); !Equal(v, Boolean(true)) {
		t.Fatalf("parse(t): got %v", Encode(v))
	}
	if v := parseAll(t, "f"); !Equal(v, Boolean(false)) {
		t.Fatalf("parse(f): got %v", Encode(v))
	}
}

func TestParseIntegers(t *testing.T) {
	cases := map[string]int64{
		"0+":  0,
		"1-":  -1,
		"42+": 42,
		"42-": -42,
	}
	for s, want := range cases {
		v := parseAll(t, s)
		i, ok := v.(Integer)
		if !ok {
			t.Fatalf("parse(%q): not an Integer: %T", s, v)
		}
		if i.BigInt().Int64() != want {
			t.Fatalf("parse(%q): got %d, want %d", s, i.BigInt().Int64(), want)
		}
	}
}

func TestParseFloatsRoundTrip(t *testing.T) {
	f := Float(3.5)
	v := parseAll(t, string(Encode(f)))
	got, ok := v.(Float)
	if !ok || got != f {
		t.Fatalf("Float round trip: got %v, want %v", v, f)
	}
	d := Double(-2.25)
	v2 := parseAll(t, string(Encode(d)))
	got2, ok := v2.(Double)
	if !ok || got2 != d {
		t.Fatalf("Double round trip: got %v, want %v", v2, d)
	}
}

func TestParseBinaryStringSymbol(t *testing.T) {
	if v := parseAll(t, "5:hello"); !Equal(v, Binary("hello")) {
		t.Fatalf("parse(Binary): got %v", Encode(v))
	}
	if v := parseAll(t, `3"foo`); !Equal(v, String("foo")) {
		t.Fatalf("parse(String): got %v", Encode(v))
	}
	if v := parseAll(t, "3'foo"); !Equal(v, Symbol("foo")) {
		t.Fatalf("parse(Symbol): got %v", Encode(v))
	}
}

func TestParseSequenceDictionarySetRecord(t *testing.T) {
	if v := parseAll(t, "[3\"foo3\"bar]"); !Equal(v, Sequence{String("foo"), String("bar")}) {
		t.Fatalf("parse(Sequence): got %v", Encode(v))
	}

	// input out of canonical order: parser must re-sort.
	v := parseAll(t, `{3"goo4"muck3"foo3"bar}`)
	want := NewDictionary([]DictEntry{
		{Key: String("foo"), Value: String("bar")},
		{Key: String("goo"), Value: String("muck")},
	})
	if !Equal(v, want) {
		t.Fatalf("parse(Dictionary) did not canonicalize: got %v, want %v", Encode(v), Encode(want))
	}

	rv := parseAll(t, "<4'Test{3'int42+3'seq[3\"foo3\"bar]}>")
	r, ok := rv.(Record)
	if !ok {
		t.Fatalf("parse(Record): not a Record: %T", rv)
	}
	if !Equal(r.Label, Symbol("Test")) {
		t.Fatalf("parse(Record).Label: got %v", Encode(r.Label))
	}
	if len(r.Fields) != 1 {
		t.Fatalf("parse(Record).Fields: got %d fields, want 1", len(r.Fields))
	}

	sv := parseAll(t, "#3\"bar3\"foo$")
	if !Equal(sv, NewSet([]Value{String("foo"), String("bar")})) {
		t.Fatalf("parse(Set): got %v", Encode(sv))
	}
}

func TestParseDictionaryDuplicateKeyFiresHook(t *testing.T) {
	rec := &recordingHooks{}
	_, err := ParseAllWithHooks([]byte(`{1"k1+1"k2+}`), rec)
	if err != nil {
		t.Fatalf("ParseAllWithHooks: %v", err)
	}
	if len(rec.dupKeys) != 1 {
		t.Fatalf("expected one DuplicateDictionaryKey notification, got %d", len(rec.dupKeys))
	}
	if got := string(rec.dupKeys[0].kept); got != `1"k` {
		t.Fatalf("DuplicateDictionaryKey kept: got %q", got)
	}
	if got := rec.dupKeys[0].dropped; got != 1 {
		t.Fatalf("DuplicateDictionaryKey dropped: got %d, want 1", got)
	}
}

func TestParseInvalidUTF8IsReplacedLossily(t *testing.T) {
	rec := &recordingHooks{}
	// length 2, one valid ASCII byte followed by an invalid continuation byte.
	v, err := ParseAllWithHooks([]byte("2\"a\xff"), rec)
	if err != nil {
		t.Fatalf("ParseAllWithHooks: %v", err)
	}
	s, ok := v.(String)
	if !ok {
		t.Fatalf("not a String: %T", v)
	}
	if len(rec.invalidUTF8) != 1 {
		t.Fatalf("expected one InvalidUTF8Replaced notification, got %d", len(rec.invalidUTF8))
	}
	if string(s)[0] != 'a' {
		t.Fatalf("expected the valid prefix byte to survive, got %q", s)
	}
}

func TestParseTrailingBytesRejected(t *testing.T) {
	_, err := ParseAll([]byte("tf"))
	if err == nil {
		t.Fatal("expected an error for trailing bytes after a complete value")
	}
	var se *Error
	if !errors.As(err, &se) || se.Kind != Parse {
		t.Fatalf("expected a Parse-kind *Error, got %v", err)
	}
}

func TestParseTruncatedInputsFail(t *testing.T) {
	cases := []string{"", "F\x00\x00", "5:he", "[", "{", "<", "#", "3\""}
	for _, s := range cases {
		if _, err := ParseAll([]byte(s)); err == nil {
			t.Fatalf("ParseAll(%q): expected an error", s)
		}
	}
}

func TestParseUnrecognizedLeadingByte(t *testing.T) {
	_, err := ParseAll([]byte("!"))
	if err == nil {
		t.Fatal("expected an error for an unrecognized leading byte")
	}
}

type dupKeyNotice struct {
	kept    []byte
	dropped int
}

type recordingHooks struct {
	NopHooks
	dupKeys     []dupKeyNotice
	invalidUTF8 []string
}

func (r *recordingHooks) DuplicateDictionaryKey(kept []byte, dropped int) {
	cp := make([]byte, len(kept))
	copy(cp, kept)
	r.dupKeys = append(r.dupKeys, dupKeyNotice{kept: cp, dropped: dropped})
}

func (r *recordingHooks) InvalidUTF8Replaced(kind string, length int) {
	r.invalidUTF8 = append(r.invalidUTF8, kind)
}
