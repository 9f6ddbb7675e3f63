package syrup

import (
	"math/big"
	"testing"
)

func TestEncodeBoolean(t *testing.T) {
	if got := string(Encode(Boolean(true))); got != "t" {
		t.Fatalf("encode(true): got %q, want %q", got, "t")
	}
	if got := string(Encode(Boolean(false))); got != "f" {
		t.Fatalf("encode(false): got %q, want %q", got, "f")
	}
}

func TestEncodeIntegerBoundary(t *testing.T) {
	cases := []struct {
		v    int64
		want string
	}{
		{0, "0+"},
		{-1, "1-"},
		{42, "42+"},
		{-42, "42-"},
	}
	for _, tc := range cases {
		got := string(Encode(NewInteger(tc.v)))
		if got != tc.want {
			t.Fatalf("encode(%d): got %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestEncodeIntegerBeyondFixedWidth(t *testing.T) {
	big, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	if !ok {
		t.Fatal("bad test fixture")
	}
	v := NewBigInteger(big)
	got, err := ParseAll(Encode(v))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if !Equal(got, v) {
		t.Fatalf("round trip mismatch: got %v, want %v", Encode(got), Encode(v))
	}
}

func TestEncodeBinaryStringSymbol(t *testing.T) {
	if got := string(Encode(Binary("hello"))); got != "5:hello" {
		t.Fatalf("encode(Binary): got %q", got)
	}
	if got := string(Encode(String("foo"))); got != `3"foo` {
		t.Fatalf("encode(String): got %q", got)
	}
	if got := string(Encode(Symbol("foo"))); got != "3'foo" {
		t.Fatalf("encode(Symbol): got %q", got)
	}
}

func TestStringLengthIsByteLength(t *testing.T) {
	// "é" is one code point but two UTF-8 bytes.
	got := string(Encode(String("é")))
	want := "2\"é"
	if got != want {
		t.Fatalf("encode(String(\"é\")): got %q, want %q", got, want)
	}
}

func TestEncodeEmptyComposites(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"empty sequence", Sequence(nil), "[]"},
		{"empty dictionary", Dictionary(nil), "{}"},
		{"empty set", Set(nil), "#$"},
		{"empty-fields record", Record{Label: Symbol("nil")}, "<3'nil>"},
	}
	for _, tc := range cases {
		got := string(Encode(tc.v))
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
		reparsed, err := ParseAll([]byte(got))
		if err != nil {
			t.Fatalf("%s: ParseAll(%q): %v", tc.name, got, err)
		}
		if string(Encode(reparsed)) != got {
			t.Fatalf("%s: re-encode mismatch: got %q, want %q", tc.name, Encode(reparsed), got)
		}
	}
}

func TestDictionaryCanonicalization(t *testing.T) {
	d := NewDictionary([]DictEntry{
		{Key: String("goo"), Value: String("muck")},
		{Key: String("foo"), Value: String("bar")},
	})
	want := `{3"foo3"bar3"goo4"muck}`
	if got := string(Encode(d)); got != want {
		t.Fatalf("canonical dictionary encoding: got %q, want %q", got, want)
	}
}

func TestDictionaryDuplicateKeysKeepLast(t *testing.T) {
	d := NewDictionary([]DictEntry{
		{Key: String("k"), Value: Integer64(1)},
		{Key: String("k"), Value: Integer64(2)},
	})
	if len(d) != 1 {
		t.Fatalf("expected exactly one entry after de-dup, got %d", len(d))
	}
	if !Equal(d[0].Value, Integer64(2)) {
		t.Fatalf("expected the last occurrence to win, got %v", Encode(d[0].Value))
	}
}

func TestSetCanonicalizationDoesNotDeduplicate(t *testing.T) {
	s := NewSet([]Value{String("a"), String("a")})
	if len(s) != 2 {
		t.Fatalf("NewSet must not deduplicate (matches reference impl): got %d elements", len(s))
	}
}

func TestRecord(t *testing.T) {
	r := Record{
		Label:  Binary("person"),
		Fields: []Value{Binary("Alice"), NewInteger(30), Boolean(true)},
	}
	want := "<6:person5:Alice30+t>"
	if got := string(Encode(r)); got != want {
		t.Fatalf("encode(Record): got %q, want %q", got, want)
	}
}

func TestEqualOrderingHashDefinedByEncoding(t *testing.T) {
	a := NewDictionary([]DictEntry{{Key: String("x"), Value: NewInteger(1)}})
	b := NewDictionary([]DictEntry{{Key: String("x"), Value: NewInteger(1)}})
	if !Equal(a, b) {
		t.Fatalf("expected equal dictionaries with identical canonical contents")
	}
	if Hash(a) != Hash(b) {
		t.Fatalf("expected equal Hash for equal values")
	}
	if Compare(String("a"), String("b")) >= 0 {
		t.Fatalf("expected \"a\" < \"b\" lexicographically")
	}
}

// Integer64 is a small test helper avoiding repeated NewInteger(int64(...))
// noise in table-driven cases.
func Integer64(v int64) Integer { return NewInteger(v) }
