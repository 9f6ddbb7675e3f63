package binding

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"

	"github.com/syrupdev/syrup"
)

var (
	enumType = reflect.TypeOf((*Enum)(nil)).Elem()
	charType = reflect.TypeOf(Char(0))
)

// Marshal encodes v as Syrup bytes via a reflection-driven visitor
// that writes directly into the output buffer (not by first building a
// syrup.Value tree), per SPEC_FULL.md §7.
func Marshal(v any, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	return appendValue(nil, reflect.ValueOf(v), o)
}

func appendValue(buf []byte, rv reflect.Value, o options) ([]byte, error) {
	if !rv.IsValid() {
		return appendNilSymbol(buf), nil
	}

	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return appendNilSymbol(buf), nil
		}
		return appendValue(buf, rv.Elem(), o)
	case reflect.Interface:
		if rv.IsNil() {
			return appendNilSymbol(buf), nil
		}
		return appendValue(buf, rv.Elem(), o)
	}

	if rv.Type() == charType {
		return appendChar(buf, rv), nil
	}
	if rv.CanInterface() && rv.Type().Implements(enumType) {
		return appendEnum(buf, rv.Interface().(Enum), o)
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return append(buf, 't'), nil
		}
		return append(buf, 'f'), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendSignedInt(buf, rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return appendUnsignedInt(buf, rv.Uint()), nil
	case reflect.Float32:
		return appendFloat32(buf, float32(rv.Float())), nil
	case reflect.Float64:
		return appendFloat64(buf, rv.Float()), nil
	case reflect.String:
		return appendLengthPrefixed(buf, '"', []byte(rv.String())), nil
	case reflect.Slice, reflect.Array:
		return appendSeqOrBinary(buf, rv, o)
	case reflect.Map:
		return appendMap(buf, rv, o)
	case reflect.Struct:
		return appendStruct(buf, rv, o)
	default:
		return nil, syrup.NewMessageError(fmt.Sprintf("binding: unsupported kind %s for type %s", rv.Kind(), rv.Type()), nil)
	}
}

func appendLengthPrefixed(buf []byte, delim byte, payload []byte) []byte {
	buf = strconv.AppendInt(buf, int64(len(payload)), 10)
	buf = append(buf, delim)
	return append(buf, payload...)
}

func appendNilSymbol(buf []byte) []byte {
	return appendLengthPrefixed(buf, '\'', []byte(syrup.NilSymbol))
}

func appendChar(buf []byte, rv reflect.Value) []byte {
	r := rune(rv.Int())
	return appendLengthPrefixed(buf, '"', []byte(string(r)))
}

func appendFloat32(buf []byte, f float32) []byte {
	buf = append(buf, 'F')
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(f))
	return append(buf, b[:]...)
}

func appendFloat64(buf []byte, f float64) []byte {
	buf = append(buf, 'D')
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
	return append(buf, b[:]...)
}

func appendSignedInt(buf []byte, v int64) []byte {
	bi := big.NewInt(v)
	sign := byte('+')
	if bi.Sign() < 0 {
		sign = '-'
		bi.Neg(bi)
	}
	buf = append(buf, bi.Text(10)...)
	return append(buf, sign)
}

func appendUnsignedInt(buf []byte, v uint64) []byte {
	buf = strconv.AppendUint(buf, v, 10)
	return append(buf, '+')
}

func appendSeqOrBinary(buf []byte, rv reflect.Value, o options) ([]byte, error) {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		n := rv.Len()
		b := make([]byte, n)
		reflect.Copy(reflect.ValueOf(b), rv)
		return appendLengthPrefixed(buf, ':', b), nil
	}
	buf = append(buf, '[')
	for i := 0; i < rv.Len(); i++ {
		var err error
		buf, err = appendValue(buf, rv.Index(i), o)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, ']'), nil
}

type encodedKV struct{ k, v []byte }

func sortAndAppendKV(buf []byte, open, close byte, entries []encodedKV) []byte {
	sort.Slice(entries, func(i, j int) bool {
		return compareBytes(entries[i].k, entries[j].k) < 0
	})
	buf = append(buf, open)
	for _, e := range entries {
		buf = append(buf, e.k...)
		buf = append(buf, e.v...)
	}
	return append(buf, close)
}

func appendMap(buf []byte, rv reflect.Value, o options) ([]byte, error) {
	keys := rv.MapKeys()
	entries := make([]encodedKV, 0, len(keys))
	for _, k := range keys {
		kb, err := appendValue(nil, k, o)
		if err != nil {
			return nil, err
		}
		vb, err := appendValue(nil, rv.MapIndex(k), o)
		if err != nil {
			return nil, err
		}
		entries = append(entries, encodedKV{k: kb, v: vb})
	}
	return sortAndAppendKV(buf, '{', '}', entries), nil
}

type structField struct {
	name  string
	value reflect.Value
}

func visibleFields(rv reflect.Value) []structField {
	t := rv.Type()
	out := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name, skip := fieldName(sf)
		if skip {
			continue
		}
		out = append(out, structField{name: name, value: rv.Field(i)})
	}
	return out
}

func appendFieldDict(buf []byte, fields []structField, o options) ([]byte, error) {
	entries := make([]encodedKV, 0, len(fields))
	for _, f := range fields {
		kb := appendLengthPrefixed(nil, '\'', []byte(f.name))
		vb, err := appendValue(nil, f.value, o)
		if err != nil {
			return nil, err
		}
		entries = append(entries, encodedKV{k: kb, v: vb})
	}
	return sortAndAppendKV(buf, '{', '}', entries), nil
}

func appendStruct(buf []byte, rv reflect.Value, o options) ([]byte, error) {
	name := rv.Type().Name()
	if name == "" {
		name = "anonymous"
	}

	shape := ShapeStruct
	if rv.CanInterface() {
		if s, ok := rv.Interface().(Shaped); ok {
			shape = s.SyrupShape()
		}
	}

	fields := visibleFields(rv)

	buf = append(buf, '<')
	buf = appendLengthPrefixed(buf, '\'', []byte(name))

	var err error
	switch shape {
	case ShapeUnit:
		// no fields
	case ShapeNewtype:
		if len(fields) != 1 {
			return nil, syrup.NewMessageError(fmt.Sprintf("binding: newtype %s must have exactly one field, has %d", name, len(fields)), nil)
		}
		buf, err = appendValue(buf, fields[0].value, o)
	case ShapeTuple:
		for _, f := range fields {
			buf, err = appendValue(buf, f.value, o)
			if err != nil {
				break
			}
		}
	default: // ShapeStruct
		buf, err = appendFieldDict(buf, fields, o)
	}
	if err != nil {
		return nil, err
	}
	return append(buf, '>'), nil
}

func appendEnum(buf []byte, e Enum, o options) ([]byte, error) {
	variant, err := e.SyrupVariant()
	if err != nil {
		return nil, err
	}

	buf = append(buf, '<')
	buf = appendLengthPrefixed(buf, '\'', []byte(e.SyrupEnumName()))
	buf = appendLengthPrefixed(buf, '\'', []byte(variant.Name))

	switch variant.Kind {
	case VariantUnit:
	case VariantNewtype:
		if len(variant.Values) != 1 {
			return nil, syrup.NewMessageError(fmt.Sprintf("binding: newtype variant %s must carry exactly one value", variant.Name), nil)
		}
		buf, err = appendValue(buf, reflect.ValueOf(variant.Values[0]), o)
	case VariantTuple:
		for _, v := range variant.Values {
			buf, err = appendValue(buf, reflect.ValueOf(v), o)
			if err != nil {
				break
			}
		}
	case VariantStruct:
		fields := make([]structField, 0, len(variant.Fields))
		for _, f := range variant.Fields {
			fields = append(fields, structField{name: f.Name, value: reflect.ValueOf(f.Value)})
		}
		buf, err = appendFieldDict(buf, fields, o)
	default:
		return nil, syrup.NewMessageError(fmt.Sprintf("binding: unknown variant kind %d for %s", variant.Kind, variant.Name), nil)
	}
	if err != nil {
		return nil, err
	}
	return append(buf, '>'), nil
}

// compareBytes is an unsigned lexicographic byte comparator, duplicated
// from the root package's (unexported) helper of the same name: the
// binding layer writes bytes directly rather than through syrup.Value,
// so it cannot reuse that symbol across the package boundary.
func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
