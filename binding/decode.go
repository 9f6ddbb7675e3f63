package binding

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/syrupdev/syrup"
)

// Unmarshal parses b and decodes the result into v, which must be a
// non-nil pointer.
func Unmarshal(b []byte, v any, opts ...Option) error {
	o := newOptions(opts)
	val, rest, err := syrup.ParseWithHooksAndLogger(b, o.hooks, o.logger)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return syrup.NewParseError("unexpected trailing bytes after top-level value", len(b)-len(rest), nil)
	}
	return decodeTop(val, v, o)
}

// UnmarshalValue decodes an already-parsed syrup.Value into v, which
// must be a non-nil pointer. Use this to decode a value obtained from
// syrup.Parse/syrup.ParseAll directly, skipping a second parse.
func UnmarshalValue(val syrup.Value, v any, opts ...Option) error {
	return decodeTop(val, v, newOptions(opts))
}

func decodeTop(val syrup.Value, v any, o options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return syrup.NewMessageError("binding: Unmarshal target must be a non-nil pointer", nil)
	}
	d := &decoder{opts: o}
	return d.decodeInto(val, rv.Elem())
}

type decoder struct {
	opts options
}

func (d *decoder) decodeInto(val syrup.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Ptr:
		if sym, ok := val.(syrup.Symbol); ok && sym == syrup.NilSymbol {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return d.decodeInto(val, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			out, err := decodeAny(val)
			if err != nil {
				return err
			}
			if out == nil {
				rv.Set(reflect.Zero(rv.Type()))
				return nil
			}
			rv.Set(reflect.ValueOf(out))
			return nil
		}
		rec, ok := val.(syrup.Record)
		if !ok {
			return syrup.NewMessageError(fmt.Sprintf("binding: cannot decode %T into interface %s", val, rv.Type()), nil)
		}
		return d.decodeEnumRecord(rec, rv)
	}

	switch t := val.(type) {
	case syrup.Boolean:
		if rv.Kind() != reflect.Bool {
			return typeMismatch("bool", rv)
		}
		rv.SetBool(bool(t))
		return nil
	case syrup.Float:
		return d.decodeFloat(float64(t), rv)
	case syrup.Double:
		return d.decodeFloat(float64(t), rv)
	case syrup.Integer:
		return d.decodeInteger(t, rv)
	case syrup.Binary:
		return d.decodeBinary(t, rv)
	case syrup.String:
		return d.decodeText(string(t), rv)
	case syrup.Symbol:
		if t == syrup.NilSymbol && rv.Kind() != reflect.String {
			return nil // unit/empty: leave rv at its zero value
		}
		return d.decodeText(string(t), rv)
	case syrup.Sequence:
		return d.decodeSeq([]syrup.Value(t), rv)
	case syrup.Set:
		return d.decodeSeq([]syrup.Value(t), rv)
	case syrup.Dictionary:
		return d.decodeDict(t, rv)
	case syrup.Record:
		return d.decodeRecord(t, rv)
	default:
		return syrup.NewMessageError(fmt.Sprintf("binding: unknown Value implementation %T", val), nil)
	}
}

func (d *decoder) decodeFloat(f float64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(f)
		return nil
	default:
		return typeMismatch("float", rv)
	}
}

func (d *decoder) decodeInteger(i syrup.Integer, rv reflect.Value) error {
	bi := i.BigInt()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !bi.IsInt64() {
			return rangeErr(bi, rv)
		}
		v := bi.Int64()
		if rv.OverflowInt(v) {
			return rangeErr(bi, rv)
		}
		rv.SetInt(v)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if bi.Sign() < 0 || !bi.IsUint64() {
			return rangeErr(bi, rv)
		}
		v := bi.Uint64()
		if rv.OverflowUint(v) {
			return rangeErr(bi, rv)
		}
		rv.SetUint(v)
		return nil
	default:
		return typeMismatch("integer", rv)
	}
}

func (d *decoder) decodeBinary(b syrup.Binary, rv reflect.Value) error {
	switch {
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		rv.SetBytes(append([]byte(nil), b...))
		return nil
	case rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8:
		if rv.Len() != len(b) {
			return syrup.NewMessageError(fmt.Sprintf("binding: binary length %d does not match array length %d", len(b), rv.Len()), nil)
		}
		reflect.Copy(rv, reflect.ValueOf([]byte(b)))
		return nil
	case rv.Kind() == reflect.String:
		rv.SetString(string(b))
		return nil
	default:
		return syrup.NewMessageError("binding: invalid input: Binary requested as non-byte type "+rv.Type().String(), nil)
	}
}

func (d *decoder) decodeText(s string, rv reflect.Value) error {
	if rv.Type() == charType {
		r, _ := utf8.DecodeRuneInString(s)
		rv.SetInt(int64(r))
		return nil
	}
	if rv.Kind() != reflect.String {
		return typeMismatch("string", rv)
	}
	rv.SetString(s)
	return nil
}

func (d *decoder) decodeSeq(elems []syrup.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
		for i, e := range elems {
			if err := d.decodeInto(e, out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if rv.Len() != len(elems) {
			return syrup.NewMessageError(fmt.Sprintf("binding: sequence length %d does not match array length %d", len(elems), rv.Len()), nil)
		}
		for i, e := range elems {
			if err := d.decodeInto(e, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return typeMismatch("sequence", rv)
	}
}

func (d *decoder) decodeDict(dict syrup.Dictionary, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Map:
		out := reflect.MakeMapWithSize(rv.Type(), len(dict))
		kt := rv.Type().Key()
		vt := rv.Type().Elem()
		for _, e := range dict {
			kv := reflect.New(kt).Elem()
			if err := d.decodeInto(e.Key, kv); err != nil {
				return err
			}
			vv := reflect.New(vt).Elem()
			if err := d.decodeInto(e.Value, vv); err != nil {
				return err
			}
			out.SetMapIndex(kv, vv)
		}
		rv.Set(out)
		return nil
	case reflect.Struct:
		return d.decodeStructDict(dict, rv)
	default:
		return typeMismatch("dictionary", rv)
	}
}

func (d *decoder) decodeStructDict(dict syrup.Dictionary, rv reflect.Value) error {
	byName := make(map[string]reflect.Value, rv.NumField())
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name, skip := fieldName(sf)
		if skip {
			continue
		}
		byName[name] = rv.Field(i)
	}
	for _, e := range dict {
		key, ok := symbolOrStringKey(e.Key)
		if !ok {
			continue
		}
		fv, ok := byName[key]
		if !ok {
			continue // unknown field: schema evolution is out of scope
		}
		if err := d.decodeInto(e.Value, fv); err != nil {
			return err
		}
	}
	return nil
}

// decodeRecord implements SPEC_FULL.md §7's record-disambiguation
// rules for a concrete (non-interface) destination: empty fields is a
// named unit type (leave rv at its zero value); exactly one field is
// either a newtype wrapper or a single-Dictionary struct, both handled
// by recursing into that field; more than one field is a tuple struct,
// decoded positionally. Enum-variant dispatch only applies when the
// destination is an interface (see decodeEnumRecord).
func (d *decoder) decodeRecord(rec syrup.Record, rv reflect.Value) error {
	switch len(rec.Fields) {
	case 0:
		return nil
	case 1:
		return d.decodeInto(rec.Fields[0], rv)
	default:
		return d.decodeStructFields(rec.Fields, rv)
	}
}

func (d *decoder) decodeStructFields(fields []syrup.Value, rv reflect.Value) error {
	if rv.Kind() != reflect.Struct {
		return typeMismatch("record fields", rv)
	}
	vis := visibleFields(rv)
	if len(vis) != len(fields) {
		return syrup.NewMessageError(fmt.Sprintf("binding: record has %d fields, target %s has %d", len(fields), rv.Type(), len(vis)), nil)
	}
	for i, f := range fields {
		if err := d.decodeInto(f, vis[i].value); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeEnumRecord(rec syrup.Record, rv reflect.Value) error {
	label, ok := symbolOrStringKey(rec.Label)
	if ok && len(rec.Fields) > 0 {
		if variantSym, ok := rec.Fields[0].(syrup.Symbol); ok {
			if factory, ok := lookupEnum(label, string(variantSym)); ok {
				return d.decodeEnumVariant(factory, rec.Fields[1:], rv)
			}
			d.opts.hooks.AmbiguousRecordVariant(label)
			d.opts.logger.Warn("ambiguous record variant", syrup.Fields{"label": label, "variant": string(variantSym)})
		}
	}
	return syrup.NewMessageError(fmt.Sprintf("binding: cannot decode Record labeled %q into unregistered interface %s", label, rv.Type()), nil)
}

func (d *decoder) decodeEnumVariant(factory VariantDecoder, payload []syrup.Value, rv reflect.Value) error {
	values := payload
	var dict syrup.Dictionary
	if len(payload) == 1 {
		if dd, ok := payload[0].(syrup.Dictionary); ok {
			dict = dd
			values = nil
		}
	}
	val, err := factory(values, dict)
	if err != nil {
		return err
	}
	rvv := reflect.ValueOf(val)
	if !rvv.IsValid() || !rvv.Type().AssignableTo(rv.Type()) {
		return syrup.NewMessageError(fmt.Sprintf("binding: decoded variant value (%T) is not assignable to %s", val, rv.Type()), nil)
	}
	rv.Set(rvv)
	return nil
}

func symbolOrStringKey(v syrup.Value) (string, bool) {
	switch t := v.(type) {
	case syrup.Symbol:
		return string(t), true
	case syrup.String:
		return string(t), true
	default:
		return "", false
	}
}

// decodeAny decodes val into a plain Go value with no target type
// information, the same fallback encoding/json uses for `any`:
// booleans, int64/*big.Int, []byte, string, []any, map[string]any.
func decodeAny(val syrup.Value) (any, error) {
	switch t := val.(type) {
	case syrup.Boolean:
		return bool(t), nil
	case syrup.Float:
		return float32(t), nil
	case syrup.Double:
		return float64(t), nil
	case syrup.Integer:
		bi := t.BigInt()
		if bi.IsInt64() {
			return bi.Int64(), nil
		}
		return bi, nil
	case syrup.Binary:
		return []byte(t), nil
	case syrup.String:
		return string(t), nil
	case syrup.Symbol:
		if t == syrup.NilSymbol {
			return nil, nil
		}
		return string(t), nil
	case syrup.Sequence:
		return decodeAnySlice([]syrup.Value(t))
	case syrup.Set:
		return decodeAnySlice([]syrup.Value(t))
	case syrup.Dictionary:
		out := make(map[string]any, len(t))
		for _, e := range t {
			k, ok := symbolOrStringKey(e.Key)
			if !ok {
				return nil, syrup.NewMessageError("binding: decodeAny: dictionary key is not a Symbol/String", nil)
			}
			v, err := decodeAny(e.Value)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case syrup.Record:
		fields, err := decodeAnySlice(t.Fields)
		if err != nil {
			return nil, err
		}
		label, err := decodeAny(t.Label)
		if err != nil {
			return nil, err
		}
		return map[string]any{"label": label, "fields": fields}, nil
	default:
		return nil, syrup.NewMessageError(fmt.Sprintf("binding: decodeAny: unknown Value implementation %T", val), nil)
	}
}

func decodeAnySlice(elems []syrup.Value) ([]any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		v, err := decodeAny(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
