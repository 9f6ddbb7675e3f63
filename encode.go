package syrup

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Encode renders v to its canonical Syrup on-the-wire byte
// representation, per the grammar in doc.go. Encode is a total
// function: it never fails.
func Encode(v Value) []byte {
	var buf []byte
	return appendEncode(buf, v)
}

func appendEncode(buf []byte, v Value) []byte {
	switch t := v.(type) {
	case Boolean:
		if t {
			return append(buf, 't')
		}
		return append(buf, 'f')
	case Float:
		buf = append(buf, 'F')
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(float32(t)))
		return append(buf, b[:]...)
	case Double:
		buf = append(buf, 'D')
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(float64(t)))
		return append(buf, b[:]...)
	case Integer:
		sign := byte('+')
		mag := t.BigInt()
		if mag.Sign() < 0 {
			sign = '-'
			mag.Neg(mag)
		}
		buf = append(buf, mag.Text(10)...)
		return append(buf, sign)
	case Binary:
		buf = strconv.AppendInt(buf, int64(len(t)), 10)
		buf = append(buf, ':')
		return append(buf, t...)
	case String:
		buf = strconv.AppendInt(buf, int64(len(t)), 10)
		buf = append(buf, '"')
		return append(buf, t...)
	case Symbol:
		buf = strconv.AppendInt(buf, int64(len(t)), 10)
		buf = append(buf, '\'')
		return append(buf, t...)
	case Dictionary:
		buf = append(buf, '{')
		for _, e := range t {
			buf = appendEncode(buf, e.Key)
			buf = appendEncode(buf, e.Value)
		}
		return append(buf, '}')
	case Sequence:
		buf = append(buf, '[')
		for _, e := range t {
			buf = appendEncode(buf, e)
		}
		return append(buf, ']')
	case Record:
		buf = append(buf, '<')
		buf = appendEncode(buf, t.Label)
		for _, f := range t.Fields {
			buf = appendEncode(buf, f)
		}
		return append(buf, '>')
	case Set:
		buf = append(buf, '#')
		for _, e := range t {
			buf = appendEncode(buf, e)
		}
		return append(buf, '$')
	default:
		panic("syrup: unknown Value implementation")
	}
}
