package binding

import (
	"reflect"
	"strings"
)

// fieldName returns the Syrup field name for sf and whether it should
// be skipped entirely. A `syrup:"-"` tag skips the field; a
// `syrup:"name"` tag renames it; otherwise the Go field name is used
// as-is, with no case-folding, matching the reference implementation's
// use of the field identifier as written.
func fieldName(sf reflect.StructField) (name string, skip bool) {
	raw, present := sf.Tag.Lookup("syrup")
	if !present || raw == "" {
		return sf.Name, false
	}
	if raw == "-" {
		return "", true
	}
	if i := strings.IndexByte(raw, ','); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" {
		return sf.Name, false
	}
	return raw, false
}
