package binding

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// MarshalEach encodes each element of vs independently. The returned
// slice always has len(vs) entries; an entry is nil wherever encoding
// that item failed. All per-item failures are aggregated into one
// *multierror.Error instead of stopping at the first, for bulk
// import/export callers that want to salvage the items that succeeded.
func MarshalEach(vs []any, opts ...Option) ([][]byte, error) {
	out := make([][]byte, len(vs))
	var errs *multierror.Error
	for i, v := range vs {
		b, err := Marshal(v, opts...)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		out[i] = b
	}
	return out, errs.ErrorOrNil()
}

// UnmarshalEach decodes each element of bs into the corresponding
// element of dsts (dsts[i] must be a non-nil pointer). len(bs) must
// equal len(dsts). Failures are aggregated the same way as MarshalEach.
func UnmarshalEach(bs [][]byte, dsts []any, opts ...Option) error {
	if len(bs) != len(dsts) {
		return fmt.Errorf("binding: UnmarshalEach: %d inputs but %d targets", len(bs), len(dsts))
	}
	var errs *multierror.Error
	for i := range bs {
		if err := Unmarshal(bs[i], dsts[i], opts...); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("item %d: %w", i, err))
		}
	}
	return errs.ErrorOrNil()
}
