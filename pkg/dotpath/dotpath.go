package dotpath

import (
	"github.com/kitmi/k-utils/pkg/errors"
)

// step indexes one segment into a node. Anything that cannot be descended
// into resolves to nil (absent); missing keys and out-of-range indices are
// never an error.
func step(current any, seg Segment) any {
	switch KindOf(current) {
	case KindAbsent:
		return nil
	case KindMapping:
		return current.(map[string]any)[seg.AsKey()]
	case KindSequence:
		sl := current.([]any)
		i, ok := seg.AsIndex()
		if !ok || i < 0 || i >= len(sl) {
			return nil
		}
		return sl[i]
	case KindScalar:
		return nil
	default:
		return nil
	}
}

// Get returns the value at a dot-separated path, or nil when the path does
// not resolve.
func Get(m any, path string) any {
	return GetPath(m, Parse(path), nil)
}

// GetDefault returns the value at a dot-separated path, or defaultValue
// when the path does not resolve. A resolved zero value (0, false, "") is
// returned as-is; only absence falls back to the default.
func GetDefault(m any, path string, defaultValue any) any {
	return GetPath(m, Parse(path), defaultValue)
}

// GetPath is GetDefault over an explicit segment list.
func GetPath(m any, p Path, defaultValue any) any {
	if KindOf(m) == KindAbsent || len(p) == 0 {
		return defaultValue
	}
	current := m
	for _, seg := range p {
		current = step(current, seg)
		if KindOf(current) == KindAbsent {
			return defaultValue
		}
	}
	return current
}

// Has reports whether the leaf key of a dot-separated path exists on its
// parent node. Existence, not truthiness: a key holding nil still counts.
func Has(m any, path string) bool {
	return HasPath(m, Parse(path))
}

// HasPath is Has over an explicit segment list.
func HasPath(m any, p Path) bool {
	if KindOf(m) == KindAbsent || len(p) == 0 {
		return false
	}
	parent := m
	for _, seg := range p[:len(p)-1] {
		parent = step(parent, seg)
	}
	last := p[len(p)-1]
	switch KindOf(parent) {
	case KindMapping:
		_, ok := parent.(map[string]any)[last.AsKey()]
		return ok
	case KindSequence:
		i, ok := last.AsIndex()
		return ok && i >= 0 && i < len(parent.([]any))
	case KindAbsent, KindScalar:
		return false
	default:
		return false
	}
}

// Set assigns a value at a dot-separated path, creating missing
// intermediate nodes as empty mappings. The final segment overwrites
// whatever is there. The mapping is mutated in place.
func Set(m map[string]any, path string, value any) error {
	return SetPath(m, Parse(path), value)
}

// SetPath is Set over an explicit segment list.
//
// An intermediate that exists but is a scalar is replaced by an empty
// mapping, the same treatment a missing intermediate gets. Descending into
// an existing sequence requires the segment to be an in-range index;
// sequences are never grown implicitly.
func SetPath(m map[string]any, p Path, value any) error {
	if m == nil {
		return errors.New(errors.ErrInvalidInput, "target mapping is nil")
	}
	if len(p) == 0 {
		return errors.New(errors.ErrInvalidInput, "empty key path")
	}

	current := any(m)
	for _, seg := range p[:len(p)-1] {
		switch KindOf(current) {
		case KindMapping:
			node := current.(map[string]any)
			next := node[seg.AsKey()]
			switch KindOf(next) {
			case KindMapping, KindSequence:
				current = next
			case KindAbsent, KindScalar:
				child := map[string]any{}
				node[seg.AsKey()] = child
				current = child
			}
		case KindSequence:
			sl := current.([]any)
			i, ok := seg.AsIndex()
			if !ok || i < 0 || i >= len(sl) {
				return errors.Newf(errors.ErrInvalidInput,
					"segment %q is not a valid index into a sequence of %d elements", seg, len(sl))
			}
			switch KindOf(sl[i]) {
			case KindMapping, KindSequence:
				current = sl[i]
			case KindAbsent, KindScalar:
				child := map[string]any{}
				sl[i] = child
				current = child
			}
		case KindAbsent, KindScalar:
			return errors.Newf(errors.ErrInvalidInput,
				"cannot descend into %s node at segment %q", KindOf(current), seg)
		}
	}

	last := p[len(p)-1]
	switch KindOf(current) {
	case KindMapping:
		current.(map[string]any)[last.AsKey()] = value
		return nil
	case KindSequence:
		sl := current.([]any)
		i, ok := last.AsIndex()
		if !ok || i < 0 || i >= len(sl) {
			return errors.Newf(errors.ErrInvalidInput,
				"segment %q is not a valid index into a sequence of %d elements", last, len(sl))
		}
		sl[i] = value
		return nil
	default:
		return errors.Newf(errors.ErrInvalidInput,
			"cannot assign to %s node at segment %q", KindOf(current), last)
	}
}

// PushIntoBucket appends a value to the bucket at a dot-separated path and
// returns the resulting bucket. A bucket starts life as a single-element
// sequence, widens an existing non-sequence value to [existing, value] on
// the second insertion, and is appended to directly from then on.
//
// With flatten set, a sequence value contributes its elements instead of
// being appended as one element.
func PushIntoBucket(m map[string]any, path string, value any, flatten bool) ([]any, error) {
	return PushIntoBucketPath(m, Parse(path), value, flatten)
}

// PushIntoBucketPath is PushIntoBucket over an explicit segment list.
func PushIntoBucketPath(m map[string]any, p Path, value any, flatten bool) ([]any, error) {
	if m == nil {
		return nil, errors.New(errors.ErrInvalidInput, "target mapping is nil")
	}

	var bucket []any
	current := GetPath(m, p, nil)
	switch KindOf(current) {
	case KindSequence:
		bucket = current.([]any)
		if flatten && KindOf(value) == KindSequence {
			bucket = append(bucket, value.([]any)...)
		} else {
			bucket = append(bucket, value)
		}
	case KindAbsent:
		if flatten && KindOf(value) == KindSequence {
			bucket = append([]any(nil), value.([]any)...)
		} else {
			bucket = []any{value}
		}
	case KindMapping, KindScalar:
		if flatten && KindOf(value) == KindSequence {
			bucket = append([]any{current}, value.([]any)...)
		} else {
			bucket = []any{current, value}
		}
	}

	// Appending may reallocate the backing array, so the bucket is always
	// written back rather than relying on in-place growth.
	if err := SetPath(m, p, bucket); err != nil {
		return nil, err
	}
	return bucket, nil
}
