package dotpath

import "reflect"

// Kind classifies a node of a nested structure. Every traversal branch in
// this package switches on Kind rather than sprinkling type assertions, so
// each case is handled exactly once.
type Kind int

const (
	// KindAbsent is a nil value or a missing slot.
	KindAbsent Kind = iota
	// KindMapping is a string-keyed map node (map[string]any).
	KindMapping
	// KindSequence is an ordered list node ([]any).
	KindSequence
	// KindScalar is any other value: numbers, strings, booleans, structs.
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// KindOf classifies a value. Typed nil pointers and nil maps/slices count
// as absent, matching how decoded JSON/YAML/TOML documents behave.
func KindOf(v any) Kind {
	if v == nil {
		return KindAbsent
	}
	switch tv := v.(type) {
	case map[string]any:
		if tv == nil {
			return KindAbsent
		}
		return KindMapping
	case []any:
		if tv == nil {
			return KindAbsent
		}
		return KindSequence
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return KindAbsent
		}
	}
	return KindScalar
}

// Truthy reports whether a value counts as "found something" for predicates
// that only receive the value itself. Absent values, false, zero numbers,
// and empty strings, sequences, and mappings are falsy.
func Truthy(v any) bool {
	switch KindOf(v) {
	case KindAbsent:
		return false
	case KindMapping:
		return len(v.(map[string]any)) > 0
	case KindSequence:
		return len(v.([]any)) > 0
	}
	switch tv := v.(type) {
	case bool:
		return tv
	case string:
		return tv != ""
	case int:
		return tv != 0
	case int8:
		return tv != 0
	case int16:
		return tv != 0
	case int32:
		return tv != 0
	case int64:
		return tv != 0
	case uint:
		return tv != 0
	case uint8:
		return tv != 0
	case uint16:
		return tv != 0
	case uint32:
		return tv != 0
	case uint64:
		return tv != 0
	case float32:
		return tv != 0
	case float64:
		return tv != 0
	}
	return true
}
