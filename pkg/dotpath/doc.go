// Package dotpath provides get, set, existence-check, and bucket-append
// operations over arbitrarily nested map[string]any / []any structures,
// addressed by a dot-separated key path or an explicit segment list.
//
// The caller owns the structure: Set and PushIntoBucket mutate it in place
// and never copy. None of the operations lock; structures shared between
// goroutines need external synchronization.
//
// Absence and zero values are distinct throughout. Get returns a resolved
// zero value (0, false, "") as-is and falls back to the default only when
// the path does not resolve at all.
package dotpath
