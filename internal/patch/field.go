// Package patch implements an explicit optional-field type for partial
// update requests. A Field records whether the key was present in the
// request body at all, so handlers can distinguish "set to the zero value"
// from "not provided" without relying on pointer nilness or any particular
// serialization library's notion of "unset".
package patch

import "encoding/json"

// Field wraps a value of type T together with a presence flag.
// The zero Field is "absent".
type Field[T any] struct {
	Value T
	Set   bool
}

// NewField returns a present Field carrying v.
func NewField[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the field as present and decodes the payload into
// Value. It is only invoked by encoding/json when the key exists in the
// document, which is exactly the presence signal we want.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &f.Value); err != nil {
		return err
	}
	f.Set = true
	return nil
}

// MarshalJSON renders the wrapped value; absent fields marshal as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
