package dto

import (
	"bytes"
	"encoding/json"
)

// Optional is a PATCH-style field: Set reports that the key was sent at all,
// Null that it was sent as null. A missing key leaves both false.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Ptr returns the sent value, or nil when the key was missing or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Cleared reports a key sent explicitly as null.
func (o Optional[T]) Cleared() bool {
	return o.Set && o.Null
}
