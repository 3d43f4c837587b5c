package entities

import (
	"bytes"
	"encoding/json"
)

// Ref points at an entity by id and optionally carries the entity itself.
// A Ref is either Unresolved(id) or Resolved(id, value).
type Ref[T any] struct {
	id    string
	value *T
}

func Unresolved[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

func Resolved[T any](id string, v T) Ref[T] {
	return Ref[T]{id: id, value: &v}
}

func (r Ref[T]) ID() string { return r.id }

func (r Ref[T]) IsResolved() bool { return r.value != nil }

// Get returns the resolved value and true, or the zero value and false.
func (r Ref[T]) Get() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// MarshalJSON writes the entity when resolved and the bare id otherwise.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.value != nil {
		return json.Marshal(r.value)
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts either a bare id or an object with an "id" field.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Unresolved[T](id)
		return nil
	}
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Resolved(head.ID, v)
	return nil
}
