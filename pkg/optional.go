package pkg

import (
	"bytes"
	"encoding/json"
)

// Optional is a value that may be absent. The zero value is None and
// encodes to JSON null.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalFromPtr maps nil to None.
func OptionalFromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSome() bool {
	return o.set
}

func (o Optional[T]) OrElse(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

// Ptr returns nil for None, otherwise a pointer to a copy of the value.
func (o Optional[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
