package roster

import (
	"bytes"
	"encoding/json"
)

// Presence records whether a field appeared in the source document and in
// what shape.
type Presence uint8

const (
	Absent  Presence = iota // key missing from the object
	Null                    // key present with a JSON null
	Present                 // key present with a value of the expected type
	Invalid                 // key present with a value of the wrong type
)

// String returns the presence name.
func (p Presence) String() string {
	switch p {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case Present:
		return "present"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Opt is a record field with tagged presence. The zero value is Absent.
//
// Decoding never fails: a value of the wrong JSON type yields Invalid so a
// single bad field cannot reject a whole dataset. Absent fields are dropped
// by the JSON omitzero and YAML omitempty tags; Null and Invalid fields
// encode as null.
type Opt[T any] struct {
	val      T
	presence Presence
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{val: v, presence: Present}
}

// NullOf returns an Opt that was present in the source as a JSON null.
func NullOf[T any]() Opt[T] {
	return Opt[T]{presence: Null}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.presence == Present
}

// Value returns the value, or the zero value of T when not present.
func (o Opt[T]) Value() T {
	return o.val
}

// Presence reports how the field appeared in the source.
func (o Opt[T]) Presence() Presence { return o.presence }

// IsPresent reports whether the field holds a value of the expected type.
func (o Opt[T]) IsPresent() bool { return o.presence == Present }

// IsZero reports whether the field was absent.
func (o Opt[T]) IsZero() bool { return o.presence == Absent }

// UnmarshalJSON implements json.Unmarshaler.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = NullOf[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		*o = Opt[T]{presence: Invalid}
		return nil
	}
	*o = Some(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if o.presence != Present {
		return []byte("null"), nil
	}
	return marshalRaw(o.val)
}

// marshalRaw encodes v as JSON without HTML escaping.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Opt[T]) MarshalYAML() (any, error) {
	if o.presence != Present {
		return nil, nil
	}
	return o.val, nil
}
