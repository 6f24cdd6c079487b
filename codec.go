package threadsafe

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	_ json.Marshaler   = Value[struct{}]{}
	_ json.Unmarshaler = (*Value[struct{}])(nil)
	_ yaml.Marshaler   = Value[struct{}]{}
	_ yaml.Unmarshaler = (*Value[struct{}])(nil)
	_ yaml.IsZeroer    = Value[struct{}]{}
	_ fmt.Stringer     = Value[struct{}]{}
)

// MarshalJSON encodes the wrapped value as if it were not wrapped at all.
// Combine with a `json:",omitzero"` tag to drop absent containers from the
// output instead of encoding the zero T.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Get())
}

// UnmarshalJSON decodes a bare T and stores it. Decoding into the zero Value
// constructs a fresh tracking container around the decoded value; decoding
// into a live container is an ordinary write and follows the fork-on-write
// policy. On error the container is left exactly as it was.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	var x T
	if err := json.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	v.put(x)
	return nil
}

// MarshalYAML encodes the wrapped value as if it were not wrapped at all.
// Combine with a `yaml:",omitempty"` tag to drop absent containers from the
// output.
func (v Value[T]) MarshalYAML() (interface{}, error) {
	return v.Get(), nil
}

// UnmarshalYAML decodes a bare T and stores it, with the same construct-or-
// write behavior as UnmarshalJSON.
func (v *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	var x T
	if err := node.Decode(&x); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	v.put(x)
	return nil
}

// put routes a decoded value into the container: a write when live,
// construction when absent.
func (v *Value[T]) put(x T) {
	if v.h == nil {
		*v = New(x)
		return
	}
	v.h.store(x)
}
