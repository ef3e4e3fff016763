package requester

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// ToStructure converts a model into its generic structural form: a nested
// mapping from wire keys to values, with nested models and collections of
// them converted recursively. Unset fields are absent from the mapping.
//
// Numbers are kept as [json.Number] so that no precision is lost.
func ToStructure(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%T does not convert to a structure: %w", v, err)
	}
	if out == nil {
		// A nil pointer encodes as "null".
		out = map[string]any{}
	}
	return out, nil
}

// FromStructure is the inverse of [ToStructure]: it decodes a structural
// form into the model pointed to by v.
func FromStructure(m map[string]any, v any) error {
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errInvalidParameter{fmt.Errorf("cannot decode structure into non-pointer %T", v)}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Equal reports whether a and b have equal structural forms. Values that
// cannot be converted are never equal.
func Equal[T any](a, b T) bool {
	sa, err := ToStructure(a)
	if err != nil {
		return false
	}
	sb, err := ToStructure(b)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(sa, sb)
}

// Format renders the structural form of v for humans. Keys are sorted, so
// the output is deterministic for a given value, but the layout may change
// between versions.
func Format(v any) string {
	s, err := ToStructure(v)
	if err != nil {
		return fmt.Sprintf("%T(%v)", v, err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Sprintf("%T(%v)", v, err)
	}
	return string(b)
}

// Clone returns a deep copy of v.
func Clone[T any](v T) (T, error) {
	c, err := copystructure.Copy(v)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.(T), nil
}
