package schema

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// Type names used by the array field. Anything else falls through to the
// string widget.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// FormatDataURL marks string schemas whose values are inline base64 file
// payloads.
const FormatDataURL = "data-url"

// Schema is the JSON-Schema-like node the array field consumes. It is an
// immutable input owned by the caller; the field never mutates it.
type Schema struct {
	Type            string            `json:"type,omitempty"`
	Title           string            `json:"title,omitempty"`
	Description     string            `json:"description,omitempty"`
	Format          string            `json:"format,omitempty"`
	Default         any               `json:"default,omitempty"`
	Enum            []any             `json:"enum,omitempty"`
	UniqueItems     bool              `json:"uniqueItems,omitempty"`
	Items           *Items            `json:"items,omitempty"`
	AdditionalItems *Schema           `json:"additionalItems,omitempty"`
	Properties      map[string]Schema `json:"properties,omitempty"`
	Required        []string          `json:"required,omitempty"`
	MinItems        *int              `json:"minItems,omitempty"`
	MaxItems        *int              `json:"maxItems,omitempty"`
	MinLength       *int              `json:"minLength,omitempty"`
	MaxLength       *int              `json:"maxLength,omitempty"`
	Pattern         string            `json:"pattern,omitempty"`
}

// IsArray reports whether the node declares an array type.
func (s Schema) IsArray() bool {
	return s.Type == TypeArray
}

// ItemSchema returns the single item schema when the node is a list-form
// array. The second return is false for tuple-form or itemless arrays.
func (s Schema) ItemSchema() (Schema, bool) {
	if s.Items == nil {
		return Schema{}, false
	}
	single, ok := s.Items.Single()
	if !ok || single == nil {
		return Schema{}, false
	}
	return *single, true
}

// TupleSchemas returns the ordered positional schemas when the node is a
// tuple-form array.
func (s Schema) TupleSchemas() ([]Schema, bool) {
	if s.Items == nil {
		return nil, false
	}
	return s.Items.Tuple()
}

// ItemAt resolves the sub-schema governing position index: the positional
// schema inside a tuple, additionalItems for tuple overflow, or the shared
// item schema in list form.
func (s Schema) ItemAt(index int) (Schema, bool) {
	if tuple, ok := s.TupleSchemas(); ok {
		if index >= 0 && index < len(tuple) {
			return tuple[index], true
		}
		if s.AdditionalItems != nil {
			return *s.AdditionalItems, true
		}
		return Schema{}, false
	}
	return s.ItemSchema()
}

// Items models the single-vs-tuple union of the JSON Schema `items` keyword:
// either one schema reused for every position, or an ordered sequence of
// positional schemas.
type Items struct {
	single *Schema
	tuple  []Schema
}

// SingleItems wraps one schema reused per position.
func SingleItems(s Schema) *Items {
	clone := s
	return &Items{single: &clone}
}

// TupleItems wraps an ordered sequence of positional schemas.
func TupleItems(schemas ...Schema) *Items {
	return &Items{tuple: append([]Schema(nil), schemas...)}
}

// Single returns the shared item schema for list-form arrays.
func (i *Items) Single() (*Schema, bool) {
	if i == nil || i.single == nil {
		return nil, false
	}
	return i.single, true
}

// Tuple returns the positional schemas for tuple-form arrays.
func (i *Items) Tuple() ([]Schema, bool) {
	if i == nil || len(i.tuple) == 0 {
		return nil, false
	}
	return i.tuple, true
}

// Len returns the number of fixed positions (1 for list form).
func (i *Items) Len() int {
	if i == nil {
		return 0
	}
	if len(i.tuple) > 0 {
		return len(i.tuple)
	}
	if i.single != nil {
		return 1
	}
	return 0
}

// UnmarshalJSON accepts either an object (list form) or an array of objects
// (tuple form).
func (i *Items) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*i = Items{}
		return nil
	}
	switch trimmed[0] {
	case '{':
		var single Schema
		if err := gojson.Unmarshal(trimmed, &single); err != nil {
			return fmt.Errorf("schema: parse items object: %w", err)
		}
		*i = Items{single: &single}
		return nil
	case '[':
		var tuple []Schema
		if err := gojson.Unmarshal(trimmed, &tuple); err != nil {
			return fmt.Errorf("schema: parse items tuple: %w", err)
		}
		*i = Items{tuple: tuple}
		return nil
	default:
		return fmt.Errorf("schema: items must be an object or an array, got %s", previewJSON(trimmed))
	}
}

// MarshalJSON emits the wrapped form unchanged.
func (i *Items) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("null"), nil
	}
	if len(i.tuple) > 0 {
		return gojson.Marshal(i.tuple)
	}
	if i.single != nil {
		return gojson.Marshal(i.single)
	}
	return []byte("null"), nil
}

func previewJSON(raw []byte) string {
	const max = 24
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
