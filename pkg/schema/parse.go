package schema

import (
	"bytes"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON schema document into a Schema node.
func ParseJSON(raw []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Schema{}, errors.New("schema: document is empty")
	}
	var node Schema
	if err := gojson.Unmarshal(trimmed, &node); err != nil {
		return Schema{}, fmt.Errorf("schema: parse json: %w", err)
	}
	return node, nil
}

// ParseYAML decodes a YAML schema document. The YAML tree is converted to its
// JSON shape first so the Items union unmarshaller applies to both formats.
func ParseYAML(raw []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Schema{}, errors.New("schema: document is empty")
	}
	var tree any
	if err := yaml.Unmarshal(trimmed, &tree); err != nil {
		return Schema{}, fmt.Errorf("schema: parse yaml: %w", err)
	}
	payload, err := gojson.Marshal(normalizeYAML(tree))
	if err != nil {
		return Schema{}, fmt.Errorf("schema: convert yaml: %w", err)
	}
	return ParseJSON(payload)
}

// Parse sniffs the payload format: JSON documents start with '{', everything
// else is treated as YAML.
func Parse(raw []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Schema{}, errors.New("schema: document is empty")
	}
	if trimmed[0] == '{' {
		return ParseJSON(trimmed)
	}
	return ParseYAML(trimmed)
}

// ParseValue decodes a JSON array payload into the []any form value shape.
func ParseValue(raw []byte) ([]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var value []any
	if err := gojson.Unmarshal(trimmed, &value); err != nil {
		return nil, fmt.Errorf("schema: parse value: %w", err)
	}
	return value, nil
}

// normalizeYAML rewrites yaml.v3 map[any]any containers into map[string]any
// so the JSON round trip succeeds.
func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprint(key)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, val := range typed {
			out[idx] = normalizeYAML(val)
		}
		return out
	default:
		return typed
	}
}
