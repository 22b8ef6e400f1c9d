package validation

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/goliatone/go-arrayfield/pkg/fieldid"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

// SchemaValidator is the built-in Validator. It checks the array-level
// constraints (minItems, maxItems, uniqueItems) and per-item constraints
// (type, enum membership, string pattern and length), keying every issue by
// the item's positional identifier so a re-run after a removal naturally
// clears or reassigns stale messages.
type SchemaValidator struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewSchemaValidator constructs a validator with an empty pattern cache.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{patterns: make(map[string]*regexp.Regexp)}
}

// Validate implements Validator.
func (v *SchemaValidator) Validate(_ context.Context, node schema.Schema, path string, items []any) Issues {
	if path == "" {
		path = fieldid.Root
	}
	issues := make(Issues)

	if node.MinItems != nil && len(items) < *node.MinItems {
		issues.Add(path, fmt.Sprintf("must have at least %d items", *node.MinItems))
	}
	if node.MaxItems != nil && len(items) > *node.MaxItems {
		issues.Add(path, fmt.Sprintf("must have at most %d items", *node.MaxItems))
	}
	if node.UniqueItems {
		v.checkUnique(issues, path, items)
	}

	for idx, item := range items {
		itemSchema, ok := node.ItemAt(idx)
		if !ok {
			continue
		}
		v.checkItem(issues, fieldid.ForIndex(path, idx), itemSchema, item)
	}

	if len(issues) == 0 {
		return nil
	}
	return issues
}

func (v *SchemaValidator) checkItem(issues Issues, id string, node schema.Schema, item any) {
	if item == nil {
		return
	}

	switch node.Type {
	case schema.TypeString:
		str, ok := item.(string)
		if !ok {
			issues.Add(id, "must be a string")
			return
		}
		if node.MinLength != nil && len([]rune(str)) < *node.MinLength {
			issues.Add(id, fmt.Sprintf("must be at least %d characters", *node.MinLength))
		}
		if node.MaxLength != nil && len([]rune(str)) > *node.MaxLength {
			issues.Add(id, fmt.Sprintf("must be at most %d characters", *node.MaxLength))
		}
		if node.Pattern != "" {
			if re := v.pattern(node.Pattern); re != nil && !re.MatchString(str) {
				issues.Add(id, fmt.Sprintf("must match pattern %q", node.Pattern))
			}
		}
	case schema.TypeInteger, schema.TypeNumber:
		if !isNumeric(item) {
			issues.Add(id, "must be a number")
			return
		}
	case schema.TypeBoolean:
		if _, ok := item.(bool); !ok {
			issues.Add(id, "must be a boolean")
			return
		}
	}

	if len(node.Enum) > 0 && !enumContains(node.Enum, item) {
		issues.Add(id, "must be one of the allowed values")
	}
}

func (v *SchemaValidator) checkUnique(issues Issues, path string, items []any) {
	seen := make(map[string]int, len(items))
	for idx, item := range items {
		if item == nil {
			continue
		}
		key := fmt.Sprintf("%T:%v", item, item)
		if first, dup := seen[key]; dup {
			issues.Add(fieldid.ForIndex(path, idx), fmt.Sprintf("duplicates item %d", first))
			continue
		}
		seen[key] = idx
	}
}

func (v *SchemaValidator) pattern(expr string) *regexp.Regexp {
	v.mu.Lock()
	defer v.mu.Unlock()
	if re, ok := v.patterns[expr]; ok {
		return re
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		// Malformed patterns are the schema author's problem; skip the check.
		v.patterns[expr] = nil
		return nil
	}
	v.patterns[expr] = re
	return re
}

func isNumeric(item any) bool {
	switch item.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func enumContains(enum []any, item any) bool {
	for _, candidate := range enum {
		if fmt.Sprintf("%v", candidate) == fmt.Sprintf("%v", item) {
			return true
		}
	}
	return false
}
