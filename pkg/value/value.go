// Package value owns the ordered form value an array field holds while
// mounted. Every mutation returns a fresh slice; callers never share backing
// arrays with the field, which keeps the "replaced wholesale on every
// change" contract honest.
package value

// Clone deep-copies an array value, including nested maps and slices.
func Clone(items []any) []any {
	if items == nil {
		return nil
	}
	out := make([]any, len(items))
	for idx, item := range items {
		out[idx] = deepCopy(item)
	}
	return out
}

// Append returns a copy of items with entry added at the end.
func Append(items []any, entry any) []any {
	out := make([]any, 0, len(items)+1)
	out = append(out, Clone(items)...)
	out = append(out, deepCopy(entry))
	return out
}

// RemoveAt returns a copy of items with index deleted and every subsequent
// entry shifted down by one. Out-of-range indexes return an unchanged copy.
func RemoveAt(items []any, index int) []any {
	if index < 0 || index >= len(items) {
		return Clone(items)
	}
	out := make([]any, 0, len(items)-1)
	for idx, item := range items {
		if idx == index {
			continue
		}
		out = append(out, deepCopy(item))
	}
	return out
}

// ReplaceAt returns a copy of items with index set to entry. The slice grows
// with nil placeholders when index is past the current end.
func ReplaceAt(items []any, index int, entry any) []any {
	if index < 0 {
		return Clone(items)
	}
	size := len(items)
	if index >= size {
		size = index + 1
	}
	out := make([]any, size)
	for idx, item := range items {
		out[idx] = deepCopy(item)
	}
	out[index] = deepCopy(entry)
	return out
}

// Coerce normalizes an arbitrary decoded value into the []any array shape.
// Non-array values yield nil, matching the degrade-to-empty-list policy.
func Coerce(raw any) []any {
	switch typed := raw.(type) {
	case nil:
		return nil
	case []any:
		return Clone(typed)
	case []string:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = item
		}
		return out
	default:
		return nil
	}
}

func deepCopy(item any) any {
	switch typed := item.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for key, val := range typed {
			clone[key] = deepCopy(val)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for idx, val := range typed {
			clone[idx] = deepCopy(val)
		}
		return clone
	default:
		return typed
	}
}
