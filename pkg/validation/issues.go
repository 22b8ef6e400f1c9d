// Package validation carries the errors-by-path contract between the array
// field and the surrounding form library. The field never owns validation
// policy; it triggers a Validator after removals and reads back the subset
// of issues inside its own subtree.
package validation

import (
	"context"
	"sort"
	"strings"

	"github.com/goliatone/go-arrayfield/pkg/fieldid"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

// Issues maps field identifiers to their error messages.
type Issues map[string][]string

// Validator re-checks a full array value and returns issues keyed by item
// identifier. Implementations are supplied by the surrounding library; the
// SchemaValidator below is the built-in default.
type Validator interface {
	Validate(ctx context.Context, node schema.Schema, path string, items []any) Issues
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, node schema.Schema, path string, items []any) Issues

// Validate calls the wrapped function.
func (fn ValidatorFunc) Validate(ctx context.Context, node schema.Schema, path string, items []any) Issues {
	return fn(ctx, node, path, items)
}

// Add appends a normalized message under path, dropping blanks and
// duplicates.
func (i Issues) Add(path, message string) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return
	}
	for _, existing := range i[path] {
		if existing == trimmed {
			return
		}
	}
	i[path] = append(i[path], trimmed)
}

// Messages returns the messages attached to an exact identifier.
func (i Issues) Messages(path string) []string {
	if len(i) == 0 {
		return nil
	}
	return i[path]
}

// Subset returns the issues whose identifiers sit inside the subtree rooted
// at prefix. Segment-aware: "root_1" does not capture "root_10".
func (i Issues) Subset(prefix string) Issues {
	if len(i) == 0 {
		return nil
	}
	out := make(Issues)
	for path, messages := range i {
		if !fieldid.HasPrefix(path, prefix) {
			continue
		}
		out[path] = append([]string(nil), messages...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Paths returns the identifiers carrying at least one message, sorted.
func (i Issues) Paths() []string {
	if len(i) == 0 {
		return nil
	}
	paths := make([]string, 0, len(i))
	for path, messages := range i {
		if len(messages) == 0 {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Empty reports whether no identifier carries a message.
func (i Issues) Empty() bool {
	for _, messages := range i {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}

// Merge folds other into a copy of i. Messages are deduplicated per path.
func (i Issues) Merge(other Issues) Issues {
	out := make(Issues, len(i)+len(other))
	for path, messages := range i {
		for _, message := range messages {
			out.Add(path, message)
		}
	}
	for path, messages := range other {
		for _, message := range messages {
			out.Add(path, message)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
