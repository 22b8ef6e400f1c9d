// Package fieldid implements the identifier scheme shared by widgets and
// validation issues: parent path joined with a positional index or property
// key, underscore separated. Identifiers are recomputed on every render and
// never cached across add/remove, so removing item i renumbers every
// subsequent item.
package fieldid

import (
	"strconv"
	"strings"
)

// Root is the default identifier for a top-level field.
const Root = "root"

// Separator joins path segments.
const Separator = "_"

// ForIndex qualifies a zero-based array position: ForIndex("root", 1) is
// "root_1".
func ForIndex(parent string, index int) string {
	return join(parent, strconv.Itoa(index))
}

// ForKey qualifies an object property key: ForKey("root_1", "name") is
// "root_1_name".
func ForKey(parent, key string) string {
	return join(parent, strings.TrimSpace(key))
}

// Split breaks an identifier into its segments.
func Split(id string) []string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, Separator)
}

// HasPrefix reports whether id sits inside the subtree rooted at prefix. The
// match is segment-aware: "root_1" covers "root_1_name" but not "root_10".
func HasPrefix(id, prefix string) bool {
	if prefix == "" {
		return true
	}
	if id == prefix {
		return true
	}
	return strings.HasPrefix(id, prefix+Separator)
}

func join(parent, child string) string {
	parent = strings.TrimSpace(parent)
	if parent == "" {
		parent = Root
	}
	if child == "" {
		return parent
	}
	return parent + Separator + child
}
