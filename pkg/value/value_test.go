package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-arrayfield/pkg/value"
)

func TestCloneIsolatesNestedContainers(t *testing.T) {
	original := []any{
		map[string]any{"name": "alpha"},
		[]any{"x", "y"},
	}
	clone := value.Clone(original)

	clone[0].(map[string]any)["name"] = "mutated"
	clone[1].([]any)[0] = "mutated"

	if original[0].(map[string]any)["name"] != "alpha" {
		t.Fatal("mutating the clone leaked into the original map")
	}
	if original[1].([]any)[0] != "x" {
		t.Fatal("mutating the clone leaked into the original slice")
	}
}

func TestAppend(t *testing.T) {
	base := []any{"a"}
	got := value.Append(base, "b")

	if diff := cmp.Diff([]any{"a", "b"}, got); diff != "" {
		t.Fatalf("appended value mismatch (-want +got):\n%s", diff)
	}
	if len(base) != 1 {
		t.Fatalf("Append mutated its input, len = %d", len(base))
	}
}

func TestRemoveAt(t *testing.T) {
	cases := []struct {
		name  string
		items []any
		index int
		want  []any
	}{
		{"removes and shifts", []any{"a", "b", "c"}, 1, []any{"a", "c"}},
		{"first", []any{"a", "b"}, 0, []any{"b"}},
		{"out of range returns copy", []any{"a"}, 5, []any{"a"}},
		{"negative returns copy", []any{"a"}, -1, []any{"a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, value.RemoveAt(tc.items, tc.index)); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplaceAt(t *testing.T) {
	got := value.ReplaceAt([]any{"a", "b"}, 1, "z")
	if diff := cmp.Diff([]any{"a", "z"}, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	grown := value.ReplaceAt([]any{"a"}, 2, "c")
	if diff := cmp.Diff([]any{"a", nil, "c"}, grown); diff != "" {
		t.Fatalf("grown value mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerce(t *testing.T) {
	if diff := cmp.Diff([]any{"a", "b"}, value.Coerce([]string{"a", "b"})); diff != "" {
		t.Fatalf("string slice mismatch (-want +got):\n%s", diff)
	}
	if got := value.Coerce("scalar"); got != nil {
		t.Fatalf("Coerce(scalar) = %v, want nil", got)
	}
	if got := value.Coerce(nil); got != nil {
		t.Fatalf("Coerce(nil) = %v, want nil", got)
	}
}
