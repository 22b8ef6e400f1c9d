package field_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-arrayfield/pkg/field"
	"github.com/goliatone/go-arrayfield/pkg/schema"
	"github.com/goliatone/go-arrayfield/pkg/validation"
)

func renderOrFatal(t *testing.T, ctrl *field.Controller) string {
	t.Helper()
	markup, err := ctrl.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return markup
}

func TestRenderListAssignsPositionalIdentifiers(t *testing.T) {
	ctrl := field.New(listSchema(), []any{"a", "b"}, "root", field.Capabilities{})

	markup := renderOrFatal(t, ctrl)

	for _, want := range []string{`id="root_0"`, `id="root_1"`, `class="array-item-add"`, `class="array-item-remove"`} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestRenderAfterRemoveRenumbersFromZero(t *testing.T) {
	ctrl := field.New(listSchema(), []any{"first", "second"}, "root", field.Capabilities{})

	if err := ctrl.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	markup := renderOrFatal(t, ctrl)

	if !strings.Contains(markup, `id="root_0"`) {
		t.Fatalf("surviving item not renumbered to root_0:\n%s", markup)
	}
	if strings.Contains(markup, `id="root_1"`) {
		t.Fatalf("stale identifier root_1 still rendered:\n%s", markup)
	}
	if !strings.Contains(markup, `value="second"`) {
		t.Fatalf("surviving value missing:\n%s", markup)
	}
}

func TestRenderShowsSeededErrorsThenClearsAfterRemove(t *testing.T) {
	seeded := make(validation.Issues)
	seeded.Add("root_1", "must be a string")

	ctrl := field.New(listSchema(), []any{"ok", 42}, "root", field.Capabilities{},
		field.WithIssues(seeded))

	markup := renderOrFatal(t, ctrl)
	if !strings.Contains(markup, `id="root_1__errors"`) || !strings.Contains(markup, "must be a string") {
		t.Fatalf("seeded error not rendered:\n%s", markup)
	}

	if err := ctrl.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	markup = renderOrFatal(t, ctrl)
	if strings.Contains(markup, "field-errors") {
		t.Fatalf("error display survived the removal:\n%s", markup)
	}
}

func TestRenderTupleControls(t *testing.T) {
	node := schema.Schema{
		Type: schema.TypeArray,
		Items: schema.TupleItems(
			schema.Schema{Type: schema.TypeString},
			schema.Schema{Type: schema.TypeInteger},
		),
	}

	t.Run("closed tuple has no add control and no remove buttons", func(t *testing.T) {
		ctrl := field.New(node, []any{"a", 1}, "root", field.Capabilities{})
		markup := renderOrFatal(t, ctrl)

		if strings.Contains(markup, "array-item-add") {
			t.Fatalf("closed tuple rendered an add control:\n%s", markup)
		}
		if strings.Contains(markup, "array-item-remove") {
			t.Fatalf("fixed positions rendered remove buttons:\n%s", markup)
		}
	})

	t.Run("additionalItems enables add and overflow removal", func(t *testing.T) {
		open := node
		open.AdditionalItems = &schema.Schema{Type: schema.TypeBoolean}
		ctrl := field.New(open, []any{"a", 1, true}, "root", field.Capabilities{})
		markup := renderOrFatal(t, ctrl)

		if !strings.Contains(markup, "array-item-add") {
			t.Fatalf("open tuple missing add control:\n%s", markup)
		}
		if !strings.Contains(markup, `id="root_2"`) {
			t.Fatalf("overflow widget identifier missing:\n%s", markup)
		}
		if !strings.Contains(markup, `data-index="2">Remove`) {
			t.Fatalf("overflow position missing remove button:\n%s", markup)
		}
		if strings.Contains(markup, `data-index="0">Remove`) {
			t.Fatalf("fixed position rendered a remove button:\n%s", markup)
		}
	})
}

func TestRenderWithoutItemsDegradesToEmptyList(t *testing.T) {
	ctrl := field.New(schema.Schema{Type: schema.TypeArray, Title: "Broken"}, []any{"orphan"}, "root", field.Capabilities{})

	markup := renderOrFatal(t, ctrl)

	if !strings.Contains(markup, "array-field") {
		t.Fatalf("container missing:\n%s", markup)
	}
	if strings.Contains(markup, "array-item\"") {
		t.Fatalf("itemless schema rendered items:\n%s", markup)
	}
	if strings.Contains(markup, "array-item-add") {
		t.Fatalf("itemless schema rendered an add control:\n%s", markup)
	}
}

func TestRenderMultiSelect(t *testing.T) {
	node := schema.Schema{
		Type:        schema.TypeArray,
		Title:       "Colors",
		UniqueItems: true,
		Items: schema.SingleItems(schema.Schema{
			Type: schema.TypeString,
			Enum: []any{"red", "green", "blue"},
		}),
	}
	ctrl := field.New(node, []any{"blue"}, "root", field.Capabilities{})

	markup := renderOrFatal(t, ctrl)

	if !strings.Contains(markup, "<select multiple") {
		t.Fatalf("multi select widget missing:\n%s", markup)
	}
	if !strings.Contains(markup, `<option value="blue" selected>`) {
		t.Fatalf("current selection not marked:\n%s", markup)
	}
	if strings.Contains(markup, `<option value="red" selected>`) {
		t.Fatalf("unselected option marked selected:\n%s", markup)
	}
	redAt := strings.Index(markup, `value="red"`)
	blueAt := strings.Index(markup, `value="blue"`)
	if redAt < 0 || blueAt < 0 || redAt > blueAt {
		t.Fatalf("options not in enum declaration order:\n%s", markup)
	}
	if !strings.Contains(markup, `<label for="root">Colors</label>`) {
		t.Fatalf("label missing:\n%s", markup)
	}
}

func TestRenderMultiFile(t *testing.T) {
	node := schema.Schema{
		Type: schema.TypeArray,
		Items: schema.SingleItems(schema.Schema{
			Type:   schema.TypeString,
			Format: schema.FormatDataURL,
		}),
	}
	ctrl := field.New(node, []any{
		"data:text/plain;name=report.txt;base64,aGk=",
	}, "root", field.Capabilities{})

	markup := renderOrFatal(t, ctrl)

	if !strings.Contains(markup, `<input type="file" multiple`) {
		t.Fatalf("file input missing:\n%s", markup)
	}
	if !strings.Contains(markup, "<li>report.txt</li>") {
		t.Fatalf("attached file name missing:\n%s", markup)
	}
}

func TestRenderEscapesValues(t *testing.T) {
	ctrl := field.New(listSchema(), []any{`<script>alert(1)</script>`}, "root", field.Capabilities{})

	markup := renderOrFatal(t, ctrl)

	if strings.Contains(markup, "<script>") {
		t.Fatalf("value not escaped:\n%s", markup)
	}
	if !strings.Contains(markup, "&lt;script&gt;") {
		t.Fatalf("escaped value missing:\n%s", markup)
	}
}

func TestRenderTitleAndDescriptionChrome(t *testing.T) {
	node := listSchema()
	node.Title = "Tags"
	node.Description = "List of <em>tags</em>"
	ctrl := field.New(node, []any{"a"}, "root", field.Capabilities{})

	markup := renderOrFatal(t, ctrl)

	if !strings.Contains(markup, `id="root__title"`) || !strings.Contains(markup, "Tags") {
		t.Fatalf("title chrome missing:\n%s", markup)
	}
	if !strings.Contains(markup, `id="root__description"`) || !strings.Contains(markup, "<em>tags</em>") {
		t.Fatalf("description chrome missing:\n%s", markup)
	}
}

func TestRenderUsesCustomResolver(t *testing.T) {
	resolver := field.ResolverFunc(func(schema.Schema) (field.Widget, error) {
		return field.WidgetFunc(func(_ context.Context, req field.WidgetRequest) (string, error) {
			return `<span class="custom" data-id="` + req.ID + `"></span>`, nil
		}), nil
	})
	ctrl := field.New(listSchema(), []any{"a"}, "root", field.Capabilities{Resolver: resolver})

	markup := renderOrFatal(t, ctrl)

	if !strings.Contains(markup, `data-id="root_0"`) {
		t.Fatalf("custom widget not used:\n%s", markup)
	}
}
