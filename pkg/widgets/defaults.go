package widgets

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-arrayfield/pkg/field"
	"github.com/goliatone/go-arrayfield/pkg/fieldid"
	rendertemplate "github.com/goliatone/go-arrayfield/pkg/render/template"
	"github.com/goliatone/go-arrayfield/pkg/schema"
	"github.com/goliatone/go-arrayfield/pkg/value"
)

const templatePrefix = "templates/widgets/"

// WidgetData carries the helpers renderers need: the template engine for
// leaf widgets and the resolver for recursive ones.
type WidgetData struct {
	Template rendertemplate.TemplateRenderer
	Resolver field.Resolver
}

func textRenderer(_ context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error {
	return renderInput(buf, req, data, "text")
}

func numberRenderer(_ context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error {
	return renderInput(buf, req, data, "number")
}

func renderInput(buf *bytes.Buffer, req field.WidgetRequest, data WidgetData, inputType string) error {
	return renderNamed(buf, data, templatePrefix+"input.tmpl", map[string]any{
		"id":         req.ID,
		"input_type": inputType,
		"value":      stringValue(req.Value),
	})
}

func textareaRenderer(_ context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error {
	return renderNamed(buf, data, templatePrefix+"textarea.tmpl", map[string]any{
		"id":    req.ID,
		"value": stringValue(req.Value),
	})
}

func checkboxRenderer(_ context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error {
	checked, _ := req.Value.(bool)
	return renderNamed(buf, data, templatePrefix+"checkbox.tmpl", map[string]any{
		"id":      req.ID,
		"checked": checked,
	})
}

func selectRenderer(_ context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error {
	current := stringValue(req.Value)
	options := make([]map[string]any, 0, len(req.Schema.Enum))
	for _, candidate := range req.Schema.Enum {
		option := fmt.Sprintf("%v", candidate)
		options = append(options, map[string]any{
			"value":    option,
			"selected": req.Value != nil && option == current,
		})
	}
	return renderNamed(buf, data, templatePrefix+"select.tmpl", map[string]any{
		"id":      req.ID,
		"options": options,
	})
}

// objectRenderer recurses through the resolver, one sub-widget per declared
// property. Property widgets are addressed by the item identifier joined with
// the property key, so item n's field f renders as root_n_f.
func objectRenderer(ctx context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error {
	if data.Resolver == nil {
		return fmt.Errorf("widgets: object %q needs a resolver", req.ID)
	}
	fields, _ := req.Value.(map[string]any)

	buf.WriteString(`<div class="object-item" id="`)
	buf.WriteString(html.EscapeString(req.ID))
	buf.WriteString(`">`)
	buf.WriteByte('\n')

	for _, key := range propertyOrder(req.Schema.Properties) {
		node := req.Schema.Properties[key]
		id := fieldid.ForKey(req.ID, key)

		label := strings.TrimSpace(node.Title)
		if label == "" {
			label = key
		}
		buf.WriteString(`  <label for="`)
		buf.WriteString(html.EscapeString(id))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(label))
		buf.WriteString("</label>\n")

		widget, err := data.Resolver.ResolveField(node)
		if err != nil {
			return fmt.Errorf("widgets: resolve property %q: %w", id, err)
		}
		markup, err := widget.Render(ctx, field.WidgetRequest{
			Schema: node,
			ID:     id,
			Value:  fields[key],
		})
		if err != nil {
			return fmt.Errorf("widgets: render property %q: %w", id, err)
		}
		buf.WriteString("  ")
		buf.WriteString(markup)
		buf.WriteByte('\n')
	}
	buf.WriteString("</div>")
	return nil
}

func propertyOrder(properties map[string]schema.Schema) []string {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// arrayRenderer recurses: a nested array item mounts its own controller with
// the item identifier as its path, so nested widgets get identifiers like
// root_0_2.
func arrayRenderer(ctx context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error {
	child := field.New(req.Schema, value.Coerce(req.Value), req.ID, field.Capabilities{
		Resolver: data.Resolver,
	})
	markup, err := child.Render(ctx)
	if err != nil {
		return fmt.Errorf("widgets: render nested array %q: %w", req.ID, err)
	}
	buf.WriteString(markup)
	return nil
}

func renderNamed(buf *bytes.Buffer, data WidgetData, name string, payload map[string]any) error {
	if data.Template == nil {
		return fmt.Errorf("widgets: template renderer not configured for %q", name)
	}
	rendered, err := data.Template.RenderTemplate(name, payload)
	if err != nil {
		return fmt.Errorf("widgets: render template %q: %w", name, err)
	}
	buf.WriteString(rendered)
	return nil
}

func stringValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprintf("%v", typed)
	}
}
