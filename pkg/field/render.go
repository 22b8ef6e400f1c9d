package field

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-arrayfield/pkg/dataurl"
	"github.com/goliatone/go-arrayfield/pkg/fieldid"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

// Render produces the field's markup for the current value. Identifiers are
// recomputed from positional indexes on every call, so a render after a
// removal renumbers every remaining item contiguously from zero.
func (c *Controller) Render(ctx context.Context) (string, error) {
	switch c.mode {
	case ModeMultiSelect:
		return c.renderMultiSelect()
	case ModeMultiFile:
		return c.renderMultiFile()
	default:
		return c.renderItems(ctx)
	}
}

func (c *Controller) renderItems(ctx context.Context) (string, error) {
	var builder strings.Builder
	builder.Grow(512)

	builder.WriteString(`<fieldset id="`)
	builder.WriteString(html.EscapeString(c.path))
	builder.WriteString(`" class="array-field">`)
	builder.WriteByte('\n')
	c.writeChrome(&builder)

	specs := c.enumerate()
	if len(specs) == 0 && c.node.Items == nil {
		c.log.Warn("array schema missing items, rendering empty list",
			zap.String("path", c.path))
	}

	for _, spec := range specs {
		if err := c.writeItem(ctx, &builder, spec); err != nil {
			return "", err
		}
	}

	if c.canAppend() {
		builder.WriteString(`  <button type="button" class="array-item-add" data-action="add">Add</button>`)
		builder.WriteByte('\n')
	}
	builder.WriteString(`</fieldset>`)
	builder.WriteByte('\n')
	return builder.String(), nil
}

func (c *Controller) writeItem(ctx context.Context, builder *strings.Builder, spec itemSpec) error {
	id := fieldid.ForIndex(c.path, spec.index)

	builder.WriteString(`  <div class="array-item" data-index="`)
	builder.WriteString(strconv.Itoa(spec.index))
	builder.WriteString(`">`)
	builder.WriteByte('\n')

	widget, err := c.resolveWidget(spec.node)
	if err != nil {
		return fmt.Errorf("field: resolve widget for %q: %w", id, err)
	}
	markup, err := widget.Render(ctx, WidgetRequest{
		Schema: spec.node,
		ID:     id,
		Value:  spec.val,
		Errors: c.issues.Messages(id),
	})
	if err != nil {
		return fmt.Errorf("field: render item %q: %w", id, err)
	}
	writeIndented(builder, markup)
	c.writeErrors(builder, id)

	if spec.removable {
		builder.WriteString(`    <button type="button" class="array-item-remove" data-action="remove" data-index="`)
		builder.WriteString(strconv.Itoa(spec.index))
		builder.WriteString(`">Remove</button>`)
		builder.WriteByte('\n')
	}
	builder.WriteString("  </div>\n")
	return nil
}

func (c *Controller) renderMultiSelect() (string, error) {
	item, ok := c.node.ItemSchema()
	if !ok {
		return c.renderItems(context.Background())
	}

	selected := make(map[string]struct{}, len(c.items))
	for _, entry := range c.items {
		selected[fmt.Sprintf("%v", entry)] = struct{}{}
	}

	var builder strings.Builder
	builder.WriteString(`<div class="array-field array-field-multiselect">`)
	builder.WriteByte('\n')
	c.writeLabel(&builder)

	builder.WriteString(`  <select multiple id="`)
	builder.WriteString(html.EscapeString(c.path))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(c.path))
	builder.WriteString(`">`)
	builder.WriteByte('\n')
	for _, candidate := range item.Enum {
		option := fmt.Sprintf("%v", candidate)
		builder.WriteString(`    <option value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if _, ok := selected[option]; ok {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString("</option>\n")
	}
	builder.WriteString("  </select>\n")
	c.writeErrors(&builder, c.path)
	builder.WriteString("</div>\n")
	return builder.String(), nil
}

func (c *Controller) renderMultiFile() (string, error) {
	var builder strings.Builder
	builder.WriteString(`<div class="array-field array-field-multifile">`)
	builder.WriteByte('\n')
	c.writeLabel(&builder)

	builder.WriteString(`  <input type="file" multiple id="`)
	builder.WriteString(html.EscapeString(c.path))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(c.path))
	builder.WriteString(`"/>`)
	builder.WriteByte('\n')

	if len(c.items) > 0 {
		builder.WriteString("  <ul class=\"file-list\">\n")
		for _, entry := range c.items {
			raw, _ := entry.(string)
			name := dataurl.Name(raw)
			if name == "" {
				name = "unnamed file"
			}
			builder.WriteString(`    <li>`)
			builder.WriteString(html.EscapeString(name))
			builder.WriteString("</li>\n")
		}
		builder.WriteString("  </ul>\n")
	}
	c.writeErrors(&builder, c.path)
	builder.WriteString("</div>\n")
	return builder.String(), nil
}

// writeChrome emits the legend and description for grouped renderings.
func (c *Controller) writeChrome(builder *strings.Builder) {
	title := c.titleField()(c.path, c.node.Title)
	if title != "" {
		builder.WriteString("  ")
		builder.WriteString(title)
		builder.WriteByte('\n')
	}
	description := c.descriptionField()(c.path, c.node.Description)
	if description != "" {
		builder.WriteString("  ")
		builder.WriteString(description)
		builder.WriteByte('\n')
	}
}

// writeLabel emits a label + description pair for single-widget renderings.
func (c *Controller) writeLabel(builder *strings.Builder) {
	if title := strings.TrimSpace(c.node.Title); title != "" {
		builder.WriteString(`  <label for="`)
		builder.WriteString(html.EscapeString(c.path))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(title))
		builder.WriteString("</label>\n")
	}
	if description := c.descriptionField()(c.path, c.node.Description); description != "" {
		builder.WriteString("  ")
		builder.WriteString(description)
		builder.WriteByte('\n')
	}
}

func (c *Controller) writeErrors(builder *strings.Builder, id string) {
	messages := c.issues.Messages(id)
	if len(messages) == 0 {
		return
	}
	builder.WriteString(`    <ul class="field-errors" id="`)
	builder.WriteString(html.EscapeString(id + "__errors"))
	builder.WriteString("\">\n")
	for _, message := range messages {
		builder.WriteString(`      <li>`)
		builder.WriteString(html.EscapeString(message))
		builder.WriteString("</li>\n")
	}
	builder.WriteString("    </ul>\n")
}

func (c *Controller) resolveWidget(node schema.Schema) (Widget, error) {
	if c.caps.Resolver != nil {
		return c.caps.Resolver.ResolveField(node)
	}
	return fallbackWidget(), nil
}

func (c *Controller) titleField() TitleRenderer {
	if c.caps.TitleField != nil {
		return c.caps.TitleField
	}
	return DefaultTitleField
}

func (c *Controller) descriptionField() DescriptionRenderer {
	if c.caps.DescriptionField != nil {
		return c.caps.DescriptionField
	}
	return DefaultDescriptionField
}

// fallbackWidget renders a bare typed input when no resolver capability is
// configured.
func fallbackWidget() Widget {
	return WidgetFunc(func(_ context.Context, req WidgetRequest) (string, error) {
		inputType := "text"
		switch req.Schema.Type {
		case schema.TypeInteger, schema.TypeNumber:
			inputType = "number"
		case schema.TypeBoolean:
			inputType = "checkbox"
		}

		var builder strings.Builder
		builder.WriteString(`<input type="`)
		builder.WriteString(inputType)
		builder.WriteString(`" id="`)
		builder.WriteString(html.EscapeString(req.ID))
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(req.ID))
		builder.WriteString(`"`)
		if inputType == "checkbox" {
			if checked, _ := req.Value.(bool); checked {
				builder.WriteString(` checked`)
			}
		} else if req.Value != nil {
			builder.WriteString(` value="`)
			builder.WriteString(html.EscapeString(fmt.Sprintf("%v", req.Value)))
			builder.WriteString(`"`)
		}
		builder.WriteString(`/>`)
		return builder.String(), nil
	})
}

func writeIndented(builder *strings.Builder, markup string) {
	for _, line := range strings.Split(markup, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
}
