package field

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var descriptionPolicy = bluemonday.UGCPolicy()

// DefaultTitleField renders a legend for the array fieldset. Titles are
// plain text and fully escaped.
func DefaultTitleField(id, title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(`<legend id="`)
	builder.WriteString(html.EscapeString(id + "__title"))
	builder.WriteString(`">`)
	builder.WriteString(html.EscapeString(trimmed))
	builder.WriteString(`</legend>`)
	return builder.String()
}

// DefaultDescriptionField renders the schema description. Descriptions may
// carry caller-authored markup, so they pass through the UGC sanitizer
// instead of being escaped outright.
func DefaultDescriptionField(id, description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(`<p id="`)
	builder.WriteString(html.EscapeString(id + "__description"))
	builder.WriteString(`" class="field-description">`)
	builder.WriteString(descriptionPolicy.Sanitize(trimmed))
	builder.WriteString(`</p>`)
	return builder.String()
}
