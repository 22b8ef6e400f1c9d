// Package field implements the array field controller: given an array schema
// and the current value, it renders one widget per item, accepts
// add/remove/change events, and reports every mutation upward as a complete
// new value.
package field

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-arrayfield/pkg/schema"
	"github.com/goliatone/go-arrayfield/pkg/validation"
)

// WidgetRequest carries everything a widget needs to render one item input.
type WidgetRequest struct {
	Schema schema.Schema
	ID     string
	Value  any
	Errors []string
}

// Widget renders a single resolved input.
type Widget interface {
	Render(ctx context.Context, req WidgetRequest) (string, error)
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(ctx context.Context, req WidgetRequest) (string, error)

// Render calls the wrapped function.
func (fn WidgetFunc) Render(ctx context.Context, req WidgetRequest) (string, error) {
	return fn(ctx, req)
}

// Resolver maps an item schema to a renderable widget. The surrounding form
// library supplies the real implementation; pkg/widgets provides the
// registry-backed default.
type Resolver interface {
	ResolveField(node schema.Schema) (Widget, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(node schema.Schema) (Widget, error)

// ResolveField calls the wrapped function.
func (fn ResolverFunc) ResolveField(node schema.Schema) (Widget, error) {
	return fn(node)
}

// TitleRenderer produces the markup for a field title. id is the identifier
// of the element the title labels.
type TitleRenderer func(id, title string) string

// DescriptionRenderer produces the markup for a field description.
type DescriptionRenderer func(id, description string) string

// OnChange receives the complete new array value after every mutation.
type OnChange func(items []any)

// Capabilities bundles the externally supplied collaborators the controller
// consumes. Nil members fall back to built-in defaults (plain text widget,
// sanitized title/description, no-op change sink, schema validator).
type Capabilities struct {
	Resolver         Resolver
	Validator        validation.Validator
	OnChange         OnChange
	TitleField       TitleRenderer
	DescriptionField DescriptionRenderer
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithLogger attaches a structured logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithIssues seeds the externally owned validation issues the controller
// renders inline, typically the result of a prior submit.
func WithIssues(issues validation.Issues) Option {
	return func(c *Controller) {
		c.issues = issues.Merge(nil)
	}
}
