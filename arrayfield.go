// Package arrayfield renders and edits schema-driven array inputs. The root
// package re-exports the building blocks and offers one-shot helpers; the
// heavy lifting lives under pkg/.
package arrayfield

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-arrayfield/pkg/field"
	rendertemplate "github.com/goliatone/go-arrayfield/pkg/render/template"
	"github.com/goliatone/go-arrayfield/pkg/schema"
	"github.com/goliatone/go-arrayfield/pkg/validation"
	"github.com/goliatone/go-arrayfield/pkg/widgets"
)

// Schema aliases the schema node consumed by the field.
type Schema = schema.Schema

// Issues aliases the path-keyed validation messages.
type Issues = validation.Issues

// Controller aliases the array field controller.
type Controller = field.Controller

// Resolver aliases the widget resolution capability.
type Resolver = field.Resolver

// Option configures the facade-level constructor.
type Option func(*config)

type config struct {
	path     string
	caps     field.Capabilities
	engine   rendertemplate.TemplateRenderer
	registry *widgets.Registry
	issues   validation.Issues
	log      *zap.Logger
}

// WithPath sets the field's path-qualified identifier. Defaults to "root".
func WithPath(path string) Option {
	return func(c *config) { c.path = path }
}

// WithResolver supplies a custom widget resolver, bypassing the registry.
func WithResolver(resolver field.Resolver) Option {
	return func(c *config) { c.caps.Resolver = resolver }
}

// WithRegistry supplies a widget registry for the default resolver.
func WithRegistry(registry *widgets.Registry) Option {
	return func(c *config) { c.registry = registry }
}

// WithTemplateEngine supplies the template engine backing the default
// resolver's widgets.
func WithTemplateEngine(engine rendertemplate.TemplateRenderer) Option {
	return func(c *config) { c.engine = engine }
}

// WithValidator replaces the built-in schema validator.
func WithValidator(validator validation.Validator) Option {
	return func(c *config) { c.caps.Validator = validator }
}

// WithOnChange registers the sink that observes every full-value update.
func WithOnChange(fn field.OnChange) Option {
	return func(c *config) { c.caps.OnChange = fn }
}

// WithTitleField overrides the markup produced for field titles.
func WithTitleField(fn field.TitleRenderer) Option {
	return func(c *config) { c.caps.TitleField = fn }
}

// WithDescriptionField overrides the markup produced for field descriptions.
func WithDescriptionField(fn field.DescriptionRenderer) Option {
	return func(c *config) { c.caps.DescriptionField = fn }
}

// WithIssues seeds validation issues from a prior submit.
func WithIssues(issues validation.Issues) Option {
	return func(c *config) { c.issues = issues }
}

// WithLogger attaches a structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// New mounts a controller with the registry-backed widget resolver and the
// built-in schema validator unless options override them.
func New(node Schema, items []any, opts ...Option) (*Controller, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.caps.Resolver == nil {
		resolver, err := widgets.NewResolver(cfg.registry, cfg.engine)
		if err != nil {
			return nil, fmt.Errorf("arrayfield: build resolver: %w", err)
		}
		cfg.caps.Resolver = resolver
	}
	if cfg.caps.Validator == nil {
		cfg.caps.Validator = validation.NewSchemaValidator()
	}

	fieldOpts := make([]field.Option, 0, 2)
	if cfg.log != nil {
		fieldOpts = append(fieldOpts, field.WithLogger(cfg.log))
	}
	if cfg.issues != nil {
		fieldOpts = append(fieldOpts, field.WithIssues(cfg.issues))
	}
	return field.New(node, items, cfg.path, cfg.caps, fieldOpts...), nil
}

// RenderHTML mounts a controller and renders it once. It is the simplest
// entry point for callers that just want markup for a schema and value.
func RenderHTML(ctx context.Context, node Schema, items []any, opts ...Option) (string, error) {
	ctrl, err := New(node, items, opts...)
	if err != nil {
		return "", err
	}
	return ctrl.Render(ctx)
}

// Validate runs the built-in schema validator over items without mounting a
// controller. Issue paths are keyed under path, or "root" when empty.
func Validate(ctx context.Context, node Schema, path string, items []any) Issues {
	return validation.NewSchemaValidator().Validate(ctx, node, path, items)
}
