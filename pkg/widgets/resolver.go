package widgets

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-arrayfield/pkg/field"
	rendertemplate "github.com/goliatone/go-arrayfield/pkg/render/template"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

// resolver implements field.Resolver against a registry. It hands itself to
// every renderer so nested arrays can keep resolving recursively.
type resolver struct {
	registry *Registry
	engine   rendertemplate.TemplateRenderer
}

// NewResolver builds the field resolution capability from a registry and a
// template engine. A nil registry gets the built-in widget set; a nil engine
// gets the embedded default templates.
func NewResolver(registry *Registry, engine rendertemplate.TemplateRenderer) (field.Resolver, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	if engine == nil {
		defaultEngine, err := DefaultEngine()
		if err != nil {
			return nil, err
		}
		engine = defaultEngine
	}
	return &resolver{registry: registry, engine: engine}, nil
}

// MustResolver panics when the resolver cannot be constructed. Test helper.
func MustResolver(registry *Registry, engine rendertemplate.TemplateRenderer) field.Resolver {
	res, err := NewResolver(registry, engine)
	if err != nil {
		panic(err)
	}
	return res
}

// ResolveField implements field.Resolver.
func (r *resolver) ResolveField(node schema.Schema) (field.Widget, error) {
	name, ok := r.registry.Resolve(node)
	if !ok {
		return nil, fmt.Errorf("widgets: no widget matches schema type %q", node.Type)
	}
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return nil, fmt.Errorf("widgets: widget %q not registered", name)
	}

	data := WidgetData{Template: r.engine, Resolver: r}
	return field.WidgetFunc(func(ctx context.Context, req field.WidgetRequest) (string, error) {
		var buf bytes.Buffer
		if err := descriptor.Renderer(ctx, &buf, req, data); err != nil {
			return "", fmt.Errorf("widgets: render %q for %q: %w", name, req.ID, err)
		}
		return buf.String(), nil
	}), nil
}
