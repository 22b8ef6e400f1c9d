// Package widgets provides the registry-backed default implementation of the
// field resolution capability: item schemas are matched to named widgets,
// leaf widgets render through templates, and nested arrays recurse into
// child controllers.
package widgets

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-arrayfield/pkg/field"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

// Built-in widget identifiers.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetNumber   = "number"
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
	WidgetObject   = "object"
	WidgetArray    = "array"
)

// Matcher decides whether a widget should handle the supplied schema node.
type Matcher func(node schema.Schema) bool

// Renderer writes the widget markup for one item into buf. The context is the
// caller's render context and must flow into any nested render.
type Renderer func(ctx context.Context, buf *bytes.Buffer, req field.WidgetRequest, data WidgetData) error

// Descriptor pairs a widget name with its renderer.
type Descriptor struct {
	Name     string
	Renderer Renderer
}

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry matches schema nodes to widget descriptors. Higher priority wins;
// ties fall back to registration order.
type Registry struct {
	mu          sync.RWMutex
	rules       []rule
	descriptors map[string]Descriptor
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{descriptors: make(map[string]Descriptor)}
	reg.registerBuiltins()
	return reg
}

// Register adds a descriptor plus the matcher that selects it. A nil matcher
// registers the descriptor for explicit lookup only.
func (r *Registry) Register(name string, priority int, matcher Matcher, descriptor Descriptor) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("widgets: widget name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("widgets: renderer for %q is nil", trimmed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = trimmed
	r.descriptors[trimmed] = descriptor
	if matcher != nil {
		r.rules = append(r.rules, rule{
			name:     trimmed,
			priority: priority,
			match:    matcher,
			order:    len(r.rules),
		})
	}
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, priority int, matcher Matcher, descriptor Descriptor) {
	if err := r.Register(name, priority, matcher, descriptor); err != nil {
		panic(err)
	}
}

// Resolve returns the widget name for a schema node.
func (r *Registry) Resolve(node schema.Schema) (string, bool) {
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(node) {
			return entry.name, true
		}
	}
	return "", false
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.descriptors[strings.TrimSpace(name)]
	return descriptor, ok
}

// Names returns the registered widget names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(WidgetCheckbox, 90, func(node schema.Schema) bool {
		return node.Type == schema.TypeBoolean
	}, Descriptor{Renderer: checkboxRenderer})

	r.MustRegister(WidgetSelect, 80, func(node schema.Schema) bool {
		return len(node.Enum) > 0 && node.Type != schema.TypeArray
	}, Descriptor{Renderer: selectRenderer})

	r.MustRegister(WidgetNumber, 70, func(node schema.Schema) bool {
		return node.Type == schema.TypeInteger || node.Type == schema.TypeNumber
	}, Descriptor{Renderer: numberRenderer})

	r.MustRegister(WidgetTextarea, 60, func(node schema.Schema) bool {
		return node.Type == schema.TypeString && strings.EqualFold(node.Format, "textarea")
	}, Descriptor{Renderer: textareaRenderer})

	r.MustRegister(WidgetObject, 55, func(node schema.Schema) bool {
		return node.Type == schema.TypeObject
	}, Descriptor{Renderer: objectRenderer})

	r.MustRegister(WidgetArray, 50, func(node schema.Schema) bool {
		return node.Type == schema.TypeArray
	}, Descriptor{Renderer: arrayRenderer})

	r.MustRegister(WidgetText, 10, func(node schema.Schema) bool {
		return true
	}, Descriptor{Renderer: textRenderer})
}
