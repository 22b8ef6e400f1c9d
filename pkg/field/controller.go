package field

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-arrayfield/pkg/dataurl"
	"github.com/goliatone/go-arrayfield/pkg/fieldid"
	"github.com/goliatone/go-arrayfield/pkg/schema"
	"github.com/goliatone/go-arrayfield/pkg/validation"
	"github.com/goliatone/go-arrayfield/pkg/value"
)

// Controller owns an array value for the duration of its mounted lifetime.
// The schema is immutable caller-owned input; the value is copied in and
// replaced wholesale on every event. All event methods run synchronously.
type Controller struct {
	node   schema.Schema
	path   string
	caps   Capabilities
	mode   Mode
	items  []any
	issues validation.Issues
	log    *zap.Logger
}

// New mounts a controller for the given schema and initial value. The value
// is deep-copied so later caller mutations cannot alias the held state.
func New(node schema.Schema, items []any, path string, caps Capabilities, opts ...Option) *Controller {
	if path == "" {
		path = fieldid.Root
	}
	ctrl := &Controller{
		node:  node,
		path:  path,
		caps:  caps,
		mode:  ResolveMode(node),
		items: value.Clone(items),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ctrl)
		}
	}
	return ctrl
}

// Mode returns the rendering mode resolved from the schema shape.
func (c *Controller) Mode() Mode { return c.mode }

// Schema returns the immutable array schema the controller was mounted with.
func (c *Controller) Schema() schema.Schema { return c.node }

// Path returns the controller's path-qualified identifier.
func (c *Controller) Path() string { return c.path }

// Value returns a copy of the currently held array value.
func (c *Controller) Value() []any { return value.Clone(c.items) }

// Len returns the number of held entries.
func (c *Controller) Len() int { return len(c.items) }

// Issues returns the validation issues inside this field's subtree.
func (c *Controller) Issues() validation.Issues {
	return c.issues.Subset(c.path)
}

// SetIssues replaces the externally owned issue list, typically after a
// submit elsewhere in the form re-ran validation.
func (c *Controller) SetIssues(issues validation.Issues) {
	c.issues = issues.Merge(nil)
}

// itemSpec describes one rendered position: its resolved sub-schema, current
// value, and whether a remove control accompanies it. Identifiers are
// derived from the index at render time, never stored.
type itemSpec struct {
	index     int
	node      schema.Schema
	val       any
	removable bool
}

// enumerate lists the positions the current mode renders. Tuple schemas
// yield one resolved sub-schema per fixed position plus additionalItems
// overflow; list schemas reuse the single item schema per value entry.
func (c *Controller) enumerate() []itemSpec {
	switch c.mode {
	case ModeTuple:
		tuple, _ := c.node.TupleSchemas()
		count := len(c.items)
		if count < len(tuple) {
			count = len(tuple)
		}
		specs := make([]itemSpec, 0, count)
		for idx := 0; idx < count; idx++ {
			spec := itemSpec{index: idx}
			if idx < len(c.items) {
				spec.val = c.items[idx]
			}
			if idx < len(tuple) {
				spec.node = tuple[idx]
			} else if c.node.AdditionalItems != nil {
				spec.node = *c.node.AdditionalItems
				spec.removable = true
			} else {
				// Overflow without an additionalItems schema is undefined
				// upstream; skip the position entirely.
				continue
			}
			specs = append(specs, spec)
		}
		return specs
	case ModeList:
		item, ok := c.node.ItemSchema()
		if !ok {
			return nil
		}
		specs := make([]itemSpec, len(c.items))
		for idx := range c.items {
			specs[idx] = itemSpec{index: idx, node: item, val: c.items[idx], removable: true}
		}
		return specs
	default:
		return nil
	}
}

// Add appends a placeholder entry and reports the new value. It never
// triggers validation; a half-filled row is not an error yet.
func (c *Controller) Add() {
	placeholder := c.placeholder()
	c.items = value.Append(c.items, placeholder)
	c.log.Debug("array item added",
		zap.String("path", c.path),
		zap.Int("len", len(c.items)))
	c.emit()
}

// Remove deletes the entry at index, shifting all subsequent entries down by
// one, then re-runs validation so errors tied to removed or shifted
// positions are cleared or reassigned.
func (c *Controller) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return fmt.Errorf("field: remove index %d out of range [0,%d)", index, len(c.items))
	}
	c.items = value.RemoveAt(c.items, index)
	c.revalidate()
	c.log.Debug("array item removed",
		zap.String("path", c.path),
		zap.Int("index", index),
		zap.Int("len", len(c.items)))
	c.emit()
	return nil
}

// Change replaces the entry at index with v and reports the full new value.
func (c *Controller) Change(index int, v any) error {
	if index < 0 {
		return fmt.Errorf("field: change index %d out of range", index)
	}
	c.items = value.ReplaceAt(c.items, index, v)
	c.log.Debug("array item changed",
		zap.String("path", c.path),
		zap.Int("index", index))
	c.emit()
	return nil
}

// ReplaceAll swaps in a complete new value, the wholesale update path used
// by the multi-select and multi-file modes.
func (c *Controller) ReplaceAll(items []any) {
	c.items = value.Clone(items)
	c.log.Debug("array value replaced",
		zap.String("path", c.path),
		zap.Int("len", len(c.items)))
	c.emit()
}

// SelectEnum maps a submitted option subset to the value sequence in the
// schema's enum declaration order. Options not present in the enum are
// dropped; duplicates are impossible by construction.
func (c *Controller) SelectEnum(selected []string) {
	item, ok := c.node.ItemSchema()
	if !ok {
		return
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, option := range selected {
		chosen[option] = struct{}{}
	}
	next := make([]any, 0, len(selected))
	for _, candidate := range item.Enum {
		key := fmt.Sprintf("%v", candidate)
		if _, ok := chosen[key]; ok {
			next = append(next, candidate)
		}
	}
	c.ReplaceAll(next)
}

// AttachFiles reads every file into a data-URL string and appends the
// results to the value in file-list order. Reads run concurrently but each
// lands in its slot by original index, so ordering is deterministic.
func (c *Controller) AttachFiles(ctx context.Context, files []dataurl.File) error {
	encoded, err := dataurl.ReadAll(ctx, files)
	if err != nil {
		return fmt.Errorf("field: attach files: %w", err)
	}
	next := c.Value()
	for _, entry := range encoded {
		next = append(next, entry)
	}
	c.ReplaceAll(next)
	return nil
}

// placeholder picks the type-appropriate default for a freshly added entry:
// the resolved item schema's default when declared, nil otherwise.
func (c *Controller) placeholder() any {
	switch c.mode {
	case ModeTuple:
		if c.node.AdditionalItems != nil {
			return c.node.AdditionalItems.Default
		}
		return nil
	default:
		if item, ok := c.node.ItemSchema(); ok {
			return item.Default
		}
		return nil
	}
}

// canAppend reports whether the current mode renders an add control. Tuple
// mode only grows when an additionalItems schema types the overflow.
func (c *Controller) canAppend() bool {
	switch c.mode {
	case ModeList:
		_, ok := c.node.ItemSchema()
		return ok
	case ModeTuple:
		return c.node.AdditionalItems != nil
	default:
		return false
	}
}

func (c *Controller) revalidate() {
	validator := c.caps.Validator
	if validator == nil {
		validator = validation.NewSchemaValidator()
	}
	outside := make(validation.Issues)
	for path, messages := range c.issues {
		if fieldid.HasPrefix(path, c.path) {
			continue
		}
		for _, message := range messages {
			outside.Add(path, message)
		}
	}
	fresh := validator.Validate(context.Background(), c.node, c.path, c.items)
	c.issues = outside.Merge(fresh)
}

func (c *Controller) emit() {
	if c.caps.OnChange == nil {
		return
	}
	c.caps.OnChange(c.Value())
}
