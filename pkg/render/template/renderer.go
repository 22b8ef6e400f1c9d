// Package template defines the rendering seam between widgets and the
// underlying template engine, so widget implementations never depend on a
// concrete engine.
package template

import "io"

// TemplateRenderer is the engine contract widgets render through. Named
// templates resolve against the engine's template set; RenderString parses
// inline template content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
