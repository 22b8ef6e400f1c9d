package widgets

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-arrayfield/pkg/render/template/engine"
)

//go:embed templates
var templatesFS embed.FS

// TemplatesFS exposes the embedded default widget templates.
func TemplatesFS() fs.FS {
	return templatesFS
}

// DefaultEngine constructs a template engine over the embedded bundle.
func DefaultEngine() (*engine.Engine, error) {
	return engine.New(
		engine.WithFS(TemplatesFS()),
		engine.WithExtension(".tmpl"),
	)
}
