package schema

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// Loader reads schema documents from the modality their Source names.
type Loader struct {
	client *http.Client
	fsys   fs.FS
}

// LoadOption configures a Loader.
type LoadOption func(*Loader)

// WithHTTPClient overrides the client used for URL sources.
func WithHTTPClient(client *http.Client) LoadOption {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithFS supplies the filesystem consulted for fs sources.
func WithFS(fsys fs.FS) LoadOption {
	return func(l *Loader) { l.fsys = fsys }
}

// NewLoader builds a loader with a 30s default HTTP timeout.
func NewLoader(opts ...LoadOption) *Loader {
	loader := &Loader{client: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		if opt != nil {
			opt(loader)
		}
	}
	return loader
}

// Load fetches the raw document the source points at.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, fmt.Errorf("schema: source is required")
	}
	switch src.Kind() {
	case SourceKindFile:
		raw, err := os.ReadFile(src.Location())
		if err != nil {
			return Document{}, fmt.Errorf("schema: read %q: %w", src.Location(), err)
		}
		return NewDocument(src, raw)
	case SourceKindFS:
		if l.fsys == nil {
			return Document{}, fmt.Errorf("schema: fs source %q requires WithFS", src.Location())
		}
		raw, err := fs.ReadFile(l.fsys, src.Location())
		if err != nil {
			return Document{}, fmt.Errorf("schema: read %q: %w", src.Location(), err)
		}
		return NewDocument(src, raw)
	case SourceKindURL:
		return l.fetch(ctx, src)
	default:
		return Document{}, fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) fetch(ctx context.Context, src Source) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Location(), nil)
	if err != nil {
		return Document{}, fmt.Errorf("schema: build request for %q: %w", src.Location(), err)
	}
	res, err := l.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("schema: fetch %q: %w", src.Location(), err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("schema: fetch %q: unexpected status %d", src.Location(), res.StatusCode)
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read body of %q: %w", src.Location(), err)
	}
	return NewDocument(src, raw)
}

// Load fetches a source with a default loader. Convenience for one-shot use.
func Load(ctx context.Context, src Source, opts ...LoadOption) (Document, error) {
	return NewLoader(opts...).Load(ctx, src)
}
