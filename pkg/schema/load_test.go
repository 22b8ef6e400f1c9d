package schema_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-arrayfield/pkg/schema"
)

const arrayDoc = `{"type":"array","items":{"type":"string"}}`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(arrayDoc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := schema.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(doc.Raw()) != arrayDoc {
		t.Fatalf("payload = %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("location = %q, want %q", doc.Location(), path)
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/tags.json": {Data: []byte(arrayDoc)},
	}

	doc, err := schema.Load(context.Background(), schema.SourceFromFS("schemas/tags.json"), schema.WithFS(fsys))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(doc.Raw()) != arrayDoc {
		t.Fatalf("payload = %q", doc.Raw())
	}
}

func TestLoadFromFSRequiresFilesystem(t *testing.T) {
	if _, err := schema.Load(context.Background(), schema.SourceFromFS("tags.json")); err == nil {
		t.Fatal("expected an error without WithFS")
	}
}

func TestLoadFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(arrayDoc))
	}))
	defer server.Close()

	doc, err := schema.Load(context.Background(), schema.SourceFromURL(server.URL), schema.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(doc.Raw()) != arrayDoc {
		t.Fatalf("payload = %q", doc.Raw())
	}
}

func TestLoadFromURLRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := schema.Load(context.Background(), schema.SourceFromURL(server.URL)); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}
