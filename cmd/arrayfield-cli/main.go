package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	arrayfield "github.com/goliatone/go-arrayfield"
	"github.com/goliatone/go-arrayfield/pkg/openapi"
	"github.com/goliatone/go-arrayfield/pkg/renderers/tui"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

func main() {
	schemaSource := flag.String("schema", "", "schema document path or URL (JSON or YAML)")
	valuePath := flag.String("value", "", "initial value file, a JSON array (optional)")
	fieldPath := flag.String("path", "root", "path-qualified field identifier")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "edit the value interactively before rendering")
	operation := flag.String("operation", "", "treat the schema document as OpenAPI and extract this operation's request body")
	property := flag.String("property", "", "request body property holding the array (with -operation)")
	flag.Parse()

	ctx := context.Background()

	if *schemaSource == "" {
		log.Fatal("missing required -schema flag")
	}

	doc, err := schema.Load(ctx, parseSource(*schemaSource))
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	node, err := resolveSchema(ctx, doc, *operation, *property)
	if err != nil {
		log.Fatalf("Failed to resolve schema: %v", err)
	}

	items, err := loadValue(*valuePath)
	if err != nil {
		log.Fatalf("Failed to load value: %v", err)
	}

	ctrl, err := arrayfield.New(node, items, arrayfield.WithPath(*fieldPath))
	if err != nil {
		log.Fatalf("Failed to mount field: %v", err)
	}

	if *interactive {
		editor := tui.NewEditor(nil)
		if _, err := editor.Run(ctx, ctrl); err != nil {
			log.Fatalf("Edit session failed: %v", err)
		}
	}

	markup, err := ctrl.Render(ctx)
	if err != nil {
		log.Fatalf("Failed to render field: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(markup), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Field written to %s\n", *output)
	} else {
		fmt.Println(markup)
	}
}

func resolveSchema(ctx context.Context, doc schema.Document, operation, property string) (schema.Schema, error) {
	if operation != "" {
		if property == "" {
			return schema.Schema{}, fmt.Errorf("-operation requires -property")
		}
		return openapi.ArraySchema(ctx, doc.Raw(), operation, property)
	}
	return schema.Parse(doc.Raw())
}

func loadValue(path string) ([]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.ParseValue(raw)
}

func parseSource(raw string) schema.Source {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return schema.SourceFromURL(trimmed)
	}
	return schema.SourceFromFile(trimmed)
}
