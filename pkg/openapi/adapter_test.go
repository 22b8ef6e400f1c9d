package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-arrayfield/pkg/openapi"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

const articleDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Articles", "version": "1.0.0"},
  "paths": {
    "/articles": {
      "post": {
        "operationId": "createArticle",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "title": {"type": "string"},
                  "tags": {
                    "type": "array",
                    "title": "Tags",
                    "uniqueItems": true,
                    "minItems": 1,
                    "items": {
                      "type": "string",
                      "enum": ["go", "web", "forms"]
                    }
                  }
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestArraySchemaExtractsRequestBodyProperty(t *testing.T) {
	node, err := openapi.ArraySchema(context.Background(), []byte(articleDoc), "createArticle", "tags")
	if err != nil {
		t.Fatalf("ArraySchema: %v", err)
	}

	if !node.IsArray() || node.Title != "Tags" || !node.UniqueItems {
		t.Fatalf("node = %+v", node)
	}
	if node.MinItems == nil || *node.MinItems != 1 {
		t.Fatalf("minItems = %v", node.MinItems)
	}
	item, ok := node.ItemSchema()
	if !ok {
		t.Fatal("item schema missing")
	}
	if item.Type != schema.TypeString || len(item.Enum) != 3 {
		t.Fatalf("item = %+v", item)
	}
	if item.Enum[0] != "go" || item.Enum[2] != "forms" {
		t.Fatalf("enum order changed: %v", item.Enum)
	}
}

func TestArraySchemaErrors(t *testing.T) {
	cases := []struct {
		name      string
		operation string
		property  string
		wantIn    string
	}{
		{"unknown operation", "deleteArticle", "tags", "not found"},
		{"unknown property", "createArticle", "categories", "no property"},
		{"non-array property", "createArticle", "title", "want array"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := openapi.ArraySchema(context.Background(), []byte(articleDoc), tc.operation, tc.property)
			if err == nil || !strings.Contains(err.Error(), tc.wantIn) {
				t.Fatalf("err = %v, want message containing %q", err, tc.wantIn)
			}
		})
	}
}

func TestArraySchemaEmptyPayload(t *testing.T) {
	if _, err := openapi.ArraySchema(context.Background(), nil, "op", "prop"); err == nil {
		t.Fatal("expected an error for an empty payload")
	}
}

func TestConvertNil(t *testing.T) {
	node := openapi.Convert(nil)
	if node.Type != "" || node.Items != nil {
		t.Fatalf("Convert(nil) = %+v", node)
	}
}
