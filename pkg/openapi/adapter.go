// Package openapi extracts array schemas from OpenAPI documents so array
// fields can be generated straight from an operation's request body.
package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-arrayfield/pkg/schema"
)

const jsonContentType = "application/json"

// ArraySchema loads an OpenAPI document and returns the named request-body
// property of the operation as an array schema node.
func ArraySchema(ctx context.Context, raw []byte, operationID, property string) (schema.Schema, error) {
	if len(raw) == 0 {
		return schema.Schema{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi: load document: %w", err)
	}

	operation, err := findOperation(spec, operationID)
	if err != nil {
		return schema.Schema{}, err
	}

	body := requestBodySchema(operation)
	if body == nil || body.Value == nil {
		return schema.Schema{}, fmt.Errorf("openapi: operation %q has no JSON request body", operationID)
	}

	propertyRef, ok := body.Value.Properties[property]
	if !ok {
		return schema.Schema{}, fmt.Errorf("openapi: operation %q has no property %q", operationID, property)
	}

	node := Convert(propertyRef)
	if !node.IsArray() {
		return schema.Schema{}, fmt.Errorf("openapi: property %q is %q, want array", property, node.Type)
	}
	return node, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if spec.Paths == nil {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if operation != nil && operation.OperationID == operationID {
				return operation, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.SchemaRef {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get(jsonContentType)
	if media == nil {
		return nil
	}
	return media.Schema
}

// Convert maps a kin-openapi schema into the node shape the array field
// consumes. OpenAPI items are always single-schema, so tuple form never
// appears on this path.
func Convert(ref *openapi3.SchemaRef) schema.Schema {
	if ref == nil || ref.Value == nil {
		return schema.Schema{}
	}
	src := ref.Value

	node := schema.Schema{
		Type:        firstType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		UniqueItems: src.UniqueItems,
		Pattern:     src.Pattern,
	}
	if len(src.Enum) > 0 {
		node.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Required) > 0 {
		node.Required = append([]string(nil), src.Required...)
	}
	if src.Items != nil {
		node.Items = schema.SingleItems(Convert(src.Items))
	}
	if len(src.Properties) > 0 {
		node.Properties = make(map[string]schema.Schema, len(src.Properties))
		for name, property := range src.Properties {
			node.Properties[name] = Convert(property)
		}
	}
	if src.MinItems != 0 {
		count := int(src.MinItems)
		node.MinItems = &count
	}
	if src.MaxItems != nil {
		count := int(*src.MaxItems)
		node.MaxItems = &count
	}
	if src.MinLength != 0 {
		count := int(src.MinLength)
		node.MinLength = &count
	}
	if src.MaxLength != nil {
		count := int(*src.MaxLength)
		node.MaxLength = &count
	}
	return node
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
