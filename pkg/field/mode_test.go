package field_test

import (
	"testing"

	"github.com/goliatone/go-arrayfield/pkg/field"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

func TestResolveMode(t *testing.T) {
	cases := []struct {
		name string
		node schema.Schema
		want field.Mode
	}{
		{
			name: "plain list",
			node: schema.Schema{
				Type:  schema.TypeArray,
				Items: schema.SingleItems(schema.Schema{Type: schema.TypeString}),
			},
			want: field.ModeList,
		},
		{
			name: "tuple",
			node: schema.Schema{
				Type: schema.TypeArray,
				Items: schema.TupleItems(
					schema.Schema{Type: schema.TypeString},
					schema.Schema{Type: schema.TypeInteger},
				),
			},
			want: field.ModeTuple,
		},
		{
			name: "multi select needs enum and uniqueItems",
			node: schema.Schema{
				Type:        schema.TypeArray,
				UniqueItems: true,
				Items: schema.SingleItems(schema.Schema{
					Type: schema.TypeString,
					Enum: []any{"red", "green"},
				}),
			},
			want: field.ModeMultiSelect,
		},
		{
			name: "enum without uniqueItems stays a list",
			node: schema.Schema{
				Type: schema.TypeArray,
				Items: schema.SingleItems(schema.Schema{
					Type: schema.TypeString,
					Enum: []any{"red", "green"},
				}),
			},
			want: field.ModeList,
		},
		{
			name: "multi file",
			node: schema.Schema{
				Type: schema.TypeArray,
				Items: schema.SingleItems(schema.Schema{
					Type:   schema.TypeString,
					Format: schema.FormatDataURL,
				}),
			},
			want: field.ModeMultiFile,
		},
		{
			name: "tuple wins over file format",
			node: schema.Schema{
				Type: schema.TypeArray,
				Items: schema.TupleItems(schema.Schema{
					Type:   schema.TypeString,
					Format: schema.FormatDataURL,
				}),
			},
			want: field.ModeTuple,
		},
		{
			name: "missing items degrades to list",
			node: schema.Schema{Type: schema.TypeArray},
			want: field.ModeList,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := field.ResolveMode(tc.node); got != tc.want {
				t.Fatalf("ResolveMode = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if field.ModeMultiSelect.String() != "multiselect" {
		t.Fatalf("String = %q", field.ModeMultiSelect.String())
	}
	if field.Mode(99).String() != "unknown" {
		t.Fatalf("String = %q", field.Mode(99).String())
	}
}
