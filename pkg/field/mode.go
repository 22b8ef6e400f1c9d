package field

import "github.com/goliatone/go-arrayfield/pkg/schema"

// Mode is the closed set of rendering strategies an array schema can select.
// It is resolved once per render from the schema shape, never re-inspected
// mid-render.
type Mode int

const (
	// ModeList renders one removable widget per value entry plus an add
	// control, reusing a single item schema.
	ModeList Mode = iota
	// ModeTuple renders one widget per fixed positional schema, plus
	// overflow widgets typed by additionalItems when the value is longer.
	ModeTuple
	// ModeMultiSelect renders a single multi-selection widget for enum
	// items with uniqueItems.
	ModeMultiSelect
	// ModeMultiFile renders a single multi-file picker for data-url string
	// items.
	ModeMultiFile
)

// String names the mode for logs.
func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeTuple:
		return "tuple"
	case ModeMultiSelect:
		return "multiselect"
	case ModeMultiFile:
		return "multifile"
	default:
		return "unknown"
	}
}

// ResolveMode picks the rendering mode for an array schema. The branches are
// mutually exclusive: file and enum shortcuts win over plain list rendering,
// tuple form wins over everything once items is a sequence. Schemas without
// items resolve to ModeList, which degrades to an empty render.
func ResolveMode(node schema.Schema) Mode {
	if _, ok := node.TupleSchemas(); ok {
		return ModeTuple
	}
	item, ok := node.ItemSchema()
	if !ok {
		return ModeList
	}
	if item.Type == schema.TypeString && item.Format == schema.FormatDataURL {
		return ModeMultiFile
	}
	if len(item.Enum) > 0 && node.UniqueItems {
		return ModeMultiSelect
	}
	return ModeList
}
