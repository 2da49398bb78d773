// Package render walks a value tree and produces an ordered list of
// fields for a UI toolkit to draw. It is the shape-dispatch half of the
// editor: every node becomes exactly one field whose kind is decided by
// an exhaustive switch over the node's shape. The walk never mutates
// state; edits flow back through the form as (value, path) events.
package render

import (
	"strconv"

	"github.com/iancoleman/strcase"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/mcncl/jsonedit/internal/models"
	"github.com/mcncl/jsonedit/internal/path"
)

// FieldKind selects the control a field is drawn with.
type FieldKind int

const (
	// TextField is a single-line text control for string leaves.
	TextField FieldKind = iota
	// NumberField is a numeric text control; unparseable edits coerce
	// to 0 at the form layer.
	NumberField
	// ToggleField is a boolean toggle.
	ToggleField
	// ListHeader labels a sequence; its elements follow as indexed
	// child fields.
	ListHeader
	// SectionHeader labels a collapsible mapping section.
	SectionHeader
	// Placeholder marks an unsupported shape (null); it is inert and
	// carries no edit callback.
	Placeholder
)

// String returns the kind's name.
func (k FieldKind) String() string {
	switch k {
	case TextField:
		return "text"
	case NumberField:
		return "number"
	case ToggleField:
		return "toggle"
	case ListHeader:
		return "list"
	case SectionHeader:
		return "section"
	default:
		return "placeholder"
	}
}

// Field is one renderable row of the form.
type Field struct {
	Path  path.Path
	Kind  FieldKind
	Value *models.Value
	// Label is what the row is titled with: the full path for
	// containers, the final key or [index] for leaves.
	Label string
	// Depth is the nesting level, used for indentation.
	Depth int
	// Index is the element position when the field sits directly inside
	// a sequence, -1 otherwise.
	Index int
	// Collapsed is set on section headers whose children were skipped.
	Collapsed bool
	// Editable is true only for the three scalar field kinds.
	Editable bool
}

// Preview returns a short display form of the field's current value,
// truncated to width columns for the field list.
func (f Field) Preview(width int) string {
	var s string
	switch f.Kind {
	case TextField:
		s = f.Value.Str()
	case NumberField:
		s = f.Value.Num().String()
	case ToggleField:
		s = strconv.FormatBool(f.Value.Bool())
	case ListHeader:
		return "(" + strconv.Itoa(f.Value.Len()) + " items)"
	case SectionHeader:
		return "(" + strconv.Itoa(f.Value.Len()) + " keys)"
	default:
		return "(unsupported)"
	}
	if width > 0 {
		s = runewidth.Truncate(s, width, "…")
	}
	return s
}

// Options adjusts the walk's presentation output.
type Options struct {
	// Collapsed holds section paths (by string form) whose children are
	// skipped.
	Collapsed map[string]bool
	// HumanizeLabels renders leaf keys as spaced words.
	HumanizeLabels bool
}

// Walk flattens the tree into fields in document order. Dispatch is by
// the node's shape: string, number and boolean become editable leaf
// fields; a sequence contributes a list header followed by its elements
// in index order; a mapping contributes a collapsible section header
// followed by its entries in display key order; anything else becomes an
// inert placeholder.
func Walk(root *models.Value, opts Options) []Field {
	var out []Field
	walk(root, path.Root(), 0, -1, opts, &out)
	return out
}

func walk(v *models.Value, p path.Path, depth, index int, opts Options, out *[]Field) {
	switch v.Kind() {
	case models.String:
		*out = append(*out, leaf(v, p, TextField, depth, index, opts))
	case models.Number:
		*out = append(*out, leaf(v, p, NumberField, depth, index, opts))
	case models.Boolean:
		*out = append(*out, leaf(v, p, ToggleField, depth, index, opts))
	case models.Sequence:
		*out = append(*out, Field{
			Path:  p,
			Kind:  ListHeader,
			Value: v,
			Label: p.String(),
			Depth: depth,
			Index: index,
		})
		for i := 0; i < v.Len(); i++ {
			walk(v.At(i), p.Index(i), depth+1, i, opts, out)
		}
	case models.Mapping:
		collapsed := opts.Collapsed[p.String()]
		*out = append(*out, Field{
			Path:      p,
			Kind:      SectionHeader,
			Value:     v,
			Label:     p.String(),
			Depth:     depth,
			Index:     index,
			Collapsed: collapsed,
		})
		if collapsed {
			return
		}
		for _, key := range v.Keys() {
			walk(v.Key(key), p.Child(key), depth+1, -1, opts, out)
		}
	default:
		// Unsupported shapes render as a visible placeholder with no
		// edit callback attached.
		*out = append(*out, Field{
			Path:  p,
			Kind:  Placeholder,
			Value: v,
			Label: leafLabel(p, opts),
			Depth: depth,
			Index: index,
		})
	}
}

func leaf(v *models.Value, p path.Path, kind FieldKind, depth, index int, opts Options) Field {
	return Field{
		Path:     p,
		Kind:     kind,
		Value:    v,
		Label:    leafLabel(p, opts),
		Depth:    depth,
		Index:    index,
		Editable: true,
	}
}

// leafLabel titles a leaf with its final path segment.
func leafLabel(p path.Path, opts Options) string {
	if len(p) == 0 {
		return path.RootLabel
	}
	last := p[len(p)-1]
	if last.IsIndex() {
		return "[" + strconv.Itoa(last.Index()) + "]"
	}
	if opts.HumanizeLabels {
		return strcase.ToDelimited(last.Key(), ' ')
	}
	return last.Key()
}

// CollapseBelow returns the set of section paths nested deeper than the
// given depth, for seeding Options.Collapsed when a document loads.
// A depth below 1 collapses nothing.
func CollapseBelow(root *models.Value, depth int) map[string]bool {
	out := make(map[string]bool)
	if depth < 1 {
		return out
	}
	for _, f := range Walk(root, Options{}) {
		if f.Kind == SectionHeader && f.Depth >= depth {
			out[f.Path.String()] = true
		}
	}
	return out
}
