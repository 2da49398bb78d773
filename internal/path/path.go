// Package path addresses nodes within a value tree. A Path is an ordered
// sequence of steps, each either a mapping key or a sequence index, rooted
// at the whole document. Paths are plain data: they stay valid strings
// across edits but always re-resolve against the current tree, they are
// never cached pointers into it.
package path

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsonedit/internal/errors"
)

// RootLabel is the display token for the empty path.
const RootLabel = "root"

// Step is one traversal move: into a mapping by key, or into a sequence
// by index.
type Step struct {
	key     string
	index   int
	isIndex bool
}

// KeyStep builds a mapping-key step.
func KeyStep(key string) Step { return Step{key: key} }

// IndexStep builds a sequence-index step.
func IndexStep(i int) Step { return Step{index: i, isIndex: true} }

// IsIndex reports whether the step addresses a sequence element.
func (s Step) IsIndex() bool { return s.isIndex }

// Key returns the mapping key for key steps.
func (s Step) Key() string { return s.key }

// Index returns the element index for index steps.
func (s Step) Index() int { return s.index }

// Path is the route from the root to one node. The zero value addresses
// the root itself.
type Path []Step

// Root returns the empty path addressing the whole document.
func Root() Path { return nil }

// Child returns a copy of p extended by a mapping-key step. The copy is
// deliberate: paths built while recursing must not alias a shared backing
// array.
func (p Path) Child(key string) Path {
	return p.extend(KeyStep(key))
}

// Index returns a copy of p extended by a sequence-index step.
func (p Path) Index(i int) Path {
	return p.extend(IndexStep(i))
}

func (p Path) extend(s Step) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

// String renders the path in the form the editor displays: "root",
// extended by ".key" for mapping descent and "[i]" for sequence descent.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString(RootLabel)
	for _, s := range p {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		} else {
			b.WriteByte('.')
			b.WriteString(s.key)
		}
	}
	return b.String()
}

// Parse tokenizes the string form back into a structured path: the input
// is split on "." and on "[" (with the trailing "]" stripped from index
// tokens), and a leading "root" token is accepted and dropped. Index
// tokens must parse as non-negative integers. Keys containing "." or "["
// cannot survive this form; structured paths built with Child/Index are
// the canonical representation, Parse exists for paths arriving as text
// (the --set flag).
func Parse(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == RootLabel {
		return Root(), nil
	}
	rest := raw
	// Strip the "root" prefix only when a delimiter follows, so a bare
	// key that merely starts with "root" stays intact.
	if tail, ok := strings.CutPrefix(raw, RootLabel); ok && (tail[0] == '.' || tail[0] == '[') {
		rest = tail
	}

	var out Path
	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end == -1 {
				end = len(rest)
			}
			if end == 0 {
				return nil, errors.NewPathError("empty key segment in path "+strconv.Quote(raw), errors.ErrInvalidPath)
			}
			out = append(out, KeyStep(rest[:end]))
			rest = rest[end:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return nil, errors.NewPathError("unterminated index in path "+strconv.Quote(raw), errors.ErrInvalidPath)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil || idx < 0 {
				return nil, errors.NewPathError("invalid index "+strconv.Quote(rest[1:end])+" in path "+strconv.Quote(raw), errors.ErrInvalidPath)
			}
			out = append(out, IndexStep(idx))
			rest = rest[end+1:]
		default:
			// A bare leading segment without the "root" prefix,
			// e.g. "a.b" instead of "root.a.b".
			end := strings.IndexAny(rest, ".[")
			if end == -1 {
				end = len(rest)
			}
			out = append(out, KeyStep(rest[:end]))
			rest = rest[end:]
		}
	}
	return out, nil
}

// Equal reports whether two paths address the same traversal route.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i, s := range p {
		if s != other[i] {
			return false
		}
	}
	return true
}
