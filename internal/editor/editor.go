// Package editor performs path-addressed reads and immutable updates on a
// value tree. Apply rebuilds only the spine from the root to the target;
// every sibling subtree off the path is reused by reference from the
// original tree, which is safe because values are never mutated in place.
package editor

import (
	"github.com/mcncl/jsonedit/internal/models"
	"github.com/mcncl/jsonedit/internal/path"
)

// Resolve walks the tree along the path and returns the addressed node.
// The second return is false when the path does not address a node in the
// current tree (missing key, out-of-range index, or descent into a leaf).
func Resolve(tree *models.Value, p path.Path) (*models.Value, bool) {
	cur := tree
	if cur == nil {
		return nil, false
	}
	for _, step := range p {
		switch {
		case step.IsIndex():
			if cur.Kind() != models.Sequence || step.Index() >= cur.Len() {
				return nil, false
			}
			cur = cur.At(step.Index())
		default:
			if cur.Kind() != models.Mapping || !cur.Contains(step.Key()) {
				return nil, false
			}
			cur = cur.Key(step.Key())
		}
	}
	return cur, true
}

// Apply returns a new tree identical to tree except that the node at p is
// replaced by newValue. Containers along the path are shallow-copied via
// WithKey/WithIndex; the original tree is never modified.
//
// Stale paths degrade rather than fail: a missing mapping key is created,
// an out-of-range index grows the sequence with null-filled gaps, and a
// step that descends into a node of the wrong shape replaces that node
// with a fresh container of the step's shape. An empty path replaces the
// whole document, which is also how editing a bare scalar root works.
func Apply(tree *models.Value, p path.Path, newValue *models.Value) *models.Value {
	if len(p) == 0 {
		return newValue
	}
	step := p[0]
	if step.IsIndex() {
		if tree.Kind() != models.Sequence {
			tree = models.NewSequence()
		}
		child := tree.At(step.Index())
		return tree.WithIndex(step.Index(), Apply(child, p[1:], newValue))
	}
	if tree.Kind() != models.Mapping {
		tree = models.NewMapping()
	}
	child := tree.Key(step.Key())
	return tree.WithKey(step.Key(), Apply(child, p[1:], newValue))
}
