package fractal

import (
	"fmt"
	"iter"

	"github.com/Faultbox/fractree/pkg/skeleton"
)

// SkinResizer scales the skin radius of a set of vertices.
// *skeleton.Skeleton implements it.
type SkinResizer interface {
	ResizeSkin(ids []skeleton.VertexID, factor float32) error
}

// SkinRadii yields (vertices, radius factor) pairs for the skin pass.
//
// When recursive is set, every node is yielded in pre-order with the root at
// radius and each level of children at half its parent's factor. Otherwise a
// single pair covers every vertex of the tree at radius.
func SkinRadii(t *Tree, radius float32, recursive bool) iter.Seq2[[]skeleton.VertexID, float32] {
	if !recursive {
		return func(yield func([]skeleton.VertexID, float32) bool) {
			var all []skeleton.VertexID
			for id := range t.Walk() {
				all = append(all, t.nodes[id].Branch...)
			}
			yield(all, radius)
		}
	}

	return func(yield func([]skeleton.VertexID, float32) bool) {
		for id := range t.Walk() {
			n := &t.nodes[id]
			if !yield(n.Branch, LevelRadius(radius, n.Depth, true)) {
				return
			}
		}
	}
}

// LevelRadius returns the skin factor of a node at depth. In recursive mode
// each level halves the factor of the level above; otherwise every node gets
// radius.
func LevelRadius(radius float32, depth int, recursive bool) float32 {
	if !recursive {
		return radius
	}
	for range depth {
		radius /= 2
	}
	return radius
}

// ApplySkin feeds every pair from SkinRadii to r, stopping at the first error.
func ApplySkin(t *Tree, r SkinResizer, radius float32, recursive bool) error {
	for ids, factor := range SkinRadii(t, radius, recursive) {
		if err := r.ResizeSkin(ids, factor); err != nil {
			return fmt.Errorf("resizing skin: %w", err)
		}
	}
	return nil
}
