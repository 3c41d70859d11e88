package fractal

import (
	"fmt"

	"github.com/Faultbox/fractree/pkg/math"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// Grower holds what stays fixed while a tree grows.
type Grower struct {
	Builder          MeshBuilder
	Rand             Random
	BendRange        float32
	SplitProbability float64
}

// Branch extrudes a single branch. See GenerateBranch.
func (g *Grower) Branch(count int, start skeleton.VertexID, edge math.Vec3) ([]skeleton.VertexID, error) {
	return GenerateBranch(g.Builder, g.Rand, count, g.BendRange, start, edge)
}

// growFrame is one pending branch scan. count and edge are the values its
// children are generated with.
type growFrame struct {
	node   NodeID
	branch []skeleton.VertexID
	count  int
	edge   math.Vec3
	next   int
}

// Grow sprouts child branches along branch, which belongs to node parent and
// was generated with count vertices and incoming edge.
//
// Every vertex runs one split trial. A child gets count/2 vertices and half
// the edge, is added under parent, and is grown completely before the scan
// moves on to the next vertex. Branches generated with count 1 never split.
// The traversal uses an explicit stack, so call depth does not grow with the
// tree.
func (g *Grower) Grow(tree *Tree, parent NodeID, branch []skeleton.VertexID, count int, edge math.Vec3) error {
	if count < 1 {
		return fmt.Errorf("%w: grow count %d", ErrInvalidParams, count)
	}
	if count == 1 {
		return nil
	}

	stack := []growFrame{{node: parent, branch: branch, count: count / 2, edge: edge.Scale(0.5)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.branch) {
			stack = stack[:len(stack)-1]
			continue
		}

		v := top.branch[top.next]
		top.next++
		if !shouldSplit(g.Rand, g.SplitProbability) {
			continue
		}

		node, childCount, childEdge := top.node, top.count, top.edge
		child, err := g.Branch(childCount, v, childEdge)
		if err != nil {
			return fmt.Errorf("sprouting at vertex %d: %w", v, err)
		}
		id, err := tree.AddChild(node, child, childCount)
		if err != nil {
			return err
		}
		if childCount == 1 {
			continue
		}
		stack = append(stack, growFrame{
			node:   id,
			branch: child,
			count:  childCount / 2,
			edge:   childEdge.Scale(0.5),
		})
	}
	return nil
}
