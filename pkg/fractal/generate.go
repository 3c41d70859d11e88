package fractal

import (
	"fmt"

	"github.com/Faultbox/fractree/pkg/skeleton"
)

// Result is a finished tree: the baked mesh and the branch structure over it.
type Result struct {
	Skeleton *skeleton.Skeleton
	Tree     *Tree
}

// Generate grows a complete tree into b and finalizes it.
//
// Parameters are validated before b is touched. Any builder failure aborts
// the run; the partially built mesh should then be discarded.
func Generate(b MeshBuilder, rng Random, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	edge := p.InitialEdge
	if edge.IsZero() {
		edge = randomUnitVector(rng)
	}

	start, err := b.NewVertex(edge)
	if err != nil {
		return nil, fmt.Errorf("creating start vertex: %w", err)
	}

	g := &Grower{
		Builder:          b,
		Rand:             rng,
		BendRange:        p.BendRange,
		SplitProbability: p.SplitProbability,
	}

	rootBranch, err := g.Branch(p.Count, start, edge)
	if err != nil {
		return nil, fmt.Errorf("root branch: %w", err)
	}

	nodeBranch := make([]skeleton.VertexID, 0, len(rootBranch)+1)
	nodeBranch = append(nodeBranch, start)
	nodeBranch = append(nodeBranch, rootBranch...)
	tree := NewTree(nodeBranch, p.Count)

	if err := g.Grow(tree, tree.Root(), rootBranch, p.Count, edge); err != nil {
		return nil, err
	}

	skel, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalizing mesh: %w", err)
	}

	return &Result{Skeleton: skel, Tree: tree}, nil
}
