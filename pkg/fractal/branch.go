package fractal

import (
	"fmt"

	"github.com/Faultbox/fractree/pkg/math"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// GenerateBranch extrudes a chain of count vertices from start.
//
// edge is the displacement that led to start. Each new vertex is first placed
// one edge further along, then rotated about the current tip by a random
// rotation within bendRange degrees per axis. The bent segment becomes the
// edge for the next step. The returned ids are in root-to-tip order and do
// not include start.
func GenerateBranch(b MeshBuilder, rng Random, count int, bendRange float32, start skeleton.VertexID, edge math.Vec3) ([]skeleton.VertexID, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: branch count %d", ErrInvalidParams, count)
	}
	if !(bendRange >= 0) {
		return nil, fmt.Errorf("%w: bend range %v", ErrInvalidParams, bendRange)
	}

	tipPos, err := b.Position(start)
	if err != nil {
		return nil, fmt.Errorf("branch start: %w", err)
	}

	branch := make([]skeleton.VertexID, 0, count)
	tip := start
	for i := 0; i < count; i++ {
		id, err := b.ExtrudePoint(tip)
		if err != nil {
			return nil, fmt.Errorf("branch step %d: %w", i, err)
		}

		next := tipPos.Add(edge)
		pos := math.RotateAround(next, tipPos, bendRotation(rng, bendRange))
		if err := b.SetPosition(id, pos); err != nil {
			return nil, fmt.Errorf("branch step %d: %w", i, err)
		}

		edge = pos.Sub(tipPos)
		tip, tipPos = id, pos
		branch = append(branch, id)
	}

	return branch, nil
}
