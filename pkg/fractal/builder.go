package fractal

import (
	"github.com/Faultbox/fractree/pkg/math"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// MeshBuilder materializes geometry while a tree grows. Any error it returns
// aborts the generation run. *skeleton.Builder implements it.
type MeshBuilder interface {
	// NewVertex creates an unconnected vertex.
	NewVertex(pos math.Vec3) (skeleton.VertexID, error)
	// ExtrudePoint creates a vertex coincident with v, connected to it.
	ExtrudePoint(v skeleton.VertexID) (skeleton.VertexID, error)
	Position(v skeleton.VertexID) (math.Vec3, error)
	SetPosition(v skeleton.VertexID, pos math.Vec3) error
	// Finalize bakes the vertex/edge graph.
	Finalize() (*skeleton.Skeleton, error)
}
