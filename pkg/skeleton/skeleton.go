// Package skeleton holds vertex/edge skeleton meshes: the in-memory builder
// used while branches are extruded, and the finalized result with per-vertex
// skin radii.
package skeleton

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fractree/pkg/math"
)

// Skeleton errors.
var (
	ErrUnknownVertex   = errors.New("unknown vertex")
	ErrInvalidPosition = errors.New("invalid vertex position")
	ErrInvalidRadius   = errors.New("invalid skin radius")
)

// DefaultRadius is the skin radius every vertex starts with.
const DefaultRadius float32 = 1.0

// VertexID identifies a vertex. IDs are assigned sequentially from 0 and stay
// valid for the lifetime of the skeleton.
type VertexID uint32

// Edge connects two vertices.
type Edge [2]VertexID

// Bounds holds the axis-aligned bounding box of the skeleton.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Skeleton is a finalized vertex/edge graph.
type Skeleton struct {
	Vertices []math.Vec3
	Edges    []Edge
	Radii    []float32
	Bounds   Bounds
}

// New creates a skeleton from raw vertices and edges. Every edge must
// reference existing vertices. Radii start at DefaultRadius.
func New(vertices []math.Vec3, edges []Edge) (*Skeleton, error) {
	for i, v := range vertices {
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w: vertex %d is %v", ErrInvalidPosition, i, v)
		}
	}
	for i, e := range edges {
		for _, id := range e {
			if int(id) >= len(vertices) {
				return nil, fmt.Errorf("edge %d: %w %d", i, ErrUnknownVertex, id)
			}
		}
	}

	radii := make([]float32, len(vertices))
	for i := range radii {
		radii[i] = DefaultRadius
	}

	return &Skeleton{
		Vertices: vertices,
		Edges:    edges,
		Radii:    radii,
		Bounds:   computeBounds(vertices),
	}, nil
}

// VertexCount returns the number of vertices.
func (s *Skeleton) VertexCount() int {
	return len(s.Vertices)
}

// EdgeCount returns the number of edges.
func (s *Skeleton) EdgeCount() int {
	return len(s.Edges)
}

// Has reports whether id names a vertex of the skeleton.
func (s *Skeleton) Has(id VertexID) bool {
	return int(id) < len(s.Vertices)
}

// Radius returns the skin radius of a vertex.
func (s *Skeleton) Radius(id VertexID) (float32, error) {
	if !s.Has(id) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	return s.Radii[id], nil
}

// ResizeSkin scales the skin radius of the given vertices by factor.
// Either every vertex is resized or, on error, none is.
func (s *Skeleton) ResizeSkin(ids []VertexID, factor float32) error {
	if factor <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, factor)
	}
	for _, id := range ids {
		if !s.Has(id) {
			return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
		}
	}
	for _, id := range ids {
		s.Radii[id] *= factor
	}
	return nil
}

func computeBounds(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}
