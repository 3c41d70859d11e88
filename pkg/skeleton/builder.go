package skeleton

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fractree/pkg/math"
)

// Builder errors.
var (
	ErrVertexLimit = errors.New("vertex limit reached")
	ErrFinalized   = errors.New("builder already finalized")
)

// Builder accumulates vertices and edges while a skeleton is grown.
// It is not safe for concurrent use.
type Builder struct {
	positions   []math.Vec3
	edges       []Edge
	maxVertices int
	finalized   bool
}

// NewBuilder creates an empty builder. maxVertices caps the number of
// vertices it will create; 0 means no limit.
func NewBuilder(maxVertices int) *Builder {
	return &Builder{maxVertices: maxVertices}
}

// Len returns the number of vertices created so far.
func (b *Builder) Len() int {
	return len(b.positions)
}

// NewVertex creates an unconnected vertex at pos.
func (b *Builder) NewVertex(pos math.Vec3) (VertexID, error) {
	if err := b.checkWritable(); err != nil {
		return 0, err
	}
	if !pos.IsFinite() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	if b.maxVertices > 0 && len(b.positions) >= b.maxVertices {
		return 0, fmt.Errorf("%w (%d)", ErrVertexLimit, b.maxVertices)
	}
	b.positions = append(b.positions, pos)
	return VertexID(len(b.positions) - 1), nil
}

// ExtrudePoint creates a new vertex coincident with v and connects the two
// with an edge.
func (b *Builder) ExtrudePoint(v VertexID) (VertexID, error) {
	pos, err := b.Position(v)
	if err != nil {
		return 0, fmt.Errorf("extruding: %w", err)
	}
	id, err := b.NewVertex(pos)
	if err != nil {
		return 0, fmt.Errorf("extruding vertex %d: %w", v, err)
	}
	b.edges = append(b.edges, Edge{v, id})
	return id, nil
}

// Position returns the current position of v.
func (b *Builder) Position(v VertexID) (math.Vec3, error) {
	if int(v) >= len(b.positions) {
		return math.Vec3{}, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	return b.positions[v], nil
}

// SetPosition moves v to pos.
func (b *Builder) SetPosition(v VertexID, pos math.Vec3) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if int(v) >= len(b.positions) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	if !pos.IsFinite() {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	b.positions[v] = pos
	return nil
}

// Finalize bakes the accumulated graph into a Skeleton. The builder cannot
// be modified afterwards.
func (b *Builder) Finalize() (*Skeleton, error) {
	if err := b.checkWritable(); err != nil {
		return nil, err
	}
	b.finalized = true
	return New(b.positions, b.edges)
}

func (b *Builder) checkWritable() error {
	if b.finalized {
		return ErrFinalized
	}
	return nil
}
