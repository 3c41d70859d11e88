package skeleton

import (
	"errors"
	"testing"

	"github.com/Faultbox/fractree/pkg/math"
)

func TestBuilderSequentialIDs(t *testing.T) {
	b := NewBuilder(0)

	root, err := b.NewVertex(math.Vec3{X: 1})
	if err != nil {
		t.Fatalf("NewVertex: %v", err)
	}
	if root != 0 {
		t.Errorf("first vertex id = %d, want 0", root)
	}

	prev := root
	for i := 1; i <= 3; i++ {
		id, err := b.ExtrudePoint(prev)
		if err != nil {
			t.Fatalf("ExtrudePoint(%d): %v", prev, err)
		}
		if int(id) != i {
			t.Errorf("extruded id = %d, want %d", id, i)
		}
		prev = id
	}

	if b.Len() != 4 {
		t.Errorf("Len() = %d, want 4", b.Len())
	}
}

func TestBuilderExtrudeIsCoincident(t *testing.T) {
	b := NewBuilder(0)
	root, _ := b.NewVertex(math.Vec3{X: 1, Y: 2, Z: 3})

	id, err := b.ExtrudePoint(root)
	if err != nil {
		t.Fatalf("ExtrudePoint: %v", err)
	}

	pos, err := b.Position(id)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if pos != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("extruded position = %v, want (1, 2, 3)", pos)
	}
}

func TestBuilderErrors(t *testing.T) {
	zero := float32(0)

	tests := []struct {
		name    string
		run     func(b *Builder) error
		wantErr error
	}{
		{
			name: "extrude unknown vertex",
			run: func(b *Builder) error {
				_, err := b.ExtrudePoint(42)
				return err
			},
			wantErr: ErrUnknownVertex,
		},
		{
			name: "set unknown vertex",
			run: func(b *Builder) error {
				return b.SetPosition(7, math.Vec3{})
			},
			wantErr: ErrUnknownVertex,
		},
		{
			name: "non-finite position",
			run: func(b *Builder) error {
				_, err := b.NewVertex(math.Vec3{X: zero / zero})
				return err
			},
			wantErr: ErrInvalidPosition,
		},
		{
			name: "vertex limit",
			run: func(b *Builder) error {
				b.maxVertices = 2
				root, err := b.NewVertex(math.Vec3{})
				if err != nil {
					return err
				}
				if _, err := b.ExtrudePoint(root); err != nil {
					return err
				}
				_, err = b.ExtrudePoint(root)
				return err
			},
			wantErr: ErrVertexLimit,
		},
		{
			name: "write after finalize",
			run: func(b *Builder) error {
				if _, err := b.Finalize(); err != nil {
					return err
				}
				_, err := b.NewVertex(math.Vec3{})
				return err
			},
			wantErr: ErrFinalized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(NewBuilder(0))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuilderFinalize(t *testing.T) {
	b := NewBuilder(0)
	root, _ := b.NewVertex(math.Vec3{})
	a, _ := b.ExtrudePoint(root)
	if err := b.SetPosition(a, math.Vec3{X: 2, Y: -1}); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	c, _ := b.ExtrudePoint(root)
	if err := b.SetPosition(c, math.Vec3{Z: 4}); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}

	s, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if s.VertexCount() != 3 {
		t.Errorf("VertexCount() = %d, want 3", s.VertexCount())
	}
	if s.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", s.EdgeCount())
	}
	if s.Edges[0] != (Edge{root, a}) || s.Edges[1] != (Edge{root, c}) {
		t.Errorf("edges = %v, want [{0 1} {0 2}]", s.Edges)
	}

	wantMin := math.Vec3{X: 0, Y: -1, Z: 0}
	wantMax := math.Vec3{X: 2, Y: 0, Z: 4}
	if s.Bounds.Min != wantMin || s.Bounds.Max != wantMax {
		t.Errorf("bounds = %+v, want min %v max %v", s.Bounds, wantMin, wantMax)
	}
}
