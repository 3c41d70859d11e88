package skeleton

import (
	"errors"
	"testing"

	"github.com/Faultbox/fractree/pkg/math"
)

func TestNewRejectsDanglingEdge(t *testing.T) {
	_, err := New([]math.Vec3{{}, {X: 1}}, []Edge{{0, 2}})
	if !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("expected ErrUnknownVertex, got %v", err)
	}
}

func TestResizeSkin(t *testing.T) {
	s, err := New([]math.Vec3{{}, {X: 1}, {X: 2}}, []Edge{{0, 1}, {1, 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i, r := range s.Radii {
		if r != DefaultRadius {
			t.Errorf("radius[%d] = %v, want default %v", i, r, DefaultRadius)
		}
	}

	if err := s.ResizeSkin([]VertexID{0, 1, 2}, 0.5); err != nil {
		t.Fatalf("ResizeSkin: %v", err)
	}
	if err := s.ResizeSkin([]VertexID{2}, 0.5); err != nil {
		t.Fatalf("ResizeSkin: %v", err)
	}

	want := []float32{0.5, 0.5, 0.25}
	for i, w := range want {
		got, err := s.Radius(VertexID(i))
		if err != nil {
			t.Fatalf("Radius(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("radius[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestResizeSkinIsAtomic(t *testing.T) {
	s, _ := New([]math.Vec3{{}, {X: 1}}, []Edge{{0, 1}})

	err := s.ResizeSkin([]VertexID{0, 9}, 0.5)
	if !errors.Is(err, ErrUnknownVertex) {
		t.Fatalf("expected ErrUnknownVertex, got %v", err)
	}
	if s.Radii[0] != DefaultRadius {
		t.Errorf("radius[0] changed to %v after failed resize", s.Radii[0])
	}

	if err := s.ResizeSkin([]VertexID{0}, 0); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius for zero factor, got %v", err)
	}
}

func TestBoundsHelpers(t *testing.T) {
	b := Bounds{Min: math.Vec3{X: -1, Y: 0, Z: 2}, Max: math.Vec3{X: 3, Y: 4, Z: 2}}
	if got, want := b.Size(), (math.Vec3{X: 4, Y: 4, Z: 0}); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
	if got, want := b.Center(), (math.Vec3{X: 1, Y: 2, Z: 2}); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}
}
