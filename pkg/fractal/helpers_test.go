package fractal

import (
	"testing"

	"github.com/Faultbox/fractree/pkg/math"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// scriptedRandom replays a fixed sequence of values.
type scriptedRandom struct {
	t      *testing.T
	values []float64
	pos    int
}

func newScripted(t *testing.T, values ...float64) *scriptedRandom {
	return &scriptedRandom{t: t, values: values}
}

func (r *scriptedRandom) Float64() float64 {
	if r.pos >= len(r.values) {
		r.t.Fatalf("scripted random exhausted after %d draws", r.pos)
	}
	v := r.values[r.pos]
	r.pos++
	return v
}

func (r *scriptedRandom) remaining() int {
	return len(r.values) - r.pos
}

// constRandom always returns the same value.
type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

// repeat returns n copies of v.
func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func mustPosition(t *testing.T, b *skeleton.Builder, id skeleton.VertexID) math.Vec3 {
	t.Helper()
	pos, err := b.Position(id)
	if err != nil {
		t.Fatalf("Position(%d): %v", id, err)
	}
	return pos
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
