package fractal

import (
	"math/rand/v2"

	"github.com/Faultbox/fractree/pkg/math"
)

// pcgStream is mixed into the seed to pick the PCG stream.
const pcgStream = 0x9e3779b97f4a7c15

// Random produces uniform values in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// NewRandom returns a deterministic source for the given seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}

// bendRotation draws one angle per axis in [-bendRange/2, bendRange/2]
// degrees, in X, Y, Z order, and combines them into a single rotation.
func bendRotation(rng Random, bendRange float32) math.Quat {
	shift := bendRange / 2
	x := float32(rng.Float64())*bendRange - shift
	y := float32(rng.Float64())*bendRange - shift
	z := float32(rng.Float64())*bendRange - shift
	return math.EulerDegrees(x, y, z).Quat()
}

// shouldSplit runs the per-vertex Bernoulli trial.
func shouldSplit(rng Random, splitProbability float64) bool {
	return rng.Float64() < splitProbability
}

// randomUnitVector returns a random direction with components drawn from
// [-1, 1] before normalizing.
func randomUnitVector(rng Random) math.Vec3 {
	for range 16 {
		v := math.Vec3{
			X: float32(rng.Float64()*2 - 1),
			Y: float32(rng.Float64()*2 - 1),
			Z: float32(rng.Float64()*2 - 1),
		}
		if v.Length() > 1e-4 {
			return v.Normalize()
		}
	}
	return math.Vec3{Z: 1}
}
