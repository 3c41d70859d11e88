package fractal

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"

	"github.com/Faultbox/fractree/pkg/math"
)

// ErrInvalidParams is wrapped by every parameter validation failure.
var ErrInvalidParams = errors.New("invalid generation parameters")

// Params are the immutable inputs of one generation run.
type Params struct {
	// Count is the number of vertices in the root branch.
	Count int
	// BendRange is the maximum random rotation per axis, in degrees,
	// centered on zero.
	BendRange float32
	// SplitProbability is the chance that a vertex sprouts a child branch.
	SplitProbability float64
	// InitialEdge is the first segment of the root branch. The starting
	// vertex is placed at InitialEdge, as if the branch came from the
	// origin. A zero vector picks a random unit direction.
	InitialEdge math.Vec3
}

// Validate reports every rule the parameters break.
func (p Params) Validate() error {
	var err error
	if p.Count < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: count %d must be at least 1", ErrInvalidParams, p.Count))
	}
	if !(p.BendRange >= 0) || gomath.IsInf(float64(p.BendRange), 0) {
		err = multierr.Append(err, fmt.Errorf("%w: bend range %v must be a finite value >= 0", ErrInvalidParams, p.BendRange))
	}
	if !(p.SplitProbability >= 0 && p.SplitProbability <= 1) {
		err = multierr.Append(err, fmt.Errorf("%w: split probability %v must be in [0, 1]", ErrInvalidParams, p.SplitProbability))
	}
	if !p.InitialEdge.IsFinite() {
		err = multierr.Append(err, fmt.Errorf("%w: initial edge %v is not finite", ErrInvalidParams, p.InitialEdge))
	}
	return err
}
