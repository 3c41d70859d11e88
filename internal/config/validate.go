package config

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/fractree/internal/preview"
)

// ErrInvalidConfig is wrapped by every config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Recommended ranges. Values outside them work but produce either very
// sparse or very large trees.
const (
	MinRecommendedCount  = 5
	MaxRecommendedCount  = 50
	MinRecommendedBend   = 5
	MaxRecommendedBend   = 120
	MinRecommendedRadius = 0.01
	MaxRecommendedRadius = 1.0

	maxPreviewSide = 16384
)

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var err error
	add := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if verr := c.Params().Validate(); verr != nil {
		for _, e := range multierr.Errors(verr) {
			err = multierr.Append(err, fmt.Errorf("%w: tree: %w", ErrInvalidConfig, e))
		}
	}
	if n := len(c.Tree.InitialEdge); n != 0 && n != 3 {
		add("tree.initial_edge has %d components, expected 3", n)
	}
	if c.Tree.MaxVertices < 0 {
		add("tree.max_vertices %d must not be negative", c.Tree.MaxVertices)
	}

	if !(c.Skin.Radius > 0) || gomath.IsInf(float64(c.Skin.Radius), 0) {
		add("skin.radius %v must be a positive number", c.Skin.Radius)
	}

	if c.Output.OBJPath == "" {
		add("output.obj_path is empty")
	}

	if c.Preview.Width <= 0 || c.Preview.Width > maxPreviewSide ||
		c.Preview.Height <= 0 || c.Preview.Height > maxPreviewSide {
		add("preview size %dx%d must be within 1..%d", c.Preview.Width, c.Preview.Height, maxPreviewSide)
	}
	if c.Preview.Margin < 0 || c.Preview.Margin >= 0.5 {
		add("preview.margin %v must be in [0, 0.5)", c.Preview.Margin)
	}
	if _, perr := preview.ParseColor(c.Preview.Background); perr != nil {
		add("preview.background: %v", perr)
	}
	if _, perr := preview.ParseColor(c.Preview.Stroke); perr != nil {
		add("preview.stroke: %v", perr)
	}

	if c.Watch.Debounce < 0 {
		add("watch.debounce %v must not be negative", c.Watch.Debounce)
	}

	if c.Logging.Level != "" {
		if _, perr := zapcore.ParseLevel(c.Logging.Level); perr != nil {
			add("logging.level %q is not a log level", c.Logging.Level)
		}
	}

	return err
}

// Advisories lists settings outside the recommended ranges.
func (c *Config) Advisories() []string {
	var out []string
	if c.Tree.Count < MinRecommendedCount || c.Tree.Count > MaxRecommendedCount {
		out = append(out, fmt.Sprintf("tree.count %d is outside the recommended range %d-%d",
			c.Tree.Count, MinRecommendedCount, MaxRecommendedCount))
	}
	if c.Tree.BendRange < MinRecommendedBend || c.Tree.BendRange > MaxRecommendedBend {
		out = append(out, fmt.Sprintf("tree.bend_range %v is outside the recommended range %d-%d",
			c.Tree.BendRange, MinRecommendedBend, MaxRecommendedBend))
	}
	if c.Skin.Radius < MinRecommendedRadius || c.Skin.Radius > MaxRecommendedRadius {
		out = append(out, fmt.Sprintf("skin.radius %v is outside the recommended range %v-%v",
			c.Skin.Radius, MinRecommendedRadius, MaxRecommendedRadius))
	}
	return out
}
