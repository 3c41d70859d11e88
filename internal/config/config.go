// Package config handles fractree configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/fractree/pkg/fractal"
	"github.com/Faultbox/fractree/pkg/math"
)

// Config holds all generator settings.
type Config struct {
	Tree    TreeConfig    `yaml:"tree"`
	Skin    SkinConfig    `yaml:"skin"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// TreeConfig holds the growth parameters.
type TreeConfig struct {
	Count            int       `yaml:"count"`             // Vertices in the root branch
	BendRange        float32   `yaml:"bend_range"`        // Degrees, centered on zero
	SplitProbability float64   `yaml:"split_probability"` // Chance of a sub-branch per vertex
	Seed             uint64    `yaml:"seed"`              // 0 picks a random seed
	MaxVertices      int       `yaml:"max_vertices"`      // 0 means unlimited
	InitialEdge      []float32 `yaml:"initial_edge,flow,omitempty"`
}

// SkinConfig holds the skin radius settings.
type SkinConfig struct {
	Radius       float32 `yaml:"radius"`
	ReduceRadius bool    `yaml:"reduce_radius"` // Halve the radius at every branch level
}

// OutputConfig holds output file paths. Empty optional paths are skipped.
type OutputConfig struct {
	OBJPath     string `yaml:"obj_path"`
	ObjectName  string `yaml:"object_name"`
	TreePath    string `yaml:"tree_path"`
	PreviewPath string `yaml:"preview_path"`
}

// PreviewConfig holds PNG preview settings.
type PreviewConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Yaw        float32 `yaml:"yaw"`   // Degrees around the up axis
	Pitch      float32 `yaml:"pitch"` // Degrees above the horizon
	Margin     float32 `yaml:"margin"`
	MinStroke  float32 `yaml:"min_stroke"` // Pixels
	Background string  `yaml:"background"`
	Stroke     string  `yaml:"stroke"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tree: TreeConfig{
			Count:            20,
			BendRange:        60,
			SplitProbability: 0.5,
			Seed:             0,
			MaxVertices:      2_000_000,
		},
		Skin: SkinConfig{
			Radius:       0.15,
			ReduceRadius: false,
		},
		Output: OutputConfig{
			OBJPath:    "fractal_tree.obj",
			ObjectName: "FractalTree",
		},
		Preview: PreviewConfig{
			Width:      1024,
			Height:     1024,
			Yaw:        30,
			Pitch:      15,
			Margin:     0.05,
			MinStroke:  1,
			Background: "#f4f1ea",
			Stroke:     "#4a3525",
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the tree settings to generation parameters. An empty
// initial edge leaves the direction to the generator.
func (c *Config) Params() fractal.Params {
	p := fractal.Params{
		Count:            c.Tree.Count,
		BendRange:        c.Tree.BendRange,
		SplitProbability: c.Tree.SplitProbability,
	}
	if e := c.Tree.InitialEdge; len(e) == 3 {
		p.InitialEdge = math.Vec3{X: e[0], Y: e[1], Z: e[2]}
	}
	return p
}
