package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags are the command-line overrides shared by the generator commands.
// Only flags that were set on the command line override file values.
type Flags struct {
	fs *flag.FlagSet

	config      *string
	debug       *bool
	count       *int
	bend        *float64
	split       *float64
	seed        *uint64
	maxVertices *int
	edge        *string
	radius      *float64
	reduce      *bool
	obj         *string
	tree        *string
	png         *string
	width       *int
	height      *int
	yaw         *float64
	pitch       *float64
	logFile     *string
}

// NewFlags binds the override flags to fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:          fs,
		config:      fs.String("config", "", "Path to config file"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		count:       fs.Int("count", 0, "Vertices in the root branch"),
		bend:        fs.Float64("bend", 0, "Random bend range in degrees"),
		split:       fs.Float64("split", 0, "Branch split probability (0-1)"),
		seed:        fs.Uint64("seed", 0, "Random seed (0 = random)"),
		maxVertices: fs.Int("max-vertices", 0, "Abort when the mesh exceeds this many vertices (0 = unlimited)"),
		edge:        fs.String("edge", "", "Initial edge as x,y,z (empty = random direction)"),
		radius:      fs.Float64("radius", 0, "Initial skin radius"),
		reduce:      fs.Bool("reduce", false, "Halve the skin radius at every branch level"),
		obj:         fs.String("o", "", "OBJ output path"),
		tree:        fs.String("tree", "", "Tree YAML output path"),
		png:         fs.String("png", "", "PNG preview output path"),
		width:       fs.Int("width", 0, "Preview width in pixels"),
		height:      fs.Int("height", 0, "Preview height in pixels"),
		yaw:         fs.Float64("yaw", 0, "Preview yaw in degrees"),
		pitch:       fs.Float64("pitch", 0, "Preview pitch in degrees"),
		logFile:     fs.String("log-file", "", "Write JSON logs to this file"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply copies every explicitly set flag into cfg.
func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}

	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "count":
			cfg.Tree.Count = *f.count
		case "bend":
			cfg.Tree.BendRange = float32(*f.bend)
		case "split":
			cfg.Tree.SplitProbability = *f.split
		case "seed":
			cfg.Tree.Seed = *f.seed
		case "max-vertices":
			cfg.Tree.MaxVertices = *f.maxVertices
		case "edge":
			edge, perr := parseEdge(*f.edge)
			if perr != nil {
				err = perr
				return
			}
			cfg.Tree.InitialEdge = edge
		case "radius":
			cfg.Skin.Radius = float32(*f.radius)
		case "reduce":
			cfg.Skin.ReduceRadius = *f.reduce
		case "o":
			cfg.Output.OBJPath = *f.obj
		case "tree":
			cfg.Output.TreePath = *f.tree
		case "png":
			cfg.Output.PreviewPath = *f.png
		case "width":
			cfg.Preview.Width = *f.width
		case "height":
			cfg.Preview.Height = *f.height
		case "yaw":
			cfg.Preview.Yaw = float32(*f.yaw)
		case "pitch":
			cfg.Preview.Pitch = float32(*f.pitch)
		case "log-file":
			cfg.Logging.LogFile = *f.logFile
		}
	})
	return err
}

// parseEdge reads "x,y,z". An empty string clears the edge.
func parseEdge(s string) ([]float32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("-edge %q: expected x,y,z", s)
	}
	edge := make([]float32, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("-edge %q: %w", s, err)
		}
		edge[i] = float32(v)
	}
	return edge, nil
}
