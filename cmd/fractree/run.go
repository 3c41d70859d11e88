package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/fractree/internal/config"
	"github.com/Faultbox/fractree/internal/logger"
	"github.com/Faultbox/fractree/internal/preview"
	"github.com/Faultbox/fractree/pkg/formats"
	"github.com/Faultbox/fractree/pkg/fractal"
	"github.com/Faultbox/fractree/pkg/math"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// runResult is one finished generation.
type runResult struct {
	ID      string
	Seed    uint64
	Result  *fractal.Result
	Stats   fractal.Stats
	Elapsed time.Duration
}

// outputSet selects which files writeOutputs produces.
type outputSet uint8

const (
	outputOBJ outputSet = 1 << iota
	outputTree
	outputPreview

	outputsAll = outputOBJ | outputTree | outputPreview
)

type outputFile struct {
	Path string
	Size int64
}

// generate grows a tree from cfg and applies the skin radii.
func generate(cfg *config.Config) (*runResult, error) {
	run := &runResult{
		ID:   uuid.NewString(),
		Seed: cfg.Tree.Seed,
	}
	if run.Seed == 0 {
		run.Seed = rand.Uint64()
	}
	log := logger.ForRun(run.ID)

	start := time.Now()
	res, err := fractal.Generate(skeleton.NewBuilder(cfg.Tree.MaxVertices), fractal.NewRandom(run.Seed), cfg.Params())
	if err != nil {
		log.Error("generation failed", zap.Uint64("seed", run.Seed), zap.Error(err))
		return nil, err
	}
	if err := fractal.ApplySkin(res.Tree, res.Skeleton, cfg.Skin.Radius, cfg.Skin.ReduceRadius); err != nil {
		return nil, err
	}
	run.Elapsed = time.Since(start)
	run.Result = res
	run.Stats = res.Tree.Stats()

	log.Info("tree generated",
		zap.Uint64("seed", run.Seed),
		zap.Int("vertices", res.Skeleton.VertexCount()),
		zap.Int("branches", run.Stats.Nodes),
		zap.Int("depth", run.Stats.MaxDepth),
		zap.Duration("elapsed", run.Elapsed),
	)
	return run, nil
}

// writeOutputs writes the selected files that have a configured path.
func writeOutputs(cfg *config.Config, run *runResult, which outputSet) ([]outputFile, error) {
	log := logger.ForRun(run.ID)
	var written []outputFile

	write := func(path string, encode func(io.Writer) error) error {
		size, err := writeFile(path, encode)
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Debug("output written", zap.String("path", path), zap.Int64("bytes", size))
		written = append(written, outputFile{Path: path, Size: size})
		return nil
	}

	if which&outputOBJ != 0 && cfg.Output.OBJPath != "" {
		err := write(cfg.Output.OBJPath, func(w io.Writer) error {
			return formats.WriteOBJ(w, run.Result.Skeleton, cfg.Output.ObjectName)
		})
		if err != nil {
			return written, err
		}
	}

	if which&outputTree != 0 && cfg.Output.TreePath != "" {
		doc := formats.NewTreeDocument(run.Result.Tree, formats.TreeParams{
			Count:            cfg.Tree.Count,
			BendRange:        cfg.Tree.BendRange,
			SplitProbability: cfg.Tree.SplitProbability,
			Seed:             run.Seed,
			Radius:           cfg.Skin.Radius,
			ReduceRadius:     cfg.Skin.ReduceRadius,
		})
		err := write(cfg.Output.TreePath, func(w io.Writer) error {
			return formats.WriteTreeYAML(w, doc)
		})
		if err != nil {
			return written, err
		}
	}

	if which&outputPreview != 0 && cfg.Output.PreviewPath != "" {
		opts, err := previewOptions(cfg.Preview)
		if err != nil {
			return written, err
		}
		err = write(cfg.Output.PreviewPath, func(w io.Writer) error {
			return preview.WritePNG(w, run.Result.Skeleton, opts)
		})
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func previewOptions(pc config.PreviewConfig) (preview.Options, error) {
	bg, err := preview.ParseColor(pc.Background)
	if err != nil {
		return preview.Options{}, err
	}
	stroke, err := preview.ParseColor(pc.Stroke)
	if err != nil {
		return preview.Options{}, err
	}
	return preview.Options{
		Width:      pc.Width,
		Height:     pc.Height,
		Yaw:        pc.Yaw,
		Pitch:      pc.Pitch,
		Margin:     pc.Margin,
		MinStroke:  pc.MinStroke,
		Background: bg,
		Stroke:     stroke,
	}, nil
}

// writeFile creates path and its parent directories and returns the number
// of bytes written.
func writeFile(path string, encode func(io.Writer) error) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: bufio.NewWriter(f)}
	if err := encode(cw); err != nil {
		f.Close()
		return 0, err
	}
	if err := cw.w.Flush(); err != nil {
		f.Close()
		return 0, err
	}
	return cw.n, f.Close()
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func totalLength(s *skeleton.Skeleton) float32 {
	var total float32
	for _, e := range s.Edges {
		total += s.Vertices[e[0]].Distance(s.Vertices[e[1]])
	}
	return total
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
