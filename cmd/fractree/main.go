// fractree is a CLI for growing fractal tree skeletons and exporting them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/fractree/internal/config"
	"github.com/Faultbox/fractree/internal/logger"
	"github.com/Faultbox/fractree/internal/watch"
	"github.com/Faultbox/fractree/pkg/formats"
	"github.com/Faultbox/fractree/pkg/fractal"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "generate", "gen":
		err = cmdGenerate(args)
	case "preview":
		err = cmdPreview(args)
	case "info":
		err = cmdInfo(args)
	case "watch":
		err = cmdWatch(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fractree - fractal tree skeleton generator

Usage:
  fractree <command> [options]

Commands:
  generate [options]           Grow a tree and write OBJ (plus optional tree YAML and PNG)
  preview [options]            Grow a tree and write only the PNG preview
  info <file.obj|file.yaml>    Show skeleton or tree document statistics
  watch [options]              Regenerate whenever the config file changes
  config [-force] [path]       Write the default config (default ./fractree.yaml)

Common options:
  -config <path>    Config file (default ./fractree.yaml, then the user config dir)
  -count <n>        Vertices in the root branch
  -bend <deg>       Random bend range in degrees
  -split <p>        Branch split probability
  -seed <n>         Random seed (0 = random)
  -radius <r>       Initial skin radius
  -reduce           Halve the skin radius per branch level
  -o <path>         OBJ output path
  -tree <path>      Tree YAML output path
  -png <path>       PNG preview output path

Examples:
  fractree generate -count 24 -seed 7 -png tree.png
  fractree preview -yaw 90 -png side.png
  fractree info fractal_tree.obj
  fractree watch -config fractree.yaml`)
}

// setup parses flags, loads and validates config and starts logging. It
// returns the config file path, or "" when only defaults and flags apply.
func setup(name string, args []string) (*config.Config, *config.Flags, string, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.NewFlags(fs)
	fs.Parse(args)

	cfg, path, err := loadConfig(flags)
	if err != nil {
		return nil, nil, "", err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, "", err
	}
	if path != "" {
		logger.Debug("config loaded", zap.String("path", path))
	}
	warnAdvisories(cfg)
	return cfg, flags, path, nil
}

func loadConfig(flags *config.Flags) (*config.Config, string, error) {
	cfg, path, err := config.Load(flags)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func warnAdvisories(cfg *config.Config) {
	for _, adv := range cfg.Advisories() {
		logger.Warn(adv)
	}
}

func cmdGenerate(args []string) error {
	cfg, _, _, err := setup("generate", args)
	if err != nil {
		return err
	}

	run, err := generate(cfg)
	if err != nil {
		return err
	}
	written, err := writeOutputs(cfg, run, outputsAll)
	if err != nil {
		return err
	}
	printRun(run, written)
	return nil
}

func cmdPreview(args []string) error {
	cfg, _, _, err := setup("preview", args)
	if err != nil {
		return err
	}
	if cfg.Output.PreviewPath == "" {
		cfg.Output.PreviewPath = strings.TrimSuffix(cfg.Output.OBJPath, filepath.Ext(cfg.Output.OBJPath)) + ".png"
	}

	run, err := generate(cfg)
	if err != nil {
		return err
	}
	written, err := writeOutputs(cfg, run, outputPreview)
	if err != nil {
		return err
	}
	printRun(run, written)
	return nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fractree info <file.obj|file.yaml>")
		os.Exit(1)
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err := formats.ParseTreeYAML(f)
		if err != nil {
			return err
		}
		tree, err := doc.Tree()
		if err != nil {
			return err
		}
		printTreeInfo(path, doc, tree.Stats())
	default:
		obj, err := formats.ParseOBJ(f)
		if err != nil {
			return err
		}
		printSkeletonInfo(path, obj)
	}
	return nil
}

func cmdWatch(args []string) error {
	cfg, flags, path, err := setup("watch", args)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("watch needs a config file: pass -config or create ./" + config.FileName)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(cfg.Watch.Debounce, logger.Log, path)
	if err != nil {
		return err
	}
	defer w.Close()

	regenerate := func(cfg *config.Config) {
		run, err := generate(cfg)
		if err != nil {
			logger.Error("generation failed", zap.Error(err))
			return
		}
		written, err := writeOutputs(cfg, run, outputsAll)
		if err != nil {
			logger.Error("writing outputs failed", zap.Error(err))
			return
		}
		printRun(run, written)
	}

	regenerate(cfg)
	logger.Info("watching config", zap.String("path", path))

	return w.Run(ctx, func(string) {
		next, _, err := loadConfig(flags)
		if err != nil {
			logger.Error("config rejected, keeping previous output", zap.Error(err))
			return
		}
		warnAdvisories(next)
		regenerate(next)
	})
}

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite an existing file")
	user := fs.Bool("user", false, "Write to the user config directory instead")
	fs.Parse(args)

	cfg := config.Default()

	if *user {
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	path := config.FileName
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func printRun(run *runResult, written []outputFile) {
	s := run.Stats
	fmt.Printf("Run:       %s\n", run.ID)
	fmt.Printf("Seed:      %d\n", run.Seed)
	fmt.Printf("Vertices:  %s\n", humanize.Comma(int64(run.Result.Skeleton.VertexCount())))
	fmt.Printf("Edges:     %s\n", humanize.Comma(int64(run.Result.Skeleton.EdgeCount())))
	fmt.Printf("Branches:  %s (%s leaves, depth %d)\n",
		humanize.Comma(int64(s.Nodes)), humanize.Comma(int64(s.Leaves)), s.MaxDepth)
	fmt.Printf("Elapsed:   %s\n", run.Elapsed.Round(time.Microsecond))
	for _, f := range written {
		fmt.Printf("Wrote:     %s (%s)\n", f.Path, humanize.Bytes(uint64(f.Size)))
	}
}

func printSkeletonInfo(path string, obj *formats.OBJ) {
	s := obj.Skeleton
	size := s.Bounds.Size()

	fmt.Printf("File:      %s\n", path)
	if obj.Name != "" {
		fmt.Printf("Object:    %s\n", obj.Name)
	}
	fmt.Printf("Vertices:  %s\n", humanize.Comma(int64(s.VertexCount())))
	fmt.Printf("Edges:     %s\n", humanize.Comma(int64(s.EdgeCount())))
	fmt.Printf("Length:    %.3f\n", totalLength(s))
	fmt.Printf("Bounds:    min %s max %s\n", formatVec(s.Bounds.Min), formatVec(s.Bounds.Max))
	fmt.Printf("Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
}

func printTreeInfo(path string, doc *formats.TreeDocument, s fractal.Stats) {
	p := doc.Params
	fmt.Printf("File:      %s\n", path)
	fmt.Printf("Params:    count %d, bend %g, split %g, seed %d\n", p.Count, p.BendRange, p.SplitProbability, p.Seed)
	fmt.Printf("Skin:      radius %g, reduce %t\n", p.Radius, p.ReduceRadius)
	fmt.Printf("Branches:  %s (%s leaves, depth %d)\n",
		humanize.Comma(int64(s.Nodes)), humanize.Comma(int64(s.Leaves)), s.MaxDepth)
	fmt.Printf("Vertices:  %s\n", humanize.Comma(int64(s.Vertices)))
}
