package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/fractree/internal/config"
	"github.com/Faultbox/fractree/pkg/formats"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Tree.Count = 10
	cfg.Tree.Seed = 1234
	cfg.Output.OBJPath = filepath.Join(dir, "tree.obj")
	cfg.Output.TreePath = filepath.Join(dir, "out", "tree.yaml")
	cfg.Output.PreviewPath = filepath.Join(dir, "tree.png")
	cfg.Preview.Width, cfg.Preview.Height = 64, 64
	return cfg
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := testConfig(t)

	a, err := generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if a.ID == b.ID {
		t.Error("each run should get its own id")
	}
	if a.Seed != 1234 || b.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d and %d", a.Seed, b.Seed)
	}
	if a.Stats != b.Stats {
		t.Errorf("same seed gave different trees: %+v vs %+v", a.Stats, b.Stats)
	}
	for i, v := range a.Result.Skeleton.Vertices {
		if v != b.Result.Skeleton.Vertices[i] {
			t.Fatalf("vertex %d differs: %v vs %v", i, v, b.Result.Skeleton.Vertices[i])
		}
	}
}

func TestGenerate_AppliesSkin(t *testing.T) {
	cfg := testConfig(t)
	cfg.Skin.Radius = 0.4

	run, err := generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for i, r := range run.Result.Skeleton.Radii {
		if r != 0.4*skeleton.DefaultRadius {
			t.Fatalf("vertex %d radius %v, expected uniform 0.4", i, r)
		}
	}
}

func TestGenerate_RandomSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tree.Seed = 0

	run, err := generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if run.Seed == 0 {
		t.Error("a random seed should have been picked")
	}
}

func TestGenerate_VertexLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tree.Count = 40
	cfg.Tree.SplitProbability = 1
	cfg.Tree.MaxVertices = 50

	if _, err := generate(cfg); err == nil {
		t.Error("expected the vertex limit to abort generation")
	}
}

func TestWriteOutputs(t *testing.T) {
	cfg := testConfig(t)
	run, err := generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	written, err := writeOutputs(cfg, run, outputsAll)
	if err != nil {
		t.Fatalf("writeOutputs failed: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 files, got %v", written)
	}
	for _, f := range written {
		info, err := os.Stat(f.Path)
		if err != nil {
			t.Fatalf("missing output %s: %v", f.Path, err)
		}
		if info.Size() != f.Size {
			t.Errorf("%s: reported %d bytes, file has %d", f.Path, f.Size, info.Size())
		}
	}

	// The OBJ and tree document must describe the same mesh
	objFile, err := os.Open(cfg.Output.OBJPath)
	if err != nil {
		t.Fatalf("open obj: %v", err)
	}
	defer objFile.Close()
	obj, err := formats.ParseOBJ(objFile)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.Name != cfg.Output.ObjectName {
		t.Errorf("expected object name %s, got %s", cfg.Output.ObjectName, obj.Name)
	}

	treeFile, err := os.Open(cfg.Output.TreePath)
	if err != nil {
		t.Fatalf("open tree: %v", err)
	}
	defer treeFile.Close()
	doc, err := formats.ParseTreeYAML(treeFile)
	if err != nil {
		t.Fatalf("ParseTreeYAML failed: %v", err)
	}
	tree, err := doc.Tree()
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	if err := tree.CheckMesh(obj.Skeleton.VertexCount()); err != nil {
		t.Errorf("tree document does not match OBJ: %v", err)
	}
	if doc.Params.Seed != run.Seed {
		t.Errorf("expected seed %d in document, got %d", run.Seed, doc.Params.Seed)
	}
}

func TestWriteOutputs_PreviewOnly(t *testing.T) {
	cfg := testConfig(t)
	run, err := generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	written, err := writeOutputs(cfg, run, outputPreview)
	if err != nil {
		t.Fatalf("writeOutputs failed: %v", err)
	}
	if len(written) != 1 || written[0].Path != cfg.Output.PreviewPath {
		t.Fatalf("expected only the preview, got %v", written)
	}
	if _, err := os.Stat(cfg.Output.OBJPath); !os.IsNotExist(err) {
		t.Error("OBJ should not be written for a preview-only run")
	}
}
