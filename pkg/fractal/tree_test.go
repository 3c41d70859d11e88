package fractal

import (
	"errors"
	"slices"
	"testing"

	"github.com/Faultbox/fractree/pkg/skeleton"
)

// buildSampleTree returns:
//
//	0 [0 1 2]
//	├── 1 [3 4]
//	│   └── 3 [5]
//	└── 2 [6]
func buildSampleTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree([]skeleton.VertexID{0, 1, 2}, 2)
	a, err := tree.AddChild(tree.Root(), []skeleton.VertexID{3, 4}, 2)
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if _, err := tree.AddChild(tree.Root(), []skeleton.VertexID{6}, 1); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if _, err := tree.AddChild(a, []skeleton.VertexID{5}, 1); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	return tree
}

func TestTreeWalkPreOrder(t *testing.T) {
	tree := buildSampleTree(t)
	got := slices.Collect(tree.Walk())
	want := []NodeID{0, 1, 3, 2}
	if !slices.Equal(got, want) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}
}

func TestTreeAccessors(t *testing.T) {
	tree := buildSampleTree(t)

	if _, ok := tree.Parent(tree.Root()); ok {
		t.Error("root should have no parent")
	}
	if p, ok := tree.Parent(3); !ok || p != 1 {
		t.Errorf("Parent(3) = %d, %v; want 1, true", p, ok)
	}
	if got := tree.Children(0); !slices.Equal(got, []NodeID{1, 2}) {
		t.Errorf("Children(0) = %v, want [1 2]", got)
	}
	if tree.Children(42) != nil {
		t.Error("Children of unknown node should be nil")
	}
	if _, err := tree.Node(-1); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Node(-1): expected ErrUnknownNode, got %v", err)
	}
	if _, err := tree.AddChild(9, nil, 1); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("AddChild(9): expected ErrUnknownNode, got %v", err)
	}

	n, _ := tree.Node(3)
	if n.Depth != 2 {
		t.Errorf("node 3 depth = %d, want 2", n.Depth)
	}
}

func TestTreeStats(t *testing.T) {
	got := buildSampleTree(t).Stats()
	want := Stats{Nodes: 4, Leaves: 2, Vertices: 7, MaxDepth: 2}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestTreeValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tree *Tree)
	}{
		{"root with parent", func(tree *Tree) { tree.nodes[0].Parent = 2 }},
		{"listed twice", func(tree *Tree) { tree.nodes[0].Children = append(tree.nodes[0].Children, 1) }},
		{"not listed", func(tree *Tree) { tree.nodes[1].Children = nil }},
		{"foreign child", func(tree *Tree) { tree.nodes[2].Children = []NodeID{0} }},
		{"wrong depth", func(tree *Tree) { tree.nodes[3].Depth = 7 }},
		{"dangling parent", func(tree *Tree) { tree.nodes[2].Parent = 17 }},
	}

	if err := buildSampleTree(t).Validate(); err != nil {
		t.Fatalf("sample tree should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildSampleTree(t)
			tt.mutate(tree)
			if err := tree.Validate(); !errors.Is(err, ErrInvalidTree) {
				t.Errorf("expected ErrInvalidTree, got %v", err)
			}
		})
	}
}

func TestTreeCheckMesh(t *testing.T) {
	tree := buildSampleTree(t)

	if err := tree.CheckMesh(7); err != nil {
		t.Errorf("CheckMesh(7): %v", err)
	}
	if err := tree.CheckMesh(8); !errors.Is(err, ErrMeshMismatch) {
		t.Errorf("CheckMesh(8) with uncovered vertex: expected ErrMeshMismatch, got %v", err)
	}
	if err := tree.CheckMesh(6); !errors.Is(err, ErrMeshMismatch) {
		t.Errorf("CheckMesh(6) with unknown vertex: expected ErrMeshMismatch, got %v", err)
	}

	tree.nodes[2].Branch = []skeleton.VertexID{4}
	if err := tree.CheckMesh(7); !errors.Is(err, ErrMeshMismatch) {
		t.Errorf("duplicated vertex: expected ErrMeshMismatch, got %v", err)
	}
}
