package fractal

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/Faultbox/fractree/pkg/skeleton"
)

// Tree errors.
var (
	ErrUnknownNode  = errors.New("unknown tree node")
	ErrInvalidTree  = errors.New("invalid tree")
	ErrMeshMismatch = errors.New("tree does not match mesh")
)

// NodeID addresses a node inside a Tree.
type NodeID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Node mirrors one branch of the mesh.
type Node struct {
	// Branch lists the vertices of the branch in root-to-tip order. The root
	// node also lists the starting vertex first.
	Branch []skeleton.VertexID
	// Parent is NoParent for the root.
	Parent NodeID
	// Children are in the order they sprouted along Branch.
	Children []NodeID
	// Depth is 0 for the root.
	Depth int
	// StepCount is the vertex count the branch was generated with.
	StepCount int
}

// Tree is an arena of nodes addressed by NodeID. Node 0 is the root.
// Nodes are only ever appended; nothing is removed or reparented.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only the root branch.
func NewTree(rootBranch []skeleton.VertexID, stepCount int) *Tree {
	return &Tree{nodes: []Node{{
		Branch:    rootBranch,
		Parent:    NoParent,
		StepCount: stepCount,
	}}}
}

// Root returns the root node id.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a node. The returned slices are shared with the tree and must
// not be modified.
func (t *Tree) Node(id NodeID) (Node, error) {
	if !t.has(id) {
		return Node{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return t.nodes[id], nil
}

// Children returns the child ids of a node, or nil for an unknown id.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.has(id) {
		return nil
	}
	return t.nodes[id].Children
}

// Parent returns the parent of a node and false for the root or an unknown id.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.has(id) || t.nodes[id].Parent == NoParent {
		return NoParent, false
	}
	return t.nodes[id].Parent, true
}

// AddChild appends a child branch under parent and returns its id.
func (t *Tree) AddChild(parent NodeID, branch []skeleton.VertexID, stepCount int) (NodeID, error) {
	if !t.has(parent) {
		return 0, fmt.Errorf("%w: parent %d", ErrUnknownNode, parent)
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Branch:    branch,
		Parent:    parent,
		Depth:     t.nodes[parent].Depth + 1,
		StepCount: stepCount,
	})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id, nil
}

// Walk yields node ids in pre-order: a node, then each child subtree in
// sprouting order.
func (t *Tree) Walk() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if len(t.nodes) == 0 {
			return
		}
		stack := []NodeID{t.Root()}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			children := t.nodes[id].Children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes    int
	Leaves   int
	Vertices int
	MaxDepth int
}

// Stats walks the tree once and returns its summary.
func (t *Tree) Stats() Stats {
	var s Stats
	for i := range t.nodes {
		n := &t.nodes[i]
		s.Nodes++
		s.Vertices += len(n.Branch)
		if len(n.Children) == 0 {
			s.Leaves++
		}
		s.MaxDepth = max(s.MaxDepth, n.Depth)
	}
	return s
}

// Validate checks the tree shape: the root has no parent, every other node
// has exactly one parent that lists it exactly once, depths follow the
// parent links, and every node is reachable from the root.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("%w: no root", ErrInvalidTree)
	}
	if t.nodes[0].Parent != NoParent {
		return fmt.Errorf("%w: root has parent %d", ErrInvalidTree, t.nodes[0].Parent)
	}

	for i := 1; i < len(t.nodes); i++ {
		id := NodeID(i)
		n := &t.nodes[i]
		if !t.has(n.Parent) {
			return fmt.Errorf("%w: node %d has parent %d", ErrInvalidTree, id, n.Parent)
		}
		parent := &t.nodes[n.Parent]
		listed := 0
		for _, c := range parent.Children {
			if c == id {
				listed++
			}
		}
		if listed != 1 {
			return fmt.Errorf("%w: node %d listed %d times by parent %d", ErrInvalidTree, id, listed, n.Parent)
		}
		if n.Depth != parent.Depth+1 {
			return fmt.Errorf("%w: node %d depth %d under parent depth %d", ErrInvalidTree, id, n.Depth, parent.Depth)
		}
	}

	for i := range t.nodes {
		for _, c := range t.nodes[i].Children {
			if !t.has(c) || t.nodes[c].Parent != NodeID(i) {
				return fmt.Errorf("%w: node %d lists foreign child %d", ErrInvalidTree, i, c)
			}
		}
	}

	seen := make([]bool, len(t.nodes))
	reached := 0
	for id := range t.Walk() {
		if seen[id] {
			return fmt.Errorf("%w: cycle through node %d", ErrInvalidTree, id)
		}
		seen[id] = true
		reached++
	}
	if reached != len(t.nodes) {
		return fmt.Errorf("%w: %d of %d nodes reachable from root", ErrInvalidTree, reached, len(t.nodes))
	}
	return nil
}

// CheckMesh verifies that the branches partition the vertices of a mesh with
// vertexCount vertices: every id exists and appears in exactly one branch.
func (t *Tree) CheckMesh(vertexCount int) error {
	seen := make([]bool, vertexCount)
	for i := range t.nodes {
		for _, v := range t.nodes[i].Branch {
			if int(v) >= vertexCount {
				return fmt.Errorf("%w: node %d names vertex %d of %d", ErrMeshMismatch, i, v, vertexCount)
			}
			if seen[v] {
				return fmt.Errorf("%w: vertex %d appears in more than one branch", ErrMeshMismatch, v)
			}
			seen[v] = true
		}
	}
	if missing := slices.Index(seen, false); missing >= 0 {
		return fmt.Errorf("%w: vertex %d belongs to no branch", ErrMeshMismatch, missing)
	}
	return nil
}

func (t *Tree) has(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
