package formats

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fractree/pkg/fractal"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// TreeDocumentVersion is the only document version this package reads.
const TreeDocumentVersion = 1

// Tree document errors.
var (
	ErrUnsupportedTreeVersion = errors.New("unsupported tree document version")
	ErrInvalidTreeDocument    = errors.New("invalid tree document")
)

// TreeDocument is the YAML form of a branch tree. Nodes are stored in id
// order with the root first.
type TreeDocument struct {
	Version int        `yaml:"version"`
	Params  TreeParams `yaml:"params"`
	Nodes   []TreeNode `yaml:"nodes"`
}

// TreeParams records the settings a tree was grown and skinned with.
type TreeParams struct {
	Count            int     `yaml:"count"`
	BendRange        float32 `yaml:"bend_range"`
	SplitProbability float64 `yaml:"split_probability"`
	Seed             uint64  `yaml:"seed"`
	Radius           float32 `yaml:"radius"`
	ReduceRadius     bool    `yaml:"reduce_radius"`
}

// TreeNode is one branch of the document.
type TreeNode struct {
	ID       int      `yaml:"id"`
	Parent   int      `yaml:"parent"`
	Depth    int      `yaml:"depth"`
	Steps    int      `yaml:"steps"`
	Radius   float32  `yaml:"radius"`
	Branch   []uint32 `yaml:"branch,flow"`
	Children []int    `yaml:"children,flow,omitempty"`
}

// NewTreeDocument captures t together with the skin radius each node gets
// under p.
func NewTreeDocument(t *fractal.Tree, p TreeParams) *TreeDocument {
	doc := &TreeDocument{
		Version: TreeDocumentVersion,
		Params:  p,
		Nodes:   make([]TreeNode, 0, t.Len()),
	}

	for i := range t.Len() {
		n, _ := t.Node(fractal.NodeID(i))

		branch := make([]uint32, len(n.Branch))
		for j, v := range n.Branch {
			branch[j] = uint32(v)
		}
		var children []int
		for _, c := range n.Children {
			children = append(children, int(c))
		}

		doc.Nodes = append(doc.Nodes, TreeNode{
			ID:       i,
			Parent:   int(n.Parent),
			Depth:    n.Depth,
			Steps:    n.StepCount,
			Radius:   fractal.LevelRadius(p.Radius, n.Depth, p.ReduceRadius),
			Branch:   branch,
			Children: children,
		})
	}
	return doc
}

// WriteTreeYAML encodes doc as YAML.
func WriteTreeYAML(w io.Writer, doc *TreeDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding tree document: %w", err)
	}
	return enc.Close()
}

// ParseTreeYAML decodes a tree document. Unknown keys are rejected.
func ParseTreeYAML(r io.Reader) (*TreeDocument, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc TreeDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTreeDocument, err)
	}
	if doc.Version != TreeDocumentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTreeVersion, doc.Version)
	}
	return &doc, nil
}

// Tree rebuilds the node arena. Node ids must be dense and every child must
// come after its parent, in the order the parent lists it.
func (d *TreeDocument) Tree() (*fractal.Tree, error) {
	if len(d.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrInvalidTreeDocument)
	}

	root := d.Nodes[0]
	if root.ID != 0 || root.Parent != int(fractal.NoParent) {
		return nil, fmt.Errorf("%w: first node must be the root", ErrInvalidTreeDocument)
	}
	tree := fractal.NewTree(toVertexIDs(root.Branch), root.Steps)

	for i := 1; i < len(d.Nodes); i++ {
		n := d.Nodes[i]
		if n.ID != i {
			return nil, fmt.Errorf("%w: node at index %d has id %d", ErrInvalidTreeDocument, i, n.ID)
		}
		if n.Parent < 0 || n.Parent >= i {
			return nil, fmt.Errorf("%w: node %d has parent %d", ErrInvalidTreeDocument, i, n.Parent)
		}
		if _, err := tree.AddChild(fractal.NodeID(n.Parent), toVertexIDs(n.Branch), n.Steps); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTreeDocument, err)
		}
	}

	for _, n := range d.Nodes {
		got, _ := tree.Node(fractal.NodeID(n.ID))
		if got.Depth != n.Depth {
			return nil, fmt.Errorf("%w: node %d depth %d, expected %d", ErrInvalidTreeDocument, n.ID, n.Depth, got.Depth)
		}
		want := make([]fractal.NodeID, len(n.Children))
		for j, c := range n.Children {
			want[j] = fractal.NodeID(c)
		}
		if !slices.Equal(got.Children, want) {
			return nil, fmt.Errorf("%w: node %d lists children %v, parents say %v", ErrInvalidTreeDocument, n.ID, n.Children, got.Children)
		}
	}

	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

func toVertexIDs(in []uint32) []skeleton.VertexID {
	out := make([]skeleton.VertexID, len(in))
	for i, v := range in {
		out[i] = skeleton.VertexID(v)
	}
	return out
}
