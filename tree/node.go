package tree

import (
	"fmt"

	"github.com/pbanos/bonsai/record"
)

/*
Node is a node of a binary decision tree. It is either a *Leaf or a
*Split: no other implementations exist.

Every node exclusively owns its children, and trees are never modified
once built.
*/
type Node interface {
	isNode()
}

/*
Leaf is a terminal node that assigns its label to every record
reaching it.
*/
type Leaf struct {
	Label int
}

/*
Split is an internal node that routes records according to the value
of a single attribute: records whose attribute is less than or equal
to the threshold go to the Left subtree, the rest to the Right one.
*/
type Split struct {
	Attribute int
	Threshold float64
	Left      Node
	Right     Node
}

func (*Leaf) isNode()  {}
func (*Split) isNode() {}

// NewLeaf returns a leaf with the given label.
func NewLeaf(label int) *Leaf {
	return &Leaf{Label: label}
}

// NewSplit returns a split node on the given attribute and threshold
// with the given subtrees.
func NewSplit(attribute int, threshold float64, left, right Node) *Split {
	return &Split{attribute, threshold, left, right}
}

// Branch returns the subtree of the split node the given
// value is routed to.
func (s *Split) Branch(value float64) Node {
	if value <= s.Threshold {
		return s.Left
	}
	return s.Right
}

/*
Classify takes a record and the root node of a tree and returns the label
the tree assigns to the record.

It returns an error wrapping record.ErrInvalidInput if the record does
not have the attribute a visited split node tests, and a plain error if
the tree contains a nil or unknown kind of node.
*/
func Classify(r record.Record, n Node) (int, error) {
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Label, nil
		case *Split:
			if node.Attribute < 0 || node.Attribute >= len(r.Attributes) {
				return 0, fmt.Errorf("classifying record with %d attributes on attribute %d: %w", len(r.Attributes), node.Attribute, record.ErrInvalidInput)
			}
			n = node.Branch(r.Attributes[node.Attribute])
		case nil:
			return 0, fmt.Errorf("classifying record: reached nil node")
		default:
			return 0, fmt.Errorf("classifying record: unknown node type %T", n)
		}
	}
}
