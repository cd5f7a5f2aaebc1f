/*
Package json provides the means to serialize trees as JSON documents and
to read them back.

A tree is serialized as a JSON object with the following fields:
  - "root": the id of the root node
  - "nodes": an array with every node of the tree in pre-order (a parent
    before its left subtree, and that before its right subtree). Nodes
    have an integer "id" and either a "label" for leaves or an attribute
    index "a", a threshold "t" and the ids of their left and right
    children "l" and "r" for splits.

For example:

	{"root":0,"nodes":[
	  {"id":0,"a":0,"t":3.5,"l":1,"r":2},
	  {"id":1,"label":0},
	  {"id":2,"label":1}]}
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/bonsai/tree"
)

type node struct {
	ID        int      `json:"id"`
	Label     *int     `json:"label,omitempty"`
	Attribute *int     `json:"a,omitempty"`
	Threshold *float64 `json:"t,omitempty"`
	Left      *int     `json:"l,omitempty"`
	Right     *int     `json:"r,omitempty"`
}

type document struct {
	Root  *int               `json:"root"`
	Nodes []*json.RawMessage `json:"nodes"`
}

/*
Write takes an io.Writer and the root of a tree and serializes the tree as
JSON onto the io.Writer. Nodes are written one at a time as the tree is
traversed. An error is returned if the tree contains a nil or unknown node
or the JSON cannot be written.
*/
func Write(w io.Writer, root tree.Node) error {
	ids := make(map[tree.Node]int)
	var nextID int
	idFor := func(n tree.Node) int {
		id, ok := ids[n]
		if !ok {
			id = nextID
			ids[n] = id
			nextID++
		}
		return id
	}
	_, err := fmt.Fprintf(w, `{"root":%d,"nodes":[`, idFor(root))
	if err != nil {
		return fmt.Errorf("writing json tree: %v", err)
	}
	var i int
	err = tree.Traverse(root, false, func(n tree.Node, _ int) error {
		jn := &node{ID: idFor(n)}
		switch tn := n.(type) {
		case *tree.Leaf:
			label := tn.Label
			jn.Label = &label
		case *tree.Split:
			if tn.Left == nil || tn.Right == nil {
				return fmt.Errorf("split node %d lacks a subtree", jn.ID)
			}
			attribute, threshold := tn.Attribute, tn.Threshold
			left, right := idFor(tn.Left), idFor(tn.Right)
			jn.Attribute, jn.Threshold, jn.Left, jn.Right = &attribute, &threshold, &left, &right
		default:
			return fmt.Errorf("unknown node type %T", n)
		}
		data, err := json.Marshal(jn)
		if err != nil {
			return err
		}
		if i != 0 {
			_, err = w.Write([]byte(","))
			if err != nil {
				return err
			}
		}
		i++
		_, err = w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("writing json tree: %v", err)
	}
	_, err = w.Write([]byte("]}\n"))
	if err != nil {
		return fmt.Errorf("writing json tree: %v", err)
	}
	return nil
}

/*
Read takes an io.Reader and returns the root of the tree serialized as
JSON on it.

An error is returned if the JSON cannot be read or decoded, or if it does
not describe a single tree: nodes with repeated ids, references to
missing nodes, nodes referenced more than once (including references
back to the root) or nodes unreachable from the root.
*/
func Read(r io.Reader) (tree.Node, error) {
	doc := &document{}
	err := json.NewDecoder(r).Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("reading json tree: %v", err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("reading json tree: no root node id available")
	}
	nodes := make(map[int]*node, len(doc.Nodes))
	for i, raw := range doc.Nodes {
		if raw == nil {
			return nil, fmt.Errorf("reading json tree: node #%d is null", i)
		}
		jn := &node{}
		err = json.Unmarshal(*raw, jn)
		if err != nil {
			return nil, fmt.Errorf("reading json tree: node #%d: %v", i, err)
		}
		if _, ok := nodes[jn.ID]; ok {
			return nil, fmt.Errorf("reading json tree: duplicate node id %d", jn.ID)
		}
		nodes[jn.ID] = jn
	}
	b := &builder{nodes: nodes, visited: make(map[int]bool, len(nodes))}
	root, err := b.build(*doc.Root)
	if err != nil {
		return nil, fmt.Errorf("reading json tree: %v", err)
	}
	if len(b.visited) != len(nodes) {
		return nil, fmt.Errorf("reading json tree: %d nodes unreachable from root", len(nodes)-len(b.visited))
	}
	return root, nil
}

type builder struct {
	nodes   map[int]*node
	visited map[int]bool
}

func (b *builder) build(id int) (tree.Node, error) {
	jn, ok := b.nodes[id]
	if !ok {
		return nil, fmt.Errorf("missing node %d", id)
	}
	if b.visited[id] {
		return nil, fmt.Errorf("node %d referenced more than once", id)
	}
	b.visited[id] = true
	isSplit := jn.Attribute != nil || jn.Threshold != nil || jn.Left != nil || jn.Right != nil
	switch {
	case jn.Label != nil && !isSplit:
		return tree.NewLeaf(*jn.Label), nil
	case jn.Label != nil:
		return nil, fmt.Errorf("node %d has both a label and a split", id)
	case jn.Attribute == nil || jn.Threshold == nil || jn.Left == nil || jn.Right == nil:
		return nil, fmt.Errorf("node %d is neither a leaf nor a complete split", id)
	case *jn.Attribute < 0:
		return nil, fmt.Errorf("node %d splits on negative attribute %d", id, *jn.Attribute)
	}
	left, err := b.build(*jn.Left)
	if err != nil {
		return nil, err
	}
	right, err := b.build(*jn.Right)
	if err != nil {
		return nil, err
	}
	return tree.NewSplit(*jn.Attribute, *jn.Threshold, left, right), nil
}
