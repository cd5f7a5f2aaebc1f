/*
Package tree provides the nodes binary decision trees are made of,
and the functions to classify records with them, go through them and
render them.
*/
package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Traverse takes a root node, a bottomup boolean and an
// error-returning function that takes a node and its depth
// (0 for the root) and goes through the tree running the
// function for every node. The function is called with a
// parent node before its children if bottomup is false, and
// after them if bottomup is true. Left subtrees are visited
// before right subtrees. If the function returns an error,
// the traversing is aborted and the error returned.
func Traverse(root Node, bottomup bool, f func(n Node, depth int) error) error {
	return traverse(root, 0, bottomup, f)
}

func traverse(n Node, depth int, bottomup bool, f func(Node, int) error) error {
	var err error
	if !bottomup {
		err = f(n, depth)
		if err != nil {
			return err
		}
	}
	if s, ok := n.(*Split); ok {
		err = traverse(s.Left, depth+1, bottomup, f)
		if err != nil {
			return err
		}
		err = traverse(s.Right, depth+1, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(n, depth)
	}
	return err
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes  int
	Leaves int
	// Depth is the number of edges on the longest
	// path from the root to a leaf.
	Depth int
}

// Measure returns the Stats of the tree under the given root.
func Measure(root Node) Stats {
	var s Stats
	Traverse(root, false, func(n Node, depth int) error {
		s.Nodes++
		if _, ok := n.(*Leaf); ok {
			s.Leaves++
		}
		if depth > s.Depth {
			s.Depth = depth
		}
		return nil
	})
	return s
}

/*
Namer is an interface for objects that provide
human readable names for attributes and labels.
*/
type Namer interface {
	AttributeName(int) string
	LabelName(int) string
}

type defaultNamer struct{}

func (defaultNamer) AttributeName(i int) string {
	return fmt.Sprintf("attribute %d", i)
}

func (defaultNamer) LabelName(l int) string {
	return fmt.Sprintf("class %d", l)
}

/*
Format takes a root node and a Namer and returns a multiline string
representation of the tree, naming attributes and labels with
the Namer (or as "attribute N" and "class N" if the namer is nil).
For example:

	attribute 0
	|__<= 3.5: class 0
	|__> 3.5: class 1
*/
func Format(root Node, namer Namer) string {
	if namer == nil {
		namer = defaultNamer{}
	}
	return subtreeString(root, namer)
}

func subtreeString(n Node, namer Namer) string {
	switch node := n.(type) {
	case *Leaf:
		return namer.LabelName(node.Label) + "\n"
	case *Split:
		threshold := strconv.FormatFloat(node.Threshold, 'g', -1, 64)
		result := namer.AttributeName(node.Attribute) + "\n"
		result += branchString(fmt.Sprintf("<= %s: ", threshold), node.Left, false, namer)
		result += branchString(fmt.Sprintf("> %s: ", threshold), node.Right, true, namer)
		return result
	}
	return fmt.Sprintf("ERROR: unknown node %T\n", n)
}

func branchString(condition string, n Node, last bool, namer Namer) string {
	var result string
	for j, line := range strings.Split(subtreeString(n, namer), "\n") {
		if len(line) == 0 {
			continue
		}
		if j == 0 {
			result = fmt.Sprintf("%s|__%s%s\n", result, condition, line)
		} else if last {
			result = fmt.Sprintf("%s   %s\n", result, line)
		} else {
			result = fmt.Sprintf("%s|  %s\n", result, line)
		}
	}
	return result
}
