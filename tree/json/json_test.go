package json

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pbanos/bonsai/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSimpleTree(t *testing.T) {
	root := tree.NewSplit(0, 3.5, tree.NewLeaf(0), tree.NewLeaf(1))
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, root))
	expected := `{"root":0,"nodes":[{"id":0,"a":0,"t":3.5,"l":1,"r":2},{"id":1,"label":0},{"id":2,"label":1}]}` + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestRoundTrip(t *testing.T) {
	roots := map[string]tree.Node{
		"leaf": tree.NewLeaf(7),
		"nested": tree.NewSplit(1, 0.1+0.2,
			tree.NewSplit(0, -1e-300, tree.NewLeaf(0), tree.NewLeaf(-2)),
			tree.NewSplit(2, math.Pi,
				tree.NewLeaf(1),
				tree.NewSplit(0, 1e300, tree.NewLeaf(2), tree.NewLeaf(0)),
			),
		),
	}
	for name, root := range roots {
		t.Run(name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, Write(buf, root))
			decoded, err := Read(buf)
			require.NoError(t, err)
			assert.Equal(t, root, decoded)
		})
	}
}

func TestReadNodesInAnyOrder(t *testing.T) {
	doc := `{"root":5,"nodes":[{"id":9,"label":1},{"id":5,"a":2,"t":-0.5,"l":3,"r":9},{"id":3,"label":0}]}`
	root, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, tree.NewSplit(2, -0.5, tree.NewLeaf(0), tree.NewLeaf(1)), root)
}

func TestReadInvalidTrees(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"root":0,"nodes":[`,
		"no root":        `{"nodes":[{"id":0,"label":1}]}`,
		"missing root":   `{"root":1,"nodes":[{"id":0,"label":1}]}`,
		"missing child":  `{"root":0,"nodes":[{"id":0,"a":0,"t":1,"l":1,"r":2},{"id":1,"label":0}]}`,
		"duplicate id":   `{"root":0,"nodes":[{"id":0,"a":0,"t":1,"l":1,"r":2},{"id":1,"label":0},{"id":2,"label":1},{"id":2,"label":0}]}`,
		"shared child":   `{"root":0,"nodes":[{"id":0,"a":0,"t":1,"l":1,"r":1},{"id":1,"label":0}]}`,
		"cycle":          `{"root":0,"nodes":[{"id":0,"a":0,"t":1,"l":1,"r":0},{"id":1,"label":0}]}`,
		"unreachable":    `{"root":0,"nodes":[{"id":0,"label":0},{"id":1,"label":1}]}`,
		"leaf and split": `{"root":0,"nodes":[{"id":0,"label":0,"a":0,"t":1,"l":1,"r":2},{"id":1,"label":0},{"id":2,"label":1}]}`,
		"incomplete":     `{"root":0,"nodes":[{"id":0,"a":0,"l":1,"r":2},{"id":1,"label":0},{"id":2,"label":1}]}`,
		"empty node":     `{"root":0,"nodes":[{"id":0}]}`,
		"null node":      `{"root":0,"nodes":[null]}`,
		"negative attr":  `{"root":0,"nodes":[{"id":0,"a":-1,"t":1,"l":1,"r":2},{"id":1,"label":0},{"id":2,"label":1}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestWriteBrokenTree(t *testing.T) {
	err := Write(&bytes.Buffer{}, tree.NewSplit(0, 1, tree.NewLeaf(0), nil))
	assert.Error(t, err)
}
