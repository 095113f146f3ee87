package bramble

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
)

// tanDataset builds a dataset with a class c and attributes x, y and z
// where y mirrors x exactly, so x-y is the strongest pair given the
// class
func tanDataset() ([]attribute.Attribute, dataset.Dataset) {
	attrs := binaryAttributes("c", "x", "y", "z")
	rows := make([][]int, 0, 20)
	for i := 0; i < 20; i++ {
		x := 0
		if i >= 10 {
			x = 1
		}
		rows = append(rows, []int{i % 2, x, x, (i / 2) % 2})
	}
	return attrs, datasetOf(attrs, rows)
}

func TestLearnTANStructure(t *testing.T) {
	ctx := context.Background()
	attrs, ds := tanDataset()
	bn, err := LearnTAN(ctx, ds, attrs[0])
	require.NoError(t, err)
	assert.False(t, bn.HasCycle())

	// the class node is parentless and parent of every other node
	assert.Empty(t, bn.Node(0).Parents)
	treeEdges := 0
	for id := 1; id < 4; id++ {
		parents := bn.Node(id).Parents
		assert.Contains(t, parents, 0, "node %d must have the class as parent", id)
		require.LessOrEqual(t, len(parents), 2, "node %d can have at most the class and one tree parent", id)
		treeEdges += len(parents) - 1
	}
	// the augmenting tree spans the three non-class attributes
	assert.Equal(t, 2, treeEdges)
	// x and y share all their information given the class: the tree
	// must join them directly
	assert.True(t, bn.HasEdge(1, 2) || bn.HasEdge(2, 1), "expected a tree edge between x and y")
	for _, n := range bn.Nodes() {
		assert.NotNil(t, n.CPD)
	}
}

func TestLearnTANDeterministic(t *testing.T) {
	ctx := context.Background()
	attrs, ds := tanDataset()
	first, err := LearnTAN(ctx, ds, attrs[0])
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		bn, err := LearnTAN(ctx, ds, attrs[0])
		require.NoError(t, err)
		assert.Equal(t, first.String(), bn.String())
	}
}

func TestLearnTANSingleNonClassAttribute(t *testing.T) {
	ctx := context.Background()
	attrs := binaryAttributes("c", "x")
	ds := datasetOf(attrs, [][]int{{0, 0}, {0, 1}, {1, 1}, {1, 0}})
	bn, err := LearnTAN(ctx, ds, attrs[0])
	require.NoError(t, err)
	assert.Empty(t, bn.Node(0).Parents)
	assert.Equal(t, []int{0}, bn.Node(1).Parents)
}

func TestLearnTANRejectsForeignClass(t *testing.T) {
	ctx := context.Background()
	attrs := binaryAttributes("c", "x")
	ds := datasetOf(attrs, [][]int{{0, 0}, {1, 1}})
	foreign := attribute.NewNominal(0, "c", []string{"no", "yes"})
	_, err := LearnTAN(ctx, ds, foreign)
	require.Error(t, err)
}
