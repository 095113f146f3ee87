package graph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeEdges(edges []Edge) [][2]int {
	pairs := make([][2]int, 0, len(edges))
	for _, e := range edges {
		u, v := e.U, e.V
		if u > v {
			u, v = v, u
		}
		pairs = append(pairs, [2]int{u, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

func TestMaximumSpanningTreeKnownWeights(t *testing.T) {
	// complete 4-vertex graph with distinct weights: the unique
	// maximum spanning tree is {0-1, 0-3, 1-2}
	g := NewUndirected(4)
	require.NoError(t, g.AddEdge(0, 1, 10))
	require.NoError(t, g.AddEdge(0, 2, 3))
	require.NoError(t, g.AddEdge(0, 3, 8))
	require.NoError(t, g.AddEdge(1, 2, 9))
	require.NoError(t, g.AddEdge(1, 3, 2))
	require.NoError(t, g.AddEdge(2, 3, 1))

	expected := [][2]int{{0, 1}, {0, 3}, {1, 2}}
	first, err := g.MaximumSpanningTree()
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, expected, normalizeEdges(first))

	// rerunning must yield the identical result
	for i := 0; i < 5; i++ {
		tree, err := g.MaximumSpanningTree()
		require.NoError(t, err)
		assert.Equal(t, first, tree)
	}
}

func TestMaximumSpanningTreeTieBreak(t *testing.T) {
	// both 1 and 2 connect to 0 with the same weight: the
	// lower-numbered destination must be picked first
	g := NewUndirected(3)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(0, 2, 1))
	tree, err := g.MaximumSpanningTree()
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, Edge{U: 0, V: 1, Weight: 1}, tree[0])
	assert.Equal(t, Edge{U: 0, V: 2, Weight: 1}, tree[1])
}

func TestMaximumSpanningTreeDisconnected(t *testing.T) {
	g := NewUndirected(4)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))
	_, err := g.MaximumSpanningTree()
	require.ErrorIs(t, err, ErrDisconnectedGraph)
}

func TestMaximumSpanningTreeZeroWeightEdgesConnect(t *testing.T) {
	g := NewUndirected(3)
	require.NoError(t, g.AddEdge(0, 1, 0))
	require.NoError(t, g.AddEdge(1, 2, 0))
	tree, err := g.MaximumSpanningTree()
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}

func TestMaximumSpanningTreeSingleVertex(t *testing.T) {
	g := NewUndirected(1)
	tree, err := g.MaximumSpanningTree()
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestUndirectedWeight(t *testing.T) {
	g := NewUndirected(3)
	require.NoError(t, g.AddEdge(0, 1, 2.5))
	w, ok := g.Weight(1, 0)
	require.True(t, ok)
	assert.Equal(t, 2.5, w)
	_, ok = g.Weight(1, 2)
	assert.False(t, ok)
	require.ErrorIs(t, g.AddEdge(0, 3, 1), ErrVertexNotFound)
}
