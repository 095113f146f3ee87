package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/bramble/attribute"
)

func testNetwork(t *testing.T, order int) *Network {
	t.Helper()
	attrs := make([]*attribute.NominalAttribute, order)
	for i := range attrs {
		attrs[i] = attribute.NewNominal(i, string(rune('a'+i)), []string{"no", "yes"})
	}
	bn, err := New(attrs)
	require.NoError(t, err)
	return bn
}

func TestNewRejectsNonContiguousIDs(t *testing.T) {
	attrs := []*attribute.NominalAttribute{
		attribute.NewNominal(1, "a", []string{"no", "yes"}),
	}
	_, err := New(attrs)
	require.Error(t, err)
}

func TestAddEdge(t *testing.T) {
	bn := testNetwork(t, 3)
	require.NoError(t, bn.AddEdge(0, 1))
	assert.True(t, bn.HasEdge(0, 1))
	assert.Equal(t, []int{0}, bn.Node(1).Parents)
	assert.False(t, bn.HasCycle())
}

func TestAddEdgeRejectsCycle(t *testing.T) {
	bn := testNetwork(t, 3)
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, bn.AddEdge(1, 2))
	err := bn.AddEdge(2, 0)
	require.ErrorIs(t, err, ErrInvalidStructure)
	assert.False(t, bn.HasEdge(2, 0))
	assert.False(t, bn.HasCycle())
}

func TestAddEdgeRejectsSelfAndDuplicates(t *testing.T) {
	bn := testNetwork(t, 2)
	require.ErrorIs(t, bn.AddEdge(0, 0), ErrInvalidStructure)
	require.NoError(t, bn.AddEdge(0, 1))
	require.ErrorIs(t, bn.AddEdge(0, 1), ErrInvalidStructure)
	require.ErrorIs(t, bn.AddEdge(0, 5), ErrInvalidStructure)
}

func TestRemoveEdge(t *testing.T) {
	bn := testNetwork(t, 2)
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, bn.RemoveEdge(0, 1))
	assert.False(t, bn.HasEdge(0, 1))
	assert.Empty(t, bn.Node(1).Parents)
	require.ErrorIs(t, bn.RemoveEdge(0, 1), ErrInvalidStructure)
}

func TestReverseEdge(t *testing.T) {
	bn := testNetwork(t, 3)
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, bn.ReverseEdge(0, 1))
	assert.True(t, bn.HasEdge(1, 0))
	assert.False(t, bn.HasEdge(0, 1))
}

func TestReverseEdgeRejectsCycleAndRestores(t *testing.T) {
	// 0->1, 0->2, 2->1: reversing 0->1 would close the cycle
	// 0->2->1->0
	bn := testNetwork(t, 3)
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, bn.AddEdge(0, 2))
	require.NoError(t, bn.AddEdge(2, 1))
	err := bn.ReverseEdge(0, 1)
	require.ErrorIs(t, err, ErrInvalidStructure)
	assert.True(t, bn.HasEdge(0, 1), "failed reversal must leave the edge in place")
	assert.False(t, bn.HasEdge(1, 0))
	assert.False(t, bn.HasCycle())
}

func TestParentsKeptSorted(t *testing.T) {
	bn := testNetwork(t, 4)
	require.NoError(t, bn.AddEdge(2, 1))
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, bn.AddEdge(3, 1))
	assert.Equal(t, []int{0, 2, 3}, bn.Node(1).Parents)
}

func TestTopologicalOrder(t *testing.T) {
	bn := testNetwork(t, 3)
	require.NoError(t, bn.AddEdge(2, 1))
	require.NoError(t, bn.AddEdge(1, 0))
	order, err := bn.TopologicalOrder()
	require.NoError(t, err)
	ids := make([]int, len(order))
	for i, n := range order {
		ids[i] = n.Attribute.ID()
	}
	assert.Equal(t, []int{2, 1, 0}, ids)
}

func TestCloneIsIndependent(t *testing.T) {
	bn := testNetwork(t, 3)
	require.NoError(t, bn.AddEdge(0, 1))
	c := bn.Clone()
	require.NoError(t, c.AddEdge(1, 2))
	assert.False(t, bn.HasEdge(1, 2))
	assert.True(t, c.HasEdge(0, 1))
}
