package bramble

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
)

func TestScoreSingleAttribute(t *testing.T) {
	ctx := context.Background()
	attrs := binaryAttributes("a")
	rows := make([][]int, 0, 10)
	for i := 0; i < 10; i++ {
		v := 1
		if i < 3 {
			v = 0
		}
		rows = append(rows, []int{v})
	}
	ds := datasetOf(attrs, rows)
	bn, err := network.New(dataset.Nominals(attrs))
	require.NoError(t, err)
	s, err := Score(ctx, bn, ds)
	require.NoError(t, err)
	expected := 3*math.Log(0.3) + 7*math.Log(0.7) - 0.5*math.Log(10)
	assert.InDelta(t, expected, s, 1e-9)
}

func TestScoreDecomposesPerNode(t *testing.T) {
	ctx := context.Background()
	attrs, ds := correlatedDataset()
	bn, err := network.New(dataset.Nominals(attrs))
	require.NoError(t, err)
	require.NoError(t, bn.AddEdge(0, 1))
	total, err := Score(ctx, bn, ds)
	require.NoError(t, err)
	var sum float64
	for _, n := range bn.Nodes() {
		s, err := scoreNode(ctx, ds, n.Attribute, parentAttributes(bn, n.Parents))
		require.NoError(t, err)
		sum += s
	}
	assert.InDelta(t, sum, total, 1e-9)
}

func TestScoreRewardsInformativeEdge(t *testing.T) {
	ctx := context.Background()
	attrs, ds := correlatedDataset()
	empty, err := network.New(dataset.Nominals(attrs))
	require.NoError(t, err)
	emptyScore, err := Score(ctx, empty, ds)
	require.NoError(t, err)

	// y mirrors x: conditioning y on x turns its likelihood term into
	// a certainty, which outweighs the extra parameters
	withEdge := empty.Clone()
	require.NoError(t, withEdge.AddEdge(0, 1))
	edgeScore, err := Score(ctx, withEdge, ds)
	require.NoError(t, err)
	assert.Greater(t, edgeScore, emptyScore)
}

func TestScorePenalizesUselessEdge(t *testing.T) {
	ctx := context.Background()
	attrs, ds := correlatedDataset()
	empty, err := network.New(dataset.Nominals(attrs))
	require.NoError(t, err)
	emptyScore, err := Score(ctx, empty, ds)
	require.NoError(t, err)

	// z is independent of x: the edge buys no likelihood and doubles
	// the parameters of z's CPD
	withEdge := empty.Clone()
	require.NoError(t, withEdge.AddEdge(0, 2))
	edgeScore, err := Score(ctx, withEdge, ds)
	require.NoError(t, err)
	assert.Less(t, edgeScore, emptyScore)
}
