package bramble

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
)

func TestLearnSparseCandidateFindsCorrelation(t *testing.T) {
	ctx := context.Background()
	_, ds := correlatedDataset()
	bn, err := LearnSparseCandidate(ctx, ds, &Config{CandidateSetSize: 1})
	require.NoError(t, err)
	assert.False(t, bn.HasCycle())
	assert.True(t, bn.HasEdge(0, 1) || bn.HasEdge(1, 0), "expected an edge between the correlated attributes")
	for _, n := range bn.Nodes() {
		assert.NotNil(t, n.CPD)
	}
}

func TestLearnSparseCandidateRespectsCandidateSets(t *testing.T) {
	ctx := context.Background()
	_, ds := correlatedDataset()
	cfg := &Config{CandidateSetSize: 1}
	bn, err := LearnSparseCandidate(ctx, ds, cfg)
	require.NoError(t, err)
	candidates, err := candidateSets(ctx, ds, bn, cfg)
	require.NoError(t, err)
	for _, n := range bn.Nodes() {
		for _, p := range n.Parents {
			assert.True(t, candidates[n.Attribute.ID()][p],
				"parent %d of node %d is not among its candidates", p, n.Attribute.ID())
		}
	}
}

func TestLearnSparseCandidateDeterministic(t *testing.T) {
	ctx := context.Background()
	_, ds := correlatedDataset()
	cfg := &Config{CandidateSetSize: 2, MaxRounds: 3}
	first, err := LearnSparseCandidate(ctx, ds, cfg)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		bn, err := LearnSparseCandidate(ctx, ds, cfg)
		require.NoError(t, err)
		assert.Equal(t, first.String(), bn.String())
	}
}

func TestCandidateSetsRankByMutualInformation(t *testing.T) {
	ctx := context.Background()
	attrs, ds := correlatedDataset()
	bn, err := network.New(dataset.Nominals(attrs))
	require.NoError(t, err)
	candidates, err := candidateSets(ctx, ds, bn, &Config{CandidateSetSize: 1})
	require.NoError(t, err)
	// x and y share all their information: each is the other's sole
	// candidate
	assert.True(t, candidates[0][1])
	assert.False(t, candidates[0][2])
	assert.True(t, candidates[1][0])
	assert.False(t, candidates[1][2])
	// z is independent of both: ties rank the lower id first
	assert.True(t, candidates[2][0])
	assert.False(t, candidates[2][1])
}

func TestCandidateSetsUnrestrictedByDefault(t *testing.T) {
	ctx := context.Background()
	attrs, ds := correlatedDataset()
	bn, err := network.New(dataset.Nominals(attrs))
	require.NoError(t, err)
	candidates, err := candidateSets(ctx, ds, bn, nil)
	require.NoError(t, err)
	for child := range candidates {
		for parent, ok := range candidates[child] {
			assert.Equal(t, parent != child, ok)
		}
	}
}
