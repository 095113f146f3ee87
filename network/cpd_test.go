package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
)

func testAttributes() (*attribute.NominalAttribute, *attribute.NominalAttribute) {
	outlook := attribute.NewNominal(0, "outlook", []string{"sunny", "rainy"})
	play := attribute.NewNominal(1, "play", []string{"no", "yes"})
	return outlook, play
}

func testInstances(rows [][2]int) []dataset.Instance {
	instances := make([]dataset.Instance, 0, len(rows))
	for _, r := range rows {
		instances = append(instances, dataset.NewInstance(map[int]int{0: r[0], 1: r[1]}))
	}
	return instances
}

func TestBuildCPDWithParent(t *testing.T) {
	ctx := context.Background()
	outlook, play := testAttributes()
	ds := dataset.New([]attribute.Attribute{outlook, play}, testInstances([][2]int{
		{0, 1}, {0, 1}, {0, 0}, {0, 1},
		{1, 0}, {1, 0},
	}))
	cpd, err := BuildCPD(ctx, play, []*attribute.NominalAttribute{outlook}, ds)
	require.NoError(t, err)
	assert.Equal(t, 2, cpd.Assignments())

	p, err := cpd.Query(Query{0: 0, 1: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p, 1e-9)
	p, err = cpd.Query(Query{0: 0, 1: 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p, 1e-9)
	p, err = cpd.Query(Query{0: 1, 1: 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-9)
	p, err = cpd.Query(Query{0: 1, 1: 1})
	require.NoError(t, err)
	assert.Zero(t, p)
}

func TestBuildCPDDistributionsSumToOne(t *testing.T) {
	ctx := context.Background()
	outlook, play := testAttributes()
	ds := dataset.New([]attribute.Attribute{outlook, play}, testInstances([][2]int{
		{0, 0}, {0, 1}, {0, 1}, {1, 0}, {1, 1}, {1, 0}, {1, 0},
	}))
	cpd, err := BuildCPD(ctx, play, []*attribute.NominalAttribute{outlook}, ds)
	require.NoError(t, err)
	cpd.Distributions(func(_ int, dist []float64) bool {
		var sum float64
		for _, p := range dist {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
		return true
	})
}

func TestBuildCPDWithoutParents(t *testing.T) {
	ctx := context.Background()
	outlook, play := testAttributes()
	ds := dataset.New([]attribute.Attribute{outlook, play}, testInstances([][2]int{
		{0, 1}, {1, 1}, {0, 0}, {1, 1},
	}))
	cpd, err := BuildCPD(ctx, play, nil, ds)
	require.NoError(t, err)
	p, err := cpd.Query(Query{1: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p, 1e-9)
}

func TestQueryMissingAssignment(t *testing.T) {
	ctx := context.Background()
	outlook, play := testAttributes()
	// no instance with outlook=rainy: that parent assignment has no
	// distribution and querying it must not fabricate one
	ds := dataset.New([]attribute.Attribute{outlook, play}, testInstances([][2]int{
		{0, 1}, {0, 0},
	}))
	cpd, err := BuildCPD(ctx, play, []*attribute.NominalAttribute{outlook}, ds)
	require.NoError(t, err)
	_, err = cpd.Query(Query{0: 1, 1: 0})
	require.ErrorIs(t, err, ErrMissingAssignment)
}

func TestQueryIncompleteAssignment(t *testing.T) {
	ctx := context.Background()
	outlook, play := testAttributes()
	ds := dataset.New([]attribute.Attribute{outlook, play}, testInstances([][2]int{{0, 1}}))
	cpd, err := BuildCPD(ctx, play, []*attribute.NominalAttribute{outlook}, ds)
	require.NoError(t, err)
	_, err = cpd.Query(Query{0: 0})
	require.Error(t, err)
	_, err = cpd.Query(Query{1: 0})
	require.Error(t, err)
	_, err = cpd.Query(Query{0: 0, 1: 7})
	require.Error(t, err)
}

func TestBuildCPDSkipsInstancesWithMissingValues(t *testing.T) {
	ctx := context.Background()
	outlook, play := testAttributes()
	instances := []dataset.Instance{
		dataset.NewInstance(map[int]int{0: 0, 1: 1}),
		dataset.NewInstance(map[int]int{0: 0}),    // missing play
		dataset.NewInstance(map[int]int{1: 0}),    // missing outlook
		dataset.NewInstance(map[int]int{0: 0, 1: 1}),
	}
	ds := dataset.New([]attribute.Attribute{outlook, play}, instances)
	cpd, err := BuildCPD(ctx, play, []*attribute.NominalAttribute{outlook}, ds)
	require.NoError(t, err)
	p, err := cpd.Query(Query{0: 0, 1: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-9)
}
