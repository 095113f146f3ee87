package bramble

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
)

func TestGenerateMatchesPrior(t *testing.T) {
	ctx := context.Background()
	attrs := binaryNominals("a")
	// 3 of 10 instances have a=no, so the learned prior is P(a=no)=0.3
	rows := make([][]int, 0, 10)
	for i := 0; i < 10; i++ {
		v := 1
		if i < 3 {
			v = 0
		}
		rows = append(rows, []int{v})
	}
	ds := datasetOf(binaryAttributes("a"), rows)
	bn, err := network.New(attrs)
	require.NoError(t, err)
	require.NoError(t, buildCPDs(ctx, bn, ds))

	generated, err := Generate(ctx, bn, 10000, 42)
	require.NoError(t, err)
	instances, err := generated.Instances(ctx)
	require.NoError(t, err)
	require.Len(t, instances, 10000)
	var noCount int
	for _, inst := range instances {
		v, ok := inst.Value(attrs[0])
		require.True(t, ok)
		if v == 0 {
			noCount++
		}
	}
	assert.InDelta(t, 0.3, float64(noCount)/10000, 0.02)
}

func TestGenerateDeterministicChain(t *testing.T) {
	ctx := context.Background()
	attrs := binaryNominals("a", "b", "c")
	// b mirrors a and c mirrors b exactly, so P(b|a) and P(c|b) are
	// deterministic and every generated instance must have a==b==c
	rows := [][]int{
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1},
	}
	ds := datasetOf(binaryAttributes("a", "b", "c"), rows)
	bn, err := network.New(attrs)
	require.NoError(t, err)
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, bn.AddEdge(1, 2))
	require.NoError(t, buildCPDs(ctx, bn, ds))

	generated, err := Generate(ctx, bn, 500, 7)
	require.NoError(t, err)
	instances, err := generated.Instances(ctx)
	require.NoError(t, err)
	require.Len(t, instances, 500)
	for _, inst := range instances {
		a, ok := inst.Value(attrs[0])
		require.True(t, ok)
		b, ok := inst.Value(attrs[1])
		require.True(t, ok)
		c, ok := inst.Value(attrs[2])
		require.True(t, ok)
		assert.Equal(t, a, b)
		assert.Equal(t, b, c)
	}
}

func TestGenerateReproducibleWithSameSeed(t *testing.T) {
	ctx := context.Background()
	attrs := binaryNominals("a", "b")
	rows := [][]int{
		{0, 0}, {0, 1}, {1, 1}, {1, 1}, {0, 0}, {1, 0},
	}
	ds := datasetOf(binaryAttributes("a", "b"), rows)
	bn, err := network.New(attrs)
	require.NoError(t, err)
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, buildCPDs(ctx, bn, ds))

	first, err := Generate(ctx, bn, 100, 99)
	require.NoError(t, err)
	second, err := Generate(ctx, bn, 100, 99)
	require.NoError(t, err)
	firstInstances, err := first.Instances(ctx)
	require.NoError(t, err)
	secondInstances, err := second.Instances(ctx)
	require.NoError(t, err)
	require.Len(t, secondInstances, len(firstInstances))
	for i := range firstInstances {
		for _, a := range attrs {
			fv, ok := firstInstances[i].Value(a)
			require.True(t, ok)
			sv, ok := secondInstances[i].Value(a)
			require.True(t, ok)
			assert.Equal(t, fv, sv)
		}
	}
}

func TestGenerateRequiresCPDs(t *testing.T) {
	ctx := context.Background()
	bn, err := network.New(binaryNominals("a"))
	require.NoError(t, err)
	_, err = Generate(ctx, bn, 10, 1)
	require.Error(t, err)
}

func TestGenerateFailsOnUnseenParentAssignment(t *testing.T) {
	ctx := context.Background()
	attrs := binaryNominals("a", "b")
	// b is unobserved whenever a=yes: P(a=yes)=0.5 but the CPD of b
	// holds no distribution for that parent assignment, so sampling
	// must fail once it draws a=yes
	instances := []dataset.Instance{
		dataset.NewInstance(map[int]int{0: 0, 1: 0}),
		dataset.NewInstance(map[int]int{0: 0, 1: 1}),
		dataset.NewInstance(map[int]int{0: 1}),
		dataset.NewInstance(map[int]int{0: 1}),
	}
	ds := dataset.New(binaryAttributes("a", "b"), instances)
	bn, err := network.New(attrs)
	require.NoError(t, err)
	require.NoError(t, bn.AddEdge(0, 1))
	require.NoError(t, buildCPDs(ctx, bn, ds))
	_, err = Generate(ctx, bn, 100, 3)
	require.ErrorIs(t, err, network.ErrMissingAssignment)
}
