package bramble

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
)

// ErrMissingParentValue indicates that while generating an instance a
// node's parent had no sampled value yet. Nodes are sampled in
// topological order, so this error signals an ordering bug, never an
// expected condition.
var ErrMissingParentValue = errors.New("bramble: parent value not sampled yet")

/*
Generate takes a context, a learned network, an instance count and a
seed and produces a dataset of that many instances sampled from the
joint distribution the network encodes, sharing the network's attribute
schema.

Instances are sampled ancestrally: nodes are visited in topological
order and each node's value is drawn from its CPD conditioned on the
values already sampled for its parents, by partitioning [0,1) into
sub-intervals proportional to each domain value's probability (in
domain order) and picking the value whose sub-interval contains a fresh
uniform draw.

All randomness comes from a source seeded with the given seed, so
generation is reproducible: the same network, count and seed always
produce the same dataset.

Generate fails with network.ErrMissingAssignment if sampling walks into
a parent value combination the network's training data never realized,
since the network holds no distribution to draw from there.
*/
func Generate(ctx context.Context, bn *network.Network, count int, seed int64) (dataset.Dataset, error) {
	order, err := bn.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("generating data: %v", err)
	}
	for _, n := range order {
		if n.CPD == nil {
			return nil, fmt.Errorf("generating data: node %s has no CPD", n.Attribute.Name())
		}
	}
	rng := rand.New(rand.NewSource(seed))
	attrs := make([]attribute.Attribute, bn.Order())
	for _, n := range bn.Nodes() {
		attrs[n.Attribute.ID()] = n.Attribute
	}
	instances := make([]dataset.Instance, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := make(map[int]int, bn.Order())
		for _, n := range order {
			v, err := sampleNode(n, values, rng)
			if err != nil {
				return nil, fmt.Errorf("generating instance %d: %w", i, err)
			}
			values[n.Attribute.ID()] = v
		}
		instances = append(instances, dataset.NewInstance(values))
	}
	return dataset.New(attrs, instances), nil
}

/*
sampleNode draws a value for a node conditioned on the values already
sampled for its parents in the instance under construction.
*/
func sampleNode(n *network.Node, sampled map[int]int, rng *rand.Rand) (int, error) {
	q := make(network.Query, len(n.Parents)+1)
	for _, p := range n.Parents {
		pv, ok := sampled[p]
		if !ok {
			return 0, fmt.Errorf("sampling %s: parent %d: %w", n.Attribute.Name(), p, ErrMissingParentValue)
		}
		q[p] = pv
	}
	probabilities := make([]float64, n.Attribute.Cardinality())
	for v := range probabilities {
		q[n.Attribute.ID()] = v
		p, err := n.CPD.Query(q)
		if err != nil {
			return 0, fmt.Errorf("sampling %s: %w", n.Attribute.Name(), err)
		}
		probabilities[v] = p
	}
	return pickValue(probabilities, rng.Float64()), nil
}

/*
pickValue partitions [0,1) into contiguous sub-intervals proportional
to the given probabilities, in domain order, and returns the index of
the sub-interval containing pick. If rounding leaves pick beyond the
last interval's end, the highest value with non-zero probability is
returned.
*/
func pickValue(probabilities []float64, pick float64) int {
	begin, end := 0.0, 0.0
	last := 0
	for v, p := range probabilities {
		if p == 0 {
			continue
		}
		begin = end
		end += p
		last = v
		if pick >= begin && pick < end {
			return v
		}
	}
	return last
}
