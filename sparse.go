package bramble

import (
	"context"
	"fmt"
	"sort"

	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
)

/*
LearnSparseCandidate takes a context, a dataset and a config and learns
a bayesian network structure by sparse candidate search: it restricts
every node's legal parents to the config's CandidateSetSize other
attributes with the highest pairwise mutual information with it, runs
hill climbing inside that restriction, and repeats both phases until
the structure is stable across consecutive rounds or the config's
MaxRounds is reached.

Restricting the operator space before optimizing bounds the search cost
for wide datasets, trading completeness for tractability. The returned
network carries a CPD per node built from the dataset for the final
structure.
*/
func LearnSparseCandidate(ctx context.Context, ds dataset.Dataset, cfg *Config) (*network.Network, error) {
	attrs, err := nominalSchema(ctx, ds)
	if err != nil {
		return nil, err
	}
	bn, err := network.New(attrs)
	if err != nil {
		return nil, err
	}
	var previous string
	for round := 0; round < cfg.maxRounds(); round++ {
		candidates, err := candidateSets(ctx, ds, bn, cfg)
		if err != nil {
			return nil, err
		}
		if err := hillClimb(ctx, ds, bn, cfg, candidates); err != nil {
			return nil, err
		}
		signature := structureSignature(bn)
		if signature == previous {
			break
		}
		previous = signature
	}
	if err := buildCPDs(ctx, bn, ds); err != nil {
		return nil, err
	}
	return bn, nil
}

/*
candidateSets computes the restrict phase: for every node, the other
attributes ranked by pairwise mutual information with it, keeping the
top CandidateSetSize as legal parent candidates. Ties rank the
lower-numbered attribute first, keeping the restriction deterministic.
*/
func candidateSets(ctx context.Context, ds dataset.Dataset, bn *network.Network, cfg *Config) ([][]bool, error) {
	order := bn.Order()
	k := order - 1
	if cfg != nil && cfg.CandidateSetSize > 0 && cfg.CandidateSetSize < k {
		k = cfg.CandidateSetSize
	}
	// mutual information is symmetric: compute each unordered pair once
	mi := make([][]float64, order)
	for i := range mi {
		mi[i] = make([]float64, order)
	}
	for i := 0; i < order; i++ {
		for j := i + 1; j < order; j++ {
			m, err := mutualInformation(ctx, ds, bn.Node(i).Attribute, bn.Node(j).Attribute)
			if err != nil {
				return nil, err
			}
			mi[i][j] = m
			mi[j][i] = m
		}
	}
	candidates := make([][]bool, order)
	for child := 0; child < order; child++ {
		ranked := make([]int, 0, order-1)
		for parent := 0; parent < order; parent++ {
			if parent != child {
				ranked = append(ranked, parent)
			}
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			return mi[child][ranked[a]] > mi[child][ranked[b]]
		})
		candidates[child] = make([]bool, order)
		for _, parent := range ranked[:k] {
			candidates[child][parent] = true
		}
	}
	return candidates, nil
}

// structureSignature renders the edge set to compare structures across
// restrict/maximize rounds
func structureSignature(bn *network.Network) string {
	var sig string
	for _, n := range bn.Nodes() {
		sig += fmt.Sprintf("%d<%v;", n.Attribute.ID(), n.Parents)
	}
	return sig
}
