/*
Package bramble learns the structure and parameters of discrete
bayesian networks from tabular datasets and generates new synthetic
data from the learned joint distribution.

Structures can be learned with greedy local search (LearnHillClimbing),
with mutual-information-restricted local search (LearnSparseCandidate)
or as tree-augmented naive bayes networks (LearnTAN). Learned networks
carry a maximum-likelihood conditional probability table per node and
can be sampled with Generate.
*/
package bramble

import (
	"context"
	"fmt"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
)

const (
	// DefaultMaxRounds is the number of restrict/maximize rounds
	// sparse candidate search runs when Config.MaxRounds is not set.
	DefaultMaxRounds = 10
)

/*
Operator identifies one of the three single-edge moves hill climbing
search applies to a candidate structure.
*/
type Operator int

const (
	// OperatorAdd adds an edge parent->child
	OperatorAdd Operator = iota
	// OperatorRemove removes an existing edge
	OperatorRemove
	// OperatorReverse reverses the direction of an existing edge
	OperatorReverse
)

func (o Operator) String() string {
	switch o {
	case OperatorAdd:
		return "add"
	case OperatorRemove:
		return "remove"
	case OperatorReverse:
		return "reverse"
	}
	return fmt.Sprintf("unknown operator %d", int(o))
}

/*
Observer is an optional hook search procedures notify of every accepted
move, with the network score after applying it. Observers must not
mutate the network; they exist for progress reporting only.
*/
type Observer func(op Operator, parent, child int, score float64)

/*
Config gathers the parameters of the structure-learning searches.
*/
type Config struct {
	// MaxParents caps the number of parents a node can acquire.
	// 0 means no cap.
	MaxParents int
	// CandidateSetSize is the number of candidate parents sparse
	// candidate search keeps per node. 0 means all other nodes.
	// Ignored by hill climbing.
	CandidateSetSize int
	// MaxRounds bounds the restrict/maximize rounds of sparse
	// candidate search. 0 means DefaultMaxRounds. Ignored by hill
	// climbing.
	MaxRounds int
	// Seed seeds the random source of data generation started from
	// this config.
	Seed int64
	// Observer, if not nil, is notified of accepted search moves.
	Observer Observer
}

func (c *Config) maxRounds() int {
	if c == nil || c.MaxRounds <= 0 {
		return DefaultMaxRounds
	}
	return c.MaxRounds
}

func (c *Config) maxParents() int {
	if c == nil {
		return 0
	}
	return c.MaxParents
}

func (c *Config) observe(op Operator, parent, child int, score float64) {
	if c == nil || c.Observer == nil {
		return
	}
	c.Observer(op, parent, child, score)
}

/*
nominalSchema returns the dataset's attributes, which must all be
nominal for the dataset to be learned from: continuous attributes have
no CPD representation.
*/
func nominalSchema(ctx context.Context, ds dataset.Dataset) ([]*attribute.NominalAttribute, error) {
	attrs, err := ds.Attributes(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading dataset schema: %v", err)
	}
	nominal := make([]*attribute.NominalAttribute, 0, len(attrs))
	for _, a := range attrs {
		na, ok := a.(*attribute.NominalAttribute)
		if !ok {
			return nil, fmt.Errorf("attribute %s is not nominal: bayesian networks can only be learned over nominal attributes", a.Name())
		}
		nominal = append(nominal, na)
	}
	return nominal, nil
}

// parentAttributes resolves a node's parent ids to their attributes
func parentAttributes(bn *network.Network, parents []int) []*attribute.NominalAttribute {
	attrs := make([]*attribute.NominalAttribute, len(parents))
	for i, p := range parents {
		attrs[i] = bn.Node(p).Attribute
	}
	return attrs
}

/*
buildCPDs builds and attaches the CPD of every node in the network from
the given dataset. Searches call it once on their final structure;
CPDs for intermediate candidate structures only ever exist inside the
scorer.
*/
func buildCPDs(ctx context.Context, bn *network.Network, ds dataset.Dataset) error {
	for _, n := range bn.Nodes() {
		cpd, err := network.BuildCPD(ctx, n.Attribute, parentAttributes(bn, n.Parents), ds)
		if err != nil {
			return err
		}
		n.CPD = cpd
	}
	return nil
}
