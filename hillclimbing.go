package bramble

import (
	"context"
	"fmt"
	"math"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/network"
)

/*
LearnHillClimbing takes a context, a dataset and a config and learns a
bayesian network structure for the dataset's attributes by greedy local
search: starting from the empty graph, it repeatedly applies the
single-edge operator (add, remove or reverse) that most increases the
network's BIC score, stopping at the first local optimum, where no
operator strictly improves the score.

Only operators that keep the graph acyclic and respect the config's
MaxParents cap are considered. The returned network carries a CPD per
node built from the dataset for the final structure.
*/
func LearnHillClimbing(ctx context.Context, ds dataset.Dataset, cfg *Config) (*network.Network, error) {
	attrs, err := nominalSchema(ctx, ds)
	if err != nil {
		return nil, err
	}
	bn, err := network.New(attrs)
	if err != nil {
		return nil, err
	}
	if err := hillClimb(ctx, ds, bn, cfg, nil); err != nil {
		return nil, err
	}
	if err := buildCPDs(ctx, bn, ds); err != nil {
		return nil, err
	}
	return bn, nil
}

// move is a single-edge operator application under evaluation
type move struct {
	op            Operator
	parent, child int
	delta         float64
}

/*
hillClimb runs greedy local search on the given network in place until
no legal operator strictly improves the BIC score.

candidates, when not nil, restricts the parents a node may acquire:
candidates[child][parent] must be true for an edge parent->child to be
added or created by a reversal. Edge removals are never restricted.

Candidate moves are evaluated against copies of the affected parent
sets: the live network only changes when the winning move of an
iteration is committed. The enumeration order is fixed (children by
ascending attribute id, then parents by ascending attribute id, then
add < remove < reverse) and the first strictly best move wins ties, so
search is deterministic for a fixed dataset.
*/
func hillClimb(ctx context.Context, ds dataset.Dataset, bn *network.Network, cfg *Config, candidates [][]bool) error {
	order := bn.Order()
	scores := make([]float64, order)
	for id := 0; id < order; id++ {
		n := bn.Node(id)
		s, err := scoreNode(ctx, ds, n.Attribute, parentAttributes(bn, n.Parents))
		if err != nil {
			return err
		}
		scores[id] = s
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var best *move
		for child := 0; child < order; child++ {
			for parent := 0; parent < order; parent++ {
				if parent == child {
					continue
				}
				if !bn.HasEdge(parent, child) {
					m, err := evalAdd(ctx, ds, bn, cfg, candidates, scores, parent, child)
					if err != nil {
						return err
					}
					best = better(best, m)
					continue
				}
				m, err := evalRemove(ctx, ds, bn, scores, parent, child)
				if err != nil {
					return err
				}
				best = better(best, m)
				m, err = evalReverse(ctx, ds, bn, cfg, candidates, scores, parent, child)
				if err != nil {
					return err
				}
				best = better(best, m)
			}
		}
		if best == nil {
			return nil
		}
		if err := commit(bn, best); err != nil {
			return err
		}
		for _, id := range []int{best.parent, best.child} {
			n := bn.Node(id)
			s, err := scoreNode(ctx, ds, n.Attribute, parentAttributes(bn, n.Parents))
			if err != nil {
				return err
			}
			scores[id] = s
		}
		total := 0.0
		for _, s := range scores {
			total += s
		}
		cfg.observe(best.op, best.parent, best.child, total)
	}
}

/*
evalAdd evaluates adding the edge parent->child, returning nil if the
move is illegal (candidate restriction, MaxParents cap or acyclicity)
or does not strictly improve the child's score.
*/
func evalAdd(ctx context.Context, ds dataset.Dataset, bn *network.Network, cfg *Config, candidates [][]bool, scores []float64, parent, child int) (*move, error) {
	if candidates != nil && !candidates[child][parent] {
		return nil, nil
	}
	n := bn.Node(child)
	if cap := cfg.maxParents(); cap > 0 && len(n.Parents) >= cap {
		return nil, nil
	}
	g := bn.Digraph()
	g.AddEdge(parent, child)
	if g.HasCycle() {
		return nil, nil
	}
	parents := append(parentAttributes(bn, n.Parents), bn.Node(parent).Attribute)
	s, err := scoreNode(ctx, ds, n.Attribute, parents)
	if err != nil {
		return nil, err
	}
	return improving(&move{OperatorAdd, parent, child, s - scores[child]}), nil
}

/*
evalRemove evaluates removing the edge parent->child, returning nil if
the move does not strictly improve the child's score. Removals are
always legal.
*/
func evalRemove(ctx context.Context, ds dataset.Dataset, bn *network.Network, scores []float64, parent, child int) (*move, error) {
	n := bn.Node(child)
	s, err := scoreNode(ctx, ds, n.Attribute, parentAttributesWithout(bn, n.Parents, parent))
	if err != nil {
		return nil, err
	}
	return improving(&move{OperatorRemove, parent, child, s - scores[child]}), nil
}

/*
evalReverse evaluates reversing the edge parent->child into
child->parent, which re-scores both endpoints. It returns nil if the
move is illegal for the new edge (candidate restriction, MaxParents cap
on the old parent, acyclicity) or if the sum of both endpoint scores
does not strictly improve.
*/
func evalReverse(ctx context.Context, ds dataset.Dataset, bn *network.Network, cfg *Config, candidates [][]bool, scores []float64, parent, child int) (*move, error) {
	if candidates != nil && !candidates[parent][child] {
		return nil, nil
	}
	p := bn.Node(parent)
	if cap := cfg.maxParents(); cap > 0 && len(p.Parents) >= cap {
		return nil, nil
	}
	g := bn.Digraph()
	g.RemoveEdge(parent, child)
	g.AddEdge(child, parent)
	if g.HasCycle() {
		return nil, nil
	}
	n := bn.Node(child)
	childScore, err := scoreNode(ctx, ds, n.Attribute, parentAttributesWithout(bn, n.Parents, parent))
	if err != nil {
		return nil, err
	}
	parentScore, err := scoreNode(ctx, ds, p.Attribute, append(parentAttributes(bn, p.Parents), n.Attribute))
	if err != nil {
		return nil, err
	}
	delta := childScore + parentScore - scores[child] - scores[parent]
	return improving(&move{OperatorReverse, parent, child, delta}), nil
}

// commit applies the winning move of an iteration to the live network
func commit(bn *network.Network, m *move) error {
	var err error
	switch m.op {
	case OperatorAdd:
		err = bn.AddEdge(m.parent, m.child)
	case OperatorRemove:
		err = bn.RemoveEdge(m.parent, m.child)
	case OperatorReverse:
		err = bn.ReverseEdge(m.parent, m.child)
	default:
		err = fmt.Errorf("cannot commit %v", m.op)
	}
	if err != nil {
		return fmt.Errorf("committing %v %d->%d: %v", m.op, m.parent, m.child, err)
	}
	return nil
}

/*
improving filters a candidate move: moves whose score delta is not a
strictly positive real number are discarded. This is where candidates
with -Inf log-likelihood (zero probabilities) lose: their delta is
-Inf or NaN, never an improvement.
*/
func improving(m *move) *move {
	if math.IsNaN(m.delta) || m.delta <= 0 {
		return nil
	}
	return m
}

// better keeps the strictly best move; on ties the earlier one wins
func better(best, m *move) *move {
	if m == nil {
		return best
	}
	if best == nil || m.delta > best.delta {
		return m
	}
	return best
}

func parentAttributesWithout(bn *network.Network, parents []int, exclude int) []*attribute.NominalAttribute {
	attrs := make([]*attribute.NominalAttribute, 0, len(parents)-1)
	for _, p := range parents {
		if p != exclude {
			attrs = append(attrs, bn.Node(p).Attribute)
		}
	}
	return attrs
}
