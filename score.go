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
Score returns the bayesian information criterion score of the network's
structure against the given dataset: the sum over nodes of the
log-likelihood of the dataset under the node's CPD given its parents,
minus a complexity penalty of 0.5*ln(N) per free parameter.

The score decomposes per node because each node's CPD depends only on
its own parents, which lets the searches re-score only the nodes an
edge change affects.
*/
func Score(ctx context.Context, bn *network.Network, ds dataset.Dataset) (float64, error) {
	var total float64
	for _, n := range bn.Nodes() {
		s, err := scoreNode(ctx, ds, n.Attribute, parentAttributes(bn, n.Parents))
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

/*
scoreNode computes the BIC score of a single node under a candidate
parent set: the log-likelihood of the dataset under the
maximum-likelihood CPD of the node given the parents, minus
0.5*ln(N)*freeParams with
freeParams = (|dom(node)|-1) * product of |dom(parent)|.

A zero conditional probability makes the log-likelihood -Inf; the
candidate then loses every comparison but no error is reported, since
a structure the data contradicts is a legitimately terrible candidate,
not a failure.
*/
func scoreNode(ctx context.Context, ds dataset.Dataset, attr *attribute.NominalAttribute, parents []*attribute.NominalAttribute) (float64, error) {
	cpd, err := network.BuildCPD(ctx, attr, parents, ds)
	if err != nil {
		return 0, err
	}
	instances, err := ds.Instances(ctx)
	if err != nil {
		return 0, fmt.Errorf("scoring %s: %v", attr.Name(), err)
	}
	var loglik float64
	q := make(network.Query, len(parents)+1)
	for _, inst := range instances {
		if !instanceQuery(inst, attr, parents, q) {
			continue
		}
		p, err := cpd.Query(q)
		if err != nil {
			return 0, fmt.Errorf("scoring %s: %v", attr.Name(), err)
		}
		if p == 0 {
			loglik = math.Inf(-1)
			break
		}
		loglik += math.Log(p)
	}
	count, err := ds.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("scoring %s: %v", attr.Name(), err)
	}
	freeParams := float64(attr.Cardinality() - 1)
	for _, p := range parents {
		freeParams *= float64(p.Cardinality())
	}
	return loglik - 0.5*math.Log(float64(count))*freeParams, nil
}

/*
instanceQuery fills q with the instance's values for the given
attribute and parents, reporting false if the instance misses any of
them. The same instances are skipped here as when building the CPD, so
a filled query always hits an observed assignment.
*/
func instanceQuery(inst dataset.Instance, attr *attribute.NominalAttribute, parents []*attribute.NominalAttribute, q network.Query) bool {
	clear(q)
	v, ok := inst.Value(attr)
	if !ok {
		return false
	}
	q[attr.ID()] = v
	for _, p := range parents {
		pv, ok := inst.Value(p)
		if !ok {
			return false
		}
		q[p.ID()] = pv
	}
	return true
}
