package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
)

// ErrMissingAssignment indicates a CPD was queried for a parent value
// combination that no training instance ever realized. The CPD does
// not fabricate a probability for it: callers decide whether to treat
// the combination as impossible or apply their own backoff.
var ErrMissingAssignment = errors.New("network: parent value assignment never observed")

/*
Query is a value assignment submitted to a CPD for a probability
lookup: a mapping of attribute ids to nominal value codes. It must
assign a value to the CPD's own attribute and to every parent of the
CPD; assignments for other attributes are ignored.
*/
type Query map[int]int

/*
CPD is the conditional probability table of a node: for every parent
value assignment observed in the training data, a probability
distribution over the node's own value domain.

CPDs are pure functions of the dataset and the parent set they were
built with: they must be rebuilt with BuildCPD whenever the node's
parent set changes.
*/
type CPD struct {
	attr    *attribute.NominalAttribute
	parents []*attribute.NominalAttribute
	// distribution over attr's values per parent assignment,
	// keyed by mixed-radix index over the parent value codes
	dist map[int][]float64
}

/*
BuildCPD takes a context, a nominal attribute, the attribute's parents
and a dataset and builds the conditional probability table of the
attribute given its parents: it counts the co-occurrences of every
(parent assignment, own value) combination over the dataset's
instances and normalizes each parent assignment's counts into a
probability distribution.

Counts are unsmoothed maximum-likelihood estimates: parent assignments
absent from the data get no distribution at all and querying them
fails with ErrMissingAssignment. Instances missing a value for the
attribute or any parent are skipped.
*/
func BuildCPD(ctx context.Context, attr *attribute.NominalAttribute, parents []*attribute.NominalAttribute, ds dataset.Dataset) (*CPD, error) {
	cpd := &CPD{attr: attr, parents: parents, dist: make(map[int][]float64)}
	instances, err := ds.Instances(ctx)
	if err != nil {
		return nil, fmt.Errorf("building CPD for %s: %v", attr.Name(), err)
	}
	counts := make(map[int][]float64)
	for _, inst := range instances {
		v, ok := inst.Value(attr)
		if !ok {
			continue
		}
		idx, ok := cpd.assignmentIndexOf(inst)
		if !ok {
			continue
		}
		c := counts[idx]
		if c == nil {
			c = make([]float64, attr.Cardinality())
			counts[idx] = c
		}
		c[v]++
	}
	for idx, c := range counts {
		var total float64
		for _, n := range c {
			total += n
		}
		dist := make([]float64, len(c))
		for i, n := range c {
			dist[i] = n / total
		}
		cpd.dist[idx] = dist
	}
	return cpd, nil
}

// Attribute returns the nominal attribute the CPD distributes over
func (c *CPD) Attribute() *attribute.NominalAttribute {
	return c.attr
}

// Parents returns the parent attributes the CPD conditions on
func (c *CPD) Parents() []*attribute.NominalAttribute {
	return c.parents
}

/*
Query takes a value assignment and returns the conditional probability
of the assignment's value for the CPD's own attribute given the
assignment's values for the CPD's parents.

It returns ErrMissingAssignment if the parent value combination was
never observed in the training data, and a different error if the
assignment misses a value for the CPD's attribute or any parent or
assigns a value out of an attribute's domain.
*/
func (c *CPD) Query(q Query) (float64, error) {
	v, ok := q[c.attr.ID()]
	if !ok {
		return 0, fmt.Errorf("querying CPD for %s: query assigns no value to %s", c.attr.Name(), c.attr.Name())
	}
	if v < 0 || v >= c.attr.Cardinality() {
		return 0, fmt.Errorf("querying CPD for %s: value code %d out of domain", c.attr.Name(), v)
	}
	idx := 0
	stride := 1
	for _, p := range c.parents {
		pv, ok := q[p.ID()]
		if !ok {
			return 0, fmt.Errorf("querying CPD for %s: query assigns no value to parent %s", c.attr.Name(), p.Name())
		}
		if pv < 0 || pv >= p.Cardinality() {
			return 0, fmt.Errorf("querying CPD for %s: value code %d out of domain of parent %s", c.attr.Name(), pv, p.Name())
		}
		idx += pv * stride
		stride *= p.Cardinality()
	}
	dist, ok := c.dist[idx]
	if !ok {
		return 0, ErrMissingAssignment
	}
	return dist[v], nil
}

/*
Assignments returns the number of distinct parent value assignments the
CPD holds a distribution for.
*/
func (c *CPD) Assignments() int {
	return len(c.dist)
}

/*
Distributions calls the given function with every (parent assignment
index, distribution) pair in the table, stopping early if the function
returns false. Iteration order is unspecified.
*/
func (c *CPD) Distributions(f func(int, []float64) bool) {
	for idx, dist := range c.dist {
		if !f(idx, dist) {
			return
		}
	}
}

// assignmentIndexOf computes the mixed-radix parent assignment index
// for an instance, reporting false if the instance misses a value for
// any parent.
func (c *CPD) assignmentIndexOf(inst dataset.Instance) (int, bool) {
	idx := 0
	stride := 1
	for _, p := range c.parents {
		pv, ok := inst.Value(p)
		if !ok || pv < 0 || pv >= p.Cardinality() {
			return 0, false
		}
		idx += pv * stride
		stride *= p.Cardinality()
	}
	return idx, true
}
