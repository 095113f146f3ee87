package bramble

import (
	"context"
	"fmt"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/dataset"
	"github.com/pbanos/bramble/graph"
	"github.com/pbanos/bramble/network"
)

/*
LearnTAN takes a context, a dataset and the dataset's class attribute
and builds a tree-augmented naive bayes network:

1. it estimates the conditional mutual information given the class for
every unordered pair of non-class attributes,
2. builds the maximum spanning tree of the complete graph weighted by
it,
3. orients the tree away from its lowest-numbered vertex, and
4. adds the class attribute as a parent of every other node.

Every non-class node therefore ends with the class plus at most one
tree parent, and the class node is parentless. The returned network
carries a CPD per node built from the dataset.
*/
func LearnTAN(ctx context.Context, ds dataset.Dataset, class attribute.Attribute) (*network.Network, error) {
	attrs, err := nominalSchema(ctx, ds)
	if err != nil {
		return nil, err
	}
	classAttr, ok := class.(*attribute.NominalAttribute)
	if !ok {
		return nil, fmt.Errorf("class attribute %s is not nominal", class.Name())
	}
	if classAttr.ID() < 0 || classAttr.ID() >= len(attrs) || attrs[classAttr.ID()] != classAttr {
		return nil, fmt.Errorf("class attribute %s does not belong to the dataset", class.Name())
	}
	bn, err := network.New(attrs)
	if err != nil {
		return nil, err
	}
	var nonClass []*attribute.NominalAttribute
	for _, a := range attrs {
		if a != classAttr {
			nonClass = append(nonClass, a)
		}
	}
	if len(nonClass) > 1 {
		// complete CMI-weighted graph over the non-class attributes,
		// with vertices re-numbered by position in nonClass
		g := graph.NewUndirected(len(nonClass))
		for i := 0; i < len(nonClass); i++ {
			for j := i + 1; j < len(nonClass); j++ {
				cmi, err := conditionalMutualInformation(ctx, ds, nonClass[i], nonClass[j], classAttr)
				if err != nil {
					return nil, err
				}
				g.AddEdge(i, j, cmi)
			}
		}
		tree, err := g.MaximumSpanningTree()
		if err != nil {
			return nil, fmt.Errorf("building TAN attribute tree: %v", err)
		}
		for _, e := range orientFromRoot(tree, len(nonClass)) {
			if err := bn.AddEdge(nonClass[e.U].ID(), nonClass[e.V].ID()); err != nil {
				return nil, fmt.Errorf("building TAN attribute tree: %v", err)
			}
		}
	}
	for _, a := range nonClass {
		if err := bn.AddEdge(classAttr.ID(), a.ID()); err != nil {
			return nil, fmt.Errorf("adding class parent: %v", err)
		}
	}
	if err := buildCPDs(ctx, bn, ds); err != nil {
		return nil, err
	}
	return bn, nil
}

/*
orientFromRoot takes the undirected edges of a spanning tree over the
vertices 0..order-1 and returns them oriented away from vertex 0, via
a breadth-first traversal with an explicit queue.
*/
func orientFromRoot(tree []graph.Edge, order int) []graph.Edge {
	adjacent := make([][]int, order)
	for _, e := range tree {
		adjacent[e.U] = append(adjacent[e.U], e.V)
		adjacent[e.V] = append(adjacent[e.V], e.U)
	}
	oriented := make([]graph.Edge, 0, len(tree))
	visited := make([]bool, order)
	visited[0] = true
	queue := []int{0}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adjacent[u] {
			if visited[v] {
				continue
			}
			visited[v] = true
			oriented = append(oriented, graph.Edge{U: u, V: v})
			queue = append(queue, v)
		}
	}
	return oriented
}
