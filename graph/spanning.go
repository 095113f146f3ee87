package graph

import (
	"errors"
	"math"
)

// ErrDisconnectedGraph indicates a spanning tree was requested on a
// graph whose vertices are not all connected.
var ErrDisconnectedGraph = errors.New("graph: graph is not connected")

/*
Undirected is an undirected weighted graph over a fixed vertex set. The
zero value is not usable: use NewUndirected.
*/
type Undirected struct {
	order   int
	weight  [][]float64
	present [][]bool
}

/*
Edge is an undirected weighted edge between the vertices U and V.
*/
type Edge struct {
	U, V   int
	Weight float64
}

/*
NewUndirected takes the number of vertices and returns an undirected
weighted graph over the vertex set 0..order-1 with no edges.
*/
func NewUndirected(order int) *Undirected {
	weight := make([][]float64, order)
	present := make([][]bool, order)
	for i := range weight {
		weight[i] = make([]float64, order)
		present[i] = make([]bool, order)
	}
	return &Undirected{order, weight, present}
}

// Order returns the number of vertices in the graph
func (g *Undirected) Order() int {
	return g.order
}

/*
AddEdge adds an edge between u and v with the given weight, replacing
any previous edge between them. It returns ErrVertexNotFound if either
vertex is outside the graph's vertex set and ignores self-edges.
*/
func (g *Undirected) AddEdge(u, v int, weight float64) error {
	if u < 0 || u >= g.order || v < 0 || v >= g.order {
		return ErrVertexNotFound
	}
	if u == v {
		return nil
	}
	g.weight[u][v] = weight
	g.weight[v][u] = weight
	g.present[u][v] = true
	g.present[v][u] = true
	return nil
}

/*
Weight returns the weight of the edge between u and v and a boolean
that is false when the graph has no such edge.
*/
func (g *Undirected) Weight(u, v int) (float64, bool) {
	if u < 0 || u >= g.order || v < 0 || v >= g.order {
		return 0, false
	}
	return g.weight[u][v], g.present[u][v]
}

/*
MaximumSpanningTree builds a spanning tree of the graph maximizing the
total edge weight and returns its order-1 edges, or
ErrDisconnectedGraph if the graph does not connect all its vertices.

The tree is grown from vertex 0, at each step adding the highest-weight
edge connecting the tree to a vertex outside it. Ties are broken in
favor of the lower-numbered destination vertex, so the result is
deterministic for a fixed graph.
*/
func (g *Undirected) MaximumSpanningTree() ([]Edge, error) {
	if g.order == 0 {
		return nil, nil
	}
	inTree := make([]bool, g.order)
	best := make([]float64, g.order)
	bestFrom := make([]int, g.order)
	for v := range best {
		best[v] = math.Inf(-1)
		bestFrom[v] = -1
	}
	inTree[0] = true
	for v := 1; v < g.order; v++ {
		if g.present[0][v] {
			best[v] = g.weight[0][v]
			bestFrom[v] = 0
		}
	}
	tree := make([]Edge, 0, g.order-1)
	for len(tree) < g.order-1 {
		next := -1
		for v := 0; v < g.order; v++ {
			if inTree[v] || bestFrom[v] < 0 {
				continue
			}
			if next < 0 || best[v] > best[next] {
				next = v
			}
		}
		if next < 0 {
			return nil, ErrDisconnectedGraph
		}
		inTree[next] = true
		tree = append(tree, Edge{U: bestFrom[next], V: next, Weight: best[next]})
		for v := 0; v < g.order; v++ {
			if inTree[v] || !g.present[next][v] {
				continue
			}
			if bestFrom[v] < 0 || g.weight[next][v] > best[v] {
				best[v] = g.weight[next][v]
				bestFrom[v] = next
			}
		}
	}
	return tree, nil
}
