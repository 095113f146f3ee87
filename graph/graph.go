/*
Package graph provides the directed and undirected graph primitives the
bramble structure-learning algorithms are built on: cycle detection and
topological ordering over a fixed vertex set, and maximum-weight
spanning trees.

Vertices are the integers 0..order-1, matching the attribute ids of the
dataset a graph is built over.
*/
package graph

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"
)

// ErrCyclicGraph indicates a topological order was requested on a graph
// containing a cycle.
var ErrCyclicGraph = errors.New("graph: graph contains a cycle")

// ErrVertexNotFound indicates an operation referenced a vertex outside
// the graph's vertex set.
var ErrVertexNotFound = errors.New("graph: vertex not found")

/*
Directed is a directed graph over a fixed vertex set. The zero value is
not usable: use NewDirected.
*/
type Directed struct {
	order int
	succ  []map[int]bool
}

/*
NewDirected takes the number of vertices and returns a directed graph
over the vertex set 0..order-1 with no edges.
*/
func NewDirected(order int) *Directed {
	succ := make([]map[int]bool, order)
	for i := range succ {
		succ[i] = make(map[int]bool)
	}
	return &Directed{order, succ}
}

// Order returns the number of vertices in the graph
func (g *Directed) Order() int {
	return g.order
}

/*
AddEdge adds the edge from->to to the graph. It returns
ErrVertexNotFound if either vertex is outside the graph's vertex set.
Adding an existing edge is a no-op.
*/
func (g *Directed) AddEdge(from, to int) error {
	if from < 0 || from >= g.order || to < 0 || to >= g.order {
		return ErrVertexNotFound
	}
	g.succ[from][to] = true
	return nil
}

/*
RemoveEdge removes the edge from->to from the graph. Removing an absent
edge is a no-op.
*/
func (g *Directed) RemoveEdge(from, to int) {
	if from < 0 || from >= g.order {
		return
	}
	delete(g.succ[from], to)
}

// HasEdge returns whether the graph contains the edge from->to
func (g *Directed) HasEdge(from, to int) bool {
	if from < 0 || from >= g.order {
		return false
	}
	return g.succ[from][to]
}

/*
Clone returns an independent copy of the graph with the same vertex set
and edges.
*/
func (g *Directed) Clone() *Directed {
	c := NewDirected(g.order)
	for from, tos := range g.succ {
		for to := range tos {
			c.succ[from][to] = true
		}
	}
	return c
}

const (
	colorWhite = iota // undiscovered
	colorGrey         // on the traversal stack
	colorBlack        // fully explored
)

/*
HasCycle returns whether the graph contains a directed cycle. It runs a
depth-first traversal with an explicit stack, reporting a cycle when an
edge back to a vertex still on the stack is found.
*/
func (g *Directed) HasCycle() bool {
	color := make([]int, g.order)
	type frame struct {
		vertex    int
		neighbors []int
		next      int
	}
	for start := 0; start < g.order; start++ {
		if color[start] != colorWhite {
			continue
		}
		stack := []frame{{start, g.successors(start), 0}}
		color[start] = colorGrey
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.neighbors) {
				color[top.vertex] = colorBlack
				stack = stack[:len(stack)-1]
				continue
			}
			n := top.neighbors[top.next]
			top.next++
			switch color[n] {
			case colorGrey:
				return true
			case colorWhite:
				color[n] = colorGrey
				stack = append(stack, frame{n, g.successors(n), 0})
			}
		}
	}
	return false
}

/*
TopologicalOrder returns an ordering of the graph's vertices in which
every edge's origin precedes its destination, or ErrCyclicGraph if the
graph contains a cycle.

The ordering is deterministic for a fixed graph: among vertices with no
remaining incoming edges the lowest-numbered one is emitted first.
*/
func (g *Directed) TopologicalOrder() ([]int, error) {
	indegree := make([]int, g.order)
	for _, tos := range g.succ {
		for to := range tos {
			indegree[to]++
		}
	}
	ready := &vertexMinHeap{}
	heap.Init(ready)
	for v := 0; v < g.order; v++ {
		if indegree[v] == 0 {
			heap.Push(ready, v)
		}
	}
	order := make([]int, 0, g.order)
	for ready.Len() > 0 {
		v := heap.Pop(ready).(int)
		order = append(order, v)
		for _, n := range g.successors(v) {
			indegree[n]--
			if indegree[n] == 0 {
				heap.Push(ready, n)
			}
		}
	}
	if len(order) != g.order {
		return nil, fmt.Errorf("ordering %d vertices: %w", g.order, ErrCyclicGraph)
	}
	return order, nil
}

func (g *Directed) successors(v int) []int {
	ns := make([]int, 0, len(g.succ[v]))
	for n := range g.succ[v] {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	return ns
}

// vertexMinHeap implements heap.Interface for vertex ids.
type vertexMinHeap []int

func (h vertexMinHeap) Len() int            { return len(h) }
func (h vertexMinHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h vertexMinHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *vertexMinHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *vertexMinHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
