/*
Package network defines the bayesian network model learned by bramble:
a set of nodes wrapping nominal attributes, each with an ordered parent
set and a conditional probability table, forming a directed acyclic
graph.
*/
package network

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/bramble/attribute"
	"github.com/pbanos/bramble/graph"
)

// ErrInvalidStructure indicates an edge operation was applied that the
// network cannot accept: an unknown or repeated edge, a self-edge or an
// edge that would introduce a directed cycle. Search procedures check
// legality before applying operators, so hitting this error from them
// signals a bug.
var ErrInvalidStructure = errors.New("network: invalid structure operation")

/*
Node is a node of a bayesian network. It wraps exactly one nominal
attribute and holds the ids of its parent nodes and its conditional
probability table.
*/
type Node struct {
	// The nominal attribute the node wraps
	Attribute *attribute.NominalAttribute
	// The ids of the node's parent nodes, in ascending order.
	// Parents are referenced by id rather than owned: the network
	// owns every node.
	Parents []int
	// The conditional probability table for the node's attribute
	// given its parents. It must be rebuilt whenever the parent
	// set changes.
	CPD *CPD
}

/*
Network is a bayesian network: it owns the full set of nodes and
therefore the DAG they form. Networks are created without edges and
mutated through AddEdge, RemoveEdge and ReverseEdge, all of which
re-validate acyclicity before committing.
*/
type Network struct {
	nodes []*Node
}

/*
New takes a slice of nominal attributes and returns a network with one
parentless node per attribute and no edges. The attribute ids must be
exactly the indices of the attributes in the slice, so that nodes can
be addressed by attribute id.
*/
func New(attributes []*attribute.NominalAttribute) (*Network, error) {
	nodes := make([]*Node, len(attributes))
	for i, a := range attributes {
		if a.ID() != i {
			return nil, fmt.Errorf("attribute %s has id %d, expected %d: network attributes must be contiguously numbered", a.Name(), a.ID(), i)
		}
		nodes[i] = &Node{Attribute: a}
	}
	return &Network{nodes}, nil
}

// Order returns the number of nodes in the network
func (bn *Network) Order() int {
	return len(bn.nodes)
}

/*
Node returns the node wrapping the attribute with the given id or nil
if the id is out of range.
*/
func (bn *Network) Node(id int) *Node {
	if id < 0 || id >= len(bn.nodes) {
		return nil
	}
	return bn.nodes[id]
}

// Nodes returns the network's nodes indexed by attribute id
func (bn *Network) Nodes() []*Node {
	return bn.nodes
}

// HasEdge returns whether the network contains the edge parent->child
func (bn *Network) HasEdge(parent, child int) bool {
	n := bn.Node(child)
	if n == nil {
		return false
	}
	for _, p := range n.Parents {
		if p == parent {
			return true
		}
	}
	return false
}

/*
AddEdge adds parent to the parent set of child. It returns
ErrInvalidStructure if either id is unknown, the edge is a self-edge,
the edge already exists or adding it would introduce a directed cycle.
The network is left unchanged on error.
*/
func (bn *Network) AddEdge(parent, child int) error {
	if bn.Node(parent) == nil || bn.Node(child) == nil || parent == child {
		return fmt.Errorf("adding edge %d->%d: %w", parent, child, ErrInvalidStructure)
	}
	if bn.HasEdge(parent, child) {
		return fmt.Errorf("adding edge %d->%d: edge exists: %w", parent, child, ErrInvalidStructure)
	}
	g := bn.Digraph()
	g.AddEdge(parent, child)
	if g.HasCycle() {
		return fmt.Errorf("adding edge %d->%d: would create a cycle: %w", parent, child, ErrInvalidStructure)
	}
	n := bn.Node(child)
	n.Parents = insertParent(n.Parents, parent)
	n.CPD = nil
	return nil
}

/*
RemoveEdge removes parent from the parent set of child. It returns
ErrInvalidStructure if the network has no such edge. The network is
left unchanged on error.
*/
func (bn *Network) RemoveEdge(parent, child int) error {
	if !bn.HasEdge(parent, child) {
		return fmt.Errorf("removing edge %d->%d: no such edge: %w", parent, child, ErrInvalidStructure)
	}
	n := bn.Node(child)
	parents := make([]int, 0, len(n.Parents)-1)
	for _, p := range n.Parents {
		if p != parent {
			parents = append(parents, p)
		}
	}
	n.Parents = parents
	n.CPD = nil
	return nil
}

/*
ReverseEdge replaces the edge parent->child with child->parent. It
returns ErrInvalidStructure if the network has no such edge or if the
reversed edge would introduce a directed cycle. The network is left
unchanged on error.
*/
func (bn *Network) ReverseEdge(parent, child int) error {
	if err := bn.RemoveEdge(parent, child); err != nil {
		return fmt.Errorf("reversing edge %d->%d: %w", parent, child, ErrInvalidStructure)
	}
	if err := bn.AddEdge(child, parent); err != nil {
		// restore the removed edge: reversal is transactional
		n := bn.Node(child)
		n.Parents = insertParent(n.Parents, parent)
		n.CPD = nil
		return fmt.Errorf("reversing edge %d->%d: %w", parent, child, ErrInvalidStructure)
	}
	return nil
}

/*
Digraph returns the directed graph formed by the network's edges, with
the network's attribute ids as vertices.
*/
func (bn *Network) Digraph() *graph.Directed {
	g := graph.NewDirected(len(bn.nodes))
	for _, n := range bn.nodes {
		for _, p := range n.Parents {
			g.AddEdge(p, n.Attribute.ID())
		}
	}
	return g
}

// HasCycle returns whether the network's edges form a directed cycle
func (bn *Network) HasCycle() bool {
	return bn.Digraph().HasCycle()
}

/*
TopologicalOrder returns the network's nodes ordered so that every
parent precedes all its children, or graph.ErrCyclicGraph if the
network contains a cycle.
*/
func (bn *Network) TopologicalOrder() ([]*Node, error) {
	order, err := bn.Digraph().TopologicalOrder()
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, len(order))
	for i, id := range order {
		nodes[i] = bn.nodes[id]
	}
	return nodes, nil
}

/*
Clone returns an independent copy of the network sharing the attributes
but not the parent sets or CPDs of the original.
*/
func (bn *Network) Clone() *Network {
	nodes := make([]*Node, len(bn.nodes))
	for i, n := range bn.nodes {
		parents := make([]int, len(n.Parents))
		copy(parents, n.Parents)
		nodes[i] = &Node{Attribute: n.Attribute, Parents: parents, CPD: n.CPD}
	}
	return &Network{nodes}
}

func (bn *Network) String() string {
	var sb strings.Builder
	for _, n := range bn.nodes {
		fmt.Fprintf(&sb, "[%s]", n.Attribute.Name())
		if len(n.Parents) > 0 {
			names := make([]string, len(n.Parents))
			for i, p := range n.Parents {
				names[i] = bn.nodes[p].Attribute.Name()
			}
			fmt.Fprintf(&sb, " <- %s", strings.Join(names, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func insertParent(parents []int, parent int) []int {
	parents = append(parents, parent)
	sort.Ints(parents)
	return parents
}
