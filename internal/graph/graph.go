package graph

import (
	"slices"

	"github.com/marrowlabs/triptych/internal/triple"
)

// Adjacency maps a node to its outgoing neighbor list. Order within a
// list is insertion order until SortAdjacency runs.
type Adjacency map[string][]string

// Clone deep-copies the adjacency map, neighbor slices included.
func (a Adjacency) Clone() Adjacency {
	out := make(Adjacency, len(a))
	for node, neighbors := range a {
		out[node] = slices.Clone(neighbors)
	}
	return out
}

// EdgeCount returns the total number of edges.
func (a Adjacency) EdgeCount() int64 {
	var n int64
	for _, neighbors := range a {
		n += int64(len(neighbors))
	}
	return n
}

// Meta is the state component: a counter of operator applications that
// touched the graph.
type Meta struct {
	Mutations int64
}

// Graph is the algebra's triple specialized to adjacency data.
type Graph = triple.Triple[Adjacency, Meta]

// NewGraph returns an empty graph with zero mutations.
func NewGraph() Graph {
	return triple.New(Adjacency{}, triple.NewProps(), Meta{})
}
