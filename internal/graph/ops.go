package graph

import (
	"fmt"
	"math"
	"slices"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

// AddEdge is the structural operator that appends a directed edge. No
// duplicate check happens at add time; SortAdjacency cleans up later,
// mirroring the append/normalize split in orders.
type AddEdge struct {
	op.StructuralTag
	from, to string
}

// NewAddEdge builds an AddEdge. Both endpoints must be non-empty.
func NewAddEdge(from, to string) (AddEdge, error) {
	if from == "" || to == "" {
		return AddEdge{}, fmt.Errorf("add edge: endpoints must be non-empty, got %q -> %q", from, to)
	}
	return AddEdge{from: from, to: to}, nil
}

// MustAddEdge is like NewAddEdge but panics on error.
func MustAddEdge(from, to string) AddEdge {
	e, err := NewAddEdge(from, to)
	if err != nil {
		panic(err)
	}
	return e
}

// Apply returns a new graph with the edge appended.
func (e AddEdge) Apply(g Graph) Graph {
	adj := g.Value().Clone()
	adj[e.from] = append(adj[e.from], e.to)

	props := g.Props().Clone()
	props[PropDegree] = triple.Int(int64(len(adj[e.from])))

	return triple.New(adj, props, Meta{Mutations: g.State().Mutations + 1})
}

// RemoveEdge is the structural operator that removes every occurrence
// of a directed edge. Removing an absent edge is a no-op apart from the
// mutation counter and degree prop.
type RemoveEdge struct {
	op.StructuralTag
	from, to string
}

// NewRemoveEdge builds a RemoveEdge. Both endpoints must be non-empty.
func NewRemoveEdge(from, to string) (RemoveEdge, error) {
	if from == "" || to == "" {
		return RemoveEdge{}, fmt.Errorf("remove edge: endpoints must be non-empty, got %q -> %q", from, to)
	}
	return RemoveEdge{from: from, to: to}, nil
}

// MustRemoveEdge is like NewRemoveEdge but panics on error.
func MustRemoveEdge(from, to string) RemoveEdge {
	e, err := NewRemoveEdge(from, to)
	if err != nil {
		panic(err)
	}
	return e
}

// Apply returns a new graph without the edge.
func (e RemoveEdge) Apply(g Graph) Graph {
	adj := g.Value().Clone()
	adj[e.from] = slices.DeleteFunc(adj[e.from], func(n string) bool {
		return n == e.to
	})

	props := g.Props().Clone()
	props[PropDegree] = triple.Int(int64(len(adj[e.from])))

	return triple.New(adj, props, Meta{Mutations: g.State().Mutations + 1})
}

// SortAdjacency is the normalizing operator that sorts each neighbor
// list lexicographically and drops duplicate neighbors.
type SortAdjacency struct {
	op.NormalizingTag
}

// NewSortAdjacency builds a SortAdjacency operator.
func NewSortAdjacency() SortAdjacency {
	return SortAdjacency{}
}

// Apply returns a new graph with normalized adjacency lists.
func (SortAdjacency) Apply(g Graph) Graph {
	adj := g.Value().Clone()
	for node, neighbors := range adj {
		slices.Sort(neighbors)
		adj[node] = slices.Compact(neighbors)
	}

	props := g.Props().Clone()
	props[PropNormalized] = triple.Bool(true)

	return triple.New(adj, props, Meta{Mutations: g.State().Mutations + 1})
}

// PruneEdges is the normalizing operator for proportional retention: it
// drops the trailing ratio fraction of each neighbor list, rounded down.
// A ratio of 0 keeps everything, 1 empties every list.
type PruneEdges struct {
	op.NormalizingTag
	ratio float64
}

// NewPruneEdges builds a PruneEdges. ratio must lie in [0, 1]; the
// bound is validated here, never clamped.
func NewPruneEdges(ratio float64) (PruneEdges, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return PruneEdges{}, fmt.Errorf("prune edges: ratio must be in [0, 1], got %v", ratio)
	}
	return PruneEdges{ratio: ratio}, nil
}

// MustPruneEdges is like NewPruneEdges but panics on error.
func MustPruneEdges(ratio float64) PruneEdges {
	p, err := NewPruneEdges(ratio)
	if err != nil {
		panic(err)
	}
	return p
}

// Apply returns a new graph with each neighbor list shortened.
func (p PruneEdges) Apply(g Graph) Graph {
	adj := g.Value().Clone()

	var removed int64
	for node, neighbors := range adj {
		drop := int(math.Floor(p.ratio * float64(len(neighbors))))
		if drop == 0 {
			continue
		}
		adj[node] = neighbors[:len(neighbors)-drop]
		removed += int64(drop)
	}

	props := g.Props().Clone()
	props[PropPruned] = triple.Bool(true)
	props[PropRemovedEdges] = triple.Int(removed)

	return triple.New(adj, props, Meta{Mutations: g.State().Mutations + 1})
}
