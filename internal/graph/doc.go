// Package graph is the second instantiation of the operator algebra:
// V is an adjacency map, S is a mutation counter. It exists to show the
// contracts are generic over the domain, so it is deliberately small.
//
// AddEdge and RemoveEdge are structural; SortAdjacency and PruneEdges
// are normalizing. As with orders, operators never mutate their input.
package graph
