package graph

// Property keys written by graph operators. Keys are convention, not
// schema; consumers must tolerate absence.
const (
	// PropDegree is the out-degree of the node an edge operator touched.
	PropDegree = "degree"

	// PropNormalized marks adjacency lists as sorted and deduplicated.
	PropNormalized = "normalized"

	// PropPruned marks a prune application.
	PropPruned = "pruned"

	// PropRemovedEdges counts edges dropped by the last prune.
	PropRemovedEdges = "removedEdges"
)
