package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

func TestAddEdge_AppendsAndCounts(t *testing.T) {
	g := NewGraph()

	g = MustAddEdge("a", "b").Apply(g)
	g = MustAddEdge("a", "c").Apply(g)

	assert.Equal(t, []string{"b", "c"}, g.Value()["a"])
	assert.Equal(t, int64(2), g.State().Mutations)

	deg, ok := g.Props().Int(PropDegree)
	require.True(t, ok)
	assert.Equal(t, int64(2), deg)
}

func TestAddEdge_NoDeduplicationAtAddTime(t *testing.T) {
	g := NewGraph()
	add := MustAddEdge("a", "b")

	g = add.Apply(add.Apply(g))

	// Duplicates land as appended; SortAdjacency cleans up later.
	assert.Equal(t, []string{"b", "b"}, g.Value()["a"])
}

func TestAddEdge_DoesNotMutateInput(t *testing.T) {
	g := MustAddEdge("a", "b").Apply(NewGraph())

	_ = MustAddEdge("a", "c").Apply(g)

	assert.Equal(t, []string{"b"}, g.Value()["a"])
	assert.Equal(t, int64(1), g.State().Mutations)
}

func TestNewAddEdge_RejectsEmptyEndpoints(t *testing.T) {
	_, err := NewAddEdge("", "b")
	require.Error(t, err)

	_, err = NewAddEdge("a", "")
	require.Error(t, err)
}

func TestRemoveEdge_RemovesAllOccurrences(t *testing.T) {
	g := NewGraph()
	add := MustAddEdge("a", "b")
	g = add.Apply(add.Apply(MustAddEdge("a", "c").Apply(g)))

	g = MustRemoveEdge("a", "b").Apply(g)

	assert.Equal(t, []string{"c"}, g.Value()["a"])

	deg, ok := g.Props().Int(PropDegree)
	require.True(t, ok)
	assert.Equal(t, int64(1), deg)
}

func TestRemoveEdge_AbsentEdgeStillCounts(t *testing.T) {
	g := MustAddEdge("a", "b").Apply(NewGraph())

	g = MustRemoveEdge("x", "y").Apply(g)

	assert.Equal(t, []string{"b"}, g.Value()["a"])
	assert.Equal(t, int64(2), g.State().Mutations)
}

func TestSortAdjacency_SortsAndDeduplicates(t *testing.T) {
	g := NewGraph()
	for _, to := range []string{"c", "a", "b", "a"} {
		g = MustAddEdge("n", to).Apply(g)
	}

	g = NewSortAdjacency().Apply(g)

	assert.Equal(t, []string{"a", "b", "c"}, g.Value()["n"])

	normalized, ok := g.Props().Bool(PropNormalized)
	require.True(t, ok)
	assert.True(t, normalized)
}

func TestSortAdjacency_Idempotent(t *testing.T) {
	g := NewGraph()
	for _, to := range []string{"c", "a", "b"} {
		g = MustAddEdge("n", to).Apply(g)
	}

	sort := NewSortAdjacency()
	once := sort.Apply(g)
	twice := sort.Apply(once)

	assert.Equal(t, once.Value(), twice.Value())
}

func TestPruneEdges_DropsTrailingFraction(t *testing.T) {
	g := NewGraph()
	for _, to := range []string{"a", "b", "c", "d"} {
		g = MustAddEdge("n", to).Apply(g)
	}

	g = MustPruneEdges(0.5).Apply(g)

	assert.Equal(t, []string{"a", "b"}, g.Value()["n"])

	removed, ok := g.Props().Int(PropRemovedEdges)
	require.True(t, ok)
	assert.Equal(t, int64(2), removed)
}

func TestPruneEdges_ZeroKeepsEverything(t *testing.T) {
	g := MustAddEdge("a", "b").Apply(NewGraph())

	g = MustPruneEdges(0).Apply(g)

	assert.Equal(t, []string{"b"}, g.Value()["a"])
}

func TestPruneEdges_OneEmptiesLists(t *testing.T) {
	g := NewGraph()
	g = MustAddEdge("a", "b").Apply(g)
	g = MustAddEdge("a", "c").Apply(g)

	g = MustPruneEdges(1).Apply(g)

	assert.Empty(t, g.Value()["a"])
	assert.Equal(t, int64(0), g.Value().EdgeCount())
}

func TestNewPruneEdges_ValidatesRatioAtConstruction(t *testing.T) {
	for _, ratio := range []float64{-0.1, 1.1, 2} {
		_, err := NewPruneEdges(ratio)
		assert.Error(t, err, "ratio %v", ratio)
	}
}

func TestGraphOperators_Noncommutativity(t *testing.T) {
	g := NewGraph()
	for _, to := range []string{"d", "c", "b", "a"} {
		g = MustAddEdge("n", to).Apply(g)
	}

	sortThenPrune := op.Compose[Adjacency, Meta](MustPruneEdges(0.5), NewSortAdjacency())
	pruneThenSort := op.Compose[Adjacency, Meta](NewSortAdjacency(), MustPruneEdges(0.5))

	// Pruning before sorting drops different neighbors than after.
	a := sortThenPrune.Apply(g)
	b := pruneThenSort.Apply(g)

	assert.Equal(t, []string{"a", "b"}, a.Value()["n"])
	assert.Equal(t, []string{"c", "d"}, b.Value()["n"])
	assert.False(t, triple.Equal(a, b))
}

func TestGraphOperators_ClosureProducesNonNilProps(t *testing.T) {
	g := triple.New[Adjacency, Meta](Adjacency{"a": {"b"}}, nil, Meta{})

	for _, o := range []op.Operator[Adjacency, Meta]{
		MustAddEdge("a", "c"),
		MustRemoveEdge("a", "b"),
		NewSortAdjacency(),
		MustPruneEdges(0.25),
	} {
		out := o.Apply(g)
		require.NotNil(t, out.Props())
	}
}
