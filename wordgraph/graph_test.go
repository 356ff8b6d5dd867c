package wordgraph

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"
)

func TestMain(m *testing.M) {
	EnableDebugChecks()
	os.Exit(m.Run())
}

func TestAddVertex(t *testing.T) {
	g := NewGraph()
	added, err := g.AddVertex("hello")
	require.NoError(t, err)
	assert.True(t, added)

	// Idempotent; second add reports false and changes nothing.
	added, err = g.AddVertex("hello")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"hello"}, g.Vertices())
}

func TestAddVertexEmptyLabel(t *testing.T) {
	g := NewGraph()
	_, err := g.AddVertex("")
	assert.ErrorIs(t, err, ErrEmptyLabel)
}

func TestSetEdge(t *testing.T) {
	g := NewGraph()
	prev, err := g.SetEdge("a", "b", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, prev)

	// Endpoints were auto-created.
	assert.Equal(t, []string{"a", "b"}, g.Vertices())
	assert.Equal(t, map[string]int{"b": 3}, g.Targets("a"))
	assert.Equal(t, map[string]int{"a": 3}, g.Sources("b"))
}

func TestSetEdgeReplaceReturnsPrevious(t *testing.T) {
	g := NewGraph()
	_, err := g.SetEdge("a", "b", 3)
	require.NoError(t, err)
	prev, err := g.SetEdge("a", "b", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, prev)
	assert.Equal(t, map[string]int{"b": 7}, g.Targets("a"))
}

func TestSetEdgeZeroRemoves(t *testing.T) {
	g := NewGraph()
	_, err := g.SetEdge("a", "b", 5)
	require.NoError(t, err)

	prev, err := g.SetEdge("a", "b", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, prev)
	assert.NotContains(t, g.Targets("a"), "b")
	assert.NotContains(t, g.Sources("b"), "a")
	// Vertices survive edge removal.
	assert.Equal(t, []string{"a", "b"}, g.Vertices())
}

func TestSetEdgeZeroOnMissingEdge(t *testing.T) {
	g := NewGraph()
	prev, err := g.SetEdge("x", "y", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, prev)
	// Weight zero must not create vertices.
	assert.Empty(t, g.Vertices())
}

func TestSetEdgeNegativeWeight(t *testing.T) {
	g := NewGraph()
	_, err := g.SetEdge("a", "b", -1)
	assert.ErrorIs(t, err, ErrNegativeWeight)
}

func TestSetEdgeEmptyLabels(t *testing.T) {
	g := NewGraph()
	_, err := g.SetEdge("", "b", 1)
	assert.ErrorIs(t, err, ErrEmptyLabel)
	_, err = g.SetEdge("a", "", 1)
	assert.ErrorIs(t, err, ErrEmptyLabel)
}

func TestSelfLoop(t *testing.T) {
	g := NewGraph()
	_, err := g.SetEdge("hello,", "hello,", 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"hello,": 2}, g.Targets("hello,"))
	assert.Equal(t, map[string]int{"hello,": 2}, g.Sources("hello,"))
	assert.Equal(t, 1, g.NumEdges())
}

func TestRemoveVertex(t *testing.T) {
	g := NewGraph()
	g.SetEdge("a", "b", 1)
	g.SetEdge("b", "c", 2)
	g.SetEdge("c", "b", 3)
	g.SetEdge("b", "b", 4)

	assert.True(t, g.RemoveVertex("b"))
	assert.Equal(t, []string{"a", "c"}, g.Vertices())
	assert.Empty(t, g.Targets("a"))
	assert.Empty(t, g.Sources("c"))
	assert.Empty(t, g.Targets("c"))
	assert.Equal(t, 0, g.NumEdges())

	assert.False(t, g.RemoveVertex("b"))
}

func TestQueriesOnUnknownVertex(t *testing.T) {
	g := NewGraph()
	// Empty but non-nil, so callers can index without checking.
	assert.NotNil(t, g.Targets("nope"))
	assert.Empty(t, g.Targets("nope"))
	assert.NotNil(t, g.Sources("nope"))
	assert.Empty(t, g.Sources("nope"))
}

func TestSnapshotsAreCopies(t *testing.T) {
	g := NewGraph()
	g.SetEdge("a", "b", 1)

	vs := g.Vertices()
	vs[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, g.Vertices())

	targets := g.Targets("a")
	targets["b"] = 99
	targets["z"] = 1
	assert.Equal(t, map[string]int{"b": 1}, g.Targets("a"))

	sources := g.Sources("b")
	delete(sources, "a")
	assert.Equal(t, map[string]int{"a": 1}, g.Sources("b"))
}

func TestWeight(t *testing.T) {
	g := NewGraph()
	g.SetEdge("a", "b", 4)
	assert.Equal(t, 4, g.Weight("a", "b"))
	assert.Equal(t, 0, g.Weight("b", "a"))
	assert.Equal(t, 0, g.Weight("nope", "b"))
}

func TestEdgeWeights(t *testing.T) {
	g := NewGraph()
	g.SetEdge("a", "b", 1)
	g.SetEdge("a", "c", 2)
	g.SetEdge("c", "a", 3)
	assert.ElementsMatch(t, []float64{1, 2, 3}, g.EdgeWeights())
}

// Hammer the graph with random mutations. The representation checks enabled
// in TestMain panic on any internal inconsistency, and we verify the in/out
// mirrors agree at the end.
func TestRandomizedMutations(t *testing.T) {
	g := NewGraph()
	labels := make([]string, 20)
	for i := range labels {
		labels[i] = "w" + strconv.Itoa(i)
	}
	for i := 0; i < 5000; i++ {
		s := labels[frand.Intn(len(labels))]
		u := labels[frand.Intn(len(labels))]
		switch frand.Intn(10) {
		case 0:
			g.RemoveVertex(s)
		case 1:
			_, err := g.SetEdge(s, u, 0)
			require.NoError(t, err)
		default:
			_, err := g.SetEdge(s, u, frand.Intn(50)+1)
			require.NoError(t, err)
		}
	}
	for _, v := range g.Vertices() {
		for target, w := range g.Targets(v) {
			assert.Equal(t, w, g.Sources(target)[v])
		}
	}
}
