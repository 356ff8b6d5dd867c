// Package wordgraph implements a mutable weighted directed graph whose
// vertices are string labels. It is the affinity-graph representation used
// by the poet package: vertices are normalized words and edge weights count
// adjacencies in a corpus. The ADT is general-purpose, though; nothing in
// here knows about words or corpora.
package wordgraph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptyLabel is returned when a mutation is given an empty vertex label.
	ErrEmptyLabel = errors.New("vertex label must be non-empty")
	// ErrNegativeWeight is returned when SetEdge is given a negative weight.
	ErrNegativeWeight = errors.New("edge weight must be non-negative")
)

var debugChecks bool

// EnableDebugChecks turns on internal representation checks after every
// mutating operation. A violation panics; it means a bug in this package,
// not a caller error. Meant for tests and for running with -debug.
func EnableDebugChecks() {
	debugChecks = true
}

// Graph is a mutable weighted directed graph. Vertices are unique non-empty
// string labels. At most one edge exists per ordered (source, target) pair,
// and stored edge weights are always strictly positive: setting a weight of
// zero deletes the edge. Graph is not safe for concurrent use; callers that
// share one across goroutines must serialize access themselves.
//
// The zero value is not usable; call NewGraph.
type Graph struct {
	vertices map[string]struct{}
	// out[s][t] and in[t][s] always hold the same weight for an edge s->t.
	// The mirror makes Sources as cheap as Targets.
	out map[string]map[string]int
	in  map[string]map[string]int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[string]struct{}),
		out:      make(map[string]map[string]int),
		in:       make(map[string]map[string]int),
	}
}

// AddVertex inserts the given label if it is absent. It returns true if the
// vertex was added, false if it already existed.
func (g *Graph) AddVertex(label string) (bool, error) {
	if label == "" {
		return false, ErrEmptyLabel
	}
	if _, ok := g.vertices[label]; ok {
		return false, nil
	}
	g.vertices[label] = struct{}{}
	g.checkRep()
	return true, nil
}

// SetEdge sets the weight of the edge source->target, returning the weight
// that existed before the call (0 if the edge did not exist).
//
// A weight of zero removes the edge if present; it never creates vertices.
// A positive weight creates source and target as vertices if they are
// missing, then sets or overwrites the edge weight.
func (g *Graph) SetEdge(source, target string, weight int) (int, error) {
	if source == "" || target == "" {
		return 0, ErrEmptyLabel
	}
	if weight < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeWeight, weight)
	}
	prev := g.out[source][target]
	if weight == 0 {
		if prev != 0 {
			g.deleteEdge(source, target)
		}
		g.checkRep()
		return prev, nil
	}
	g.vertices[source] = struct{}{}
	g.vertices[target] = struct{}{}
	if g.out[source] == nil {
		g.out[source] = make(map[string]int)
	}
	if g.in[target] == nil {
		g.in[target] = make(map[string]int)
	}
	g.out[source][target] = weight
	g.in[target][source] = weight
	g.checkRep()
	return prev, nil
}

// RemoveVertex removes the vertex and every edge in which it appears as
// source or target. It returns whether the vertex existed.
func (g *Graph) RemoveVertex(label string) bool {
	if _, ok := g.vertices[label]; !ok {
		return false
	}
	for target := range g.out[label] {
		g.deleteEdge(label, target)
	}
	for source := range g.in[label] {
		g.deleteEdge(source, label)
	}
	delete(g.vertices, label)
	g.checkRep()
	return true
}

// Vertices returns a snapshot of all vertex labels in lexicographic order.
// Mutating the returned slice has no effect on the graph.
func (g *Graph) Vertices() []string {
	labels := make([]string, 0, len(g.vertices))
	for v := range g.vertices {
		labels = append(labels, v)
	}
	sort.Strings(labels)
	return labels
}

// Targets returns the vertices reachable by one outgoing edge from source,
// mapped to that edge's weight. The map is a snapshot; it is empty (never
// nil) if source has no outgoing edges or is not a vertex.
func (g *Graph) Targets(source string) map[string]int {
	return copyEdgeMap(g.out[source])
}

// Sources returns the vertices with an edge pointing into target, mapped to
// that edge's weight. The map is a snapshot; it is empty (never nil) if
// target has no incoming edges or is not a vertex.
func (g *Graph) Sources(target string) map[string]int {
	return copyEdgeMap(g.in[target])
}

// Weight returns the weight of the edge source->target, or 0 if no such
// edge exists. Stored weights are strictly positive, so 0 always means
// absent. This is the cheap point query; use Targets/Sources for whole
// adjacency snapshots.
func (g *Graph) Weight(source, target string) int {
	return g.out[source][target]
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	n := 0
	for _, targets := range g.out {
		n += len(targets)
	}
	return n
}

// EdgeWeights returns every edge weight as a float64, in no particular
// order. Handy for feeding stats/histogram code.
func (g *Graph) EdgeWeights() []float64 {
	weights := make([]float64, 0, g.NumEdges())
	for _, targets := range g.out {
		for _, w := range targets {
			weights = append(weights, float64(w))
		}
	}
	return weights
}

func (g *Graph) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "graph(%d vertices, %d edges)\n", g.NumVertices(), g.NumEdges())
	for _, source := range g.Vertices() {
		targets := g.out[source]
		labels := make([]string, 0, len(targets))
		for t := range targets {
			labels = append(labels, t)
		}
		sort.Strings(labels)
		for _, target := range labels {
			fmt.Fprintf(&sb, "  %s -> %s (%d)\n", source, target, targets[target])
		}
	}
	return sb.String()
}

func (g *Graph) deleteEdge(source, target string) {
	delete(g.out[source], target)
	if len(g.out[source]) == 0 {
		delete(g.out, source)
	}
	delete(g.in[target], source)
	if len(g.in[target]) == 0 {
		delete(g.in, target)
	}
}

func copyEdgeMap(m map[string]int) map[string]int {
	cp := make(map[string]int, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// checkRep verifies the representation invariant: every edge endpoint is a
// member of the vertex set, every stored weight is strictly positive, and
// the out/in adjacency maps mirror each other exactly.
func (g *Graph) checkRep() {
	if !debugChecks {
		return
	}
	for source, targets := range g.out {
		if _, ok := g.vertices[source]; !ok {
			panic("wordgraph: edge source " + source + " is not a vertex")
		}
		for target, w := range targets {
			if _, ok := g.vertices[target]; !ok {
				panic("wordgraph: edge target " + target + " is not a vertex")
			}
			if w <= 0 {
				panic(fmt.Sprintf("wordgraph: edge %s->%s has weight %d", source, target, w))
			}
			if g.in[target][source] != w {
				panic(fmt.Sprintf("wordgraph: in/out mismatch on edge %s->%s", source, target))
			}
		}
	}
	nIn := 0
	for _, sources := range g.in {
		nIn += len(sources)
	}
	if nIn != g.NumEdges() {
		panic("wordgraph: in/out edge counts differ")
	}
}
