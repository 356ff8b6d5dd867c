// Package poet derives poems from a word affinity graph.
//
// A Poet is initialized with a corpus of text. Vertices in its graph are
// words: non-empty case-insensitive strings of non-whitespace characters,
// delimited in the corpus by whitespace or the ends of the file. The weight
// of the edge w1->w2 counts how many times w1 is immediately followed by w2
// in the corpus.
//
// Given an input string, the poet tries to insert a bridge word between
// every adjacent pair of input words. The bridge between w1 and w2 is a
// word b such that w1->b->w2 is a two-edge path of maximum combined weight
// among all such paths. When no such path exists, no word is inserted.
// Input words keep their original case in the output; bridge words come out
// lower case. Output words are joined with single spaces.
//
// For example, from the corpus
//
//	This is a test of the Mugar Omni Theater sound system.
//
// the input "Test the system." generates "Test of the system."
package poet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/graphpoet/cache"
	"github.com/domino14/graphpoet/wordgraph"
)

// Poet generates poems from a word affinity graph built from a corpus.
type Poet struct {
	graph *wordgraph.Graph
}

// New builds a poet from corpus text read from r.
func New(r io.Reader) (*Poet, error) {
	g, err := buildFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Poet{graph: g}, nil
}

// NewFromGraph wraps an already-built affinity graph.
func NewFromGraph(g *wordgraph.Graph) *Poet {
	return &Poet{graph: g}
}

// NewFromFile builds a poet from a corpus file. Built graphs are cached by
// file path and content fingerprint, so loading the same unchanged corpus
// twice reuses the first build; a corpus that changed on disk is rebuilt.
func NewFromFile(path string) (*Poet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key := path + ":" + cache.Fingerprint(data)
	obj, err := cache.Load(key, func(key string) (any, error) {
		return buildFromReader(bytes.NewReader(data))
	})
	if err != nil {
		return nil, err
	}
	return &Poet{graph: obj.(*wordgraph.Graph)}, nil
}

// NewFromFiles builds a poet from several corpus files. The files are read
// concurrently but folded into the graph in argument order. Each file is an
// independent document: adjacency never spans a file boundary, so the last
// word of one file gains no edge to the first word of the next.
func NewFromFiles(paths ...string) (*Poet, error) {
	contents := make([][]byte, len(paths))
	g := errgroup.Group{}
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	graph := wordgraph.NewGraph()
	for i, data := range contents {
		if err := foldReaderInto(graph, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("corpus %s: %w", paths[i], err)
		}
	}
	log.Debug().Int("files", len(paths)).Int("vertices", graph.NumVertices()).
		Int("edges", graph.NumEdges()).Msg("built affinity graph")
	return &Poet{graph: graph}, nil
}

// Graph returns the poet's affinity graph. The graph is shared, not a copy;
// treat it as read-only.
func (p *Poet) Graph() *wordgraph.Graph {
	return p.graph
}

// Bridge returns the best bridge word between w1 and w2 (matched
// case-insensitively) and its two-hop path weight. ok is false when no
// two-edge path w1->b->w2 exists.
//
// Ties on path weight break to the lexicographically smallest bridge. The
// tie-break is part of the contract: it keeps output deterministic, where
// iterating a Go map would not be.
func (p *Poet) Bridge(w1, w2 string) (bridge string, weight int, ok bool) {
	first := p.graph.Targets(Normalize(w1))
	target := Normalize(w2)
	candidates := lo.Keys(first)
	sort.Strings(candidates)
	for _, b := range candidates {
		hop2 := p.graph.Weight(b, target)
		if hop2 == 0 {
			continue
		}
		if total := first[b] + hop2; total > weight {
			bridge, weight = b, total
		}
	}
	return bridge, weight, bridge != ""
}

// PoemTokens runs bridge insertion over an input token sequence. Input
// tokens are emitted verbatim, in order; each selected bridge is emitted in
// lower case between the pair it connects. Inputs of length zero or one
// come back unchanged.
func (p *Poet) PoemTokens(input []string) []string {
	if len(input) < 2 {
		return append([]string(nil), input...)
	}
	out := make([]string, 0, 2*len(input)-1)
	for i := 0; i < len(input)-1; i++ {
		out = append(out, input[i])
		if bridge, weight, ok := p.Bridge(input[i], input[i+1]); ok {
			log.Debug().Str("w1", input[i]).Str("w2", input[i+1]).
				Str("bridge", bridge).Int("weight", weight).Msg("bridge selected")
			out = append(out, bridge)
		}
	}
	return append(out, input[len(input)-1])
}

// Poem generates a poem from input text: the input is tokenized on
// whitespace, bridged against the affinity graph, and joined with single
// spaces. Empty input yields an empty string.
func (p *Poet) Poem(input string) string {
	return strings.Join(p.PoemTokens(Tokenize(input)), " ")
}
