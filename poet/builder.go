package poet

import (
	"bufio"
	"io"
	"iter"

	"github.com/rs/zerolog/log"

	"github.com/domino14/graphpoet/wordgraph"
)

// BuildGraph folds a token sequence into a word affinity graph. Each token
// is normalized to lower case; empty labels are skipped. For every pair of
// consecutive non-empty labels the weight of the edge previous->current is
// incremented by one. Previous-word tracking deliberately persists across
// newlines: a line break in the corpus does not break adjacency.
func BuildGraph(tokens iter.Seq[string]) *wordgraph.Graph {
	g := wordgraph.NewGraph()
	foldInto(g, tokens)
	return g
}

// foldInto runs the builder fold over one token sequence, starting with no
// previous word. Callers building from several documents call this once per
// document so that adjacency never spans a document boundary.
func foldInto(g *wordgraph.Graph, tokens iter.Seq[string]) {
	prev := ""
	for token := range tokens {
		label := Normalize(token)
		if label == "" {
			continue
		}
		// Errors are impossible here: the label is non-empty and the
		// weight is positive.
		g.AddVertex(label)
		if prev != "" {
			g.SetEdge(prev, label, g.Weight(prev, label)+1)
		}
		prev = label
	}
}

func buildFromReader(r io.Reader) (*wordgraph.Graph, error) {
	g := wordgraph.NewGraph()
	if err := foldReaderInto(g, r); err != nil {
		return nil, err
	}
	log.Debug().Int("vertices", g.NumVertices()).Int("edges", g.NumEdges()).
		Msg("built affinity graph")
	return g, nil
}

func foldReaderInto(g *wordgraph.Graph, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	foldInto(g, func(yield func(string) bool) {
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	})
	return scanner.Err()
}
