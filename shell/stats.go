package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

const defaultHistBins = 10

// stats prints summary statistics for the loaded affinity graph: counts,
// edge-weight mean and stddev, and a weight histogram.
func (sc *ShellController) stats(cmd *shellcmd) (*Response, error) {
	if sc.poet == nil {
		return nil, errNoCorpusLoaded
	}
	bins := defaultHistBins
	if binsStr, ok := cmd.options["bins"]; ok {
		var err error
		bins, err = strconv.Atoi(binsStr)
		if err != nil || bins < 1 {
			return nil, fmt.Errorf("bad -bins value %q", binsStr)
		}
	}
	g := sc.poet.Graph()
	weights := g.EdgeWeights()

	var sb strings.Builder
	fmt.Fprintf(&sb, "corpus files:     %s\n", strings.Join(sc.corpusFiles, ", "))
	fmt.Fprintf(&sb, "vertices:         %d\n", g.NumVertices())
	fmt.Fprintf(&sb, "edges:            %d\n", g.NumEdges())
	if len(weights) == 0 {
		sb.WriteString("no edges; no weight statistics\n")
		return Msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	fmt.Fprintf(&sb, "edge weight mean: %.3f\n", stat.Mean(weights, nil))
	fmt.Fprintf(&sb, "edge weight std:  %.3f\n", stat.StdDev(weights, nil))
	sb.WriteString("\nedge weight distribution:\n")
	hist := histogram.Hist(bins, weights)
	if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
		return nil, err
	}
	return Msg(strings.TrimRight(sb.String(), "\n")), nil
}
