// Package sampling splits the connected and unconnected pair classes into
// training and evaluation subsets. Splits are driven entirely by an explicit
// seed so a run is reproducible bit for bit.
package sampling

import (
	"fmt"
	"math/rand"

	"github.com/rcasey/edgewise/pkg/graph"
)

// Config controls how pair classes are split.
type Config struct {
	// EvalFraction is the share of each class held out for evaluation.
	// Must lie strictly between 0 and 1.
	EvalFraction float64

	// Seed drives the shuffle. The same seed, fraction, and input always
	// produce the same four subsets.
	Seed int64
}

// Sample holds the four disjoint subsets produced by a split. The two classes
// are split independently at the same fraction, so the natural edge/non-edge
// imbalance of the input graph is preserved.
type Sample struct {
	EdgesTrain    []graph.Pair
	EdgesEval     []graph.Pair
	NonEdgesTrain []graph.Pair
	NonEdgesEval  []graph.Pair
}

// Split partitions edges and non-edges into training and evaluation subsets.
// The evaluation subset of each class has floor(EvalFraction * class size)
// members. Input slices are not modified.
func Split(edges, nonEdges []graph.Pair, cfg Config) (*Sample, error) {
	if cfg.EvalFraction <= 0 || cfg.EvalFraction >= 1 {
		return nil, graph.InvalidInputError("Split", "config",
			fmt.Sprintf("eval fraction %v outside (0,1)", cfg.EvalFraction))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	edgesEval, edgesTrain := splitClass(edges, cfg.EvalFraction, rng)
	nonEdgesEval, nonEdgesTrain := splitClass(nonEdges, cfg.EvalFraction, rng)

	return &Sample{
		EdgesTrain:    edgesTrain,
		EdgesEval:     edgesEval,
		NonEdgesTrain: nonEdgesTrain,
		NonEdgesEval:  nonEdgesEval,
	}, nil
}

// splitClass shuffles a copy of the class and carves off the evaluation
// subset. Floor rounding keeps the split size exact and reproducible.
func splitClass(pairs []graph.Pair, fraction float64, rng *rand.Rand) (eval, train []graph.Pair) {
	shuffled := make([]graph.Pair, len(pairs))
	copy(shuffled, pairs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	evalSize := int(fraction * float64(len(shuffled)))
	return shuffled[:evalSize], shuffled[evalSize:]
}

// Balanced returns a copy of the sample with the larger training class
// subsampled down to the size of the smaller one. The evaluation subsets are
// untouched: measured accuracy still reflects the natural class imbalance.
// Balancing is opt-in; the default pipeline keeps the raw split.
func (s *Sample) Balanced(seed int64) *Sample {
	rng := rand.New(rand.NewSource(seed))

	edges, nonEdges := s.EdgesTrain, s.NonEdgesTrain
	if len(edges) < len(nonEdges) {
		nonEdges = subsample(nonEdges, len(edges), rng)
	} else if len(nonEdges) < len(edges) {
		edges = subsample(edges, len(nonEdges), rng)
	}

	return &Sample{
		EdgesTrain:    edges,
		EdgesEval:     s.EdgesEval,
		NonEdgesTrain: nonEdges,
		NonEdgesEval:  s.NonEdgesEval,
	}
}

func subsample(pairs []graph.Pair, n int, rng *rand.Rand) []graph.Pair {
	shuffled := make([]graph.Pair, len(pairs))
	copy(shuffled, pairs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
