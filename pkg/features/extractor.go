package features

import (
	"github.com/rcasey/edgewise/pkg/graph"
)

// Extractor applies an ordered list of scorers to node pairs. Vector length
// equals the scorer count and never varies across pairs.
type Extractor struct {
	scorers []Scorer
}

// NewExtractor builds an extractor from one or more scorers.
func NewExtractor(scorers ...Scorer) (*Extractor, error) {
	if len(scorers) == 0 {
		return nil, graph.InvalidInputError("NewExtractor", "scorers", "no scorers given")
	}
	return &Extractor{scorers: scorers}, nil
}

// DefaultExtractor returns the baseline extractor: shared-neighbor count only.
func DefaultExtractor() *Extractor {
	return &Extractor{scorers: []Scorer{CommonNeighbors{}}}
}

// FullExtractor returns an extractor with every built-in structural score.
func FullExtractor() *Extractor {
	return &Extractor{scorers: []Scorer{
		CommonNeighbors{},
		Jaccard{},
		AdamicAdar{},
		PreferentialAttachment{},
	}}
}

// Names returns the scorer names in vector order.
func (e *Extractor) Names() []string {
	names := make([]string, len(e.scorers))
	for i, s := range e.scorers {
		names[i] = s.Name()
	}
	return names
}

// Width returns the feature vector length.
func (e *Extractor) Width() int {
	return len(e.scorers)
}

// Vector computes the feature vector for a single pair.
func (e *Extractor) Vector(g *graph.Graph, p graph.Pair) ([]float64, error) {
	vec := make([]float64, len(e.scorers))
	for i, s := range e.scorers {
		score, err := s.Score(g, p)
		if err != nil {
			return nil, err
		}
		vec[i] = score
	}
	return vec, nil
}

// Dataset is a labeled example collection with parallel slices: Vectors[i]
// and Labels[i] describe Pairs[i]. Order is deterministic — positives first
// in sampler order, then negatives — though the classifier ignores it.
type Dataset struct {
	Pairs   []graph.Pair
	Vectors [][]float64
	Labels  []int
}

// Len returns the number of labeled examples.
func (d *Dataset) Len() int {
	return len(d.Labels)
}

// BuildDataset labels every edge pair 1 and every non-edge pair 0 and computes
// feature vectors against the snapshot. Used once per split (train and eval).
func (e *Extractor) BuildDataset(g *graph.Graph, edges, nonEdges []graph.Pair) (*Dataset, error) {
	n := len(edges) + len(nonEdges)
	ds := &Dataset{
		Pairs:   make([]graph.Pair, 0, n),
		Vectors: make([][]float64, 0, n),
		Labels:  make([]int, 0, n),
	}

	appendClass := func(pairs []graph.Pair, label int) error {
		for _, p := range pairs {
			vec, err := e.Vector(g, p)
			if err != nil {
				return err
			}
			ds.Pairs = append(ds.Pairs, p)
			ds.Vectors = append(ds.Vectors, vec)
			ds.Labels = append(ds.Labels, label)
		}
		return nil
	}

	if err := appendClass(edges, 1); err != nil {
		return nil, err
	}
	if err := appendClass(nonEdges, 0); err != nil {
		return nil, err
	}
	return ds, nil
}
