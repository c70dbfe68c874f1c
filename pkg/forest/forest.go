// Package forest implements a random-forest binary classifier: an ensemble of
// decision trees, each grown on a bootstrap resample with randomized feature
// subsampling, aggregated by majority vote. It never sees pair identities,
// only fixed-length numeric vectors and binary labels.
package forest

import (
	"fmt"
	"math/rand"
	"runtime"

	"github.com/rcasey/edgewise/pkg/graph"
	"github.com/rcasey/edgewise/pkg/parallel"
)

// Forest is a trained ensemble. Lifecycle: untrained → trained → queryable.
// Train moves it to trained exactly once per instance; Predict and Scores are
// read-only afterwards.
type Forest struct {
	cfg       Config
	trees     []*treeNode
	nFeatures int
	trained   bool
}

// New creates an untrained forest with the given hyperparameters.
func New(cfg Config) (*Forest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Forest{cfg: cfg}, nil
}

// Train fits the ensemble on labeled feature vectors. It fails with an
// invalid input error on an empty set, ragged vector widths, or labels
// outside {0,1}. Trees are grown in parallel; per-tree seeds derived from
// cfg.Seed keep the result independent of scheduling.
func (f *Forest) Train(vectors [][]float64, labels []int) error {
	if len(vectors) == 0 {
		return graph.InvalidInputError("Train", "dataset", "no training examples")
	}
	if len(vectors) != len(labels) {
		return graph.InvalidInputError("Train", "dataset",
			fmt.Sprintf("%d vectors but %d labels", len(vectors), len(labels)))
	}
	width := len(vectors[0])
	if width == 0 {
		return graph.InvalidInputError("Train", "dataset", "zero-width feature vectors")
	}
	for i, v := range vectors {
		if len(v) != width {
			return graph.InvalidInputError("Train", "dataset",
				fmt.Sprintf("vector %d has width %d, expected %d", i, len(v), width))
		}
	}
	for i, l := range labels {
		if l != 0 && l != 1 {
			return graph.InvalidInputError("Train", "dataset",
				fmt.Sprintf("label %d at index %d is not binary", l, i))
		}
	}

	// Derive per-tree seeds up front so tree i is the same regardless of
	// which worker builds it.
	base := rand.New(rand.NewSource(f.cfg.Seed))
	seeds := make([]int64, f.cfg.Trees)
	for i := range seeds {
		seeds[i] = base.Int63()
	}

	workers := f.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trees := make([]*treeNode, f.cfg.Trees)
	parallel.Run(workers, f.cfg.Trees, func(i int) {
		rng := rand.New(rand.NewSource(seeds[i]))

		// Bootstrap resample: n draws with replacement
		n := len(vectors)
		indices := make([]int, n)
		for j := range indices {
			indices[j] = rng.Intn(n)
		}

		builder := &treeBuilder{
			vectors:   vectors,
			labels:    labels,
			nFeatures: width,
			cfg:       f.cfg,
			rng:       rng,
		}
		trees[i] = builder.grow(indices, 0)
	})

	f.trees = trees
	f.nFeatures = width
	f.trained = true
	return nil
}

// Scores returns the positive-vote fraction per vector, in [0,1].
// Fails with a not ready error before Train.
func (f *Forest) Scores(vectors [][]float64) ([]float64, error) {
	if !f.trained {
		return nil, graph.NotReadyError("Scores")
	}
	scores := make([]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != f.nFeatures {
			return nil, graph.InvalidInputError("Scores", "vector",
				fmt.Sprintf("width %d, model expects %d", len(v), f.nFeatures))
		}
		votes := 0
		for _, tree := range f.trees {
			votes += tree.predict(v)
		}
		scores[i] = float64(votes) / float64(len(f.trees))
	}
	return scores, nil
}

// Predict returns the majority-vote label per vector. An exact tie across
// the ensemble predicts the positive class.
func (f *Forest) Predict(vectors [][]float64) ([]int, error) {
	if !f.trained {
		return nil, graph.NotReadyError("Predict")
	}
	scores, err := f.Scores(vectors)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(scores))
	for i, s := range scores {
		if s >= 0.5 {
			labels[i] = 1
		}
	}
	return labels, nil
}

// Trained reports whether the model is past the untrained state.
func (f *Forest) Trained() bool {
	return f.trained
}

// Config returns the hyperparameters the forest was created with.
func (f *Forest) Config() Config {
	return f.cfg
}
