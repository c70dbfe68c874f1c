package forest

import (
	"fmt"

	"github.com/rcasey/edgewise/pkg/graph"
)

// Config holds the ensemble hyperparameters.
type Config struct {
	// Trees is the number of trees in the ensemble. More trees lower the
	// variance of the vote at linear training cost.
	Trees int `yaml:"trees" validate:"min=1"`

	// MaxDepth caps individual tree depth to limit overfitting.
	MaxDepth int `yaml:"max_depth" validate:"min=1"`

	// MinLeafSize stops splitting nodes at or below this example count.
	MinLeafSize int `yaml:"min_leaf_size" validate:"min=1"`

	// FeatureFraction is the share of features considered at each split
	// point, in (0, 1]. At least one feature is always considered.
	FeatureFraction float64 `yaml:"feature_fraction" validate:"gt=0,lte=1"`

	// Seed drives bootstrap resampling and feature subsampling. Per-tree
	// generators are derived from it, so training is reproducible even
	// when trees are built in parallel.
	Seed int64 `yaml:"seed"`

	// Workers bounds parallel tree training; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" validate:"min=0"`
}

// DefaultConfig returns sensible defaults for the baseline feature set.
func DefaultConfig() Config {
	return Config{
		Trees:           100,
		MaxDepth:        8,
		MinLeafSize:     1,
		FeatureFraction: 1.0,
		Seed:            1,
	}
}

// Validate checks the hyperparameters.
func (c Config) Validate() error {
	if c.Trees < 1 {
		return graph.InvalidInputError("Validate", "config", fmt.Sprintf("trees %d < 1", c.Trees))
	}
	if c.MaxDepth < 1 {
		return graph.InvalidInputError("Validate", "config", fmt.Sprintf("max depth %d < 1", c.MaxDepth))
	}
	if c.MinLeafSize < 1 {
		return graph.InvalidInputError("Validate", "config", fmt.Sprintf("min leaf size %d < 1", c.MinLeafSize))
	}
	if c.FeatureFraction <= 0 || c.FeatureFraction > 1 {
		return graph.InvalidInputError("Validate", "config",
			fmt.Sprintf("feature fraction %v outside (0,1]", c.FeatureFraction))
	}
	if c.Workers < 0 {
		return graph.InvalidInputError("Validate", "config", fmt.Sprintf("workers %d < 0", c.Workers))
	}
	return nil
}
