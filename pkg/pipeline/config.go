package pipeline

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rcasey/edgewise/pkg/forest"
	"github.com/rcasey/edgewise/pkg/graph"
)

// Config is the recognized configuration surface of a pipeline run.
type Config struct {
	// EvalFraction is the share of each pair class held out for evaluation,
	// strictly between 0 and 1.
	EvalFraction float64 `yaml:"eval_fraction" validate:"gt=0,lt=1"`

	// Seed drives all randomness: the sampler shuffle and, via derived
	// per-tree seeds, the classifier. One seed, one reproducible run.
	Seed int64 `yaml:"seed"`

	// BalanceClasses subsamples the majority training class down to the
	// minority. Off by default: real social graphs are sparse and the
	// evaluation set keeps that imbalance either way.
	BalanceClasses bool `yaml:"balance_classes"`

	// Forest holds the ensemble hyperparameters. Its seed field is
	// overridden by the top-level Seed.
	Forest forest.Config `yaml:"forest"`
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		EvalFraction: 0.25,
		Seed:         1,
		Forest:       forest.DefaultConfig(),
	}
}

var validate = validator.New()

// Validate checks the whole configuration surface.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return graph.InvalidInputError("Validate", "config", err.Error())
	}
	return c.Forest.Validate()
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
