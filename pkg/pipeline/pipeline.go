// Package pipeline wires the full link-prediction run: sample pairs, extract
// features, train the forest, predict the held-out split, evaluate. The run
// is a single synchronous batch; any component failure aborts it.
package pipeline

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rcasey/edgewise/pkg/evaluation"
	"github.com/rcasey/edgewise/pkg/features"
	"github.com/rcasey/edgewise/pkg/forest"
	"github.com/rcasey/edgewise/pkg/graph"
	"github.com/rcasey/edgewise/pkg/logging"
	"github.com/rcasey/edgewise/pkg/metrics"
	"github.com/rcasey/edgewise/pkg/sampling"
)

// Pipeline owns the model for the duration of a run; it is not shared and a
// fresh model is created per run.
type Pipeline struct {
	cfg       Config
	extractor *features.Extractor
	logger    logging.Logger
	metrics   *metrics.Registry
}

// Option customizes a pipeline.
type Option func(*Pipeline)

// WithLogger attaches a structured logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics attaches a metrics registry. The default records nothing.
func WithMetrics(m *metrics.Registry) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithExtractor replaces the baseline shared-neighbor extractor.
func WithExtractor(e *features.Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// New validates the configuration and builds a pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:       cfg,
		extractor: features.DefaultExtractor(),
		logger:    logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PredictedLink is a non-edge the model expects to become a real connection.
type PredictedLink struct {
	Pair  graph.Pair
	Score float64 // positive-vote fraction across the ensemble
}

// Result is the output boundary of a run: the scalar accuracy and the
// evaluation non-edges predicted positive, ranked by vote fraction. Rendering
// is the caller's concern.
type Result struct {
	RunID    string
	Accuracy float64

	// AUC ranks the model's vote fractions; invalid when the evaluation
	// split contains a single class.
	AUC      float64
	AUCValid bool

	Confusion      evaluation.ConfusionMatrix
	PredictedLinks []PredictedLink

	TrainExamples int
	EvalExamples  int
	Features      []string
	Elapsed       time.Duration
}

// Run executes the full batch over an immutable snapshot.
func (p *Pipeline) Run(g *graph.Graph) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With(logging.Component("pipeline"), logging.RunID(runID))
	started := time.Now()

	result, err := p.run(g, runID, logger)
	if p.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		p.metrics.RecordRun(status)
	}
	if err != nil {
		logger.Error("run aborted", logging.Error(err))
		return nil, err
	}

	result.Elapsed = time.Since(started)
	logger.Info("run complete",
		logging.Accuracy(result.Accuracy),
		logging.Int("predicted_links", len(result.PredictedLinks)),
		logging.Latency(result.Elapsed))
	return result, nil
}

func (p *Pipeline) run(g *graph.Graph, runID string, logger logging.Logger) (*Result, error) {
	var (
		sample  *sampling.Sample
		trainDS *features.Dataset
		evalDS  *features.Dataset
	)

	err := p.stage(logger, "sample", func() error {
		var err error
		sample, err = sampling.Split(g.Edges(), g.NonEdges(), sampling.Config{
			EvalFraction: p.cfg.EvalFraction,
			Seed:         p.cfg.Seed,
		})
		if err != nil {
			return err
		}
		if p.cfg.BalanceClasses {
			sample = sample.Balanced(p.cfg.Seed + 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(logger, "extract", func() error {
		var err error
		trainDS, err = p.extractor.BuildDataset(g, sample.EdgesTrain, sample.NonEdgesTrain)
		if err != nil {
			return err
		}
		evalDS, err = p.extractor.BuildDataset(g, sample.EdgesEval, sample.NonEdgesEval)
		return err
	})
	if err != nil {
		return nil, err
	}
	if evalDS.Len() == 0 {
		return nil, graph.InvalidInputError("Run", "dataset",
			"evaluation split is empty; raise the eval fraction or use a larger graph")
	}
	if p.metrics != nil {
		p.metrics.RecordDataset("train", "edge", len(sample.EdgesTrain))
		p.metrics.RecordDataset("train", "non_edge", len(sample.NonEdgesTrain))
		p.metrics.RecordDataset("eval", "edge", len(sample.EdgesEval))
		p.metrics.RecordDataset("eval", "non_edge", len(sample.NonEdgesEval))
	}

	// The model lives and dies inside this run.
	forestCfg := p.cfg.Forest
	forestCfg.Seed = p.cfg.Seed
	model, err := forest.New(forestCfg)
	if err != nil {
		return nil, err
	}

	err = p.stage(logger, "train", func() error {
		return model.Train(trainDS.Vectors, trainDS.Labels)
	})
	if err != nil {
		return nil, err
	}

	var predicted []int
	var scores []float64
	err = p.stage(logger, "predict", func() error {
		var err error
		predicted, err = model.Predict(evalDS.Vectors)
		if err != nil {
			return err
		}
		scores, err = model.Scores(evalDS.Vectors)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:         runID,
		TrainExamples: trainDS.Len(),
		EvalExamples:  evalDS.Len(),
		Features:      p.extractor.Names(),
	}

	err = p.stage(logger, "evaluate", func() error {
		accuracy, err := evaluation.Accuracy(predicted, evalDS.Labels)
		if err != nil {
			return err
		}
		result.Accuracy = accuracy

		result.Confusion, err = evaluation.Confusion(predicted, evalDS.Labels)
		if err != nil {
			return err
		}

		// AUC is a derived ranking metric; a single-class evaluation
		// split leaves it undefined without invalidating the run.
		auc, err := evaluation.AUC(scores, evalDS.Labels)
		if err == nil {
			result.AUC = auc
			result.AUCValid = true
		} else if graph.IsInvalidInput(err) {
			logger.Warn("AUC undefined for single-class evaluation split")
		} else {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.PredictedLinks = collectPredictedLinks(evalDS, predicted, scores)

	if p.metrics != nil {
		p.metrics.LastAccuracy.Set(result.Accuracy)
		p.metrics.PredictedLinks.Set(float64(len(result.PredictedLinks)))
	}
	return result, nil
}

// stage runs one pipeline step with timing, logging, and metrics.
func (p *Pipeline) stage(logger logging.Logger, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	if p.metrics != nil {
		p.metrics.RecordStage(name, elapsed)
	}
	if err != nil {
		logger.Error("stage failed", logging.Stage(name), logging.Error(err), logging.Latency(elapsed))
		return err
	}
	logger.Debug("stage complete", logging.Stage(name), logging.Latency(elapsed))
	return nil
}

// collectPredictedLinks gathers evaluation non-edges the model voted positive,
// ranked by vote fraction with pair order breaking ties deterministically.
func collectPredictedLinks(evalDS *features.Dataset, predicted []int, scores []float64) []PredictedLink {
	var links []PredictedLink
	for i, label := range evalDS.Labels {
		if label == 0 && predicted[i] == 1 {
			links = append(links, PredictedLink{Pair: evalDS.Pairs[i], Score: scores[i]})
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Score != links[j].Score {
			return links[i].Score > links[j].Score
		}
		return links[i].Pair.Less(links[j].Pair)
	})
	return links
}
