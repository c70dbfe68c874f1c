package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcasey/edgewise/pkg/features"
	"github.com/rcasey/edgewise/pkg/forest"
	"github.com/rcasey/edgewise/pkg/graph"
	"github.com/rcasey/edgewise/pkg/metrics"
)

// fiveNodeGraph is the literal scenario graph: edges {(1,2),(1,3),(2,3),(3,4)},
// node 5 isolated.
func fiveNodeGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(
		[]graph.NodeID{1, 2, 3, 4, 5},
		[]graph.Pair{
			graph.MustPair(1, 2),
			graph.MustPair(1, 3),
			graph.MustPair(2, 3),
			graph.MustPair(3, 4),
		},
	)
	require.NoError(t, err)
	return g
}

// ringGraph builds a ring over n nodes plus chords, big enough for stable splits.
func ringGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	nodes := make([]graph.NodeID, n)
	for i := range nodes {
		nodes[i] = graph.NodeID(i + 1)
	}
	var edges []graph.Pair
	for i := 0; i < n; i++ {
		edges = append(edges, graph.MustPair(nodes[i], nodes[(i+1)%n]))
		edges = append(edges, graph.MustPair(nodes[i], nodes[(i+2)%n]))
	}
	g, err := graph.New(nodes, edges)
	require.NoError(t, err)
	return g
}

func TestRun_EndToEnd(t *testing.T) {
	g := ringGraph(t, 20)

	cfg := DefaultConfig()
	cfg.EvalFraction = 0.3
	cfg.Seed = 42
	cfg.Forest.Trees = 30

	p, err := New(cfg, WithMetrics(metrics.NewRegistry()))
	require.NoError(t, err)

	result, err := p.Run(g)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.GreaterOrEqual(t, result.Accuracy, 0.0)
	assert.LessOrEqual(t, result.Accuracy, 1.0)
	assert.Equal(t, []string{"common_neighbors"}, result.Features)
	assert.Positive(t, result.TrainExamples)
	assert.Positive(t, result.EvalExamples)

	// Predicted links are evaluation non-edges only
	for _, link := range result.PredictedLinks {
		assert.False(t, g.HasEdge(link.Pair), "predicted link %v is an existing edge", link.Pair)
		assert.GreaterOrEqual(t, link.Score, 0.5)
	}

	// Ranked descending
	for i := 1; i < len(result.PredictedLinks); i++ {
		assert.GreaterOrEqual(t,
			result.PredictedLinks[i-1].Score, result.PredictedLinks[i].Score)
	}
}

func TestRun_Deterministic(t *testing.T) {
	g := ringGraph(t, 16)

	cfg := DefaultConfig()
	cfg.EvalFraction = 0.25
	cfg.Seed = 7
	cfg.Forest.Trees = 20

	run := func() *Result {
		p, err := New(cfg)
		require.NoError(t, err)
		result, err := p.Run(g)
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	assert.Equal(t, first.Accuracy, second.Accuracy)
	assert.Equal(t, first.PredictedLinks, second.PredictedLinks)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_FiveNodeScenario(t *testing.T) {
	g := fiveNodeGraph(t)

	cfg := DefaultConfig()
	cfg.EvalFraction = 0.5
	cfg.Seed = 3
	cfg.Forest.Trees = 15

	p, err := New(cfg)
	require.NoError(t, err)

	result, err := p.Run(g)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Accuracy, 0.0)
	assert.LessOrEqual(t, result.Accuracy, 1.0)
}

// A model trained on the five-node data, queried on the non-edge (1,4), must
// not error and must return a binary label.
func TestTrainedModel_QueryPair(t *testing.T) {
	g := fiveNodeGraph(t)
	extractor := features.DefaultExtractor()

	trainDS, err := extractor.BuildDataset(g, g.Edges(), g.NonEdges())
	require.NoError(t, err)

	model, err := forest.New(forest.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, model.Train(trainDS.Vectors, trainDS.Labels))

	vec, err := extractor.Vector(g, graph.MustPair(1, 4))
	require.NoError(t, err)

	labels, err := model.Predict([][]float64{vec})
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Contains(t, []int{0, 1}, labels[0])
}

func TestRun_BalanceClasses(t *testing.T) {
	g := ringGraph(t, 20)

	cfg := DefaultConfig()
	cfg.EvalFraction = 0.3
	cfg.Seed = 11
	cfg.BalanceClasses = true
	cfg.Forest.Trees = 20

	p, err := New(cfg)
	require.NoError(t, err)

	result, err := p.Run(g)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Accuracy, 0.0)
	assert.LessOrEqual(t, result.Accuracy, 1.0)
}

func TestNew_InvalidFraction(t *testing.T) {
	for _, f := range []float64{0.0, 1.0, -0.5, 2.0} {
		cfg := DefaultConfig()
		cfg.EvalFraction = f

		_, err := New(cfg)
		require.Error(t, err, "fraction %v", f)
		assert.True(t, graph.IsInvalidInput(err))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	content := []byte(`
eval_fraction: 0.4
seed: 99
balance_classes: true
forest:
  trees: 25
  max_depth: 5
  min_leaf_size: 2
  feature_fraction: 0.8
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.4, cfg.EvalFraction)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.True(t, cfg.BalanceClasses)
	assert.Equal(t, 25, cfg.Forest.Trees)
	assert.Equal(t, 5, cfg.Forest.MaxDepth)
}

func TestLoadConfig_InvalidFraction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eval_fraction: 1.5\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.True(t, graph.IsInvalidInput(err))
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
