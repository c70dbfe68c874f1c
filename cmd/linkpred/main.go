package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/rcasey/edgewise/pkg/features"
	"github.com/rcasey/edgewise/pkg/logging"
	"github.com/rcasey/edgewise/pkg/metrics"
	"github.com/rcasey/edgewise/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML pipeline config (optional)")
	evalFraction := flag.Float64("eval-frac", 0, "Override evaluation fraction")
	seed := flag.Int64("seed", 0, "Override random seed")
	trees := flag.Int("trees", 0, "Override ensemble tree count")
	maxDepth := flag.Int("max-depth", 0, "Override tree depth cap")
	allFeatures := flag.Bool("all-features", false, "Use every structural score, not just shared neighbors")
	topK := flag.Int("top", 10, "Predicted links to print")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (optional)")
	flag.Parse()

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		loaded, err := pipeline.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *evalFraction != 0 {
		cfg.EvalFraction = *evalFraction
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *trees != 0 {
		cfg.Forest.Trees = *trees
	}
	if *maxDepth != 0 {
		cfg.Forest.MaxDepth = *maxDepth
	}

	fmt.Println("🔗 edgewise — link prediction demo")

	g, err := demoGraph()
	if err != nil {
		log.Fatalf("Failed to build demonstration graph: %v", err)
	}
	fmt.Printf("📊 Graph: %d nodes, %d edges, %d candidate non-edges\n",
		g.NodeCount(), g.EdgeCount(), len(g.NonEdges()))

	registry := metrics.NewRegistry()
	if *metricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(*metricsAddr, registry.Handler()); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
		fmt.Printf("📈 Metrics on http://%s/\n", *metricsAddr)
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logging.DefaultLogger()),
		pipeline.WithMetrics(registry),
	}
	if *allFeatures {
		opts = append(opts, pipeline.WithExtractor(features.FullExtractor()))
	}

	p, err := pipeline.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	result, err := p.Run(g)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Printf("\n✅ Run %s finished in %v\n", result.RunID, result.Elapsed)
	fmt.Printf("   Features:  %v\n", result.Features)
	fmt.Printf("   Train/eval examples: %d / %d\n", result.TrainExamples, result.EvalExamples)
	fmt.Printf("   Accuracy:  %.3f\n", result.Accuracy)
	if result.AUCValid {
		fmt.Printf("   AUC:       %.3f\n", result.AUC)
	}
	m := result.Confusion
	fmt.Printf("   Confusion: TP=%d FP=%d TN=%d FN=%d\n",
		m.TruePositives, m.FalsePositives, m.TrueNegatives, m.FalseNegatives)

	if len(result.PredictedLinks) == 0 {
		fmt.Println("\n🤷 No held-out non-edges were predicted to connect")
		os.Exit(0)
	}

	fmt.Printf("\n🔮 Predicted future connections (top %d):\n", *topK)
	for i, link := range result.PredictedLinks {
		if i >= *topK {
			break
		}
		fmt.Printf("   %2d ↔ %-2d  score %.2f\n", link.Pair.U, link.Pair.V, link.Score)
	}
}
