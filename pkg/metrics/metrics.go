// Package metrics instruments pipeline runs with Prometheus collectors.
// The core only records; exposing the registry over HTTP is up to the caller.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all pipeline metrics.
type Registry struct {
	RunsTotal      *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	DatasetSize    *prometheus.GaugeVec
	LastAccuracy   prometheus.Gauge
	PredictedLinks prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all pipeline metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	return &Registry{
		registry: reg,
		RunsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkpred_runs_total",
				Help: "Pipeline runs by final status",
			},
			[]string{"status"},
		),
		StageDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linkpred_stage_duration_seconds",
				Help:    "Duration of each pipeline stage",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		DatasetSize: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "linkpred_dataset_examples",
				Help: "Labeled examples per split and class in the last run",
			},
			[]string{"split", "class"},
		),
		LastAccuracy: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "linkpred_last_accuracy",
				Help: "Evaluation accuracy of the last completed run",
			},
		),
		PredictedLinks: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "linkpred_predicted_links",
				Help: "Non-edges predicted positive in the last completed run",
			},
		),
	}
}

// RecordRun counts a finished run with its status ("ok" or "error").
func (r *Registry) RecordRun(status string) {
	r.RunsTotal.WithLabelValues(status).Inc()
}

// RecordStage observes the duration of one pipeline stage.
func (r *Registry) RecordStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordDataset records split sizes for one run.
func (r *Registry) RecordDataset(split, class string, n int) {
	r.DatasetSize.WithLabelValues(split, class).Set(float64(n))
}

// PrometheusRegistry returns the underlying registry for custom gathering.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler returns an HTTP handler serving the registry in the exposition
// format, for callers that choose to expose metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
