package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_RecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("ok")
	r.RecordRun("ok")
	r.RecordRun("error")

	if got := testutil.ToFloat64(r.RunsTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("Expected 2 ok runs, got %v", got)
	}
	if got := testutil.ToFloat64(r.RunsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("Expected 1 error run, got %v", got)
	}
}

func TestRegistry_RecordDataset(t *testing.T) {
	r := NewRegistry()

	r.RecordDataset("train", "edge", 7)
	r.RecordDataset("eval", "non_edge", 12)

	if got := testutil.ToFloat64(r.DatasetSize.WithLabelValues("train", "edge")); got != 7 {
		t.Errorf("Expected train/edge gauge 7, got %v", got)
	}
	if got := testutil.ToFloat64(r.DatasetSize.WithLabelValues("eval", "non_edge")); got != 12 {
		t.Errorf("Expected eval/non_edge gauge 12, got %v", got)
	}
}

func TestRegistry_StageHistogram(t *testing.T) {
	r := NewRegistry()

	r.RecordStage("train", 50*time.Millisecond)
	r.RecordStage("train", 150*time.Millisecond)

	count := testutil.CollectAndCount(r.StageDuration)
	if count == 0 {
		t.Error("Expected stage duration samples to be collected")
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	if r.Handler() == nil {
		t.Error("Expected a non-nil exposition handler")
	}
}
