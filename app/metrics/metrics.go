// Package metrics provides Prometheus metrics for feed pipeline runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lysyi3m/bc-mrss/app/pipeline"
)

var (
	// PipelineRunsTotal counts finished runs by result (success/failure).
	PipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bcmrss_pipeline_runs_total",
		Help: "Total number of pipeline runs, by result.",
	}, []string{"result"})

	// PipelineStageFailuresTotal counts failed runs by the stage that failed.
	PipelineStageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bcmrss_pipeline_stage_failures_total",
		Help: "Total number of pipeline failures, by stage.",
	}, []string{"stage"})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bcmrss_pipeline_duration_seconds",
		Help:    "Duration of successful pipeline runs.",
		Buckets: prometheus.DefBuckets,
	})

	// FeedItems is the item count of the last generated feed.
	FeedItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bcmrss_feed_items",
		Help: "Number of items in the last generated feed.",
	})
)

var _ pipeline.Recorder = Recorder{}

// Recorder feeds pipeline state transitions into the collectors above.
type Recorder struct{}

func (Recorder) OnTransition(from, to pipeline.State) {
	switch to {
	case pipeline.StateDone:
		PipelineRunsTotal.WithLabelValues("success").Inc()
	case pipeline.StateFailed:
		PipelineRunsTotal.WithLabelValues("failure").Inc()
		PipelineStageFailuresTotal.WithLabelValues(from.String()).Inc()
	}
}

// ObserveResult records a successful run.
func ObserveResult(result *pipeline.Result) {
	PipelineDuration.Observe(result.Duration.Seconds())
	FeedItems.Set(float64(result.Items))
}
