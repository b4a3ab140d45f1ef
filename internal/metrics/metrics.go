package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvocationsTotal counts pipeline invocations by terminal outcome
	InvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "t2e_pipeline_invocations_total",
		Help: "Pipeline invocations by outcome (succeeded, failed)",
	}, []string{"outcome"})

	// StageFailuresTotal counts which stage aborted an invocation
	StageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "t2e_pipeline_stage_failures_total",
		Help: "Pipeline failures by stage",
	}, []string{"stage"})

	// StageDurationSeconds observes how long each stage runs
	StageDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "t2e_pipeline_stage_duration_seconds",
		Help:    "Duration of each pipeline stage",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 14),
	}, []string{"stage"})

	// WebhookAttemptsTotal counts webhook delivery attempts by result
	WebhookAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "t2e_webhook_attempts_total",
		Help: "Webhook notification attempts by result (delivered, failed, skipped)",
	}, []string{"result"})
)
