package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	GamesCollected   prometheus.Counter
	GamesRejected    prometheus.Counter
	BatchCommits     prometheus.Counter
	AggregationRuns  prometheus.Counter
	PeriodCloses     prometheus.Counter
	CollectDuration  prometheus.Histogram
	SlackNotifSent   prometheus.Counter
	SlackNotifFailed prometheus.Counter
}
