package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncGamesCollected()
	IncGamesRejected()
	IncBatchCommits()
	IncAggregationRuns()
	IncPeriodCloses()
	ObserveCollectDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
}
