package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GamesCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_games_collected_total",
			Help: "The total number of games accepted into a pending batch.",
		}),
		GamesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_games_rejected_total",
			Help: "The total number of game slots rejected during validation.",
		}),
		BatchCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_batch_commits_total",
			Help: "The total number of pending batches committed to the match log.",
		}),
		AggregationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_aggregation_runs_total",
			Help: "The total number of aggregation and ranking runs.",
		}),
		PeriodCloses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_period_closes_total",
			Help: "The total number of completed handicap period closes.",
		}),
		CollectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scorebook_collect_duration_seconds",
			Help:    "The duration of full grid collection passes.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
	}

	reg.MustRegister(
		s.GamesCollected,
		s.GamesRejected,
		s.BatchCommits,
		s.AggregationRuns,
		s.PeriodCloses,
		s.CollectDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
	)

	return s
}

func (s *Service) IncGamesCollected() {
	s.GamesCollected.Inc()
}

func (s *Service) IncGamesRejected() {
	s.GamesRejected.Inc()
}

func (s *Service) IncBatchCommits() {
	s.BatchCommits.Inc()
}

func (s *Service) IncAggregationRuns() {
	s.AggregationRuns.Inc()
}

func (s *Service) IncPeriodCloses() {
	s.PeriodCloses.Inc()
}

func (s *Service) ObserveCollectDuration(duration float64) {
	s.CollectDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}
