package notifier

import (
	"github.com/kmorita/scorebook/internal/collector"
	"github.com/kmorita/scorebook/internal/handicap"
	"github.com/kmorita/scorebook/internal/ranking"
)

// Notifier defines a high-level interface for reporting business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// After a collection run commits.
	SendCollectionReport(result collector.Result, dryRun bool) error
	// After an aggregation and ranking run.
	SendStandings(c ranking.Classification, startDate, endDate string, dryRun bool) error
	// After a handicap period close.
	SendPeriodCloseReport(backupName, prevLabel, nextLabel string, results []handicap.PlayerResult, dryRun bool) error
}

// Noop is a Notifier that discards everything, used when no provider is
// configured.
type Noop struct{}

func (Noop) SendCollectionReport(collector.Result, bool) error { return nil }

func (Noop) SendStandings(ranking.Classification, string, string, bool) error { return nil }

func (Noop) SendPeriodCloseReport(string, string, string, []handicap.PlayerResult, bool) error {
	return nil
}
