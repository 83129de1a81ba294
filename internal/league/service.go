package league

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kmorita/scorebook/internal/aggregate"
	"github.com/kmorita/scorebook/internal/collector"
	"github.com/kmorita/scorebook/internal/grid"
	"github.com/kmorita/scorebook/internal/handicap"
	"github.com/kmorita/scorebook/internal/matchlog"
	"github.com/kmorita/scorebook/internal/metrics"
	"github.com/kmorita/scorebook/internal/notifier"
	"github.com/kmorita/scorebook/internal/prompt"
	"github.com/kmorita/scorebook/internal/ranking"
	"github.com/kmorita/scorebook/internal/roster"
	"github.com/kmorita/scorebook/internal/standings"
)

// Service wires the collection, ranking and handicap pipeline together. All
// operations are synchronous and single-writer.
type Service struct {
	cfg       Config
	matchLog  matchlog.Store
	roster    roster.Store
	standings standings.Store
	collector *collector.Collector
	recalc    *handicap.Recalculator
	notifier  notifier.Notifier
	confirm   prompt.Confirmer
	metrics   metrics.Metrics
}

func NewService(
	cfg Config,
	matchLog matchlog.Store,
	rosterStore roster.Store,
	standingsStore standings.Store,
	n notifier.Notifier,
	confirm prompt.Confirmer,
	m metrics.Metrics,
) *Service {
	if len(cfg.Geometry.Positions) == 0 {
		cfg.Geometry = grid.DefaultGeometry()
	}
	return &Service{
		cfg:       cfg,
		matchLog:  matchLog,
		roster:    rosterStore,
		standings: standingsStore,
		collector: collector.New(matchLog, rosterStore, cfg.Geometry),
		recalc:    handicap.New(cfg.Handicap),
		notifier:  n,
		confirm:   confirm,
		metrics:   m,
	}
}

// CollectAndCommit walks the grid, gathers valid games into a batch, asks
// the operator to confirm and commits. A declined confirmation discards the
// whole batch.
func (s *Service) CollectAndCommit(src grid.Source) (*CollectSummary, error) {
	start := time.Now()

	batch := collector.NewBatch()
	result, err := s.collector.Collect(src, batch)
	if err != nil {
		return nil, fmt.Errorf("collection failed: %w", err)
	}
	for i := 0; i < result.Accepted; i++ {
		s.metrics.IncGamesCollected()
	}
	for i := 0; i < result.Rejected; i++ {
		s.metrics.IncGamesRejected()
	}

	summary := &CollectSummary{Accepted: result.Accepted, Rejected: result.Rejected}
	if batch.Len() == 0 {
		log.Info("Nothing to commit.", "rejected", result.Rejected)
		return summary, nil
	}

	ok, err := s.confirm.Confirm(fmt.Sprintf("%d試合をコミットしますか?", result.Accepted))
	if err != nil {
		return nil, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		batch.Clear()
		return nil, ErrCancelled
	}

	committed, err := s.collector.Commit(batch)
	if err != nil {
		return nil, err
	}
	summary.Committed = committed
	s.metrics.IncBatchCommits()
	s.metrics.ObserveCollectDuration(time.Since(start).Seconds())

	if err := s.notifier.SendCollectionReport(result, s.cfg.DryRun); err != nil {
		log.Error("Failed to send collection report", "error", err)
	}
	return summary, nil
}

// AggregateAndRank queries the match log over an inclusive date range,
// aggregates per-player statistics, classifies the roster and persists the
// standings run. threshold zero derives the default from the range.
func (s *Service) AggregateAndRank(startDate, endDate time.Time, threshold int) (*StandingsSummary, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}
	start := matchlog.FormatDate(startDate)
	end := matchlog.FormatDate(endDate)

	records, err := s.matchLog.QueryRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query match log: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoMatchLog
	}

	external, err := s.roster.ExternalParticipationDays()
	if err != nil {
		return nil, fmt.Errorf("failed to load participation overrides: %w", err)
	}
	stats := aggregate.New(s.cfg.Participation).Aggregate(records, external)

	entries, err := s.roster.All()
	if err != nil {
		log.Warn("Roster unavailable, classifying everyone as guest.", "error", err)
		entries = nil
	}
	entryMap := make(map[string]roster.Entry, len(entries))
	for _, e := range entries {
		entryMap[e.PlayerID] = e
	}

	classification := ranking.NewClassifier(ranking.Options{
		Threshold:    threshold,
		RemarkPolicy: s.cfg.RemarkPolicy,
	}).Classify(stats, entryMap, startDate, endDate)

	runID, err := s.standings.SaveRun(start, end, classification)
	if err != nil {
		return nil, fmt.Errorf("failed to persist standings: %w", err)
	}
	s.metrics.IncAggregationRuns()
	log.Info("Saved standings run.", "run", runID, "start", start, "end", end, "threshold", classification.Threshold)

	if err := s.notifier.SendStandings(classification, start, end, s.cfg.DryRun); err != nil {
		log.Error("Failed to send standings", "error", err)
	}

	return &StandingsSummary{
		RunID:       runID,
		StartDate:   start,
		EndDate:     end,
		Threshold:   classification.Threshold,
		Qualified:   len(classification.Qualified),
		Unqualified: len(classification.Unqualified),
		Guests:      len(classification.Guests),
	}, nil
}

// ClosePeriod runs the biannual handicap recalculation against the latest
// standings run. The ledger is backed up before any mutation; a backup
// failure aborts the close. The operation is not idempotent, so the operator
// must confirm it.
func (s *Service) ClosePeriod() (*CloseSummary, error) {
	entries, err := s.roster.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoRoster
	}

	run, err := s.standings.LatestRun()
	if err != nil {
		return nil, fmt.Errorf("failed to load latest standings run: %w", err)
	}
	if run == nil {
		return nil, ErrNoRankingInput
	}

	label, err := s.roster.PeriodLabel()
	if err != nil {
		return nil, fmt.Errorf("failed to load period label: %w", err)
	}

	ok, err := s.confirm.Confirm(fmt.Sprintf("%s のHDCP更新を実行しますか? (再実行はできません)", label))
	if err != nil {
		return nil, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return nil, ErrCancelled
	}

	backupName, err := s.roster.CreateBackup(s.recalc.BackupBaseName())
	if err != nil {
		return nil, fmt.Errorf("backup failed, aborting close: %w", err)
	}
	log.Info("Backed up roster ledger.", "backup", backupName)

	stats, err := s.standings.Stats(run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings stats: %w", err)
	}
	top3, err := s.standings.Top3(run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load top ranks: %w", err)
	}

	updated, results := s.recalc.Close(entries, stats, top3)
	if err := s.roster.SaveLedger(updated); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	nextLabel, parsed := handicap.NextPeriod(label)
	if parsed {
		if err := s.roster.SetPeriodLabel(nextLabel); err != nil {
			return nil, fmt.Errorf("failed to update period label: %w", err)
		}
	} else {
		log.Warn("Could not parse period label, leaving it unchanged.", "label", label)
	}

	s.metrics.IncPeriodCloses()
	log.Info("Closed handicap period.", "players", len(updated), "backup", backupName, "next", nextLabel)

	if err := s.notifier.SendPeriodCloseReport(backupName, label, nextLabel, results, s.cfg.DryRun); err != nil {
		log.Error("Failed to send period close report", "error", err)
	}

	return &CloseSummary{
		BackupName: backupName,
		PrevLabel:  label,
		NextLabel:  nextLabel,
		Players:    len(updated),
	}, nil
}

// Players lists every roster entry.
func (s *Service) Players() ([]roster.Entry, error) {
	return s.roster.All()
}
