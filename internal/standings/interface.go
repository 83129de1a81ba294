package standings

import "github.com/kmorita/scorebook/internal/ranking"

// Store persists classification runs so the biannual handicap close can read
// back the most recent standings.
type Store interface {
	// SaveRun persists a classification with its parameters and returns the
	// new run's id.
	SaveRun(startDate, endDate string, c ranking.Classification) (string, error)

	// LatestRun returns the most recently saved run, or nil when none exists.
	LatestRun() (*Run, error)

	// Rows returns every persisted line of a run, members before guests,
	// ranked lines first.
	Rows(runID string) ([]Row, error)

	// Stats returns the per-player period slice of a run, keyed by player id.
	Stats(runID string) (map[string]PeriodStat, error)

	// Top3 returns the qualified members ranked 1 to 3 in a run.
	Top3(runID string) ([]RankEntry, error)
}
