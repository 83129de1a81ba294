package standings

import (
	"database/sql"
	"sync"

	"github.com/kmorita/scorebook/internal/ranking"
)

// Cohort labels for persisted standings rows.
const (
	CohortMember = "member"
	CohortGuest  = "guest"
)

// Run is one persisted classification run over a date range.
type Run struct {
	ID        string
	StartDate string
	EndDate   string
	Threshold int
	CreatedAt int64
}

// Row is one player's persisted standings line. Rank is the position within
// the qualified cohort, 0 when unranked.
type Row struct {
	RunID  string
	Cohort string
	Rank   int
	ranking.RankedPlayer
}

// PeriodStat is the per-player slice of a run the handicap close consumes.
type PeriodStat struct {
	Total int
	Games int
	Gross float64
	Net   float64
}

// RankEntry names one of the top three qualified members of a run.
type RankEntry struct {
	Rank     int
	PlayerID string
}

type store struct {
	db *sql.DB
	mu sync.RWMutex
}
