package roster

import (
	"database/sql"
	"sync"
)

// Entry is one roster row: the long-lived facts about a player plus the
// two-period rolling ledger the handicap recalculation maintains.
type Entry struct {
	PlayerID    string  `json:"player_id" msgpack:"player_id"`
	DisplayName string  `json:"display_name" msgpack:"display_name"`
	IsMember    bool    `json:"is_member" msgpack:"is_member"`
	Handicap    float64 `json:"handicap" msgpack:"handicap"`
	Remarks     string  `json:"remarks" msgpack:"remarks"`

	// Rank labels from the two tracked ranking periods ("1".."3", or empty).
	PrevPrevRank string `json:"prev_prev_rank" msgpack:"prev_prev_rank"` // 前々期
	PrevRank     string `json:"prev_rank" msgpack:"prev_rank"`           // 前期

	Ledger PeriodLedger `json:"ledger" msgpack:"ledger"`
}

// PeriodLedger is the rolling two-period score ledger for one player.
// Period 1 is the most recently closed period, period 2 the one before it.
type PeriodLedger struct {
	P2Total int     `json:"p2_total" msgpack:"p2_total"`
	P2Games int     `json:"p2_games" msgpack:"p2_games"`
	P2Gross float64 `json:"p2_gross" msgpack:"p2_gross"`

	P1Total int     `json:"p1_total" msgpack:"p1_total"`
	P1Games int     `json:"p1_games" msgpack:"p1_games"`
	P1Gross float64 `json:"p1_gross" msgpack:"p1_gross"`

	CombinedTotal int     `json:"combined_total" msgpack:"combined_total"`
	CombinedGames int     `json:"combined_games" msgpack:"combined_games"`
	CombinedGross float64 `json:"combined_gross" msgpack:"combined_gross"`

	PriorHandicap float64 `json:"prior_handicap" msgpack:"prior_handicap"`
	Delta         float64 `json:"delta" msgpack:"delta"`
}

// BackupInfo describes one stored ledger backup.
type BackupInfo struct {
	Name      string
	CreatedAt int64
}

// Snapshot is the durable pre-image written before a period close mutates
// the roster.
type Snapshot struct {
	PeriodLabel string  `msgpack:"period_label"`
	Entries     []Entry `msgpack:"entries"`
}

// store handles all database operations for the roster ledger.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

const periodLabelKey = "current_period_label"
