package matchlog

import (
	"database/sql"
	"sync"
	"time"
)

// DateLayout is the canonical calendar-date format used throughout the
// pipeline. Time-of-day never participates in comparisons.
const DateLayout = "2006-01-02"

// MatchRecord is one participant's outcome in one game. Four records share a
// (Date, GameNumber) pair, two per team.
type MatchRecord struct {
	Date        string `json:"date"` // YYYY-MM-DD
	GameNumber  int    `json:"game_no"`
	PlayerID    string `json:"player_id"`
	PartnerID   string `json:"partner_id"`
	Points      int    `json:"points"`
	Slot        int    `json:"slot"` // 1..4, audit/display only
	CommittedAt int64  `json:"committed_at"`
}

// store handles all database operations for the match log.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// FormatDate converts a time value to the canonical date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a canonical date key back into a time value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
