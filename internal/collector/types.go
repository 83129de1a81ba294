package collector

import (
	"fmt"

	"github.com/kmorita/scorebook/internal/grid"
)

// RejectCode identifies why a game slot was refused.
type RejectCode string

const (
	RejectMissingDate     RejectCode = "missing date"
	RejectIncompleteTeam  RejectCode = "incomplete team"
	RejectUnknownPlayer   RejectCode = "unknown player id"
	RejectDuplicatePlayer RejectCode = "duplicate player in game"
	RejectInvalidScore    RejectCode = "invalid score"
)

// Rejection is one slot's validation failure. PlayerID is set only for
// RejectUnknownPlayer.
type Rejection struct {
	Code     RejectCode
	PlayerID string
}

func (r Rejection) String() string {
	if r.PlayerID != "" {
		return fmt.Sprintf("%s: %s", r.Code, r.PlayerID)
	}
	return string(r.Code)
}

// GameNumberSource yields the next unassigned game number for a date.
type GameNumberSource interface {
	NextGameNumber(date string) (int, error)
}

// GameDetail is the audit line for one non-empty slot, accepted or not.
type GameDetail struct {
	Cell      string // slot's top-left cell reference
	GameLabel string // zero-padded page-sequential number
	Date      string // display form yyyy/MM/dd, empty when unresolved
	TeamA     string
	TeamB     string
	PointsA   int
	PointsB   int
	Accepted  bool
	Rejection *Rejection
}

// SheetResult reports one page's collection outcome.
type SheetResult struct {
	Page          grid.Page
	Accepted      int
	Rejected      int
	Details       []GameDetail
	LastValidDate string // canonical date carried into the next page
}

// Result reports a whole collection run across every page.
type Result struct {
	Sheets   []SheetResult
	Accepted int
	Rejected int
}

func (r Result) Summary() string {
	return fmt.Sprintf("入力成功%d件、入力失敗%d件", r.Accepted, r.Rejected)
}
