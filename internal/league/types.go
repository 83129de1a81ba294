package league

import (
	"errors"
	"fmt"

	"github.com/kmorita/scorebook/internal/aggregate"
	"github.com/kmorita/scorebook/internal/grid"
	"github.com/kmorita/scorebook/internal/handicap"
	"github.com/kmorita/scorebook/internal/ranking"
)

// Sentinel errors for the operator-facing failure modes.
var (
	// ErrNoMatchLog means the queried range holds no committed games.
	ErrNoMatchLog = errors.New("no match records in range")

	// ErrNoRoster means the roster is empty and the operation cannot proceed.
	ErrNoRoster = errors.New("roster is empty")

	// ErrNoRankingInput means no standings run exists for the period close to
	// consume.
	ErrNoRankingInput = errors.New("no ranking results available")

	// ErrInvalidDateRange means the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date precedes start date")

	// ErrCancelled means the operator declined a confirmation.
	ErrCancelled = errors.New("cancelled by operator")
)

// Config carries the policy knobs of a league service. The zero value uses
// the production defaults.
type Config struct {
	Geometry      grid.SlotGeometry
	Participation aggregate.ParticipationPolicy
	RemarkPolicy  ranking.QualifyRemarkPolicy
	Handicap      handicap.Options
	DryRun        bool // notifications are logged instead of sent
}

// CollectSummary reports one collect-and-commit run.
type CollectSummary struct {
	Accepted  int
	Rejected  int
	Committed int // games written to the match log
}

func (s CollectSummary) String() string {
	return fmt.Sprintf("入力成功%d件、入力失敗%d件 (コミット%d件)", s.Accepted, s.Rejected, s.Committed)
}

// StandingsSummary reports one aggregation and ranking run.
type StandingsSummary struct {
	RunID       string
	StartDate   string
	EndDate     string
	Threshold   int
	Qualified   int
	Unqualified int
	Guests      int
}

func (s StandingsSummary) String() string {
	return fmt.Sprintf("集計 %s〜%s: 有資格%d名、基準未達%d名、ゲスト%d名 (基準%d日)",
		s.StartDate, s.EndDate, s.Qualified, s.Unqualified, s.Guests, s.Threshold)
}

// CloseSummary reports one handicap period close.
type CloseSummary struct {
	BackupName string
	PrevLabel  string
	NextLabel  string
	Players    int
}

func (s CloseSummary) String() string {
	return fmt.Sprintf("HDCP更新 %d名、バックアップ %s、期 %s → %s", s.Players, s.BackupName, s.PrevLabel, s.NextLabel)
}
