package league

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorita/scorebook/internal/grid"
	"github.com/kmorita/scorebook/internal/matchlog"
	"github.com/kmorita/scorebook/internal/metrics"
	"github.com/kmorita/scorebook/internal/notifier"
	"github.com/kmorita/scorebook/internal/prompt"
	"github.com/kmorita/scorebook/internal/ranking"
	"github.com/kmorita/scorebook/internal/roster"
	"github.com/kmorita/scorebook/internal/standings"
)

type fixture struct {
	svc       *Service
	matchLog  *matchlog.Mock
	roster    *roster.Mock
	standings *standings.Mock
	notifier  *notifier.Mock
	confirm   *prompt.Mock
	metrics   *metrics.Mock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		matchLog:  matchlog.NewMock(),
		roster:    roster.NewMock(),
		standings: standings.NewMock(),
		notifier:  notifier.NewMock(),
		confirm:   &prompt.Mock{Answer: true},
		metrics:   metrics.NewMock(),
	}
	f.svc = NewService(Config{}, f.matchLog, f.roster, f.standings, f.notifier, f.confirm, f.metrics)
	return f
}

func (f *fixture) addMember(id string, handicap float64) {
	f.roster.Entries[id] = roster.Entry{PlayerID: id, DisplayName: "p" + id, IsMember: true, Handicap: handicap}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// gridWithOneGame fills the first slot of the first page.
func gridWithOneGame(date string) *grid.MemorySource {
	src := grid.NewMemorySource()
	geom := grid.DefaultGeometry()
	src.SetCell("B2", date)
	ids := []string{"1", "2", "3", "4"}
	for i, id := range ids {
		src.Set(2+i, 2+geom.NameColOffset, "p"+id)
		src.Set(2+i, 2+geom.IDColOffset, id)
	}
	src.Set(2+geom.ScoreRowA, 2+geom.ScoreColOffset, "5")
	src.Set(2+geom.ScoreRowB, 2+geom.ScoreColOffset, "2")
	return src
}

func TestCollectAndCommit(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"1", "2", "3", "4"} {
		f.addMember(id, 0)
	}

	summary, err := f.svc.CollectAndCommit(gridWithOneGame("2025/04/05"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Accepted)
	assert.Zero(t, summary.Rejected)
	assert.Equal(t, 1, summary.Committed)

	count, err := f.matchLog.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	require.Len(t, f.confirm.Questions, 1)
	assert.Len(t, f.notifier.CollectionReports, 1)
	assert.Equal(t, 1, f.metrics.GamesCollected())
	assert.Equal(t, 1, f.metrics.BatchCommits())
}

func TestCollectAndCommitCancelled(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"1", "2", "3", "4"} {
		f.addMember(id, 0)
	}
	f.confirm.Answer = false

	_, err := f.svc.CollectAndCommit(gridWithOneGame("2025/04/05"))
	assert.ErrorIs(t, err, ErrCancelled)

	count, err := f.matchLog.Count()
	require.NoError(t, err)
	assert.Zero(t, count, "a cancelled run discards the whole batch")
	assert.Empty(t, f.notifier.CollectionReports)
}

func TestCollectAndCommitEmptyGrid(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CollectAndCommit(grid.NewMemorySource())
	require.NoError(t, err)

	assert.Zero(t, summary.Accepted)
	assert.Zero(t, summary.Committed)
	assert.Empty(t, f.confirm.Questions, "nothing pending, nothing to confirm")
}

func seedMatchLog(f *fixture) {
	f.matchLog.Records = []matchlog.MatchRecord{
		{Date: "2025-04-05", GameNumber: 1, PlayerID: "1", PartnerID: "2", Points: 5, Slot: 1},
		{Date: "2025-04-05", GameNumber: 1, PlayerID: "2", PartnerID: "1", Points: 5, Slot: 2},
		{Date: "2025-04-05", GameNumber: 1, PlayerID: "3", PartnerID: "9", Points: 2, Slot: 3},
		{Date: "2025-04-05", GameNumber: 1, PlayerID: "9", PartnerID: "3", Points: 2, Slot: 4},
	}
}

func TestAggregateAndRank(t *testing.T) {
	f := newFixture(t)
	f.addMember("1", 0.5)
	f.addMember("2", 0)
	f.addMember("3", 1.0)
	seedMatchLog(f)

	summary, err := f.svc.AggregateAndRank(day("2025-04-01"), day("2025-04-30"), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Qualified)
	assert.Zero(t, summary.Unqualified)
	assert.Equal(t, 1, summary.Guests, "player 9 is not on the roster")
	assert.Equal(t, 1, summary.Threshold)
	assert.NotEmpty(t, summary.RunID)

	assert.Equal(t, 1, f.standings.SaveRunCalls)
	assert.Len(t, f.notifier.StandingsReports, 1)
	assert.Equal(t, 1, f.metrics.AggregationRuns())
}

func TestAggregateAndRankDeterministic(t *testing.T) {
	f := newFixture(t)
	f.addMember("1", 0.5)
	seedMatchLog(f)

	first, err := f.svc.AggregateAndRank(day("2025-04-01"), day("2025-04-30"), 1)
	require.NoError(t, err)
	second, err := f.svc.AggregateAndRank(day("2025-04-01"), day("2025-04-30"), 1)
	require.NoError(t, err)

	firstRows := f.standings.RunRows[first.RunID]
	secondRows := f.standings.RunRows[second.RunID]
	require.Len(t, secondRows, len(firstRows))
	for i := range firstRows {
		assert.Equal(t, firstRows[i].RankedPlayer, secondRows[i].RankedPlayer)
	}
}

func TestAggregateAndRankNoRecords(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AggregateAndRank(day("2025-04-01"), day("2025-04-30"), 0)
	assert.ErrorIs(t, err, ErrNoMatchLog)
}

func TestAggregateAndRankInvalidRange(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AggregateAndRank(day("2025-04-30"), day("2025-04-01"), 0)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func seedStandingsRun(f *fixture) {
	_, _ = f.standings.SaveRun("2025-04-01", "2025-09-30", ranking.Classification{
		Threshold: 12,
		Qualified: []ranking.RankedPlayer{
			{PlayerID: "1", DisplayName: "p1", IsMember: true, TotalPoints: 40, GameCount: 8, Gross: 5, Net: 5.5, Qualified: true},
			{PlayerID: "2", DisplayName: "p2", IsMember: true, TotalPoints: 24, GameCount: 8, Gross: 3, Net: 3.0, Qualified: true},
		},
	})
}

func TestClosePeriod(t *testing.T) {
	f := newFixture(t)
	f.addMember("1", 0.5)
	f.addMember("2", 0)
	f.roster.Label = "2025年前期"
	seedStandingsRun(f)

	summary, err := f.svc.ClosePeriod()
	require.NoError(t, err)

	assert.Equal(t, "HDCPバックアップ", summary.BackupName)
	assert.Equal(t, "2025年前期", summary.PrevLabel)
	assert.Equal(t, "2025年後期", summary.NextLabel)
	assert.Equal(t, 2, summary.Players)

	assert.Equal(t, []string{"HDCPバックアップ"}, f.roster.CreateBackupCalls)
	require.Len(t, f.roster.SaveLedgerCalls, 1)
	assert.Equal(t, "2025年後期", f.roster.Label)
	assert.Equal(t, 1, f.metrics.PeriodCloses())
	assert.Equal(t, []string{"HDCPバックアップ"}, f.notifier.CloseReports)

	// Rank 1 player's ledger was shifted and corrected.
	e, ok, err := f.roster.Lookup("1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 40, e.Ledger.P1Total)
	assert.Equal(t, "1", e.PrevRank)
	assert.Contains(t, e.Remarks, "前期1位")
}

func TestClosePeriodNoRun(t *testing.T) {
	f := newFixture(t)
	f.addMember("1", 0)

	_, err := f.svc.ClosePeriod()
	assert.ErrorIs(t, err, ErrNoRankingInput)
}

func TestClosePeriodEmptyRoster(t *testing.T) {
	f := newFixture(t)
	seedStandingsRun(f)

	_, err := f.svc.ClosePeriod()
	assert.ErrorIs(t, err, ErrNoRoster)
}

func TestClosePeriodCancelled(t *testing.T) {
	f := newFixture(t)
	f.addMember("1", 0)
	seedStandingsRun(f)
	f.confirm.Answer = false

	_, err := f.svc.ClosePeriod()
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, f.roster.CreateBackupCalls, "no backup before consent")
	assert.Empty(t, f.roster.SaveLedgerCalls)
}

func TestClosePeriodBackupFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.addMember("1", 0)
	seedStandingsRun(f)
	f.roster.CreateBackupErr = errors.New("disk full")

	_, err := f.svc.ClosePeriod()
	require.Error(t, err)
	assert.Empty(t, f.roster.SaveLedgerCalls, "backup failure must abort before any mutation")
}

func TestClosePeriodUnparseableLabel(t *testing.T) {
	f := newFixture(t)
	f.addMember("1", 0)
	f.roster.Label = "period one"
	seedStandingsRun(f)

	summary, err := f.svc.ClosePeriod()
	require.NoError(t, err)
	assert.Equal(t, "period one", summary.NextLabel, "unparseable label passes through")
	assert.Equal(t, "period one", f.roster.Label)
}
