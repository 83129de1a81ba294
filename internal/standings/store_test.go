package standings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorita/scorebook/internal/database"
	"github.com/kmorita/scorebook/internal/ranking"
	"github.com/kmorita/scorebook/internal/standings"
)

func setupTestDB(t *testing.T) (standings.Store, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return standings.New(db), dbTeardown
}

func ranked(id string, total, games int, handicap float64, qualified bool, grossRank int) ranking.RankedPlayer {
	gross := float64(total) / float64(games)
	return ranking.RankedPlayer{
		PlayerID:          id,
		DisplayName:       "p" + id,
		IsMember:          true,
		TotalPoints:       total,
		GameCount:         games,
		Gross:             gross,
		Handicap:          handicap,
		Net:               gross + handicap,
		GrossRank:         grossRank,
		ParticipationDays: 10,
		Qualified:         qualified,
	}
}

func sampleClassification() ranking.Classification {
	return ranking.Classification{
		Threshold: 12,
		Qualified: []ranking.RankedPlayer{
			ranked("1", 40, 8, 1.0, true, 1),
			ranked("2", 32, 8, 1.5, true, 2),
			ranked("3", 28, 8, 1.2, true, 3),
			ranked("4", 20, 8, 1.0, true, 0),
		},
		Unqualified: []ranking.RankedPlayer{
			ranked("5", 10, 4, 0.5, false, 4),
		},
		Guests: []ranking.RankedPlayer{
			{PlayerID: "g1", DisplayName: "guest", TotalPoints: 15, GameCount: 3, Gross: 5, Net: 5, ParticipationDays: 2},
		},
	}
}

func TestSaveRunAndLatest(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	latest, err := store.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest, "no runs on a cold start")

	runID, err := store.SaveRun("2025-04-01", "2025-09-30", sampleClassification())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	latest, err = store.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, runID, latest.ID)
	assert.Equal(t, "2025-04-01", latest.StartDate)
	assert.Equal(t, "2025-09-30", latest.EndDate)
	assert.Equal(t, 12, latest.Threshold)
}

func TestLatestRunPicksNewest(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.SaveRun("2024-10-01", "2025-03-31", sampleClassification())
	require.NoError(t, err)
	second, err := store.SaveRun("2025-04-01", "2025-09-30", sampleClassification())
	require.NoError(t, err)

	latest, err := store.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second, latest.ID)
}

func TestRowsRoundTrip(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	runID, err := store.SaveRun("2025-04-01", "2025-09-30", sampleClassification())
	require.NoError(t, err)

	rows, err := store.Rows(runID)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	// Ranked members first, in rank order.
	assert.Equal(t, "1", rows[0].PlayerID)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1, rows[0].GrossRank)
	assert.True(t, rows[0].Qualified)
	assert.True(t, rows[0].IsMember)
	assert.Equal(t, "4", rows[3].PlayerID)
	assert.Zero(t, rows[3].GrossRank, "outside the top ten stays unranked")

	// Unqualified member carries no rank.
	assert.Equal(t, "5", rows[4].PlayerID)
	assert.Zero(t, rows[4].Rank)
	assert.False(t, rows[4].Qualified)

	// Guest cohort last.
	assert.Equal(t, standings.CohortGuest, rows[5].Cohort)
	assert.Equal(t, "g1", rows[5].PlayerID)
	assert.False(t, rows[5].IsMember)
}

func TestStats(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	runID, err := store.SaveRun("2025-04-01", "2025-09-30", sampleClassification())
	require.NoError(t, err)

	stats, err := store.Stats(runID)
	require.NoError(t, err)
	require.Len(t, stats, 6)
	assert.Equal(t, standings.PeriodStat{Total: 40, Games: 8, Gross: 5, Net: 6}, stats["1"])
	assert.Equal(t, standings.PeriodStat{Total: 15, Games: 3, Gross: 5, Net: 5}, stats["g1"])
}

func TestTop3(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	runID, err := store.SaveRun("2025-04-01", "2025-09-30", sampleClassification())
	require.NoError(t, err)

	top, err := store.Top3(runID)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, standings.RankEntry{Rank: 1, PlayerID: "1"}, top[0])
	assert.Equal(t, standings.RankEntry{Rank: 2, PlayerID: "2"}, top[1])
	assert.Equal(t, standings.RankEntry{Rank: 3, PlayerID: "3"}, top[2])
}
