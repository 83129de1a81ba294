package roster_test

import (
	"testing"

	"github.com/kmorita/scorebook/internal/database"
	"github.com/kmorita/scorebook/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (roster.Store, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return roster.New(db), dbTeardown
}

func TestUpsertAndLookup(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	e := roster.Entry{
		PlayerID:    "101",
		DisplayName: "山田",
		IsMember:    true,
		Handicap:    1.25,
		Remarks:     "前期1位",
		PrevRank:    "1",
	}
	require.NoError(t, store.Upsert(e))

	got, found, err := store.Lookup("101")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "山田", got.DisplayName)
	assert.True(t, got.IsMember)
	assert.InDelta(t, 1.25, got.Handicap, 1e-9)
	assert.Equal(t, "1", got.PrevRank)

	_, found, err = store.Lookup("999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookupAllIDs(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.Upsert(roster.Entry{PlayerID: "101"}))
	require.NoError(t, store.Upsert(roster.Entry{PlayerID: "102"}))

	ids, err := store.LookupAllIDs()
	require.NoError(t, err)
	assert.Equal(t, 2, ids.Cardinality())
	assert.True(t, ids.Contains("101"))
	assert.False(t, ids.Contains("103"))
}

func TestSaveLedger(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.Upsert(roster.Entry{PlayerID: "101", IsMember: true, Handicap: 2.0}))

	updated := roster.Entry{
		PlayerID:     "101",
		Handicap:     1.6,
		Remarks:      "修正→2.000×0.8",
		PrevPrevRank: "2",
		PrevRank:     "1",
		Ledger: roster.PeriodLedger{
			P2Total: 80, P2Games: 20, P2Gross: 4.0,
			P1Total: 90, P1Games: 20, P1Gross: 4.5,
			CombinedTotal: 170, CombinedGames: 40, CombinedGross: 4.25,
			PriorHandicap: 2.0, Delta: -0.4,
		},
	}
	require.NoError(t, store.SaveLedger([]roster.Entry{updated}))

	got, found, err := store.Lookup("101")
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 1.6, got.Handicap, 1e-9)
	assert.Equal(t, "1", got.PrevRank)
	assert.Equal(t, 170, got.Ledger.CombinedTotal)
	assert.InDelta(t, 4.25, got.Ledger.CombinedGross, 1e-9)
	// SaveLedger never touches membership.
	assert.True(t, got.IsMember)
}

func TestParticipationDays(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	days, err := store.ExternalParticipationDays()
	require.NoError(t, err)
	assert.Empty(t, days)

	require.NoError(t, store.SetParticipationDays("101", 12))
	require.NoError(t, store.SetParticipationDays("101", 14)) // overwrite
	require.NoError(t, store.SetParticipationDays("102", 3))

	days, err = store.ExternalParticipationDays()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"101": 14, "102": 3}, days)
}

func TestPeriodLabel(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	label, err := store.PeriodLabel()
	require.NoError(t, err)
	assert.Empty(t, label)

	require.NoError(t, store.SetPeriodLabel("2025年前期"))
	label, err = store.PeriodLabel()
	require.NoError(t, err)
	assert.Equal(t, "2025年前期", label)
}

func TestCreateBackupNaming(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.Upsert(roster.Entry{PlayerID: "101", DisplayName: "山田", Handicap: 1.0}))
	require.NoError(t, store.SetPeriodLabel("2025年前期"))

	name, err := store.CreateBackup("HDCPバックアップ")
	require.NoError(t, err)
	assert.Equal(t, "HDCPバックアップ", name)

	name, err = store.CreateBackup("HDCPバックアップ")
	require.NoError(t, err)
	assert.Equal(t, "HDCPバックアップ(1)", name)

	name, err = store.CreateBackup("HDCPバックアップ")
	require.NoError(t, err)
	assert.Equal(t, "HDCPバックアップ(2)", name)

	backups, err := store.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 3)

	snap, err := store.LoadBackup("HDCPバックアップ(1)")
	require.NoError(t, err)
	assert.Equal(t, "2025年前期", snap.PeriodLabel)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "山田", snap.Entries[0].DisplayName)
}
