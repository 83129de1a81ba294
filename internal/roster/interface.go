package roster

import mapset "github.com/deckarep/golang-set/v2"

// Directory is the read-only lookup surface the validation and ranking
// stages need.
type Directory interface {
	// Lookup returns the entry for a player id, with found=false when the
	// id is not on the roster.
	Lookup(playerID string) (Entry, bool, error)
	// LookupAllIDs returns the set of valid player ids, used for membership
	// validation.
	LookupAllIDs() (mapset.Set[string], error)
	// ExternalParticipationDays returns the operator-maintained day-count
	// overrides keyed by player id.
	ExternalParticipationDays() (map[string]int, error)
}

// Store is the full roster ledger surface, including the mutations the
// period close performs.
type Store interface {
	Directory

	All() ([]Entry, error)
	Count() (int, error)
	Upsert(e Entry) error
	// SaveLedger persists the post-recalculation state of every entry in a
	// single transaction.
	SaveLedger(entries []Entry) error
	SetParticipationDays(playerID string, days int) error

	PeriodLabel() (string, error)
	SetPeriodLabel(label string) error

	// CreateBackup durably snapshots the current roster state under baseName,
	// suffixing (1), (2), ... when the name is already taken. Returns the
	// name actually used.
	CreateBackup(baseName string) (string, error)
	ListBackups() ([]BackupInfo, error)
	LoadBackup(name string) (*Snapshot, error)
}
