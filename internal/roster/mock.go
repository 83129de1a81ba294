package roster

import (
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// Mock is an in-memory implementation of Store for testing.
type Mock struct {
	mu sync.Mutex

	Entries       map[string]Entry
	Participation map[string]int
	Label         string
	Backups       []string

	LookupAllIDsErr error
	CreateBackupErr error
	SaveLedgerErr   error

	SaveLedgerCalls   [][]Entry
	CreateBackupCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		Entries:       make(map[string]Entry),
		Participation: make(map[string]int),
	}
}

func (m *Mock) Lookup(playerID string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Entries[playerID]
	return e, ok, nil
}

func (m *Mock) LookupAllIDs() (mapset.Set[string], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LookupAllIDsErr != nil {
		return nil, m.LookupAllIDsErr
	}
	ids := mapset.NewSet[string]()
	for id := range m.Entries {
		ids.Add(id)
	}
	return ids, nil
}

func (m *Mock) ExternalParticipationDays() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.Participation))
	for k, v := range m.Participation {
		out[k] = v
	}
	return out, nil
}

func (m *Mock) All() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.Entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *Mock) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries), nil
}

func (m *Mock) Upsert(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries[e.PlayerID] = e
	return nil
}

func (m *Mock) SaveLedger(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveLedgerCalls = append(m.SaveLedgerCalls, entries)
	if m.SaveLedgerErr != nil {
		return m.SaveLedgerErr
	}
	for _, e := range entries {
		m.Entries[e.PlayerID] = e
	}
	return nil
}

func (m *Mock) SetParticipationDays(playerID string, days int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Participation[playerID] = days
	return nil
}

func (m *Mock) PeriodLabel() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Label, nil
}

func (m *Mock) SetPeriodLabel(label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Label = label
	return nil
}

func (m *Mock) CreateBackup(baseName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateBackupCalls = append(m.CreateBackupCalls, baseName)
	if m.CreateBackupErr != nil {
		return "", m.CreateBackupErr
	}
	name := baseName
	for counter := 1; contains(m.Backups, name); counter++ {
		name = fmt.Sprintf("%s(%d)", baseName, counter)
	}
	m.Backups = append(m.Backups, name)
	return name, nil
}

func (m *Mock) ListBackups() ([]BackupInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []BackupInfo
	for _, name := range m.Backups {
		out = append(out, BackupInfo{Name: name})
	}
	return out, nil
}

func (m *Mock) LoadBackup(name string) (*Snapshot, error) {
	return nil, fmt.Errorf("backup %s not found", name)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
