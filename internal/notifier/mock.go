package notifier

import (
	"sync"

	"github.com/kmorita/scorebook/internal/collector"
	"github.com/kmorita/scorebook/internal/handicap"
	"github.com/kmorita/scorebook/internal/ranking"
)

// Mock is a call-recording implementation of Notifier for testing.
type Mock struct {
	mu sync.Mutex

	CollectionReports []collector.Result
	StandingsReports  []ranking.Classification
	CloseReports      []string // backup names

	SendErr error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendCollectionReport(result collector.Result, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.CollectionReports = append(m.CollectionReports, result)
	return nil
}

func (m *Mock) SendStandings(c ranking.Classification, startDate, endDate string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.StandingsReports = append(m.StandingsReports, c)
	return nil
}

func (m *Mock) SendPeriodCloseReport(backupName, prevLabel, nextLabel string, results []handicap.PlayerResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.CloseReports = append(m.CloseReports, backupName)
	return nil
}
