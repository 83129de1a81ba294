package standings

import (
	"fmt"
	"sync"

	"github.com/kmorita/scorebook/internal/ranking"
)

// Mock is an in-memory implementation of Store for testing.
type Mock struct {
	mu sync.Mutex

	Runs    []Run
	RunRows map[string][]Row

	SaveRunErr error

	SaveRunCalls int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{RunRows: make(map[string][]Row)}
}

func (m *Mock) SaveRun(startDate, endDate string, c ranking.Classification) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveRunCalls++
	if m.SaveRunErr != nil {
		return "", m.SaveRunErr
	}
	id := fmt.Sprintf("run-%d", len(m.Runs)+1)
	m.Runs = append(m.Runs, Run{ID: id, StartDate: startDate, EndDate: endDate, Threshold: c.Threshold})

	var rows []Row
	for i, p := range c.Qualified {
		rows = append(rows, Row{RunID: id, Cohort: CohortMember, Rank: i + 1, RankedPlayer: p})
	}
	for _, p := range c.Unqualified {
		rows = append(rows, Row{RunID: id, Cohort: CohortMember, RankedPlayer: p})
	}
	for _, p := range c.Guests {
		rows = append(rows, Row{RunID: id, Cohort: CohortGuest, RankedPlayer: p})
	}
	m.RunRows[id] = rows
	return id, nil
}

func (m *Mock) LatestRun() (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Runs) == 0 {
		return nil, nil
	}
	run := m.Runs[len(m.Runs)-1]
	return &run, nil
}

func (m *Mock) Rows(runID string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RunRows[runID], nil
}

func (m *Mock) Stats(runID string) (map[string]PeriodStat, error) {
	rows, err := m.Rows(runID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]PeriodStat, len(rows))
	for _, r := range rows {
		out[r.PlayerID] = PeriodStat{Total: r.TotalPoints, Games: r.GameCount, Gross: r.Gross, Net: r.Net}
	}
	return out, nil
}

func (m *Mock) Top3(runID string) ([]RankEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []RankEntry
	for _, r := range m.RunRows[runID] {
		if r.Cohort == CohortMember && r.Rank >= 1 && r.Rank <= 3 {
			out = append(out, RankEntry{Rank: r.Rank, PlayerID: r.PlayerID})
		}
	}
	return out, nil
}
