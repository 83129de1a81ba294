package matchlog

import "sync"

// Mock is an in-memory implementation of Store for testing.
type Mock struct {
	mu      sync.Mutex
	Records []MatchRecord

	AppendErr error

	AppendCalls [][]MatchRecord
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Append(records []MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls = append(m.AppendCalls, records)
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Records = append(m.Records, records...)
	return nil
}

func (m *Mock) QueryRange(start, end string) ([]MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MatchRecord
	for _, r := range m.Records {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Mock) MaxGameNumber(date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, r := range m.Records {
		if r.Date == date && r.GameNumber > max {
			max = r.GameNumber
		}
	}
	return max, nil
}

func (m *Mock) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records), nil
}
