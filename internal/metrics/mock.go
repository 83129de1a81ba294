package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	gamesCollected   int
	gamesRejected    int
	batchCommits     int
	aggregationRuns  int
	periodCloses     int
	collectDurations []float64
	slackNotifSent   int
	slackNotifFailed int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		collectDurations: make([]float64, 0),
	}
}

func (m *Mock) IncGamesCollected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesCollected++
}

func (m *Mock) IncGamesRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesRejected++
}

func (m *Mock) IncBatchCommits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCommits++
}

func (m *Mock) IncAggregationRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregationRuns++
}

func (m *Mock) IncPeriodCloses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.periodCloses++
}

func (m *Mock) ObserveCollectDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectDurations = append(m.collectDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

// GamesCollected returns the recorded count.
func (m *Mock) GamesCollected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesCollected
}

// GamesRejected returns the recorded count.
func (m *Mock) GamesRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesRejected
}

// BatchCommits returns the recorded count.
func (m *Mock) BatchCommits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchCommits
}

// AggregationRuns returns the recorded count.
func (m *Mock) AggregationRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aggregationRuns
}

// PeriodCloses returns the recorded count.
func (m *Mock) PeriodCloses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.periodCloses
}

// SlackNotifSent returns the recorded count.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the recorded count.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
