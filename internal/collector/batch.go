package collector

import "github.com/kmorita/scorebook/internal/matchlog"

// Batch accumulates accepted match records across one collection run. It is
// owned by the caller for the duration of collect and commit and must not be
// shared between runs.
type Batch struct {
	records []matchlog.MatchRecord
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Add(records []matchlog.MatchRecord) {
	b.records = append(b.records, records...)
}

// MaxGameNumber returns the highest pending game number for a date, 0 when
// the batch holds none.
func (b *Batch) MaxGameNumber(date string) int {
	max := 0
	for _, r := range b.records {
		if r.Date == date && r.GameNumber > max {
			max = r.GameNumber
		}
	}
	return max
}

func (b *Batch) Records() []matchlog.MatchRecord {
	return b.records
}

// Len returns the number of pending records, four per accepted game.
func (b *Batch) Len() int {
	return len(b.records)
}

func (b *Batch) Clear() {
	b.records = nil
}
