package matchlog

// Store defines the interface for the append-only match record log.
type Store interface {
	// Append writes a batch of committed records. It never checks for
	// duplicates; callers are responsible for not double-committing.
	Append(records []MatchRecord) error
	// QueryRange returns all records with start <= date <= end, comparing
	// calendar dates only.
	QueryRange(start, end string) ([]MatchRecord, error)
	// MaxGameNumber returns the highest committed game number for a date,
	// or 0 when the date has no games.
	MaxGameNumber(date string) (int, error)
	// Count returns the total number of committed records.
	Count() (int, error)
}
