package ranking

// RankedPlayer is one player's line in the standings.
type RankedPlayer struct {
	PlayerID          string
	DisplayName       string
	IsMember          bool
	GameCount         int
	TotalPoints       int
	Gross             float64
	Handicap          float64
	Net               float64 // gross plus handicap, the ranking basis
	GrossRank         int     // 1..10 for members, 0 when unranked
	ParticipationDays int
	Qualified         bool
	Remarks           string
}

// Classification is the partitioned output of one classify run. All three
// cohorts are sorted by net descending.
type Classification struct {
	Qualified   []RankedPlayer // members meeting the participation threshold
	Unqualified []RankedPlayer // members below it, reported but unranked
	Guests      []RankedPlayer // never mixed with member ranking
	Threshold   int
}

// Members returns both member cohorts, qualified first.
func (c Classification) Members() []RankedPlayer {
	out := make([]RankedPlayer, 0, len(c.Qualified)+len(c.Unqualified))
	out = append(out, c.Qualified...)
	out = append(out, c.Unqualified...)
	return out
}

// QualifyRemarkPolicy decides which period's rank remark grandfathers a
// member into the qualified cohort despite low participation.
type QualifyRemarkPolicy int

const (
	// EitherPeriod accepts a rank remark from either of the two tracked
	// periods.
	EitherPeriod QualifyRemarkPolicy = iota

	// MostRecentOnly accepts only the most recent period's rank remark.
	MostRecentOnly
)

// Options configures a classify run. The zero value derives the threshold
// from the query range and accepts either period's rank remark.
type Options struct {
	// Threshold is the participation-day qualification bar. Zero derives
	// the default: inclusive whole calendar months spanned by the query
	// range, times two.
	Threshold int

	RemarkPolicy QualifyRemarkPolicy
}
