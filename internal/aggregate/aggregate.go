package aggregate

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/kmorita/scorebook/internal/matchlog"
)

// PlayerStat is one player's accumulated result over a date range.
type PlayerStat struct {
	PlayerID          string
	GameCount         int
	TotalPoints       int
	Gross             float64 // total points divided by game count
	ParticipationDays int     // distinct calendar days played
}

// ParticipationPolicy decides whether an externally maintained per-player
// day count overrides the one computed from the match log.
type ParticipationPolicy int

const (
	// PreferExternal uses the external day count whenever one exists for a
	// player. This lets operators hand-correct participation without
	// re-deriving it from raw games.
	PreferExternal ParticipationPolicy = iota

	// PreferComputed always uses the count derived from the match log.
	PreferComputed
)

// Aggregator folds match records into per-player statistics.
type Aggregator struct {
	policy ParticipationPolicy
}

func New(policy ParticipationPolicy) *Aggregator {
	return &Aggregator{policy: policy}
}

// Aggregate consumes records and returns one PlayerStat per participant.
// external maps player ids to hand-maintained participation day counts; a
// nil map disables the override.
func (a *Aggregator) Aggregate(records []matchlog.MatchRecord, external map[string]int) map[string]PlayerStat {
	totals := make(map[string]*PlayerStat)
	dates := make(map[string]mapset.Set[string])

	for _, r := range records {
		stat, ok := totals[r.PlayerID]
		if !ok {
			stat = &PlayerStat{PlayerID: r.PlayerID}
			totals[r.PlayerID] = stat
			dates[r.PlayerID] = mapset.NewSet[string]()
		}
		stat.GameCount++
		stat.TotalPoints += r.Points
		dates[r.PlayerID].Add(r.Date)
	}

	out := make(map[string]PlayerStat, len(totals))
	for id, stat := range totals {
		stat.Gross = float64(stat.TotalPoints) / float64(stat.GameCount)
		stat.ParticipationDays = dates[id].Cardinality()
		if a.policy == PreferExternal {
			if days, ok := external[id]; ok {
				stat.ParticipationDays = days
			}
		}
		out[id] = *stat
	}
	return out
}
