package ranking

import (
	"sort"
	"strings"
	"time"

	"github.com/kmorita/scorebook/internal/aggregate"
	"github.com/kmorita/scorebook/internal/roster"
)

const grossRankLimit = 10

// Classifier turns aggregated stats and the roster into ranked member and
// guest cohorts.
type Classifier struct {
	opts Options
}

func NewClassifier(opts Options) *Classifier {
	return &Classifier{opts: opts}
}

// Classify partitions every aggregated player into members and guests,
// computes net and gross ranks, and applies the participation threshold.
// Players absent from the roster are treated as guests with zero handicap,
// so a missing roster directory degrades to an all-guest result.
func (c *Classifier) Classify(stats map[string]aggregate.PlayerStat, entries map[string]roster.Entry, start, end time.Time) Classification {
	threshold := c.opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold(start, end)
	}

	// Stable base order for tie-breaking.
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var members, guests []RankedPlayer
	for _, id := range ids {
		stat := stats[id]
		entry, isMember := entries[id]
		p := RankedPlayer{
			PlayerID:          id,
			DisplayName:       entry.DisplayName,
			IsMember:          isMember && entry.IsMember,
			GameCount:         stat.GameCount,
			TotalPoints:       stat.TotalPoints,
			Gross:             stat.Gross,
			Handicap:          entry.Handicap,
			ParticipationDays: stat.ParticipationDays,
			Remarks:           entry.Remarks,
		}
		if !p.IsMember {
			p.Handicap = 0
		}
		p.Net = p.Gross + p.Handicap
		if p.DisplayName == "" {
			p.DisplayName = id
		}
		if p.IsMember {
			members = append(members, p)
		} else {
			guests = append(guests, p)
		}
	}

	assignGrossRanks(members)

	result := Classification{Threshold: threshold}
	for _, p := range members {
		p.Qualified = p.ParticipationDays >= threshold || c.grandfathered(p.Remarks)
		if p.Qualified {
			result.Qualified = append(result.Qualified, p)
		} else {
			result.Unqualified = append(result.Unqualified, p)
		}
	}
	result.Guests = guests

	sortByNet(result.Qualified)
	sortByNet(result.Unqualified)
	sortByNet(result.Guests)
	return result
}

// grandfathered reports whether a rank remark keeps the member in the
// qualified cohort regardless of participation.
func (c *Classifier) grandfathered(remarks string) bool {
	if remarks == "" {
		return false
	}
	recent := strings.Contains(remarks, "前期")
	if c.opts.RemarkPolicy == MostRecentOnly {
		return recent
	}
	return recent || strings.Contains(remarks, "前々期")
}

// assignGrossRanks gives ranks 1..10 by gross descending, stable on the
// incoming order.
func assignGrossRanks(members []RankedPlayer) {
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return members[order[a]].Gross > members[order[b]].Gross
	})
	for rank, idx := range order {
		if rank >= grossRankLimit {
			break
		}
		members[idx].GrossRank = rank + 1
	}
}

func sortByNet(players []RankedPlayer) {
	sort.SliceStable(players, func(a, b int) bool {
		return players[a].Net > players[b].Net
	})
}

// DefaultThreshold is the qualification bar when no override is given: the
// inclusive count of calendar months the range spans, times two.
func DefaultThreshold(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		months = 1
	}
	return months * 2
}
