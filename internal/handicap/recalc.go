package handicap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kmorita/scorebook/internal/roster"
	"github.com/kmorita/scorebook/internal/standings"
)

// Recalculator performs the biannual period close over the roster ledger.
// It is a pure computation: persistence, backup and confirmation are the
// caller's responsibility.
type Recalculator struct {
	opts Options
}

func New(opts Options) *Recalculator {
	return &Recalculator{opts: opts.withDefaults()}
}

// BackupBaseName returns the snapshot base name the caller should back the
// ledger up under before persisting a close.
func (r *Recalculator) BackupBaseName() string {
	return r.opts.BackupBaseName
}

// Close shifts every roster entry's rolling two-period ledger, recomputes
// the base handicap from the combined gross average and applies rank-based
// corrections from the just-closed period's standings. Players with no
// record this period get a zero-filled current slice.
//
// Running Close twice on its own output double-shifts the ledger. The
// operator confirmation guards against that, not this function.
func (r *Recalculator) Close(entries []roster.Entry, stats map[string]standings.PeriodStat, top3 []standings.RankEntry) ([]roster.Entry, []PlayerResult) {
	recentRanks := make(map[string]int, len(top3))
	for _, e := range top3 {
		recentRanks[e.PlayerID] = e.Rank
	}

	updated := make([]roster.Entry, len(entries))
	results := make([]PlayerResult, len(entries))
	for i, entry := range entries {
		priorRank := parseRank(entry.PrevRank)
		recentRank := recentRanks[entry.PlayerID]
		stat := stats[entry.PlayerID]

		led := entry.Ledger
		led.P2Total, led.P2Games, led.P2Gross = led.P1Total, led.P1Games, led.P1Gross
		led.P1Total = stat.Total
		led.P1Games = stat.Games
		led.P1Gross = round3(stat.Gross)

		led.CombinedTotal = led.P2Total + led.P1Total
		led.CombinedGames = led.P2Games + led.P1Games
		led.CombinedGross = 0
		if led.CombinedGames > 0 {
			led.CombinedGross = round3(float64(led.CombinedTotal) / float64(led.CombinedGames))
		}

		raw := round3(5 - led.CombinedGross)
		corrected, remark, tag := applyCorrections(correctionInput{
			Raw:        raw,
			PriorRank:  priorRank,
			RecentRank: recentRank,
			Net:        stat.Net,
		}, r.opts.Weights)

		led.PriorHandicap = entry.Handicap
		led.Delta = round3(corrected - entry.Handicap)

		entry.Handicap = corrected
		entry.PrevPrevRank = entry.PrevRank
		entry.PrevRank = rankString(recentRank)
		entry.Remarks = buildRemarks(recentRank, priorRank, remark)
		entry.Ledger = led

		updated[i] = entry
		results[i] = PlayerResult{
			PlayerID:  entry.PlayerID,
			Raw:       raw,
			Corrected: corrected,
			Delta:     led.Delta,
			Remark:    remark,
			Tag:       tag,
		}
	}
	return updated, results
}

func parseRank(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func rankString(rank int) string {
	if rank == 0 {
		return ""
	}
	return strconv.Itoa(rank)
}

// buildRemarks rebuilds the entry's remark column after the shift: the
// just-closed period's rank reads as 前期, the one before it as 前々期, and
// any correction remark follows.
func buildRemarks(recentRank, priorRank int, correction string) string {
	var parts []string
	if recentRank > 0 {
		parts = append(parts, fmt.Sprintf("前期%d位", recentRank))
	}
	if priorRank > 0 {
		parts = append(parts, fmt.Sprintf("前々期%d位", priorRank))
	}
	if correction != "" {
		parts = append(parts, correction)
	}
	return strings.Join(parts, " ")
}
