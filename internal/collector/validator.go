package collector

import (
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/kmorita/scorebook/internal/grid"
	"github.com/kmorita/scorebook/internal/matchlog"
	"github.com/kmorita/scorebook/internal/roster"
)

// Validator turns one raw game slot into four match records, or rejects it.
type Validator struct {
	roster roster.Directory
	ids    mapset.Set[string] // cached for the life of the validator
}

func NewValidator(dir roster.Directory) *Validator {
	return &Validator{roster: dir}
}

func (v *Validator) validIDs() (mapset.Set[string], error) {
	if v.ids == nil {
		ids, err := v.roster.LookupAllIDs()
		if err != nil {
			return nil, err
		}
		v.ids = ids
	}
	return v.ids, nil
}

// Validate checks a slot against the fixed rule order: date, team
// completeness, roster membership, duplicate players, score validity. The
// first failing rule wins. On success it draws the next game number for the
// resolved date and fans the game out into one record per participant, slots
// 1 to 4, each cross-referencing its teammate.
//
// A non-nil error reports an infrastructure failure, not a validation one.
func (v *Validator) Validate(raw grid.RawGame, date string, nums GameNumberSource) ([]matchlog.MatchRecord, *Rejection, error) {
	if date == "" {
		return nil, &Rejection{Code: RejectMissingDate}, nil
	}

	for _, p := range raw.Players {
		if p.ID == "" {
			return nil, &Rejection{Code: RejectIncompleteTeam}, nil
		}
	}

	ids, err := v.validIDs()
	if err != nil {
		return nil, nil, err
	}
	for _, p := range raw.Players {
		if !ids.Contains(p.ID) {
			return nil, &Rejection{Code: RejectUnknownPlayer, PlayerID: p.ID}, nil
		}
	}

	seen := make(map[string]bool, 4)
	for _, p := range raw.Players {
		if seen[p.ID] {
			return nil, &Rejection{Code: RejectDuplicatePlayer}, nil
		}
		seen[p.ID] = true
	}

	scoreA, scoreB, ok := parseScores(raw.ScoreA, raw.ScoreB)
	if !ok {
		return nil, &Rejection{Code: RejectInvalidScore}, nil
	}

	gameNo, err := nums.NextGameNumber(date)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().Unix()
	records := make([]matchlog.MatchRecord, 4)
	for i, p := range raw.Players {
		points := scoreA
		if i >= 2 {
			points = scoreB
		}
		records[i] = matchlog.MatchRecord{
			Date:        date,
			GameNumber:  gameNo,
			PlayerID:    p.ID,
			PartnerID:   raw.Players[partnerIndex(i)].ID,
			Points:      points,
			Slot:        i + 1,
			CommittedAt: now,
		}
	}
	return records, nil, nil
}

// partnerIndex maps a player row to its teammate: 0<->1, 2<->3.
func partnerIndex(i int) int {
	return i ^ 1
}

// parseScores accepts exactly one team at 5 with the other in [0,3].
func parseScores(rawA, rawB string) (a, b int, ok bool) {
	a, errA := strconv.Atoi(rawA)
	b, errB := strconv.Atoi(rawB)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	if a == 5 && b >= 0 && b <= 3 {
		return a, b, true
	}
	if b == 5 && a >= 0 && a <= 3 {
		return a, b, true
	}
	return 0, 0, false
}
