package handicap

import "fmt"

// correctionInput carries everything a correction rule may look at.
type correctionInput struct {
	Raw        float64 // rawNewHandicap before any correction
	PriorRank  int     // rank in the period before last, 0 when none
	RecentRank int     // rank in the just-closed period, 0 when none
	Net        float64 // current-period net, used by the recent-rank rule
}

// correctionRule adjusts a raw handicap for one ranking context. Rules are
// pure: the same input always yields the same output.
type correctionRule struct {
	tag     string
	applies func(in correctionInput) bool
	apply   func(in correctionInput, weight float64) (corrected float64, remark string)
	rank    func(in correctionInput) int
}

// correctionRules is the documented precedence order: the prior-period rule
// runs first, the recent-rank rule runs after it and overrides the corrected
// value when both apply. Remarks accumulate in application order.
var correctionRules = []correctionRule{
	{
		tag:     TagPriorRank,
		applies: func(in correctionInput) bool { return in.PriorRank >= 1 && in.PriorRank <= 3 },
		rank:    func(in correctionInput) int { return in.PriorRank },
		apply: func(in correctionInput, w float64) (float64, string) {
			return round3(in.Raw * w), fmt.Sprintf("修正→%.3f×%g", in.Raw, w)
		},
	},
	{
		tag:     TagCurrentRank,
		applies: func(in correctionInput) bool { return in.RecentRank >= 1 && in.RecentRank <= 3 },
		rank:    func(in correctionInput) int { return in.RecentRank },
		apply: func(in correctionInput, w float64) (float64, string) {
			corrected := round3((in.Raw - (in.Net - 5.0)) * w)
			return corrected, fmt.Sprintf("修正→{%.3f-(%.3f-5.000)}×%g", in.Raw, in.Net, w)
		},
	},
}

// applyCorrections runs every matching rule in precedence order and returns
// the final corrected value, the accumulated remark and the tag of the rule
// that decided the value.
func applyCorrections(in correctionInput, weights map[int]float64) (corrected float64, remark, tag string) {
	corrected = in.Raw
	for _, rule := range correctionRules {
		if !rule.applies(in) {
			continue
		}
		w, ok := weights[rule.rank(in)]
		if !ok {
			continue
		}
		var r string
		corrected, r = rule.apply(in, w)
		if remark == "" {
			remark = r
		} else {
			remark += " " + r
		}
		tag = rule.tag
	}
	return corrected, remark, tag
}
