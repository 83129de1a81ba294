package handicap

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	longPeriodRe  = regexp.MustCompile(`^(\d{4})年(前期|後期)$`)
	shortPeriodRe = regexp.MustCompile(`^(\d{2})(前期|後期)$`)
)

// NextPeriod advances a period label: 前期 becomes the same year's 後期, 後期
// becomes the next year's 前期. Both label shapes are accepted, "2025年前期"
// and "25前期". Unparseable labels are returned unchanged with ok false.
func NextPeriod(label string) (next string, ok bool) {
	if m := longPeriodRe.FindStringSubmatch(label); m != nil {
		year, _ := strconv.Atoi(m[1])
		if m[2] == "前期" {
			return fmt.Sprintf("%d年後期", year), true
		}
		return fmt.Sprintf("%d年前期", year+1), true
	}
	if m := shortPeriodRe.FindStringSubmatch(label); m != nil {
		year, _ := strconv.Atoi(m[1])
		if m[2] == "前期" {
			return fmt.Sprintf("%02d後期", year), true
		}
		return fmt.Sprintf("%02d前期", year+1), true
	}
	return label, false
}
