package handicap

import "math"

// round3 rounds half away from zero at the third decimal, the rounding used
// for every stored gross-like value.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
