package sales

import (
	"math"
	"strconv"
	"strings"
)

// epsilon guards against 1.005-style float representations rounding down.
const epsilon = 1e-9

// Round2 rounds half away from zero at two decimal places.
func Round2(v float64) float64 {
	if v < 0 {
		return math.Round((v-epsilon)*100) / 100
	}
	return math.Round((v+epsilon)*100) / 100
}

// ParseReading converts operator input to a meter value. Blank or
// unparsable input counts as zero, never an error.
func ParseReading(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
