package pricing

import (
	"math"
	"strconv"
	"strings"
)

const footprintSuffix = "kg CO2e"

// ParseFootprint turns "12.3kg CO2e" into 12.3. Empty or unparseable text is 0.
func ParseFootprint(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, footprintSuffix, ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
