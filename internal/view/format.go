package view

import (
	"math"
	"strconv"
)

// FormatNumber prints v the shortest way that reads back the same ("135", "225.5").
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	if v == 0 {
		// drops the sign of -0
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
