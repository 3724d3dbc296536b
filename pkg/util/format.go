package util

import (
	"math"
	"strconv"
)

// FormatRating renders an average rating with a fixed number of decimals.
// NaN and negative values render as zero.
func FormatRating(avg float64, decimals int) string {
	if math.IsNaN(avg) || avg < 0 {
		avg = 0
	}
	return strconv.FormatFloat(avg, 'f', decimals, 64)
}
