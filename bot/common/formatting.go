package common

import (
	"strconv"
)

// FormatScore renders a score without trailing zeros, so whole numbers read
// as "42" and fractional ones as "42.5".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// FormatSignedScore renders a delta with an explicit sign, e.g. "+3" or "-2.5"
func FormatSignedScore(delta float64) string {
	s := FormatScore(delta)
	if delta >= 0 {
		return "+" + s
	}
	return s
}
