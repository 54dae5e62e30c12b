// Package format renders raw magnitudes as short human-readable strings.
package format

import (
	"math"
	"strconv"
)

// Unit boundaries used by Size. The platform reports XP and audit volumes in
// bytes using decimal (SI) multiples.
const (
	kilo = 1_000
	mega = 1_000_000
)

// Size maps a non-negative magnitude to a B/KB/MB string.
//
//	value < 1000         -> "<value>B" (printed as given)
//	1000 <= value < 1e6  -> value/1000 rounded to nearest integer + "KB"
//	value >= 1e6         -> value/1e6 with two decimals + "MB"
//
// Negative input is a precondition violation and is formatted like a byte
// count.
func Size(value float64) string {
	switch {
	case value < kilo:
		return strconv.FormatFloat(value, 'f', -1, 64) + "B"
	case value < mega:
		return strconv.FormatFloat(math.Round(value/kilo), 'f', 0, 64) + "KB"
	default:
		return strconv.FormatFloat(value/mega, 'f', 2, 64) + "MB"
	}
}

// SizeInt is Size for integer counters.
func SizeInt(value int64) string {
	return Size(float64(value))
}
