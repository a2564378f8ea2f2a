// Package timeutil provides the minute-level arithmetic used by the
// schedule engine: HH:MM parsing/formatting, half-open interval overlap
// and hour rounding. All functions are pure.
package timeutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTime is returned when a time string is not 24-hour HH:MM.
var ErrInvalidTime = errors.New("invalid time, expected 24-hour HH:MM")

// ParseHHMM converts a 24-hour "HH:MM" string to minutes since midnight.
// Hours must be 00-23 and minutes 00-59; anything else fails.
func ParseHHMM(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hour*60 + minute, nil
}

// FormatHHMM renders minutes since midnight as "HH:MM".
func FormatHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatRange renders a half-open interval as "HH:MM–HH:MM".
func FormatRange(start, end int) string {
	return FormatHHMM(start) + "–" + FormatHHMM(end)
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not count.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}

// ToHours converts minutes to hours rounded to two decimals,
// half away from zero.
func ToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
