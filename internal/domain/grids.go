package domain

import (
	"fmt"
	"math"
)

// Year bounds for games, and the season range derived from them. A season
// label is "yyyy-yyyy" where the second year is exactly one more than the
// first.
const (
	MinYear = 2006
	MaxYear = 2025
)

// OnHalfPointGrid reports whether v is a non-negative multiple of 0.5.
// Betting lines only exist on the half-point grid; values off it are
// rejected outright, never rounded.
func OnHalfPointGrid(v float64) bool {
	scaled := v * 10
	return scaled == math.Trunc(scaled) && math.Mod(scaled, 5) == 0
}

// ValidSpreadLine reports whether v is a valid closing spread (0 to 27 on
// the half-point grid).
func ValidSpreadLine(v float64) bool {
	return v >= 0 && v <= 27 && OnHalfPointGrid(v)
}

// ValidSignedSpreadLine reports whether v is a valid signed (home/away)
// spread (-27 to 27 on the half-point grid).
func ValidSignedSpreadLine(v float64) bool {
	return v >= -27 && v <= 27 && OnHalfPointGrid(v)
}

// ValidTotalLine reports whether v is a valid game total (0 to 100 on the
// half-point grid).
func ValidTotalLine(v float64) bool {
	return v >= 0 && v <= 100 && OnHalfPointGrid(v)
}

// Trend spread buckets: exact values are "0.0" through "27.0" by 0.5, plus
// "N or less" / "N or more" for N in 1..14.
const (
	TrendSpreadBoundMin = 1
	TrendSpreadBoundMax = 14
)

var trendSpreadLabels = buildTrendSpreadLabels()

func buildTrendSpreadLabels() map[string]struct{} {
	m := make(map[string]struct{})
	for i := 0; i <= 54; i++ {
		m[fmt.Sprintf("%.1f", float64(i)*0.5)] = struct{}{}
	}
	for i := TrendSpreadBoundMin; i <= TrendSpreadBoundMax; i++ {
		m[fmt.Sprintf("%d or less", i)] = struct{}{}
		m[fmt.Sprintf("%d or more", i)] = struct{}{}
	}
	return m
}

// ValidTrendSpreadLabel reports whether s is a valid trend spread bucket
// label.
func ValidTrendSpreadLabel(s string) bool {
	_, ok := trendSpreadLabels[s]
	return ok
}

// Trend total buckets live on a 5-point grid from 30 to 60, each expressed
// as "N or less" or "N or more".
func ValidTrendTotalBound(n int) bool {
	return n >= 30 && n <= 60 && n%5 == 0
}

// ValidTrendTotalLabel reports whether s is a valid trend total bucket
// label.
func ValidTrendTotalLabel(s string) bool {
	var n int
	var suffix string
	if _, err := fmt.Sscanf(s, "%d or %s", &n, &suffix); err != nil {
		return false
	}
	if suffix != "less" && suffix != "more" {
		return false
	}
	return ValidTrendTotalBound(n) && s == fmt.Sprintf("%d or %s", n, suffix)
}

// SeasonLadder returns the ordered "since yyyy-yyyy" labels used by the
// trends seasons column, earliest first.
func SeasonLadder() []string {
	ladder := make([]string, 0, MaxYear-MinYear+1)
	for y := MinYear; y <= MaxYear; y++ {
		ladder = append(ladder, fmt.Sprintf("since %d-%d", y, y+1))
	}
	return ladder
}

// SeasonLadderIndex returns the position of label in the seasons ladder,
// or -1 when the label is not on it.
func SeasonLadderIndex(label string) int {
	for i, l := range SeasonLadder() {
		if l == label {
			return i
		}
	}
	return -1
}
