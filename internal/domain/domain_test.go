package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdinalRanks(t *testing.T) {
	rank, ok := MonthOrder.Rank("January")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = MonthOrder.Rank("December")
	require.True(t, ok)
	assert.Equal(t, 12, rank)

	_, ok = MonthOrder.Rank("Octember")
	assert.False(t, ok)

	assert.Equal(t, 13, MonthOrder.NullRank())
	assert.Equal(t, 14, MonthOrder.OtherRank())
}

func TestWeekdayOrdersDiffer(t *testing.T) {
	// Games sort the week from Monday, trends from Sunday.
	gm, _ := GameWeekdayOrder.Rank("Monday")
	assert.Equal(t, 1, gm)
	ts, _ := TrendWeekdayOrder.Rank("Sunday")
	assert.Equal(t, 1, ts)
	tm, _ := TrendWeekdayOrder.Rank("Monday")
	assert.Equal(t, 2, tm)
}

func TestCanonicalTeam(t *testing.T) {
	name, ok := CanonicalTeam("  dallas COWBOYS ")
	require.True(t, ok)
	assert.Equal(t, "Dallas Cowboys", name)

	_, ok = CanonicalTeam("Dallas Texans")
	assert.False(t, ok)
}

func TestSpreadGrids(t *testing.T) {
	assert.True(t, ValidSpreadLine(0))
	assert.True(t, ValidSpreadLine(3.5))
	assert.True(t, ValidSpreadLine(27))
	assert.False(t, ValidSpreadLine(3.2))
	assert.False(t, ValidSpreadLine(-0.5))
	assert.False(t, ValidSpreadLine(27.5))

	assert.True(t, ValidSignedSpreadLine(-27))
	assert.True(t, ValidSignedSpreadLine(-7.5))
	assert.False(t, ValidSignedSpreadLine(-27.5))

	assert.True(t, ValidTotalLine(47.5))
	assert.False(t, ValidTotalLine(100.5))
}

func TestTrendBuckets(t *testing.T) {
	assert.True(t, ValidTrendSpreadLabel("0.0"))
	assert.True(t, ValidTrendSpreadLabel("27.0"))
	assert.True(t, ValidTrendSpreadLabel("3.5"))
	assert.True(t, ValidTrendSpreadLabel("14 or less"))
	assert.True(t, ValidTrendSpreadLabel("1 or more"))
	assert.False(t, ValidTrendSpreadLabel("27.5"))
	assert.False(t, ValidTrendSpreadLabel("15 or less"))
	assert.False(t, ValidTrendSpreadLabel("0 or more"))

	assert.True(t, ValidTrendTotalBound(30))
	assert.True(t, ValidTrendTotalBound(60))
	assert.False(t, ValidTrendTotalBound(42))
	assert.False(t, ValidTrendTotalBound(65))

	assert.True(t, ValidTrendTotalLabel("45 or more"))
	assert.False(t, ValidTrendTotalLabel("45 or sideways"))
	assert.False(t, ValidTrendTotalLabel("33 or less"))
}

func TestSeasonLadder(t *testing.T) {
	ladder := SeasonLadder()
	require.Len(t, ladder, 20)
	assert.Equal(t, "since 2006-2007", ladder[0])
	assert.Equal(t, "since 2025-2026", ladder[19])

	assert.Equal(t, 0, SeasonLadderIndex("since 2006-2007"))
	assert.Equal(t, 14, SeasonLadderIndex("since 2020-2021"))
	assert.Equal(t, -1, SeasonLadderIndex("since 1999-2000"))
	assert.Equal(t, -1, SeasonLadderIndex("2020-2021"))
}
