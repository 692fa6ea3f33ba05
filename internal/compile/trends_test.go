package compile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmfalke/trendline/internal/filter"
	"github.com/dmfalke/trendline/internal/predicate"
)

func compileTrends(t *testing.T, body string) (predicate.Fragment, []predicate.SortKey) {
	t.Helper()
	var f filter.TrendFilter
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	require.NoError(t, f.Normalize())
	frag, keys, err := Trends(&f)
	require.NoError(t, err)
	return frag, keys
}

func TestTrendsDefaultSort(t *testing.T) {
	frag, keys := compileTrends(t, `{}`)
	assert.Nil(t, frag)

	require.Len(t, keys, 2)
	assert.Equal(t, "win_percentage", keys[0].Col.Name)
	assert.True(t, keys[0].Desc)
	assert.Equal(t, "total_games", keys[1].Col.Name)
	assert.True(t, keys[1].Desc)
}

func TestTrendsNullSentinelSelectsNullRows(t *testing.T) {
	frag, _ := compileTrends(t, `{"day_of_week": ["Sunday", "None"]}`)

	or, ok := frag.(*predicate.Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
	in := or.Children[0].(*predicate.In)
	assert.Equal(t, []any{"Sunday"}, in.Values)
	isNull := or.Children[1].(*predicate.IsNull)
	assert.Equal(t, "day_of_week", isNull.Col.Name)
	assert.False(t, isNull.Negate)
}

func TestTrendsSentinelOnlyListIsJustNullCheck(t *testing.T) {
	// When the sentinel is the whole list there is no membership half left.
	frag, _ := compileTrends(t, `{"month": "None"}`)
	isNull, ok := frag.(*predicate.IsNull)
	require.True(t, ok)
	assert.Equal(t, "month", isNull.Col.Name)
}

func TestTrendsMonthListOrRange(t *testing.T) {
	frag, _ := compileTrends(t, `{"month": "None", "start_month": "September", "end_month": "December"}`)

	// Either the trend names no month, or its month falls inside the
	// range; NULL months never satisfy the range half.
	or, ok := frag.(*predicate.Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
	_, isNullList := or.Children[0].(*predicate.IsNull)
	assert.True(t, isNullList)

	rng := or.Children[1].(*predicate.And)
	require.Len(t, rng.Children, 2)
	between := rng.Children[0].(*predicate.Between)
	assert.Equal(t, 9, between.Lo)
	assert.Equal(t, 12, between.Hi)
	notNull := rng.Children[1].(*predicate.IsNull)
	assert.True(t, notNull.Negate)
}

func TestTrendsDivisionalTriState(t *testing.T) {
	frag, _ := compileTrends(t, `{"divisional": "None"}`)
	isNull, ok := frag.(*predicate.IsNull)
	require.True(t, ok)
	assert.Equal(t, "divisional", isNull.Col.Name)

	frag, _ = compileTrends(t, `{"divisional": true}`)
	cmp, ok := frag.(*predicate.Compare)
	require.True(t, ok)
	assert.Equal(t, true, cmp.Value)
}

func TestTrendsSpreadBranchesExpandToBuckets(t *testing.T) {
	frag, _ := compileTrends(t, `{"spread": {"exact": ["3.0", "None"], "or_less": 7, "or_more": [1, 2]}}`)

	or, ok := frag.(*predicate.Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
	in := or.Children[0].(*predicate.In)
	assert.Equal(t, "spread", in.Col.Name)
	assert.ElementsMatch(t, []any{"3.0", "7 or less", "1 or more", "2 or more"}, in.Values)
	_, isNull := or.Children[1].(*predicate.IsNull)
	assert.True(t, isNull)
}

func TestTrendsTotalBuckets(t *testing.T) {
	frag, _ := compileTrends(t, `{"total": {"or_less": [40, 45]}}`)
	in, ok := frag.(*predicate.In)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"40 or less", "45 or less"}, in.Values)
}

func TestTrendsSeasonsLadderSlices(t *testing.T) {
	frag, _ := compileTrends(t, `{"seasons": {"since_or_later": "since 2023-2024"}}`)
	in, ok := frag.(*predicate.In)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{
		"since 2023-2024", "since 2024-2025", "since 2025-2026",
	}, in.Values)

	frag, _ = compileTrends(t, `{"seasons": {"since_or_earlier": "since 2007-2008"}}`)
	in, ok = frag.(*predicate.In)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"since 2006-2007", "since 2007-2008"}, in.Values)
}

func TestTrendsSeasonsBranchesUnion(t *testing.T) {
	frag, _ := compileTrends(t, `{"seasons": {
		"exact": "since 2006-2007",
		"since_or_later": "since 2020-2021"
	}}`)

	// Branches on the same field are alternatives: the oldest bucket plus
	// every recent one, not their (empty) intersection.
	or, ok := frag.(*predicate.Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
	exact := or.Children[0].(*predicate.In)
	assert.Equal(t, []any{"since 2006-2007"}, exact.Values)
	later := or.Children[1].(*predicate.In)
	assert.Contains(t, later.Values, "since 2020-2021")
	assert.Contains(t, later.Values, "since 2025-2026")
	assert.NotContains(t, later.Values, "since 2019-2020")
}

func TestTrendsTrendIDMembership(t *testing.T) {
	frag, _ := compileTrends(t, `{"trend_id": [
		"home ats,October,Thursday,False,8 or less,40 or less,since 2008-2009",
		"over,None,Sunday,None,3.0,45 or more,since 2015-2016"
	]}`)
	in, ok := frag.(*predicate.In)
	require.True(t, ok)
	assert.Equal(t, "id_string", in.Col.Name)
	assert.Len(t, in.Values, 2)
}

func TestTrendsGamesApplicableContainment(t *testing.T) {
	frag, _ := compileTrends(t, `{"games_applicable": ["DALPHI20230910", "KCBUF20231203"]}`)
	and, ok := frag.(*predicate.And)
	require.True(t, ok)
	require.Len(t, and.Children, 2)
	c := and.Children[0].(*predicate.Contains)
	assert.Equal(t, "games_applicable", c.Col.Name)
	assert.Equal(t, "DALPHI20230910", c.Needle)
}

func TestTrendsDeterministicAcrossInputOrder(t *testing.T) {
	a, _ := compileTrends(t, `{"category": ["home outright", "away ats"], "month": ["September", "October"]}`)
	b, _ := compileTrends(t, `{"month": ["October", "September"], "category": ["away ats", "home outright"]}`)
	assert.Equal(t, a, b)
}

func TestTrendsUnknownSortFieldRejected(t *testing.T) {
	var f filter.TrendFilter
	require.NoError(t, json.Unmarshal([]byte(`{"sort_by": "vibes"}`), &f))
	require.NoError(t, f.Normalize())

	_, _, err := Trends(&f)
	require.Error(t, err)
	var ve *filter.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sort_by", ve.Field)
}
