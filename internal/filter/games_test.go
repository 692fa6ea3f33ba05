package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeGameFilter(t *testing.T, body string) *GameFilter {
	t.Helper()
	var f GameFilter
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	return &f
}

func TestGameFilterDefaults(t *testing.T) {
	f := decodeGameFilter(t, `{}`)
	require.NoError(t, f.Normalize())

	require.NotNil(t, f.Limit)
	assert.Equal(t, 100, *f.Limit)
	require.NotNil(t, f.Offset)
	assert.Equal(t, 0, *f.Offset)
	assert.Equal(t, DefaultGameSort, f.SortBy)
}

func TestGameFilterCanonicalizesCasing(t *testing.T) {
	f := decodeGameFilter(t, `{
		"home_team": "dallas cowboys",
		"away_abbreviation": "phi",
		"month": "SEPTEMBER",
		"day_of_week": ["sunday", "MONDAY"],
		"home_division": "nfc east",
		"game_id": "dalphi20230910"
	}`)
	require.NoError(t, f.Normalize())

	assert.Equal(t, StringList{"Dallas Cowboys"}, f.HomeTeam)
	assert.Equal(t, StringList{"PHI"}, f.AwayAbbreviation)
	assert.Equal(t, StringList{"September"}, f.Month)
	assert.Equal(t, StringList{"Sunday", "Monday"}, f.DayOfWeek)
	assert.Equal(t, StringList{"NFC EAST"}, f.HomeDivision)
	assert.Equal(t, StringList{"DALPHI20230910"}, f.GameID)
}

func TestGameFilterRejections(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown team", `{"home_team": "Dallas Texans"}`, "home_team"},
		{"unknown abbreviation", `{"home_abbreviation": "XYZ"}`, "home_abbreviation"},
		{"unknown month", `{"month": "Octember"}`, "month"},
		{"bad date format", `{"date": "09/10/2023"}`, "date"},
		{"bad game id", `{"game_id": "DAL-PHI-2023"}`, "game_id"},
		{"day out of range", `{"day": 32}`, "day"},
		{"year before range", `{"year": 2005}`, "year"},
		{"season not consecutive", `{"season": "2020-2022"}`, "season"},
		{"season before range", `{"season": "2004-2005"}`, "season"},
		{"score out of range", `{"home_score": 101}`, "home_score"},
		{"spread off grid", `{"spread": 3.2}`, "spread"},
		{"spread negative", `{"spread": -3.0}`, "spread"},
		{"home spread off grid", `{"home_spread": 28.0}`, "home_spread"},
		{"total off grid", `{"min_total": 47.3}`, "min_total"},
		{"limit too large", `{"limit": 1001}`, "limit"},
		{"limit zero", `{"limit": 0}`, "limit"},
		{"negative offset", `{"offset": -1}`, "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := decodeGameFilter(t, tt.body)
			err := f.Normalize()
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestGameFilterAcceptsSignedHomeSpread(t *testing.T) {
	f := decodeGameFilter(t, `{"home_spread": [-7.5, 0.0, 3.0], "spread": [0.0, 27.0]}`)
	require.NoError(t, f.Normalize())
}

func TestGameFilterZeroBoundsAreHonored(t *testing.T) {
	// A zero minimum is a real constraint, not an absent field.
	f := decodeGameFilter(t, `{"min_home_score": 0, "min_spread": 0.0}`)
	require.NoError(t, f.Normalize())
	require.NotNil(t, f.MinHomeScore)
	assert.Equal(t, 0, *f.MinHomeScore)
	require.NotNil(t, f.MinSpread)
}

func TestGameFilterCanonicalSortsValueLists(t *testing.T) {
	a := decodeGameFilter(t, `{"home_team": ["Dallas Cowboys", "Chicago Bears"], "year": [2021, 2019]}`)
	b := decodeGameFilter(t, `{"year": [2019, 2021], "home_team": ["Chicago Bears", "Dallas Cowboys"]}`)
	require.NoError(t, a.Normalize())
	require.NoError(t, b.Normalize())

	assert.Equal(t, a.Canonical(), b.Canonical())
}

func TestGameFilterCanonicalPreservesSortOrder(t *testing.T) {
	a := decodeGameFilter(t, `{"sort_by": ["date", "total"]}`)
	b := decodeGameFilter(t, `{"sort_by": ["total", "date"]}`)
	require.NoError(t, a.Normalize())
	require.NoError(t, b.Normalize())

	assert.NotEqual(t, a.Canonical(), b.Canonical())
}

func TestGameFilterCanonicalOmitsAbsentFields(t *testing.T) {
	f := decodeGameFilter(t, `{"tie": false}`)
	require.NoError(t, f.Normalize())
	doc := f.Canonical()

	assert.Equal(t, false, doc["tie"])
	_, present := doc["home_team"]
	assert.False(t, present)
	_, present = doc["divisional"]
	assert.False(t, present)
	// Defaults always participate so explicit and implicit defaults collide.
	assert.Equal(t, 100, doc["limit"])
	assert.Equal(t, 0, doc["offset"])
}
