package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScalarOrList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected StringList
		wantErr  bool
	}{
		{"scalar", `"Dallas Cowboys"`, StringList{"Dallas Cowboys"}, false},
		{"list", `["a","b"]`, StringList{"a", "b"}, false},
		{"empty list", `[]`, StringList{}, false},
		{"number rejected", `7`, nil, true},
		{"mixed list rejected", `["a",7]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			err := json.Unmarshal([]byte(tt.input), &l)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestIntListScalarOrList(t *testing.T) {
	var l IntList
	require.NoError(t, json.Unmarshal([]byte(`21`), &l))
	assert.Equal(t, IntList{21}, l)

	require.NoError(t, json.Unmarshal([]byte(`[1,2,3]`), &l))
	assert.Equal(t, IntList{1, 2, 3}, l)

	require.Error(t, json.Unmarshal([]byte(`"x"`), &l))
}

func TestNullableBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected NullableBool
		wantErr  bool
	}{
		{"true", `true`, NullableBool{Set: true, Value: true}, false},
		{"false", `false`, NullableBool{Set: true, Value: false}, false},
		{"null means absent", `null`, NullableBool{}, false},
		{"string true", `"True"`, NullableBool{Set: true, Value: true}, false},
		{"string false", `"false"`, NullableBool{Set: true, Value: false}, false},
		{"none sentinel", `"None"`, NullableBool{Set: true, Null: true}, false},
		{"arbitrary string", `"maybe"`, NullableBool{}, true},
		{"number", `1`, NullableBool{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b NullableBool
			err := json.Unmarshal([]byte(tt.input), &b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b)
		})
	}
}

func TestSortListShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SortList
		wantErr  bool
	}{
		{"bare name", `"date"`, SortList{{Field: "date", Order: SortAsc}}, false},
		{"object", `{"field":"total","order":"desc"}`, SortList{{Field: "total", Order: SortDesc}}, false},
		{"object default order", `{"field":"total"}`, SortList{{Field: "total", Order: SortAsc}}, false},
		{"mixed list", `["date",{"field":"total","order":"desc"}]`,
			SortList{{Field: "date", Order: SortAsc}, {Field: "total", Order: SortDesc}}, false},
		{"bad order", `{"field":"total","order":"sideways"}`, nil, true},
		{"missing field", `{"order":"asc"}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l SortList
			err := json.Unmarshal([]byte(tt.input), &l)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestTrendSpreadShapes(t *testing.T) {
	var s TrendSpread
	require.NoError(t, json.Unmarshal([]byte(`"3.0"`), &s))
	assert.Equal(t, StringList{"3.0"}, s.Exact)

	s = TrendSpread{}
	require.NoError(t, json.Unmarshal([]byte(`["3.0","None"]`), &s))
	assert.Equal(t, StringList{"3.0", "None"}, s.Exact)

	s = TrendSpread{}
	require.NoError(t, json.Unmarshal([]byte(`{"exact":"7.5","or_less":3,"or_more":[1,2]}`), &s))
	assert.Equal(t, StringList{"7.5"}, s.Exact)
	assert.Equal(t, IntList{3}, s.OrLess)
	assert.Equal(t, IntList{1, 2}, s.OrMore)
}

func TestSeasonFilterShapes(t *testing.T) {
	var s SeasonFilter
	require.NoError(t, json.Unmarshal([]byte(`"since 2020-2021"`), &s))
	assert.Equal(t, StringList{"since 2020-2021"}, s.Exact)

	s = SeasonFilter{}
	require.NoError(t, json.Unmarshal([]byte(`{"since_or_later":"since 2015-2016"}`), &s))
	assert.Equal(t, "since 2015-2016", s.SinceOrLater)
	assert.Empty(t, s.Exact)
}
