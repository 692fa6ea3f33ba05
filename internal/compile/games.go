package compile

import (
	"strconv"

	"github.com/dmfalke/trendline/internal/domain"
	"github.com/dmfalke/trendline/internal/filter"
	"github.com/dmfalke/trendline/internal/predicate"
)

// gameSortCols maps sortable game fields to their columns. Month and weekday
// sort by calendar position, not alphabetically.
var gameSortCols = map[string]predicate.Col{
	"id_string":          predicate.Plain("id_string"),
	"date":               predicate.Plain("date"),
	"month":              predicate.Ordinal("month", domain.MonthOrder),
	"day":                predicate.Plain("day"),
	"year":               predicate.Plain("year"),
	"season":             predicate.Plain("season"),
	"day_of_week":        predicate.Ordinal("day_of_week", domain.GameWeekdayOrder),
	"home_team":          predicate.Plain("home_team"),
	"away_team":          predicate.Plain("away_team"),
	"home_abbreviation":  predicate.Plain("home_abbreviation"),
	"away_abbreviation":  predicate.Plain("away_abbreviation"),
	"home_division":      predicate.Plain("home_division"),
	"away_division":      predicate.Plain("away_division"),
	"home_score":         predicate.Plain("home_score"),
	"away_score":         predicate.Plain("away_score"),
	"combined_score":     predicate.Plain("combined_score"),
	"winner":             predicate.Plain("winner"),
	"loser":              predicate.Plain("loser"),
	"spread":             predicate.Plain("spread"),
	"home_spread":        predicate.Plain("home_spread"),
	"home_spread_result": predicate.Plain("home_spread_result"),
	"away_spread":        predicate.Plain("away_spread"),
	"away_spread_result": predicate.Plain("away_spread_result"),
	"total":              predicate.Plain("total"),
}

var gameSortFields = sortedFields(gameSortCols)

// Games lowers a normalized game filter into a predicate tree and sort keys.
func Games(f *filter.GameFilter) (predicate.Fragment, []predicate.SortKey, error) {
	keys, err := compileSort(f.SortBy, gameSortCols, gameSortFields)
	if err != nil {
		return nil, nil, err
	}

	frags := []predicate.Fragment{
		inStrings(predicate.Plain("id_string"), f.GameID),
		inStrings(predicate.Plain("date"), f.Date),
		dateBound(predicate.OpGe, f.StartDate),
		dateBound(predicate.OpLe, f.EndDate),
		inStrings(predicate.Plain("month"), f.Month),
		monthRange(domain.MonthOrder, f.StartMonth, f.EndMonth),
		inInts(predicate.Plain("day"), f.Day),
		intRange(predicate.Plain("day"), f.StartDay, f.EndDay),
		inInts(predicate.Plain("year"), f.Year),
		intRange(predicate.Plain("year"), f.StartYear, f.EndYear),
		inStrings(predicate.Plain("season"), f.Season),
		seasonRange(f.StartSeason, f.EndSeason),
		inStrings(predicate.Plain("day_of_week"), f.DayOfWeek),

		matchup(predicate.Plain("home_team"), predicate.Plain("away_team"), f.HomeTeam, f.AwayTeam),
		matchup(predicate.Plain("home_abbreviation"), predicate.Plain("away_abbreviation"), f.HomeAbbreviation, f.AwayAbbreviation),

		// Division pairs are deliberately directional: "NFC EAST at home"
		// is a different question from "NFC EAST involved".
		inStrings(predicate.Plain("home_division"), f.HomeDivision),
		inStrings(predicate.Plain("away_division"), f.AwayDivision),

		eqBool(predicate.Plain("divisional"), f.Divisional),

		inInts(predicate.Plain("home_score"), f.HomeScore),
		intRange(predicate.Plain("home_score"), f.MinHomeScore, f.MaxHomeScore),
		inInts(predicate.Plain("away_score"), f.AwayScore),
		intRange(predicate.Plain("away_score"), f.MinAwayScore, f.MaxAwayScore),
		inInts(predicate.Plain("combined_score"), f.CombinedScore),
		intRange(predicate.Plain("combined_score"), f.MinCombinedScore, f.MaxCombinedScore),

		eqBool(predicate.Plain("tie"), f.Tie),
		inStrings(predicate.Plain("winner"), f.Winner),
		inStrings(predicate.Plain("loser"), f.Loser),

		inFloats(predicate.Plain("spread"), f.Spread),
		floatRange(predicate.Plain("spread"), f.MinSpread, f.MaxSpread),
		inFloats(predicate.Plain("home_spread"), f.HomeSpread),
		floatRange(predicate.Plain("home_spread"), f.MinHomeSpread, f.MaxHomeSpread),
		inInts(predicate.Plain("home_spread_result"), f.HomeSpreadResult),
		intRange(predicate.Plain("home_spread_result"), f.MinHomeSpreadResult, f.MaxHomeSpreadResult),
		inFloats(predicate.Plain("away_spread"), f.AwaySpread),
		floatRange(predicate.Plain("away_spread"), f.MinAwaySpread, f.MaxAwaySpread),
		inInts(predicate.Plain("away_spread_result"), f.AwaySpreadResult),
		intRange(predicate.Plain("away_spread_result"), f.MinAwaySpreadResult, f.MaxAwaySpreadResult),

		eqBool(predicate.Plain("spread_push"), f.SpreadPush),
		eqBool(predicate.Plain("pk"), f.PK),

		inFloats(predicate.Plain("total"), f.Total),
		floatRange(predicate.Plain("total"), f.MinTotal, f.MaxTotal),
		eqBool(predicate.Plain("total_push"), f.TotalPush),

		eqBool(predicate.Plain("home_favorite"), f.HomeFavorite),
		eqBool(predicate.Plain("away_favorite"), f.AwayFavorite),
		eqBool(predicate.Plain("home_underdog"), f.HomeUnderdog),
		eqBool(predicate.Plain("away_underdog"), f.AwayUnderdog),

		eqBool(predicate.Plain("home_win"), f.HomeWin),
		eqBool(predicate.Plain("away_win"), f.AwayWin),
		eqBool(predicate.Plain("favorite_win"), f.FavoriteWin),
		eqBool(predicate.Plain("underdog_win"), f.UnderdogWin),
		eqBool(predicate.Plain("home_favorite_win"), f.HomeFavoriteWin),
		eqBool(predicate.Plain("away_favorite_win"), f.AwayFavoriteWin),
		eqBool(predicate.Plain("home_underdog_win"), f.HomeUnderdogWin),
		eqBool(predicate.Plain("away_underdog_win"), f.AwayUnderdogWin),

		eqBool(predicate.Plain("home_cover"), f.HomeCover),
		eqBool(predicate.Plain("away_cover"), f.AwayCover),
		eqBool(predicate.Plain("favorite_cover"), f.FavoriteCover),
		eqBool(predicate.Plain("underdog_cover"), f.UnderdogCover),
		eqBool(predicate.Plain("home_favorite_cover"), f.HomeFavoriteCover),
		eqBool(predicate.Plain("away_favorite_cover"), f.AwayFavoriteCover),
		eqBool(predicate.Plain("home_underdog_cover"), f.HomeUnderdogCover),
		eqBool(predicate.Plain("away_underdog_cover"), f.AwayUnderdogCover),

		eqBool(predicate.Plain("over_hit"), f.OverHit),
		eqBool(predicate.Plain("under_hit"), f.UnderHit),
	}

	return predicate.Conj(frags...), keys, nil
}

func dateBound(op predicate.Op, v string) predicate.Fragment {
	if v == "" {
		return nil
	}
	return &predicate.Compare{Col: predicate.Plain("date"), Op: op, Value: v}
}

// monthRange compares calendar positions. The range does not wrap: November
// through February matches nothing, matching a BETWEEN whose low bound
// exceeds its high bound.
func monthRange(ord domain.Ordinal, start, end string) predicate.Fragment {
	col := predicate.Ordinal("month", ord)
	switch {
	case start != "" && end != "":
		lo, _ := ord.Rank(start)
		hi, _ := ord.Rank(end)
		return &predicate.Between{Col: col, Lo: lo, Hi: hi}
	case start != "":
		lo, _ := ord.Rank(start)
		return &predicate.Compare{Col: col, Op: predicate.OpGe, Value: lo}
	case end != "":
		hi, _ := ord.Rank(end)
		return &predicate.Compare{Col: col, Op: predicate.OpLe, Value: hi}
	}
	return nil
}

// seasonRange compares season labels by their first year.
func seasonRange(start, end string) predicate.Fragment {
	col := predicate.SeasonYear("season")
	var lo, hi *int
	if start != "" {
		y, _ := strconv.Atoi(start[:4])
		lo = &y
	}
	if end != "" {
		y, _ := strconv.Atoi(end[:4])
		hi = &y
	}
	return intRange(col, lo, hi)
}
