package filter

import (
	"strings"

	"github.com/dmfalke/trendline/internal/domain"
)

// Pagination bounds for the games endpoint.
const (
	GameLimitDefault = 100
	GameLimitMax     = 1000
)

// DefaultGameSort is the fixed two-key fallback applied when the caller
// supplies no sort.
var DefaultGameSort = SortList{
	{Field: "date", Order: SortAsc},
	{Field: "id_string", Order: SortAsc},
}

// GameFilter is the filter document for historical games. Absent fields mean
// "don't care" and contribute no predicate.
type GameFilter struct {
	GameID StringList `json:"game_id,omitempty"`

	Date      StringList `json:"date,omitempty"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`

	Month      StringList `json:"month,omitempty"`
	StartMonth string     `json:"start_month,omitempty"`
	EndMonth   string     `json:"end_month,omitempty"`

	Day      IntList `json:"day,omitempty"`
	StartDay *int    `json:"start_day,omitempty"`
	EndDay   *int    `json:"end_day,omitempty"`

	Year      IntList `json:"year,omitempty"`
	StartYear *int    `json:"start_year,omitempty"`
	EndYear   *int    `json:"end_year,omitempty"`

	Season      StringList `json:"season,omitempty"`
	StartSeason string     `json:"start_season,omitempty"`
	EndSeason   string     `json:"end_season,omitempty"`

	DayOfWeek StringList `json:"day_of_week,omitempty"`

	HomeTeam StringList `json:"home_team,omitempty"`
	AwayTeam StringList `json:"away_team,omitempty"`

	HomeAbbreviation StringList `json:"home_abbreviation,omitempty"`
	AwayAbbreviation StringList `json:"away_abbreviation,omitempty"`

	HomeDivision StringList `json:"home_division,omitempty"`
	AwayDivision StringList `json:"away_division,omitempty"`

	Divisional *bool `json:"divisional,omitempty"`

	HomeScore    IntList `json:"home_score,omitempty"`
	MinHomeScore *int    `json:"min_home_score,omitempty"`
	MaxHomeScore *int    `json:"max_home_score,omitempty"`

	AwayScore    IntList `json:"away_score,omitempty"`
	MinAwayScore *int    `json:"min_away_score,omitempty"`
	MaxAwayScore *int    `json:"max_away_score,omitempty"`

	CombinedScore    IntList `json:"combined_score,omitempty"`
	MinCombinedScore *int    `json:"min_combined_score,omitempty"`
	MaxCombinedScore *int    `json:"max_combined_score,omitempty"`

	Tie *bool `json:"tie,omitempty"`

	Winner StringList `json:"winner,omitempty"`
	Loser  StringList `json:"loser,omitempty"`

	Spread    FloatList `json:"spread,omitempty"`
	MinSpread *float64  `json:"min_spread,omitempty"`
	MaxSpread *float64  `json:"max_spread,omitempty"`

	HomeSpread    FloatList `json:"home_spread,omitempty"`
	MinHomeSpread *float64  `json:"min_home_spread,omitempty"`
	MaxHomeSpread *float64  `json:"max_home_spread,omitempty"`

	HomeSpreadResult    IntList `json:"home_spread_result,omitempty"`
	MinHomeSpreadResult *int    `json:"min_home_spread_result,omitempty"`
	MaxHomeSpreadResult *int    `json:"max_home_spread_result,omitempty"`

	AwaySpread    FloatList `json:"away_spread,omitempty"`
	MinAwaySpread *float64  `json:"min_away_spread,omitempty"`
	MaxAwaySpread *float64  `json:"max_away_spread,omitempty"`

	AwaySpreadResult    IntList `json:"away_spread_result,omitempty"`
	MinAwaySpreadResult *int    `json:"min_away_spread_result,omitempty"`
	MaxAwaySpreadResult *int    `json:"max_away_spread_result,omitempty"`

	SpreadPush *bool `json:"spread_push,omitempty"`
	PK         *bool `json:"pk,omitempty"`

	Total    FloatList `json:"total,omitempty"`
	MinTotal *float64  `json:"min_total,omitempty"`
	MaxTotal *float64  `json:"max_total,omitempty"`

	TotalPush *bool `json:"total_push,omitempty"`

	HomeFavorite *bool `json:"home_favorite,omitempty"`
	AwayFavorite *bool `json:"away_favorite,omitempty"`
	HomeUnderdog *bool `json:"home_underdog,omitempty"`
	AwayUnderdog *bool `json:"away_underdog,omitempty"`

	HomeWin         *bool `json:"home_win,omitempty"`
	AwayWin         *bool `json:"away_win,omitempty"`
	FavoriteWin     *bool `json:"favorite_win,omitempty"`
	UnderdogWin     *bool `json:"underdog_win,omitempty"`
	HomeFavoriteWin *bool `json:"home_favorite_win,omitempty"`
	AwayFavoriteWin *bool `json:"away_favorite_win,omitempty"`
	HomeUnderdogWin *bool `json:"home_underdog_win,omitempty"`
	AwayUnderdogWin *bool `json:"away_underdog_win,omitempty"`

	HomeCover         *bool `json:"home_cover,omitempty"`
	AwayCover         *bool `json:"away_cover,omitempty"`
	FavoriteCover     *bool `json:"favorite_cover,omitempty"`
	UnderdogCover     *bool `json:"underdog_cover,omitempty"`
	HomeFavoriteCover *bool `json:"home_favorite_cover,omitempty"`
	AwayFavoriteCover *bool `json:"away_favorite_cover,omitempty"`
	HomeUnderdogCover *bool `json:"home_underdog_cover,omitempty"`
	AwayUnderdogCover *bool `json:"away_underdog_cover,omitempty"`

	OverHit  *bool `json:"over_hit,omitempty"`
	UnderHit *bool `json:"under_hit,omitempty"`

	Limit  *int     `json:"limit,omitempty"`
	Offset *int     `json:"offset,omitempty"`
	SortBy SortList `json:"sort_by,omitempty"`
}

// Normalize validates every present field against its domain, canonicalizes
// casing, and applies pagination and sort defaults. After Normalize returns
// nil the document is immutable by convention and safe to compile.
func (f *GameFilter) Normalize() error {
	for i, id := range f.GameID {
		if !gameIDPattern.MatchString(id) {
			return invalid("game_id", "%q must follow the format: home abbreviation + away abbreviation + yyyymmdd", id)
		}
		f.GameID[i] = strings.ToUpper(id)
	}

	for _, d := range f.Date {
		if !datePattern.MatchString(d) {
			return invalid("date", "%q must be in the format yyyy-mm-dd", d)
		}
	}
	if f.StartDate != "" && !datePattern.MatchString(f.StartDate) {
		return invalid("start_date", "%q must be in the format yyyy-mm-dd", f.StartDate)
	}
	if f.EndDate != "" && !datePattern.MatchString(f.EndDate) {
		return invalid("end_date", "%q must be in the format yyyy-mm-dd", f.EndDate)
	}

	months := domain.MonthOrder.Labels()
	if err := normalizeEnumList("month", f.Month, capitalize, months); err != nil {
		return err
	}
	if f.StartMonth != "" {
		f.StartMonth = capitalize(f.StartMonth)
		if !domain.MonthOrder.Contains(f.StartMonth) {
			return notInDomain("start_month", f.StartMonth, months)
		}
	}
	if f.EndMonth != "" {
		f.EndMonth = capitalize(f.EndMonth)
		if !domain.MonthOrder.Contains(f.EndMonth) {
			return notInDomain("end_month", f.EndMonth, months)
		}
	}

	if err := checkIntList("day", f.Day, 1, 31); err != nil {
		return err
	}
	if err := checkIntBound("start_day", f.StartDay, 1, 31); err != nil {
		return err
	}
	if err := checkIntBound("end_day", f.EndDay, 1, 31); err != nil {
		return err
	}

	if err := checkIntList("year", f.Year, domain.MinYear, domain.MaxYear); err != nil {
		return err
	}
	if err := checkIntBound("start_year", f.StartYear, domain.MinYear, domain.MaxYear); err != nil {
		return err
	}
	if err := checkIntBound("end_year", f.EndYear, domain.MinYear, domain.MaxYear); err != nil {
		return err
	}

	for _, s := range f.Season {
		if err := checkSeason("season", s); err != nil {
			return err
		}
	}
	if f.StartSeason != "" {
		if err := checkSeason("start_season", f.StartSeason); err != nil {
			return err
		}
	}
	if f.EndSeason != "" {
		if err := checkSeason("end_season", f.EndSeason); err != nil {
			return err
		}
	}

	if err := normalizeEnumList("day_of_week", f.DayOfWeek, capitalize, domain.GameWeekdayOrder.Labels()); err != nil {
		return err
	}

	if err := normalizeTeamList("home_team", f.HomeTeam); err != nil {
		return err
	}
	if err := normalizeTeamList("away_team", f.AwayTeam); err != nil {
		return err
	}
	if err := normalizeTeamList("winner", f.Winner); err != nil {
		return err
	}
	if err := normalizeTeamList("loser", f.Loser); err != nil {
		return err
	}

	if err := normalizeEnumList("home_abbreviation", f.HomeAbbreviation, strings.ToUpper, domain.TeamAbbreviations); err != nil {
		return err
	}
	if err := normalizeEnumList("away_abbreviation", f.AwayAbbreviation, strings.ToUpper, domain.TeamAbbreviations); err != nil {
		return err
	}
	if err := normalizeEnumList("home_division", f.HomeDivision, strings.ToUpper, domain.Divisions); err != nil {
		return err
	}
	if err := normalizeEnumList("away_division", f.AwayDivision, strings.ToUpper, domain.Divisions); err != nil {
		return err
	}

	if err := checkIntList("home_score", f.HomeScore, 0, 100); err != nil {
		return err
	}
	if err := checkIntBound("min_home_score", f.MinHomeScore, 0, 100); err != nil {
		return err
	}
	if err := checkIntBound("max_home_score", f.MaxHomeScore, 0, 100); err != nil {
		return err
	}
	if err := checkIntList("away_score", f.AwayScore, 0, 100); err != nil {
		return err
	}
	if err := checkIntBound("min_away_score", f.MinAwayScore, 0, 100); err != nil {
		return err
	}
	if err := checkIntBound("max_away_score", f.MaxAwayScore, 0, 100); err != nil {
		return err
	}
	if err := checkIntList("combined_score", f.CombinedScore, 0, 200); err != nil {
		return err
	}
	if err := checkIntBound("min_combined_score", f.MinCombinedScore, 0, 200); err != nil {
		return err
	}
	if err := checkIntBound("max_combined_score", f.MaxCombinedScore, 0, 200); err != nil {
		return err
	}

	const spreadDesc = "between 0 and 27 and end with .0 or .5"
	if err := checkFloatList("spread", f.Spread, domain.ValidSpreadLine, spreadDesc); err != nil {
		return err
	}
	if err := checkFloatBound("min_spread", f.MinSpread, domain.ValidSpreadLine, spreadDesc); err != nil {
		return err
	}
	if err := checkFloatBound("max_spread", f.MaxSpread, domain.ValidSpreadLine, spreadDesc); err != nil {
		return err
	}

	const signedDesc = "between -27 and 27 and end with .0 or .5"
	if err := checkFloatList("home_spread", f.HomeSpread, domain.ValidSignedSpreadLine, signedDesc); err != nil {
		return err
	}
	if err := checkFloatBound("min_home_spread", f.MinHomeSpread, domain.ValidSignedSpreadLine, signedDesc); err != nil {
		return err
	}
	if err := checkFloatBound("max_home_spread", f.MaxHomeSpread, domain.ValidSignedSpreadLine, signedDesc); err != nil {
		return err
	}
	if err := checkFloatList("away_spread", f.AwaySpread, domain.ValidSignedSpreadLine, signedDesc); err != nil {
		return err
	}
	if err := checkFloatBound("min_away_spread", f.MinAwaySpread, domain.ValidSignedSpreadLine, signedDesc); err != nil {
		return err
	}
	if err := checkFloatBound("max_away_spread", f.MaxAwaySpread, domain.ValidSignedSpreadLine, signedDesc); err != nil {
		return err
	}

	if err := checkIntList("home_spread_result", f.HomeSpreadResult, -100, 100); err != nil {
		return err
	}
	if err := checkIntBound("min_home_spread_result", f.MinHomeSpreadResult, -100, 100); err != nil {
		return err
	}
	if err := checkIntBound("max_home_spread_result", f.MaxHomeSpreadResult, -100, 100); err != nil {
		return err
	}
	if err := checkIntList("away_spread_result", f.AwaySpreadResult, -100, 100); err != nil {
		return err
	}
	if err := checkIntBound("min_away_spread_result", f.MinAwaySpreadResult, -100, 100); err != nil {
		return err
	}
	if err := checkIntBound("max_away_spread_result", f.MaxAwaySpreadResult, -100, 100); err != nil {
		return err
	}

	const totalDesc = "between 0 and 100 and end with .0 or .5"
	if err := checkFloatList("total", f.Total, domain.ValidTotalLine, totalDesc); err != nil {
		return err
	}
	if err := checkFloatBound("min_total", f.MinTotal, domain.ValidTotalLine, totalDesc); err != nil {
		return err
	}
	if err := checkFloatBound("max_total", f.MaxTotal, domain.ValidTotalLine, totalDesc); err != nil {
		return err
	}

	if f.Limit == nil {
		f.Limit = intPtr(GameLimitDefault)
	} else if *f.Limit < 1 || *f.Limit > GameLimitMax {
		return invalid("limit", "must be an integer between 1 and %d", GameLimitMax)
	}
	if f.Offset == nil {
		f.Offset = intPtr(0)
	} else if *f.Offset < 0 {
		return invalid("offset", "must be an integer greater than or equal to 0")
	}
	if len(f.SortBy) == 0 {
		f.SortBy = append(SortList(nil), DefaultGameSort...)
	}

	return nil
}

func normalizeTeamList(field string, vals StringList) error {
	for i, v := range vals {
		canonical, ok := domain.CanonicalTeam(v)
		if !ok {
			return notInDomain(field, v, domain.TeamNames)
		}
		vals[i] = canonical
	}
	return nil
}

func intPtr(n int) *int { return &n }

// Canonical renders the normalized document as a plain map for
// fingerprinting. Only present fields appear; value-list order is not
// semantically significant and is sorted away.
func (f *GameFilter) Canonical() map[string]any {
	doc := map[string]any{}
	putStrings(doc, "game_id", f.GameID)
	putStrings(doc, "date", f.Date)
	putString(doc, "start_date", f.StartDate)
	putString(doc, "end_date", f.EndDate)
	putStrings(doc, "month", f.Month)
	putString(doc, "start_month", f.StartMonth)
	putString(doc, "end_month", f.EndMonth)
	putInts(doc, "day", f.Day)
	putInt(doc, "start_day", f.StartDay)
	putInt(doc, "end_day", f.EndDay)
	putInts(doc, "year", f.Year)
	putInt(doc, "start_year", f.StartYear)
	putInt(doc, "end_year", f.EndYear)
	putStrings(doc, "season", f.Season)
	putString(doc, "start_season", f.StartSeason)
	putString(doc, "end_season", f.EndSeason)
	putStrings(doc, "day_of_week", f.DayOfWeek)
	putStrings(doc, "home_team", f.HomeTeam)
	putStrings(doc, "away_team", f.AwayTeam)
	putStrings(doc, "home_abbreviation", f.HomeAbbreviation)
	putStrings(doc, "away_abbreviation", f.AwayAbbreviation)
	putStrings(doc, "home_division", f.HomeDivision)
	putStrings(doc, "away_division", f.AwayDivision)
	putBool(doc, "divisional", f.Divisional)
	putInts(doc, "home_score", f.HomeScore)
	putInt(doc, "min_home_score", f.MinHomeScore)
	putInt(doc, "max_home_score", f.MaxHomeScore)
	putInts(doc, "away_score", f.AwayScore)
	putInt(doc, "min_away_score", f.MinAwayScore)
	putInt(doc, "max_away_score", f.MaxAwayScore)
	putInts(doc, "combined_score", f.CombinedScore)
	putInt(doc, "min_combined_score", f.MinCombinedScore)
	putInt(doc, "max_combined_score", f.MaxCombinedScore)
	putBool(doc, "tie", f.Tie)
	putStrings(doc, "winner", f.Winner)
	putStrings(doc, "loser", f.Loser)
	putFloats(doc, "spread", f.Spread)
	putFloat(doc, "min_spread", f.MinSpread)
	putFloat(doc, "max_spread", f.MaxSpread)
	putFloats(doc, "home_spread", f.HomeSpread)
	putFloat(doc, "min_home_spread", f.MinHomeSpread)
	putFloat(doc, "max_home_spread", f.MaxHomeSpread)
	putInts(doc, "home_spread_result", f.HomeSpreadResult)
	putInt(doc, "min_home_spread_result", f.MinHomeSpreadResult)
	putInt(doc, "max_home_spread_result", f.MaxHomeSpreadResult)
	putFloats(doc, "away_spread", f.AwaySpread)
	putFloat(doc, "min_away_spread", f.MinAwaySpread)
	putFloat(doc, "max_away_spread", f.MaxAwaySpread)
	putInts(doc, "away_spread_result", f.AwaySpreadResult)
	putInt(doc, "min_away_spread_result", f.MinAwaySpreadResult)
	putInt(doc, "max_away_spread_result", f.MaxAwaySpreadResult)
	putBool(doc, "spread_push", f.SpreadPush)
	putBool(doc, "pk", f.PK)
	putFloats(doc, "total", f.Total)
	putFloat(doc, "min_total", f.MinTotal)
	putFloat(doc, "max_total", f.MaxTotal)
	putBool(doc, "total_push", f.TotalPush)
	putBool(doc, "home_favorite", f.HomeFavorite)
	putBool(doc, "away_favorite", f.AwayFavorite)
	putBool(doc, "home_underdog", f.HomeUnderdog)
	putBool(doc, "away_underdog", f.AwayUnderdog)
	putBool(doc, "home_win", f.HomeWin)
	putBool(doc, "away_win", f.AwayWin)
	putBool(doc, "favorite_win", f.FavoriteWin)
	putBool(doc, "underdog_win", f.UnderdogWin)
	putBool(doc, "home_favorite_win", f.HomeFavoriteWin)
	putBool(doc, "away_favorite_win", f.AwayFavoriteWin)
	putBool(doc, "home_underdog_win", f.HomeUnderdogWin)
	putBool(doc, "away_underdog_win", f.AwayUnderdogWin)
	putBool(doc, "home_cover", f.HomeCover)
	putBool(doc, "away_cover", f.AwayCover)
	putBool(doc, "favorite_cover", f.FavoriteCover)
	putBool(doc, "underdog_cover", f.UnderdogCover)
	putBool(doc, "home_favorite_cover", f.HomeFavoriteCover)
	putBool(doc, "away_favorite_cover", f.AwayFavoriteCover)
	putBool(doc, "home_underdog_cover", f.HomeUnderdogCover)
	putBool(doc, "away_underdog_cover", f.AwayUnderdogCover)
	putBool(doc, "over_hit", f.OverHit)
	putBool(doc, "under_hit", f.UnderHit)
	putInt(doc, "limit", f.Limit)
	putInt(doc, "offset", f.Offset)
	doc["sort_by"] = canonicalSort(f.SortBy)
	return doc
}

func putString(doc map[string]any, key, v string) {
	if v != "" {
		doc[key] = v
	}
}

func putStrings(doc map[string]any, key string, v StringList) {
	if len(v) > 0 {
		doc[key] = canonicalStrings(v)
	}
}

func putInt(doc map[string]any, key string, v *int) {
	if v != nil {
		doc[key] = *v
	}
}

func putInts(doc map[string]any, key string, v IntList) {
	if len(v) > 0 {
		doc[key] = canonicalInts(v)
	}
}

func putFloat(doc map[string]any, key string, v *float64) {
	if v != nil {
		doc[key] = *v
	}
}

func putFloats(doc map[string]any, key string, v FloatList) {
	if len(v) > 0 {
		doc[key] = canonicalFloats(v)
	}
}

func putBool(doc map[string]any, key string, v *bool) {
	if v != nil {
		doc[key] = *v
	}
}
