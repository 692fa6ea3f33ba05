package filter

import (
	"encoding/json"
	"strings"

	"github.com/dmfalke/trendline/internal/domain"
)

// Pagination bounds for the trends endpoint. Trend tables are large and the
// primary consumer is a batch loader, hence the generous ceiling.
const (
	TrendLimitDefault = 5000
	TrendLimitMax     = 5000000
)

// DefaultTrendSort surfaces the strongest trends first.
var DefaultTrendSort = SortList{
	{Field: "win_percentage", Order: SortDesc},
	{Field: "total_games", Order: SortDesc},
}

// TrendSpread narrows the spread dimension of a trend. It decodes from a bare
// string, a list of strings, or an object with exact/or_less/or_more branches.
// Branches combine disjunctively.
type TrendSpread struct {
	Exact  StringList `json:"exact,omitempty"`
	OrLess IntList    `json:"or_less,omitempty"`
	OrMore IntList    `json:"or_more,omitempty"`
}

func (s *TrendSpread) UnmarshalJSON(data []byte) error {
	return unmarshalBranch(data, (*spreadAlias)(s), &s.Exact)
}

// spreadAlias drops the UnmarshalJSON method so the object form decodes
// without recursing.
type spreadAlias TrendSpread

// TrendTotal narrows the total dimension of a trend. Same shapes as
// TrendSpread.
type TrendTotal struct {
	Exact  StringList `json:"exact,omitempty"`
	OrLess IntList    `json:"or_less,omitempty"`
	OrMore IntList    `json:"or_more,omitempty"`
}

func (t *TrendTotal) UnmarshalJSON(data []byte) error {
	return unmarshalBranch(data, (*totalAlias)(t), &t.Exact)
}

type totalAlias TrendTotal

// unmarshalBranch decodes scalar-or-list JSON into exact, and object JSON
// into the full branch struct.
func unmarshalBranch(data []byte, obj any, exact *StringList) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return json.Unmarshal(data, obj)
	}
	return exact.UnmarshalJSON(data)
}

func (s *TrendSpread) empty() bool {
	return s == nil || (len(s.Exact) == 0 && len(s.OrLess) == 0 && len(s.OrMore) == 0)
}

func (t *TrendTotal) empty() bool {
	return t == nil || (len(t.Exact) == 0 && len(t.OrLess) == 0 && len(t.OrMore) == 0)
}

// SeasonFilter narrows the seasons dimension. It decodes from a bare label, a
// list of labels, or an object with exact plus ladder-slicing shorthands.
type SeasonFilter struct {
	Exact          StringList `json:"exact,omitempty"`
	SinceOrLater   string     `json:"since_or_later,omitempty"`
	SinceOrEarlier string     `json:"since_or_earlier,omitempty"`
}

func (s *SeasonFilter) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		type alias SeasonFilter
		return json.Unmarshal(data, (*alias)(s))
	}
	return s.Exact.UnmarshalJSON(data)
}

func (s *SeasonFilter) empty() bool {
	return s == nil || (len(s.Exact) == 0 && s.SinceOrLater == "" && s.SinceOrEarlier == "")
}

// TrendFilter is the filter document for aggregated trends. The month,
// day_of_week, divisional, spread and total dimensions accept the literal
// string "None" to match trends that do not condition on that dimension.
type TrendFilter struct {
	TrendID  StringList `json:"trend_id,omitempty"`
	Category StringList `json:"category,omitempty"`

	Month      StringList `json:"month,omitempty"`
	StartMonth string     `json:"start_month,omitempty"`
	EndMonth   string     `json:"end_month,omitempty"`

	DayOfWeek  StringList   `json:"day_of_week,omitempty"`
	Divisional NullableBool `json:"divisional,omitempty"`

	Spread  *TrendSpread  `json:"spread,omitempty"`
	Total   *TrendTotal   `json:"total,omitempty"`
	Seasons *SeasonFilter `json:"seasons,omitempty"`

	Wins    IntList `json:"wins,omitempty"`
	MinWins *int    `json:"min_wins,omitempty"`
	MaxWins *int    `json:"max_wins,omitempty"`

	Losses    IntList `json:"losses,omitempty"`
	MinLosses *int    `json:"min_losses,omitempty"`
	MaxLosses *int    `json:"max_losses,omitempty"`

	Pushes    IntList `json:"pushes,omitempty"`
	MinPushes *int    `json:"min_pushes,omitempty"`
	MaxPushes *int    `json:"max_pushes,omitempty"`

	TotalGames    IntList `json:"total_games,omitempty"`
	MinTotalGames *int    `json:"min_total_games,omitempty"`
	MaxTotalGames *int    `json:"max_total_games,omitempty"`

	WinPercentage    FloatList `json:"win_percentage,omitempty"`
	MinWinPercentage *float64  `json:"min_win_percentage,omitempty"`
	MaxWinPercentage *float64  `json:"max_win_percentage,omitempty"`

	GamesApplicable StringList `json:"games_applicable,omitempty"`

	Limit  *int     `json:"limit,omitempty"`
	Offset *int     `json:"offset,omitempty"`
	SortBy SortList `json:"sort_by,omitempty"`
}

// Normalize validates every present field, canonicalizes casing, and applies
// pagination and sort defaults.
func (f *TrendFilter) Normalize() error {
	// A trend id is the seven filter dimensions joined by commas, e.g.
	// "home ats,October,Thursday,False,8 or less,40 or less,since 2008-2009".
	for _, id := range f.TrendID {
		if len(strings.Split(id, ",")) != trendIDSegments {
			return invalid("trend_id", "%q must have exactly %d comma-separated values", id, trendIDSegments)
		}
	}

	if err := normalizeEnumList("category", f.Category, strings.ToLower, domain.TrendCategories); err != nil {
		return err
	}

	months := domain.MonthOrder.Labels()
	for i, m := range f.Month {
		if isNullSentinel(m) {
			f.Month[i] = NullSentinel
			continue
		}
		f.Month[i] = capitalize(m)
		if !domain.MonthOrder.Contains(f.Month[i]) {
			return notInDomain("month", m, append(append([]string(nil), months...), NullSentinel))
		}
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

	weekdays := domain.TrendWeekdayOrder.Labels()
	for i, d := range f.DayOfWeek {
		if isNullSentinel(d) {
			f.DayOfWeek[i] = NullSentinel
			continue
		}
		f.DayOfWeek[i] = capitalize(d)
		if !domain.TrendWeekdayOrder.Contains(f.DayOfWeek[i]) {
			return notInDomain("day_of_week", d, append(append([]string(nil), weekdays...), NullSentinel))
		}
	}

	if !f.Spread.empty() {
		for i, label := range f.Spread.Exact {
			if isNullSentinel(label) {
				f.Spread.Exact[i] = NullSentinel
				continue
			}
			if !domain.ValidTrendSpreadLabel(label) {
				return invalid("spread", "%q is not a recognized spread bucket", label)
			}
		}
		if err := checkIntList("spread.or_less", f.Spread.OrLess, domain.TrendSpreadBoundMin, domain.TrendSpreadBoundMax); err != nil {
			return err
		}
		if err := checkIntList("spread.or_more", f.Spread.OrMore, domain.TrendSpreadBoundMin, domain.TrendSpreadBoundMax); err != nil {
			return err
		}
	}

	if !f.Total.empty() {
		for i, label := range f.Total.Exact {
			if isNullSentinel(label) {
				f.Total.Exact[i] = NullSentinel
				continue
			}
			if !domain.ValidTrendTotalLabel(label) {
				return invalid("total", "%q is not a recognized total bucket", label)
			}
		}
		for _, n := range f.Total.OrLess {
			if !domain.ValidTrendTotalBound(n) {
				return invalid("total.or_less", "%d must be a multiple of 5 between 30 and 60", n)
			}
		}
		for _, n := range f.Total.OrMore {
			if !domain.ValidTrendTotalBound(n) {
				return invalid("total.or_more", "%d must be a multiple of 5 between 30 and 60", n)
			}
		}
	}

	if !f.Seasons.empty() {
		for _, label := range f.Seasons.Exact {
			if domain.SeasonLadderIndex(label) < 0 {
				return invalid("seasons", "%q is not a recognized seasons bucket", label)
			}
		}
		if f.Seasons.SinceOrLater != "" && domain.SeasonLadderIndex(f.Seasons.SinceOrLater) < 0 {
			return invalid("seasons.since_or_later", "%q is not a recognized seasons bucket", f.Seasons.SinceOrLater)
		}
		if f.Seasons.SinceOrEarlier != "" && domain.SeasonLadderIndex(f.Seasons.SinceOrEarlier) < 0 {
			return invalid("seasons.since_or_earlier", "%q is not a recognized seasons bucket", f.Seasons.SinceOrEarlier)
		}
	}

	if err := checkCountGroup("wins", f.Wins, f.MinWins, f.MaxWins, maxTrendRecordCount); err != nil {
		return err
	}
	if err := checkCountGroup("losses", f.Losses, f.MinLosses, f.MaxLosses, maxTrendRecordCount); err != nil {
		return err
	}
	if err := checkCountGroup("pushes", f.Pushes, f.MinPushes, f.MaxPushes, maxTrendRecordCount); err != nil {
		return err
	}
	if err := checkCountGroup("total_games", f.TotalGames, f.MinTotalGames, f.MaxTotalGames, maxTrendTotalGames); err != nil {
		return err
	}

	pct := func(v float64) bool { return v >= 0 && v <= 100 }
	if err := checkFloatList("win_percentage", f.WinPercentage, pct, "between 0 and 100"); err != nil {
		return err
	}
	if err := checkFloatBound("min_win_percentage", f.MinWinPercentage, pct, "between 0 and 100"); err != nil {
		return err
	}
	if err := checkFloatBound("max_win_percentage", f.MaxWinPercentage, pct, "between 0 and 100"); err != nil {
		return err
	}

	for i, id := range f.GamesApplicable {
		if !gameIDPattern.MatchString(id) {
			return invalid("games_applicable", "%q must follow the format: home abbreviation + away abbreviation + yyyymmdd", id)
		}
		f.GamesApplicable[i] = strings.ToUpper(id)
	}

	if f.Limit == nil {
		f.Limit = intPtr(TrendLimitDefault)
	} else if *f.Limit < 1 || *f.Limit > TrendLimitMax {
		return invalid("limit", "must be an integer between 1 and %d", TrendLimitMax)
	}
	if f.Offset == nil {
		f.Offset = intPtr(0)
	} else if *f.Offset < 0 {
		return invalid("offset", "must be an integer greater than or equal to 0")
	}
	if len(f.SortBy) == 0 {
		f.SortBy = append(SortList(nil), DefaultTrendSort...)
	}

	return nil
}

// Record-count bounds. Win/loss/push counts top out well under 5000 per
// trend; total_games aggregates across categories and runs higher.
const (
	maxTrendRecordCount = 5000
	maxTrendTotalGames  = 10000
	trendIDSegments     = 7
)

func checkCountGroup(field string, vals IntList, min, max *int, hi int) error {
	if err := checkIntList(field, vals, 1, hi); err != nil {
		return err
	}
	if err := checkIntBound("min_"+field, min, 1, hi); err != nil {
		return err
	}
	return checkIntBound("max_"+field, max, 1, hi)
}

func isNullSentinel(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), NullSentinel)
}

// Canonical renders the normalized document as a plain map for
// fingerprinting.
func (f *TrendFilter) Canonical() map[string]any {
	doc := map[string]any{}
	putStrings(doc, "trend_id", f.TrendID)
	putStrings(doc, "category", f.Category)
	putStrings(doc, "month", f.Month)
	putString(doc, "start_month", f.StartMonth)
	putString(doc, "end_month", f.EndMonth)
	putStrings(doc, "day_of_week", f.DayOfWeek)
	if f.Divisional.Set {
		if f.Divisional.Null {
			doc["divisional"] = NullSentinel
		} else {
			doc["divisional"] = f.Divisional.Value
		}
	}
	if !f.Spread.empty() {
		doc["spread"] = canonicalBranch(f.Spread.Exact, f.Spread.OrLess, f.Spread.OrMore)
	}
	if !f.Total.empty() {
		doc["total"] = canonicalBranch(f.Total.Exact, f.Total.OrLess, f.Total.OrMore)
	}
	if !f.Seasons.empty() {
		sub := map[string]any{}
		putStrings(sub, "exact", f.Seasons.Exact)
		putString(sub, "since_or_later", f.Seasons.SinceOrLater)
		putString(sub, "since_or_earlier", f.Seasons.SinceOrEarlier)
		doc["seasons"] = sub
	}
	putInts(doc, "wins", f.Wins)
	putInt(doc, "min_wins", f.MinWins)
	putInt(doc, "max_wins", f.MaxWins)
	putInts(doc, "losses", f.Losses)
	putInt(doc, "min_losses", f.MinLosses)
	putInt(doc, "max_losses", f.MaxLosses)
	putInts(doc, "pushes", f.Pushes)
	putInt(doc, "min_pushes", f.MinPushes)
	putInt(doc, "max_pushes", f.MaxPushes)
	putInts(doc, "total_games", f.TotalGames)
	putInt(doc, "min_total_games", f.MinTotalGames)
	putInt(doc, "max_total_games", f.MaxTotalGames)
	putFloats(doc, "win_percentage", f.WinPercentage)
	putFloat(doc, "min_win_percentage", f.MinWinPercentage)
	putFloat(doc, "max_win_percentage", f.MaxWinPercentage)
	putStrings(doc, "games_applicable", f.GamesApplicable)
	putInt(doc, "limit", f.Limit)
	putInt(doc, "offset", f.Offset)
	doc["sort_by"] = canonicalSort(f.SortBy)
	return doc
}

func canonicalBranch(exact StringList, orLess, orMore IntList) map[string]any {
	sub := map[string]any{}
	putStrings(sub, "exact", exact)
	putInts(sub, "or_less", orLess)
	putInts(sub, "or_more", orMore)
	return sub
}
