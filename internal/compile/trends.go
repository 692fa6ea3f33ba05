package compile

import (
	"fmt"

	"github.com/dmfalke/trendline/internal/domain"
	"github.com/dmfalke/trendline/internal/filter"
	"github.com/dmfalke/trendline/internal/predicate"
)

var trendSortCols = map[string]predicate.Col{
	"id_string":      predicate.Plain("id_string"),
	"category":       predicate.Plain("category"),
	"month":          predicate.Ordinal("month", domain.MonthOrder),
	"day_of_week":    predicate.Ordinal("day_of_week", domain.TrendWeekdayOrder),
	"divisional":     predicate.Plain("divisional"),
	"spread":         predicate.Plain("spread"),
	"total":          predicate.Plain("total"),
	"seasons":        predicate.Plain("seasons"),
	"wins":           predicate.Plain("wins"),
	"losses":         predicate.Plain("losses"),
	"pushes":         predicate.Plain("pushes"),
	"total_games":    predicate.Plain("total_games"),
	"win_percentage": predicate.Plain("win_percentage"),
}

var trendSortFields = sortedFields(trendSortCols)

// Trends lowers a normalized trend filter into a predicate tree and sort
// keys.
func Trends(f *filter.TrendFilter) (predicate.Fragment, []predicate.SortKey, error) {
	keys, err := compileSort(f.SortBy, trendSortCols, trendSortFields)
	if err != nil {
		return nil, nil, err
	}

	frags := []predicate.Fragment{
		inStrings(predicate.Plain("id_string"), f.TrendID),
		inStrings(predicate.Plain("category"), f.Category),
		trendMonth(f),
		sentinelIn(predicate.Plain("day_of_week"), f.DayOfWeek),
		trendDivisional(f.Divisional),
		trendSpread(f.Spread),
		trendTotal(f.Total),
		trendSeasons(f.Seasons),

		inInts(predicate.Plain("wins"), f.Wins),
		intRange(predicate.Plain("wins"), f.MinWins, f.MaxWins),
		inInts(predicate.Plain("losses"), f.Losses),
		intRange(predicate.Plain("losses"), f.MinLosses, f.MaxLosses),
		inInts(predicate.Plain("pushes"), f.Pushes),
		intRange(predicate.Plain("pushes"), f.MinPushes, f.MaxPushes),
		inInts(predicate.Plain("total_games"), f.TotalGames),
		intRange(predicate.Plain("total_games"), f.MinTotalGames, f.MaxTotalGames),
		inFloats(predicate.Plain("win_percentage"), f.WinPercentage),
		floatRange(predicate.Plain("win_percentage"), f.MinWinPercentage, f.MaxWinPercentage),

		gamesApplicable(f.GamesApplicable),
	}

	return predicate.Conj(frags...), keys, nil
}

// splitSentinel separates the "None" sentinel from real labels.
func splitSentinel(vals filter.StringList) (labels []string, null bool) {
	for _, v := range vals {
		if v == filter.NullSentinel {
			null = true
			continue
		}
		labels = append(labels, v)
	}
	return labels, null
}

// sentinelIn builds membership over a nullable label column. The sentinel
// selects NULL rows; both halves combine disjunctively. A list that reduces
// to nothing after the split contributes no constraint.
func sentinelIn(col predicate.Col, vals filter.StringList) predicate.Fragment {
	labels, null := splitSentinel(vals)
	var frags []predicate.Fragment
	if f := inStrings(col, labels); f != nil {
		frags = append(frags, f)
	}
	if null {
		frags = append(frags, &predicate.IsNull{Col: col})
	}
	return predicate.Disj(frags...)
}

// trendMonth combines the discrete month list with the calendar range. A
// trend either names one of the listed months (or no month, via the
// sentinel) or falls inside the range; a NULL month is never inside a range.
func trendMonth(f *filter.TrendFilter) predicate.Fragment {
	list := sentinelIn(predicate.Plain("month"), f.Month)

	var rng predicate.Fragment
	if f.StartMonth != "" || f.EndMonth != "" {
		rng = predicate.Conj(
			monthRange(domain.MonthOrder, f.StartMonth, f.EndMonth),
			&predicate.IsNull{Col: predicate.Plain("month"), Negate: true},
		)
	}

	return predicate.Disj(list, rng)
}

func trendDivisional(b filter.NullableBool) predicate.Fragment {
	if !b.Set {
		return nil
	}
	col := predicate.Plain("divisional")
	if b.Null {
		return &predicate.IsNull{Col: col}
	}
	return &predicate.Compare{Col: col, Op: predicate.OpEq, Value: b.Value}
}

// trendSpread expands the exact/or_less/or_more branches into bucket label
// membership. Integer bounds address the "N or less"/"N or more" buckets by
// name, not by numeric comparison.
func trendSpread(s *filter.TrendSpread) predicate.Fragment {
	if s == nil {
		return nil
	}
	labels, null := splitSentinel(s.Exact)
	for _, n := range s.OrLess {
		labels = append(labels, fmt.Sprintf("%d or less", n))
	}
	for _, n := range s.OrMore {
		labels = append(labels, fmt.Sprintf("%d or more", n))
	}
	return bucketMembership(predicate.Plain("spread"), labels, null)
}

func trendTotal(t *filter.TrendTotal) predicate.Fragment {
	if t == nil {
		return nil
	}
	labels, null := splitSentinel(t.Exact)
	for _, n := range t.OrLess {
		labels = append(labels, fmt.Sprintf("%d or less", n))
	}
	for _, n := range t.OrMore {
		labels = append(labels, fmt.Sprintf("%d or more", n))
	}
	return bucketMembership(predicate.Plain("total"), labels, null)
}

func bucketMembership(col predicate.Col, labels []string, null bool) predicate.Fragment {
	var frags []predicate.Fragment
	if f := inStrings(col, labels); f != nil {
		frags = append(frags, f)
	}
	if null {
		frags = append(frags, &predicate.IsNull{Col: col})
	}
	return predicate.Disj(frags...)
}

// trendSeasons expands exact labels and ladder-slicing shorthands into
// membership over the seasons buckets. Branches on the same field combine
// disjunctively: "since 2015 or later" plus an exact label is the union.
func trendSeasons(s *filter.SeasonFilter) predicate.Fragment {
	if s == nil {
		return nil
	}
	col := predicate.Plain("seasons")
	ladder := domain.SeasonLadder()

	var frags []predicate.Fragment
	if f := inStrings(col, s.Exact); f != nil {
		frags = append(frags, f)
	}
	if s.SinceOrLater != "" {
		idx := domain.SeasonLadderIndex(s.SinceOrLater)
		frags = append(frags, inStrings(col, ladder[idx:]))
	}
	if s.SinceOrEarlier != "" {
		idx := domain.SeasonLadderIndex(s.SinceOrEarlier)
		frags = append(frags, inStrings(col, ladder[:idx+1]))
	}
	return predicate.Disj(frags...)
}

// gamesApplicable matches trends whose applicable-game list contains every
// requested game id. The column stores comma-joined ids.
func gamesApplicable(ids filter.StringList) predicate.Fragment {
	frags := make([]predicate.Fragment, 0, len(ids))
	for _, id := range ids {
		frags = append(frags, &predicate.Contains{Col: predicate.Plain("games_applicable"), Needle: id})
	}
	return predicate.Conj(frags...)
}
