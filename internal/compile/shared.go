package compile

import (
	"sort"
	"strconv"

	"github.com/dmfalke/trendline/internal/filter"
	"github.com/dmfalke/trendline/internal/predicate"
)

// inStrings builds col IN (vals), or nil when vals is empty. Values are
// sorted so structurally equal filters compile to identical trees.
func inStrings(col predicate.Col, vals []string) predicate.Fragment {
	if len(vals) == 0 {
		return nil
	}
	sorted := append([]string(nil), vals...)
	sort.Strings(sorted)
	out := make([]any, len(sorted))
	for i, v := range sorted {
		out[i] = v
	}
	return &predicate.In{Col: col, Values: out}
}

func inInts(col predicate.Col, vals []int) predicate.Fragment {
	if len(vals) == 0 {
		return nil
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	out := make([]any, len(sorted))
	for i, v := range sorted {
		out[i] = v
	}
	return &predicate.In{Col: col, Values: out}
}

func inFloats(col predicate.Col, vals []float64) predicate.Fragment {
	if len(vals) == 0 {
		return nil
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	out := make([]any, len(sorted))
	for i, v := range sorted {
		out[i] = v
	}
	return &predicate.In{Col: col, Values: out}
}

// intRange builds the bound fragments for a min/max pointer pair: BETWEEN
// when both are present, a single-sided comparison otherwise.
func intRange(col predicate.Col, min, max *int) predicate.Fragment {
	switch {
	case min != nil && max != nil:
		return &predicate.Between{Col: col, Lo: *min, Hi: *max}
	case min != nil:
		return &predicate.Compare{Col: col, Op: predicate.OpGe, Value: *min}
	case max != nil:
		return &predicate.Compare{Col: col, Op: predicate.OpLe, Value: *max}
	}
	return nil
}

func floatRange(col predicate.Col, min, max *float64) predicate.Fragment {
	switch {
	case min != nil && max != nil:
		return &predicate.Between{Col: col, Lo: *min, Hi: *max}
	case min != nil:
		return &predicate.Compare{Col: col, Op: predicate.OpGe, Value: *min}
	case max != nil:
		return &predicate.Compare{Col: col, Op: predicate.OpLe, Value: *max}
	}
	return nil
}

func eqBool(col predicate.Col, v *bool) predicate.Fragment {
	if v == nil {
		return nil
	}
	return &predicate.Compare{Col: col, Op: predicate.OpEq, Value: *v}
}

// matchup resolves paired home/away value lists into the predicate a caller
// intuitively means:
//
//   - the same single value on both sides: the caller wants every game that
//     team plays, so either column may match it;
//   - one distinct value per side: the caller pinned an exact directional
//     matchup, so both equalities must hold;
//   - anything else (multi-valued, including identical multi-valued sets):
//     match the pairing in either orientation — both columns must stay
//     inside the given sets.
//
// One-sided input degenerates to plain membership.
func matchup(homeCol, awayCol predicate.Col, home, away []string) predicate.Fragment {
	switch {
	case len(home) == 0 && len(away) == 0:
		return nil
	case len(away) == 0:
		return inStrings(homeCol, home)
	case len(home) == 0:
		return inStrings(awayCol, away)
	}

	if uniqueCount(home) == 1 && uniqueCount(away) == 1 && sameSet(home, away) {
		return predicate.Disj(inStrings(homeCol, home), inStrings(awayCol, away))
	}

	if len(home) == 1 && len(away) == 1 {
		return predicate.Conj(
			&predicate.Compare{Col: homeCol, Op: predicate.OpEq, Value: home[0]},
			&predicate.Compare{Col: awayCol, Op: predicate.OpEq, Value: away[0]},
		)
	}

	forward := predicate.Conj(inStrings(homeCol, home), inStrings(awayCol, away))
	if sameSet(home, away) {
		// Swapping identical sets yields the same branch; one copy suffices.
		return forward
	}
	swapped := predicate.Conj(inStrings(homeCol, away), inStrings(awayCol, home))
	return predicate.Disj(forward, swapped)
}

func sameSet(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	if len(seen) != uniqueCount(b) {
		return false
	}
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			return false
		}
	}
	return true
}

func uniqueCount(vals []string) int {
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// compileSort resolves a sort list against the sortable column table for a
// record kind. Unknown fields are the one validation concern owned by this
// layer.
func compileSort(sorts filter.SortList, cols map[string]predicate.Col, allowed []string) ([]predicate.SortKey, error) {
	keys := make([]predicate.SortKey, 0, len(sorts))
	for _, s := range sorts {
		col, ok := cols[s.Field]
		if !ok {
			return nil, &filter.ValidationError{
				Field:   "sort_by",
				Message: "unknown sort field " + strconv.Quote(s.Field),
				Allowed: allowed,
			}
		}
		keys = append(keys, predicate.SortKey{Col: col, Desc: s.Order == filter.SortDesc})
	}
	return keys, nil
}

// sortedFields returns the map keys in lexical order, for error messages.
func sortedFields(cols map[string]predicate.Col) []string {
	out := make([]string, 0, len(cols))
	for k := range cols {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
