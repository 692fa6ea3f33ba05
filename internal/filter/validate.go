package filter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dmfalke/trendline/internal/domain"
)

var (
	gameIDPattern = regexp.MustCompile(`^[A-Za-z]{2,3}[A-Za-z]{2,3}\d{8}$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	seasonPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)
)

func checkIntList(field string, vals IntList, lo, hi int) error {
	for _, v := range vals {
		if v < lo || v > hi {
			return invalid(field, "value %d must be between %d and %d", v, lo, hi)
		}
	}
	return nil
}

func checkIntBound(field string, v *int, lo, hi int) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return invalid(field, "value %d must be between %d and %d", *v, lo, hi)
	}
	return nil
}

func checkFloatBound(field string, v *float64, valid func(float64) bool, desc string) error {
	if v == nil {
		return nil
	}
	if !valid(*v) {
		return invalid(field, "value %v must be %s", *v, desc)
	}
	return nil
}

func checkFloatList(field string, vals FloatList, valid func(float64) bool, desc string) error {
	for _, v := range vals {
		if !valid(v) {
			return invalid(field, "value %v must be %s", v, desc)
		}
	}
	return nil
}

// normalizeEnumList canonicalizes every element of vals through canon and
// verifies membership in allowed. The list is rewritten in place.
func normalizeEnumList(field string, vals StringList, canon func(string) string, allowed []string) error {
	for i, v := range vals {
		c := canon(v)
		if !domain.Member(allowed, c) {
			return notInDomain(field, v, allowed)
		}
		vals[i] = c
	}
	return nil
}

// capitalize folds a label to "Xxxx" casing, the canonical form for month
// and weekday names.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// checkSeason validates a "yyyy-yyyy" season label: consecutive years within
// the supported range.
func checkSeason(field, s string) error {
	if !seasonPattern.MatchString(s) {
		return invalid(field, "season %q must be in the format yyyy-yyyy", s)
	}
	first, _ := strconv.Atoi(s[:4])
	second, _ := strconv.Atoi(s[5:])
	if second != first+1 {
		return invalid(field, "invalid season range %q: the second year must be one more than the first", s)
	}
	if first < domain.MinYear || first > domain.MaxYear-1 {
		return invalid(field, "season %q must be between %d-%d and %d-%d",
			s, domain.MinYear, domain.MinYear+1, domain.MaxYear-1, domain.MaxYear)
	}
	return nil
}

// Canonical list renderers for fingerprinting. Element order in value lists
// is not semantically significant, so lists are sorted before hashing.

func canonicalStrings(vals StringList) []any {
	sorted := append([]string(nil), vals...)
	sort.Strings(sorted)
	out := make([]any, len(sorted))
	for i, v := range sorted {
		out[i] = v
	}
	return out
}

func canonicalInts(vals IntList) []any {
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	out := make([]any, len(sorted))
	for i, v := range sorted {
		out[i] = v
	}
	return out
}

func canonicalFloats(vals FloatList) []any {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	out := make([]any, len(sorted))
	for i, v := range sorted {
		out[i] = v
	}
	return out
}
