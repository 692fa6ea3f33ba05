package domain

// Ordinal is a fixed bijection between a finite set of string labels and a
// dense 1-based integer rank, enabling range comparison and semantic sorting
// over columns stored as text.
//
// Two sentinel ranks extend the table:
//   - NullRank sorts NULL rows after every real label.
//   - OtherRank is the catch-all for values outside the label set and sorts
//     after NULL.
//
// The same table must be used for filtering ranges and for sorting; sharing
// the instance is what keeps the two consistent.
type Ordinal struct {
	labels []string
	index  map[string]int
}

// NewOrdinal builds an ordinal table from labels in rank order.
// Ranks start at 1.
func NewOrdinal(labels ...string) Ordinal {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i + 1
	}
	return Ordinal{labels: labels, index: index}
}

// Rank returns the 1-based rank of a label and whether the label is in the
// table.
func (o Ordinal) Rank(label string) (int, bool) {
	r, ok := o.index[label]
	return r, ok
}

// Contains reports whether label is a member of the table.
func (o Ordinal) Contains(label string) bool {
	_, ok := o.index[label]
	return ok
}

// NullRank is the sentinel rank assigned to NULL rows. It sorts after all
// real labels.
func (o Ordinal) NullRank() int { return len(o.labels) + 1 }

// OtherRank is the catch-all rank for values outside the label set. It sorts
// after NullRank.
func (o Ordinal) OtherRank() int { return len(o.labels) + 2 }

// Labels returns the labels in rank order. Callers must not mutate the
// returned slice.
func (o Ordinal) Labels() []string { return o.labels }

// MonthOrder maps month names to calendar order. Shared by the month range
// resolver and the month sort key.
var MonthOrder = NewOrdinal(
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
)

// GameWeekdayOrder is the weekday ordering used by the games table.
var GameWeekdayOrder = NewOrdinal(
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
)

// TrendWeekdayOrder is the weekday ordering used by the trends table. Trend
// rows group the football week starting on Sunday.
var TrendWeekdayOrder = NewOrdinal(
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
)
