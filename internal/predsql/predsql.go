// Package predsql renders predicate trees into parameterized SQLite text.
//
// Every value travels as a bind parameter; column expressions are built
// exclusively from the fixed column tables in internal/compile, so no
// request-controlled text ever reaches the SQL string.
package predsql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmfalke/trendline/internal/predicate"
)

// Where renders a predicate tree as a WHERE clause body plus its bind
// parameters. A nil fragment means no constraint: it renders as empty SQL.
func Where(frag predicate.Fragment) (string, []any, error) {
	if frag == nil {
		return "", nil, nil
	}
	var b strings.Builder
	var params []any
	if err := render(&b, &params, frag); err != nil {
		return "", nil, err
	}
	return b.String(), params, nil
}

// OrderBy renders sort keys as an ORDER BY clause body. Queries without an
// explicit sort never reach this layer: the normalizer installs defaults, so
// row order is always fully specified.
func OrderBy(keys []predicate.SortKey) string {
	terms := make([]string, len(keys))
	for i, k := range keys {
		dir := " ASC"
		if k.Desc {
			dir = " DESC"
		}
		terms[i] = colExpr(k.Col) + dir
	}
	return strings.Join(terms, ", ")
}

func render(b *strings.Builder, params *[]any, frag predicate.Fragment) error {
	switch f := frag.(type) {
	case *predicate.Compare:
		b.WriteString(colExpr(f.Col))
		b.WriteString(" ")
		b.WriteString(string(f.Op))
		b.WriteString(" ?")
		*params = append(*params, f.Value)
		return nil

	case *predicate.In:
		if len(f.Values) == 0 {
			return fmt.Errorf("IN fragment for %s has no values", f.Col.Name)
		}
		b.WriteString(colExpr(f.Col))
		b.WriteString(" IN (")
		b.WriteString(placeholders(len(f.Values)))
		b.WriteString(")")
		*params = append(*params, f.Values...)
		return nil

	case *predicate.Between:
		b.WriteString(colExpr(f.Col))
		b.WriteString(" BETWEEN ? AND ?")
		*params = append(*params, f.Lo, f.Hi)
		return nil

	case *predicate.IsNull:
		b.WriteString(f.Col.Name)
		if f.Negate {
			b.WriteString(" IS NOT NULL")
		} else {
			b.WriteString(" IS NULL")
		}
		return nil

	case *predicate.Contains:
		b.WriteString(f.Col.Name)
		b.WriteString(" LIKE '%' || ? || '%'")
		*params = append(*params, f.Needle)
		return nil

	case *predicate.And:
		return renderJoin(b, params, f.Children, " AND ")

	case *predicate.Or:
		return renderJoin(b, params, f.Children, " OR ")

	case *predicate.False:
		b.WriteString("1 = 0")
		return nil

	default:
		return fmt.Errorf("unsupported fragment type %T", frag)
	}
}

func renderJoin(b *strings.Builder, params *[]any, children []predicate.Fragment, sep string) error {
	if len(children) == 0 {
		return fmt.Errorf("empty connective")
	}
	b.WriteString("(")
	for i, c := range children {
		if i > 0 {
			b.WriteString(sep)
		}
		if err := render(b, params, c); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// colExpr renders a column reference. Ordinal columns become a CASE
// expression over their label domain so comparisons follow domain order;
// NULL and unrecognized labels sort after every real label, in that order.
func colExpr(col predicate.Col) string {
	switch col.Kind {
	case predicate.ColOrdinal:
		var b strings.Builder
		b.WriteString("CASE ")
		b.WriteString(col.Name)
		for i, label := range col.Ord.Labels() {
			b.WriteString(" WHEN '")
			b.WriteString(label)
			b.WriteString("' THEN ")
			b.WriteString(strconv.Itoa(i + 1))
		}
		b.WriteString(" ELSE CASE WHEN ")
		b.WriteString(col.Name)
		b.WriteString(" IS NULL THEN ")
		b.WriteString(strconv.Itoa(col.Ord.NullRank()))
		b.WriteString(" ELSE ")
		b.WriteString(strconv.Itoa(col.Ord.OtherRank()))
		b.WriteString(" END END")
		return b.String()

	case predicate.ColSeasonYear:
		return "CAST(SUBSTR(" + col.Name + ", 1, 4) AS INTEGER)"

	default:
		return col.Name
	}
}
