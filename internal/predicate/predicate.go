// Package predicate defines the intermediate representation between filter
// documents and SQL text.
//
// Compilers in internal/compile lower normalized filters into Fragment
// trees; internal/predsql renders trees into parameterized SQL. Keeping the
// tree as a first-class value makes compilation deterministic and testable
// without touching a database.
package predicate

import "github.com/dmfalke/trendline/internal/domain"

// ColKind selects how a column is rendered in SQL.
type ColKind int

const (
	// ColPlain renders the bare column name.
	ColPlain ColKind = iota

	// ColOrdinal renders a CASE expression mapping the column's labels to
	// their ordinal ranks, so comparisons and sorts follow domain order
	// instead of lexicographic order.
	ColOrdinal

	// ColSeasonYear renders the first year of a "yyyy-yyyy" season column
	// as an integer.
	ColSeasonYear
)

// Col identifies a column and how to address it. Ord is only consulted for
// ColOrdinal.
type Col struct {
	Name string
	Kind ColKind
	Ord  domain.Ordinal
}

// Plain is shorthand for a ColPlain column.
func Plain(name string) Col { return Col{Name: name} }

// Ordinal is shorthand for a ColOrdinal column.
func Ordinal(name string, ord domain.Ordinal) Col {
	return Col{Name: name, Kind: ColOrdinal, Ord: ord}
}

// SeasonYear is shorthand for a ColSeasonYear column.
func SeasonYear(name string) Col {
	return Col{Name: name, Kind: ColSeasonYear}
}

// Op is a comparison operator for Compare fragments.
type Op string

const (
	OpEq Op = "="
	OpNe Op = "!="
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="
)

// Fragment is one node of a predicate tree.
//
// This is a sealed interface: only types in this package implement it. The
// marker method enables exhaustive type switches in the SQL renderer.
type Fragment interface {
	fragmentNode()
}

// Compare is <col> <op> <value>. The value always travels as a bind
// parameter, never as SQL text.
type Compare struct {
	Col   Col
	Op    Op
	Value any
}

func (*Compare) fragmentNode() {}

// In is <col> IN (<values...>). Values must be non-empty; compilers emit no
// fragment for an empty candidate set on its own, and use False when an
// empty set must match nothing.
type In struct {
	Col    Col
	Values []any
}

func (*In) fragmentNode() {}

// Between is <col> BETWEEN <lo> AND <hi>, inclusive on both ends.
type Between struct {
	Col Col
	Lo  any
	Hi  any
}

func (*Between) fragmentNode() {}

// IsNull is <col> IS NULL, or IS NOT NULL when negated.
type IsNull struct {
	Col    Col
	Negate bool
}

func (*IsNull) fragmentNode() {}

// Contains is a substring match on a delimited text column. The needle is
// bound as a parameter; the renderer adds the wildcards.
type Contains struct {
	Col    Col
	Needle string
}

func (*Contains) fragmentNode() {}

// And is the conjunction of its children. Compilers drop nil children; an
// empty And renders as no constraint.
type And struct {
	Children []Fragment
}

func (*And) fragmentNode() {}

// Or is the disjunction of its children.
type Or struct {
	Children []Fragment
}

func (*Or) fragmentNode() {}

// False matches no rows. It exists for filters that name a valid field with
// an unsatisfiable value set, where silently dropping the constraint would
// over-match.
type False struct{}

func (*False) fragmentNode() {}

// Conj builds an And from the non-nil fragments, collapsing trivial shapes:
// zero children yield nil, one child yields the child itself.
func Conj(frags ...Fragment) Fragment {
	return collapse(frags, func(kept []Fragment) Fragment { return &And{Children: kept} })
}

// Disj builds an Or from the non-nil fragments with the same collapsing
// rules as Conj.
func Disj(frags ...Fragment) Fragment {
	return collapse(frags, func(kept []Fragment) Fragment { return &Or{Children: kept} })
}

func collapse(frags []Fragment, wrap func([]Fragment) Fragment) Fragment {
	kept := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		if f != nil {
			kept = append(kept, f)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return wrap(kept)
}
