// Package filter defines the filter documents accepted by the query API and
// the normalization pass that turns raw decoded input into validated,
// canonical value objects.
//
// Filter fields arrive in union shapes: a scalar, a list, or (for a few
// fields) a structured sub-object. Each union has a dedicated Go type with
// its own UnmarshalJSON, so branching on shape happens exactly once at the
// decode boundary rather than at every use site.
//
// Normalize methods validate every present field against its domain (enum
// membership, numeric bounds, format patterns, value grids) and canonicalize
// casing. A document that has passed Normalize is the only thing the
// predicate compiler accepts; the compiler interprets, it never re-validates.
//
// All functions in this package are pure. Validation failures are reported
// as *ValidationError naming the offending field and its allowed domain.
package filter
