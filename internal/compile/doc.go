// Package compile lowers normalized filter documents into predicate trees
// and sort key lists.
//
// Compilation is pure and deterministic: the same normalized document always
// produces structurally identical output, which is what makes result
// fingerprints trustworthy. Compilers assume Normalize has already run and
// never re-validate field values; the only error they can produce is an
// unknown sort field, which validation cannot catch because the sortable
// column set belongs to this layer.
package compile
