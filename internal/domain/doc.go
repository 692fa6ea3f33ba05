// Package domain provides the label sets and ordinal tables shared by the
// filter layer, the predicate compiler, and the sort compiler.
//
// This package contains data definitions only. All other internal packages
// import domain; domain imports nothing internal. This ensures the label
// tables remain the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - One ordinal table per categorical column, used identically for range
//     filtering and sorting. The tables are never duplicated inline.
//   - Every ordinal table carries two sentinel ranks: one for NULL rows and
//     one catch-all above it for values outside the declared label set.
package domain
