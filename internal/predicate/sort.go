package predicate

// SortKey is one ORDER BY term. Desc false means ascending.
type SortKey struct {
	Col  Col
	Desc bool
}
