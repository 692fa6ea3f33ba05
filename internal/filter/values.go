package filter

import (
	"encoding/json"
	"fmt"
)

// StringList is a filter value that decodes from either a single JSON string
// or an array of strings. Scalars become singleton lists at the decode
// boundary so every downstream consumer sees one uniform shape.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a string or a list of strings")
	}
	*l = StringList(list)
	return nil
}

// IntList decodes from a single JSON integer or an array of integers.
type IntList []int

// UnmarshalJSON implements json.Unmarshaler.
func (l *IntList) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*l = IntList{n}
		return nil
	}
	var list []int
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected an integer or a list of integers")
	}
	*l = IntList(list)
	return nil
}

// FloatList decodes from a single JSON number or an array of numbers.
type FloatList []float64

// UnmarshalJSON implements json.Unmarshaler.
func (l *FloatList) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*l = FloatList{f}
		return nil
	}
	var list []float64
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a number or a list of numbers")
	}
	*l = FloatList(list)
	return nil
}

// NullableBool is a three-valued boolean filter: true, false, or the literal
// null sentinel "None" selecting rows where the column is NULL.
//
// Absent (Set == false) means the filter was not provided and contributes
// nothing. The string forms "true"/"false" are accepted for convenience,
// matching the loose typing of the original clients.
type NullableBool struct {
	Set   bool
	Null  bool
	Value bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *NullableBool) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = NullableBool{}
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = NullableBool{Set: true, Value: v}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case NullSentinel:
			*b = NullableBool{Set: true, Null: true}
			return nil
		case "true", "True":
			*b = NullableBool{Set: true, Value: true}
			return nil
		case "false", "False":
			*b = NullableBool{Set: true, Value: false}
			return nil
		}
	}
	return fmt.Errorf("expected true, false, or %q", NullSentinel)
}

// NullSentinel is the literal string clients send to select NULL rows on
// tri-state fields. It is data, distinct from an absent field.
const NullSentinel = "None"

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortField is one (field, direction) pair of a sort specification.
type SortField struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// UnmarshalJSON accepts either a bare field name (direction defaults to
// ascending) or a {field, order} object.
func (s *SortField) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = SortField{Field: name, Order: SortAsc}
		return nil
	}
	type plain SortField
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("expected a field name or a {field, order} object")
	}
	if p.Field == "" {
		return fmt.Errorf("sort field must be specified")
	}
	if p.Order == "" {
		p.Order = SortAsc
	}
	if p.Order != SortAsc && p.Order != SortDesc {
		return fmt.Errorf("sort order must be %q or %q", SortAsc, SortDesc)
	}
	*s = SortField(p)
	return nil
}

// SortList decodes from a single field name, a single {field, order} object,
// or a list mixing both.
type SortList []SortField

// UnmarshalJSON implements json.Unmarshaler.
func (l *SortList) UnmarshalJSON(data []byte) error {
	var one SortField
	if err := json.Unmarshal(data, &one); err == nil {
		*l = SortList{one}
		return nil
	}
	var list []SortField
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a field name, a {field, order} object, or a list of either")
	}
	*l = SortList(list)
	return nil
}

// canonicalSort renders a sort list for fingerprinting. Order is
// semantically significant, so it is preserved.
func canonicalSort(l SortList) []any {
	out := make([]any, len(l))
	for i, s := range l {
		out[i] = map[string]any{"field": s.Field, "order": s.Order}
	}
	return out
}
