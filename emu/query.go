package emu

import (
	"encoding/json"
	"fmt"
)

// Clause is one node of an EMu filter expression, for example
//
//	{"AND":[{"data.NamLast":{"exact":{"value":"Smith"}}}]}
type Clause map[string]any

// Condition matches field with operator against value:
// {field: {operator: {"value": value}}}.
func Condition(field, operator string, value any) Clause {
	return Clause{field: map[string]any{operator: map[string]any{"value": value}}}
}

// Exact matches field equal to value.
func Exact(field string, value any) Clause {
	return Condition(field, "exact", value)
}

// Contains matches field containing value.
func Contains(field string, value any) Clause {
	return Condition(field, "contains", value)
}

// Phonetic matches field sounding like value.
func Phonetic(field string, value any) Clause {
	return Condition(field, "phonetic", value)
}

// Stemmed matches field on word stems of value.
func Stemmed(field string, value any) Clause {
	return Condition(field, "stemmed", value)
}

// And requires every clause to match.
func And(clauses ...Clause) Clause {
	return Clause{"AND": clauses}
}

// Or requires at least one clause to match.
func Or(clauses ...Clause) Clause {
	return Clause{"OR": clauses}
}

// Not negates the clauses.
func Not(clauses ...Clause) Clause {
	return Clause{"NOT": clauses}
}

// SortOrder is the direction of a sort key.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Sort is one key of a sort expression.
type Sort struct {
	Field string
	Order SortOrder
}

// Asc sorts field ascending.
func Asc(field string) Sort {
	return Sort{Field: field, Order: Ascending}
}

// Desc sorts field descending.
func Desc(field string) Sort {
	return Sort{Field: field, Order: Descending}
}

// MarshalJSON renders {field: {"order": order}}.
func (s Sort) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{s.Field: map[string]SortOrder{"order": s.Order}})
}

// FilterJSON renders a clause for SearchSpec.Filter.
func FilterJSON(c Clause) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode filter: %w", err)
	}
	return string(b), nil
}

// SortJSON renders sort keys for SearchSpec.Sort, in order.
func SortJSON(keys ...Sort) (string, error) {
	if keys == nil {
		keys = []Sort{}
	}
	b, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("failed to encode sort: %w", err)
	}
	return string(b), nil
}
