// Package search derives display subsets from a record collection. Filtering
// is a pure function of the items, the query text and the selected field; the
// Controller adds the trigger policy and the "searching" indicator.
package search

import (
	"fmt"
	"strings"
)

// Field selects which attribute of a record the query is matched against.
type Field string

// FieldAll matches a record when any of its searchable attributes matches.
const FieldAll Field = "all"

// MatchFunc reports whether item matches query on field. query is already
// trimmed and lowercased.
type MatchFunc[T any] func(item T, field Field, query string) bool

// Normalize trims and lowercases a raw query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Contains reports whether value contains the normalized query, ignoring case.
func Contains(value, query string) bool {
	return strings.Contains(strings.ToLower(value), query)
}

// Filter returns the items that match query on field, in their original
// order. An empty or whitespace-only query returns items unchanged.
func Filter[T any](items []T, query string, field Field, match MatchFunc[T]) []T {
	q := Normalize(query)
	if q == "" {
		return items
	}
	if field == "" {
		field = FieldAll
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item, field, q) {
			out = append(out, item)
		}
	}
	return out
}

// ParseField checks s against the allowed fields. An empty s means FieldAll.
func ParseField(s string, allowed []Field) (Field, error) {
	if s == "" {
		return FieldAll, nil
	}
	for _, f := range allowed {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown search field %q", s)
}
