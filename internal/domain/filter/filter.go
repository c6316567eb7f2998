// Package filter applies independent categorical include-lists to the typed
// table, producing a fresh filtered view per pass.
package filter

import (
	"errors"
	"sort"

	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
)

// All is the sentinel option that disables a field's constraint. A selection
// containing All matches every row regardless of any other values alongside it.
const All = "All"

// ErrNoRowsMatch reports that the combined filters exclude every row. It is a
// user-correctable condition, not a hard error: the caller should prompt for
// different filters and rerun.
var ErrNoRowsMatch = errors.New("no rows match current filters")

// Selection holds the allowed values per filterable field. A missing field or
// a selection containing All places no constraint on that field.
type Selection map[dataset.Field][]string

// DefaultSelection returns the match-everything selection for every
// filterable field.
func DefaultSelection() Selection {
	sel := make(Selection, len(dataset.FilterableFields()))
	for _, f := range dataset.FilterableFields() {
		sel[f] = []string{All}
	}
	return sel
}

// matchesAll reports whether the value list places no constraint.
func matchesAll(values []string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if v == All {
			return true
		}
	}
	return false
}

// Options returns, per filterable field, the distinct non-empty values present
// in the full table sorted ascending, prefixed with the All sentinel. This is
// what a widget layer offers in its multi-select controls.
func Options(t *dataset.Table) map[dataset.Field][]string {
	options := make(map[dataset.Field][]string, len(dataset.FilterableFields()))

	for _, field := range dataset.FilterableFields() {
		seen := make(map[string]struct{})
		for _, row := range t.Rows {
			if v, ok := row.Categorical(field); ok && v != "" {
				seen[v] = struct{}{}
			}
		}

		values := make([]string, 0, len(seen)+1)
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)

		options[field] = append([]string{All}, values...)
	}

	return options
}

// Apply restricts the table to rows satisfying every active selection.
// Filters combine by conjunction; a field absent from the table is a no-op.
// The returned view is a fresh slice and never aliases mutation back into the
// table. A view with zero rows yields ErrNoRowsMatch.
func Apply(t *dataset.Table, sel Selection) ([]dataset.Row, error) {
	active := make(map[dataset.Field]map[string]struct{})
	for _, field := range dataset.FilterableFields() {
		values, ok := sel[field]
		if !ok || matchesAll(values) {
			continue
		}
		if !t.Has(field) {
			continue // schema drift: missing filterable column matches all rows
		}
		allowed := make(map[string]struct{}, len(values))
		for _, v := range values {
			allowed[v] = struct{}{}
		}
		active[field] = allowed
	}

	view := make([]dataset.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		keep := true
		for field, allowed := range active {
			v, _ := row.Categorical(field)
			if _, ok := allowed[v]; !ok {
				keep = false
				break
			}
		}
		if keep {
			view = append(view, row)
		}
	}

	if len(view) == 0 {
		return nil, ErrNoRowsMatch
	}
	return view, nil
}
