// Package dataset loads the retail transaction spreadsheet, matches its raw
// headers onto the logical schema and coerces cells into typed rows.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Field is a canonical column name the pipeline depends on, independent of
// the raw spreadsheet's actual header text.
type Field string

const (
	FieldLabel         Field = "label"
	FieldCustomerID    Field = "customerid"
	FieldTransactionID Field = "transactionid"
	FieldDate          Field = "transactiondate"
	FieldCategory      Field = "productcategory"
	FieldAmount        Field = "purchaseamount"
	FieldAgeGroup      Field = "customeragegroup"
	FieldGender        Field = "customergender"
	FieldRegion        Field = "customerregion"
	FieldSatisfaction  Field = "customersatisfaction"
	FieldChannel       Field = "retailchannel"
)

// RequiredFields returns every logical field the dataset must provide,
// in matching priority order.
func RequiredFields() []Field {
	return []Field{
		FieldLabel,
		FieldCustomerID,
		FieldTransactionID,
		FieldDate,
		FieldCategory,
		FieldAmount,
		FieldAgeGroup,
		FieldGender,
		FieldRegion,
		FieldSatisfaction,
		FieldChannel,
	}
}

// FilterableFields returns the categorical fields exposed as dashboard filters.
func FilterableFields() []Field {
	return []Field{
		FieldLabel,
		FieldRegion,
		FieldCategory,
		FieldChannel,
		FieldAgeGroup,
		FieldGender,
	}
}

// Column identifies the raw header matched to a logical field.
type Column struct {
	Header string // raw header text as it appears in the file
	Index  int    // zero-based column position
}

// Mapping assigns each logical field to the raw column that represents it.
type Mapping map[Field]Column

// SchemaError reports logical fields that could not be matched to any raw
// header. It carries the raw header list so the user can see what the file
// actually contains, plus best-effort suggestions for each missing field.
type SchemaError struct {
	Headers     []string
	Missing     []Field
	Suggestions map[Field][]string
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("missing required logical fields: %s (dataset columns: %s)",
		strings.Join(names, ", "), strings.Join(e.Headers, ", "))
}

// NormalizeHeader applies the canonical header normalization: trim surrounding
// whitespace, lowercase, replace spaces with underscores.
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(h, " ", "_")
}

// MatchHeaders maps every required logical field to a raw header. A header
// matches a field iff its normalized form equals the field name once all
// underscores are removed. The first matching header in file order wins.
//
// On failure the returned SchemaError lists exactly the unmatched fields;
// there is no partial-schema mode.
func MatchHeaders(headers []string) (Mapping, *SchemaError) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	mapping := make(Mapping, len(RequiredFields()))
	var missing []Field

	for _, field := range RequiredFields() {
		found := false
		for i, norm := range normalized {
			if strings.ReplaceAll(norm, "_", "") == string(field) {
				mapping[field] = Column{Header: headers[i], Index: i}
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return nil, &SchemaError{
			Headers:     headers,
			Missing:     missing,
			Suggestions: suggestHeaders(missing, headers),
		}
	}

	return mapping, nil
}

// suggestHeaders ranks raw headers by Levenshtein distance to each missing
// field. Suggestions feed the error message only; matching itself stays exact.
func suggestHeaders(missing []Field, headers []string) map[Field][]string {
	type candidate struct {
		header   string
		distance int
	}

	suggestions := make(map[Field][]string, len(missing))
	for _, field := range missing {
		var candidates []candidate
		for _, header := range headers {
			stripped := strings.ReplaceAll(NormalizeHeader(header), "_", "")
			d := fuzzy.LevenshteinDistance(stripped, string(field))
			if d <= len(field)/2 {
				candidates = append(candidates, candidate{header: header, distance: d})
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].distance < candidates[j].distance
		})

		limit := 3
		if len(candidates) < limit {
			limit = len(candidates)
		}
		for _, c := range candidates[:limit] {
			suggestions[field] = append(suggestions[field], c.header)
		}
	}
	return suggestions
}
