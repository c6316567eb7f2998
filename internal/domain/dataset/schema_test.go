package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
)

// canonicalHeaders covers every required logical field with assorted casing,
// spacing and underscore variants.
var canonicalHeaders = []string{
	"Label",
	"Customer ID",
	"TRANSACTION_ID",
	"transaction date",
	"Product Category",
	"  Purchase Amount  ",
	"customer_age_group",
	"CustomerGender",
	"Customer Region",
	"customer satisfaction",
	"Retail_Channel",
}

func TestMatchHeadersComplete(t *testing.T) {
	mapping, schemaErr := dataset.MatchHeaders(canonicalHeaders)
	require.Nil(t, schemaErr)

	for _, field := range dataset.RequiredFields() {
		col, ok := mapping[field]
		assert.True(t, ok, "field %s should be matched", field)
		assert.GreaterOrEqual(t, col.Index, 0)
		assert.Less(t, col.Index, len(canonicalHeaders))
	}

	assert.Equal(t, "  Purchase Amount  ", mapping[dataset.FieldAmount].Header)
	assert.Equal(t, 5, mapping[dataset.FieldAmount].Index)
}

func TestMatchHeadersNormalization(t *testing.T) {
	tests := []struct {
		name   string
		header string
		field  dataset.Field
	}{
		{"plain lowercase", "purchaseamount", dataset.FieldAmount},
		{"spaces", "purchase amount", dataset.FieldAmount},
		{"underscores", "purchase_amount", dataset.FieldAmount},
		{"mixed case", "PuRcHaSe AmOuNt", dataset.FieldAmount},
		{"surrounding whitespace", "   purchaseamount\t", dataset.FieldAmount},
		{"many underscores", "p_u_r_c_h_a_s_e_a_m_o_u_n_t", dataset.FieldAmount},
		{"date with spaces", "Transaction Date", dataset.FieldDate},
		{"satisfaction camel", "CustomerSatisfaction", dataset.FieldSatisfaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := make([]string, len(canonicalHeaders))
			copy(headers, canonicalHeaders)
			// Replace the canonical header for the field under test.
			mapping, schemaErr := dataset.MatchHeaders(canonicalHeaders)
			require.Nil(t, schemaErr)
			headers[mapping[tt.field].Index] = tt.header

			mapping, schemaErr = dataset.MatchHeaders(headers)
			require.Nil(t, schemaErr)
			assert.Equal(t, tt.header, mapping[tt.field].Header)
		})
	}
}

func TestMatchHeadersMissingFieldsExact(t *testing.T) {
	tests := []struct {
		name string
		drop []dataset.Field
	}{
		{"one missing", []dataset.Field{dataset.FieldAmount}},
		{"two missing", []dataset.Field{dataset.FieldDate, dataset.FieldChannel}},
		{"all missing", dataset.RequiredFields()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full, schemaErr := dataset.MatchHeaders(canonicalHeaders)
			require.Nil(t, schemaErr)

			dropIdx := make(map[int]bool)
			for _, f := range tt.drop {
				dropIdx[full[f].Index] = true
			}
			var headers []string
			for i, h := range canonicalHeaders {
				if !dropIdx[i] {
					headers = append(headers, h)
				}
			}

			mapping, schemaErr := dataset.MatchHeaders(headers)
			assert.Nil(t, mapping)
			require.NotNil(t, schemaErr)

			// Exactly the dropped fields are reported, nothing more.
			assert.ElementsMatch(t, tt.drop, schemaErr.Missing)
			assert.Equal(t, headers, schemaErr.Headers)
		})
	}
}

func TestMatchHeadersFirstMatchWins(t *testing.T) {
	headers := append([]string{}, canonicalHeaders...)
	headers = append(headers, "purchase_amount") // duplicate, normalizes identically

	mapping, schemaErr := dataset.MatchHeaders(headers)
	require.Nil(t, schemaErr)
	assert.Equal(t, 5, mapping[dataset.FieldAmount].Index)
}

func TestMatchHeadersNoPartialMatching(t *testing.T) {
	// Substrings and supersets must not match; only the exact
	// underscore-stripped form does.
	headers := append([]string{}, canonicalHeaders...)
	headers[5] = "purchase amount total"

	_, schemaErr := dataset.MatchHeaders(headers)
	require.NotNil(t, schemaErr)
	assert.Equal(t, []dataset.Field{dataset.FieldAmount}, schemaErr.Missing)
}

func TestSchemaErrorSuggestions(t *testing.T) {
	headers := append([]string{}, canonicalHeaders...)
	headers[5] = "purchase amnt"

	_, schemaErr := dataset.MatchHeaders(headers)
	require.NotNil(t, schemaErr)
	assert.Contains(t, schemaErr.Error(), "purchaseamount")
	assert.Contains(t, schemaErr.Suggestions[dataset.FieldAmount], "purchase amnt")
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "purchase_amount", dataset.NormalizeHeader("  Purchase Amount "))
	assert.Equal(t, "label", dataset.NormalizeHeader("LABEL"))
	assert.Equal(t, "retail_channel", dataset.NormalizeHeader("Retail_Channel"))
}
