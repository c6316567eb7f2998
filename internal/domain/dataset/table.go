package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one typed transaction. Purchase amount is always present; the date
// and satisfaction score are nil when the source cell failed coercion, and
// categorical fields use "" for missing values.
type Row struct {
	Label         string          `csv:"label" json:"label"`
	CustomerID    string          `csv:"customerid" json:"customerid"`
	TransactionID string          `csv:"transactionid" json:"transactionid"`
	Date          *time.Time      `csv:"transactiondate" json:"transactiondate"`
	Category      string          `csv:"productcategory" json:"productcategory"`
	Amount        decimal.Decimal `csv:"purchaseamount" json:"purchaseamount"`
	AgeGroup      string          `csv:"customeragegroup" json:"customeragegroup"`
	Gender        string          `csv:"customergender" json:"customergender"`
	Region        string          `csv:"customerregion" json:"customerregion"`
	Satisfaction  *float64        `csv:"customersatisfaction" json:"customersatisfaction"`
	Channel       string          `csv:"retailchannel" json:"retailchannel"`
}

// Categorical returns the row's value for a categorical field and whether
// that field is one of the supported categorical fields at all. A "" value
// means the cell was empty in the source.
func (r Row) Categorical(f Field) (string, bool) {
	switch f {
	case FieldLabel:
		return r.Label, true
	case FieldCustomerID:
		return r.CustomerID, true
	case FieldTransactionID:
		return r.TransactionID, true
	case FieldCategory:
		return r.Category, true
	case FieldAgeGroup:
		return r.AgeGroup, true
	case FieldGender:
		return r.Gender, true
	case FieldRegion:
		return r.Region, true
	case FieldChannel:
		return r.Channel, true
	default:
		return "", false
	}
}

// Table is the typed dataset after header matching, renaming and coercion.
// It is immutable after load; every dashboard pass derives fresh views from it.
type Table struct {
	Rows    []Row
	mapping Mapping
}

// NewTable builds a table from typed rows and the header mapping they were
// loaded under.
func NewTable(rows []Row, mapping Mapping) *Table {
	return &Table{Rows: rows, mapping: mapping}
}

// Has reports whether a logical field was present in the source file.
// After a successful schema match every required field is present; the check
// exists so filters degrade to no-ops under schema drift instead of failing.
func (t *Table) Has(f Field) bool {
	if t.mapping == nil {
		return false
	}
	_, ok := t.mapping[f]
	return ok
}

// Mapping returns the field-to-raw-header mapping the table was loaded under.
func (t *Table) Mapping() Mapping {
	return t.mapping
}

// Len returns the number of typed rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
