package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// RawTable is the untyped source table: header row plus string records.
type RawTable struct {
	Headers []string
	Records [][]string
}

// Load reads the dataset file at path and returns the typed table.
// The format is chosen by extension (.xlsx or .csv). A missing or unreadable
// file is a load failure; unmatched headers surface as a *SchemaError.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file %s: %w", path, err)
	}
	defer f.Close()

	var raw *RawTable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err = ReadCSV(f)
	default:
		raw, err = ReadXLSX(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}

	return FromRaw(raw)
}

// ReadXLSX reads the first sheet of an XLSX workbook into a raw table.
func ReadXLSX(reader io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in workbook")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	return &RawTable{Headers: rows[0], Records: rows[1:]}, nil
}

// ReadCSV reads a CSV stream into a raw table. The header row is kept in
// file order because schema matching is order-sensitive.
func ReadCSV(reader io.Reader) (*RawTable, error) {
	r := csv.NewReader(reader)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		records = append(records, record)
	}

	return &RawTable{Headers: headers, Records: records}, nil
}

// FromRaw matches the raw headers against the logical schema and coerces
// every record into a typed row. Rows whose purchase amount cannot be parsed
// are dropped; unparseable dates and satisfaction scores become nil.
func FromRaw(raw *RawTable) (*Table, error) {
	mapping, schemaErr := MatchHeaders(raw.Headers)
	if schemaErr != nil {
		return nil, schemaErr
	}

	rows := make([]Row, 0, len(raw.Records))
	for _, record := range raw.Records {
		cell := func(f Field) string {
			idx := mapping[f].Index
			if idx < 0 || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		amount, ok := parseAmount(cell(FieldAmount))
		if !ok {
			continue // purchase amount is mandatory for all downstream computation
		}

		rows = append(rows, Row{
			Label:         cell(FieldLabel),
			CustomerID:    cell(FieldCustomerID),
			TransactionID: cell(FieldTransactionID),
			Date:          parseDate(cell(FieldDate)),
			Category:      cell(FieldCategory),
			Amount:        amount,
			AgeGroup:      cell(FieldAgeGroup),
			Gender:        cell(FieldGender),
			Region:        cell(FieldRegion),
			Satisfaction:  parseScore(cell(FieldSatisfaction)),
			Channel:       cell(FieldChannel),
		})
	}

	return NewTable(rows, mapping), nil
}

// dateFormats are tried in order when coercing transaction dates.
var dateFormats = []string{
	"2006-01-02",           // ISO 8601
	"2006-01-02T15:04:05Z", // ISO 8601 with time
	"2006-01-02 15:04:05",  // ISO with space
	"2006/01/02",           // YYYY/MM/DD
	"01/02/2006",           // MM/DD/YYYY
	"02-01-2006",           // DD-MM-YYYY
	"02.01.2006",           // DD.MM.YYYY
	"1/2/06 15:04",         // Excel serial-style short date
}

// parseDate coerces a date cell, returning nil for anything unparseable.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseAmount coerces a purchase amount cell. Currency symbols and thousands
// separators are tolerated; ok is false when no number can be extracted.
func parseAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	for _, sym := range []string{"$", "€", "£"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseScore coerces a satisfaction cell, returning nil for anything
// unparseable.
func parseScore(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
