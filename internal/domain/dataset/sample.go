package dataset

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// SampleGenerator produces realistic demo datasets using gofakeit.
type SampleGenerator struct {
	faker *gofakeit.Faker
}

// NewSampleGenerator creates a generator with a specific seed for
// reproducibility. Seed 0 yields a random dataset.
func NewSampleGenerator(seed int64) *SampleGenerator {
	return &SampleGenerator{faker: gofakeit.New(seed)}
}

var (
	sampleSegments   = []string{"Growth", "Stable", "Decline"}
	sampleCategories = []string{"Electronics", "Apparel", "Groceries", "Home", "Beauty"}
	sampleRegions    = []string{"North", "South", "East", "West"}
	sampleChannels   = []string{"Online", "Retail", "Partner"}
	sampleAgeGroups  = []string{"18-25", "26-35", "36-50", "51+"}
	sampleGenders    = []string{"Female", "Male", "Other"}
)

// sampleHeaders deliberately vary casing and spacing to exercise header
// normalization on the load path.
var sampleHeaders = []string{
	"Label",
	"Customer ID",
	"Transaction ID",
	"Transaction Date",
	"Product Category",
	"Purchase Amount",
	"Customer Age Group",
	"Customer Gender",
	"Customer Region",
	"Customer Satisfaction",
	"Retail Channel",
}

// Record generates one raw spreadsheet record.
func (g *SampleGenerator) Record() []string {
	date := g.faker.DateRange(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	return []string{
		g.faker.RandomString(sampleSegments),
		uuid.New().String(),
		uuid.New().String(),
		date.Format("2006-01-02"),
		g.faker.RandomString(sampleCategories),
		fmt.Sprintf("%.2f", g.faker.Price(5, 2500)),
		g.faker.RandomString(sampleAgeGroups),
		g.faker.RandomString(sampleGenders),
		g.faker.RandomString(sampleRegions),
		fmt.Sprintf("%d", g.faker.Number(1, 5)),
		g.faker.RandomString(sampleChannels),
	}
}

// RawTable generates a demo raw table with n records.
func (g *SampleGenerator) RawTable(n int) *RawTable {
	records := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, g.Record())
	}
	return &RawTable{Headers: sampleHeaders, Records: records}
}

// WriteXLSX writes a demo dataset of n records to an XLSX workbook at path.
func (g *SampleGenerator) WriteXLSX(path string, n int) error {
	raw := g.RawTable(n)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &raw.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, record := range raw.Records {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellRef, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
