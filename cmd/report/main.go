// Command report prints a customer-intelligence dashboard pass to stdout.
// It can also export the filtered view as CSV and generate demo datasets.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"

	"github.com/novaretail/customer-intelligence/internal/domain/analytics"
	"github.com/novaretail/customer-intelligence/internal/domain/dashboard"
	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
	"github.com/novaretail/customer-intelligence/internal/domain/filter"
	"github.com/novaretail/customer-intelligence/internal/domain/insights"
	"github.com/novaretail/customer-intelligence/pkg/config"
	"github.com/novaretail/customer-intelligence/pkg/money"
)

func main() {
	var (
		dataPath   = flag.String("data", "", "dataset path (.xlsx or .csv); defaults to DATASET_PATH")
		exportPath = flag.String("export", "", "write the filtered view as CSV to this path")
		samplePath = flag.String("sample", "", "generate a demo dataset at this path and exit")
		sampleRows = flag.Int("rows", 500, "record count for -sample")
		sampleSeed = flag.Int64("seed", 0, "seed for -sample (0 = random)")
		showRows   = flag.Bool("show-rows", false, "print the filtered view as a table")

		segments   = flag.String("segment", filter.All, "comma-separated customer segments")
		regions    = flag.String("region", filter.All, "comma-separated customer regions")
		categories = flag.String("category", filter.All, "comma-separated product categories")
		channels   = flag.String("channel", filter.All, "comma-separated retail channels")
		ages       = flag.String("age", filter.All, "comma-separated customer age groups")
		genders    = flag.String("gender", filter.All, "comma-separated customer genders")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *samplePath != "" {
		gen := dataset.NewSampleGenerator(*sampleSeed)
		if err := gen.WriteXLSX(*samplePath, *sampleRows); err != nil {
			logger.Error("failed to generate sample dataset", "error", err)
			os.Exit(1)
		}
		logger.Info("sample dataset written", "path", *samplePath, "rows", *sampleRows)
		return
	}

	path := cfg.Dataset.Path
	if *dataPath != "" {
		path = *dataPath
	}

	table, err := dataset.Load(path)
	if err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			logger.Error("dataset schema mismatch",
				"missing_fields", schemaErr.Missing,
				"dataset_columns", schemaErr.Headers,
				"suggestions", schemaErr.Suggestions)
		} else {
			logger.Error("failed to load dataset", "error", err)
		}
		os.Exit(1)
	}

	gen := insights.NewGenerator(cfg.Dashboard.Currency, cfg.Dashboard.DeclineAlertThreshold, logger)
	svc := dashboard.NewService(table, gen, logger)

	sel := filter.Selection{
		dataset.FieldLabel:    splitValues(*segments),
		dataset.FieldRegion:   splitValues(*regions),
		dataset.FieldCategory: splitValues(*categories),
		dataset.FieldChannel:  splitValues(*channels),
		dataset.FieldAgeGroup: splitValues(*ages),
		dataset.FieldGender:   splitValues(*genders),
	}

	report, err := svc.Run(sel)
	if errors.Is(err, filter.ErrNoRowsMatch) {
		fmt.Println("No data matches selected filters.")
		return
	}
	if err != nil {
		logger.Error("dashboard pass failed", "error", err)
		os.Exit(1)
	}

	printReport(report, cfg.Dashboard.Currency, *showRows)

	if *exportPath != "" {
		if err := exportCSV(report, *exportPath); err != nil {
			logger.Error("failed to export filtered view", "error", err)
			os.Exit(1)
		}
		logger.Info("filtered view exported", "path", *exportPath, "rows", len(report.Rows))
	}
}

func splitValues(s string) []string {
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

func printReport(r *dashboard.Report, currency string, showRows bool) {
	fmt.Println("NovaRetail Customer Intelligence Dashboard")
	fmt.Println()

	fmt.Println("KPIs")
	fmt.Printf("  Total Revenue:                 %s\n", money.NewFromDecimal(r.KPIs.TotalRevenue, currency).Display())
	if r.KPIs.AveragePurchase != nil {
		fmt.Printf("  Average Purchase Amount:       %s\n", money.NewFromDecimal(*r.KPIs.AveragePurchase, currency).Display())
	} else {
		fmt.Printf("  Average Purchase Amount:       N/A\n")
	}
	fmt.Printf("  Total Transactions:            %d\n", r.KPIs.TransactionCount)
	if r.KPIs.AverageSatisfaction != nil {
		fmt.Printf("  Average Customer Satisfaction: %.2f\n", *r.KPIs.AverageSatisfaction)
	} else {
		fmt.Printf("  Average Customer Satisfaction: N/A\n")
	}

	printGroupTable("Revenue by Segment", r.RevenueBySegment, currency)
	printGroupTable("Revenue by Channel", r.RevenueByChannel, currency)
	printGroupTable("Revenue by Product Category", r.RevenueByCategory, currency)
	printGroupTable("Revenue by Region", r.RevenueByRegion, currency)

	fmt.Println()
	fmt.Println("Monthly Revenue Trend")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, m := range r.MonthlyTrend {
		fmt.Fprintf(w, "  %s\t%s\n", m.Month.Format("2006-01"), money.NewFromDecimal(m.Revenue, currency).Display())
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Strategic Insights")
	for _, s := range r.Insights {
		fmt.Printf("  - %s\n", s)
	}
	fmt.Println()
	fmt.Println("Recommended Strategic Actions")
	for i, a := range r.Actions {
		fmt.Printf("  %d. %s\n", i+1, a)
	}

	if showRows {
		fmt.Println()
		fmt.Printf("Filtered Dataset (%d rows)\n", len(r.Rows))
		rw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(rw, "  label\tregion\tcategory\tchannel\tamount\tdate")
		for _, row := range r.Rows {
			date := ""
			if row.Date != nil {
				date = row.Date.Format("2006-01-02")
			}
			fmt.Fprintf(rw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				row.Label, row.Region, row.Category, row.Channel, row.Amount.StringFixed(2), date)
		}
		rw.Flush()
	}
}

func printGroupTable(title string, totals []analytics.GroupTotal, currency string) {
	fmt.Println()
	fmt.Println(title)
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, t := range totals {
		fmt.Fprintf(w, "  %s\t%s\n", t.Key, money.NewFromDecimal(t.Revenue, currency).Display())
	}
	w.Flush()
}

func exportCSV(r *dashboard.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	return gocsv.Marshal(r.Rows, f)
}
