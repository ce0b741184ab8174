package analysis

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"fjacquet/salesclean/internal/dateutils"
	"fjacquet/salesclean/internal/stats"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Table names, also used as file and sheet names.
const (
	TableKPIs         = "kpis"
	TableRegions      = "regional_analysis"
	TableCategories   = "category_analysis"
	TableReps         = "rep_analysis"
	TableMonthly      = "monthly_analysis"
	TableWeekdays     = "weekday_analysis"
	TableDistribution = "distribution_summary"
	TableCorrelation  = "correlation_matrix"
)

// Table is a rendered result: Rows[0] is the header.
type Table struct {
	Name string
	Rows [][]string
}

type kpiRow struct {
	Metric string `csv:"Metric"`
	Value  string `csv:"Value"`
}

type regionRow struct {
	Region          string `csv:"region"`
	TotalSales      string `csv:"Total Sales"`
	AvgTransaction  string `csv:"Avg Transaction"`
	NumTransactions int    `csv:"Num Transactions"`
	TotalUnits      int64  `csv:"Total Units"`
	UniqueCustomers int    `csv:"Unique Customers"`
	MarketShare     string `csv:"Market Share %"`
}

type categoryRow struct {
	ProductCategory     string `csv:"product_category"`
	TotalSales          string `csv:"Total Sales"`
	AvgTransaction      string `csv:"Avg Transaction"`
	NumTransactions     int    `csv:"Num Transactions"`
	TotalUnits          int64  `csv:"Total Units"`
	AvgUnitPrice        string `csv:"Avg Unit Price"`
	RevenueContribution string `csv:"Revenue Contribution %"`
}

type repRow struct {
	SalesRep         string `csv:"sales_rep"`
	TotalSales       string `csv:"Total Sales"`
	AvgSale          string `csv:"Avg Sale"`
	NumSales         int    `csv:"Num Sales"`
	UniqueCustomers  int    `csv:"Unique Customers"`
	SalesPerCustomer string `csv:"Sales per Customer"`
}

type monthRow struct {
	Month           string `csv:"month"`
	TotalSales      string `csv:"Total Sales"`
	AvgTransaction  string `csv:"Avg Transaction"`
	NumTransactions int    `csv:"Num Transactions"`
	Growth          string `csv:"Growth %"`
}

type weekdayRow struct {
	DayOfWeek       string `csv:"day_of_week"`
	TotalSales      string `csv:"Total Sales"`
	AvgTransaction  string `csv:"Avg Transaction"`
	NumTransactions int    `csv:"Num Transactions"`
}

type distributionRow struct {
	Statistic   string `csv:"statistic"`
	SalesAmount string `csv:"sales_amount"`
	UnitsSold   string `csv:"units_sold"`
}

// Tables renders every aggregation of a. Figures are rounded to two places,
// correlations to three; undefined values are empty cells.
func Tables(a *Analysis) ([]Table, error) {
	builders := []func(*Analysis) (Table, error){
		kpiTable, regionTable, categoryTable, repTable,
		monthTable, weekdayTable, distributionTable,
	}
	tables := make([]Table, 0, len(builders)+1)
	for _, build := range builders {
		t, err := build(a)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return append(tables, correlationTable(a)), nil
}

func kpiTable(a *Analysis) (Table, error) {
	k := a.KPIs
	dateRange := ""
	if k.MinDate != nil && k.MaxDate != nil {
		dateRange = dateutils.FormatDate(*k.MinDate) + " to " + dateutils.FormatDate(*k.MaxDate)
	}
	rows := []kpiRow{
		{"Total Revenue", k.TotalRevenue.StringFixed(2)},
		{"Average Transaction Value", k.MeanTransaction.StringFixed(2)},
		{"Median Transaction Value", round(k.MedianTransaction, 2)},
		{"Total Units Sold", strconv.FormatInt(k.TotalUnits, 10)},
		{"Number of Transactions", strconv.Itoa(k.Transactions)},
		{"Number of Unique Customers", strconv.Itoa(k.UniqueCustomers)},
		{"Average Units per Transaction", round(k.MeanUnits, 2)},
		{"Date Range", dateRange},
	}
	return marshalTable(TableKPIs, rows)
}

func regionTable(a *Analysis) (Table, error) {
	total := totalOf(a.Regions)
	rows := make([]regionRow, 0, len(a.Regions))
	for _, g := range a.Regions {
		rows = append(rows, regionRow{
			Region:          g.Key,
			TotalSales:      g.TotalSales.StringFixed(2),
			AvgTransaction:  g.MeanSales().StringFixed(2),
			NumTransactions: g.Count,
			TotalUnits:      g.TotalUnits,
			UniqueCustomers: g.UniqueCustomers(),
			MarketShare:     round(g.ShareOf(total), 2),
		})
	}
	return marshalTable(TableRegions, rows)
}

func categoryTable(a *Analysis) (Table, error) {
	total := totalOf(a.Categories)
	rows := make([]categoryRow, 0, len(a.Categories))
	for _, g := range a.Categories {
		rows = append(rows, categoryRow{
			ProductCategory:     g.Key,
			TotalSales:          g.TotalSales.StringFixed(2),
			AvgTransaction:      g.MeanSales().StringFixed(2),
			NumTransactions:     g.Count,
			TotalUnits:          g.TotalUnits,
			AvgUnitPrice:        round(g.MeanUnitPrice(), 2),
			RevenueContribution: round(g.ShareOf(total), 2),
		})
	}
	return marshalTable(TableCategories, rows)
}

func repTable(a *Analysis) (Table, error) {
	rows := make([]repRow, 0, len(a.Reps))
	for _, g := range a.Reps {
		perCustomer := ""
		if v, ok := g.SalesPerCustomer(); ok {
			perCustomer = round(v, 2)
		}
		rows = append(rows, repRow{
			SalesRep:         g.Key,
			TotalSales:       g.TotalSales.StringFixed(2),
			AvgSale:          g.MeanSales().StringFixed(2),
			NumSales:         g.Count,
			UniqueCustomers:  g.UniqueCustomers(),
			SalesPerCustomer: perCustomer,
		})
	}
	return marshalTable(TableReps, rows)
}

func monthTable(a *Analysis) (Table, error) {
	rows := make([]monthRow, 0, len(a.Months))
	for _, m := range a.Months {
		growth := ""
		if m.GrowthPct != nil {
			growth = round(*m.GrowthPct, 2)
		}
		rows = append(rows, monthRow{
			Month:           fmt.Sprintf("%s %d", m.Month, m.Year),
			TotalSales:      m.TotalSales.StringFixed(2),
			AvgTransaction:  m.MeanSales().StringFixed(2),
			NumTransactions: m.Count,
			Growth:          growth,
		})
	}
	return marshalTable(TableMonthly, rows)
}

func weekdayTable(a *Analysis) (Table, error) {
	rows := make([]weekdayRow, 0, len(a.Weekdays))
	for _, g := range a.Weekdays {
		rows = append(rows, weekdayRow{
			DayOfWeek:       g.Key,
			TotalSales:      g.TotalSales.StringFixed(2),
			AvgTransaction:  g.MeanSales().StringFixed(2),
			NumTransactions: g.Count,
		})
	}
	return marshalTable(TableWeekdays, rows)
}

func distributionTable(a *Analysis) (Table, error) {
	line := func(name string, pick func(stats.Summary) float64) distributionRow {
		return distributionRow{Statistic: name, SalesAmount: round(pick(a.SalesAmount), 2), UnitsSold: round(pick(a.UnitsSold), 2)}
	}
	rows := []distributionRow{
		line("count", func(s stats.Summary) float64 { return float64(s.Count) }),
		line("mean", func(s stats.Summary) float64 { return s.Mean }),
		line("std", func(s stats.Summary) float64 { return s.Std }),
		line("min", func(s stats.Summary) float64 { return s.Min }),
		line("25%", func(s stats.Summary) float64 { return s.Q25 }),
		line("50%", func(s stats.Summary) float64 { return s.Median }),
		line("75%", func(s stats.Summary) float64 { return s.Q75 }),
		line("max", func(s stats.Summary) float64 { return s.Max }),
	}
	return marshalTable(TableDistribution, rows)
}

// correlationTable has a dynamic column set, so it is built without gocsv.
func correlationTable(a *Analysis) Table {
	header := append([]string{""}, CorrelationColumns...)
	rows := [][]string{header}
	for i, name := range CorrelationColumns {
		row := []string{name}
		for j := range CorrelationColumns {
			v := math.NaN()
			if i < len(a.Correlation) && j < len(a.Correlation[i]) {
				v = a.Correlation[i][j]
			}
			row = append(row, round(v, 3))
		}
		rows = append(rows, row)
	}
	return Table{Name: TableCorrelation, Rows: rows}
}

func totalOf(groups []*GroupStats) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.TotalSales)
	}
	return total
}

// round formats v with fixed places; NaN and infinities render empty.
func round(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// marshalTable lets the csv struct tags define the column order of every format.
func marshalTable[TRow any](name string, rows []TRow) (Table, error) {
	content, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return Table{}, fmt.Errorf("failed to render table %s: %w", name, err)
	}
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to render table %s: %w", name, err)
	}
	return Table{Name: name, Rows: records}, nil
}
