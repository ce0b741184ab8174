// Package analysis aggregates cleaned sales records into KPI and breakdown tables.
package analysis

import (
	"sort"
	"time"

	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/models"
	"fjacquet/salesclean/internal/stats"

	"github.com/shopspring/decimal"
)

// KPIs are the headline figures over the whole cleaned set.
type KPIs struct {
	TotalRevenue      decimal.Decimal
	MeanTransaction   decimal.Decimal
	MedianTransaction float64
	TotalUnits        int64
	Transactions      int
	UniqueCustomers   int
	MeanUnits         float64
	MinDate           *time.Time
	MaxDate           *time.Time
}

// GroupStats accumulates the records sharing one group key.
type GroupStats struct {
	Key        string
	TotalSales decimal.Decimal
	Count      int
	TotalUnits int64

	customers    map[string]struct{}
	unitPriceSum float64
}

func newGroupStats(key string) *GroupStats {
	return &GroupStats{Key: key, customers: map[string]struct{}{}}
}

func (g *GroupStats) add(r models.SalesRecord) {
	g.TotalSales = g.TotalSales.Add(r.SalesAmount)
	g.Count++
	g.TotalUnits += r.UnitsSold
	g.unitPriceSum += r.UnitPriceFloat()
	if r.CustomerID != "" {
		g.customers[r.CustomerID] = struct{}{}
	}
}

// MeanSales is the average sales amount per record.
func (g *GroupStats) MeanSales() decimal.Decimal {
	if g.Count == 0 {
		return decimal.Zero
	}
	return g.TotalSales.Div(decimal.NewFromInt(int64(g.Count)))
}

// MeanUnitPrice is the average of the per-record unit prices.
func (g *GroupStats) MeanUnitPrice() float64 {
	if g.Count == 0 {
		return 0
	}
	return g.unitPriceSum / float64(g.Count)
}

// UniqueCustomers counts distinct non-empty customer IDs.
func (g *GroupStats) UniqueCustomers() int {
	return len(g.customers)
}

// ShareOf is this group's percentage of total. Zero when total is zero.
func (g *GroupStats) ShareOf(total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return g.TotalSales.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// SalesPerCustomer is TotalSales over UniqueCustomers; ok is false without customers.
func (g *GroupStats) SalesPerCustomer() (float64, bool) {
	if len(g.customers) == 0 {
		return 0, false
	}
	return g.TotalSales.InexactFloat64() / float64(len(g.customers)), true
}

// MonthStats is one calendar month with its change over the previous month.
type MonthStats struct {
	*GroupStats
	Year  int
	Month time.Month
	// GrowthPct is nil for the first month or when the previous total is zero.
	GrowthPct *float64
}

// Analysis holds every aggregation computed over a cleaned set.
type Analysis struct {
	KPIs        KPIs
	Regions     []*GroupStats
	Categories  []*GroupStats
	Reps        []*GroupStats
	Months      []MonthStats
	Weekdays    []*GroupStats
	SalesAmount stats.Summary
	UnitsSold   stats.Summary
	// Correlation is the Pearson matrix over CorrelationColumns.
	Correlation [][]float64
}

// CorrelationColumns are the numeric columns of the correlation matrix, in order.
var CorrelationColumns = []string{models.ColSalesAmount, models.ColUnitsSold, models.ColUnitPrice}

// Analyzer computes an Analysis from cleaned records.
type Analyzer struct {
	logger logging.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Analyzer{logger: logger}
}

// Analyze aggregates records. An empty input yields empty tables and zero KPIs.
func (a *Analyzer) Analyze(records []models.SalesRecord) *Analysis {
	result := &Analysis{
		KPIs:       computeKPIs(records),
		Regions:    byTotalDesc(groupBy(records, func(r models.SalesRecord) string { return r.Region })),
		Categories: byTotalDesc(groupBy(records, func(r models.SalesRecord) string { return r.ProductCategory })),
		Reps:       byTotalDesc(groupBy(records, func(r models.SalesRecord) string { return r.SalesRep })),
		Months:     monthly(records),
		Weekdays:   weekdays(records),
	}

	amounts := make([]float64, len(records))
	units := make([]float64, len(records))
	prices := make([]float64, len(records))
	for i, r := range records {
		amounts[i] = r.SalesAmountFloat()
		units[i] = float64(r.UnitsSold)
		prices[i] = r.UnitPriceFloat()
	}
	result.SalesAmount = stats.Describe(amounts)
	result.UnitsSold = stats.Describe(units)
	result.Correlation = stats.CorrelationMatrix([][]float64{amounts, units, prices})

	a.logger.Info("Analysis completed",
		logging.F(logging.FieldCount, len(records)),
		logging.F("regions", len(result.Regions)),
		logging.F("categories", len(result.Categories)),
		logging.F("months", len(result.Months)))
	return result
}

func computeKPIs(records []models.SalesRecord) KPIs {
	k := KPIs{Transactions: len(records)}
	if len(records) == 0 {
		return k
	}

	amounts := make([]float64, len(records))
	customers := map[string]struct{}{}
	minDate, maxDate := records[0].Date, records[0].Date
	for i, r := range records {
		k.TotalRevenue = k.TotalRevenue.Add(r.SalesAmount)
		k.TotalUnits += r.UnitsSold
		amounts[i] = r.SalesAmountFloat()
		if r.CustomerID != "" {
			customers[r.CustomerID] = struct{}{}
		}
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	n := int64(len(records))
	k.MeanTransaction = k.TotalRevenue.Div(decimal.NewFromInt(n))
	k.MedianTransaction = stats.Median(amounts)
	k.UniqueCustomers = len(customers)
	k.MeanUnits = float64(k.TotalUnits) / float64(n)
	k.MinDate, k.MaxDate = &minDate, &maxDate
	return k
}

// groupBy accumulates records per key in first-appearance order. Empty keys are
// skipped, the same way a missing group value is.
func groupBy(records []models.SalesRecord, key func(models.SalesRecord) string) []*GroupStats {
	groups := map[string]*GroupStats{}
	var order []*GroupStats
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = newGroupStats(k)
			groups[k] = g
			order = append(order, g)
		}
		g.add(r)
	}
	return order
}

func byTotalDesc(groups []*GroupStats) []*GroupStats {
	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].TotalSales.Cmp(groups[j].TotalSales); c != 0 {
			return c > 0
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func monthly(records []models.SalesRecord) []MonthStats {
	groups := map[string]*MonthStats{}
	var months []MonthStats
	var keys []string
	for _, r := range records {
		k := r.Date.Format("2006-01")
		m, ok := groups[k]
		if !ok {
			m = &MonthStats{GroupStats: newGroupStats(k), Year: r.Date.Year(), Month: r.Date.Month()}
			groups[k] = m
			keys = append(keys, k)
		}
		m.add(r)
	}
	// "2006-01" keys sort chronologically.
	sort.Strings(keys)

	for i, k := range keys {
		m := *groups[k]
		if i > 0 {
			prev := months[i-1].TotalSales
			if !prev.IsZero() {
				g := m.TotalSales.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).InexactFloat64()
				m.GrowthPct = &g
			}
		}
		months = append(months, m)
	}
	return months
}

func weekdays(records []models.SalesRecord) []*GroupStats {
	groups := groupBy(records, func(r models.SalesRecord) string { return r.Date.Weekday().String() })
	sort.SliceStable(groups, func(i, j int) bool {
		return mondayFirst(groups[i].Key) < mondayFirst(groups[j].Key)
	})
	return groups
}

var weekdayIndex = map[string]int{
	time.Monday.String():    0,
	time.Tuesday.String():   1,
	time.Wednesday.String(): 2,
	time.Thursday.String():  3,
	time.Friday.String():    4,
	time.Saturday.String():  5,
	time.Sunday.String():    6,
}

func mondayFirst(day string) int {
	return weekdayIndex[day]
}
