package analysis

import (
	"testing"
	"time"

	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(date, region, category string, amount, units int64, customer, rep string) models.SalesRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	r := models.SalesRecord{
		Date:            d,
		Region:          region,
		ProductCategory: category,
		SalesAmount:     decimal.NewFromInt(amount),
		UnitsSold:       units,
		CustomerID:      customer,
		SalesRep:        rep,
	}
	r.Derive()
	return r
}

func fixture() []models.SalesRecord {
	return []models.SalesRecord{
		record("2024-01-01", "NORTH", "Electronics", 100, 2, "C1", "R1"),
		record("2024-01-02", "NORTH", "Office", 50, 1, "C2", "R1"),
		record("2024-02-05", "SOUTH", "Electronics", 300, 3, "C1", "R2"),
		record("2024-02-10", "EAST", "Office", 150, 5, "", ""),
	}
}

func keys(groups []*GroupStats) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

func TestAnalyze_KPIs(t *testing.T) {
	a := NewAnalyzer(logging.NewMockLogger()).Analyze(fixture())
	k := a.KPIs

	assert.True(t, k.TotalRevenue.Equal(decimal.NewFromInt(600)))
	assert.True(t, k.MeanTransaction.Equal(decimal.NewFromInt(150)))
	assert.InDelta(t, 125.0, k.MedianTransaction, 1e-9)
	assert.Equal(t, int64(11), k.TotalUnits)
	assert.Equal(t, 4, k.Transactions)
	assert.Equal(t, 2, k.UniqueCustomers)
	assert.InDelta(t, 2.75, k.MeanUnits, 1e-9)
	require.NotNil(t, k.MinDate)
	assert.Equal(t, "2024-01-01", k.MinDate.Format("2006-01-02"))
	assert.Equal(t, "2024-02-10", k.MaxDate.Format("2006-01-02"))
}

func TestAnalyze_Groups(t *testing.T) {
	a := NewAnalyzer(logging.NewMockLogger()).Analyze(fixture())

	assert.Equal(t, []string{"SOUTH", "EAST", "NORTH"}, keys(a.Regions))
	north := a.Regions[2]
	assert.Equal(t, 2, north.Count)
	assert.Equal(t, int64(3), north.TotalUnits)
	assert.Equal(t, 2, north.UniqueCustomers())
	assert.InDelta(t, 25.0, north.ShareOf(decimal.NewFromInt(600)), 1e-9)

	assert.Equal(t, []string{"Electronics", "Office"}, keys(a.Categories))
	assert.InDelta(t, 75.0, a.Categories[0].MeanUnitPrice(), 1e-9)
	assert.True(t, a.Categories[0].MeanSales().Equal(decimal.NewFromInt(200)))

	assert.Equal(t, []string{"R2", "R1"}, keys(a.Reps), "records without a rep are not grouped")
	perCustomer, ok := a.Reps[1].SalesPerCustomer()
	require.True(t, ok)
	assert.InDelta(t, 75.0, perCustomer, 1e-9)

	assert.Equal(t, []string{"Monday", "Tuesday", "Saturday"}, keys(a.Weekdays))
	assert.True(t, a.Weekdays[0].TotalSales.Equal(decimal.NewFromInt(400)))
}

func TestAnalyze_MonthlyGrowth(t *testing.T) {
	records := append(fixture(), record("2023-12-31", "WEST", "Toys", 200, 1, "C9", "R3"))
	a := NewAnalyzer(logging.NewMockLogger()).Analyze(records)

	require.Len(t, a.Months, 3)
	assert.Equal(t, 2023, a.Months[0].Year)
	assert.Equal(t, time.December, a.Months[0].Month)
	assert.Nil(t, a.Months[0].GrowthPct)

	require.NotNil(t, a.Months[1].GrowthPct)
	assert.InDelta(t, -25.0, *a.Months[1].GrowthPct, 1e-9)
	require.NotNil(t, a.Months[2].GrowthPct)
	assert.InDelta(t, 200.0, *a.Months[2].GrowthPct, 1e-9)
}

func TestAnalyze_Statistics(t *testing.T) {
	a := NewAnalyzer(logging.NewMockLogger()).Analyze(fixture())

	assert.Equal(t, 4, a.SalesAmount.Count)
	assert.InDelta(t, 150.0, a.SalesAmount.Mean, 1e-9)
	assert.InDelta(t, 50.0, a.SalesAmount.Min, 1e-9)
	assert.InDelta(t, 300.0, a.SalesAmount.Max, 1e-9)
	assert.InDelta(t, 2.75, a.UnitsSold.Mean, 1e-9)

	require.Len(t, a.Correlation, len(CorrelationColumns))
	for i := range CorrelationColumns {
		assert.InDelta(t, 1.0, a.Correlation[i][i], 1e-9)
		for j := range CorrelationColumns {
			assert.InDelta(t, a.Correlation[i][j], a.Correlation[j][i], 1e-12)
		}
	}
}

func TestAnalyze_Empty(t *testing.T) {
	a := NewAnalyzer(logging.NewMockLogger()).Analyze(nil)

	assert.Equal(t, 0, a.KPIs.Transactions)
	assert.Nil(t, a.KPIs.MinDate)
	assert.Empty(t, a.Regions)
	assert.Empty(t, a.Months)
	assert.Equal(t, 0, a.SalesAmount.Count)

	tables, err := Tables(a)
	require.NoError(t, err)
	for _, table := range tables {
		assert.NotEmpty(t, table.Rows, table.Name)
	}
}
