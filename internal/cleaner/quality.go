package cleaner

import (
	"time"

	"fjacquet/salesclean/internal/models"

	"github.com/shopspring/decimal"
)

// QualityReport summarizes what cleaning did to the dataset.
type QualityReport struct {
	InputRows          int     `json:"input_rows" yaml:"input_rows"`
	OutputRows         int     `json:"output_rows" yaml:"output_rows"`
	RemovedRows        int     `json:"removed_rows" yaml:"removed_rows"`
	RemovedPercent     float64 `json:"removed_percent" yaml:"removed_percent"`
	DuplicatesRemoved  int     `json:"duplicates_removed" yaml:"duplicates_removed"`
	MissingRemoved     int     `json:"missing_removed" yaml:"missing_removed"`
	NonPositiveRemoved int     `json:"non_positive_removed" yaml:"non_positive_removed"`
	ParseFailures      int     `json:"parse_failures" yaml:"parse_failures"`

	// MinDate and MaxDate are nil when no record survived.
	MinDate *time.Time `json:"min_date,omitempty" yaml:"min_date,omitempty"`
	MaxDate *time.Time `json:"max_date,omitempty" yaml:"max_date,omitempty"`

	TotalSales decimal.Decimal `json:"total_sales" yaml:"total_sales"`
	MeanSales  decimal.Decimal `json:"mean_sales" yaml:"mean_sales"`

	DistinctRegions    int `json:"distinct_regions" yaml:"distinct_regions"`
	DistinctCategories int `json:"distinct_categories" yaml:"distinct_categories"`
	DistinctSalesReps  int `json:"distinct_sales_reps" yaml:"distinct_sales_reps"`
}

// RemovedPercentOf is removed/input*100, defined as 0 for an empty input.
func RemovedPercentOf(removed, input int) float64 {
	if input == 0 {
		return 0
	}
	return float64(removed) / float64(input) * 100
}

// fill computes the output-side metrics from the final sorted records.
func (q *QualityReport) fill(records []models.SalesRecord) {
	q.OutputRows = len(records)
	q.RemovedRows = q.InputRows - q.OutputRows
	q.RemovedPercent = RemovedPercentOf(q.RemovedRows, q.InputRows)

	q.TotalSales = decimal.Zero
	q.MeanSales = decimal.Zero
	if len(records) == 0 {
		return
	}

	minDate, maxDate := records[0].Date, records[0].Date
	regions := map[string]struct{}{}
	categories := map[string]struct{}{}
	reps := map[string]struct{}{}
	for _, r := range records {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
		q.TotalSales = q.TotalSales.Add(r.SalesAmount)
		regions[r.Region] = struct{}{}
		categories[r.ProductCategory] = struct{}{}
		if r.SalesRep != "" {
			reps[r.SalesRep] = struct{}{}
		}
	}

	q.MinDate, q.MaxDate = &minDate, &maxDate
	q.MeanSales = q.TotalSales.Div(decimal.NewFromInt(int64(len(records))))
	q.DistinctRegions = len(regions)
	q.DistinctCategories = len(categories)
	q.DistinctSalesReps = len(reps)
}
