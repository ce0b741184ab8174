package cleaner

import (
	"time"

	"fjacquet/salesclean/internal/models"
	"fjacquet/salesclean/internal/stats"

	"github.com/shopspring/decimal"
)

// Outlier identifies a record whose sales amount lies outside the IQR fences.
type Outlier struct {
	SourceRow   int             `json:"source_row" yaml:"source_row"`
	Date        time.Time       `json:"date" yaml:"date"`
	SalesAmount decimal.Decimal `json:"sales_amount" yaml:"sales_amount"`
}

// OutlierReport is advisory: flagged records stay in the cleaned set.
type OutlierReport struct {
	// Computed is false when there were no records to measure.
	Computed   bool            `json:"computed" yaml:"computed"`
	Multiplier float64         `json:"multiplier" yaml:"multiplier"`
	Bounds     stats.IQRBounds `json:"bounds" yaml:"bounds"`
	Count      int             `json:"count" yaml:"count"`
	Flagged    []Outlier       `json:"flagged,omitempty" yaml:"flagged,omitempty"`
}

// DetectOutliers flags records with sales_amount < Q1-k*IQR or > Q3+k*IQR,
// using type-7 quartiles over the given records.
func DetectOutliers(records []models.SalesRecord, k float64) OutlierReport {
	report := OutlierReport{Multiplier: k}

	amounts := make([]float64, len(records))
	for i, r := range records {
		amounts[i] = r.SalesAmountFloat()
	}

	bounds, ok := stats.NewIQRBounds(amounts, k)
	if !ok {
		return report
	}
	report.Computed = true
	report.Bounds = bounds

	for i, r := range records {
		if bounds.Outside(amounts[i]) {
			report.Flagged = append(report.Flagged, Outlier{
				SourceRow:   r.SourceRow,
				Date:        r.Date,
				SalesAmount: r.SalesAmount,
			})
		}
	}
	report.Count = len(report.Flagged)
	return report
}
