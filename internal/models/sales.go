// Package models holds the record types that flow through the cleaning pipeline.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/salesclean/internal/dateutils"

	"github.com/shopspring/decimal"
)

// RawSalesRow is one unvalidated input row, cell text exactly as read.
type RawSalesRow struct {
	Date            string `csv:"date"`
	Region          string `csv:"region"`
	ProductCategory string `csv:"product_category"`
	SalesAmount     string `csv:"sales_amount"`
	UnitsSold       string `csv:"units_sold"`
	CustomerID      string `csv:"customer_id"`
	SalesRep        string `csv:"sales_rep"`
}

// SalesRecord is a row that survived every filter, enriched with derived fields.
type SalesRecord struct {
	Date            time.Time       `json:"date" yaml:"date"`
	Region          string          `json:"region" yaml:"region"`
	ProductCategory string          `json:"product_category" yaml:"product_category"`
	SalesAmount     decimal.Decimal `json:"sales_amount" yaml:"sales_amount"`
	UnitsSold       int64           `json:"units_sold" yaml:"units_sold"`
	CustomerID      string          `json:"customer_id" yaml:"customer_id"`
	SalesRep        string          `json:"sales_rep" yaml:"sales_rep"`

	UnitPrice decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	Year      int             `json:"year" yaml:"year"`
	Month     string          `json:"month" yaml:"month"`
	MonthNum  int             `json:"month_num" yaml:"month_num"`
	Quarter   int             `json:"quarter" yaml:"quarter"`
	Week      int             `json:"week" yaml:"week"`

	// SourceRow is the 1-based data row in the raw file.
	SourceRow int `json:"-" yaml:"-"`
}

// Derive fills UnitPrice and the calendar fields from the base fields.
// UnitsSold must be positive.
func (r *SalesRecord) Derive() {
	r.UnitPrice = r.SalesAmount.Div(decimal.NewFromInt(r.UnitsSold))
	r.Year = r.Date.Year()
	r.Month = dateutils.MonthName(r.Date)
	r.MonthNum = int(r.Date.Month())
	r.Quarter = dateutils.Quarter(r.Date)
	r.Week = dateutils.ISOWeek(r.Date)
}

// SalesAmountFloat is the amount as float64 for statistics.
func (r SalesRecord) SalesAmountFloat() float64 {
	return r.SalesAmount.InexactFloat64()
}

// UnitPriceFloat is the unit price as float64 for statistics.
func (r SalesRecord) UnitPriceFloat() float64 {
	return r.UnitPrice.InexactFloat64()
}

// CleanedSalesRow is the CSV shape of a SalesRecord; field order is output order.
type CleanedSalesRow struct {
	Date            string `csv:"date"`
	Region          string `csv:"region"`
	ProductCategory string `csv:"product_category"`
	SalesAmount     string `csv:"sales_amount"`
	UnitsSold       string `csv:"units_sold"`
	CustomerID      string `csv:"customer_id"`
	SalesRep        string `csv:"sales_rep"`
	UnitPrice       string `csv:"unit_price"`
	Year            string `csv:"year"`
	Month           string `csv:"month"`
	MonthNum        string `csv:"month_num"`
	Quarter         string `csv:"quarter"`
	Week            string `csv:"week"`
}

// ToRow renders the record for CSV output.
func (r SalesRecord) ToRow() CleanedSalesRow {
	return CleanedSalesRow{
		Date:            dateutils.FormatDate(r.Date),
		Region:          r.Region,
		ProductCategory: r.ProductCategory,
		SalesAmount:     r.SalesAmount.String(),
		UnitsSold:       strconv.FormatInt(r.UnitsSold, 10),
		CustomerID:      r.CustomerID,
		SalesRep:        r.SalesRep,
		UnitPrice:       r.UnitPrice.String(),
		Year:            strconv.Itoa(r.Year),
		Month:           r.Month,
		MonthNum:        strconv.Itoa(r.MonthNum),
		Quarter:         strconv.Itoa(r.Quarter),
		Week:            strconv.Itoa(r.Week),
	}
}

// ToRecord parses a previously cleaned row back into a SalesRecord. Derived
// fields are recomputed from the base fields rather than trusted.
func (c CleanedSalesRow) ToRecord() (SalesRecord, error) {
	date, _, err := dateutils.ParseDate(c.Date)
	if err != nil {
		return SalesRecord{}, fmt.Errorf("invalid %s: %w", ColDate, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(c.SalesAmount))
	if err != nil {
		return SalesRecord{}, fmt.Errorf("invalid %s '%s': %w", ColSalesAmount, c.SalesAmount, err)
	}
	units, err := strconv.ParseInt(strings.TrimSpace(c.UnitsSold), 10, 64)
	if err != nil {
		return SalesRecord{}, fmt.Errorf("invalid %s '%s': %w", ColUnitsSold, c.UnitsSold, err)
	}
	if units <= 0 {
		return SalesRecord{}, fmt.Errorf("invalid %s '%s': must be positive", ColUnitsSold, c.UnitsSold)
	}

	rec := SalesRecord{
		Date:            date,
		Region:          c.Region,
		ProductCategory: c.ProductCategory,
		SalesAmount:     amount,
		UnitsSold:       units,
		CustomerID:      c.CustomerID,
		SalesRep:        c.SalesRep,
	}
	rec.Derive()
	return rec, nil
}
