package cleaner

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/salesclean/internal/dateutils"
	"fjacquet/salesclean/internal/models"
	"fjacquet/salesclean/internal/parsererror"

	"github.com/shopspring/decimal"
)

// missingMarkers are treated like an empty cell, the same set pandas reads as NA.
var missingMarkers = map[string]bool{
	"":        true,
	"NA":      true,
	"N/A":     true,
	"n/a":     true,
	"#N/A":    true,
	"<NA>":    true,
	"NaN":     true,
	"nan":     true,
	"-NaN":    true,
	"-nan":    true,
	"NULL":    true,
	"null":    true,
	"None":    true,
	"#NA":     true,
	"-1.#IND": true,
	"1.#QNAN": true,
}

// IsMissing reports whether a raw cell carries no value.
func IsMissing(cell string) bool {
	return missingMarkers[strings.TrimSpace(cell)]
}

// parsedRow is a raw row with its typed fields. A nil pointer means missing,
// either because the cell was empty or because it failed to parse.
type parsedRow struct {
	raw      models.RawSalesRow
	row      int
	date     *time.Time
	amount   *decimal.Decimal
	units    *int64
	failures []*parsererror.ParseError
}

func (p parsedRow) complete() bool {
	return p.date != nil && p.amount != nil && p.units != nil &&
		!IsMissing(p.raw.Region) && !IsMissing(p.raw.ProductCategory)
}

func (p parsedRow) positive() bool {
	return p.amount.IsPositive() && *p.units > 0
}

// parseRow converts the typed cells of raw. Unparseable cells are returned as
// ParseErrors and left missing on the row.
func parseRow(raw models.RawSalesRow, row int) parsedRow {
	p := parsedRow{raw: raw, row: row}
	var failures []*parsererror.ParseError

	if !IsMissing(raw.Date) {
		if t, _, err := dateutils.ParseDate(raw.Date); err == nil {
			p.date = &t
		} else {
			failures = append(failures, &parsererror.ParseError{Row: row, Field: models.ColDate, Value: raw.Date, Err: err})
		}
	}

	if !IsMissing(raw.SalesAmount) {
		if d, err := decimal.NewFromString(strings.TrimSpace(raw.SalesAmount)); err == nil {
			p.amount = &d
		} else {
			failures = append(failures, &parsererror.ParseError{Row: row, Field: models.ColSalesAmount, Value: raw.SalesAmount, Err: err})
		}
	}

	if !IsMissing(raw.UnitsSold) {
		if n, err := parseUnits(raw.UnitsSold); err == nil {
			p.units = &n
		} else {
			failures = append(failures, &parsererror.ParseError{Row: row, Field: models.ColUnitsSold, Value: raw.UnitsSold, Err: err})
		}
	}

	p.failures = failures
	return p
}

// parseUnits accepts integers and integral decimals such as "3.0".
func parseUnits(cell string) (int64, error) {
	cell = strings.TrimSpace(cell)
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("not a whole number")
	}
	return d.IntPart(), nil
}

// optionalText blanks pure missing markers in non-critical text columns.
func optionalText(cell string) string {
	if IsMissing(cell) {
		return ""
	}
	return strings.TrimSpace(cell)
}
