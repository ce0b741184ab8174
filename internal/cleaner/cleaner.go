// Package cleaner implements the sales data cleaning pipeline: parse, de-duplicate,
// filter, derive, sort, then measure quality and flag outliers.
package cleaner

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fjacquet/salesclean/internal/dateutils"
	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/models"
	"fjacquet/salesclean/internal/textutils"
)

// DefaultOutlierMultiplier is the Tukey fence width in IQRs.
const DefaultOutlierMultiplier = 1.5

// Options configures a Cleaner.
type Options struct {
	OutlierMultiplier float64
}

// Result is the output of one cleaning run.
type Result struct {
	Records  []models.SalesRecord `json:"-" yaml:"-"`
	Quality  QualityReport        `json:"quality" yaml:"quality"`
	Outliers OutlierReport        `json:"outliers" yaml:"outliers"`
}

// Cleaner applies the cleaning rules to raw rows. It holds no state between runs
// but is not safe for concurrent use.
type Cleaner struct {
	opts       Options
	logger     logging.Logger
	normalizer *textutils.Normalizer
}

// NewCleaner returns a Cleaner. A non-positive multiplier uses the default.
func NewCleaner(opts Options, logger logging.Logger) *Cleaner {
	if opts.OutlierMultiplier <= 0 {
		opts.OutlierMultiplier = DefaultOutlierMultiplier
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Cleaner{
		opts:       opts,
		logger:     logger,
		normalizer: textutils.NewNormalizer(),
	}
}

// Clean runs every stage over rows. Row-level parse failures never abort the run;
// they drop the row in the completeness stage and are counted in the report.
func (c *Cleaner) Clean(rows []models.RawSalesRow) *Result {
	start := time.Now()
	q := QualityReport{InputRows: len(rows)}

	parsed := make([]parsedRow, 0, len(rows))
	for i, raw := range rows {
		parsed = append(parsed, parseRow(raw, i+1))
	}

	parsed, q.DuplicatesRemoved = c.dropDuplicates(parsed)
	c.logStage("dedupe", q.DuplicatesRemoved, len(parsed))

	for _, p := range parsed {
		for _, f := range p.failures {
			c.logger.Debug("Cell treated as missing",
				logging.F(logging.FieldRow, f.Row),
				logging.F(logging.FieldColumn, f.Field),
				logging.F(logging.FieldValue, f.Value),
				logging.F(logging.FieldError, f.Err.Error()))
		}
		q.ParseFailures += len(p.failures)
	}

	parsed, q.MissingRemoved = filterRows(parsed, parsedRow.complete)
	c.logStage("missing", q.MissingRemoved, len(parsed))

	parsed, q.NonPositiveRemoved = filterRows(parsed, parsedRow.positive)
	c.logStage("non_positive", q.NonPositiveRemoved, len(parsed))

	records := make([]models.SalesRecord, 0, len(parsed))
	for _, p := range parsed {
		records = append(records, c.enrich(p))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	q.fill(records)
	outliers := DetectOutliers(records, c.opts.OutlierMultiplier)

	c.logger.Info("Cleaning completed",
		logging.F("input_rows", q.InputRows),
		logging.F("output_rows", q.OutputRows),
		logging.F(logging.FieldRemoved, q.RemovedRows),
		logging.F(logging.FieldOutliers, outliers.Count),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &Result{Records: records, Quality: q, Outliers: outliers}
}

func (c *Cleaner) enrich(p parsedRow) models.SalesRecord {
	rec := models.SalesRecord{
		Date:            *p.date,
		Region:          c.normalizer.Region(p.raw.Region),
		ProductCategory: c.normalizer.Category(p.raw.ProductCategory),
		SalesAmount:     *p.amount,
		UnitsSold:       *p.units,
		CustomerID:      optionalText(p.raw.CustomerID),
		SalesRep:        optionalText(p.raw.SalesRep),
		SourceRow:       p.row,
	}
	rec.Derive()
	return rec
}

func (c *Cleaner) logStage(stage string, removed, remaining int) {
	c.logger.Debug(fmt.Sprintf("Stage %s done", stage),
		logging.F(logging.FieldStage, stage),
		logging.F(logging.FieldRemoved, removed),
		logging.F(logging.FieldCount, remaining))
}

// dropDuplicates keeps the first occurrence of every distinct row. Rows are
// compared on the values they would be written with, so spellings such as
// "100" and "100.0" or "2024-01-05" and "01/05/2024" collapse.
func (c *Cleaner) dropDuplicates(rows []parsedRow) ([]parsedRow, int) {
	seen := make(map[string]struct{}, len(rows))
	kept := make([]parsedRow, 0, len(rows))
	for _, r := range rows {
		key := c.dedupeKey(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	return kept, len(rows) - len(kept)
}

// dedupeKey renders every column as the cleaned file would write it. Cells that failed to parse keep their text;
// missing cells share one marker.
func (c *Cleaner) dedupeKey(p parsedRow) string {
	const missing = "\x00"

	date := cellKey(p.raw.Date, missing)
	if p.date != nil {
		date = dateutils.FormatDate(*p.date)
	}
	amount := cellKey(p.raw.SalesAmount, missing)
	if p.amount != nil {
		amount = p.amount.String()
	}
	units := cellKey(p.raw.UnitsSold, missing)
	if p.units != nil {
		units = strconv.FormatInt(*p.units, 10)
	}

	region, category := missing, missing
	if !IsMissing(p.raw.Region) {
		region = c.normalizer.Region(p.raw.Region)
	}
	if !IsMissing(p.raw.ProductCategory) {
		category = c.normalizer.Category(p.raw.ProductCategory)
	}

	return strings.Join([]string{
		date, region, category, amount, units,
		cellKey(p.raw.CustomerID, missing), cellKey(p.raw.SalesRep, missing),
	}, "\x1f")
}

func cellKey(cell, missing string) string {
	if IsMissing(cell) {
		return missing
	}
	return strings.TrimSpace(cell)
}

func filterRows(rows []parsedRow, keep func(parsedRow) bool) ([]parsedRow, int) {
	kept := make([]parsedRow, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return kept, len(rows) - len(kept)
}
