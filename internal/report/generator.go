// Package report renders the cleaning summary for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/salesclean/internal/cleaner"
	"fjacquet/salesclean/internal/dateutils"
	"fjacquet/salesclean/internal/fileutils"
	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/models"
	"fjacquet/salesclean/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// Supported summary formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists every format GenerateReport accepts.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

const labelWidth = 36

// ReportGenerator renders a cleaning Result in the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger}
}

// ValidateFormat rejects formats GenerateReport cannot render. An empty format
// means text.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatYAML, "yml", "":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateReport renders result as text, json or yaml.
func (g *ReportGenerator) GenerateReport(result *cleaner.Result, format string) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no cleaning result to report")
	}
	switch strings.ToLower(format) {
	case FormatText, "":
		return g.generateTextReport(result), nil
	case FormatJSON:
		return g.generateJSONReport(result)
	case FormatYAML, "yml":
		return g.generateYAMLReport(result)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport renders result to w and, when filePath is set, to that file too.
func (g *ReportGenerator) WriteReport(w io.Writer, result *cleaner.Result, format, filePath string) error {
	content, err := g.GenerateReport(result, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if filePath == "" {
		return nil
	}
	opts := fileutils.AtomicWriteOptions{
		DirPerm:  models.PermissionDirectory,
		FilePerm: models.PermissionOutputFile,
	}
	err = fileutils.AtomicWrite(filePath, opts, func(w io.Writer) error {
		_, werr := w.Write(content)
		return werr
	})
	if err != nil {
		g.logger.WithError(err).Error("Failed to save report",
			logging.F(logging.FieldOutputFile, filePath))
		return &parsererror.OutputWriteError{FilePath: filePath, Err: err}
	}
	g.logger.Debug("Saved report",
		logging.F(logging.FieldOutputFile, filePath),
		logging.F(logging.FieldFormat, format))
	return nil
}

func (g *ReportGenerator) generateJSONReport(result *cleaner.Result) ([]byte, error) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(result *cleaner.Result) ([]byte, error) {
	out, err := yaml.Marshal(result)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateTextReport(result *cleaner.Result) []byte {
	q := result.Quality
	o := result.Outliers

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "DATA QUALITY SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Loaded %d raw records\n", q.InputRows)
	fmt.Fprintf(&b, "After cleaning: %d records\n", q.OutputRows)
	if q.MinDate != nil && q.MaxDate != nil {
		fmt.Fprintf(&b, "Date range: %s to %s\n", dateutils.FormatDate(*q.MinDate), dateutils.FormatDate(*q.MaxDate))
	} else {
		fmt.Fprintln(&b, "Date range: n/a")
	}
	fmt.Fprintln(&b)

	dotted(&b, "Removed rows", fmt.Sprintf("%d of %d (%.2f%%)", q.RemovedRows, q.InputRows, q.RemovedPercent))
	dotted(&b, "  Duplicates", fmt.Sprint(q.DuplicatesRemoved))
	dotted(&b, "  Missing required fields", fmt.Sprint(q.MissingRemoved))
	dotted(&b, "  Non-positive amount or units", fmt.Sprint(q.NonPositiveRemoved))
	dotted(&b, "Unparseable cells", fmt.Sprint(q.ParseFailures))
	dotted(&b, "Total sales", q.TotalSales.StringFixed(2))
	dotted(&b, "Average sale", q.MeanSales.StringFixed(2))
	dotted(&b, "Distinct regions", fmt.Sprint(q.DistinctRegions))
	dotted(&b, "Distinct product categories", fmt.Sprint(q.DistinctCategories))
	dotted(&b, "Distinct sales reps", fmt.Sprint(q.DistinctSalesReps))

	fmt.Fprintln(&b)
	if !o.Computed {
		fmt.Fprintln(&b, "Outliers: not computed (no records)")
		return []byte(b.String())
	}
	fmt.Fprintf(&b, "Outliers in sales_amount (IQR x %.2f): %d flagged\n", o.Multiplier, o.Count)
	dotted(&b, "  Q1 / Q3", fmt.Sprintf("%.2f / %.2f", o.Bounds.Q1, o.Bounds.Q3))
	dotted(&b, "  Bounds", fmt.Sprintf("[%.2f, %.2f]", o.Bounds.Lower, o.Bounds.Upper))
	for _, f := range o.Flagged {
		fmt.Fprintf(&b, "  row %d  %s  %s\n", f.SourceRow, dateutils.FormatDate(f.Date), f.SalesAmount.StringFixed(2))
	}
	return []byte(b.String())
}

// dotted writes "label....... value" with the label padded by dots.
func dotted(b *strings.Builder, label, value string) {
	pad := labelWidth - len(label)
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(b, "%s%s %s\n", label, strings.Repeat(".", pad), value)
}
