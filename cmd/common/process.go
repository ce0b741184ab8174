// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/salesclean/internal/analysis"
	"fjacquet/salesclean/internal/cleaner"
	"fjacquet/salesclean/internal/container"
	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/parsererror"
	"fjacquet/salesclean/internal/report"

	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitError          = 1
	ExitInputNotFound  = 2
	ExitSchemaMismatch = 3
	ExitOutputWrite    = 4
)

// CleanFlags are the flags of a cleaning run.
type CleanFlags struct {
	SummaryFormat string
	SummaryFile   string
}

// AddCleanFlags registers the cleaning flags on cmd.
func AddCleanFlags(cmd *cobra.Command, flags *CleanFlags) {
	cmd.Flags().StringVar(&flags.SummaryFormat, "summary-format", "",
		fmt.Sprintf("Summary format: %s (default from config)", strings.Join(report.Formats, ", ")))
	cmd.Flags().StringVar(&flags.SummaryFile, "summary-file", "", "Also write the summary to this file")
}

// ResolvePaths picks input and output from positional args, then flags, then
// the configured defaults.
func ResolvePaths(args []string, flagInput, flagOutput, defaultInput, defaultOutput string) (string, string) {
	input, output := defaultInput, defaultOutput
	if flagInput != "" {
		input = flagInput
	}
	if flagOutput != "" {
		output = flagOutput
	}
	if len(args) > 0 && args[0] != "" {
		input = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		output = args[1]
	}
	return input, output
}

// ProcessFile cleans inputFile into outputFile and writes the quality summary to out.
func ProcessFile(c *container.Container, inputFile, outputFile string, flags CleanFlags, out io.Writer) (*cleaner.Result, error) {
	log := c.GetLogger()
	start := time.Now()

	format := flags.SummaryFormat
	if format == "" {
		format = c.GetConfig().Report.SummaryFormat
	}
	if err := report.ValidateFormat(format); err != nil {
		return nil, err
	}

	result, err := c.GetPipeline().Run(inputFile, outputFile)
	if err != nil {
		return nil, err
	}
	if err := c.GetReportGenerator().WriteReport(out, result, format, flags.SummaryFile); err != nil {
		return result, err
	}

	log.Info("Cleaning run finished",
		logging.F(logging.FieldOutputFile, outputFile),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return result, nil
}

// AnalyzeFile aggregates a cleaned file into tables under outputDir and prints
// the KPIs to out. It returns the paths written.
func AnalyzeFile(c *container.Container, inputFile, outputDir, format string, out io.Writer) ([]string, error) {
	records, err := c.GetSalesCSV().ReadCleanedSales(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error reading cleaned sales: %w", err)
	}

	writer, err := c.GetTableWriter(format)
	if err != nil {
		return nil, err
	}

	result := c.GetAnalyzer().Analyze(records)
	tables, err := analysis.Tables(result)
	if err != nil {
		return nil, err
	}

	paths, err := writer.WriteTables(outputDir, tables)
	if err != nil {
		return paths, fmt.Errorf("error writing analysis tables: %w", err)
	}

	if err := printKPIs(out, tables[0]); err != nil {
		return paths, err
	}
	for _, p := range paths {
		if _, err := fmt.Fprintf(out, "Saved %s\n", p); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

func printKPIs(out io.Writer, kpis analysis.Table) error {
	if _, err := fmt.Fprintln(out, "KEY PERFORMANCE INDICATORS (KPIs)"); err != nil {
		return err
	}
	for _, row := range kpis.Rows[1:] {
		if _, err := fmt.Fprintf(out, "%-40s %s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, parsererror.ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, parsererror.ErrSchemaMismatch):
		return ExitSchemaMismatch
	case errors.Is(err, parsererror.ErrOutputWrite):
		return ExitOutputWrite
	default:
		return ExitError
	}
}
