// Package container provides dependency injection for the salesclean application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/salesclean/internal/analysis"
	"fjacquet/salesclean/internal/cleaner"
	"fjacquet/salesclean/internal/common"
	"fjacquet/salesclean/internal/config"
	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/report"
)

// Container holds all application dependencies and provides methods to access them.
// Container is immutable after creation.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	csv      *common.SalesCSV
	cleaner  *cleaner.Cleaner
	pipeline *cleaner.Pipeline
	analyzer *analysis.Analyzer
	reports  *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies with a logger
// built from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLogging(cfg))
}

// NewContainerWithLogger wires all dependencies around the given logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if _, err := common.LookupEncoding(cfg.CSV.Encoding); err != nil {
		return nil, fmt.Errorf("failed to configure CSV input: %w", err)
	}

	csvIO := common.NewSalesCSV(common.CSVOptions{
		Delimiter:       cfg.Delimiter(),
		Encoding:        cfg.CSV.Encoding,
		CreateOutputDir: cfg.CSV.CreateOutputDir,
	}, logger)

	salesCleaner := cleaner.NewCleaner(cleaner.Options{
		OutlierMultiplier: cfg.Cleaning.OutlierMultiplier,
	}, logger)

	return &Container{
		logger:   logger,
		config:   cfg,
		csv:      csvIO,
		cleaner:  salesCleaner,
		pipeline: cleaner.NewPipeline(csvIO, csvIO, salesCleaner, logger),
		analyzer: analysis.NewAnalyzer(logger),
		reports:  report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the application logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetSalesCSV returns the CSV reader/writer.
func (c *Container) GetSalesCSV() *common.SalesCSV {
	return c.csv
}

// GetCleaner returns the configured cleaner.
func (c *Container) GetCleaner() *cleaner.Cleaner {
	return c.cleaner
}

// GetPipeline returns the file-to-file cleaning pipeline.
func (c *Container) GetPipeline() *cleaner.Pipeline {
	return c.pipeline
}

// GetAnalyzer returns the sales analyzer.
func (c *Container) GetAnalyzer() *analysis.Analyzer {
	return c.analyzer
}

// GetReportGenerator returns the summary renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetTableWriter returns the analysis table writer for format.
func (c *Container) GetTableWriter(format string) (analysis.TableWriter, error) {
	return analysis.NewTableWriter(format, c.csv, c.logger)
}
