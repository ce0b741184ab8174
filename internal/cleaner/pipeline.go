package cleaner

import (
	"fmt"

	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/models"
)

// SalesSource loads raw rows.
type SalesSource interface {
	ReadRawSales(filePath string) ([]models.RawSalesRow, error)
}

// SalesSink persists cleaned records.
type SalesSink interface {
	WriteCleanedSales(records []models.SalesRecord, filePath string) error
}

// Pipeline binds a Cleaner to its input and output.
type Pipeline struct {
	source  SalesSource
	sink    SalesSink
	cleaner *Cleaner
	logger  logging.Logger
}

// NewPipeline wires a cleaning pipeline.
func NewPipeline(source SalesSource, sink SalesSink, cleaner *Cleaner, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{source: source, sink: sink, cleaner: cleaner, logger: logger}
}

// Run reads inputFile, cleans it and writes outputFile. Any error is fatal for the
// run and nothing is written when reading or validation fails.
func (p *Pipeline) Run(inputFile, outputFile string) (*Result, error) {
	log := p.logger.WithFields(
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldOutputFile, outputFile))
	log.Info("Starting sales data cleaning")

	rows, err := p.source.ReadRawSales(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error reading raw sales: %w", err)
	}

	result := p.cleaner.Clean(rows)

	if err := p.sink.WriteCleanedSales(result.Records, outputFile); err != nil {
		return nil, fmt.Errorf("error writing cleaned sales: %w", err)
	}

	log.Info("Cleaned data saved", logging.F(logging.FieldCount, len(result.Records)))
	return result, nil
}
