// Package common provides the CSV input and output shared by the cleaner and the
// analyzer.
package common

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/salesclean/internal/fileutils"
	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/models"
	"fjacquet/salesclean/internal/parsererror"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVOptions configures how files are read and written.
type CSVOptions struct {
	Delimiter rune
	// Encoding of input files: "utf-8" (default), "latin1" or "windows-1252".
	Encoding string
	// CreateOutputDir creates missing parent directories of output files.
	CreateOutputDir bool
}

// DefaultCSVOptions returns comma-delimited UTF-8 with directory creation enabled.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ',', Encoding: "utf-8", CreateOutputDir: true}
}

// SalesCSV reads raw sales files and writes cleaned ones.
type SalesCSV struct {
	opts   CSVOptions
	logger logging.Logger
}

// NewSalesCSV builds a SalesCSV. A zero delimiter means comma.
func NewSalesCSV(opts CSVOptions, logger logging.Logger) *SalesCSV {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &SalesCSV{opts: opts, logger: logger}
}

// Options returns the effective options.
func (s *SalesCSV) Options() CSVOptions {
	return s.opts
}

// LookupEncoding maps a configured charset name to a decoder. UTF-8 returns nil.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}

// ReadRawSales loads every data row of a raw sales file. The header must carry
// all models.RawColumns in any order; extra columns are ignored.
func (s *SalesCSV) ReadRawSales(filePath string) ([]models.RawSalesRow, error) {
	log := s.logger.WithField(logging.FieldInputFile, filePath)
	log.Info("Reading raw sales file")

	content, err := s.load(filePath)
	if err != nil {
		return nil, err
	}

	header, err := s.newReader(content).Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	if err := ValidateHeader(filePath, header, models.RawColumns); err != nil {
		log.WithError(err).Error("Raw file does not match the sales schema")
		return nil, err
	}

	rows := []models.RawSalesRow{}
	if err := gocsv.UnmarshalCSV(s.newReader(content), &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Info("Read raw sales rows", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// ReadCleanedSales loads a file previously produced by WriteCleanedSales.
func (s *SalesCSV) ReadCleanedSales(filePath string) ([]models.SalesRecord, error) {
	log := s.logger.WithField(logging.FieldInputFile, filePath)
	log.Info("Reading cleaned sales file")

	content, err := s.load(filePath)
	if err != nil {
		return nil, err
	}

	header, err := s.newReader(content).Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	if err := ValidateHeader(filePath, header, models.RawColumns); err != nil {
		return nil, err
	}

	rows := []models.CleanedSalesRow{}
	if err := gocsv.UnmarshalCSV(s.newReader(content), &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	records := make([]models.SalesRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := row.ToRecord()
		if err != nil {
			return nil, fmt.Errorf("row %d of cleaned file: %w", i+1, err)
		}
		rec.SourceRow = i + 1
		records = append(records, rec)
	}

	log.Info("Read cleaned sales records", logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// WriteCleanedSales atomically writes records in models.CleanedColumns order.
// An empty slice yields a header-only file.
func (s *SalesCSV) WriteCleanedSales(records []models.SalesRecord, filePath string) error {
	rows := make([]models.CleanedSalesRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.ToRow())
	}
	if err := WriteRows(s, filePath, rows); err != nil {
		return err
	}
	s.logger.Info("Wrote cleaned sales file",
		logging.F(logging.FieldOutputFile, filePath),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}

// WriteRows marshals any slice of csv-tagged structs to filePath atomically.
// Failures are reported as *parsererror.OutputWriteError.
func WriteRows[TRow any](s *SalesCSV, filePath string, rows []TRow) error {
	opts := fileutils.AtomicWriteOptions{
		CreateDirs: s.opts.CreateOutputDir,
		DirPerm:    models.PermissionDirectory,
		FilePerm:   models.PermissionOutputFile,
	}
	err := fileutils.AtomicWrite(filePath, opts, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		csvWriter.Comma = s.opts.Delimiter
		safe := gocsv.NewSafeCSVWriter(csvWriter)
		if err := gocsv.MarshalCSV(rows, safe); err != nil {
			return fmt.Errorf("error writing CSV data: %w", err)
		}
		safe.Flush()
		return safe.Error()
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to write CSV file",
			logging.F(logging.FieldOutputFile, filePath))
		return &parsererror.OutputWriteError{FilePath: filePath, Err: err}
	}
	return nil
}

// WriteTable atomically writes pre-rendered records, header first.
func (s *SalesCSV) WriteTable(filePath string, records [][]string) error {
	opts := fileutils.AtomicWriteOptions{
		CreateDirs: s.opts.CreateOutputDir,
		DirPerm:    models.PermissionDirectory,
		FilePerm:   models.PermissionOutputFile,
	}
	err := fileutils.AtomicWrite(filePath, opts, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		csvWriter.Comma = s.opts.Delimiter
		return csvWriter.WriteAll(records)
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to write CSV file",
			logging.F(logging.FieldOutputFile, filePath))
		return &parsererror.OutputWriteError{FilePath: filePath, Err: err}
	}
	return nil
}

// ValidateHeader checks that every required column appears in header.
func ValidateHeader(filePath string, header, required []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &parsererror.SchemaMismatchError{FilePath: filePath, Missing: missing}
	}
	return nil
}

// load reads and decodes the whole file; inputs are small.
func (s *SalesCSV) load(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, &parsererror.InputNotFoundError{FilePath: filePath, Err: err}
	}
	if info.IsDir() {
		return nil, &parsererror.InputNotFoundError{FilePath: filePath, Err: fmt.Errorf("is a directory")}
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &parsererror.InputNotFoundError{FilePath: filePath, Err: err}
	}

	enc, err := LookupEncoding(s.opts.Encoding)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		s.logger.Debug("Decoding input", logging.F(logging.FieldEncoding, s.opts.Encoding))
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), enc.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("error decoding %s input: %w", s.opts.Encoding, err)
		}
		raw = decoded
	}

	return bytes.TrimPrefix(raw, utf8BOM), nil
}

func (s *SalesCSV) newReader(content []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = s.opts.Delimiter
	r.FieldsPerRecord = -1
	return r
}
