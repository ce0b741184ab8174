package analysis

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/salesclean/internal/common"
	"fjacquet/salesclean/internal/fileutils"
	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/models"
	"fjacquet/salesclean/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Output formats for analysis tables.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// WorkbookName is the file written by the XLSX writer.
const WorkbookName = "sales_analysis.xlsx"

// TableWriter persists rendered tables under a directory and returns the paths written.
type TableWriter interface {
	WriteTables(dir string, tables []Table) ([]string, error)
}

// NewTableWriter returns the writer for format.
func NewTableWriter(format string, csvIO *common.SalesCSV, logger logging.Logger) (TableWriter, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	switch strings.ToLower(format) {
	case FormatCSV, "":
		return &CSVTableWriter{csv: csvIO, logger: logger}, nil
	case FormatXLSX:
		create := true
		if csvIO != nil {
			create = csvIO.Options().CreateOutputDir
		}
		return &XLSXTableWriter{createDirs: create, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported table format: %s", format)
	}
}

// CSVTableWriter writes one CSV file per table.
type CSVTableWriter struct {
	csv    *common.SalesCSV
	logger logging.Logger
}

// WriteTables writes dir/<name>.csv for every table.
func (w *CSVTableWriter) WriteTables(dir string, tables []Table) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.Name+".csv")
		if err := w.csv.WriteTable(path, t.Rows); err != nil {
			return paths, err
		}
		w.logger.Info("Saved table",
			logging.F(logging.FieldTable, t.Name),
			logging.F(logging.FieldOutputFile, path))
		paths = append(paths, path)
	}
	return paths, nil
}

// XLSXTableWriter writes all tables into one workbook, one sheet per table.
type XLSXTableWriter struct {
	createDirs bool
	logger     logging.Logger
}

// WriteTables writes dir/WorkbookName. Numeric cells are stored as numbers.
func (w *XLSXTableWriter) WriteTables(dir string, tables []Table) ([]string, error) {
	path := filepath.Join(dir, WorkbookName)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		sheet := sheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		for r, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			values := sheetValues(row, r == 0)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write sheet %s: %w", sheet, err)
			}
		}
	}

	opts := fileutils.AtomicWriteOptions{
		CreateDirs: w.createDirs,
		DirPerm:    models.PermissionDirectory,
		FilePerm:   models.PermissionOutputFile,
	}
	if err := fileutils.AtomicWrite(path, opts, func(out io.Writer) error {
		return f.Write(out)
	}); err != nil {
		return nil, &parsererror.OutputWriteError{FilePath: path, Err: err}
	}

	w.logger.Info("Saved workbook",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(tables)))
	return []string{path}, nil
}

// sheetName fits Excel's 31 character limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

func sheetValues(row []string, header bool) []interface{} {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		if !header {
			if f, err := strconv.ParseFloat(cell, 64); err == nil {
				values[i] = f
				continue
			}
		}
		values[i] = cell
	}
	return values
}
