package common_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/salesclean/cmd/common"
	"fjacquet/salesclean/internal/config"
	"fjacquet/salesclean/internal/container"
	"fjacquet/salesclean/internal/logging"
	"fjacquet/salesclean/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawCSV = `date,region,product_category,sales_amount,units_sold,customer_id,sales_rep
2024-01-05,north,electronics,100.0,2,C1,R1
2024-01-05,north,electronics,100.0,2,C1,R1
2024-01-03,south,furniture,-50.0,1,C2,R2
2024-01-04,east,office,200.0,4,C3,R3
`

func newContainer(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.CSV.Encoding = "utf-8"
	cfg.CSV.CreateOutputDir = true
	cfg.Cleaning.OutlierMultiplier = 1.5
	cfg.Report.SummaryFormat = "text"
	cfg.Report.TablesFormat = "csv"

	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	return c, logger
}

func writeRaw(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "sales_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		flagIn     string
		flagOut    string
		wantInput  string
		wantOutput string
	}{
		{"defaults", nil, "", "", "def-in", "def-out"},
		{"flags", nil, "f-in", "f-out", "f-in", "f-out"},
		{"args win over flags", []string{"a-in", "a-out"}, "f-in", "f-out", "a-in", "a-out"},
		{"single arg", []string{"a-in"}, "", "f-out", "a-in", "f-out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := common.ResolvePaths(tt.args, tt.flagIn, tt.flagOut, "def-in", "def-out")
			assert.Equal(t, tt.wantInput, in)
			assert.Equal(t, tt.wantOutput, out)
		})
	}
}

func TestProcessFile(t *testing.T) {
	c, logger := newContainer(t)
	dir := t.TempDir()
	input := writeRaw(t, dir, rawCSV)
	output := filepath.Join(dir, "processed", "clean.csv")
	summaryFile := filepath.Join(dir, "summary.json")

	var out bytes.Buffer
	result, err := common.ProcessFile(c, input, output, common.CleanFlags{SummaryFormat: "json", SummaryFile: summaryFile}, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Quality.OutputRows)

	assert.Contains(t, out.String(), `"input_rows": 4`)
	saved, err := os.ReadFile(summaryFile)
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(saved))
	assert.FileExists(t, output)
	assert.True(t, logger.HasEntry("INFO", "Cleaning run finished"))
}

func TestProcessFile_DefaultSummaryFormat(t *testing.T) {
	c, _ := newContainer(t)
	dir := t.TempDir()

	var out bytes.Buffer
	_, err := common.ProcessFile(c, writeRaw(t, dir, rawCSV), filepath.Join(dir, "clean.csv"), common.CleanFlags{}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "After cleaning: 2 records")
}

func TestProcessFile_Errors(t *testing.T) {
	c, _ := newContainer(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	tests := []struct {
		name     string
		input    string
		output   string
		wantCode int
	}{
		{
			name:     "missing input",
			input:    filepath.Join(dir, "absent.csv"),
			output:   filepath.Join(dir, "out.csv"),
			wantCode: common.ExitInputNotFound,
		},
		{
			name:     "schema mismatch",
			input:    writeRaw(t, dir, "date,region,product_category,sales_amount,customer_id,sales_rep\n"),
			output:   filepath.Join(dir, "out.csv"),
			wantCode: common.ExitSchemaMismatch,
		},
		{
			name:     "unwritable output",
			input:    filepath.Join(dir, "good.csv"),
			output:   filepath.Join(blocker, "out.csv"),
			wantCode: common.ExitOutputWrite,
		},
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.csv"), []byte(rawCSV), 0600))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := common.ProcessFile(c, tt.input, tt.output, common.CleanFlags{}, &out)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, common.ExitCode(err))
			assert.Empty(t, out.String())
		})
	}
}

func TestProcessFile_UnsupportedSummaryFormatKeepsOutput(t *testing.T) {
	c, _ := newContainer(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "clean.csv")
	require.NoError(t, os.WriteFile(output, []byte("previous"), 0600))

	var out bytes.Buffer
	_, err := common.ProcessFile(c, writeRaw(t, dir, rawCSV), output, common.CleanFlags{SummaryFormat: "bogus"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format: bogus")
	assert.Equal(t, common.ExitError, common.ExitCode(err))
	assert.Empty(t, out.String())

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))
}

func TestAnalyzeFile(t *testing.T) {
	c, _ := newContainer(t)
	dir := t.TempDir()
	cleaned := filepath.Join(dir, "clean.csv")
	_, err := common.ProcessFile(c, writeRaw(t, dir, rawCSV), cleaned, common.CleanFlags{}, &bytes.Buffer{})
	require.NoError(t, err)

	t.Run("csv", func(t *testing.T) {
		tablesDir := filepath.Join(dir, "tables")
		var out bytes.Buffer
		paths, err := common.AnalyzeFile(c, cleaned, tablesDir, "csv", &out)
		require.NoError(t, err)
		assert.Len(t, paths, 8)
		assert.Contains(t, out.String(), "KEY PERFORMANCE INDICATORS")
		assert.Contains(t, out.String(), "300.00")
		assert.FileExists(t, filepath.Join(tablesDir, "regional_analysis.csv"))
	})

	t.Run("xlsx", func(t *testing.T) {
		tablesDir := filepath.Join(dir, "workbook")
		paths, err := common.AnalyzeFile(c, cleaned, tablesDir, "xlsx", &bytes.Buffer{})
		require.NoError(t, err)
		require.Len(t, paths, 1)
		assert.True(t, strings.HasSuffix(paths[0], ".xlsx"))
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := common.AnalyzeFile(c, cleaned, dir, "pdf", &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := common.AnalyzeFile(c, filepath.Join(dir, "absent.csv"), dir, "csv", &bytes.Buffer{})
		assert.Equal(t, common.ExitInputNotFound, common.ExitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, common.ExitOK},
		{errors.New("boom"), common.ExitError},
		{fmt.Errorf("wrapped: %w", &parsererror.InputNotFoundError{FilePath: "x", Err: os.ErrNotExist}), common.ExitInputNotFound},
		{&parsererror.SchemaMismatchError{FilePath: "x", Missing: []string{"units_sold"}}, common.ExitSchemaMismatch},
		{fmt.Errorf("wrapped: %w", &parsererror.OutputWriteError{FilePath: "x", Err: os.ErrPermission}), common.ExitOutputWrite},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, common.ExitCode(tt.err), fmt.Sprint(tt.err))
	}
}
