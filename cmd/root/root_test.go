package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/salesclean/cmd/analyze"
	"fjacquet/salesclean/cmd/clean"
	"fjacquet/salesclean/cmd/common"
	"fjacquet/salesclean/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawCSV = `date,region,product_category,sales_amount,units_sold,customer_id,sales_rep
2024-01-05,north,electronics,100.0,2,C1,R1
2024-01-05,north,electronics,100.0,2,C1,R1
2024-01-03,south,furniture,-50.0,1,C2,R2
2024-01-04,east,office,200.0,4,C3,R3
`

func TestMain(m *testing.M) {
	root.Init()
	root.Cmd.AddCommand(clean.Cmd, analyze.Cmd)
	os.Exit(m.Run())
}

// execute runs the root command with fresh flag values and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root.SharedFlags = root.CommonFlags{}
	*root.RootCleanFlags = common.CleanFlags{}
	*clean.Flags = common.CleanFlags{}

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: info\n"), 0600))

	var stdout, stderr bytes.Buffer
	root.Cmd.SetOut(&stdout)
	root.Cmd.SetErr(&stderr)
	root.Cmd.SetArgs(append([]string{"--config", configFile}, args...))
	err := root.Cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRaw(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "raw.csv")
	require.NoError(t, os.WriteFile(input, []byte(rawCSV), 0600))
	return input, filepath.Join(dir, "processed", "clean.csv")
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "salesclean [input] [output]", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "clean sales CSV data")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"config", ""},
		{"log-level", ""},
		{"log-format", ""},
		{"csv-delimiter", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
	assert.NotNil(t, root.Cmd.Flags().Lookup("summary-format"))
	assert.NotNil(t, root.Cmd.Flags().Lookup("summary-file"))
}

func TestRootCommand_SubCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range root.Cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["clean"])
	assert.True(t, names["analyze"])
}

func TestRootCommand_PositionalPaths(t *testing.T) {
	input, output := writeRaw(t)

	stdout, stderr, err := execute(t, input, output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Loaded 4 raw records")
	assert.Contains(t, stdout, "After cleaning: 2 records")
	assert.NotContains(t, stdout, "level=info", "logs must not go to stdout")
	assert.Contains(t, stderr, "Cleaning completed")
	assert.FileExists(t, output)
}

func TestCleanCommand_Flags(t *testing.T) {
	input, output := writeRaw(t)

	stdout, _, err := execute(t, "clean", "-i", input, "-o", output, "--summary-format", "yaml", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "input_rows: 4")
	assert.FileExists(t, output)
}

func TestCleanCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	badSchema := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(badSchema, []byte("date,region\n2024-01-01,n\n"), 0600))

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"missing input", []string{"clean", filepath.Join(dir, "absent.csv"), filepath.Join(dir, "out.csv")}, common.ExitInputNotFound},
		{"schema mismatch", []string{"clean", badSchema, filepath.Join(dir, "out.csv")}, common.ExitSchemaMismatch},
		{"bad delimiter flag", []string{"--csv-delimiter", ";;", "clean", badSchema}, common.ExitError},
		{"too many args", []string{"clean", "a", "b", "c"}, common.ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, common.ExitCode(err))
		})
	}
	_, statErr := os.Stat(filepath.Join(dir, "out.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCleanCommand_UnsupportedSummaryFormat(t *testing.T) {
	input, output := writeRaw(t)

	_, _, err := execute(t, "clean", "--summary-format", "html", input, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format: html")
	assert.Equal(t, common.ExitError, common.ExitCode(err))

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyzeCommand(t *testing.T) {
	input, output := writeRaw(t)
	_, _, err := execute(t, input, output)
	require.NoError(t, err)

	tablesDir := filepath.Join(t.TempDir(), "tables")
	stdout, _, err := execute(t, "analyze", output, "--output-dir", tablesDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "KEY PERFORMANCE INDICATORS")
	assert.FileExists(t, filepath.Join(tablesDir, "kpis.csv"))

	_, _, err = execute(t, "analyze", output, "--output-dir", tablesDir, "--format", "xlsx")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(tablesDir, "sales_analysis.xlsx"))
}
