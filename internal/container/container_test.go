package container

import (
	"testing"

	"fjacquet/salesclean/internal/analysis"
	"fjacquet/salesclean/internal/config"
	"fjacquet/salesclean/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Paths.Input = "in.csv"
	c.Paths.Output = "out.csv"
	c.Paths.TablesDir = "tables"
	c.CSV.Delimiter = ";"
	c.CSV.Encoding = "latin1"
	c.CSV.CreateOutputDir = false
	c.Cleaning.OutlierMultiplier = 3
	c.Report.SummaryFormat = "json"
	c.Report.TablesFormat = "csv"
	return c
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig(),
		},
		{
			name: "unsupported encoding",
			config: func() *config.Config {
				c := testConfig()
				c.CSV.Encoding = "ebcdic"
				return c
			}(),
			expectError: true,
			errorMsg:    "unsupported encoding: ebcdic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.GetLogger())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetCleaner())
			assert.NotNil(t, c.GetPipeline())
			assert.NotNil(t, c.GetAnalyzer())
			assert.NotNil(t, c.GetReportGenerator())
		})
	}
}

func TestNewContainerWithLogger_PropagatesConfig(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainerWithLogger(testConfig(), logger)
	require.NoError(t, err)

	assert.Same(t, logger, c.GetLogger())
	opts := c.GetSalesCSV().Options()
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, "latin1", opts.Encoding)
	assert.False(t, opts.CreateOutputDir)

	_, err = NewContainerWithLogger(testConfig(), nil)
	assert.EqualError(t, err, "logger cannot be nil")
}

func TestContainer_GetTableWriter(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(), logging.NewMockLogger())
	require.NoError(t, err)

	w, err := c.GetTableWriter(analysis.FormatXLSX)
	require.NoError(t, err)
	assert.IsType(t, &analysis.XLSXTableWriter{}, w)

	_, err = c.GetTableWriter("pdf")
	assert.Error(t, err)
}
