// Package analyze implements the analyze subcommand.
package analyze

import (
	"fmt"

	"fjacquet/salesclean/cmd/common"
	"fjacquet/salesclean/cmd/root"

	"github.com/spf13/cobra"
)

var (
	outputDir string
	format    string
)

// Cmd aggregates a cleaned sales file into KPI and breakdown tables.
var Cmd = &cobra.Command{
	Use:   "analyze [cleaned]",
	Short: "Compute KPIs and breakdown tables from a cleaned sales file",
	Long: `Compute KPIs and per-region, per-category, per-rep, monthly and weekday
breakdowns from a cleaned sales file, plus distribution and correlation
summaries. Tables are written as CSV files or as one XLSX workbook.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("application is not initialized")
		}
		cfg := c.GetConfig()

		input, _ := common.ResolvePaths(args, root.SharedFlags.Input, "", cfg.Paths.Output, "")
		dir := cfg.Paths.TablesDir
		if outputDir != "" {
			dir = outputDir
		}
		tablesFormat := cfg.Report.TablesFormat
		if format != "" {
			tablesFormat = format
		}

		_, err := common.AnalyzeFile(c, input, dir, tablesFormat, cmd.OutOrStdout())
		return err
	},
}

func init() {
	Cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the tables (default from config, output/tables)")
	Cmd.Flags().StringVar(&format, "format", "", "Table format: csv or xlsx (default from config)")
}
