// Package clean implements the clean subcommand.
package clean

import (
	"fjacquet/salesclean/cmd/common"
	"fjacquet/salesclean/cmd/root"

	"github.com/spf13/cobra"
)

// Flags of the clean command.
var Flags = &common.CleanFlags{}

// Cmd cleans a raw sales file.
var Cmd = &cobra.Command{
	Use:   "clean [input] [output]",
	Short: "Clean a raw sales CSV file",
	Long: `Clean a raw sales CSV file and print a data quality summary.
Paths come from the arguments, the --input/--output flags or the configuration.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunClean(cmd, args, Flags)
	},
}

func init() {
	common.AddCleanFlags(Cmd, Flags)
}
