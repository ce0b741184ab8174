// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/salesclean/cmd/common"
	"fjacquet/salesclean/internal/config"
	"fjacquet/salesclean/internal/container"
	"fjacquet/salesclean/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	ConfigFile   string
	LogLevel     string
	LogFormat    string
	CSVDelimiter string
}

var (
	// Cmd is the root command. Without a subcommand it runs a cleaning pass.
	Cmd = &cobra.Command{
		Use:   "salesclean [input] [output]",
		Short: "A CLI tool to clean sales CSV data and report its quality.",
		Long: `salesclean reads a raw sales CSV file, removes duplicates, incomplete and
non-positive rows, normalizes regions and categories, derives unit price and
calendar fields, flags sales_amount outliers and writes a cleaned CSV file
together with a data quality summary.`,
		Args:              cobra.MaximumNArgs(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initialize,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunClean(cmd, args, RootCleanFlags)
		},
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// RootCleanFlags are the cleaning flags of the bare root invocation
	RootCleanFlags = &common.CleanFlags{}

	appContainer *container.Container
	initOnce     sync.Once
)

// Init initializes the root command and all flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches config.yaml)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json")
		Cmd.PersistentFlags().StringVar(&SharedFlags.CSVDelimiter, "csv-delimiter", "", "CSV delimiter for input and output")
		common.AddCleanFlags(Cmd, RootCleanFlags)
	})
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// initialize loads .env and configuration, applies flag overrides and wires the
// container. Logs go to the command's error stream.
func initialize(cmd *cobra.Command, _ []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if SharedFlags.CSVDelimiter != "" {
		if len([]rune(SharedFlags.CSVDelimiter)) != 1 {
			return fmt.Errorf("CSV delimiter must be a single character, got: %s", SharedFlags.CSVDelimiter)
		}
		cfg.CSV.Delimiter = SharedFlags.CSVDelimiter
	}

	logger := logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	c, err := container.NewContainerWithLogger(cfg, logger)
	if err != nil {
		return err
	}
	appContainer = c
	return nil
}

// RunClean resolves the paths for a cleaning run and executes it.
func RunClean(cmd *cobra.Command, args []string, flags *common.CleanFlags) error {
	c := GetContainer()
	if c == nil {
		return fmt.Errorf("application is not initialized")
	}
	paths := c.GetConfig().Paths
	input, output := common.ResolvePaths(args, SharedFlags.Input, SharedFlags.Output, paths.Input, paths.Output)

	_, err := common.ProcessFile(c, input, output, *flags, cmd.OutOrStdout())
	return err
}
