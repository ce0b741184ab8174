// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SALESCLEAN_PATHS_INPUT.
const EnvPrefix = "SALESCLEAN"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level" validate:"loglevel"`
		Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
	} `mapstructure:"log" yaml:"log"`

	Paths struct {
		Input     string `mapstructure:"input" yaml:"input" validate:"required"`
		Output    string `mapstructure:"output" yaml:"output" validate:"required"`
		TablesDir string `mapstructure:"tables_dir" yaml:"tables_dir" validate:"required"`
	} `mapstructure:"paths" yaml:"paths"`

	CSV struct {
		Delimiter       string `mapstructure:"delimiter" yaml:"delimiter" validate:"len=1"`
		Encoding        string `mapstructure:"encoding" yaml:"encoding" validate:"oneof=utf-8 utf8 latin1 latin-1 iso-8859-1 windows-1252 cp1252"`
		CreateOutputDir bool   `mapstructure:"create_output_dir" yaml:"create_output_dir"`
	} `mapstructure:"csv" yaml:"csv"`

	Cleaning struct {
		OutlierMultiplier float64 `mapstructure:"outlier_multiplier" yaml:"outlier_multiplier" validate:"gt=0"`
	} `mapstructure:"cleaning" yaml:"cleaning"`

	Report struct {
		SummaryFormat string `mapstructure:"summary_format" yaml:"summary_format" validate:"oneof=text json yaml"`
		TablesFormat  string `mapstructure:"tables_format" yaml:"tables_format" validate:"oneof=csv xlsx"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// configFile, when set, replaces the search of config.yaml in the standard
// locations and must exist.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.salesclean")
		v.AddConfigPath(".salesclean")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// LOG_LEVEL is honored for parity with the plain environment setup
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Path defaults
	v.SetDefault("paths.input", "data/raw/sales_data.csv")
	v.SetDefault("paths.output", "data/processed/sales_data_cleaned.csv")
	v.SetDefault("paths.tables_dir", "output/tables")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.encoding", "utf-8")
	v.SetDefault("csv.create_output_dir", true)

	// Cleaning defaults
	v.SetDefault("cleaning.outlier_multiplier", 1.5)

	// Report defaults
	v.SetDefault("report.summary_format", "text")
	v.SetDefault("report.tables_format", "csv")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logrus.ParseLevel(fl.Field().String())
		return err == nil
	})
	return v
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "loglevel":
		return fmt.Sprintf("invalid log level: %v", fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must be a single character, got: %v", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s, got: %v", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got: %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}
