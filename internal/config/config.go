// Package config loads the application configuration from environment
// variables (ENRICH_ prefix) merged over an optional config.yaml file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	ierrors "enrichcli/internal/errors"
)

// DefaultWindows is the window-length list applied when none is configured.
const DefaultWindows = "5,50,100,200"

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// PipelineConfig contains the enrichment pipeline configuration: the input
// columns consumed by the transforms and the moving-average window lengths.
type PipelineConfig struct {
	DateColumn   string   `yaml:"date_column" envconfig:"DATE_COLUMN" validate:"required"`
	DateLayout   string   `yaml:"date_layout" envconfig:"DATE_LAYOUT" validate:"required"`
	VolumeColumn string   `yaml:"volume_column" envconfig:"VOLUME_COLUMN" validate:"required"`
	PriceColumns []string `yaml:"price_columns" envconfig:"PRICE_COLUMNS" validate:"min=1,dive,required"`
	Windows      string   `yaml:"windows" envconfig:"WINDOWS" validate:"required"`
}

// Load loads configuration from environment variables and config file.
// Precedence: environment variables > config file > defaults.
//
// Defaults come from Default() rather than envconfig default tags: a default
// tag is applied whenever the env var is unset, which would clobber values
// read from the config file. Starting from Default(), letting the file
// overwrite only the keys it names, and then letting envconfig overwrite
// only the vars actually set keeps each layer intact.
func Load() (*Config, error) {
	cfg := *Default()

	// Config file overrides defaults for the keys it names
	if configFile := getConfigFilePath(); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, ierrors.NewConfigError(fmt.Sprintf("failed to read config file %s", configFile), err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, ierrors.NewConfigError(fmt.Sprintf("failed to parse config file %s", configFile), err)
		}
	}

	// Environment variables override everything else
	if err := envconfig.Process("ENRICH", &cfg); err != nil {
		return nil, ierrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/enrich.log",
		},
		Pipeline: PipelineConfig{
			DateColumn:   "Date",
			DateLayout:   "2006-01-02",
			VolumeColumn: "Volume",
			PriceColumns: []string{"Open", "High", "Low", "Close"},
			Windows:      DefaultWindows,
		},
	}
}

// Validate validates the configuration, including the window-length list.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return ierrors.NewConfigError("config validation failed", err)
	}
	if _, err := ParseWindows(c.Pipeline.Windows); err != nil {
		return err
	}
	return nil
}

// ParseWindows parses a comma-separated list of moving-average window lengths.
// Every token must be a positive integer; anything else is a configuration
// error, raised before any row processing starts.
func ParseWindows(s string) ([]int, error) {
	var windows []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, ierrors.NewConfigError(fmt.Sprintf("invalid window length %q", tok), err)
		}
		if n <= 0 {
			return nil, ierrors.NewConfigError(fmt.Sprintf("window length must be positive, got %d", n), nil)
		}
		windows = append(windows, n)
	}
	if len(windows) == 0 {
		return nil, ierrors.NewConfigError("no window lengths configured", nil)
	}
	return windows, nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
