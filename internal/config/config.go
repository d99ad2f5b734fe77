// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"aws-cost-calc/core/types"
	"aws-cost-calc/internal/errors"
	"aws-cost-calc/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. AWSCOSTCALC_SERVER_ADDRESS
const EnvPrefix = "AWSCOSTCALC"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" ignored:"true"`

	// Currency is the display currency for every report
	Currency types.Currency `json:"currency"`

	// Archive holds the default inputs of the archive projection
	Archive ArchiveConfig `json:"archive"`

	// Endpoint holds the default inputs of the endpoint calculator
	Endpoint EndpointConfig `json:"endpoint"`

	// DedicatedLine holds the default inputs of the dedicated-line calculator
	DedicatedLine DedicatedLineConfig `json:"dedicated_line" split_words:"true"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ArchiveConfig seeds the archive projection form
type ArchiveConfig struct {
	Periods            int          `json:"periods"`
	InitialGB          float64      `json:"initial_gb" split_words:"true"`
	GrowthGB           float64      `json:"growth_gb" split_words:"true"`
	Puts               int64        `json:"puts"`
	Gets               int64        `json:"gets"`
	Deletes            int64        `json:"deletes"`
	Transitions        int64        `json:"transitions"`
	StandardRecoveryGB float64      `json:"standard_recovery_gb" split_words:"true"`
	BulkRecoveryGB     float64      `json:"bulk_recovery_gb" split_words:"true"`
	Rates              ArchiveRates `json:"rates"`
}

// ArchiveRates are the unit prices of the archive projection
type ArchiveRates struct {
	// StorageGBMonth is the price per GB per period
	StorageGBMonth float64 `json:"storage_gb_month" split_words:"true"`

	// PutPer1K covers PUT/COPY/POST/LIST requests
	PutPer1K float64 `json:"put_per_1k" envconfig:"PUT_PER_1K"`

	// GetPer1K covers GET/SELECT requests
	GetPer1K float64 `json:"get_per_1k" envconfig:"GET_PER_1K"`

	// DeletePer1K is accepted for completeness; deletes are never billed
	DeletePer1K float64 `json:"delete_per_1k" envconfig:"DELETE_PER_1K"`

	TransitionPer1K       float64 `json:"transition_per_1k" envconfig:"TRANSITION_PER_1K"`
	StandardRecoveryPerGB float64 `json:"standard_recovery_per_gb" split_words:"true"`
	BulkRecoveryPerGB     float64 `json:"bulk_recovery_per_gb" split_words:"true"`
}

// EndpointConfig seeds the endpoint calculator
type EndpointConfig struct {
	HourlyRatePerAZ float64 `json:"hourly_rate_per_az" split_words:"true"`
	AZCount         int     `json:"az_count" envconfig:"AZ_COUNT"`
	Hours           int     `json:"hours"`
	RatePerGB       float64 `json:"rate_per_gb" envconfig:"RATE_PER_GB"`
	ProcessedGB     float64 `json:"processed_gb" split_words:"true"`
}

// DedicatedLineConfig seeds the dedicated-line calculator
type DedicatedLineConfig struct {
	Locations         int     `json:"locations"`
	PortsPerLocation  int     `json:"ports_per_location" split_words:"true"`
	PortType          string  `json:"port_type" split_words:"true"`
	Capacity          string  `json:"capacity"`
	Hours             int     `json:"hours"`
	TransferOutGB     float64 `json:"transfer_out_gb" envconfig:"TRANSFER_OUT_GB"`
	TransferRatePerGB float64 `json:"transfer_rate_per_gb" envconfig:"TRANSFER_RATE_PER_GB"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" split_words:"true"`

	// NoColor disables ANSI colors in cli output
	NoColor bool `json:"no_color" split_words:"true"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Address string `json:"address"`

	// AllowedOrigins is the CORS allow-list for browser front ends
	AllowedOrigins []string `json:"allowed_origins" split_words:"true"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" split_words:"true"`
}

// Default returns a default configuration.
// Rates are the published S3 Glacier Deep Archive, PrivateLink and Direct Connect prices
// the calculators ship with; every one of them can be overridden.
func Default() *Config {
	return &Config{
		Version:  "1.0",
		Currency: types.CurrencyUSD,
		Archive: ArchiveConfig{
			Periods:            1,
			InitialGB:          1,
			GrowthGB:           0,
			Puts:               1000,
			Gets:               100,
			Deletes:            50,
			Transitions:        10,
			StandardRecoveryGB: 100,
			BulkRecoveryGB:     500,
			Rates: ArchiveRates{
				StorageGBMonth:        0.00099,
				PutPer1K:              0.05,
				GetPer1K:              0.0004,
				DeletePer1K:           0,
				TransitionPer1K:       0.05,
				StandardRecoveryPerGB: 0.10,
				BulkRecoveryPerGB:     0.025,
			},
		},
		Endpoint: EndpointConfig{
			HourlyRatePerAZ: 0.01,
			AZCount:         1,
			Hours:           730,
			RatePerGB:       0.01,
			ProcessedGB:     0,
		},
		DedicatedLine: DedicatedLineConfig{
			Locations:         1,
			PortsPerLocation:  1,
			PortType:          "dedicated",
			Capacity:          "1 Gbps",
			Hours:             730,
			TransferOutGB:     0,
			TransferRatePerGB: 0.02,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Address:                ":8080",
			AllowedOrigins:         []string{"*"},
			ShutdownTimeoutSeconds: 5,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errors.Config("reading config file", err).WithContext("path", path)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("decoding config file", err).WithContext("path", path)
	}

	return config, nil
}

// ApplyEnv overlays AWSCOSTCALC_* environment variables onto c.
// Variables that are not set leave the current value untouched.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return errors.Config("reading environment overrides", err)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("creating config directory", err).WithContext("path", dir)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Config("encoding config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("writing config file", err).WithContext("path", path)
	}
	return nil
}

// DefaultPath is $HOME/.aws-cost-calc.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".aws-cost-calc.json"
	}
	return filepath.Join(homeDir, ".aws-cost-calc.json")
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
