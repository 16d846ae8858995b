// Package config handles configuration loading for bureaulens.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"    yaml:"data"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Store   StoreConfig   `mapstructure:"store"   yaml:"store"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// DataConfig locates the bureau datasets. The loan-type taxonomy and the
// on-us sector set are deliberately NOT configurable: they are a fixed
// vocabulary, changed by code review, not by deployment config.
type DataConfig struct {
	TradelineFile string `mapstructure:"tradeline_file" yaml:"tradeline_file"`
	FeaturesFile  string `mapstructure:"features_file"  yaml:"features_file"`
	// RefreshSchedule is a cron expression for re-reading the datasets in
	// serve mode; empty disables scheduled refresh.
	RefreshSchedule string `mapstructure:"refresh_schedule" yaml:"refresh_schedule"`
	ExposureMonths  int    `mapstructure:"exposure_months"  yaml:"exposure_months"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host         string   `mapstructure:"host"          yaml:"host"`
	Port         int      `mapstructure:"port"          yaml:"port"`
	CORSOrigins  []string `mapstructure:"cors_origins"  yaml:"cors_origins"`
	CacheTTLSecs int      `mapstructure:"cache_ttl"     yaml:"cache_ttl"`
	BatchWorkers int      `mapstructure:"batch_workers" yaml:"batch_workers"`
}

// StoreConfig holds report run persistence settings.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.bureaulens/config.yaml (home directory)
//  3. /etc/bureaulens/config.yaml (system)
//
// Environment variables override config file values.
// Format: BUREAULENS_<SECTION>_<KEY>, e.g., BUREAULENS_DATA_TRADELINE_FILE.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".bureaulens"))
	v.AddConfigPath("/etc/bureaulens")

	v.SetEnvPrefix("BUREAULENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BUREAULENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.tradeline_file", "data/dpd_data.csv")
	v.SetDefault("data.features_file", "data/tl_features.csv")
	v.SetDefault("data.refresh_schedule", "")
	v.SetDefault("data.exposure_months", 24)

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("api.cache_ttl", 300) // seconds
	v.SetDefault("api.batch_workers", 4)

	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", "bureaulens.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
