// Package config loads daemon configuration from defaults, an optional YAML
// file, and RISK_-prefixed environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the risk stream daemon settings.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	CatalogPath string `mapstructure:"catalog_path"`
	MetricsAddr string `mapstructure:"metrics_addr"`

	ScanThresholdKm     float64 `mapstructure:"scan_threshold_km"`
	HighRiskThresholdKm float64 `mapstructure:"high_risk_threshold_km"`
	CellSizeKm          float64 `mapstructure:"cell_size_km"`
	ScanWorkers         int     `mapstructure:"scan_workers"`
	PlanManeuvers       bool    `mapstructure:"plan_maneuvers"`

	BroadcastInterval time.Duration `mapstructure:"broadcast_interval"`
	TopN              int           `mapstructure:"top_n"`
}

// Load reads configuration, optionally from the YAML file at path. An empty
// path uses defaults and environment only; a named file that is missing is
// an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("catalog_path", "configs/catalog.json")
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("scan_threshold_km", 50.0)
	v.SetDefault("high_risk_threshold_km", 5.0)
	v.SetDefault("cell_size_km", 50.0)
	v.SetDefault("scan_workers", 4)
	v.SetDefault("plan_maneuvers", true)
	v.SetDefault("broadcast_interval", 5*time.Second)
	v.SetDefault("top_n", 10)

	v.SetEnvPrefix("RISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var errInvalidConfig = errors.New("invalid config")

func (c Config) validate() error {
	if c.ScanThresholdKm <= 0 {
		return fmt.Errorf("%w: scan_threshold_km must be positive", errInvalidConfig)
	}
	if c.HighRiskThresholdKm <= 0 || c.HighRiskThresholdKm > c.ScanThresholdKm {
		return fmt.Errorf("%w: high_risk_threshold_km must be in (0, scan_threshold_km]", errInvalidConfig)
	}
	if c.CellSizeKm <= 0 {
		return fmt.Errorf("%w: cell_size_km must be positive", errInvalidConfig)
	}
	if c.BroadcastInterval <= 0 {
		return fmt.Errorf("%w: broadcast_interval must be positive", errInvalidConfig)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: top_n must be positive", errInvalidConfig)
	}
	return nil
}
