package config

import (
	"github.com/RostamVPN/mullvadvpn-app/internal/brand"
)

// Config is the top-level configuration.
type Config struct {
	SchemaVersion string         `hcl:"schema_version,optional" json:"schema_version"`
	Log           *LogConfig     `hcl:"log,block" json:"log,omitempty"`
	Ledger        *LedgerConfig  `hcl:"ledger,block" json:"ledger,omitempty"`
	Metrics       *MetricsConfig `hcl:"metrics,block" json:"metrics,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `hcl:"level,optional" json:"level"`
	JSON  bool   `hcl:"json,optional" json:"json"`
}

// LedgerConfig controls the identity ledger.
type LedgerConfig struct {
	Path     string `hcl:"path,optional" json:"path"`
	Disabled bool   `hcl:"disabled,optional" json:"disabled"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// Textfile, when set, receives the metrics in Prometheus text format
	// after each run.
	Textfile string `hcl:"textfile,optional" json:"textfile"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{SchemaVersion: CurrentSchemaVersion}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SchemaVersion == "" {
		c.SchemaVersion = CurrentSchemaVersion
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Ledger == nil {
		c.Ledger = &LedgerConfig{}
	}
	if c.Ledger.Path == "" {
		c.Ledger.Path = brand.GetLedgerPath()
	}
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
}
