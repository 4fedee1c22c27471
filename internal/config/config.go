// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Extraction strategy names accepted in Strategies.
const (
	StrategyMDBExport = "mdb-export"
	StrategySQLite    = "sqlite"
	StrategyCSVDir    = "csvdir"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the live view HTTP listen address, e.g. ":3030".
	Addr string `koanf:"addr"`

	// SourcePath is the competition database (.pat) or an export of it.
	SourcePath string `koanf:"source_path"`

	// OutputDir holds the EVT and JSON files. Empty disables file output.
	OutputDir string `koanf:"output_dir"`
	EVTFile   string `koanf:"evt_file"`
	JSONFile  string `koanf:"json_file"`

	// CompetitionID bypasses competition resolution when set.
	CompetitionID *int `koanf:"competition_id"`

	// IntervalSeconds is the delay between scheduled cycles.
	IntervalSeconds int `koanf:"interval_seconds"`

	// AffiliationURLTemplate builds the lane image URL; {affiliation} is replaced.
	AffiliationURLTemplate string `koanf:"affiliation_url_template"`

	// Strategies lists table extraction strategies in the order they are tried.
	Strategies []string `koanf:"strategies"`

	// MDBExportPath overrides lookup of the mdb-export binary.
	MDBExportPath string `koanf:"mdb_export_path"`

	// SQLitePath is the SQLite conversion used by the sqlite strategy.
	// Empty means the source path itself.
	SQLitePath string `koanf:"sqlite_path"`

	// CSVDir is the directory used by the csvdir strategy.
	// Empty means the source path itself.
	CSVDir string `koanf:"csv_dir"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":3030",
		EVTFile:                "LYNX.EVT",
		JSONFile:               "races.json",
		IntervalSeconds:        60,
		AffiliationURLTemplate: "logos/provinces/{affiliation}.png",
		Strategies:             []string{StrategyMDBExport},
	}
}

// Interval returns IntervalSeconds as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// EVTPath returns the full EVT output path, or "" when file output is disabled.
func (c *Config) EVTPath() string {
	if c.OutputDir == "" || c.EVTFile == "" {
		return ""
	}
	return filepath.Join(c.OutputDir, c.EVTFile)
}

// JSONPath returns the full JSON output path, or "" when file output is disabled.
func (c *Config) JSONPath() string {
	if c.OutputDir == "" || c.JSONFile == "" {
		return ""
	}
	return filepath.Join(c.OutputDir, c.JSONFile)
}

// Validate checks fields that every command depends on.
func (c *Config) Validate() error {
	if c.IntervalSeconds < 1 {
		return fmt.Errorf("%w: interval_seconds must be positive", ErrInvalidConfig)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("%w: at least one strategy is required", ErrInvalidConfig)
	}
	for _, s := range c.Strategies {
		switch strings.TrimSpace(s) {
		case StrategyMDBExport, StrategySQLite, StrategyCSVDir:
		default:
			return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
		}
	}
	if !strings.Contains(c.AffiliationURLTemplate, "{affiliation}") {
		return fmt.Errorf("%w: affiliation_url_template must contain {affiliation}", ErrInvalidConfig)
	}
	return nil
}
