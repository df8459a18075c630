// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultReportPrefix is the path prefix used for report artifacts when the config omits one.
	DefaultReportPrefix = "reports/report"
	// defaultMatchSize is the minimum character run counted as a match by the charcut reporter.
	defaultMatchSize = 3
)

// Config represents the top-level application configuration.
type Config struct {
	ReportPath string   `json:"reportPath,omitempty"`
	Reporters  []string `json:"reporters,omitempty"`
	MatchSize  int      `json:"matchSize,omitempty"`
	AltNorm    bool     `json:"altNorm"`
	VocabPath  string   `json:"vocab,omitempty"`
	Debug      bool     `json:"debug"`
	LogFile    string   `json:"logFile,omitempty"`
	ConfigPath string   `json:"-"`
}

// ReportPrefix returns the report path prefix, applying the default if not set.
func (c Config) ReportPrefix() string {
	if path := strings.TrimSpace(c.ReportPath); path != "" {
		return path
	}
	return DefaultReportPrefix
}

// CharCutMatchSize returns the configured minimum match size, falling back
// to the default. Values below 1 are clamped to 1 (useful for scripts
// without whitespace-delimited words, where single-character matches count).
func (c Config) CharCutMatchSize() int {
	if c.MatchSize == 0 {
		return defaultMatchSize
	}
	if c.MatchSize < 1 {
		return 1
	}
	return c.MatchSize
}

// ReporterNames returns the configured reporter list, defaulting to the
// attention reporter when none are configured.
func (c Config) ReporterNames() []string {
	if len(c.Reporters) == 0 {
		return []string{"attention"}
	}
	return c.Reporters
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "xnmt-report.log"
}

// Load reads the application configuration from the specified path.
// A missing file is not an error: reporting is fully flag-driven in that
// case and the zero Config supplies the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{ConfigPath: path}, nil
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
