package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"freemodels/internal/catalog"
	"freemodels/internal/common/fsutil"
	"freemodels/internal/report"
)

// Config holds runtime parameters for a report run.
// Zero values mean "unspecified" and are filled from Default.
type Config struct {
	URL            string `json:"url" yaml:"url" toml:"url"`
	Suffix         string `json:"suffix" yaml:"suffix" toml:"suffix"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	LogLevel       string `json:"log_level" yaml:"log_level" toml:"log_level"`
	MetricsFile    string `json:"metrics_file" yaml:"metrics_file" toml:"metrics_file"`
}

// DefaultLogLevel keeps stderr quiet on a successful run.
const DefaultLogLevel = "warn"

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		URL:      catalog.DefaultURL,
		Suffix:   report.FreeSuffix,
		LogLevel: DefaultLogLevel,
	}
}

// Timeout converts TimeoutSeconds; zero or negative means no timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// SearchPaths lists the config files looked up when --config is not given.
func SearchPaths() []string {
	return []string{
		"~/.config/freemodels/config.yaml",
		"~/.config/freemodels/config.yml",
		"~/.config/freemodels/config.toml",
		"~/.config/freemodels/config.json",
	}
}

// Discover returns the first existing file from SearchPaths, or "" if none exists.
func Discover() string {
	return fsutil.FirstExisting(SearchPaths()...)
}

// Merge overlays the non-zero fields of over onto base.
func Merge(base, over Config) Config {
	if over.URL != "" {
		base.URL = over.URL
	}
	if over.Suffix != "" {
		base.Suffix = over.Suffix
	}
	if over.TimeoutSeconds != 0 {
		base.TimeoutSeconds = over.TimeoutSeconds
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.MetricsFile != "" {
		base.MetricsFile = over.MetricsFile
	}
	return base
}
