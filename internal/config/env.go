package config

import (
	"fmt"
	"os"
)

// Environment overrides.
const (
	EnvURL         = "FREEMODELS_URL"
	EnvSuffix      = "FREEMODELS_SUFFIX"
	EnvTimeout     = "FREEMODELS_TIMEOUT"
	EnvLogLevel    = "FREEMODELS_LOG_LEVEL"
	EnvMetricsFile = "FREEMODELS_METRICS_FILE"
)

// FromEnv builds a partial Config from FREEMODELS_* variables. Unset or
// unparsable values stay zero so Merge leaves the lower layer alone.
func FromEnv() Config {
	return Config{
		URL:            envStr(EnvURL, ""),
		Suffix:         envStr(EnvSuffix, ""),
		TimeoutSeconds: envInt(EnvTimeout, 0),
		LogLevel:       envStr(EnvLogLevel, ""),
		MetricsFile:    envStr(EnvMetricsFile, ""),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return def
}
