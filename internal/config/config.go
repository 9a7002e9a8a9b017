// Package config reads the annotator's settings from the environment.
package config

import (
	"os"
	"strings"
)

// Environment variables consulted by Load.
const (
	EnvLogLevel     = "SHAPES_LOG_LEVEL"
	EnvBackend      = "SHAPES_BACKEND"
	EnvOutputSuffix = "SHAPES_OUTPUT_SUFFIX"
)

// Config holds process-wide settings.
type Config struct {
	// LogLevel is "debug" to enable verbose logging; anything else is quiet.
	LogLevel string

	// Backend names the vision backend ("native" or "gocv").
	Backend string

	// OutputSuffix is inserted before the extension of annotated files.
	OutputSuffix string
}

// Load reads the configuration, falling back to defaults for unset variables.
func Load() *Config {
	return &Config{
		LogLevel:     strings.ToLower(getEnv(EnvLogLevel, "info")),
		Backend:      getEnv(EnvBackend, "native"),
		OutputSuffix: getEnv(EnvOutputSuffix, "_annotated"),
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
