// Package runtimeconfig holds the runtime configuration consumed by
// surfdoc.New. The root package re-exports these types so host
// applications never import this package directly.
package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrLoggingProviderUnknown rejects provider names outside the supported set.
var ErrLoggingProviderUnknown = errors.New("surfdoc config: logging provider is invalid")

// ErrLoggingLevelInvalid rejects log levels outside the supported set.
var ErrLoggingLevelInvalid = errors.New("surfdoc config: logging level is invalid")

// ErrLoggingFormatInvalid rejects go-logger formats outside the supported set.
var ErrLoggingFormatInvalid = errors.New("surfdoc config: logging format is invalid")

// ErrLoaderPatternInvalid rejects discovery globs that filepath.Match cannot parse.
var ErrLoaderPatternInvalid = errors.New("surfdoc config: loader pattern is invalid")

// Config aggregates the loader and logging settings for the surfdoc module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Loader  LoaderConfig
	Logging LoggingConfig
}

// LoaderConfig captures filesystem discovery behaviour for SurfDoc documents.
type LoaderConfig struct {
	BasePath  string
	Patterns  []string
	Recursive bool
}

// LoggingConfig captures provider-specific options for runtime logging. An
// empty Provider keeps the module silent.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults: documents under the working
// directory, recursive discovery, console logging at info level.
func DefaultConfig() Config {
	return Config{
		Loader: LoaderConfig{
			BasePath:  ".",
			Recursive: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	for _, pattern := range cfg.Loader.Patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		if _, err := filepath.Match(filepath.ToSlash(trimmed), "probe"); err != nil {
			return fmt.Errorf("%w: %s", ErrLoaderPatternInvalid, trimmed)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
