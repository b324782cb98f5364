package bootstrap

import (
	"fmt"
	"strings"

	surfdoc "github.com/goliatone/go-surfdoc"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
)

// Options captures configuration for surf CLI bootstraps.
type Options struct {
	BaseDir   string
	Patterns  []string
	Recursive bool
	// LogLevel enables console logging at the given level. Logging stays
	// disabled when empty so command output owns stdout.
	LogLevel string
}

// Module wraps the surfdoc module and the configured loader/logger.
type Module struct {
	Module *surfdoc.Module
	Loader interfaces.DocumentLoader
	Logger interfaces.Logger
}

// BuildModule constructs a surfdoc module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := surfdoc.DefaultConfig()
	cfg.Loader.BasePath = strings.TrimSpace(opts.BaseDir)
	if cfg.Loader.BasePath == "" {
		cfg.Loader.BasePath = "."
	}
	if len(opts.Patterns) > 0 {
		cfg.Loader.Patterns = cloneStrings(opts.Patterns)
	}
	cfg.Loader.Recursive = opts.Recursive

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	} else {
		cfg.Logging.Provider = ""
	}

	module, err := surfdoc.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise surfdoc module: %w", err)
	}

	return &Module{
		Module: module,
		Loader: module.Loader(),
		Logger: module.Logger("surfdoc.cli"),
	}, nil
}

// SplitPatterns parses a comma separated glob list into a trimmed slice.
func SplitPatterns(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	patterns := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
