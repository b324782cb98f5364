package bootstrap

import (
	"fmt"
	"io"
	"strings"

	surfdoc "github.com/goliatone/go-surfdoc"
	"github.com/goliatone/go-surfdoc/commands"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
)

// Options captures the tunable configuration shared across surf host integrations.
type Options struct {
	BaseDir        string
	Patterns       []string
	Recursive      bool
	LoggerProvider interfaces.LoggerProvider
	// Output receives lint findings and fmt reports from collected handlers.
	Output         io.Writer
	EnableCommands bool // collect command handlers for direct execution when true
}

// Resources groups the module runtime and optional command collector used by hosts.
type Resources struct {
	Module    *surfdoc.Module
	Collector *CommandCollector
}

// CommandCollector records handlers registered during module construction so hosts
// can invoke them directly when dispatcher integrations are not wired.
type CommandCollector struct {
	handlers []any
}

// RegisterCommand satisfies commands.CommandRegistry.
func (c *CommandCollector) RegisterCommand(handler any) error {
	c.handlers = append(c.handlers, handler)
	return nil
}

// Handlers returns the collected handlers.
func (c *CommandCollector) Handlers() []any {
	if len(c.handlers) == 0 {
		return nil
	}
	out := make([]any, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// BuildModule constructs a surfdoc module configured for document loading using the supplied options.
func BuildModule(opts Options) (*Resources, error) {
	cfg := surfdoc.DefaultConfig()

	cfg.Loader.BasePath = strings.TrimSpace(opts.BaseDir)
	if cfg.Loader.BasePath == "" {
		cfg.Loader.BasePath = "."
	}
	if len(opts.Patterns) > 0 {
		cfg.Loader.Patterns = cloneStrings(opts.Patterns)
	}
	cfg.Loader.Recursive = opts.Recursive

	moduleOpts := []surfdoc.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, surfdoc.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := surfdoc.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise surfdoc module: %w", err)
	}

	var collector *CommandCollector
	if opts.EnableCommands {
		collector = &CommandCollector{
			handlers: make([]any, 0),
		}
		if _, err := commands.RegisterModuleCommands(module, commands.RegistrationOptions{
			Registry:       collector,
			LoggerProvider: opts.LoggerProvider,
			Output:         opts.Output,
		}); err != nil {
			return nil, fmt.Errorf("register surf commands: %w", err)
		}
	}

	return &Resources{
		Module:    module,
		Collector: collector,
	}, nil
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// SplitPatterns parses a comma separated pattern list into a trimmed slice.
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
