package surfdoc

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/loader"
	"github.com/goliatone/go-surfdoc/internal/logging"
	"github.com/goliatone/go-surfdoc/internal/logging/console"
	"github.com/goliatone/go-surfdoc/internal/logging/gologger"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
)

// Module represents the top level surfdoc runtime façade: a document
// loader plus the logging provider it reports through.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	loader   interfaces.DocumentLoader
}

// Option mutates the module before it is finalised.
type Option func(*Module)

// WithLoggerProvider overrides the logging provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithLoader overrides the default document loader so hosts can supply
// their own storage backing.
func WithLoader(docs interfaces.DocumentLoader) Option {
	return func(m *Module) {
		m.loader = docs
	}
}

// New constructs a surfdoc module using the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.loader == nil {
		svc, err := loader.NewService(loader.Config{
			BasePath:  cfg.Loader.BasePath,
			Patterns:  cfg.Loader.Patterns,
			Recursive: cfg.Loader.Recursive,
		}, interfaces.ParserFunc(parseForLoader), m.provider)
		if err != nil {
			return nil, err
		}
		m.loader = svc
	}

	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	if m == nil {
		return Config{}
	}
	return m.cfg
}

// Loader returns the configured document loader.
func (m *Module) Loader() interfaces.DocumentLoader {
	if m == nil || m.loader == nil {
		return nil
	}
	return m.loader
}

// Logger returns a named logger from the configured provider. An empty
// name falls back to the root namespace.
func (m *Module) Logger(name string) interfaces.Logger {
	if m == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(m.provider, name)
}

// LoggerProvider exposes the underlying logger provider for advanced integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

// parseForLoader adapts Parse to the loader's parser contract.
func parseForLoader(src []byte) (*ast.Document, []diag.Diagnostic, error) {
	res, err := Parse(src)
	if err != nil {
		return nil, nil, err
	}
	return res.Document, res.Diagnostics, nil
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "":
		return nil, nil
	case "console":
		return console.NewProvider(console.Options{
			MinLevel: console.ParseLevel(cfg.Level),
		}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     append([]string(nil), cfg.Focus...),
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}
