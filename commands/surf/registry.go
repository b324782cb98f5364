package surfadapter

import (
	"context"
	"errors"
	"io"

	commands "github.com/goliatone/go-surfdoc/internal/commands"
	surfcmd "github.com/goliatone/go-surfdoc/internal/commands/surf"
	"github.com/goliatone/go-surfdoc/internal/logging"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the surf command handlers produced by RegisterSurfCommands.
type HandlerSet struct {
	Lint   *surfcmd.LintHandler
	Fmt    *surfcmd.FmtHandler
	Export *surfcmd.ExportHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	lintHandlerOpts   []commands.HandlerOption[surfcmd.LintCommand]
	fmtHandlerOpts    []commands.HandlerOption[surfcmd.FmtCommand]
	exportHandlerOpts []commands.HandlerOption[surfcmd.ExportCommand]
	renderer          interfaces.Renderer
}

// WithLintHandlerOptions forwards options to the LintHandler constructor.
func WithLintHandlerOptions(opts ...commands.HandlerOption[surfcmd.LintCommand]) Option {
	return func(cfg *options) {
		cfg.lintHandlerOpts = append(cfg.lintHandlerOpts, opts...)
	}
}

// WithFmtHandlerOptions forwards options to the FmtHandler constructor.
func WithFmtHandlerOptions(opts ...commands.HandlerOption[surfcmd.FmtCommand]) Option {
	return func(cfg *options) {
		cfg.fmtHandlerOpts = append(cfg.fmtHandlerOpts, opts...)
	}
}

// WithExportHandlerOptions forwards options to the ExportHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[surfcmd.ExportCommand]) Option {
	return func(cfg *options) {
		cfg.exportHandlerOpts = append(cfg.exportHandlerOpts, opts...)
	}
}

// WithRenderer overrides the markdown degradation used by the export handler.
func WithRenderer(renderer interfaces.Renderer) Option {
	return func(cfg *options) {
		cfg.renderer = renderer
	}
}

// RegisterSurfCommands builds surf command handlers and registers them with the provided
// registry. A HandlerSet containing the constructed handlers is returned so callers can wire
// additional integrations (dispatcher, cron) as needed.
func RegisterSurfCommands(reg CommandRegistry, docs interfaces.DocumentLoader, out io.Writer, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if docs == nil {
		return nil, errors.New("surf command registration: document loader is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.ModuleLogger(provider, "surfdoc.commands.surf")
	logger = logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": "surf",
	})

	lintHandler := surfcmd.NewLintHandler(out, logger, cfg.lintHandlerOpts...)
	fmtHandler := surfcmd.NewFmtHandler(out, logger, cfg.fmtHandlerOpts...)
	exportHandler := surfcmd.NewExportHandler(docs, cfg.renderer, logger, cfg.exportHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(lintHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(fmtHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(exportHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Lint:   lintHandler,
		Fmt:    fmtHandler,
		Export: exportHandler,
	}, nil
}

// RegisterExportCron wires the provided export handler into a cron registrar using the supplied
// command configuration and message payload. The handler is executed with a background context.
func RegisterExportCron(reg CronRegistrar, handler *surfcmd.ExportHandler, cfg command.HandlerConfig, msg surfcmd.ExportCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
