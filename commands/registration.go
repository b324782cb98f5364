package commands

import (
	"errors"
	"io"
	"os"

	surfdoc "github.com/goliatone/go-surfdoc"
	surfadapter "github.com/goliatone/go-surfdoc/commands/surf"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
	// Output receives lint findings and fmt reports. Defaults to os.Stdout.
	Output io.Writer
	// Renderer overrides the markdown degradation used by the export handler.
	Renderer interfaces.Renderer
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterModuleCommands builds the command handlers exposed by the provided module and
// optionally registers them with registry/dispatcher integrations.
func RegisterModuleCommands(module *surfdoc.Module, opts RegistrationOptions) (*RegistrationResult, error) {
	if module == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = module.LoggerProvider()
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	// Surf commands.
	if docs := module.Loader(); docs != nil {
		adapterOpts := []surfadapter.Option{}
		if opts.Renderer != nil {
			adapterOpts = append(adapterOpts, surfadapter.WithRenderer(opts.Renderer))
		}
		handlerSet, err := surfadapter.RegisterSurfCommands(nil, docs, out, provider, adapterOpts...)
		if err != nil {
			errs = errors.Join(errs, err)
		} else if handlerSet != nil {
			register(handlerSet.Lint)
			register(handlerSet.Fmt)
			register(handlerSet.Export)
		}
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure the module loader is configured")
	}

	return result, errs
}
