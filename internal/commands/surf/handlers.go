package surfcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	surfdoc "github.com/goliatone/go-surfdoc"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/commands"
	"github.com/goliatone/go-surfdoc/internal/logging"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
	"github.com/goliatone/go-surfdoc/rendermd"
	command "github.com/goliatone/go-command"
)

const (
	lintOperation   = "surf.lint"
	fmtOperation    = "surf.fmt"
	exportOperation = "surf.export"
)

var (
	// ErrLintFindings is returned when linting reports at least one error severity diagnostic.
	ErrLintFindings = errors.New("surf command: lint found errors")
	// ErrNotFormatted is returned in check mode when a file differs from its canonical form.
	ErrNotFormatted = errors.New("surf command: file is not formatted")
	// ErrLoaderNotConfigured is returned when a handler needs a document loader and none was supplied.
	ErrLoaderNotConfigured = errors.New("surf command: document loader not configured")
)

var (
	_ command.Commander[LintCommand]   = (*LintHandler)(nil)
	_ command.Commander[FmtCommand]    = (*FmtHandler)(nil)
	_ command.Commander[ExportCommand] = (*ExportHandler)(nil)
)

// LintHandler parses and validates SurfDoc files via the shared command handler foundation.
type LintHandler struct {
	inner *commands.Handler[LintCommand]
}

// NewLintHandler creates a handler that writes findings to out, one per line.
func NewLintHandler(out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[LintCommand]) *LintHandler {
	baseLogger := commands.EnsureLogger(logger)
	if out == nil {
		out = io.Discard
	}

	exec := func(ctx context.Context, msg LintCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		src, err := os.ReadFile(msg.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", msg.Path, err)
		}

		result, err := surfdoc.Parse(src)
		if err != nil {
			return err
		}

		for _, d := range result.Diagnostics {
			fmt.Fprintln(out, formatFinding(msg.Path, result.Source, d))
		}

		errorCount := len(diag.Filter(result.Diagnostics, diag.Error))
		logging.WithFields(baseLogger, map[string]any{
			"document_path":    msg.Path,
			"diagnostic_count": len(result.Diagnostics),
			"error_count":      errorCount,
		}).Info("surf.command.lint.completed")

		if errorCount > 0 {
			return ErrLintFindings
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintCommand]{
		commands.WithLogger[LintCommand](baseLogger),
		commands.WithOperation[LintCommand](lintOperation),
		commands.WithMessageFields(func(msg LintCommand) map[string]any {
			return map[string]any{
				"document_path": msg.Path,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintCommand].
func (h *LintHandler) Execute(ctx context.Context, msg LintCommand) error {
	return h.inner.Execute(ctx, msg)
}

// FmtHandler rewrites SurfDoc files into canonical form via the shared command handler foundation.
type FmtHandler struct {
	inner *commands.Handler[FmtCommand]
}

// NewFmtHandler creates a handler that reports rewritten or non-canonical files to out.
func NewFmtHandler(out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[FmtCommand]) *FmtHandler {
	baseLogger := commands.EnsureLogger(logger)
	if out == nil {
		out = io.Discard
	}

	exec := func(ctx context.Context, msg FmtCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		info, err := os.Stat(msg.Path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", msg.Path, err)
		}
		src, err := os.ReadFile(msg.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", msg.Path, err)
		}

		result, err := surfdoc.Parse(src)
		if err != nil {
			return err
		}

		canonical := surfdoc.Serialize(result.Document)
		if canonical == string(src) {
			logging.WithFields(baseLogger, map[string]any{
				"document_path": msg.Path,
			}).Debug("surf.command.fmt.unchanged")
			return nil
		}

		if msg.Check {
			fmt.Fprintln(out, msg.Path)
			return ErrNotFormatted
		}

		if err := os.WriteFile(msg.Path, []byte(canonical), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", msg.Path, err)
		}
		fmt.Fprintln(out, msg.Path)
		logging.WithFields(baseLogger, map[string]any{
			"document_path": msg.Path,
		}).Info("surf.command.fmt.rewritten")
		return nil
	}

	handlerOpts := []commands.HandlerOption[FmtCommand]{
		commands.WithLogger[FmtCommand](baseLogger),
		commands.WithOperation[FmtCommand](fmtOperation),
		commands.WithMessageFields(func(msg FmtCommand) map[string]any {
			fields := map[string]any{
				"document_path": msg.Path,
			}
			if msg.Check {
				fields["check"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[FmtCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &FmtHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[FmtCommand].
func (h *FmtHandler) Execute(ctx context.Context, msg FmtCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportHandler degrades SurfDoc trees to plain markdown via the shared command handler foundation.
type ExportHandler struct {
	inner *commands.Handler[ExportCommand]
}

// NewExportHandler creates a handler bound to the supplied document loader. A nil
// renderer falls back to the standard markdown degradation.
func NewExportHandler(docs interfaces.DocumentLoader, renderer interfaces.Renderer, logger interfaces.Logger, opts ...commands.HandlerOption[ExportCommand]) *ExportHandler {
	baseLogger := commands.EnsureLogger(logger)
	if renderer == nil {
		renderer = interfaces.RendererFunc(rendermd.Render)
	}

	exec := func(ctx context.Context, msg ExportCommand) error {
		if docs == nil {
			return ErrLoaderNotConfigured
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		loaded, err := docs.LoadDir(ctx, msg.Directory)
		if err != nil {
			return err
		}

		written := 0
		for _, doc := range loaded {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(msg.OutDir, markdownPath(doc.Path))
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
			}
			if err := os.WriteFile(target, []byte(renderer.Render(doc.Tree)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			written++
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":     msg.Directory,
			"out_dir":       msg.OutDir,
			"written_count": written,
		}).Info("surf.command.export.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportCommand]{
		commands.WithLogger[ExportCommand](baseLogger),
		commands.WithOperation[ExportCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportCommand) map[string]any {
			return map[string]any{
				"directory": msg.Directory,
				"out_dir":   msg.OutDir,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportCommand].
func (h *ExportHandler) Execute(ctx context.Context, msg ExportCommand) error {
	return h.inner.Execute(ctx, msg)
}

// formatFinding renders one diagnostic as "path:line:col severity code message".
func formatFinding(path, src string, d diag.Diagnostic) string {
	line, col := diag.Position(src, d.Span.Start)
	return fmt.Sprintf("%s:%d:%d %s %s %s", path, line, col, d.Severity, d.Code, d.Message)
}

// markdownPath swaps the document extension for .md, preserving the relative layout.
func markdownPath(path string) string {
	ext := filepath.Ext(path)
	return filepath.FromSlash(strings.TrimSuffix(path, ext) + ".md")
}
