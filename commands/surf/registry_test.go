package surfadapter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	surfdoc "github.com/goliatone/go-surfdoc"
	"github.com/goliatone/go-surfdoc/ast"
	commands "github.com/goliatone/go-surfdoc/internal/commands"
	surfcmd "github.com/goliatone/go-surfdoc/internal/commands/surf"
	"github.com/goliatone/go-surfdoc/internal/logging"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

func TestRegisterSurfCommandsHandlerOptionsApplied(t *testing.T) {
	docs := &stubLoader{}
	lintApplied := false
	fmtApplied := false
	exportApplied := false

	_, err := RegisterSurfCommands(nil, docs, io.Discard, nil,
		WithLintHandlerOptions(func(h *commands.Handler[surfcmd.LintCommand]) {
			lintApplied = true
		}),
		WithFmtHandlerOptions(func(h *commands.Handler[surfcmd.FmtCommand]) {
			fmtApplied = true
		}),
		WithExportHandlerOptions(func(h *commands.Handler[surfcmd.ExportCommand]) {
			exportApplied = true
		}),
	)
	if err != nil {
		t.Fatalf("register surf commands: %v", err)
	}
	if !lintApplied {
		t.Fatal("expected lint handler options applied")
	}
	if !fmtApplied {
		t.Fatal("expected fmt handler options applied")
	}
	if !exportApplied {
		t.Fatal("expected export handler options applied")
	}
}

func TestRegisterSurfCommandsRegistersHandlers(t *testing.T) {
	reg := &recordingRegistry{}
	docs := &stubLoader{}

	set, err := RegisterSurfCommands(reg, docs, io.Discard, nil)
	if err != nil {
		t.Fatalf("register surf commands: %v", err)
	}
	if set == nil {
		t.Fatal("expected handler set returned")
	}
	if set.Lint == nil || set.Fmt == nil || set.Export == nil {
		t.Fatalf("expected lint, fmt and export handlers, got %#v", set)
	}
	if len(reg.handlers) != 3 {
		t.Fatalf("expected three handlers registered, got %d", len(reg.handlers))
	}
	if reg.handlers[0] != set.Lint {
		t.Fatalf("expected lint handler registered first, got %#v", reg.handlers[0])
	}
	if reg.handlers[2] != set.Export {
		t.Fatalf("expected export handler registered last, got %#v", reg.handlers[2])
	}
}

func TestRegisterSurfCommandsNilRegistrySkipsRegistration(t *testing.T) {
	docs := &stubLoader{}
	set, err := RegisterSurfCommands(nil, docs, io.Discard, nil)
	if err != nil {
		t.Fatalf("register surf commands: %v", err)
	}
	if set == nil || set.Lint == nil || set.Fmt == nil || set.Export == nil {
		t.Fatalf("expected handlers built when registry nil, got %#v", set)
	}
}

func TestRegisterSurfCommandsNilLoaderError(t *testing.T) {
	if _, err := RegisterSurfCommands(nil, nil, io.Discard, nil); err == nil {
		t.Fatal("expected error when document loader nil")
	}
}

func TestRegisterSurfCommandsRendererApplied(t *testing.T) {
	docs := &stubLoader{
		docs: []*interfaces.Document{
			{Path: "guide.surf", Tree: parseFixture(t, "# Hello\n")},
		},
	}
	outDir := t.TempDir()

	set, err := RegisterSurfCommands(nil, docs, io.Discard, nil,
		WithRenderer(interfaces.RendererFunc(func(*ast.Document) string {
			return "adapted output\n"
		})),
	)
	if err != nil {
		t.Fatalf("register surf commands: %v", err)
	}

	if err := set.Export.Execute(context.Background(), surfcmd.ExportCommand{Directory: "docs", OutDir: outDir}); err != nil {
		t.Fatalf("execute export: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "guide.md"))
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if string(data) != "adapted output\n" {
		t.Fatalf("expected renderer override output, got %q", data)
	}
}

func TestRegisterExportCronRegistersHandler(t *testing.T) {
	docs := &stubLoader{
		docs: []*interfaces.Document{
			{Path: "guide.surf", Tree: parseFixture(t, "# Notes\n")},
		},
	}
	handler := surfcmd.NewExportHandler(docs, nil, logging.NoOp())
	recorder := &recordingCron{}

	cfg := command.HandlerConfig{Expression: "@daily"}
	msg := surfcmd.ExportCommand{Directory: "docs", OutDir: t.TempDir()}

	if err := RegisterExportCron(recorder.register, handler, cfg, msg); err != nil {
		t.Fatalf("register export cron: %v", err)
	}

	if len(recorder.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.registrations))
	}
	reg := recorder.registrations[0]
	if reg.config.Expression != cfg.Expression {
		t.Fatalf("expected cron expression %q, got %q", cfg.Expression, reg.config.Expression)
	}
	if reg.handler == nil {
		t.Fatal("expected cron handler function recorded")
	}
	if err := reg.handler(); err != nil {
		t.Fatalf("executing cron handler: %v", err)
	}
	if len(docs.loadDirCalls) != 1 {
		t.Fatalf("expected export executed once, got %d loads", len(docs.loadDirCalls))
	}
}

func TestRegisterExportCronNoOpWhenRegistrarNil(t *testing.T) {
	docs := &stubLoader{}
	handler := surfcmd.NewExportHandler(docs, nil, logging.NoOp())
	if err := RegisterExportCron(nil, handler, command.HandlerConfig{}, surfcmd.ExportCommand{Directory: "docs", OutDir: "out"}); err != nil {
		t.Fatalf("expected nil error when registrar nil, got %v", err)
	}
	if len(docs.loadDirCalls) != 0 {
		t.Fatalf("expected no export runs when registrar nil, got %d", len(docs.loadDirCalls))
	}
}

func TestRegisterExportCronNoOpWhenHandlerNil(t *testing.T) {
	recorder := &recordingCron{}
	if err := RegisterExportCron(recorder.register, nil, command.HandlerConfig{}, surfcmd.ExportCommand{Directory: "docs", OutDir: "out"}); err != nil {
		t.Fatalf("expected nil error when handler nil, got %v", err)
	}
	if len(recorder.registrations) != 0 {
		t.Fatalf("expected no registrations when handler nil, got %d", len(recorder.registrations))
	}
}

func parseFixture(t *testing.T, src string) *ast.Document {
	t.Helper()
	result, err := surfdoc.ParseString(src)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return result.Document
}

type stubLoader struct {
	docs []*interfaces.Document

	loadDirCalls []string
}

func (s *stubLoader) Load(context.Context, string) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubLoader) LoadDir(_ context.Context, dir string) ([]*interfaces.Document, error) {
	s.loadDirCalls = append(s.loadDirCalls, dir)
	return s.docs, nil
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
	err           error
}

func (r *recordingCron) register(cfg command.HandlerConfig, handler any) error {
	if r.err != nil {
		return r.err
	}
	var fn func() error
	if h, ok := handler.(func() error); ok {
		fn = h
	}
	r.registrations = append(r.registrations, cronRegistration{
		config:  cfg,
		handler: fn,
	})
	return nil
}
