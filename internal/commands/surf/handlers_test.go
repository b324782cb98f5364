package surfcmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	surfdoc "github.com/goliatone/go-surfdoc"
	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/internal/logging"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type stubLoader struct {
	docs    []*interfaces.Document
	loadErr error

	loadDirCalls []string
}

func (s *stubLoader) Load(context.Context, string) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubLoader) LoadDir(_ context.Context, dir string) ([]*interfaces.Document, error) {
	s.loadDirCalls = append(s.loadDirCalls, dir)
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.docs, nil
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func parseFixture(t *testing.T, src string) *ast.Document {
	t.Helper()
	result, err := surfdoc.ParseString(src)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return result.Document
}

func TestLintHandlerReportsFindings(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "broken.surf", "::data[cols=2]\nrow1\n")

	var out bytes.Buffer
	handler := NewLintHandler(&out, logging.NoOp())

	err := handler.Execute(context.Background(), LintCommand{Path: path})
	if !errors.Is(err, ErrLintFindings) {
		t.Fatalf("expected lint findings error, got %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, path+":1:1 error unclosed-block") {
		t.Fatalf("unexpected lint output %q", got)
	}
}

func TestLintHandlerCleanDocument(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "guide.surf", "# Hello\n\n::callout[type=warning]\nBe careful.\n::\n")

	var out bytes.Buffer
	handler := NewLintHandler(&out, logging.NoOp())

	if err := handler.Execute(context.Background(), LintCommand{Path: path}); err != nil {
		t.Fatalf("execute lint: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no findings, got %q", out.String())
	}
}

func TestLintHandlerWarningsDoNotFail(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "guide.surf", "::callout[type=shiny]\nHm.\n::\n")

	var out bytes.Buffer
	handler := NewLintHandler(&out, logging.NoOp())

	if err := handler.Execute(context.Background(), LintCommand{Path: path}); err != nil {
		t.Fatalf("expected warnings to pass the gate, got %v", err)
	}
	if !strings.Contains(out.String(), "warning unknown-enum-value") {
		t.Fatalf("expected enum warning reported, got %q", out.String())
	}
}

func TestLintHandlerMissingFile(t *testing.T) {
	handler := NewLintHandler(io.Discard, logging.NoOp())

	err := handler.Execute(context.Background(), LintCommand{
		Path: filepath.Join(t.TempDir(), "missing.surf"),
	})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestFmtHandlerRewritesFile(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "guide.surf", "# Hello\n\n\n::callout[type=warning]\nBe careful.\n::\n")

	var out bytes.Buffer
	handler := NewFmtHandler(&out, logging.NoOp())

	if err := handler.Execute(context.Background(), FmtCommand{Path: path}); err != nil {
		t.Fatalf("execute fmt: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	want := "# Hello\n\n::callout[type=warning]\nBe careful.\n::\n"
	if string(content) != want {
		t.Fatalf("formatted content = %q, want %q", content, want)
	}
	if !strings.Contains(out.String(), path) {
		t.Fatalf("expected rewritten path reported, got %q", out.String())
	}
}

func TestFmtHandlerLeavesCanonicalFile(t *testing.T) {
	canonical := "# Hello\n\n::callout[type=warning]\nBe careful.\n::\n"
	path := writeFixture(t, t.TempDir(), "guide.surf", canonical)

	var out bytes.Buffer
	handler := NewFmtHandler(&out, logging.NoOp())

	if err := handler.Execute(context.Background(), FmtCommand{Path: path}); err != nil {
		t.Fatalf("execute fmt: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no files reported, got %q", out.String())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(content) != canonical {
		t.Fatalf("canonical file modified: %q", content)
	}
}

func TestFmtHandlerCheckModeLeavesFile(t *testing.T) {
	original := "# Hello\n\n\n::callout[type=warning]\nBe careful.\n::\n"
	path := writeFixture(t, t.TempDir(), "guide.surf", original)

	var out bytes.Buffer
	handler := NewFmtHandler(&out, logging.NoOp())

	err := handler.Execute(context.Background(), FmtCommand{Path: path, Check: true})
	if !errors.Is(err, ErrNotFormatted) {
		t.Fatalf("expected not formatted error, got %v", err)
	}

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read file: %v", readErr)
	}
	if string(content) != original {
		t.Fatalf("check mode modified the file: %q", content)
	}
	if !strings.Contains(out.String(), path) {
		t.Fatalf("expected non-canonical path reported, got %q", out.String())
	}
}

func TestExportHandlerWritesMarkdownTree(t *testing.T) {
	loader := &stubLoader{
		docs: []*interfaces.Document{
			{Path: "guide.surf", Tree: parseFixture(t, "::callout[type=warning]\nBe careful.\n::\n")},
			{Path: "notes/inner.surf", Tree: parseFixture(t, "# Notes\n")},
		},
	}
	outDir := t.TempDir()
	handler := NewExportHandler(loader, nil, logging.NoOp())

	if err := handler.Execute(context.Background(), ExportCommand{Directory: "docs", OutDir: outDir}); err != nil {
		t.Fatalf("execute export: %v", err)
	}
	if len(loader.loadDirCalls) != 1 || loader.loadDirCalls[0] != "docs" {
		t.Fatalf("expected one load of docs, got %v", loader.loadDirCalls)
	}

	guide, err := os.ReadFile(filepath.Join(outDir, "guide.md"))
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.Contains(string(guide), "> **Warning**") {
		t.Fatalf("expected blockquote degradation, got %q", guide)
	}

	if _, err := os.Stat(filepath.Join(outDir, "notes", "inner.md")); err != nil {
		t.Fatalf("expected nested export: %v", err)
	}
}

func TestExportHandlerCustomRenderer(t *testing.T) {
	loader := &stubLoader{
		docs: []*interfaces.Document{
			{Path: "guide.surf", Tree: parseFixture(t, "# Hello\n")},
		},
	}
	outDir := t.TempDir()
	handler := NewExportHandler(loader, interfaces.RendererFunc(func(*ast.Document) string {
		return "rendered"
	}), logging.NoOp())

	if err := handler.Execute(context.Background(), ExportCommand{Directory: "docs", OutDir: outDir}); err != nil {
		t.Fatalf("execute export: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "guide.md"))
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if string(content) != "rendered" {
		t.Fatalf("expected custom renderer output, got %q", content)
	}
}

func TestExportHandlerRequiresLoader(t *testing.T) {
	handler := NewExportHandler(nil, nil, logging.NoOp())

	err := handler.Execute(context.Background(), ExportCommand{Directory: "docs", OutDir: t.TempDir()})
	if !errors.Is(err, ErrLoaderNotConfigured) {
		t.Fatalf("expected loader not configured error, got %v", err)
	}
}

func TestExportHandlerPropagatesLoadError(t *testing.T) {
	loader := &stubLoader{loadErr: errors.New("scan failed")}
	handler := NewExportHandler(loader, nil, logging.NoOp())

	err := handler.Execute(context.Background(), ExportCommand{Directory: "docs", OutDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected load error to propagate")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
