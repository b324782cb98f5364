package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
)

// Parser converts raw SurfDoc source into a document tree plus ordered
// diagnostics. The root surfdoc package provides the canonical
// implementation; hosts can substitute instrumented parsers without
// touching the loader.
type Parser interface {
	Parse(src []byte) (*ast.Document, []diag.Diagnostic, error)
}

// ParserFunc adapts a plain parse function to the Parser interface.
type ParserFunc func(src []byte) (*ast.Document, []diag.Diagnostic, error)

// Parse implements Parser.
func (f ParserFunc) Parse(src []byte) (*ast.Document, []diag.Diagnostic, error) {
	return f(src)
}

// Document couples a parsed tree with the identity of the file it came
// from. Loader implementations populate every field; Diagnostics carries
// the parse and validation findings already sorted by span.
type Document struct {
	Path         string
	ID           uuid.UUID
	Tree         *ast.Document
	Diagnostics  []diag.Diagnostic
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the raw file content so callers
	// can detect changes without re-reading unchanged files.
	Checksum []byte
}

// DocumentLoader discovers and parses SurfDoc files from a filesystem.
// Paths are interpreted relative to the loader's configured base
// directory and returned slash-separated.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*Document, error)
	LoadDir(ctx context.Context, dir string) ([]*Document, error)
}

// Renderer produces an alternate textual representation of a document.
// Implementations handle every block kind, Unknown included, degrading
// constructs they cannot express rather than dropping them.
type Renderer interface {
	Render(doc *ast.Document) string
}

// RendererFunc adapts a plain render function to the Renderer interface.
type RendererFunc func(doc *ast.Document) string

// Render implements Renderer.
func (f RendererFunc) Render(doc *ast.Document) string {
	return f(doc)
}
