// Package surfdoc parses, validates, and serializes SurfDoc text: markdown
// interleaved with typed, fenced directive blocks (::name[attrs] ... ::).
// Parsing is total. Any input yields a document plus ordered diagnostics;
// malformed constructs degrade to recoverable findings instead of errors,
// and only invalid UTF-8 aborts the parse.
package surfdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/assemble"
	"github.com/goliatone/go-surfdoc/internal/frontmatter"
	"github.com/goliatone/go-surfdoc/internal/serialize"
	"github.com/goliatone/go-surfdoc/internal/validate"
)

// Document exports the document tree type for consumers of the surfdoc package.
type Document = ast.Document

// Block exports the block union for consumers of the surfdoc package.
type Block = ast.Block

// FrontMatter exports the typed front-matter metadata.
type FrontMatter = ast.FrontMatter

// Span exports the byte-offset source span attached to nodes and diagnostics.
type Span = ast.Span

// Diagnostic exports one parse or validation finding.
type Diagnostic = diag.Diagnostic

// Severity exports the diagnostic severity scale.
type Severity = diag.Severity

// Code exports the closed diagnostic code set.
type Code = diag.Code

// Severity levels re-exported so callers can filter diagnostics without
// importing diag directly.
const (
	SeverityInfo    = diag.Info
	SeverityWarning = diag.Warning
	SeverityError   = diag.Error
)

// ParseResult pairs the document with every diagnostic the pipeline
// produced, merged across stages and ordered by source position. It is the
// sole artifact handed to downstream consumers; the same input always
// yields a structurally identical result. Source holds the normalized text
// that every span indexes into.
type ParseResult struct {
	Document    *ast.Document
	Diagnostics []diag.Diagnostic
	Source      string
}

// HasErrors reports whether any diagnostic carries Error severity. Warnings
// and infos never block a build.
func (r *ParseResult) HasErrors() bool {
	if r == nil {
		return false
	}
	return diag.HasErrors(r.Diagnostics)
}

// EncodingError is the only hard failure Parse can return. It reports the
// byte offset of the first invalid UTF-8 sequence in the input.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("surfdoc: source is not valid UTF-8 at byte %d", e.Offset)
}

const bom = "\uFEFF"

// Parse reads SurfDoc source and returns the document plus diagnostics.
// A leading BOM is stripped and CRLF line endings are normalized to LF
// before scanning; all spans refer to the normalized text. The error is
// non-nil only for invalid UTF-8, as *EncodingError.
func Parse(src []byte) (*ParseResult, error) {
	if off := invalidUTF8(src); off >= 0 {
		return nil, &EncodingError{Offset: off}
	}
	return parse(normalize(string(src))), nil
}

// ParseString is Parse for string input.
func ParseString(src string) (*ParseResult, error) {
	return Parse([]byte(src))
}

// parse runs the pipeline on already normalized text: front-matter
// extraction, block assembly, then validation against the assembler's ID
// table so duplicate declarations are reported exactly once.
func parse(text string) *ParseResult {
	extracted := frontmatter.Extract(text)
	ds := append([]diag.Diagnostic(nil), extracted.Diags...)

	blocks, index, more := assemble.Document(extracted.Body, extracted.BodyOffset)
	ds = append(ds, more...)

	doc := &ast.Document{
		FrontMatter: extracted.FrontMatter,
		Blocks:      blocks,
		Index:       index,
	}
	ds = append(ds, validate.Document(doc, index)...)

	diag.Sort(ds)
	return &ParseResult{Document: doc, Diagnostics: ds, Source: text}
}

// Serialize renders doc back to canonical SurfDoc text: front matter first,
// blocks joined by one blank line, schema-ordered attributes, trailing
// newline. Reparsing the output yields a structurally equivalent document.
func Serialize(doc *ast.Document) string {
	if doc == nil {
		return ""
	}
	return serialize.Document(doc)
}

// Validate re-checks doc and returns ordered findings: placement, duplicate
// ids and routes, unresolved references, orphan pages, empty containers.
// Documents that did not come through Parse (hand-assembled trees with no
// index) get their structural findings derived here as well.
func Validate(doc *ast.Document) []diag.Diagnostic {
	if doc == nil {
		return nil
	}
	ds := validate.Document(doc, doc.Index)
	diag.Sort(ds)
	return ds
}

func normalize(text string) string {
	text = strings.TrimPrefix(text, bom)
	if strings.Contains(text, "\r\n") {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text
}

// invalidUTF8 returns the offset of the first invalid byte, or -1 when src
// is well formed.
func invalidUTF8(src []byte) int {
	if utf8.Valid(src) {
		return -1
	}
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
