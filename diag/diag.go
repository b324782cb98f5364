// Package diag defines the diagnostics a SurfDoc parse or validation run
// can produce. Diagnostics are data, not errors: parsing is total and
// reports format problems through this package so callers decide what
// blocks a build and what is merely noted.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-surfdoc/ast"
)

// Severity ranks how trustworthy the affected data is.
type Severity int

const (
	// Info marks purely informational findings.
	Info Severity = iota
	// Warning marks non-blocking issues; data was recovered or defaulted.
	Warning
	// Error marks structural or schema violations that leave the affected
	// data partially trustworthy.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Code identifies one diagnostic condition. The set is fixed; consumers
// can switch on codes without worrying about unlisted values.
type Code string

const (
	// Structural.
	CodeUnclosedBlock   Code = "unclosed-block"
	CodeUnexpectedClose Code = "unexpected-close"
	CodeInvalidNesting  Code = "invalid-nesting"

	// Attribute grammar.
	CodeMalformedAttr Code = "malformed-attr"
	CodeDuplicateAttr Code = "duplicate-attr"

	// Schema.
	CodeMissingRequiredAttr Code = "missing-required-attr"
	CodeAttrTypeMismatch    Code = "attr-type-mismatch"
	CodeUnknownEnumValue    Code = "unknown-enum-value"
	CodeInvalidAttrValue    Code = "invalid-attr-value"
	CodeIgnoredBody         Code = "ignored-body"
	CodeUnknownDirective    Code = "unknown-directive"

	// Front matter.
	CodeFrontMatterUnterminated Code = "front-matter-unterminated"
	CodeFrontMatterSyntax       Code = "front-matter-syntax"
	CodeFrontMatterSchema       Code = "front-matter-schema"

	// Body rows.
	CodeMalformedRow Code = "malformed-row"
	CodeEmptyBody    Code = "empty-body"

	// Semantic.
	CodeDuplicateID      Code = "duplicate-id"
	CodeDuplicateRoute   Code = "duplicate-route"
	CodeUnknownReference Code = "unknown-reference"
	CodeOrphanPage       Code = "orphan-page"
	CodeEmptyContainer   Code = "empty-container"
)

var defaultSeverity = map[Code]Severity{
	CodeUnclosedBlock:           Error,
	CodeUnexpectedClose:         Warning,
	CodeInvalidNesting:          Error,
	CodeMalformedAttr:           Warning,
	CodeDuplicateAttr:           Warning,
	CodeMissingRequiredAttr:     Error,
	CodeAttrTypeMismatch:        Error,
	CodeUnknownEnumValue:        Warning,
	CodeInvalidAttrValue:        Warning,
	CodeIgnoredBody:             Warning,
	CodeUnknownDirective:        Info,
	CodeFrontMatterUnterminated: Error,
	CodeFrontMatterSyntax:       Error,
	CodeFrontMatterSchema:       Warning,
	CodeMalformedRow:            Warning,
	CodeEmptyBody:               Warning,
	CodeDuplicateID:             Error,
	CodeDuplicateRoute:          Error,
	CodeUnknownReference:        Error,
	CodeOrphanPage:              Warning,
	CodeEmptyContainer:          Warning,
}

// DefaultSeverity returns the severity a code carries unless a producer
// overrides it.
func DefaultSeverity(c Code) Severity {
	if s, ok := defaultSeverity[c]; ok {
		return s
	}
	return Warning
}

// Codes returns every defined code, sorted.
func Codes() []Code {
	out := make([]Code, 0, len(defaultSeverity))
	for c := range defaultSeverity {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Diagnostic is one finding, anchored to the source span of the
// offending construct. Path locates the node in the block tree, e.g.
// "site > page[/docs] > data".
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Span     ast.Span
	Path     string
}

// New builds a diagnostic with the code's default severity.
func New(code Code, span ast.Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: DefaultSeverity(code),
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}

// WithPath returns a copy with the tree path set.
func (d Diagnostic) WithPath(path string) Diagnostic {
	d.Path = path
	return d
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(" [")
	b.WriteString(string(d.Code))
	b.WriteString("] ")
	b.WriteString(d.Message)
	if d.Path != "" {
		b.WriteString(" (at ")
		b.WriteString(d.Path)
		b.WriteString(")")
	}
	return b.String()
}

// Sort orders diagnostics by span start, then severity (errors first),
// then code. Synthetic spans sort after positioned ones. The sort is
// stable, so producers that emit in document order keep sub-ordering
// deterministic.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		si, sj := sortStart(ds[i].Span), sortStart(ds[j].Span)
		if si != sj {
			return si < sj
		}
		if ds[i].Severity != ds[j].Severity {
			return ds[i].Severity > ds[j].Severity
		}
		return ds[i].Code < ds[j].Code
	})
}

func sortStart(s ast.Span) int {
	if s.IsSynthetic() {
		return int(^uint(0) >> 1)
	}
	return s.Start
}

// HasErrors reports whether any diagnostic is Error severity.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics at exactly the given severity.
func Filter(ds []Diagnostic, sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range ds {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Position converts a byte offset into 1-based line and column numbers
// within src. Offsets past the end report the final position.
func Position(src string, offset int) (line, col int) {
	if offset < 0 {
		return 1, 1
	}
	if offset > len(src) {
		offset = len(src)
	}
	line = 1
	last := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			last = i + 1
		}
	}
	return line, offset - last + 1
}
