package validate

import (
	"strings"
	"testing"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/assemble"
)

func parseDoc(t *testing.T, src string) (*ast.Document, []diag.Diagnostic) {
	t.Helper()
	blocks, ix, ds := assemble.Document(src, 0)
	return &ast.Document{Blocks: blocks, Index: ix}, ds
}

func byCode(ds []diag.Diagnostic, code diag.Code) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func TestDuplicateRoute(t *testing.T) {
	src := strings.Join([]string{
		"::site[]",
		"::nav[]",
		"- [A](/a)",
		"::",
		"::page[route=/]",
		"home",
		"::",
		"::page[route=/a, title=First]",
		"first",
		"::",
		"::page[route=/a, title=Second]",
		"second",
		"::",
		"::",
	}, "\n")
	doc, parseDS := parseDoc(t, src)
	if len(parseDS) != 0 {
		t.Fatalf("parse diagnostics = %v", parseDS)
	}
	ds := Document(doc, doc.Index)
	if len(ds) != 1 || ds[0].Code != diag.CodeDuplicateRoute {
		t.Fatalf("diagnostics = %v, want one duplicate-route", ds)
	}
	if !strings.Contains(ds[0].Message, "first page wins") {
		t.Fatalf("message = %q", ds[0].Message)
	}
	wantStart := strings.Index(src, "::page[route=/a, title=Second]")
	if ds[0].Span.Start != wantStart {
		t.Fatalf("span start = %d, want %d", ds[0].Span.Start, wantStart)
	}
}

func TestUnknownReference(t *testing.T) {
	src := strings.Join([]string{
		"# Intro",
		"",
		"See [details](#missing) and [the intro](#intro).",
		"",
		`::cta[label="Go", href="#nowhere"]`,
		"::",
	}, "\n")
	doc, parseDS := parseDoc(t, src)
	if len(parseDS) != 0 {
		t.Fatalf("parse diagnostics = %v", parseDS)
	}
	ds := Document(doc, doc.Index)
	refs := byCode(ds, diag.CodeUnknownReference)
	if len(refs) != 2 {
		t.Fatalf("diagnostics = %v, want two unknown-reference", ds)
	}
	if !strings.Contains(refs[0].Message, "#missing") {
		t.Fatalf("first message = %q", refs[0].Message)
	}
	if !strings.Contains(refs[1].Message, "#nowhere") {
		t.Fatalf("second message = %q", refs[1].Message)
	}
	for _, d := range refs {
		if d.Severity != diag.Error {
			t.Fatalf("severity = %v", d.Severity)
		}
	}
}

func TestReferencesSkipExternalAndRoutes(t *testing.T) {
	src := strings.Join([]string{
		"::nav[]",
		"- [Site](https://example.com)",
		"- [Docs](/docs)",
		"- [Top](#)",
		"::",
	}, "\n")
	doc, parseDS := parseDoc(t, src)
	if len(parseDS) != 0 {
		t.Fatalf("parse diagnostics = %v", parseDS)
	}
	if ds := Document(doc, doc.Index); len(ds) != 0 {
		t.Fatalf("diagnostics = %v", ds)
	}
}

func TestOrphanPage(t *testing.T) {
	src := strings.Join([]string{
		"::site[]",
		"::nav[]",
		"- [Home](/)",
		"::",
		"::page[route=/]",
		"no links here",
		"::",
		"::page[route=/lost, title=Lost]",
		"text",
		"::",
		"::",
	}, "\n")
	doc, _ := parseDoc(t, src)
	ds := Document(doc, doc.Index)
	orphans := byCode(ds, diag.CodeOrphanPage)
	if len(orphans) != 1 {
		t.Fatalf("diagnostics = %v, want one orphan-page", ds)
	}
	if !strings.Contains(orphans[0].Message, "/lost") {
		t.Fatalf("message = %q", orphans[0].Message)
	}
	if orphans[0].Severity != diag.Warning {
		t.Fatalf("severity = %v", orphans[0].Severity)
	}
}

func TestPageReachableThroughAnotherPage(t *testing.T) {
	src := strings.Join([]string{
		"::site[]",
		"::page[route=/]",
		"Go to [docs](/docs#top).",
		"::",
		"::page[route=/docs]",
		"content",
		"::",
		"::",
	}, "\n")
	doc, _ := parseDoc(t, src)
	ds := Document(doc, doc.Index)
	if orphans := byCode(ds, diag.CodeOrphanPage); len(orphans) != 0 {
		t.Fatalf("orphans = %v", orphans)
	}
}

func TestEmptyContainers(t *testing.T) {
	doc := &ast.Document{Blocks: []ast.Block{
		&ast.Columns{},
		&ast.Tabs{},
		&ast.Site{},
	}}
	ds := Document(doc, nil)
	empty := byCode(ds, diag.CodeEmptyContainer)
	if len(empty) != 3 {
		t.Fatalf("diagnostics = %v, want three empty-container", ds)
	}
	for i, want := range []string{"columns", "tabs", "site"} {
		if !strings.Contains(empty[i].Message, want) {
			t.Fatalf("message %d = %q, want %q mentioned", i, empty[i].Message, want)
		}
	}
	if len(ds) != len(empty) {
		t.Fatalf("unexpected extra diagnostics: %v", ds)
	}
}

func TestStandaloneDerivesStructural(t *testing.T) {
	first := &ast.Callout{Type: "info", Text: ast.Rich{Raw: "x"}}
	first.ID = "dup"
	second := &ast.Summary{Text: ast.Rich{Raw: "y"}}
	second.ID = "dup"
	misplaced := &ast.Details{Children: []ast.Block{&ast.Page{Route: "/x", Children: []ast.Block{
		&ast.Markdown{Text: ast.Rich{Raw: "content"}},
	}}}}
	doc := &ast.Document{Blocks: []ast.Block{first, second, misplaced, &ast.Tasks{}}}

	ds := Document(doc, nil)
	if got := byCode(ds, diag.CodeDuplicateID); len(got) != 1 {
		t.Fatalf("duplicate-id = %v", got)
	}
	nest := byCode(ds, diag.CodeInvalidNesting)
	if len(nest) != 1 || nest[0].Path != "details > page" {
		t.Fatalf("invalid-nesting = %v", nest)
	}
	if !strings.Contains(nest[0].Message, `inside "details"`) {
		t.Fatalf("message = %q", nest[0].Message)
	}
	if got := byCode(ds, diag.CodeEmptyBody); len(got) != 1 {
		t.Fatalf("empty-body = %v", got)
	}
}

func TestPipelineIndexSkipsStructural(t *testing.T) {
	first := &ast.Callout{Type: "info", Text: ast.Rich{Raw: "x"}}
	first.ID = "dup"
	second := &ast.Summary{Text: ast.Rich{Raw: "y"}}
	second.ID = "dup"
	doc := &ast.Document{Blocks: []ast.Block{first, second, &ast.Tasks{}}}

	ix, _ := assemble.BuildIndex(doc.Blocks)
	if ds := Document(doc, ix); len(ds) != 0 {
		t.Fatalf("diagnostics = %v, want none in pipeline mode", ds)
	}
}

func TestStandaloneSiteModel(t *testing.T) {
	home := &ast.Page{Route: "/", Children: []ast.Block{
		&ast.Markdown{Text: ast.Rich{Raw: "welcome"}},
	}}
	site := &ast.Site{Children: []ast.Block{
		home,
		&ast.Callout{Type: "info", Text: ast.Rich{Raw: "hi"}},
		&ast.Nav{Items: []ast.NavItem{{Label: "Home", Href: "/"}}},
		&ast.Nav{Items: []ast.NavItem{{Label: "Other", Href: "/"}}},
	}}
	doc := &ast.Document{Blocks: []ast.Block{site}}

	ds := Document(doc, nil)
	nest := byCode(ds, diag.CodeInvalidNesting)
	if len(nest) != 2 {
		t.Fatalf("invalid-nesting = %v", ds)
	}
	if !strings.Contains(nest[0].Message, `inside "site"`) {
		t.Fatalf("first message = %q", nest[0].Message)
	}
	if !strings.Contains(nest[1].Message, "single nav") {
		t.Fatalf("second message = %q", nest[1].Message)
	}
	for _, d := range nest {
		if d.Path != "site" {
			t.Fatalf("path = %q", d.Path)
		}
	}
}

func TestEmptyBodyDataShapes(t *testing.T) {
	full := &ast.Data{Format: "json", Raw: `{"a": 1}`}
	empty := &ast.Data{Format: "table"}
	doc := &ast.Document{Blocks: []ast.Block{full, empty}}

	ds := Document(doc, nil)
	if got := byCode(ds, diag.CodeEmptyBody); len(got) != 1 {
		t.Fatalf("empty-body = %v", got)
	}
}
