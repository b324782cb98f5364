package surfdoc_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	surfdoc "github.com/goliatone/go-surfdoc"
	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/builder"
	"github.com/goliatone/go-surfdoc/diag"
)

func mustParse(t *testing.T, src string) *surfdoc.ParseResult {
	t.Helper()
	res, err := surfdoc.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return res
}

func codes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

func TestParseProseAndCallout(t *testing.T) {
	res := mustParse(t, "# Hello\n\n::callout[type=info]\nBe careful.\n::\n")
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	blocks := res.Document.Blocks
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	md, ok := blocks[0].(*ast.Markdown)
	if !ok || md.Text.Raw != "# Hello" {
		t.Fatalf("first block = %#v", blocks[0])
	}
	c, ok := blocks[1].(*ast.Callout)
	if !ok || c.Type != "info" || c.Text.Raw != "Be careful." {
		t.Fatalf("second block = %#v", blocks[1])
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	res := mustParse(t, "::data[cols=2]\nrow1\n")
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.CodeUnclosedBlock {
		t.Fatalf("diagnostics = %v, want one unclosed-block", res.Diagnostics)
	}
	d, ok := res.Document.Blocks[0].(*ast.Data)
	if !ok || d.Raw != "row1" {
		t.Fatalf("block = %#v", res.Document.Blocks[0])
	}
	if !res.HasErrors() {
		t.Fatal("unclosed-block should surface through HasErrors")
	}
}

func TestParseSiteWithPage(t *testing.T) {
	res := mustParse(t, "::site\n::page[title=Home]\n# Welcome\n::\n::\n")
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	site, ok := res.Document.Blocks[0].(*ast.Site)
	if !ok {
		t.Fatalf("block = %#v", res.Document.Blocks[0])
	}
	pages := site.Pages()
	if len(pages) != 1 || pages[0].Title != "Home" {
		t.Fatalf("pages = %+v", pages)
	}
	if len(pages[0].Children) != 1 {
		t.Fatalf("page children = %+v", pages[0].Children)
	}
	md, ok := pages[0].Children[0].(*ast.Markdown)
	if !ok || md.Text.Raw != "# Welcome" {
		t.Fatalf("page child = %#v", pages[0].Children[0])
	}
}

func TestParseStandalonePage(t *testing.T) {
	res := mustParse(t, "::page[title=Home]\n# Welcome\n::\n")
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	p, ok := res.Document.Blocks[0].(*ast.Page)
	if !ok || p.Title != "Home" {
		t.Fatalf("block = %#v", res.Document.Blocks[0])
	}
	md, ok := p.Children[0].(*ast.Markdown)
	if !ok || md.Text.Raw != "# Welcome" {
		t.Fatalf("page child = %#v", p.Children[0])
	}
}

func TestParseUnknownDirectiveRoundTrips(t *testing.T) {
	src := "::widget[x=1]\nstuff\n::\n"
	res := mustParse(t, src)
	u, ok := res.Document.Blocks[0].(*ast.Unknown)
	if !ok || u.Name != "widget" || u.RawAttrs != "x=1" || u.Body != "stuff" {
		t.Fatalf("block = %#v", res.Document.Blocks[0])
	}
	want := []diag.Code{diag.CodeUnknownDirective}
	if got := codes(res.Diagnostics); !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	if out := surfdoc.Serialize(res.Document); out != src {
		t.Fatalf("serialized = %q, want the input back", out)
	}
}

func TestParseMetricValueFallback(t *testing.T) {
	res := mustParse(t, "::metric[value=notanumber]\n::\n")
	m, ok := res.Document.Blocks[0].(*ast.Metric)
	if !ok {
		t.Fatalf("block = %#v", res.Document.Blocks[0])
	}
	if m.Value != ast.String("notanumber") {
		t.Fatalf("value = %#v, want the raw string fallback", m.Value)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.CodeAttrTypeMismatch {
		t.Fatalf("diagnostics = %v, want one attr-type-mismatch", res.Diagnostics)
	}
}

func TestParseFrontMatter(t *testing.T) {
	src := strings.Join([]string{
		"---",
		"title: Release Notes",
		"type: note",
		"tags: [v2, parser]",
		"owner: infra",
		"---",
		"",
		"Body text.",
	}, "\n")
	res := mustParse(t, src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	fm := res.Document.FrontMatter
	if fm.Title != "Release Notes" || fm.Type != "note" {
		t.Fatalf("front matter = %+v", fm)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"v2", "parser"}) {
		t.Fatalf("tags = %v", fm.Tags)
	}
	if fm.Extra["owner"] != "infra" {
		t.Fatalf("extra = %v", fm.Extra)
	}
	if md, ok := res.Document.Blocks[0].(*ast.Markdown); !ok || md.Text.Raw != "Body text." {
		t.Fatalf("block = %#v", res.Document.Blocks[0])
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	res, err := surfdoc.Parse([]byte("ok \xff\xfe text"))
	if res != nil {
		t.Fatalf("result = %+v, want nil", res)
	}
	var encErr *surfdoc.EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("err = %v, want *EncodingError", err)
	}
	if encErr.Offset != 3 {
		t.Fatalf("offset = %d, want 3", encErr.Offset)
	}
}

func TestParseNormalizesBOMAndCRLF(t *testing.T) {
	res := mustParse(t, "\uFEFF# Title\r\n\r\n::summary\r\nShort.\r\n::\r\n")
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	md, ok := res.Document.Blocks[0].(*ast.Markdown)
	if !ok || md.Text.Raw != "# Title" {
		t.Fatalf("first block = %#v", res.Document.Blocks[0])
	}
	if md.Span.Start != 0 {
		t.Fatalf("span = %+v, want offsets into the normalized text", md.Span)
	}
	s, ok := res.Document.Blocks[1].(*ast.Summary)
	if !ok || s.Text.Raw != "Short." {
		t.Fatalf("second block = %#v", res.Document.Blocks[1])
	}
}

func TestParseEmptyInput(t *testing.T) {
	res := mustParse(t, "")
	if len(res.Document.Blocks) != 0 || len(res.Diagnostics) != 0 {
		t.Fatalf("result = %+v", res)
	}
	if out := surfdoc.Serialize(res.Document); out != "" {
		t.Fatalf("serialized = %q, want empty", out)
	}
}

func TestParseDuplicateIDFirstWins(t *testing.T) {
	res := mustParse(t, "::callout[id=note, type=info]\none\n::\n\n::summary[id=note]\ntwo\n::\n")
	dup := 0
	for _, d := range res.Diagnostics {
		if d.Code == diag.CodeDuplicateID {
			dup++
		}
	}
	if dup != 1 {
		t.Fatalf("diagnostics = %v, want one duplicate-id", res.Diagnostics)
	}
	b, ok := res.Document.ByID("note")
	if !ok {
		t.Fatal("note not indexed")
	}
	if _, ok := b.(*ast.Callout); !ok {
		t.Fatalf("ByID = %#v, want the first declaration", b)
	}
}

func TestDiagnosticsMergedAndOrdered(t *testing.T) {
	res := mustParse(t, "::metric[value=bad]\n::\n\n::data[cols=2]\nrow\n")
	want := []diag.Code{diag.CodeAttrTypeMismatch, diag.CodeUnclosedBlock}
	if got := codes(res.Diagnostics); !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
}

func TestValidateParsedDocument(t *testing.T) {
	res := mustParse(t, "::nav\n- [Guide](#missing)\n::\n")
	ds := surfdoc.Validate(res.Document)
	if len(ds) != 1 || ds[0].Code != diag.CodeUnknownReference {
		t.Fatalf("validate = %v, want one unknown-reference", ds)
	}
	if !reflect.DeepEqual(codes(res.Diagnostics), codes(ds)) {
		t.Fatalf("parse reported %v, validate %v", codes(res.Diagnostics), codes(ds))
	}
}

func TestBuilderDocumentRoundTrips(t *testing.T) {
	doc := builder.New().
		Title("Launch Plan").
		Markdown("# Launch").
		Callout("info", "Keep the scope small.").
		MustBuild()
	if ds := surfdoc.Validate(doc); len(ds) != 0 {
		t.Fatalf("validate = %v", ds)
	}
	out := surfdoc.Serialize(doc)
	res := mustParse(t, out)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("reparse diagnostics = %v", res.Diagnostics)
	}
	if res.Document.FrontMatter.Title != "Launch Plan" {
		t.Fatalf("front matter = %+v", res.Document.FrontMatter)
	}
	if len(res.Document.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(res.Document.Blocks))
	}
}

func TestParseDeterminism(t *testing.T) {
	src := fixture(t, "landing.surf")
	first := mustParse(t, src)
	second := mustParse(t, src)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same input parsed to different results")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	for _, path := range fixturePaths(t) {
		t.Run(filepath.Base(path), func(t *testing.T) {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read fixture: %v", err)
			}
			first, err := surfdoc.Parse(raw)
			if err != nil {
				t.Fatalf("parse fixture: %v", err)
			}
			canonical := surfdoc.Serialize(first.Document)

			second, err := surfdoc.ParseString(canonical)
			if err != nil {
				t.Fatalf("reparse canonical text: %v", err)
			}
			if got, want := blockKinds(second.Document.Blocks), blockKinds(first.Document.Blocks); !reflect.DeepEqual(got, want) {
				t.Errorf("reparse changed the block sequence: %v, want %v", got, want)
			}
			if again := surfdoc.Serialize(second.Document); again != canonical {
				t.Errorf("canonical text is not a fixed point:\n--- first ---\n%s\n--- second ---\n%s", canonical, again)
			}
			if extra := newCodes(first.Diagnostics, second.Diagnostics); len(extra) != 0 {
				t.Errorf("reparse introduced diagnostics: %v", extra)
			}
		})
	}
}

func fixturePaths(t *testing.T) []string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", "roundtrip", "*.surf"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no roundtrip fixtures found")
	}
	return paths
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", "roundtrip", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(raw)
}

func blockKinds(blocks []ast.Block) []ast.Kind {
	out := make([]ast.Kind, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Kind())
	}
	return out
}

// newCodes returns the codes present in after but absent from before.
func newCodes(before, after []diag.Diagnostic) []diag.Code {
	seen := map[diag.Code]bool{}
	for _, d := range before {
		seen[d.Code] = true
	}
	var out []diag.Code
	for _, d := range after {
		if !seen[d.Code] {
			out = append(out, d.Code)
		}
	}
	return out
}
