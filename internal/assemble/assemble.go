// Package assemble builds the typed block tree from source text. It runs
// the fence scanner, resolves each directive against the schema, wraps
// prose runs as Markdown blocks, recurses into container bodies, and
// registers every addressable identifier in the document's ID index.
package assemble

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/inline"
	"github.com/goliatone/go-surfdoc/internal/resolve"
	"github.com/goliatone/go-surfdoc/internal/scanner"
	"github.com/goliatone/go-surfdoc/schema"
)

// Document assembles body text into blocks plus the ID index. base is
// the byte offset of body within the full source, so spans stay
// absolute.
func Document(body string, base int) ([]ast.Block, *ast.Index, []diag.Diagnostic) {
	blocks, ds := assemble(body, base, "")
	index, more := BuildIndex(blocks)
	ds = append(ds, more...)
	return blocks, index, ds
}

// assemble scans one nesting level. parent is the enclosing directive
// name, "" at the document top level; it drives the nesting checks and
// the diagnostic tree paths.
func assemble(body string, base int, parent string) ([]ast.Block, []diag.Diagnostic) {
	segs, ds := scanner.Scan(body, base)
	var blocks []ast.Block

	for _, seg := range segs {
		if seg.Kind == scanner.Prose {
			md := &ast.Markdown{Text: inline.Rich(seg.Text)}
			md.Span = seg.Span
			blocks = append(blocks, md)
			continue
		}

		name := seg.Name
		children := func(b string, at int) ([]ast.Block, []diag.Diagnostic) {
			return assemble(b, at, name)
		}
		b, more := resolve.Block(resolve.Fence{
			Name:      seg.Name,
			RawAttrs:  seg.RawAttrs,
			AttrStart: seg.AttrStart,
			Body:      seg.Body,
			BodyStart: seg.BodyStart,
			Span:      seg.Span,
		}, children)
		if d, ok := schema.Lookup(seg.Name); ok && !d.AllowedIn(parent) {
			more = append(more, nestingError(seg, parent))
		}
		ds = append(ds, prefixPath(more, seg.Name)...)
		blocks = append(blocks, b)
	}

	if parent == "site" {
		ds = append(ds, siteChildren(blocks)...)
	}
	return blocks, ds
}

func nestingError(seg scanner.Segment, parent string) diag.Diagnostic {
	span := openLine(seg)
	if parent == "" {
		return diag.New(diag.CodeInvalidNesting, span,
			"%q is not allowed at the document top level", seg.Name)
	}
	return diag.New(diag.CodeInvalidNesting, span,
		"%q is not allowed inside %q", seg.Name, parent)
}

// siteChildren enforces the site content model: pages in any number, at
// most one nav and one footer, nothing else. Offending blocks stay in
// place.
func siteChildren(blocks []ast.Block) []diag.Diagnostic {
	var ds []diag.Diagnostic
	var navs, footers int
	for _, b := range blocks {
		switch b.Kind() {
		case ast.KindPage:
		case ast.KindNav:
			navs++
			if navs > 1 {
				ds = append(ds, diag.New(diag.CodeInvalidNesting, b.Base().Span,
					"site allows a single nav block"))
			}
		case ast.KindFooter:
			footers++
			if footers > 1 {
				ds = append(ds, diag.New(diag.CodeInvalidNesting, b.Base().Span,
					"site allows a single footer block"))
			}
		default:
			ds = append(ds, diag.New(diag.CodeInvalidNesting, b.Base().Span,
				"%q is not allowed inside %q", b.Kind(), "site"))
		}
	}
	return ds
}

// openLine is the opening fence line of a scanned segment.
func openLine(seg scanner.Segment) ast.Span {
	end := seg.BodyStart
	if seg.Body != "" {
		end = seg.BodyStart - 1
	}
	if end < seg.Span.Start {
		end = seg.Span.Start
	}
	return ast.Span{Start: seg.Span.Start, End: end}
}

// prefixPath pushes a tree path element onto each diagnostic, so a
// finding deep in a nested body reads "site > page > data".
func prefixPath(ds []diag.Diagnostic, name string) []diag.Diagnostic {
	for i := range ds {
		if ds[i].Path == "" {
			ds[i] = ds[i].WithPath(name)
		} else {
			ds[i] = ds[i].WithPath(name + " > " + ds[i].Path)
		}
	}
	return ds
}

// Nesting re-derives the placement diagnostics for a tree that did not
// come through the assembler, such as builder output or a hand-built
// document. The findings match what assembly itself would have reported:
// directives outside their allowed parents and site children that break
// the site content model.
func Nesting(blocks []ast.Block) []diag.Diagnostic {
	return nestingWalk(blocks, "", "")
}

func nestingWalk(blocks []ast.Block, parent, path string) []diag.Diagnostic {
	var ds []diag.Diagnostic
	for _, b := range blocks {
		name := b.Kind().String()
		if d, ok := schema.Lookup(name); ok && !d.AllowedIn(parent) {
			var nd diag.Diagnostic
			if parent == "" {
				nd = diag.New(diag.CodeInvalidNesting, b.Base().Span,
					"%q is not allowed at the document top level", name)
			} else {
				nd = diag.New(diag.CodeInvalidNesting, b.Base().Span,
					"%q is not allowed inside %q", name, parent)
			}
			ds = append(ds, nd.WithPath(joinPath(path, name)))
		}
		if kids := ast.Children(b); len(kids) > 0 {
			ds = append(ds, nestingWalk(kids, name, joinPath(path, name))...)
		}
		if s, ok := b.(*ast.Site); ok {
			for _, d := range siteChildren(s.Children) {
				ds = append(ds, d.WithPath(joinPath(path, "site")))
			}
		}
	}
	return ds
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + " > " + name
}

// BuildIndex registers every addressable identifier in the tree:
// declared id attributes and page routes first, then heading anchors
// derived from Markdown prose. Author-declared names take priority; a
// repeated declared id keeps the first entry and reports the later one,
// while derived anchors never collide, they shift to -2, -3 suffixes.
func BuildIndex(blocks []ast.Block) (*ast.Index, []diag.Diagnostic) {
	ix := ast.NewIndex()
	var ds []diag.Diagnostic

	ast.Walk(blocks, func(b ast.Block) bool {
		if id := b.Base().ID; id != "" && !ix.Add(id, b) {
			ds = append(ds, diag.New(diag.CodeDuplicateID, b.Base().Span,
				"id %q is already declared, first declaration wins", id))
		}
		if p, ok := b.(*ast.Page); ok && p.Route != "" {
			ix.Add("page:"+p.Route, b)
		}
		return true
	})

	ast.Walk(blocks, func(b ast.Block) bool {
		md, ok := b.(*ast.Markdown)
		if !ok {
			return true
		}
		for _, h := range headings(md.Text.Raw) {
			addAnchor(ix, h, md)
		}
		return true
	})

	return ix, ds
}

// headings returns the text of every ATX heading in a prose run. Lines
// inside fenced code blocks do not count.
func headings(raw string) []string {
	var out []string
	inCode := false
	for _, line := range strings.Split(raw, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "```") || strings.HasPrefix(t, "~~~") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		level := 0
		for level < len(t) && t[level] == '#' {
			level++
		}
		if level == 0 || level > 6 || level >= len(t) || t[level] != ' ' {
			continue
		}
		text := strings.TrimSpace(t[level+1:])
		// Strip a CommonMark closing sequence, but not a # that is part
		// of the heading text itself.
		if cut := strings.TrimRight(text, "#"); cut != text && strings.HasSuffix(cut, " ") {
			text = strings.TrimRight(cut, " ")
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

func addAnchor(ix *ast.Index, text string, b ast.Block) {
	s := anchorSlug(text)
	if s == "" {
		return
	}
	if ix.Add(s, b) {
		return
	}
	for n := 2; ; n++ {
		if ix.Add(fmt.Sprintf("%s-%d", s, n), b) {
			return
		}
	}
}

// anchorSlug normalizes heading text to an anchor identifier.
func anchorSlug(text string) string {
	normalized, err := slug.Normalize(text)
	if err != nil || normalized == "" {
		normalized = strings.ToLower(strings.Join(strings.Fields(text), "-"))
	}
	return normalized
}
