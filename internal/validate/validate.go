// Package validate checks an assembled document for problems the
// block-level resolver cannot see: routes declared twice, links to ids
// that do not exist, pages nothing points to, containers with no
// content. Validation never mutates the tree; it only reports.
package validate

import (
	"strings"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/assemble"
)

// Document validates doc against the given ID index. index is the
// assembler's table; pass nil for a document that did not come through
// the parser, such as builder output, and the structural findings the
// assembler would have reported (duplicate ids, placement, empty
// bodies) are derived here before the cross-reference checks run.
func Document(doc *ast.Document, index *ast.Index) []diag.Diagnostic {
	var ds []diag.Diagnostic
	if index == nil {
		var structural []diag.Diagnostic
		index, structural = assemble.BuildIndex(doc.Blocks)
		ds = append(ds, structural...)
		ds = append(ds, assemble.Nesting(doc.Blocks)...)
		ds = append(ds, emptyBodies(doc.Blocks)...)
	}
	ds = append(ds, routes(doc.Blocks)...)
	ds = append(ds, references(doc.Blocks, index)...)
	ds = append(ds, orphans(doc.Blocks)...)
	ds = append(ds, containers(doc.Blocks)...)
	return ds
}

// routes reports pages that declare a route another page already owns.
// The first declaration keeps the route in the ID index, so the later
// page is the one flagged.
func routes(blocks []ast.Block) []diag.Diagnostic {
	var ds []diag.Diagnostic
	seen := map[string]bool{}
	ast.Walk(blocks, func(b ast.Block) bool {
		p, ok := b.(*ast.Page)
		if !ok || p.Route == "" {
			return true
		}
		if seen[p.Route] {
			ds = append(ds, diag.New(diag.CodeDuplicateRoute, p.Span,
				"route %q is already declared, first page wins", p.Route))
			return true
		}
		seen[p.Route] = true
		return true
	})
	return ds
}

// references checks same-document link targets against the ID index.
// Nav items, footer links, cta hrefs and markdown links are the
// reference carriers; only "#anchor" targets are checked, external and
// route-style hrefs pass through.
func references(blocks []ast.Block, ix *ast.Index) []diag.Diagnostic {
	var ds []diag.Diagnostic
	check := func(href string, span ast.Span) {
		target, ok := anchorTarget(href)
		if !ok || ix.Has(target) {
			return
		}
		ds = append(ds, diag.New(diag.CodeUnknownReference, span,
			"link target %q does not match any id in the document", href))
	}
	ast.Walk(blocks, func(b ast.Block) bool {
		switch n := b.(type) {
		case *ast.Nav:
			for _, it := range n.Items {
				check(it.Href, n.Span)
			}
		case *ast.Footer:
			for _, sec := range n.Sections {
				for _, l := range sec.Links {
					check(l.Href, n.Span)
				}
			}
			for _, s := range n.Social {
				check(s.Href, n.Span)
			}
		case *ast.Cta:
			check(n.Href, n.Span)
		case *ast.Markdown:
			for _, dest := range linkDests(n.Text.Spans) {
				check(dest, n.Span)
			}
		}
		return true
	})
	return ds
}

// anchorTarget extracts the id from a same-document href. A bare "#"
// points at the top of the page and is never a reference.
func anchorTarget(href string) (string, bool) {
	t, ok := strings.CutPrefix(href, "#")
	if !ok || t == "" {
		return "", false
	}
	return t, true
}

// linkDests collects link destinations from an inline tree, including
// links nested inside styled runs.
func linkDests(spans []ast.Inline) []string {
	var out []string
	var walk func([]ast.Inline)
	walk = func(ss []ast.Inline) {
		for _, s := range ss {
			switch n := s.(type) {
			case ast.Link:
				out = append(out, n.Dest)
				walk(n.Children)
			case ast.Emph:
				walk(n.Children)
			case ast.Strong:
				walk(n.Children)
			case ast.Strike:
				walk(n.Children)
			}
		}
	}
	walk(spans)
	return out
}

// orphans reports site pages nothing links to. The root route "/" is
// the entry point and always reachable; every other page must be named
// by a nav item, a footer link, or a link inside another page.
func orphans(blocks []ast.Block) []diag.Diagnostic {
	var ds []diag.Diagnostic
	ast.Walk(blocks, func(b ast.Block) bool {
		if s, ok := b.(*ast.Site); ok {
			ds = append(ds, orphanPages(s)...)
		}
		return true
	})
	return ds
}

func orphanPages(site *ast.Site) []diag.Diagnostic {
	pages := site.Pages()
	if len(pages) == 0 {
		return nil
	}

	chrome := map[string]bool{}
	if nav := site.SiteNav(); nav != nil {
		for _, it := range nav.Items {
			addRoute(chrome, it.Href)
		}
	}
	if f := site.SiteFooter(); f != nil {
		for _, sec := range f.Sections {
			for _, l := range sec.Links {
				addRoute(chrome, l.Href)
			}
		}
	}

	linked := make([]map[string]bool, len(pages))
	for i, p := range pages {
		linked[i] = map[string]bool{}
		collectRoutes(p.Children, linked[i])
	}

	var ds []diag.Diagnostic
	for i, p := range pages {
		if p.Route == "" || p.Route == "/" || chrome[p.Route] {
			continue
		}
		reachable := false
		for j := range pages {
			if j != i && linked[j][p.Route] {
				reachable = true
				break
			}
		}
		if !reachable {
			ds = append(ds, diag.New(diag.CodeOrphanPage, p.Span,
				"page %q is not linked from the nav, footer, or any other page", p.Route))
		}
	}
	return ds
}

// collectRoutes gathers every link destination in a subtree, normalized
// to a route.
func collectRoutes(blocks []ast.Block, into map[string]bool) {
	ast.Walk(blocks, func(b ast.Block) bool {
		switch n := b.(type) {
		case *ast.Markdown:
			for _, dest := range linkDests(n.Text.Spans) {
				addRoute(into, dest)
			}
		case *ast.Nav:
			for _, it := range n.Items {
				addRoute(into, it.Href)
			}
		case *ast.Footer:
			for _, sec := range n.Sections {
				for _, l := range sec.Links {
					addRoute(into, l.Href)
				}
			}
		case *ast.Cta:
			addRoute(into, n.Href)
		case *ast.Hero:
			for _, bt := range n.Buttons {
				addRoute(into, bt.Href)
			}
		case *ast.Features:
			for _, c := range n.Cards {
				addRoute(into, c.LinkHref)
			}
		case *ast.ProductCard:
			addRoute(into, n.CtaHref)
		}
		return true
	})
}

func addRoute(m map[string]bool, href string) {
	if t := routeTarget(href); t != "" {
		m[t] = true
	}
}

// routeTarget strips the query and fragment from an href so it can be
// matched against a page route.
func routeTarget(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return href
}

// containers reports layout containers with nothing in them.
func containers(blocks []ast.Block) []diag.Diagnostic {
	var ds []diag.Diagnostic
	ast.Walk(blocks, func(b ast.Block) bool {
		switch n := b.(type) {
		case *ast.Columns:
			if len(n.Cols) == 0 {
				ds = append(ds, emptyContainer(b))
			}
		case *ast.Tabs:
			if len(n.Panels) == 0 {
				ds = append(ds, emptyContainer(b))
			}
		case *ast.Site:
			if len(n.Children) == 0 {
				ds = append(ds, emptyContainer(b))
			}
		}
		return true
	})
	return ds
}

func emptyContainer(b ast.Block) diag.Diagnostic {
	return diag.New(diag.CodeEmptyContainer, b.Base().Span,
		"%q contains no blocks", b.Kind())
}

// emptyBodies re-derives the resolver's empty body findings from the
// typed tree, for documents that were never parsed.
func emptyBodies(blocks []ast.Block) []diag.Diagnostic {
	var ds []diag.Diagnostic
	ast.Walk(blocks, func(b ast.Block) bool {
		if bodyless(b) {
			ds = append(ds, diag.New(diag.CodeEmptyBody, b.Base().Span,
				"%q has an empty body", b.Kind()))
		}
		return true
	})
	return ds
}

// bodyless reports whether a block that requires body content has none.
// The kind set mirrors what the resolver flags at parse time: row and
// layout kinds, but not text kinds, and not the containers the
// empty-container check owns.
func bodyless(b ast.Block) bool {
	switch n := b.(type) {
	case *ast.Data:
		return len(n.Headers) == 0 && len(n.Rows) == 0 && strings.TrimSpace(n.Raw) == ""
	case *ast.Tasks:
		return len(n.Items) == 0
	case *ast.Style:
		return len(n.Props) == 0
	case *ast.Faq:
		return len(n.Items) == 0
	case *ast.PricingTable:
		return len(n.Headers) == 0 && len(n.Rows) == 0
	case *ast.Nav:
		return len(n.Items) == 0
	case *ast.Form:
		return len(n.Fields) == 0
	case *ast.Gallery:
		return len(n.Items) == 0
	case *ast.Footer:
		return len(n.Sections) == 0 && len(n.Social) == 0 && n.Copyright == ""
	case *ast.Hero:
		return n.Headline == "" && n.Subtitle == "" && len(n.Buttons) == 0
	case *ast.Features:
		return len(n.Cards) == 0
	case *ast.Steps:
		return len(n.Items) == 0
	case *ast.Stats:
		return len(n.Items) == 0
	case *ast.Comparison:
		return len(n.Headers) == 0 && len(n.Rows) == 0
	case *ast.BeforeAfter:
		return len(n.Before) == 0 && len(n.After) == 0
	case *ast.Pipeline:
		return len(n.Steps) == 0
	case *ast.ProductCard:
		return n.Title == "" && n.Subtitle == "" && n.Body.IsZero() && len(n.Features) == 0
	case *ast.Details:
		return len(n.Children) == 0
	case *ast.Section:
		return len(n.Children) == 0
	case *ast.Page:
		return len(n.Children) == 0
	}
	return false
}
