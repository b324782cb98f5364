// Package inline is the inline text engine: it runs prose through
// goldmark once and maps the result onto the closed ast.Inline union, so
// downstream consumers style text without ever re-parsing markdown.
//
// Only inline constructs survive the mapping (emphasis, strong, code
// spans, links, images, strikethrough, breaks). Block-level structure in
// the prose is flattened; the raw text keeps it for round-tripping.
package inline

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-surfdoc/ast"
)

// engine is stateless; one instance serves all parses.
var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
	),
)

// Rich builds an ast.Rich from raw prose: the text verbatim plus its
// parsed inline spans.
func Rich(raw string) ast.Rich {
	return ast.Rich{Raw: raw, Spans: Parse(raw)}
}

// Parse maps raw prose to inline spans. Blank input yields nil. Parse
// never fails; constructs outside the union flatten to plain text.
func Parse(raw string) []ast.Inline {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	src := []byte(raw)
	doc := engine.Parser().Parse(text.NewReader(src))
	return convertBlocks(doc, src, "\n\n")
}

// convertBlocks joins the inline content of sibling block nodes with a
// plain-text separator.
func convertBlocks(parent gast.Node, src []byte, sep string) []ast.Inline {
	var out []ast.Inline
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		spans := convertBlock(c, src)
		if len(spans) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, ast.Text{Value: sep})
		}
		out = append(out, spans...)
	}
	return coalesce(out)
}

func convertBlock(n gast.Node, src []byte) []ast.Inline {
	switch n.Kind() {
	case gast.KindParagraph, gast.KindHeading, gast.KindTextBlock:
		return convertInlines(n, src)
	case gast.KindFencedCodeBlock, gast.KindCodeBlock:
		if v := strings.TrimRight(linesText(n, src), "\n"); v != "" {
			return []ast.Inline{ast.CodeSpan{Value: v}}
		}
		return nil
	case gast.KindThematicBreak:
		return nil
	case gast.KindHTMLBlock:
		if v := strings.TrimRight(linesText(n, src), "\n"); v != "" {
			return []ast.Inline{ast.Text{Value: v}}
		}
		return nil
	default:
		return convertBlocks(n, src, "\n")
	}
}

func convertInlines(parent gast.Node, src []byte) []ast.Inline {
	var out []ast.Inline
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, convertInline(c, src)...)
	}
	return coalesce(out)
}

// coalesce merges adjacent plain-text spans so word-boundary splits from
// the parser do not leak into the union. Newline-only spans mark soft and
// paragraph breaks and stay separate.
func coalesce(spans []ast.Inline) []ast.Inline {
	out := spans[:0]
	for _, s := range spans {
		t, ok := s.(ast.Text)
		if ok && !isBreakText(t) && len(out) > 0 {
			if prev, ok := out[len(out)-1].(ast.Text); ok && !isBreakText(prev) {
				out[len(out)-1] = ast.Text{Value: prev.Value + t.Value}
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func isBreakText(t ast.Text) bool {
	return t.Value == "\n" || t.Value == "\n\n"
}

func convertInline(n gast.Node, src []byte) []ast.Inline {
	switch v := n.(type) {
	case *gast.Text:
		var spans []ast.Inline
		if val := string(v.Segment.Value(src)); val != "" {
			spans = append(spans, ast.Text{Value: val})
		}
		switch {
		case v.HardLineBreak():
			spans = append(spans, ast.HardBreak{})
		case v.SoftLineBreak():
			spans = append(spans, ast.Text{Value: "\n"})
		}
		return spans
	case *gast.String:
		return []ast.Inline{ast.Text{Value: string(v.Value)}}
	case *gast.Emphasis:
		children := convertInlines(n, src)
		if v.Level >= 2 {
			return []ast.Inline{ast.Strong{Children: children}}
		}
		return []ast.Inline{ast.Emph{Children: children}}
	case *east.Strikethrough:
		return []ast.Inline{ast.Strike{Children: convertInlines(n, src)}}
	case *gast.CodeSpan:
		return []ast.Inline{ast.CodeSpan{Value: textOf(n, src)}}
	case *gast.Link:
		return []ast.Inline{ast.Link{
			Dest:     string(v.Destination),
			Title:    string(v.Title),
			Children: convertInlines(n, src),
		}}
	case *gast.AutoLink:
		url := string(v.URL(src))
		return []ast.Inline{ast.Link{
			Dest:     url,
			Children: []ast.Inline{ast.Text{Value: string(v.Label(src))}},
		}}
	case *gast.Image:
		return []ast.Inline{ast.Image{
			Dest: string(v.Destination),
			Alt:  textOf(n, src),
		}}
	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			b.Write(seg.Value(src))
		}
		return []ast.Inline{ast.Text{Value: b.String()}}
	default:
		if n.ChildCount() > 0 {
			return convertInlines(n, src)
		}
		if t := textOf(n, src); t != "" {
			return []ast.Inline{ast.Text{Value: t}}
		}
		return nil
	}
}

// textOf collects the literal text below a node.
func textOf(n gast.Node, src []byte) string {
	var b strings.Builder
	_ = gast.Walk(n, func(c gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gast.Text:
			b.Write(t.Segment.Value(src))
		case *gast.String:
			b.Write(t.Value)
		}
		return gast.WalkContinue, nil
	})
	return b.String()
}

// linesText collects the raw source lines a block node covers.
func linesText(n gast.Node, src []byte) string {
	var b strings.Builder
	ls := n.Lines()
	for i := 0; i < ls.Len(); i++ {
		seg := ls.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
