// Package attrs parses the bracketed attribute list of a directive
// fence: the text between [ and ] in ::name[key=value, flag]. The
// grammar is a single line; parsing never fails, it recovers and reports
// through diagnostics.
package attrs

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
)

// Parse reads an attribute list. base is the byte offset of raw within
// the document source, used to anchor diagnostic spans.
//
// Entries are separated by commas and/or whitespace. An entry is either
// key=value or a bare flag, which parses as Bool(true). Values are
// double- or single-quoted strings, bare tokens, numbers, true/false, or
// single-level [a, b] lists. Keys are normalized to lowercase; a
// repeated key keeps its position and the last value wins.
func Parse(raw string, base int) (ast.Attrs, []diag.Diagnostic) {
	p := &parser{src: raw, base: base}
	var out ast.Attrs
	seen := make(map[string]bool)

	for {
		p.skipSeparators()
		if p.eof() {
			break
		}
		start := p.pos
		key := p.scanKey()
		if key == "" {
			// Stray punctuation; skip one byte and resync.
			p.pos++
			continue
		}
		lower := strings.ToLower(key)

		var val ast.AttrValue = ast.Bool(true)
		if !p.eof() && p.src[p.pos] == '=' {
			p.pos++
			val = p.scanValue()
		}

		if seen[lower] {
			p.report(diag.CodeDuplicateAttr, start,
				"attribute %q declared more than once, last value wins", lower)
		}
		seen[lower] = true
		out.Set(lower, val)
	}
	return out, p.ds
}

type parser struct {
	src  string
	pos  int
	base int
	ds   []diag.Diagnostic
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) report(code diag.Code, start int, format string, args ...any) {
	span := ast.Span{Start: p.base + start, End: p.base + p.pos}
	p.ds = append(p.ds, diag.New(code, span, format, args...))
}

func isSeparator(b byte) bool {
	return b == ',' || b == ' ' || b == '\t'
}

func (p *parser) skipSeparators() {
	for !p.eof() && isSeparator(p.src[p.pos]) {
		p.pos++
	}
}

// scanKey reads up to '=' or a separator.
func (p *parser) scanKey() string {
	start := p.pos
	for !p.eof() {
		b := p.src[p.pos]
		if b == '=' || isSeparator(b) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) scanValue() ast.AttrValue {
	if p.eof() {
		return ast.String("")
	}
	switch p.src[p.pos] {
	case '"', '\'':
		return p.scanQuoted(p.src[p.pos])
	case '[':
		return p.scanList()
	default:
		return classify(p.scanBare())
	}
}

// scanQuoted consumes a quoted string. An unterminated quote swallows
// the rest of the attribute text as the value and reports malformed-attr.
func (p *parser) scanQuoted(quote byte) ast.AttrValue {
	start := p.pos
	p.pos++ // opening quote
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) {
			next := p.src[p.pos+1]
			if next == quote || next == '\\' {
				b.WriteByte(next)
				p.pos += 2
				continue
			}
			b.WriteByte(c)
			p.pos++
			continue
		}
		if c == quote {
			p.pos++
			return ast.String(b.String())
		}
		b.WriteByte(c)
		p.pos++
	}
	p.report(diag.CodeMalformedAttr, start,
		"unterminated %q quoted value", string(quote))
	return ast.String(p.src[start+1:])
}

// scanList consumes a single-level [a, b, "c"] list. Nested brackets are
// not part of the grammar; an unterminated list degrades to a raw string.
func (p *parser) scanList() ast.AttrValue {
	start := p.pos
	p.pos++ // opening bracket
	var items ast.List
	for {
		for !p.eof() && (isSeparator(p.src[p.pos])) {
			p.pos++
		}
		if p.eof() {
			p.report(diag.CodeMalformedAttr, start, "unterminated list value")
			return ast.String(p.src[start:])
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return items
		}
		switch p.src[p.pos] {
		case '"', '\'':
			items = append(items, p.scanQuoted(p.src[p.pos]))
		default:
			tok := p.scanListToken()
			items = append(items, classify(tok))
		}
	}
}

func (p *parser) scanListToken() string {
	start := p.pos
	for !p.eof() {
		b := p.src[p.pos]
		if b == ',' || b == ']' || b == ' ' || b == '\t' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) scanBare() string {
	start := p.pos
	for !p.eof() && !isSeparator(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// classify maps a bare token to its typed value: true/false to Bool,
// numeric text to Number, anything else to String.
func classify(tok string) ast.AttrValue {
	switch tok {
	case "true":
		return ast.Bool(true)
	case "false":
		return ast.Bool(false)
	}
	if f, ok := numeric(tok); ok {
		return ast.Number(f)
	}
	return ast.String(tok)
}

func numeric(tok string) (float64, bool) {
	if tok == "" {
		return 0, false
	}
	c := rune(tok[0])
	if !unicode.IsDigit(c) && c != '-' && c != '+' && c != '.' {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
