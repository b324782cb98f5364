package ast

import "strings"

// Inline is the closed union of styled-text nodes. Prose is parsed once,
// at document build time, so consumers never re-run a markdown parser to
// style text.
type Inline interface {
	inline()
}

// Text is a literal text run.
type Text struct {
	Value string
}

// Emph is emphasized text (*x* or _x_).
type Emph struct {
	Children []Inline
}

// Strong is strongly emphasized text (**x**).
type Strong struct {
	Children []Inline
}

// Strike is struck-through text (~~x~~).
type Strike struct {
	Children []Inline
}

// CodeSpan is inline code (`x`).
type CodeSpan struct {
	Value string
}

// Link is a hyperlink with styled label text.
type Link struct {
	Dest     string
	Title    string
	Children []Inline
}

// Image is an inline image reference.
type Image struct {
	Dest string
	Alt  string
}

// HardBreak is an explicit line break.
type HardBreak struct{}

func (Text) inline()      {}
func (Emph) inline()      {}
func (Strong) inline()    {}
func (Strike) inline()    {}
func (CodeSpan) inline()  {}
func (Link) inline()      {}
func (Image) inline()     {}
func (HardBreak) inline() {}

// Rich is a prose value. Raw preserves the author's text exactly as
// written, byte for byte, so serialization can reproduce it; Spans carries
// the parsed inline tree.
type Rich struct {
	Raw   string
	Spans []Inline
}

// IsZero reports whether the value holds no text.
func (r Rich) IsZero() bool { return r.Raw == "" }

// Plain returns the text with inline styling stripped.
func (r Rich) Plain() string {
	var b strings.Builder
	plainInlines(&b, r.Spans)
	return b.String()
}

func plainInlines(b *strings.Builder, spans []Inline) {
	for _, s := range spans {
		switch n := s.(type) {
		case Text:
			b.WriteString(n.Value)
		case CodeSpan:
			b.WriteString(n.Value)
		case Emph:
			plainInlines(b, n.Children)
		case Strong:
			plainInlines(b, n.Children)
		case Strike:
			plainInlines(b, n.Children)
		case Link:
			plainInlines(b, n.Children)
		case Image:
			b.WriteString(n.Alt)
		case HardBreak:
			b.WriteByte('\n')
		}
	}
}
