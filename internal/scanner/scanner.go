// Package scanner splits SurfDoc body text into an ordered list of
// segments: prose runs and fenced directive blocks. It understands fence
// boundaries only; attribute text and block bodies pass through verbatim
// for later stages.
package scanner

import (
	"strings"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
)

// SegmentKind tags a scanned segment.
type SegmentKind int

const (
	// Prose is a run of markdown text between fences.
	Prose SegmentKind = iota
	// Fence is one directive block, opening fence through closing fence.
	Fence
)

// Segment is one scanned region of the source. Offsets are absolute
// (the scan base is already applied).
type Segment struct {
	Kind SegmentKind
	Span ast.Span

	// Prose fields.
	Text string

	// Fence fields. Body excludes the fence lines and keeps interior
	// lines verbatim, joined by \n. Closed is false when the block was
	// implicitly closed at end of input.
	Name      string
	RawAttrs  string
	AttrStart int
	Body      string
	BodyStart int
	Closed    bool
}

// Scan splits src into segments. base is the byte offset of src within
// the full document, so spans and diagnostics anchor to the original
// text. Fences nest by depth (the length of the colon run): a closing
// fence matches the innermost open fence of the same depth, so nested
// directives stay inside the outer block's body. A fence left open at
// end of input is closed implicitly and reported; a closer with nothing
// open is reported and dropped.
func Scan(src string, base int) ([]Segment, []diag.Diagnostic) {
	lines := splitLines(src)
	var (
		segs  []Segment
		ds    []diag.Diagnostic
		prose []line
	)

	flushProse := func() {
		if len(prose) == 0 {
			return
		}
		first, last := prose[0], prose[len(prose)-1]
		parts := make([]string, len(prose))
		for i, ln := range prose {
			parts[i] = ln.text
		}
		text := strings.TrimSpace(strings.Join(parts, "\n"))
		if text != "" {
			segs = append(segs, Segment{
				Kind: Prose,
				Text: text,
				Span: ast.Span{Start: base + first.start, End: base + last.end},
			})
		}
		prose = prose[:0]
	}

	i := 0
	for i < len(lines) {
		ln := lines[i]
		if open, ok := parseOpen(ln.text); ok {
			flushProse()
			closeIdx := findClose(lines, i+1, open.depth)

			seg := Segment{
				Kind:      Fence,
				Name:      open.name,
				RawAttrs:  open.rawAttrs,
				AttrStart: base + ln.start + open.attrOffset,
				Closed:    closeIdx >= 0,
			}

			bodyEnd := len(lines)
			spanEnd := len(src)
			if closeIdx >= 0 {
				bodyEnd = closeIdx
				spanEnd = lines[closeIdx].end
			}
			if i+1 < bodyEnd {
				parts := make([]string, 0, bodyEnd-(i+1))
				for _, bl := range lines[i+1 : bodyEnd] {
					parts = append(parts, bl.text)
				}
				seg.Body = strings.Join(parts, "\n")
				seg.BodyStart = base + lines[i+1].start
			} else {
				seg.BodyStart = base + ln.end
			}
			seg.Span = ast.Span{Start: base + ln.start, End: base + spanEnd}

			if closeIdx < 0 {
				ds = append(ds, diag.New(diag.CodeUnclosedBlock,
					ast.Span{Start: base + ln.start, End: base + ln.end},
					"block %q is never closed, closed implicitly at end of input", open.name))
				i = len(lines)
			} else {
				i = closeIdx + 1
			}
			segs = append(segs, seg)
			continue
		}
		if _, ok := parseClose(ln.text); ok {
			flushProse()
			ds = append(ds, diag.New(diag.CodeUnexpectedClose,
				ast.Span{Start: base + ln.start, End: base + ln.end},
				"closing fence with no open block"))
			i++
			continue
		}
		prose = append(prose, ln)
		i++
	}
	flushProse()
	return segs, ds
}

// OpenDepth reports whether a single line opens a fence, and at what
// colon depth. Container resolvers use it to skip nested blocks whole
// when splitting a body into groups.
func OpenDepth(text string) (int, bool) {
	f, ok := parseOpen(text)
	return f.depth, ok
}

// CloseDepth reports whether a single line is a bare closing fence, and
// at what depth.
func CloseDepth(text string) (int, bool) {
	return parseClose(text)
}

// findClose locates the closing fence matching an open of the given
// depth, counting same-depth opens so nested blocks close first.
func findClose(lines []line, from, depth int) int {
	nesting := 0
	for j := from; j < len(lines); j++ {
		if d, ok := parseClose(lines[j].text); ok && d == depth {
			if nesting == 0 {
				return j
			}
			nesting--
			continue
		}
		if open, ok := parseOpen(lines[j].text); ok && open.depth == depth {
			nesting++
		}
	}
	return -1
}

type openFence struct {
	name       string
	rawAttrs   string
	attrOffset int
	depth      int
}

// parseOpen recognizes ::name or ::name[attrs] (any colon depth >= 2),
// allowing surrounding whitespace. Text after the closing bracket makes
// the line prose, not a fence.
func parseOpen(text string) (openFence, bool) {
	trimmed := strings.TrimSpace(text)
	lead := len(text) - len(strings.TrimLeft(text, " \t"))

	depth := 0
	for depth < len(trimmed) && trimmed[depth] == ':' {
		depth++
	}
	if depth < 2 || depth >= len(trimmed) {
		return openFence{}, false
	}
	rest := trimmed[depth:]

	nameEnd := 0
	for nameEnd < len(rest) && isNameByte(rest[nameEnd], nameEnd == 0) {
		nameEnd++
	}
	if nameEnd == 0 {
		return openFence{}, false
	}
	name := rest[:nameEnd]
	after := rest[nameEnd:]

	if after == "" {
		return openFence{name: name, depth: depth}, true
	}
	if after[0] != '[' {
		return openFence{}, false
	}
	closeBr := strings.LastIndexByte(after, ']')
	if closeBr < 0 {
		// No closing bracket: take the rest of the line as attribute
		// text and let the attribute parser report it.
		return openFence{
			name:       name,
			rawAttrs:   after[1:],
			attrOffset: lead + depth + nameEnd + 1,
			depth:      depth,
		}, true
	}
	if strings.TrimSpace(after[closeBr+1:]) != "" {
		return openFence{}, false
	}
	return openFence{
		name:       name,
		rawAttrs:   after[1:closeBr],
		attrOffset: lead + depth + nameEnd + 1,
		depth:      depth,
	}, true
}

// parseClose recognizes a bare colon run (:: or deeper) and returns its
// depth.
func parseClose(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 {
		return 0, false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != ':' {
			return 0, false
		}
	}
	return len(trimmed), true
}

func isNameByte(b byte, first bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case first:
		return false
	case b >= '0' && b <= '9', b == '-':
		return true
	default:
		return false
	}
}

type line struct {
	text  string
	start int
	end   int
}

func splitLines(src string) []line {
	var out []line
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			out = append(out, line{text: src[start:i], start: start, end: i})
			start = i + 1
		}
	}
	if start < len(src) {
		out = append(out, line{text: src[start:], start: start, end: len(src)})
	}
	return out
}
