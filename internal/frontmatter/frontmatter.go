// Package frontmatter extracts the optional metadata section between the
// leading --- delimiters of a SurfDoc source. Extraction is tolerant: a
// malformed section becomes diagnostics and the text falls back to being
// body, never an error.
package frontmatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
)

// Result is the outcome of extraction. Body is the text after the front
// matter (the whole source when none was found or it was malformed), and
// BodyOffset its byte offset into src.
type Result struct {
	FrontMatter ast.FrontMatter
	Body        string
	BodyOffset  int
	Diags       []diag.Diagnostic
}

const delimiter = "---"

// Extract splits src into front matter and body. The section opens only
// when the very first line is ---; a missing closing delimiter reports
// front-matter-unterminated, undecodable YAML reports front-matter-syntax,
// and both fall back to treating the whole text as body. Known keys that
// fail the metadata schema are demoted to Extra with a
// front-matter-schema warning each.
func Extract(src string) Result {
	if !hasOpeningDelimiter(src) {
		return Result{Body: src}
	}

	end, next := findClosing(src)
	if end < 0 {
		span := ast.Span{Start: 0, End: firstLineEnd(src)}
		return Result{
			Body: src,
			Diags: []diag.Diagnostic{diag.New(diag.CodeFrontMatterUnterminated,
				span, "front matter opened but never closed")},
		}
	}

	section := src[:end] + "\n"
	span := ast.Span{Start: 0, End: end}

	var raw map[string]any
	if _, err := frontmatter.Parse(strings.NewReader(section), &raw); err != nil {
		return Result{
			Body: src,
			Diags: []diag.Diagnostic{diag.New(diag.CodeFrontMatterSyntax,
				span, "front matter is not valid YAML: %v", err)},
		}
	}

	fm, ds := mapFields(raw, span)
	return Result{
		FrontMatter: fm,
		Body:        src[next:],
		BodyOffset:  next,
		Diags:       ds,
	}
}

func hasOpeningDelimiter(src string) bool {
	if src == delimiter {
		return true
	}
	return strings.HasPrefix(src, delimiter+"\n")
}

// findClosing returns the offset just past the closing delimiter line
// (end) and the offset where the body starts (next), or -1 when the
// section never closes. Scanning starts after the opening line.
func findClosing(src string) (end, next int) {
	pos := firstLineEnd(src)
	if pos < len(src) {
		pos++ // the newline
	}
	for pos <= len(src) {
		lineEnd := strings.IndexByte(src[pos:], '\n')
		var line string
		if lineEnd < 0 {
			line = src[pos:]
			lineEnd = len(src)
		} else {
			line = src[pos : pos+lineEnd]
			lineEnd = pos + lineEnd
		}
		if strings.TrimRight(line, " \t") == delimiter {
			if lineEnd >= len(src) {
				return len(src), len(src)
			}
			return lineEnd, lineEnd + 1
		}
		if lineEnd >= len(src) {
			break
		}
		pos = lineEnd + 1
	}
	return -1, -1
}

func firstLineEnd(src string) int {
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		return i
	}
	return len(src)
}

// mapFields moves decoded values into the typed FrontMatter, demoting
// schema violations to Extra and reporting them.
func mapFields(raw map[string]any, span ast.Span) (ast.FrontMatter, []diag.Diagnostic) {
	var fm ast.FrontMatter
	if len(raw) == 0 {
		return fm, nil
	}

	issues := checkSchema(raw)
	bad := make(map[string]bool, len(issues))
	var ds []diag.Diagnostic
	for _, issue := range issues {
		bad[issue.Key] = true
		ds = append(ds, diag.New(diag.CodeFrontMatterSchema, span,
			"front matter key %q: %s", issue.Key, issue.Message))
	}

	extra := make(map[string]any)
	for key, value := range raw {
		if bad[key] {
			extra[key] = value
			continue
		}
		switch key {
		case "title":
			fm.Title = stringify(value)
		case "type":
			fm.Type = stringify(value)
		case "status":
			fm.Status = stringify(value)
		case "author":
			fm.Author = stringify(value)
		case "description":
			fm.Description = stringify(value)
		case "version":
			fm.Version = stringify(value)
		case "created":
			fm.Created = stringify(value)
		case "updated":
			fm.Updated = stringify(value)
		case "tags":
			fm.Tags = stringSlice(value)
		default:
			extra[key] = value
		}
	}
	if len(extra) > 0 {
		fm.Extra = extra
	}
	return fm, ds
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}

// sortIssues keeps diagnostic output deterministic regardless of map
// iteration order.
func sortIssues(issues []schemaIssue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Key != issues[j].Key {
			return issues[i].Key < issues[j].Key
		}
		return issues[i].Message < issues[j].Message
	})
}
