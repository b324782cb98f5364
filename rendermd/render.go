// Package rendermd renders a document as plain CommonMark. Every
// directive kind degrades to its nearest markdown equivalent and the
// output carries no fence markers, so any markdown viewer can display
// it. Front matter is not rendered.
package rendermd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-surfdoc/ast"
)

// Render converts the document's blocks to CommonMark, blocks separated
// by one blank line.
func Render(doc *ast.Document) string {
	return blocks(doc.Blocks)
}

func blocks(in []ast.Block) string {
	var parts []string
	for _, b := range in {
		if p := block(b); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

func block(b ast.Block) string {
	switch n := b.(type) {
	case *ast.Markdown:
		return n.Text.Raw

	case *ast.Callout:
		prefix := "**" + typeLabel(n.Type) + "**"
		if n.Title != "" {
			prefix += ": " + n.Title
		}
		return quoted(prefix, n.Text.Raw)

	case *ast.Summary:
		lines := make([]string, 0, 1)
		for _, l := range strings.Split(n.Text.Raw, "\n") {
			lines = append(lines, "> *"+l+"*")
		}
		return strings.Join(lines, "\n")

	case *ast.Quote:
		out := quoted("", n.Text.Raw)
		if n.By != "" {
			out += "\n>\n> — " + n.By
		}
		return out

	case *ast.Testimonial:
		out := quoted("", n.Text.Raw)
		details := joinPresent(n.Author, n.Role, n.Company)
		if details != "" {
			out += "\n>\n> — " + details
		}
		return out

	case *ast.Decision:
		head := "> **Decision** (" + n.Status + ")"
		if n.Date != "" {
			head += " (" + n.Date + ")"
		}
		return quoted("", n.Text.Raw, head)

	case *ast.Code:
		return "```" + n.Lang + "\n" + n.Body + "\n```"

	case *ast.Data:
		if n.Format == "json" {
			return "```json\n" + n.Raw + "\n```"
		}
		return table(n.Headers, n.Rows)

	case *ast.Tasks:
		lines := make([]string, len(n.Items))
		for i, it := range n.Items {
			mark := " "
			if it.Done {
				mark = "x"
			}
			lines[i] = "- [" + mark + "] " + it.Text
			if it.Assignee != "" {
				lines[i] += " @" + it.Assignee
			}
		}
		return strings.Join(lines, "\n")

	case *ast.Metric:
		out := "**" + n.Label + "**: " + valueText(n.Value)
		if n.Unit != "" {
			out += " " + n.Unit
		}
		switch n.Trend {
		case "up":
			out += " ↑"
		case "down":
			out += " ↓"
		case "flat":
			out += " →"
		}
		return out

	case *ast.Figure:
		img := "![" + n.Alt + "](" + n.Src + ")"
		if n.Caption != "" {
			img += "\n*" + n.Caption + "*"
		}
		return img

	case *ast.Cta:
		return "[" + n.Label + "](" + n.Href + ")"

	case *ast.HeroImage:
		alt := n.Alt
		if alt == "" {
			alt = "Hero image"
		}
		return "![" + alt + "](" + n.Src + ")"

	case *ast.Embed:
		label := n.Title
		if label == "" {
			label = "Embedded content"
		}
		return "[" + label + "](" + n.Src + ")"

	case *ast.Logo:
		alt := n.Alt
		if alt == "" {
			alt = "Logo"
		}
		return "![" + alt + "](" + n.Src + ")"

	case *ast.Divider:
		if n.Label != "" {
			return "--- " + n.Label + " ---"
		}
		return "---"

	case *ast.Toc:
		return "*Table of Contents*"

	case *ast.Style:
		return ""

	case *ast.Faq:
		parts := make([]string, len(n.Items))
		for i, it := range n.Items {
			parts[i] = "### " + it.Question + "\n\n" + it.Answer.Raw
		}
		return strings.Join(parts, "\n\n")

	case *ast.PricingTable:
		return table(n.Headers, n.Rows)

	case *ast.Comparison:
		return table(n.Headers, n.Rows)

	case *ast.Nav:
		lines := make([]string, len(n.Items))
		for i, it := range n.Items {
			lines[i] = "- [" + it.Label + "](" + it.Href + ")"
		}
		return strings.Join(lines, "\n")

	case *ast.Form:
		lines := []string{"**Form**"}
		for _, f := range n.Fields {
			line := "- " + f.Label
			if f.Required {
				line += " *"
			}
			lines = append(lines, line)
		}
		if n.Submit != "" {
			lines = append(lines, "", "["+n.Submit+"]")
		}
		return strings.Join(lines, "\n")

	case *ast.Gallery:
		lines := make([]string, len(n.Items))
		for i, it := range n.Items {
			lines[i] = "![" + it.Alt + "](" + it.Src + ")"
			if it.Caption != "" {
				lines[i] += " — " + it.Caption
			}
		}
		return strings.Join(lines, "\n")

	case *ast.Footer:
		lines := []string{"---"}
		for _, sec := range n.Sections {
			lines = append(lines, "**"+sec.Heading+"**")
			for _, l := range sec.Links {
				if l.Href == "" {
					lines = append(lines, "- "+l.Label)
				} else {
					lines = append(lines, "- ["+l.Label+"]("+l.Href+")")
				}
			}
			lines = append(lines, "")
		}
		for _, s := range n.Social {
			lines = append(lines, "@"+s.Platform+" "+s.Href)
		}
		if n.Copyright != "" {
			lines = append(lines, n.Copyright)
		}
		return strings.TrimRight(strings.Join(lines, "\n"), "\n")

	case *ast.Hero:
		var lines []string
		if n.Headline != "" {
			lines = append(lines, "# "+n.Headline, "")
		}
		if n.Subtitle != "" {
			lines = append(lines, n.Subtitle, "")
		}
		for _, bt := range n.Buttons {
			lines = append(lines, "["+bt.Label+"]("+bt.Href+")")
		}
		return strings.TrimRight(strings.Join(lines, "\n"), "\n")

	case *ast.Features:
		var lines []string
		for _, c := range n.Cards {
			lines = append(lines, "### "+c.Title, "")
			if !c.Body.IsZero() {
				lines = append(lines, c.Body.Raw, "")
			}
			if c.LinkLabel != "" && c.LinkHref != "" {
				lines = append(lines, "["+c.LinkLabel+"]("+c.LinkHref+")", "")
			}
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))

	case *ast.Steps:
		var lines []string
		for i, st := range n.Items {
			lines = append(lines, fmt.Sprintf("%d. **%s**", i+1, st.Title))
			if !st.Body.IsZero() {
				lines = append(lines, "   "+st.Body.Raw)
			}
		}
		return strings.Join(lines, "\n")

	case *ast.Stats:
		lines := make([]string, len(n.Items))
		for i, it := range n.Items {
			lines[i] = "- **" + it.Value + "** " + it.Label
		}
		return strings.Join(lines, "\n")

	case *ast.BeforeAfter:
		lines := []string{"**Before**"}
		for _, it := range n.Before {
			lines = append(lines, "- "+it.Label+" — "+it.Detail)
		}
		lines = append(lines, "")
		if n.Transition != "" {
			lines = append(lines, "↓ *"+n.Transition+"* ↓", "")
		}
		lines = append(lines, "**After**")
		for _, it := range n.After {
			lines = append(lines, "- "+it.Label+" — "+it.Detail)
		}
		return strings.Join(lines, "\n")

	case *ast.Pipeline:
		parts := make([]string, len(n.Steps))
		for i, st := range n.Steps {
			parts[i] = st.Label
			if st.Description != "" {
				parts[i] = st.Label + " (" + st.Description + ")"
			}
		}
		return strings.Join(parts, " → ")

	case *ast.ProductCard:
		var lines []string
		head := "### " + n.Title
		if n.Badge != "" {
			head += " [" + n.Badge + "]"
		}
		lines = append(lines, head, "")
		if n.Subtitle != "" {
			lines = append(lines, "*"+n.Subtitle+"*", "")
		}
		if !n.Body.IsZero() {
			lines = append(lines, n.Body.Raw, "")
		}
		for _, f := range n.Features {
			lines = append(lines, "- "+f)
		}
		if n.CtaLabel != "" && n.CtaHref != "" {
			lines = append(lines, "", "["+n.CtaLabel+"]("+n.CtaHref+")")
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))

	case *ast.Tabs:
		parts := make([]string, len(n.Panels))
		for i, p := range n.Panels {
			parts[i] = "### " + p.Label
			if body := blocks(p.Children); body != "" {
				parts[i] += "\n\n" + body
			}
		}
		return strings.Join(parts, "\n\n")

	case *ast.Columns:
		parts := make([]string, len(n.Cols))
		for i, c := range n.Cols {
			parts[i] = blocks(c.Children)
		}
		return strings.Join(parts, "\n\n---\n\n")

	case *ast.Details:
		title := n.Title
		if title == "" {
			title = "Details"
		}
		return "**" + title + "**\n\n" + blocks(n.Children)

	case *ast.Section:
		var lines []string
		if n.Headline != "" {
			lines = append(lines, "## "+n.Headline, "")
		}
		if n.Subtitle != "" {
			lines = append(lines, n.Subtitle, "")
		}
		if body := blocks(n.Children); body != "" {
			lines = append(lines, body)
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))

	case *ast.Site:
		lines := []string{"**Site Configuration**"}
		for _, kv := range [][2]string{
			{"domain", n.Domain},
			{"name", n.Name},
			{"tagline", n.Tagline},
			{"theme", n.Theme},
			{"accent", n.Accent},
			{"font", n.Font},
		} {
			if kv[1] != "" {
				lines = append(lines, "- "+kv[0]+": "+kv[1])
			}
		}
		out := strings.Join(lines, "\n")
		if body := blocks(n.Children); body != "" {
			out += "\n\n" + body
		}
		return out

	case *ast.Page:
		body := blocks(n.Children)
		if n.Title != "" {
			return "## " + n.Title + "\n\n" + body
		}
		return body

	case *ast.Unknown:
		lines := []string{"<!-- ::" + n.Name + " -->"}
		if n.Body != "" {
			lines = append(lines, n.Body)
		}
		lines = append(lines, "<!-- :: -->")
		return strings.Join(lines, "\n")
	}
	return ""
}

// quoted renders body lines as a blockquote, with optional head lines
// placed before them.
func quoted(prefix, body string, head ...string) string {
	lines := append([]string{}, head...)
	if prefix != "" {
		lines = append(lines, "> "+prefix)
	}
	for _, l := range strings.Split(body, "\n") {
		lines = append(lines, "> "+l)
	}
	return strings.Join(lines, "\n")
}

func joinPresent(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func table(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	lines := []string{
		"| " + strings.Join(headers, " | ") + " |",
		"| " + strings.Join(sep, " | ") + " |",
	}
	for _, r := range rows {
		lines = append(lines, "| "+strings.Join(r, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

func valueText(v ast.AttrValue) string {
	switch n := v.(type) {
	case ast.String:
		return string(n)
	case ast.Number:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	case ast.Bool:
		return strconv.FormatBool(bool(n))
	}
	return ""
}

func typeLabel(t string) string {
	if t == "" {
		return "Info"
	}
	return strings.ToUpper(t[:1]) + t[1:]
}
