// Package serialize renders a document back to canonical SurfDoc text:
// front matter first, blocks separated by one blank line, attributes in
// schema order with defaults omitted, and row bodies in their normalized
// line forms. Unknown directives reproduce their captured text unchanged,
// so a round-trip never invents or loses data.
package serialize

import (
	"encoding/csv"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-surfdoc/ast"
)

// Document renders doc as source text, ending with a newline. An empty
// document renders as the empty string.
func Document(doc *ast.Document) string {
	var parts []string
	if fm := frontMatterText(doc.FrontMatter); fm != "" {
		parts = append(parts, fm)
	}
	if body := Blocks(doc.Blocks); body != "" {
		parts = append(parts, body)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Blocks renders a block sequence, blocks separated by one blank line.
func Blocks(blocks []ast.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, Block(b))
	}
	return strings.Join(parts, "\n\n")
}

// Block renders one block without a trailing newline.
func Block(b ast.Block) string {
	switch n := b.(type) {
	case *ast.Markdown:
		return strings.Trim(n.Text.Raw, "\n")
	case *ast.Unknown:
		return unknownText(n)
	default:
		attrs, body := blockParts(b)
		return fenceText(b.Kind().String(), attrs, body)
	}
}

// fenceText writes ::name[attrs], the body, and the closing fence. The
// bracket group is omitted when there are no attributes, and an empty
// body collapses to an immediate close.
func fenceText(name, attrs, body string) string {
	var sb strings.Builder
	sb.WriteString("::")
	sb.WriteString(name)
	if attrs != "" {
		sb.WriteByte('[')
		sb.WriteString(attrs)
		sb.WriteByte(']')
	}
	sb.WriteByte('\n')
	if body != "" {
		sb.WriteString(body)
		sb.WriteByte('\n')
	}
	sb.WriteString("::")
	return sb.String()
}

func unknownText(n *ast.Unknown) string {
	var sb strings.Builder
	sb.WriteString("::")
	sb.WriteString(n.Name)
	if n.RawAttrs != "" {
		sb.WriteByte('[')
		sb.WriteString(n.RawAttrs)
		sb.WriteByte(']')
	}
	sb.WriteByte('\n')
	if n.Body != "" {
		sb.WriteString(n.Body)
		sb.WriteByte('\n')
	}
	sb.WriteString("::")
	return sb.String()
}

// blockParts returns the rendered attribute list and body for a typed
// directive block.
func blockParts(b ast.Block) (string, string) {
	w := &attrWriter{}
	w.str("id", b.Base().ID)
	var body string

	switch n := b.(type) {
	case *ast.Callout:
		w.enum("type", n.Type, "info")
		w.str("title", n.Title)
		body = n.Text.Raw
	case *ast.Summary:
		body = n.Text.Raw
	case *ast.Quote:
		w.str("by", n.By)
		w.str("cite", n.Cite)
		body = n.Text.Raw
	case *ast.Testimonial:
		w.str("author", n.Author)
		w.str("role", n.Role)
		w.str("company", n.Company)
		body = n.Text.Raw
	case *ast.Decision:
		w.enum("status", n.Status, "proposed")
		w.str("date", n.Date)
		w.str("deciders", n.Deciders)
		body = n.Text.Raw
	case *ast.Code:
		w.str("lang", n.Lang)
		w.str("file", n.File)
		w.str("highlight", n.Highlight)
		body = n.Body
	case *ast.Data:
		w.enum("format", n.Format, "table")
		w.flag("sortable", n.Sortable)
		w.count("cols", n.Cols)
		body = dataBody(n)
	case *ast.Tasks:
		body = joinRows(n.Items, taskRow)
	case *ast.Metric:
		w.str("label", n.Label)
		if n.Value != nil {
			w.add("value", renderValue(n.Value))
		}
		w.str("unit", n.Unit)
		w.str("trend", n.Trend)
	case *ast.Figure:
		w.str("src", n.Src)
		w.str("alt", n.Alt)
		w.str("caption", n.Caption)
		w.str("width", n.Width)
	case *ast.Cta:
		w.str("label", n.Label)
		w.str("href", n.Href)
		w.flag("primary", n.Primary)
		w.str("icon", n.Icon)
	case *ast.HeroImage:
		w.str("src", n.Src)
		w.str("alt", n.Alt)
	case *ast.Embed:
		w.str("src", n.Src)
		w.str("type", n.Type)
		w.str("title", n.Title)
		w.str("width", n.Width)
		w.str("height", n.Height)
	case *ast.Logo:
		w.str("src", n.Src)
		w.str("alt", n.Alt)
		w.count("size", n.Size)
	case *ast.Divider:
		w.str("label", n.Label)
	case *ast.Toc:
		if n.Depth != 0 && n.Depth != 3 {
			w.add("depth", strconv.Itoa(n.Depth))
		}
	case *ast.Style:
		body = joinRows(n.Props, func(p ast.StyleProp) string {
			return p.Key + ": " + p.Value
		})
	case *ast.Faq:
		body = joinGroups(n.Items, faqGroup)
	case *ast.PricingTable:
		w.str("highlight", n.Highlight)
		body = pipeTable(n.Headers, n.Rows)
	case *ast.Nav:
		w.str("logo", n.Logo)
		body = joinRows(n.Items, linkRow)
	case *ast.Form:
		w.str("submit", n.Submit)
		body = joinRows(n.Fields, formRow)
	case *ast.Gallery:
		w.count("columns", n.Columns)
		body = joinRows(n.Items, galleryRow)
	case *ast.Footer:
		body = footerBody(n)
	case *ast.Hero:
		w.str("badge", n.Badge)
		w.enum("align", n.Align, "center")
		w.str("image", n.Image)
		body = heroBody(n)
	case *ast.Features:
		w.count("cols", n.Cols)
		body = joinGroups(n.Cards, featureGroup)
	case *ast.Steps:
		body = joinGroups(n.Items, stepGroup)
	case *ast.Stats:
		body = joinRows(n.Items, statRow)
	case *ast.Comparison:
		w.str("highlight", n.Highlight)
		body = pipeTable(n.Headers, n.Rows)
	case *ast.BeforeAfter:
		w.str("transition", n.Transition)
		body = beforeAfterBody(n)
	case *ast.Pipeline:
		body = joinRows(n.Steps, pipelineRow)
	case *ast.ProductCard:
		w.str("badge", n.Badge)
		w.str("badge-color", n.BadgeColor)
		body = productCardBody(n)
	case *ast.Tabs:
		body = tabsBody(n)
	case *ast.Columns:
		w.str("gap", n.Gap)
		body = columnsBody(n)
	case *ast.Details:
		w.str("title", n.Title)
		w.flag("open", n.Open)
		body = Blocks(n.Children)
	case *ast.Section:
		w.str("headline", n.Headline)
		w.str("subtitle", n.Subtitle)
		w.str("bg", n.Bg)
		body = Blocks(n.Children)
	case *ast.Site:
		w.str("domain", n.Domain)
		w.str("name", n.Name)
		w.str("tagline", n.Tagline)
		w.str("theme", n.Theme)
		w.str("accent", n.Accent)
		w.str("font", n.Font)
		body = Blocks(n.Children)
	case *ast.Page:
		w.str("route", n.Route)
		w.str("title", n.Title)
		w.str("layout", n.Layout)
		w.flag("sidebar", n.Sidebar)
		body = Blocks(n.Children)
	}

	w.extra(b.Base().Extra)
	return w.text(), body
}

// attrWriter accumulates rendered key=value pairs. Zero and default
// values are left out by the typed append helpers; true booleans render
// as bare flags.
type attrWriter struct {
	parts []string
}

func (w *attrWriter) add(key, rendered string) {
	w.parts = append(w.parts, key+"="+rendered)
}

func (w *attrWriter) str(key, v string) {
	if v != "" {
		w.add(key, renderString(v))
	}
}

func (w *attrWriter) enum(key, v, def string) {
	if v != "" && v != def {
		w.add(key, renderString(v))
	}
}

func (w *attrWriter) count(key string, v int) {
	if v != 0 {
		w.add(key, strconv.Itoa(v))
	}
}

func (w *attrWriter) flag(key string, v bool) {
	if v {
		w.parts = append(w.parts, key)
	}
}

func (w *attrWriter) extra(attrs ast.Attrs) {
	for _, k := range attrs.Keys() {
		v, _ := attrs.Get(k)
		if bv, ok := v.(ast.Bool); ok && bool(bv) {
			w.parts = append(w.parts, k)
			continue
		}
		w.add(k, renderValue(v))
	}
}

func (w *attrWriter) text() string {
	return strings.Join(w.parts, ", ")
}

func renderValue(v ast.AttrValue) string {
	switch n := v.(type) {
	case ast.String:
		return renderString(string(n))
	case ast.Number:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	case ast.Bool:
		if n {
			return "true"
		}
		return "false"
	case ast.List:
		parts := make([]string, len(n))
		for i, item := range n {
			parts[i] = renderValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return `""`
}

// renderString emits a string bare when reparsing would give the same
// string back, quoted otherwise. Tokens that would reparse as numbers or
// booleans must be quoted to keep their type.
func renderString(s string) string {
	if bareSafe(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

func bareSafe(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	if strings.ContainsAny(s, " \t,'\"[]\\") {
		return false
	}
	return !looksNumeric(s)
}

func looksNumeric(s string) bool {
	c := s[0]
	if !('0' <= c && c <= '9') && c != '-' && c != '+' && c != '.' {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// joinRows renders one line per item.
func joinRows[T any](items []T, row func(T) string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = row(it)
	}
	return strings.Join(lines, "\n")
}

// joinGroups renders multi-line groups separated by blank lines.
func joinGroups[T any](items []T, group func(T) string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = group(it)
	}
	return strings.Join(parts, "\n\n")
}

func dataBody(n *ast.Data) string {
	switch n.Format {
	case "json":
		return n.Raw
	case "csv":
		return csvBody(n.Headers, n.Rows)
	default:
		return pipeTable(n.Headers, n.Rows)
	}
}

func pipeTable(headers []string, rows [][]string) string {
	var lines []string
	if len(headers) > 0 {
		lines = append(lines, pipeRow(headers), pipeSeparator(len(headers)))
	}
	for _, r := range rows {
		lines = append(lines, pipeRow(r))
	}
	return strings.Join(lines, "\n")
}

func pipeRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func pipeSeparator(n int) string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	return pipeRow(cells)
}

func csvBody(headers []string, rows [][]string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if len(headers) > 0 {
		w.Write(headers)
	}
	for _, r := range rows {
		w.Write(r)
	}
	w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

func taskRow(it ast.TaskItem) string {
	mark := " "
	if it.Done {
		mark = "x"
	}
	s := "- [" + mark + "] " + it.Text
	if it.Assignee != "" {
		s += " @" + it.Assignee
	}
	return s
}

func faqGroup(it ast.FaqItem) string {
	s := "### " + it.Question
	if !it.Answer.IsZero() {
		s += "\n\n" + it.Answer.Raw
	}
	return s
}

func linkRow(it ast.NavItem) string {
	s := "- [" + it.Label + "](" + it.Href + ")"
	if it.Icon != "" {
		s += " {icon=" + it.Icon + "}"
	}
	return s
}

func formRow(fd ast.FormField) string {
	s := "- " + fd.Label
	if group := formGroup(fd); group != "" {
		s += " (" + group + ")"
	}
	if fd.Required {
		s += " *"
	}
	return s
}

// formGroup renders the parenthesized type group. Plain text fields with
// no placeholder need none; select placeholders are not part of the row
// grammar and are dropped.
func formGroup(fd ast.FormField) string {
	if fd.Type == "select" {
		if len(fd.Options) == 0 {
			return "select"
		}
		return "select: " + strings.Join(fd.Options, " | ")
	}
	if fd.Placeholder != "" {
		t := fd.Type
		if t == "" {
			t = "text"
		}
		return t + `, "` + fd.Placeholder + `"`
	}
	if fd.Type != "" && fd.Type != "text" {
		return fd.Type
	}
	return ""
}

func galleryRow(it ast.GalleryItem) string {
	s := "![" + it.Alt + "](" + it.Src + ")"
	switch {
	case it.Category != "":
		s += " " + it.Category + ": " + it.Caption
	case strings.Contains(it.Caption, ":"):
		s += " : " + it.Caption
	case it.Caption != "":
		s += " " + it.Caption
	}
	return s
}

func footerBody(n *ast.Footer) string {
	var groups []string
	for _, sec := range n.Sections {
		var lines []string
		if sec.Heading != "" {
			lines = append(lines, "## "+sec.Heading)
		}
		for _, l := range sec.Links {
			if l.Href == "" && l.Icon == "" {
				lines = append(lines, "- "+l.Label)
			} else {
				lines = append(lines, linkRow(l))
			}
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}
	if len(n.Social) > 0 {
		lines := make([]string, len(n.Social))
		for i, s := range n.Social {
			lines[i] = "@" + s.Platform + " " + s.Href
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}
	if n.Copyright != "" {
		groups = append(groups, n.Copyright)
	}
	return strings.Join(groups, "\n\n")
}

func heroBody(n *ast.Hero) string {
	var lines []string
	if n.Headline != "" {
		lines = append(lines, "# "+n.Headline)
	}
	if n.Subtitle != "" {
		lines = append(lines, n.Subtitle)
	}
	for _, bt := range n.Buttons {
		lines = append(lines, buttonRow(bt))
	}
	return strings.Join(lines, "\n")
}

func buttonRow(bt ast.HeroButton) string {
	s := "[" + bt.Label + "](" + bt.Href + ")"
	if bt.Primary {
		s += " {primary}"
	}
	return s
}

func featureGroup(c ast.FeatureCard) string {
	head := "### " + c.Title
	if c.Icon != "" {
		head += ` {icon="` + c.Icon + `"}`
	}
	parts := []string{head}
	if !c.Body.IsZero() {
		parts = append(parts, c.Body.Raw)
	}
	if c.LinkLabel != "" || c.LinkHref != "" {
		parts = append(parts, "["+c.LinkLabel+"]("+c.LinkHref+")")
	}
	return strings.Join(parts, "\n\n")
}

func stepGroup(it ast.StepItem) string {
	head := "### " + it.Title
	if it.Time != "" {
		head += ` {time="` + it.Time + `"}`
	}
	if it.Body.IsZero() {
		return head
	}
	return head + "\n\n" + it.Body.Raw
}

func statRow(it ast.StatItem) string {
	s := "- " + it.Value + ` {label="` + it.Label + `"`
	if it.Color != "" {
		s += ` color="` + it.Color + `"`
	}
	return s + "}"
}

func beforeAfterBody(n *ast.BeforeAfter) string {
	var lines []string
	if len(n.Before) > 0 {
		lines = append(lines, "### Before")
		for _, it := range n.Before {
			lines = append(lines, "- "+it.Label+" | "+it.Detail)
		}
	}
	if len(n.After) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "### After")
		for _, it := range n.After {
			lines = append(lines, "- "+it.Label+" | "+it.Detail)
		}
	}
	return strings.Join(lines, "\n")
}

func pipelineRow(st ast.PipelineStep) string {
	s := "- " + st.Label
	if st.Description != "" {
		s += " | " + st.Description
	}
	return s
}

func productCardBody(n *ast.ProductCard) string {
	var lines []string
	if n.Title != "" {
		lines = append(lines, "## "+n.Title)
	}
	if n.Subtitle != "" {
		lines = append(lines, "", n.Subtitle)
	}
	if !n.Body.IsZero() {
		lines = append(lines, "", n.Body.Raw)
	}
	if len(n.Features) > 0 {
		lines = append(lines, "")
		for _, f := range n.Features {
			lines = append(lines, "- "+f)
		}
	}
	if n.CtaLabel != "" || n.CtaHref != "" {
		lines = append(lines, "", "["+n.CtaLabel+"]("+n.CtaHref+")")
	}
	body := strings.Join(lines, "\n")
	return strings.TrimPrefix(body, "\n")
}

func tabsBody(n *ast.Tabs) string {
	var groups []string
	for _, p := range n.Panels {
		g := "## " + p.Label
		if len(p.Children) > 0 {
			g += "\n\n" + Blocks(p.Children)
		}
		groups = append(groups, g)
	}
	return strings.Join(groups, "\n\n")
}

func columnsBody(n *ast.Columns) string {
	groups := make([]string, len(n.Cols))
	for i, c := range n.Cols {
		groups[i] = Blocks(c.Children)
	}
	return strings.Join(groups, "\n\n---\n\n")
}

// fmText mirrors the front matter key order of ast.FrontMatter; unknown
// keys marshal inline, sorted by yaml.
type fmText struct {
	Title       string         `yaml:"title,omitempty"`
	Type        string         `yaml:"type,omitempty"`
	Status      string         `yaml:"status,omitempty"`
	Author      string         `yaml:"author,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Version     string         `yaml:"version,omitempty"`
	Created     string         `yaml:"created,omitempty"`
	Updated     string         `yaml:"updated,omitempty"`
	Tags        []string       `yaml:"tags,omitempty,flow"`
	Extra       map[string]any `yaml:",inline"`
}

func frontMatterText(fm ast.FrontMatter) string {
	if fm.IsZero() {
		return ""
	}
	out, err := yaml.Marshal(fmText{
		Title:       fm.Title,
		Type:        fm.Type,
		Status:      fm.Status,
		Author:      fm.Author,
		Description: fm.Description,
		Version:     fm.Version,
		Created:     fm.Created,
		Updated:     fm.Updated,
		Tags:        fm.Tags,
		Extra:       fm.Extra,
	})
	if err != nil {
		return ""
	}
	return "---\n" + string(out) + "---"
}
