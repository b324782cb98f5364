package resolve

import (
	"encoding/csv"
	"strings"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/inline"
	"github.com/goliatone/go-surfdoc/internal/scanner"
)

// bline is one body line with its absolute span.
type bline struct {
	text string
	span ast.Span
}

func bodyLines(f Fence) []bline {
	if f.Body == "" {
		return nil
	}
	var out []bline
	start := f.BodyStart
	for _, text := range strings.Split(f.Body, "\n") {
		out = append(out, bline{text: text, span: ast.Span{Start: start, End: start + len(text)}})
		start += len(text) + 1
	}
	return out
}

func trimBlank(lines []bline) []bline {
	for len(lines) > 0 && strings.TrimSpace(lines[0].text) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1].text) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func joinLines(lines []bline) string {
	parts := make([]string, len(lines))
	for i, ln := range lines {
		parts[i] = ln.text
	}
	return strings.Join(parts, "\n")
}

func joinTrimmed(lines []bline) string {
	return strings.TrimSpace(joinLines(lines))
}

func badRow(name string, ln bline) diag.Diagnostic {
	return diag.New(diag.CodeMalformedRow, ln.span, "line is not a valid %s row", name)
}

// headingText matches a trimmed line against the given heading markers
// and returns the heading text.
func headingText(line string, markers ...string) (string, bool) {
	t := strings.TrimSpace(line)
	for _, m := range markers {
		if rest, ok := strings.CutPrefix(t, m); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// fenceEnd returns the index just past the fence opened at lines[i],
// mirroring the scanner's balanced matching so body splitters skip
// nested blocks whole.
func fenceEnd(lines []bline, i, depth int) int {
	nesting := 0
	for j := i + 1; j < len(lines); j++ {
		if d, ok := scanner.CloseDepth(lines[j].text); ok && d == depth {
			if nesting == 0 {
				return j + 1
			}
			nesting--
			continue
		}
		if d, ok := scanner.OpenDepth(lines[j].text); ok && d == depth {
			nesting++
		}
	}
	return len(lines)
}

// tableRows reads pipe-delimited rows: the first content line is the
// header row, markdown separator rows are skipped, and pipe-less lines
// become single-cell rows.
func tableRows(lines []bline) ([]string, [][]string) {
	var headers []string
	var rows [][]string
	for _, ln := range lines {
		t := strings.TrimSpace(ln.text)
		if t == "" || isTableSeparator(t) {
			continue
		}
		cells := splitPipeRow(t)
		if headers == nil {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}
	return headers, rows
}

// isTableSeparator recognizes markdown separator rows like |---|---| or
// | :--- | ---: |.
func isTableSeparator(line string) bool {
	stripped := strings.TrimSpace(strings.Trim(line, "|"))
	if stripped == "" {
		return false
	}
	for _, cell := range strings.Split(stripped, "|") {
		for _, r := range strings.TrimSpace(cell) {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}

func splitPipeRow(line string) []string {
	inner := strings.TrimPrefix(line, "|")
	inner = strings.TrimSuffix(inner, "|")
	cells := strings.Split(inner, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// csvRows reads one record per line, tolerating bad quoting by falling
// back to a plain comma split for that line.
func csvRows(lines []bline) ([]string, [][]string, []diag.Diagnostic) {
	var headers []string
	var rows [][]string
	var ds []diag.Diagnostic
	for _, ln := range lines {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(t))
		r.TrimLeadingSpace = true
		cells, err := r.Read()
		if err != nil {
			ds = append(ds, diag.New(diag.CodeMalformedRow, ln.span, "line is not a valid csv row"))
			cells = strings.Split(t, ",")
		}
		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
		}
		if headers == nil {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}
	return headers, rows, ds
}

func buildData(f Fence, set *attrSet) (*ast.Data, []diag.Diagnostic) {
	d := &ast.Data{
		Format:   set.str("format"),
		Sortable: set.flag("sortable"),
		Cols:     set.count("cols"),
		Raw:      f.Body,
	}
	var ds []diag.Diagnostic
	switch d.Format {
	case "csv":
		d.Headers, d.Rows, ds = csvRows(bodyLines(f))
	case "json":
		// Raw carries the payload for downstream decoding.
	default:
		d.Headers, d.Rows = tableRows(bodyLines(f))
	}
	return d, ds
}

func parseTasks(f Fence) ([]ast.TaskItem, []diag.Diagnostic) {
	var items []ast.TaskItem
	var ds []diag.Diagnostic
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		var done bool
		var rest string
		switch {
		case strings.HasPrefix(t, "- [x] "), strings.HasPrefix(t, "- [X] "):
			done, rest = true, t[6:]
		case strings.HasPrefix(t, "- [ ] "):
			done, rest = false, t[6:]
		default:
			ds = append(ds, badRow("tasks", ln))
			continue
		}
		text, assignee := splitAssignee(rest)
		items = append(items, ast.TaskItem{Text: text, Done: done, Assignee: assignee})
	}
	return items, ds
}

// splitAssignee peels a trailing "@name" word off the task text. The
// assignee must be a single word.
func splitAssignee(text string) (string, string) {
	trimmed := strings.TrimRight(text, " \t")
	at := strings.LastIndex(trimmed, " @")
	if at < 0 {
		return text, ""
	}
	candidate := trimmed[at+2:]
	if candidate == "" || strings.ContainsRune(candidate, ' ') {
		return text, ""
	}
	return strings.TrimRight(trimmed[:at], " \t"), candidate
}

func parseStyle(f Fence) ([]ast.StyleProp, []diag.Diagnostic) {
	var props []ast.StyleProp
	var ds []diag.Diagnostic
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		key, value, found := strings.Cut(t, ":")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !found || key == "" || value == "" {
			ds = append(ds, badRow("style", ln))
			continue
		}
		props = append(props, ast.StyleProp{Key: key, Value: value})
	}
	return props, ds
}

func parseFaq(f Fence) ([]ast.FaqItem, []diag.Diagnostic) {
	var items []ast.FaqItem
	var ds []diag.Diagnostic
	var question string
	var answer []bline
	var open bool

	flush := func() {
		if !open {
			return
		}
		items = append(items, ast.FaqItem{Question: question, Answer: inline.Rich(joinTrimmed(answer))})
		answer = nil
	}

	for _, ln := range bodyLines(f) {
		if head, ok := headingText(ln.text, "### ", "## "); ok {
			flush()
			question, open = head, true
			continue
		}
		if !open {
			if strings.TrimSpace(ln.text) != "" {
				ds = append(ds, badRow("faq", ln))
			}
			continue
		}
		answer = append(answer, ln)
	}
	flush()
	return items, ds
}

func parseNav(f Fence) ([]ast.NavItem, []diag.Diagnostic) {
	var items []ast.NavItem
	var ds []diag.Diagnostic
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		item, ok := parseLinkItem(t)
		if !ok {
			ds = append(ds, badRow("nav", ln))
			continue
		}
		items = append(items, item)
	}
	return items, ds
}

// parseLinkItem reads "- [Label](href)" with an optional {icon=name}
// suffix.
func parseLinkItem(t string) (ast.NavItem, bool) {
	rest, ok := strings.CutPrefix(t, "- [")
	if !ok {
		return ast.NavItem{}, false
	}
	labelEnd := strings.Index(rest, "](")
	if labelEnd < 0 {
		return ast.NavItem{}, false
	}
	after := rest[labelEnd+2:]
	hrefEnd := strings.IndexByte(after, ')')
	if hrefEnd < 0 {
		return ast.NavItem{}, false
	}
	item := ast.NavItem{Label: rest[:labelEnd], Href: after[:hrefEnd]}
	if suffix := strings.TrimSpace(after[hrefEnd+1:]); strings.HasPrefix(suffix, "{icon=") {
		if end := strings.IndexByte(suffix, '}'); end > 6 {
			item.Icon = suffix[6:end]
		}
	}
	return item, true
}

func parseForm(f Fence) ([]ast.FormField, []diag.Diagnostic) {
	var fields []ast.FormField
	var ds []diag.Diagnostic
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		rest, ok := strings.CutPrefix(t, "- ")
		if !ok {
			ds = append(ds, badRow("form", ln))
			continue
		}
		fields = append(fields, parseFormField(strings.TrimSpace(rest)))
	}
	return fields, ds
}

// parseFormField reads `Label (type, "placeholder") *`. The type group
// and the required star are optional; select fields list options as
// `(select: A | B | C)`.
func parseFormField(rest string) ast.FormField {
	field := ast.FormField{Type: "text", Required: strings.HasSuffix(rest, "*")}

	var typePart string
	var hasType bool
	if paren := strings.IndexByte(rest, '('); paren >= 0 {
		field.Label = strings.TrimSpace(rest[:paren])
		inner := rest[paren+1:]
		if end := strings.IndexByte(inner, ')'); end >= 0 {
			typePart = inner[:end]
		} else {
			typePart = inner
		}
		hasType = true
	} else {
		field.Label = strings.TrimSpace(strings.TrimSuffix(rest, "*"))
	}

	if !hasType {
		return field
	}

	typePart = strings.TrimSpace(typePart)
	if opts, ok := strings.CutPrefix(typePart, "select:"); ok {
		field.Type = "select"
		for _, o := range strings.Split(opts, "|") {
			if o = strings.TrimSpace(o); o != "" {
				field.Options = append(field.Options, o)
			}
		}
		return field
	}

	name, placeholder, hasPlaceholder := strings.Cut(typePart, ",")
	if hasPlaceholder {
		field.Placeholder = strings.Trim(strings.TrimSpace(placeholder), `"`)
	}
	switch strings.TrimSpace(name) {
	case "email":
		field.Type = "email"
	case "tel", "phone":
		field.Type = "tel"
	case "date":
		field.Type = "date"
	case "number":
		field.Type = "number"
	case "select":
		field.Type = "select"
	case "textarea", "multiline":
		field.Type = "textarea"
	}
	return field
}

func parseGallery(f Fence) ([]ast.GalleryItem, []diag.Diagnostic) {
	var items []ast.GalleryItem
	var ds []diag.Diagnostic
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		item, ok := parseGalleryItem(t)
		if !ok {
			ds = append(ds, badRow("gallery", ln))
			continue
		}
		items = append(items, item)
	}
	return items, ds
}

// parseGalleryItem reads "![alt](src) Category: caption"; alt, category
// and caption are all optional.
func parseGalleryItem(t string) (ast.GalleryItem, bool) {
	rest, ok := strings.CutPrefix(t, "![")
	if !ok {
		return ast.GalleryItem{}, false
	}
	altEnd := strings.Index(rest, "](")
	if altEnd < 0 {
		return ast.GalleryItem{}, false
	}
	after := rest[altEnd+2:]
	srcEnd := strings.IndexByte(after, ')')
	if srcEnd < 0 {
		return ast.GalleryItem{}, false
	}
	item := ast.GalleryItem{Alt: rest[:altEnd], Src: after[:srcEnd]}
	remainder := strings.TrimSpace(after[srcEnd+1:])
	if remainder == "" {
		return item, true
	}
	if category, caption, found := strings.Cut(remainder, ":"); found {
		item.Category = strings.TrimSpace(category)
		item.Caption = strings.TrimSpace(caption)
	} else {
		item.Caption = remainder
	}
	return item, true
}

func parseFooter(f Fence) (*ast.Footer, []diag.Diagnostic) {
	ft := &ast.Footer{}
	var ds []diag.Diagnostic
	var heading string
	var links []ast.NavItem
	var open bool

	flush := func() {
		if !open && len(links) == 0 {
			return
		}
		ft.Sections = append(ft.Sections, ast.FooterSection{Heading: heading, Links: links})
		links = nil
	}

	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		switch {
		case t == "":
		case strings.HasPrefix(t, "(c)"), strings.HasPrefix(t, "©"),
			strings.HasPrefix(strings.ToLower(t), "copyright"):
			ft.Copyright = t
		case strings.HasPrefix(t, "@"):
			platform, href, found := strings.Cut(t[1:], " ")
			if !found || strings.TrimSpace(href) == "" {
				ds = append(ds, badRow("footer", ln))
				continue
			}
			ft.Social = append(ft.Social, ast.SocialLink{
				Platform: strings.TrimSpace(platform),
				Href:     strings.TrimSpace(href),
			})
		default:
			if head, ok := footerHeading(t); ok {
				flush()
				heading, open = head, true
				continue
			}
			if item, ok := parseLinkItem(t); ok {
				links = append(links, item)
				continue
			}
			if rest, ok := strings.CutPrefix(t, "- "); ok {
				links = append(links, ast.NavItem{Label: strings.TrimSpace(rest)})
				continue
			}
			ds = append(ds, badRow("footer", ln))
		}
	}
	flush()
	return ft, ds
}

// footerHeading matches "## Heading", "### Heading" or a fully bold
// "**Heading**" line.
func footerHeading(t string) (string, bool) {
	if head, ok := headingText(t, "## ", "### "); ok {
		return head, true
	}
	if inner, ok := strings.CutPrefix(t, "**"); ok {
		if head, ok := strings.CutSuffix(inner, "**"); ok && head != "" && !strings.Contains(head, "**") {
			return strings.TrimSpace(head), true
		}
	}
	return "", false
}

func parseHero(f Fence, set *attrSet) (*ast.Hero, []diag.Diagnostic) {
	h := &ast.Hero{Badge: set.str("badge"), Align: set.str("align"), Image: set.str("image")}
	var ds []diag.Diagnostic
	var subtitle []string

	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(t, "# "); ok {
			h.Headline = strings.TrimSpace(rest)
			continue
		}
		if btn, ok := parseHeroButton(t); ok {
			h.Buttons = append(h.Buttons, btn)
			continue
		}
		if h.Headline != "" && len(h.Buttons) == 0 {
			subtitle = append(subtitle, t)
			continue
		}
		ds = append(ds, badRow("hero", ln))
	}
	h.Subtitle = strings.Join(subtitle, " ")
	return h, ds
}

// parseHeroButton reads "[Label](href)" optionally followed by {primary}.
func parseHeroButton(t string) (ast.HeroButton, bool) {
	if !strings.HasPrefix(t, "[") {
		return ast.HeroButton{}, false
	}
	labelEnd := strings.Index(t, "](")
	if labelEnd < 0 {
		return ast.HeroButton{}, false
	}
	after := t[labelEnd+2:]
	hrefEnd := strings.IndexByte(after, ')')
	if hrefEnd < 0 {
		return ast.HeroButton{}, false
	}
	return ast.HeroButton{
		Label:   t[1:labelEnd],
		Href:    after[:hrefEnd],
		Primary: strings.TrimSpace(after[hrefEnd+1:]) == "{primary}",
	}, true
}

func parseFeatures(f Fence) ([]ast.FeatureCard, []diag.Diagnostic) {
	var cards []ast.FeatureCard
	var ds []diag.Diagnostic
	var title, icon string
	var body []bline
	var open bool

	flush := func() {
		if !open {
			return
		}
		cards = append(cards, featureCard(title, icon, body))
		body = nil
	}

	for _, ln := range bodyLines(f) {
		if head, ok := headingText(ln.text, "### "); ok {
			flush()
			title, icon = cutBraceAttr(head, "icon")
			open = true
			continue
		}
		if !open {
			if strings.TrimSpace(ln.text) != "" {
				ds = append(ds, badRow("features", ln))
			}
			continue
		}
		body = append(body, ln)
	}
	flush()
	return cards, ds
}

// featureCard splits a trailing "[Label](href)" line off the body into
// the card link.
func featureCard(title, icon string, body []bline) ast.FeatureCard {
	card := ast.FeatureCard{Title: title, Icon: icon}
	body = trimBlank(body)
	if len(body) > 0 {
		if btn, ok := parseHeroButton(strings.TrimSpace(body[len(body)-1].text)); ok {
			card.LinkLabel, card.LinkHref = btn.Label, btn.Href
			body = trimBlank(body[:len(body)-1])
		}
	}
	card.Body = inline.Rich(joinTrimmed(body))
	return card
}

// cutBraceAttr splits `Title {key="value"}` into title and value.
func cutBraceAttr(head, key string) (string, string) {
	marker := "{" + key + "="
	at := strings.LastIndex(head, marker)
	if at < 0 {
		return head, ""
	}
	val := strings.TrimSuffix(head[at+len(marker):], "}")
	return strings.TrimSpace(head[:at]), strings.Trim(val, `"`)
}

func parseSteps(f Fence) ([]ast.StepItem, []diag.Diagnostic) {
	var items []ast.StepItem
	var ds []diag.Diagnostic
	var title, timeVal string
	var body []bline
	var open bool

	flush := func() {
		if !open {
			return
		}
		items = append(items, ast.StepItem{Title: title, Time: timeVal, Body: inline.Rich(joinTrimmed(body))})
		body = nil
	}

	for _, ln := range bodyLines(f) {
		if head, ok := headingText(ln.text, "### ", "## "); ok {
			flush()
			title, timeVal = cutBraceAttr(head, "time")
			open = true
			continue
		}
		if !open {
			if strings.TrimSpace(ln.text) != "" {
				ds = append(ds, badRow("steps", ln))
			}
			continue
		}
		body = append(body, ln)
	}
	flush()
	return items, ds
}

func parseStats(f Fence) ([]ast.StatItem, []diag.Diagnostic) {
	var items []ast.StatItem
	var ds []diag.Diagnostic
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		t = strings.TrimPrefix(t, "- ")
		brace := strings.LastIndexByte(t, '{')
		if brace < 0 {
			ds = append(ds, badRow("stats", ln))
			continue
		}
		value := strings.TrimSpace(t[:brace])
		attrText := strings.TrimSuffix(t[brace+1:], "}")
		label := quotedAttr(attrText, "label")
		if value == "" || label == "" {
			ds = append(ds, badRow("stats", ln))
			continue
		}
		items = append(items, ast.StatItem{Value: value, Label: label, Color: quotedAttr(attrText, "color")})
	}
	return items, ds
}

// quotedAttr pulls key="value" (or bare key=value) out of a brace
// attribute string.
func quotedAttr(s, key string) string {
	at := strings.Index(s, key+"=")
	if at < 0 {
		return ""
	}
	after := s[at+len(key)+1:]
	if inner, ok := strings.CutPrefix(after, `"`); ok {
		if end := strings.IndexByte(inner, '"'); end >= 0 {
			return inner[:end]
		}
		return ""
	}
	if end := strings.IndexByte(after, ' '); end >= 0 {
		return after[:end]
	}
	return after
}

func parseBeforeAfter(f Fence, set *attrSet) (*ast.BeforeAfter, []diag.Diagnostic) {
	b := &ast.BeforeAfter{Transition: set.str("transition")}
	var ds []diag.Diagnostic
	after := false
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		if head, ok := headingText(t, "### "); ok {
			switch strings.ToLower(head) {
			case "before":
				after = false
			case "after":
				after = true
			default:
				ds = append(ds, diag.New(diag.CodeMalformedRow, ln.span,
					"unknown group heading %q, expected before or after", head))
			}
			continue
		}
		t = strings.TrimPrefix(t, "- ")
		label, detail, found := strings.Cut(t, " | ")
		if !found {
			ds = append(ds, badRow("before-after", ln))
			continue
		}
		item := ast.ChangeItem{Label: strings.TrimSpace(label), Detail: strings.TrimSpace(detail)}
		if after {
			b.After = append(b.After, item)
		} else {
			b.Before = append(b.Before, item)
		}
	}
	return b, ds
}

func parsePipeline(f Fence) []ast.PipelineStep {
	var steps []ast.PipelineStep
	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		if t == "" {
			continue
		}
		t = strings.TrimPrefix(t, "- ")
		label, desc, found := strings.Cut(t, " | ")
		step := ast.PipelineStep{Label: strings.TrimSpace(label)}
		if found {
			step.Description = strings.TrimSpace(desc)
		}
		steps = append(steps, step)
	}
	return steps
}

// parseProductCard walks the body as a small state machine: title
// heading, optional subtitle paragraph, prose body, feature list, and a
// trailing call-to-action link.
func parseProductCard(f Fence, set *attrSet) (*ast.ProductCard, []diag.Diagnostic) {
	card := &ast.ProductCard{Badge: set.str("badge"), BadgeColor: set.str("badge-color")}
	var ds []diag.Diagnostic
	var body []string

	const (
		beforeTitle = iota
		afterTitle
		inBody
		inFeatures
	)
	state := beforeTitle

	for _, ln := range bodyLines(f) {
		t := strings.TrimSpace(ln.text)
		isFeature := strings.HasPrefix(t, "- ")
		isLink := strings.HasPrefix(t, "[") && strings.Contains(t, "](")

		switch state {
		case beforeTitle:
			if head, ok := headingText(t, "## "); ok {
				card.Title = head
				state = afterTitle
			} else if t != "" {
				ds = append(ds, badRow("product-card", ln))
			}
		case afterTitle:
			switch {
			case t == "":
				if card.Subtitle != "" {
					state = inBody
				}
			case isFeature:
				card.Features = append(card.Features, t[2:])
				state = inFeatures
			case isLink:
				setCardLink(card, t)
			case card.Subtitle == "":
				card.Subtitle = t
			default:
				body = append(body, t)
				state = inBody
			}
		case inBody:
			switch {
			case isFeature:
				card.Features = append(card.Features, t[2:])
				state = inFeatures
			case isLink:
				setCardLink(card, t)
			default:
				body = append(body, t)
			}
		case inFeatures:
			switch {
			case isFeature:
				card.Features = append(card.Features, t[2:])
			case isLink:
				setCardLink(card, t)
			case t != "":
				ds = append(ds, badRow("product-card", ln))
			}
		}
	}
	card.Body = inline.Rich(strings.TrimSpace(strings.Join(body, "\n")))
	return card, ds
}

func setCardLink(card *ast.ProductCard, t string) {
	if btn, ok := parseHeroButton(t); ok {
		card.CtaLabel, card.CtaHref = btn.Label, btn.Href
	}
}

// parseTabs splits the body into labelled panels and assembles each
// panel's lines recursively. Nested fences are skipped whole so panel
// labels inside a nested block do not open a new panel. A body with
// content but no labels becomes a single unnamed panel.
func parseTabs(f Fence, children ChildParser) ([]ast.TabPanel, []diag.Diagnostic) {
	lines := bodyLines(f)
	var ds []diag.Diagnostic

	if !hasTabLabel(lines) {
		body := trimBlank(lines)
		if len(body) == 0 {
			return nil, nil
		}
		blocks, more := children(joinLines(body), body[0].span.Start)
		return []ast.TabPanel{{Label: "Tab 1", Children: blocks}}, more
	}

	var panels []ast.TabPanel
	var label string
	var body []bline
	var open bool

	flush := func() {
		if !open {
			return
		}
		panel := ast.TabPanel{Label: label}
		if kept := trimBlank(body); len(kept) > 0 {
			blocks, more := children(joinLines(kept), kept[0].span.Start)
			ds = append(ds, more...)
			panel.Children = blocks
		}
		panels = append(panels, panel)
		body = nil
	}

	i := 0
	for i < len(lines) {
		ln := lines[i]
		if depth, ok := scanner.OpenDepth(ln.text); ok {
			end := fenceEnd(lines, i, depth)
			if open {
				body = append(body, lines[i:end]...)
			} else {
				ds = append(ds, badRow("tabs", ln))
			}
			i = end
			continue
		}
		if head, ok := headingText(ln.text, "## ", "### "); ok {
			flush()
			label, open = head, true
			i++
			continue
		}
		if !open {
			if strings.TrimSpace(ln.text) != "" {
				ds = append(ds, badRow("tabs", ln))
			}
			i++
			continue
		}
		body = append(body, ln)
		i++
	}
	flush()
	return panels, ds
}

// hasTabLabel reports whether any top-level line is a panel heading.
func hasTabLabel(lines []bline) bool {
	i := 0
	for i < len(lines) {
		if depth, ok := scanner.OpenDepth(lines[i].text); ok {
			i = fenceEnd(lines, i, depth)
			continue
		}
		if _, ok := headingText(lines[i].text, "## ", "### "); ok {
			return true
		}
		i++
	}
	return false
}

// parseColumns splits the body on top-level "---" separator lines into
// column groups, each assembled recursively. Separators inside nested
// fences stay part of that block's body.
func parseColumns(f Fence, children ChildParser) ([]ast.Column, []diag.Diagnostic) {
	lines := bodyLines(f)
	var ds []diag.Diagnostic
	var cols []ast.Column
	var current []bline

	assembleCol := func() ast.Column {
		var col ast.Column
		if kept := trimBlank(current); len(kept) > 0 {
			blocks, more := children(joinLines(kept), kept[0].span.Start)
			ds = append(ds, more...)
			col.Children = blocks
		}
		current = nil
		return col
	}

	i := 0
	for i < len(lines) {
		ln := lines[i]
		if depth, ok := scanner.OpenDepth(ln.text); ok {
			end := fenceEnd(lines, i, depth)
			current = append(current, lines[i:end]...)
			i = end
			continue
		}
		if strings.TrimSpace(ln.text) == "---" {
			cols = append(cols, assembleCol())
			i++
			continue
		}
		current = append(current, ln)
		i++
	}
	if len(trimBlank(current)) > 0 {
		cols = append(cols, assembleCol())
	}
	return cols, ds
}
