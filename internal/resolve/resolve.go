// Package resolve turns scanned directive fences into typed blocks. Each
// fence is matched against the schema table: attributes are coerced to
// their declared types, the body is interpreted per the directive's body
// shape, and anything that does not fit is reported and degraded rather
// than dropped. Unknown directive names pass through verbatim.
package resolve

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/diag"
	"github.com/goliatone/go-surfdoc/internal/attrs"
	"github.com/goliatone/go-surfdoc/internal/inline"
	"github.com/goliatone/go-surfdoc/schema"
)

// Fence is one scanned directive block. Offsets are absolute within the
// document text.
type Fence struct {
	Name      string
	RawAttrs  string
	AttrStart int
	Body      string
	BodyStart int
	Span      ast.Span
}

// ChildParser assembles nested body text into blocks. The assembler
// passes its own recursion here so container directives can type their
// children without resolve depending on the assembly loop.
type ChildParser func(body string, base int) ([]ast.Block, []diag.Diagnostic)

// Block types one fence against the schema table. The returned
// diagnostics cover attribute and body problems; structural concerns
// (nesting, duplicate ids) belong to the caller.
func Block(f Fence, children ChildParser) (ast.Block, []diag.Diagnostic) {
	d, ok := schema.Lookup(f.Name)
	if !ok {
		u := &ast.Unknown{Name: f.Name, RawAttrs: f.RawAttrs, Body: f.Body}
		u.Span = f.Span
		return u, []diag.Diagnostic{diag.New(diag.CodeUnknownDirective, openSpan(f),
			"unknown directive %q, preserved verbatim", f.Name)}
	}

	parsed, ds := attrs.Parse(f.RawAttrs, f.AttrStart)
	set, more := coerce(d, parsed, openSpan(f))
	ds = append(ds, more...)

	b, more := construct(d, f, set, children)
	ds = append(ds, more...)

	base := b.Base()
	base.ID = set.id
	base.Span = f.Span
	base.Extra = set.extra
	return b, ds
}

// openSpan is the opening fence line, the anchor for attribute-level
// diagnostics.
func openSpan(f Fence) ast.Span {
	end := f.BodyStart
	if f.Body != "" {
		end = f.BodyStart - 1
	}
	if end < f.Span.Start {
		end = f.Span.Start
	}
	return ast.Span{Start: f.Span.Start, End: end}
}

// attrSet holds the coerced attribute values for one fence: typed values
// keyed by canonical name, the universal id, and unschematized extras.
type attrSet struct {
	id    string
	vals  map[string]ast.AttrValue
	extra ast.Attrs
}

func (s *attrSet) str(name string) string {
	v, ok := s.vals[name]
	if !ok {
		return ""
	}
	return stringify(v)
}

func (s *attrSet) num(name string) float64 {
	if n, ok := s.vals[name].(ast.Number); ok {
		return float64(n)
	}
	return 0
}

func (s *attrSet) count(name string) int { return int(s.num(name)) }

func (s *attrSet) flag(name string) bool {
	if b, ok := s.vals[name].(ast.Bool); ok {
		return bool(b)
	}
	return false
}

func (s *attrSet) val(name string) ast.AttrValue { return s.vals[name] }

// coerce types every parsed attribute against the descriptor. Aliases
// normalize to canonical names, unschematized keys land in extra, and
// absent attributes pick up their declared defaults. Missing required
// attributes are reported and left at their zero value.
func coerce(d schema.Descriptor, parsed ast.Attrs, at ast.Span) (*attrSet, []diag.Diagnostic) {
	set := &attrSet{vals: make(map[string]ast.AttrValue, parsed.Len())}
	var ds []diag.Diagnostic

	for _, key := range parsed.Keys() {
		v, _ := parsed.Get(key)
		spec, ok := d.Attr(key)
		if !ok {
			set.extra.Set(key, v)
			continue
		}
		if spec.Name == "id" {
			set.id = stringify(v)
			continue
		}
		cv, more := coerceValue(d, spec, v, at)
		ds = append(ds, more...)
		set.vals[spec.Name] = cv
	}

	for _, spec := range d.Attrs {
		if _, ok := set.vals[spec.Name]; ok {
			continue
		}
		if spec.Required {
			ds = append(ds, diag.New(diag.CodeMissingRequiredAttr, at,
				"%q requires attribute %q", d.Name, spec.Name))
			continue
		}
		if spec.Default != nil {
			set.vals[spec.Name] = defaultValue(spec)
		}
	}
	return set, ds
}

func coerceValue(d schema.Descriptor, spec schema.AttrSpec, v ast.AttrValue, at ast.Span) (ast.AttrValue, []diag.Diagnostic) {
	switch spec.Type {
	case schema.TypeString:
		if l, ok := v.(ast.List); ok {
			return ast.String(stringify(l)), []diag.Diagnostic{mismatch(d, spec, v, at)}
		}
		return ast.String(stringify(v)), nil

	case schema.TypeNumber:
		n, ok := toNumber(v)
		if !ok {
			return v, []diag.Diagnostic{mismatch(d, spec, v, at)}
		}
		if spec.Min > 0 && float64(n) < spec.Min {
			return ast.Number(spec.Min), []diag.Diagnostic{diag.New(diag.CodeInvalidAttrValue, at,
				"attribute %q of %q below minimum %s, clamped", spec.Name, d.Name, formatNumber(spec.Min))}
		}
		return n, nil

	case schema.TypeBool:
		switch t := v.(type) {
		case ast.Bool:
			return t, nil
		case ast.String:
			if t == "true" {
				return ast.Bool(true), nil
			}
			if t == "false" {
				return ast.Bool(false), nil
			}
		}
		return v, []diag.Diagnostic{mismatch(d, spec, v, at)}

	case schema.TypeEnum:
		if _, ok := v.(ast.List); ok {
			return enumFallback(spec), []diag.Diagnostic{mismatch(d, spec, v, at)}
		}
		s := stringify(v)
		if spec.Allows(s) {
			return ast.String(s), nil
		}
		return enumFallback(spec), []diag.Diagnostic{diag.New(diag.CodeUnknownEnumValue, at,
			"attribute %q of %q: %q is not one of %s", spec.Name, d.Name, s, strings.Join(spec.Enum, ", "))}

	case schema.TypeList:
		if l, ok := v.(ast.List); ok {
			return l, nil
		}
		return ast.List{v}, nil
	}
	return v, nil
}

func mismatch(d schema.Descriptor, spec schema.AttrSpec, v ast.AttrValue, at ast.Span) diag.Diagnostic {
	return diag.New(diag.CodeAttrTypeMismatch, at,
		"attribute %q of %q: %q is not a valid %s", spec.Name, d.Name, stringify(v), spec.Type)
}

func toNumber(v ast.AttrValue) (ast.Number, bool) {
	switch t := v.(type) {
	case ast.Number:
		return t, true
	case ast.String:
		if f, err := strconv.ParseFloat(string(t), 64); err == nil {
			return ast.Number(f), true
		}
	}
	return 0, false
}

func defaultValue(spec schema.AttrSpec) ast.AttrValue {
	switch t := spec.Default.(type) {
	case string:
		return ast.String(t)
	case float64:
		return ast.Number(t)
	case bool:
		return ast.Bool(t)
	}
	return nil
}

func enumFallback(spec schema.AttrSpec) ast.AttrValue {
	if s, ok := spec.Default.(string); ok {
		return ast.String(s)
	}
	return ast.String("")
}

func stringify(v ast.AttrValue) string {
	switch t := v.(type) {
	case ast.String:
		return string(t)
	case ast.Number:
		return formatNumber(float64(t))
	case ast.Bool:
		if t {
			return "true"
		}
		return "false"
	case ast.List:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// emptyBodyKinds lists the kinds that warrant an empty-body warning when
// their body is blank. Columns, tabs and site are excluded: container
// emptiness is the validator's empty-container concern.
var emptyBodyKinds = map[ast.Kind]bool{
	ast.KindData:         true,
	ast.KindTasks:        true,
	ast.KindStyle:        true,
	ast.KindFaq:          true,
	ast.KindPricingTable: true,
	ast.KindNav:          true,
	ast.KindForm:         true,
	ast.KindGallery:      true,
	ast.KindFooter:       true,
	ast.KindHero:         true,
	ast.KindFeatures:     true,
	ast.KindSteps:        true,
	ast.KindStats:        true,
	ast.KindComparison:   true,
	ast.KindBeforeAfter:  true,
	ast.KindPipeline:     true,
	ast.KindProductCard:  true,
	ast.KindDetails:      true,
	ast.KindSection:      true,
	ast.KindPage:         true,
}

func construct(d schema.Descriptor, f Fence, set *attrSet, children ChildParser) (ast.Block, []diag.Diagnostic) {
	var ds []diag.Diagnostic
	switch d.Body {
	case schema.BodyNone:
		if strings.TrimSpace(f.Body) != "" {
			ds = append(ds, diag.New(diag.CodeIgnoredBody, openSpan(f),
				"%q takes no body, content ignored", d.Name))
		}
	case schema.BodyRows, schema.BodyChildren:
		if emptyBodyKinds[d.Kind] && strings.TrimSpace(f.Body) == "" {
			ds = append(ds, diag.New(diag.CodeEmptyBody, f.Span, "%q has an empty body", d.Name))
		}
	}

	switch d.Kind {
	case ast.KindCallout:
		return &ast.Callout{Type: set.str("type"), Title: set.str("title"), Text: richBody(f)}, ds
	case ast.KindSummary:
		return &ast.Summary{Text: richBody(f)}, ds
	case ast.KindQuote:
		return &ast.Quote{Text: richBody(f), By: set.str("by"), Cite: set.str("cite")}, ds
	case ast.KindTestimonial:
		return &ast.Testimonial{
			Text:    richBody(f),
			Author:  set.str("author"),
			Role:    set.str("role"),
			Company: set.str("company"),
		}, ds
	case ast.KindDecision:
		return &ast.Decision{
			Status:   set.str("status"),
			Date:     set.str("date"),
			Deciders: set.str("deciders"),
			Text:     richBody(f),
		}, ds
	case ast.KindCode:
		return &ast.Code{
			Lang:      set.str("lang"),
			File:      set.str("file"),
			Highlight: set.str("highlight"),
			Body:      f.Body,
		}, ds
	case ast.KindData:
		b, more := buildData(f, set)
		return b, append(ds, more...)
	case ast.KindTasks:
		items, more := parseTasks(f)
		return &ast.Tasks{Items: items}, append(ds, more...)
	case ast.KindMetric:
		return &ast.Metric{
			Label: set.str("label"),
			Value: set.val("value"),
			Unit:  set.str("unit"),
			Trend: set.str("trend"),
		}, ds
	case ast.KindFigure:
		return &ast.Figure{
			Src:     set.str("src"),
			Alt:     set.str("alt"),
			Caption: set.str("caption"),
			Width:   set.str("width"),
		}, ds
	case ast.KindCta:
		return &ast.Cta{
			Label:   set.str("label"),
			Href:    set.str("href"),
			Primary: set.flag("primary"),
			Icon:    set.str("icon"),
		}, ds
	case ast.KindHeroImage:
		return &ast.HeroImage{Src: set.str("src"), Alt: set.str("alt")}, ds
	case ast.KindEmbed:
		return &ast.Embed{
			Src:    set.str("src"),
			Type:   embedType(set),
			Title:  set.str("title"),
			Width:  set.str("width"),
			Height: set.str("height"),
		}, ds
	case ast.KindLogo:
		return &ast.Logo{Src: set.str("src"), Alt: set.str("alt"), Size: set.count("size")}, ds
	case ast.KindDivider:
		return &ast.Divider{Label: set.str("label")}, ds
	case ast.KindToc:
		return &ast.Toc{Depth: set.count("depth")}, ds
	case ast.KindStyle:
		props, more := parseStyle(f)
		return &ast.Style{Props: props}, append(ds, more...)
	case ast.KindFaq:
		items, more := parseFaq(f)
		return &ast.Faq{Items: items}, append(ds, more...)
	case ast.KindPricingTable:
		headers, rows := tableRows(bodyLines(f))
		return &ast.PricingTable{Highlight: set.str("highlight"), Headers: headers, Rows: rows}, ds
	case ast.KindNav:
		items, more := parseNav(f)
		return &ast.Nav{Logo: set.str("logo"), Items: items}, append(ds, more...)
	case ast.KindForm:
		fields, more := parseForm(f)
		return &ast.Form{Submit: set.str("submit"), Fields: fields}, append(ds, more...)
	case ast.KindGallery:
		items, more := parseGallery(f)
		return &ast.Gallery{Columns: set.count("columns"), Items: items}, append(ds, more...)
	case ast.KindFooter:
		b, more := parseFooter(f)
		return b, append(ds, more...)
	case ast.KindHero:
		b, more := parseHero(f, set)
		return b, append(ds, more...)
	case ast.KindFeatures:
		cards, more := parseFeatures(f)
		return &ast.Features{Cols: set.count("cols"), Cards: cards}, append(ds, more...)
	case ast.KindSteps:
		items, more := parseSteps(f)
		return &ast.Steps{Items: items}, append(ds, more...)
	case ast.KindStats:
		items, more := parseStats(f)
		return &ast.Stats{Items: items}, append(ds, more...)
	case ast.KindComparison:
		headers, rows := tableRows(bodyLines(f))
		return &ast.Comparison{Highlight: set.str("highlight"), Headers: headers, Rows: rows}, ds
	case ast.KindBeforeAfter:
		b, more := parseBeforeAfter(f, set)
		return b, append(ds, more...)
	case ast.KindPipeline:
		return &ast.Pipeline{Steps: parsePipeline(f)}, ds
	case ast.KindProductCard:
		b, more := parseProductCard(f, set)
		return b, append(ds, more...)
	case ast.KindTabs:
		panels, more := parseTabs(f, children)
		return &ast.Tabs{Panels: panels}, append(ds, more...)
	case ast.KindColumns:
		cols, more := parseColumns(f, children)
		return &ast.Columns{Gap: set.str("gap"), Cols: cols}, append(ds, more...)
	case ast.KindDetails:
		blocks, more := children(f.Body, f.BodyStart)
		return &ast.Details{
			Title:    set.str("title"),
			Open:     set.flag("open"),
			Children: blocks,
		}, append(ds, more...)
	case ast.KindSection:
		blocks, more := children(f.Body, f.BodyStart)
		return &ast.Section{
			Headline: set.str("headline"),
			Subtitle: set.str("subtitle"),
			Bg:       set.str("bg"),
			Children: blocks,
		}, append(ds, more...)
	case ast.KindSite:
		blocks, more := children(f.Body, f.BodyStart)
		return &ast.Site{
			Domain:   set.str("domain"),
			Name:     set.str("name"),
			Tagline:  set.str("tagline"),
			Theme:    set.str("theme"),
			Accent:   set.str("accent"),
			Font:     set.str("font"),
			Children: blocks,
		}, append(ds, more...)
	case ast.KindPage:
		blocks, more := children(f.Body, f.BodyStart)
		return &ast.Page{
			Route:    set.str("route"),
			Title:    set.str("title"),
			Layout:   set.str("layout"),
			Sidebar:  set.flag("sidebar"),
			Children: blocks,
		}, append(ds, more...)
	}

	u := &ast.Unknown{Name: f.Name, RawAttrs: f.RawAttrs, Body: f.Body}
	return u, ds
}

func richBody(f Fence) ast.Rich {
	return inline.Rich(strings.TrimSpace(f.Body))
}

// embedType returns the declared embed type, falling back to inference
// from the source URL.
func embedType(set *attrSet) string {
	if t := set.str("type"); t != "" {
		return t
	}
	src := strings.ToLower(set.str("src"))
	switch {
	case strings.Contains(src, "google.com/maps"), strings.Contains(src, "maps.google"):
		return "map"
	case strings.Contains(src, "youtube.com"), strings.Contains(src, "youtu.be"),
		strings.Contains(src, "vimeo.com"):
		return "video"
	case strings.Contains(src, "soundcloud.com"), strings.Contains(src, "spotify.com"):
		return "audio"
	}
	return ""
}
