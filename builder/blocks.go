package builder

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/internal/inline"
)

var (
	calloutTypes     = []any{"info", "warning", "danger", "tip", "note", "success"}
	decisionStatuses = []any{"proposed", "accepted", "rejected", "superseded"}
	metricTrends     = []any{"up", "down", "flat"}
	embedTypes       = []any{"video", "map", "audio", "generic"}
)

func missingItem(i int, field string) error {
	return fmt.Errorf("item %d: missing %s", i+1, field)
}

// Callout appends a callout of the given type.
func (b *Builder) Callout(typ, content string) *Builder {
	return b.CalloutTitled(typ, "", content)
}

// CalloutTitled appends a callout with an explicit title.
func (b *Builder) CalloutTitled(typ, title, content string) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"type":    validation.Validate(typ, validation.Required, validation.In(calloutTypes...)),
		"content": validation.Validate(content, validation.Required),
	}).Filter(); err != nil {
		return b.fail("callout", err)
	}
	return b.push(&ast.Callout{BlockBase: base(), Type: typ, Title: title, Text: inline.Rich(content)})
}

// Code appends a code block. lang may be empty.
func (b *Builder) Code(content, lang string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(content, validation.Required); err != nil {
		return b.fail("code", err)
	}
	return b.push(&ast.Code{BlockBase: base(), Lang: lang, Body: content})
}

// CodeFile appends a code block tied to a file path.
func (b *Builder) CodeFile(content, lang, file string) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"content": validation.Validate(content, validation.Required),
		"file":    validation.Validate(file, validation.Required),
	}).Filter(); err != nil {
		return b.fail("code", err)
	}
	return b.push(&ast.Code{BlockBase: base(), Lang: lang, File: file, Body: content})
}

// DataTable appends a table-format data block.
func (b *Builder) DataTable(headers []string, rows [][]string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(headers, validation.Required); err != nil {
		return b.fail("data", err)
	}
	return b.push(&ast.Data{
		BlockBase: base(),
		Format:    "table",
		Cols:      len(headers),
		Headers:   headers,
		Rows:      rows,
	})
}

// Task appends a single-item task list.
func (b *Builder) Task(text string, done bool) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(text, validation.Required); err != nil {
		return b.fail("task", err)
	}
	return b.push(&ast.Tasks{BlockBase: base(), Items: []ast.TaskItem{{Text: text, Done: done}}})
}

// Tasks appends a task list.
func (b *Builder) Tasks(items ...ast.TaskItem) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(items, validation.Required); err != nil {
		return b.fail("tasks", err)
	}
	for i, it := range items {
		if it.Text == "" {
			return b.fail("tasks", missingItem(i, "text"))
		}
	}
	return b.push(&ast.Tasks{BlockBase: base(), Items: items})
}

// Decision appends a decision record.
func (b *Builder) Decision(status, content string) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"status":  validation.Validate(status, validation.Required, validation.In(decisionStatuses...)),
		"content": validation.Validate(content, validation.Required),
	}).Filter(); err != nil {
		return b.fail("decision", err)
	}
	return b.push(&ast.Decision{BlockBase: base(), Status: status, Text: inline.Rich(content)})
}

// Metric appends a labeled numeric figure.
func (b *Builder) Metric(label string, value float64) *Builder {
	return b.MetricWithTrend(label, value, "", "")
}

// MetricWithTrend appends a metric with unit and trend direction. trend
// may be empty; when set it must be up, down, or flat.
func (b *Builder) MetricWithTrend(label string, value float64, unit, trend string) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"label": validation.Validate(label, validation.Required),
		"trend": validation.Validate(trend, validation.In(metricTrends...)),
	}).Filter(); err != nil {
		return b.fail("metric", err)
	}
	return b.push(&ast.Metric{BlockBase: base(), Label: label, Value: ast.Number(value), Unit: unit, Trend: trend})
}

// Summary appends a summary block.
func (b *Builder) Summary(content string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(content, validation.Required); err != nil {
		return b.fail("summary", err)
	}
	return b.push(&ast.Summary{BlockBase: base(), Text: inline.Rich(content)})
}

// Figure appends an image figure.
func (b *Builder) Figure(src string) *Builder {
	return b.FigureWithCaption(src, "", "")
}

// FigureWithCaption appends a figure with caption and alt text.
func (b *Builder) FigureWithCaption(src, caption, alt string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(src, validation.Required); err != nil {
		return b.fail("figure", err)
	}
	return b.push(&ast.Figure{BlockBase: base(), Src: src, Alt: alt, Caption: caption})
}

// Quote appends a block quote.
func (b *Builder) Quote(content string) *Builder {
	return b.QuoteAttributed(content, "")
}

// QuoteAttributed appends a quote with an attribution.
func (b *Builder) QuoteAttributed(content, by string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(content, validation.Required); err != nil {
		return b.fail("quote", err)
	}
	return b.push(&ast.Quote{BlockBase: base(), By: by, Text: inline.Rich(content)})
}

// Cta appends a call-to-action button.
func (b *Builder) Cta(label, href string, primary bool) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"label": validation.Validate(label, validation.Required),
		"href":  validation.Validate(href, validation.Required),
	}).Filter(); err != nil {
		return b.fail("cta", err)
	}
	return b.push(&ast.Cta{BlockBase: base(), Label: label, Href: href, Primary: primary})
}

// HeroImage appends a full-width banner image.
func (b *Builder) HeroImage(src, alt string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(src, validation.Required); err != nil {
		return b.fail("hero-image", err)
	}
	return b.push(&ast.HeroImage{BlockBase: base(), Src: src, Alt: alt})
}

// Testimonial appends a customer quote. role and company may be empty.
func (b *Builder) Testimonial(content, author, role, company string) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"content": validation.Validate(content, validation.Required),
		"author":  validation.Validate(author, validation.Required),
	}).Filter(); err != nil {
		return b.fail("testimonial", err)
	}
	return b.push(&ast.Testimonial{
		BlockBase: base(),
		Author:    author,
		Role:      role,
		Company:   company,
		Text:      inline.Rich(content),
	})
}

// Style appends a style property block.
func (b *Builder) Style(props ...ast.StyleProp) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(props, validation.Required); err != nil {
		return b.fail("style", err)
	}
	for i, p := range props {
		if p.Key == "" {
			return b.fail("style", missingItem(i, "key"))
		}
	}
	return b.push(&ast.Style{BlockBase: base(), Props: props})
}

// Faq appends a question/answer list.
func (b *Builder) Faq(items ...ast.FaqItem) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(items, validation.Required); err != nil {
		return b.fail("faq", err)
	}
	out := make([]ast.FaqItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Question == "" {
			return b.fail("faq", missingItem(i, "question"))
		}
		out[i].Answer = richOf(out[i].Answer)
	}
	return b.push(&ast.Faq{BlockBase: base(), Items: out})
}

// PricingTable appends a plan comparison table.
func (b *Builder) PricingTable(headers []string, rows [][]string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(headers, validation.Required); err != nil {
		return b.fail("pricing-table", err)
	}
	return b.push(&ast.PricingTable{BlockBase: base(), Headers: headers, Rows: rows})
}

// Nav appends a navigation block. logo may be empty.
func (b *Builder) Nav(items []ast.NavItem, logo string) *Builder {
	if b.err != nil {
		return b
	}
	nav, err := navBlock(items, logo)
	if err != nil {
		return b.fail("nav", err)
	}
	return b.push(nav)
}

func navBlock(items []ast.NavItem, logo string) (*ast.Nav, error) {
	if err := validation.Validate(items, validation.Required); err != nil {
		return nil, err
	}
	for i, it := range items {
		if it.Label == "" {
			return nil, missingItem(i, "label")
		}
		if it.Href == "" {
			return nil, missingItem(i, "href")
		}
	}
	return &ast.Nav{BlockBase: base(), Logo: logo, Items: items}, nil
}

// Embed appends an external content embed. typ may be empty; when set it
// must be video, map, audio, or generic.
func (b *Builder) Embed(src, typ, title string) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"src":  validation.Validate(src, validation.Required),
		"type": validation.Validate(typ, validation.In(embedTypes...)),
	}).Filter(); err != nil {
		return b.fail("embed", err)
	}
	return b.push(&ast.Embed{BlockBase: base(), Src: src, Type: typ, Title: title})
}

// Form appends an input form. submit may be empty.
func (b *Builder) Form(fields []ast.FormField, submit string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(fields, validation.Required); err != nil {
		return b.fail("form", err)
	}
	for i, f := range fields {
		if f.Label == "" {
			return b.fail("form", missingItem(i, "label"))
		}
	}
	return b.push(&ast.Form{BlockBase: base(), Submit: submit, Fields: fields})
}

// Gallery appends an image grid. columns of zero derives the layout from
// the item count.
func (b *Builder) Gallery(items []ast.GalleryItem, columns int) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(columns, validation.Min(0)); err != nil {
		return b.fail("gallery", err)
	}
	if err := validation.Validate(items, validation.Required); err != nil {
		return b.fail("gallery", err)
	}
	for i, it := range items {
		if it.Src == "" {
			return b.fail("gallery", missingItem(i, "src"))
		}
	}
	return b.push(&ast.Gallery{BlockBase: base(), Columns: columns, Items: items})
}

// Footer appends a page footer. At least one of sections, social, or
// copyright must be present.
func (b *Builder) Footer(sections []ast.FooterSection, social []ast.SocialLink, copyright string) *Builder {
	if b.err != nil {
		return b
	}
	footer, err := footerBlock(sections, social, copyright)
	if err != nil {
		return b.fail("footer", err)
	}
	return b.push(footer)
}

func footerBlock(sections []ast.FooterSection, social []ast.SocialLink, copyright string) (*ast.Footer, error) {
	if len(sections) == 0 && len(social) == 0 && copyright == "" {
		return nil, ErrEmptyFooter
	}
	for i, s := range social {
		if s.Platform == "" {
			return nil, missingItem(i, "platform")
		}
	}
	return &ast.Footer{BlockBase: base(), Sections: sections, Social: social, Copyright: copyright}, nil
}

// Hero appends a page-top banner. subtitle may be empty.
func (b *Builder) Hero(headline, subtitle string, buttons ...ast.HeroButton) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(headline, validation.Required); err != nil {
		return b.fail("hero", err)
	}
	for i, bt := range buttons {
		if bt.Label == "" {
			return b.fail("hero", missingItem(i, "label"))
		}
		if bt.Href == "" {
			return b.fail("hero", missingItem(i, "href"))
		}
	}
	return b.push(&ast.Hero{BlockBase: base(), Align: "center", Headline: headline, Subtitle: subtitle, Buttons: buttons})
}

// Features appends a feature card grid. cols of zero derives the layout
// from the card count.
func (b *Builder) Features(cols int, cards ...ast.FeatureCard) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(cols, validation.Min(0)); err != nil {
		return b.fail("features", err)
	}
	if err := validation.Validate(cards, validation.Required); err != nil {
		return b.fail("features", err)
	}
	out := make([]ast.FeatureCard, len(cards))
	copy(out, cards)
	for i := range out {
		if out[i].Title == "" {
			return b.fail("features", missingItem(i, "title"))
		}
		out[i].Body = richOf(out[i].Body)
	}
	return b.push(&ast.Features{BlockBase: base(), Cols: cols, Cards: out})
}

// Steps appends an ordered instruction sequence.
func (b *Builder) Steps(items ...ast.StepItem) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(items, validation.Required); err != nil {
		return b.fail("steps", err)
	}
	out := make([]ast.StepItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Title == "" {
			return b.fail("steps", missingItem(i, "title"))
		}
		out[i].Body = richOf(out[i].Body)
	}
	return b.push(&ast.Steps{BlockBase: base(), Items: out})
}

// Stats appends a row of key figures.
func (b *Builder) Stats(items ...ast.StatItem) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(items, validation.Required); err != nil {
		return b.fail("stats", err)
	}
	for i, it := range items {
		if it.Value == "" {
			return b.fail("stats", missingItem(i, "value"))
		}
		if it.Label == "" {
			return b.fail("stats", missingItem(i, "label"))
		}
	}
	return b.push(&ast.Stats{BlockBase: base(), Items: items})
}

// Comparison appends a feature comparison table.
func (b *Builder) Comparison(headers []string, rows [][]string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(headers, validation.Required); err != nil {
		return b.fail("comparison", err)
	}
	return b.push(&ast.Comparison{BlockBase: base(), Headers: headers, Rows: rows})
}

// BeforeAfter appends a change summary. Either side may be empty, but
// not both.
func (b *Builder) BeforeAfter(before, after []ast.ChangeItem) *Builder {
	if b.err != nil {
		return b
	}
	if len(before) == 0 && len(after) == 0 {
		return b.fail("before-after", ErrEmptyChanges)
	}
	for i, it := range before {
		if it.Label == "" {
			return b.fail("before-after", missingItem(i, "label"))
		}
	}
	for i, it := range after {
		if it.Label == "" {
			return b.fail("before-after", missingItem(i, "label"))
		}
	}
	return b.push(&ast.BeforeAfter{BlockBase: base(), Before: before, After: after})
}

// Pipeline appends a linear stage sequence.
func (b *Builder) Pipeline(steps ...ast.PipelineStep) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(steps, validation.Required); err != nil {
		return b.fail("pipeline", err)
	}
	for i, st := range steps {
		if st.Label == "" {
			return b.fail("pipeline", missingItem(i, "label"))
		}
	}
	return b.push(&ast.Pipeline{BlockBase: base(), Steps: steps})
}

// Logo appends a brand logo. size of zero leaves the display size to the
// renderer.
func (b *Builder) Logo(src, alt string, size int) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"src":  validation.Validate(src, validation.Required),
		"size": validation.Validate(size, validation.Min(0)),
	}).Filter(); err != nil {
		return b.fail("logo", err)
	}
	return b.push(&ast.Logo{BlockBase: base(), Src: src, Alt: alt, Size: size})
}

// Toc appends a table of contents marker. depth of zero means the
// default depth of three.
func (b *Builder) Toc(depth int) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(depth, validation.Min(0)); err != nil {
		return b.fail("toc", err)
	}
	if depth == 0 {
		depth = 3
	}
	return b.push(&ast.Toc{BlockBase: base(), Depth: depth})
}

// Divider appends a thematic break. label may be empty.
func (b *Builder) Divider(label string) *Builder {
	if b.err != nil {
		return b
	}
	return b.push(&ast.Divider{BlockBase: base(), Label: label})
}

// ProductCard appends a product summary card. A body requires a
// subtitle, and the cta label and href come as a pair.
func (b *Builder) ProductCard(title, subtitle, body string, features []string, ctaLabel, ctaHref string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(title, validation.Required); err != nil {
		return b.fail("product-card", err)
	}
	if body != "" && subtitle == "" {
		return b.fail("product-card", ErrCardSubtitle)
	}
	if (ctaLabel == "") != (ctaHref == "") {
		return b.fail("product-card", ErrCardCta)
	}
	card := &ast.ProductCard{
		BlockBase: base(),
		Title:     title,
		Subtitle:  subtitle,
		Features:  features,
		CtaLabel:  ctaLabel,
		CtaHref:   ctaHref,
	}
	if body != "" {
		card.Body = inline.Rich(body)
	}
	return b.push(card)
}
