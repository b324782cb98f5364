package ast

// Kind identifies the concrete type of a Block.
type Kind int

const (
	KindMarkdown Kind = iota
	KindCallout
	KindSummary
	KindQuote
	KindTestimonial
	KindDecision
	KindCode
	KindData
	KindTasks
	KindMetric
	KindFigure
	KindCta
	KindHeroImage
	KindEmbed
	KindLogo
	KindDivider
	KindToc
	KindStyle
	KindFaq
	KindPricingTable
	KindNav
	KindForm
	KindGallery
	KindFooter
	KindHero
	KindFeatures
	KindSteps
	KindStats
	KindComparison
	KindBeforeAfter
	KindPipeline
	KindProductCard
	KindTabs
	KindColumns
	KindDetails
	KindSection
	KindSite
	KindPage
	KindUnknown
)

var kindNames = map[Kind]string{
	KindMarkdown:     "markdown",
	KindCallout:      "callout",
	KindSummary:      "summary",
	KindQuote:        "quote",
	KindTestimonial:  "testimonial",
	KindDecision:     "decision",
	KindCode:         "code",
	KindData:         "data",
	KindTasks:        "tasks",
	KindMetric:       "metric",
	KindFigure:       "figure",
	KindCta:          "cta",
	KindHeroImage:    "hero-image",
	KindEmbed:        "embed",
	KindLogo:         "logo",
	KindDivider:      "divider",
	KindToc:          "toc",
	KindStyle:        "style",
	KindFaq:          "faq",
	KindPricingTable: "pricing-table",
	KindNav:          "nav",
	KindForm:         "form",
	KindGallery:      "gallery",
	KindFooter:       "footer",
	KindHero:         "hero",
	KindFeatures:     "features",
	KindSteps:        "steps",
	KindStats:        "stats",
	KindComparison:   "comparison",
	KindBeforeAfter:  "before-after",
	KindPipeline:     "pipeline",
	KindProductCard:  "product-card",
	KindTabs:         "tabs",
	KindColumns:      "columns",
	KindDetails:      "details",
	KindSection:      "section",
	KindSite:         "site",
	KindPage:         "page",
	KindUnknown:      "unknown",
}

// String returns the directive name for the kind ("callout",
// "pricing-table"). Markdown and Unknown return "markdown" and "unknown".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Block is the closed union of document block nodes: Markdown prose runs,
// the typed directive blocks, and Unknown for unrecognized directives.
type Block interface {
	Kind() Kind
	Base() *BlockBase
	block()
}

// BlockBase carries the fields every block shares. ID is the declared or
// assigned identifier ("" when none), Span the source range, and Extra any
// attributes the block's schema does not name, preserved verbatim.
type BlockBase struct {
	ID    string
	Span  Span
	Extra Attrs
}

// Base returns the shared block fields. It makes any struct embedding
// BlockBase satisfy that part of the Block interface.
func (b *BlockBase) Base() *BlockBase { return b }

// Markdown is a run of prose between directive fences.
type Markdown struct {
	BlockBase
	Text Rich
}

// Callout is a highlighted aside. Type is one of info, warning, danger,
// tip, note or success.
type Callout struct {
	BlockBase
	Type  string
	Title string
	Text  Rich
}

// Summary is a short abstract of the surrounding content.
type Summary struct {
	BlockBase
	Text Rich
}

// Quote is a quotation with optional attribution and citation source.
type Quote struct {
	BlockBase
	Text Rich
	By   string
	Cite string
}

// Testimonial is an endorsement quote with author details.
type Testimonial struct {
	BlockBase
	Text    Rich
	Author  string
	Role    string
	Company string
}

// Decision records an architectural or product decision. Status is one of
// proposed, accepted, rejected or superseded.
type Decision struct {
	BlockBase
	Status   string
	Date     string
	Deciders string
	Text     Rich
}

// Code is a fenced code listing. Body is verbatim, never inline-parsed.
type Code struct {
	BlockBase
	Lang      string
	File      string
	Highlight string
	Body      string
}

// Data is a tabular data block. Format is table, csv or json; for json the
// body is kept in Raw and Headers/Rows stay empty.
type Data struct {
	BlockBase
	Format   string
	Sortable bool
	Cols     int
	Headers  []string
	Rows     [][]string
	Raw      string
}

// Tasks is a checklist.
type Tasks struct {
	BlockBase
	Items []TaskItem
}

// TaskItem is a single checklist entry.
type TaskItem struct {
	Text     string
	Done     bool
	Assignee string
}

// Metric is a labeled key figure. Value is Number when the source was
// numeric, String when it was not and the raw text was kept as fallback.
type Metric struct {
	BlockBase
	Label string
	Value AttrValue
	Unit  string
	Trend string
}

// Figure is an image with optional caption.
type Figure struct {
	BlockBase
	Src     string
	Alt     string
	Caption string
	Width   string
}

// Cta is a call-to-action link.
type Cta struct {
	BlockBase
	Label   string
	Href    string
	Primary bool
	Icon    string
}

// HeroImage is a full-width banner image.
type HeroImage struct {
	BlockBase
	Src string
	Alt string
}

// Embed references external content. Type is video, map, audio or generic
// and is inferred from Src when not declared.
type Embed struct {
	BlockBase
	Src    string
	Type   string
	Title  string
	Width  string
	Height string
}

// Logo is a brand image.
type Logo struct {
	BlockBase
	Src  string
	Alt  string
	Size int
}

// Divider is a horizontal rule with an optional centered label.
type Divider struct {
	BlockBase
	Label string
}

// Toc marks where a table of contents should render. Depth limits the
// heading levels included.
type Toc struct {
	BlockBase
	Depth int
}

// Style holds presentation properties as ordered key/value pairs.
type Style struct {
	BlockBase
	Props []StyleProp
}

// StyleProp is one style property.
type StyleProp struct {
	Key   string
	Value string
}

// Faq is a list of question/answer pairs.
type Faq struct {
	BlockBase
	Items []FaqItem
}

// FaqItem is one question with its answer.
type FaqItem struct {
	Question string
	Answer   Rich
}

// PricingTable is a plan comparison table. Highlight names the column to
// emphasize.
type PricingTable struct {
	BlockBase
	Highlight string
	Headers   []string
	Rows      [][]string
}

// Nav is a navigation link list.
type Nav struct {
	BlockBase
	Logo  string
	Items []NavItem
}

// NavItem is one navigation link.
type NavItem struct {
	Label string
	Href  string
	Icon  string
}

// Form is an input form description.
type Form struct {
	BlockBase
	Submit string
	Fields []FormField
}

// FormField is one form input. Options is populated for select fields.
type FormField struct {
	Label       string
	Type        string
	Placeholder string
	Required    bool
	Options     []string
}

// Gallery is an image grid. Columns is 0 when the layout should be
// derived from the item count.
type Gallery struct {
	BlockBase
	Columns int
	Items   []GalleryItem
}

// GalleryItem is one gallery image.
type GalleryItem struct {
	Src      string
	Alt      string
	Caption  string
	Category string
}

// Footer is a page footer with link sections, social links and a
// copyright line.
type Footer struct {
	BlockBase
	Sections  []FooterSection
	Social    []SocialLink
	Copyright string
}

// FooterSection is one titled group of footer links.
type FooterSection struct {
	Heading string
	Links   []NavItem
}

// SocialLink is one social platform reference.
type SocialLink struct {
	Platform string
	Href     string
}

// Hero is a page-top banner with headline, subtitle and action buttons.
type Hero struct {
	BlockBase
	Badge    string
	Align    string
	Image    string
	Headline string
	Subtitle string
	Buttons  []HeroButton
}

// HeroButton is one hero action link.
type HeroButton struct {
	Label   string
	Href    string
	Primary bool
}

// Features is a grid of feature cards.
type Features struct {
	BlockBase
	Cols  int
	Cards []FeatureCard
}

// FeatureCard is one feature description.
type FeatureCard struct {
	Title     string
	Icon      string
	Body      Rich
	LinkLabel string
	LinkHref  string
}

// Steps is an ordered sequence of instructions.
type Steps struct {
	BlockBase
	Items []StepItem
}

// StepItem is one step with an optional time estimate.
type StepItem struct {
	Title string
	Time  string
	Body  Rich
}

// Stats is a row of key statistics.
type Stats struct {
	BlockBase
	Items []StatItem
}

// StatItem is one statistic.
type StatItem struct {
	Value string
	Label string
	Color string
}

// Comparison is a feature comparison table.
type Comparison struct {
	BlockBase
	Highlight string
	Headers   []string
	Rows      [][]string
}

// BeforeAfter contrasts two states of the same thing.
type BeforeAfter struct {
	BlockBase
	Transition string
	Before     []ChangeItem
	After      []ChangeItem
}

// ChangeItem is one before/after entry.
type ChangeItem struct {
	Label  string
	Detail string
}

// Pipeline is a linear sequence of stages.
type Pipeline struct {
	BlockBase
	Steps []PipelineStep
}

// PipelineStep is one pipeline stage.
type PipelineStep struct {
	Label       string
	Description string
}

// ProductCard is a product summary card.
type ProductCard struct {
	BlockBase
	Badge      string
	BadgeColor string
	Title      string
	Subtitle   string
	Body       Rich
	Features   []string
	CtaLabel   string
	CtaHref    string
}

// Tabs is a tabbed container. Each panel owns its own child blocks.
type Tabs struct {
	BlockBase
	Panels []TabPanel
}

// TabPanel is one tab with its nested content.
type TabPanel struct {
	Label    string
	Children []Block
}

// Columns lays child content out side by side.
type Columns struct {
	BlockBase
	Gap  string
	Cols []Column
}

// Column is one column of nested blocks.
type Column struct {
	Children []Block
}

// Details is collapsible content.
type Details struct {
	BlockBase
	Title    string
	Open     bool
	Children []Block
}

// Section groups blocks under an optional headline.
type Section struct {
	BlockBase
	Headline string
	Subtitle string
	Bg       string
	Children []Block
}

// Site is the top-level container of a multi-page document. Children
// holds Page blocks plus at most one Nav and one Footer, in author order;
// anything else is reported as a diagnostic but kept in place.
type Site struct {
	BlockBase
	Domain   string
	Name     string
	Tagline  string
	Theme    string
	Accent   string
	Font     string
	Children []Block
}

// Pages returns the site's Page children in order.
func (s *Site) Pages() []*Page {
	var out []*Page
	for _, c := range s.Children {
		if p, ok := c.(*Page); ok {
			out = append(out, p)
		}
	}
	return out
}

// SiteNav returns the site's Nav child, or nil.
func (s *Site) SiteNav() *Nav {
	for _, c := range s.Children {
		if n, ok := c.(*Nav); ok {
			return n
		}
	}
	return nil
}

// SiteFooter returns the site's Footer child, or nil.
func (s *Site) SiteFooter() *Footer {
	for _, c := range s.Children {
		if f, ok := c.(*Footer); ok {
			return f
		}
	}
	return nil
}

// Page is one routed page of a Site.
type Page struct {
	BlockBase
	Route    string
	Title    string
	Layout   string
	Sidebar  bool
	Children []Block
}

// Unknown is an unrecognized directive, preserved verbatim so that
// serialization reproduces the author's text exactly.
type Unknown struct {
	BlockBase
	Name     string
	RawAttrs string
	Body     string
}

func (*Markdown) Kind() Kind     { return KindMarkdown }
func (*Callout) Kind() Kind      { return KindCallout }
func (*Summary) Kind() Kind      { return KindSummary }
func (*Quote) Kind() Kind        { return KindQuote }
func (*Testimonial) Kind() Kind  { return KindTestimonial }
func (*Decision) Kind() Kind     { return KindDecision }
func (*Code) Kind() Kind         { return KindCode }
func (*Data) Kind() Kind         { return KindData }
func (*Tasks) Kind() Kind        { return KindTasks }
func (*Metric) Kind() Kind       { return KindMetric }
func (*Figure) Kind() Kind       { return KindFigure }
func (*Cta) Kind() Kind          { return KindCta }
func (*HeroImage) Kind() Kind    { return KindHeroImage }
func (*Embed) Kind() Kind        { return KindEmbed }
func (*Logo) Kind() Kind         { return KindLogo }
func (*Divider) Kind() Kind      { return KindDivider }
func (*Toc) Kind() Kind          { return KindToc }
func (*Style) Kind() Kind        { return KindStyle }
func (*Faq) Kind() Kind          { return KindFaq }
func (*PricingTable) Kind() Kind { return KindPricingTable }
func (*Nav) Kind() Kind          { return KindNav }
func (*Form) Kind() Kind         { return KindForm }
func (*Gallery) Kind() Kind      { return KindGallery }
func (*Footer) Kind() Kind       { return KindFooter }
func (*Hero) Kind() Kind         { return KindHero }
func (*Features) Kind() Kind     { return KindFeatures }
func (*Steps) Kind() Kind        { return KindSteps }
func (*Stats) Kind() Kind        { return KindStats }
func (*Comparison) Kind() Kind   { return KindComparison }
func (*BeforeAfter) Kind() Kind  { return KindBeforeAfter }
func (*Pipeline) Kind() Kind     { return KindPipeline }
func (*ProductCard) Kind() Kind  { return KindProductCard }
func (*Tabs) Kind() Kind         { return KindTabs }
func (*Columns) Kind() Kind      { return KindColumns }
func (*Details) Kind() Kind      { return KindDetails }
func (*Section) Kind() Kind      { return KindSection }
func (*Site) Kind() Kind         { return KindSite }
func (*Page) Kind() Kind         { return KindPage }
func (*Unknown) Kind() Kind      { return KindUnknown }

func (*Markdown) block()     {}
func (*Callout) block()      {}
func (*Summary) block()      {}
func (*Quote) block()        {}
func (*Testimonial) block()  {}
func (*Decision) block()     {}
func (*Code) block()         {}
func (*Data) block()         {}
func (*Tasks) block()        {}
func (*Metric) block()       {}
func (*Figure) block()       {}
func (*Cta) block()          {}
func (*HeroImage) block()    {}
func (*Embed) block()        {}
func (*Logo) block()         {}
func (*Divider) block()      {}
func (*Toc) block()          {}
func (*Style) block()        {}
func (*Faq) block()          {}
func (*PricingTable) block() {}
func (*Nav) block()          {}
func (*Form) block()         {}
func (*Gallery) block()      {}
func (*Footer) block()       {}
func (*Hero) block()         {}
func (*Features) block()     {}
func (*Steps) block()        {}
func (*Stats) block()        {}
func (*Comparison) block()   {}
func (*BeforeAfter) block()  {}
func (*Pipeline) block()     {}
func (*ProductCard) block()  {}
func (*Tabs) block()         {}
func (*Columns) block()      {}
func (*Details) block()      {}
func (*Section) block()      {}
func (*Site) block()         {}
func (*Page) block()         {}
func (*Unknown) block()      {}
