// Package schema is the static table of SurfDoc directive descriptors:
// which attributes each directive accepts, their types and defaults, what
// body shape it expects, and where it may nest. The table is fixed at
// compile time; there is no runtime registration.
package schema

import (
	"sort"

	"github.com/goliatone/go-surfdoc/ast"
)

// AttrType classifies an attribute's expected value.
type AttrType int

const (
	TypeString AttrType = iota
	TypeNumber
	TypeBool
	TypeList
	TypeEnum
)

func (t AttrType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeList:
		return "list"
	case TypeEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// AttrSpec describes one attribute a directive accepts.
type AttrSpec struct {
	Name     string
	Type     AttrType
	Required bool
	// Default is substituted when the attribute is absent (or required
	// and missing). Its dynamic type matches Type: string, float64 or
	// bool. Enums default via a string member.
	Default any
	// Enum lists the allowed values when Type is TypeEnum.
	Enum []string
	// Aliases are alternate author-facing names normalized to Name.
	Aliases []string
	// Min constrains numeric values; values below it are clamped.
	Min float64
}

// Allows reports whether v is a member of the enum set.
func (a AttrSpec) Allows(v string) bool {
	for _, e := range a.Enum {
		if e == v {
			return true
		}
	}
	return false
}

// BodyShape describes what a directive's fenced body contains.
type BodyShape int

const (
	// BodyNone means the directive carries data in attributes only.
	BodyNone BodyShape = iota
	// BodyInlineText means prose run through the inline engine.
	BodyInlineText
	// BodyRawText means verbatim text, never parsed.
	BodyRawText
	// BodyRows means a line-oriented row grammar.
	BodyRows
	// BodyChildren means nested blocks, recursively assembled.
	BodyChildren
)

// Descriptor is the schema entry for one directive.
type Descriptor struct {
	Name string
	Kind ast.Kind
	// Attrs in canonical serialization order. The universal id attribute
	// is implicit and not listed.
	Attrs []AttrSpec
	Body  BodyShape
	// AllowedParents restricts nesting: nil allows any parent, an empty
	// slice allows only the document top level, otherwise the listed
	// directive names (with "" standing for top level).
	AllowedParents []string
}

// Attr resolves an attribute name (or alias) to its spec.
func (d Descriptor) Attr(name string) (AttrSpec, bool) {
	if name == "id" {
		return idSpec, true
	}
	for _, a := range d.Attrs {
		if a.Name == name {
			return a, true
		}
		for _, al := range a.Aliases {
			if al == name {
				return a, true
			}
		}
	}
	return AttrSpec{}, false
}

// idSpec is the universal optional identifier every directive accepts.
var idSpec = AttrSpec{Name: "id", Type: TypeString}

var table = map[string]Descriptor{
	"callout": {
		Name: "callout", Kind: ast.KindCallout, Body: BodyInlineText,
		Attrs: []AttrSpec{
			{Name: "type", Type: TypeEnum, Default: "info",
				Enum: []string{"info", "warning", "danger", "tip", "note", "success"}},
			{Name: "title", Type: TypeString},
		},
	},
	"summary": {
		Name: "summary", Kind: ast.KindSummary, Body: BodyInlineText,
	},
	"quote": {
		Name: "quote", Kind: ast.KindQuote, Body: BodyInlineText,
		Attrs: []AttrSpec{
			{Name: "by", Type: TypeString, Aliases: []string{"attribution", "author"}},
			{Name: "cite", Type: TypeString},
		},
	},
	"testimonial": {
		Name: "testimonial", Kind: ast.KindTestimonial, Body: BodyInlineText,
		Attrs: []AttrSpec{
			{Name: "author", Type: TypeString, Aliases: []string{"name"}},
			{Name: "role", Type: TypeString, Aliases: []string{"title"}},
			{Name: "company", Type: TypeString, Aliases: []string{"org"}},
		},
	},
	"decision": {
		Name: "decision", Kind: ast.KindDecision, Body: BodyInlineText,
		Attrs: []AttrSpec{
			{Name: "status", Type: TypeEnum, Default: "proposed",
				Enum: []string{"proposed", "accepted", "rejected", "superseded"}},
			{Name: "date", Type: TypeString},
			{Name: "deciders", Type: TypeString},
		},
	},
	"code": {
		Name: "code", Kind: ast.KindCode, Body: BodyRawText,
		Attrs: []AttrSpec{
			{Name: "lang", Type: TypeString},
			{Name: "file", Type: TypeString},
			{Name: "highlight", Type: TypeString},
		},
	},
	"data": {
		Name: "data", Kind: ast.KindData, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "format", Type: TypeEnum, Default: "table",
				Enum: []string{"table", "csv", "json"}},
			{Name: "sortable", Type: TypeBool, Default: false},
			{Name: "cols", Type: TypeNumber, Min: 1},
		},
	},
	"tasks": {
		Name: "tasks", Kind: ast.KindTasks, Body: BodyRows,
	},
	"metric": {
		Name: "metric", Kind: ast.KindMetric, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "label", Type: TypeString},
			{Name: "value", Type: TypeNumber, Required: true},
			{Name: "unit", Type: TypeString},
			{Name: "trend", Type: TypeEnum, Enum: []string{"up", "down", "flat"}},
		},
	},
	"figure": {
		Name: "figure", Kind: ast.KindFigure, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "src", Type: TypeString, Required: true},
			{Name: "alt", Type: TypeString},
			{Name: "caption", Type: TypeString},
			{Name: "width", Type: TypeString},
		},
	},
	"cta": {
		Name: "cta", Kind: ast.KindCta, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "label", Type: TypeString, Required: true},
			{Name: "href", Type: TypeString, Required: true},
			{Name: "primary", Type: TypeBool, Default: false},
			{Name: "icon", Type: TypeString},
		},
	},
	"hero-image": {
		Name: "hero-image", Kind: ast.KindHeroImage, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "src", Type: TypeString, Required: true},
			{Name: "alt", Type: TypeString},
		},
	},
	"embed": {
		Name: "embed", Kind: ast.KindEmbed, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "src", Type: TypeString, Required: true},
			{Name: "type", Type: TypeEnum,
				Enum: []string{"video", "map", "audio", "generic"}},
			{Name: "title", Type: TypeString},
			{Name: "width", Type: TypeString},
			{Name: "height", Type: TypeString},
		},
	},
	"logo": {
		Name: "logo", Kind: ast.KindLogo, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "src", Type: TypeString, Required: true},
			{Name: "alt", Type: TypeString},
			{Name: "size", Type: TypeNumber, Min: 1},
		},
	},
	"divider": {
		Name: "divider", Kind: ast.KindDivider, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "label", Type: TypeString},
		},
	},
	"toc": {
		Name: "toc", Kind: ast.KindToc, Body: BodyNone,
		Attrs: []AttrSpec{
			{Name: "depth", Type: TypeNumber, Default: float64(3), Min: 1},
		},
	},
	"style": {
		Name: "style", Kind: ast.KindStyle, Body: BodyRows,
	},
	"faq": {
		Name: "faq", Kind: ast.KindFaq, Body: BodyRows,
	},
	"pricing-table": {
		Name: "pricing-table", Kind: ast.KindPricingTable, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "highlight", Type: TypeString},
		},
	},
	"nav": {
		Name: "nav", Kind: ast.KindNav, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "logo", Type: TypeString},
		},
	},
	"form": {
		Name: "form", Kind: ast.KindForm, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "submit", Type: TypeString},
		},
	},
	"gallery": {
		Name: "gallery", Kind: ast.KindGallery, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "columns", Type: TypeNumber, Min: 1},
		},
	},
	"footer": {
		Name: "footer", Kind: ast.KindFooter, Body: BodyRows,
	},
	"hero": {
		Name: "hero", Kind: ast.KindHero, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "badge", Type: TypeString},
			{Name: "align", Type: TypeEnum, Default: "center",
				Enum: []string{"left", "center", "right"}},
			{Name: "image", Type: TypeString},
		},
	},
	"features": {
		Name: "features", Kind: ast.KindFeatures, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "cols", Type: TypeNumber, Min: 1},
		},
	},
	"steps": {
		Name: "steps", Kind: ast.KindSteps, Body: BodyRows,
	},
	"stats": {
		Name: "stats", Kind: ast.KindStats, Body: BodyRows,
	},
	"comparison": {
		Name: "comparison", Kind: ast.KindComparison, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "highlight", Type: TypeString},
		},
	},
	"before-after": {
		Name: "before-after", Kind: ast.KindBeforeAfter, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "transition", Type: TypeString},
		},
	},
	"pipeline": {
		Name: "pipeline", Kind: ast.KindPipeline, Body: BodyRows,
	},
	"product-card": {
		Name: "product-card", Kind: ast.KindProductCard, Body: BodyRows,
		Attrs: []AttrSpec{
			{Name: "badge", Type: TypeString},
			{Name: "badge-color", Type: TypeString},
		},
	},
	"tabs": {
		Name: "tabs", Kind: ast.KindTabs, Body: BodyRows,
	},
	"columns": {
		Name: "columns", Kind: ast.KindColumns, Body: BodyChildren,
		Attrs: []AttrSpec{
			{Name: "gap", Type: TypeString},
		},
	},
	"details": {
		Name: "details", Kind: ast.KindDetails, Body: BodyChildren,
		Attrs: []AttrSpec{
			{Name: "title", Type: TypeString},
			{Name: "open", Type: TypeBool, Default: false},
		},
	},
	"section": {
		Name: "section", Kind: ast.KindSection, Body: BodyChildren,
		Attrs: []AttrSpec{
			{Name: "headline", Type: TypeString},
			{Name: "subtitle", Type: TypeString},
			{Name: "bg", Type: TypeString},
		},
	},
	"site": {
		Name: "site", Kind: ast.KindSite, Body: BodyChildren,
		Attrs: []AttrSpec{
			{Name: "domain", Type: TypeString},
			{Name: "name", Type: TypeString},
			{Name: "tagline", Type: TypeString},
			{Name: "theme", Type: TypeString},
			{Name: "accent", Type: TypeString},
			{Name: "font", Type: TypeString},
		},
		AllowedParents: []string{},
	},
	"page": {
		Name: "page", Kind: ast.KindPage, Body: BodyChildren,
		Attrs: []AttrSpec{
			{Name: "route", Type: TypeString},
			{Name: "title", Type: TypeString},
			{Name: "layout", Type: TypeString},
			{Name: "sidebar", Type: TypeBool, Default: false},
		},
		AllowedParents: []string{"site", ""},
	},
}

// Lookup returns the descriptor for a directive name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := table[name]
	return d, ok
}

// Names returns every directive name in the table, sorted.
func Names() []string {
	out := make([]string, 0, len(table))
	for n := range table {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ByKind returns the descriptor for a block kind. Markdown and Unknown
// have no descriptor.
func ByKind(k ast.Kind) (Descriptor, bool) {
	d, ok := byKind[k]
	return d, ok
}

var byKind = func() map[ast.Kind]Descriptor {
	m := make(map[ast.Kind]Descriptor, len(table))
	for _, d := range table {
		m[d.Kind] = d
	}
	return m
}()

// AllowedIn reports whether the directive may appear under the given
// parent directive name ("" means the document top level).
func (d Descriptor) AllowedIn(parent string) bool {
	if d.AllowedParents == nil {
		return true
	}
	if len(d.AllowedParents) == 0 {
		return parent == ""
	}
	for _, p := range d.AllowedParents {
		if p == parent {
			return true
		}
	}
	return false
}
