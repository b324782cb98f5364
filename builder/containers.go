package builder

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-surfdoc/ast"
)

// Site opens a site container scope. The closure sets site properties
// and adds chrome and pages; pages can only be created through it, which
// keeps them inside a site.
func (b *Builder) Site(fn func(*SiteBuilder)) *Builder {
	if b.err != nil {
		return b
	}
	site := &ast.Site{BlockBase: base()}
	sb := &SiteBuilder{site: site}
	if fn != nil {
		fn(sb)
	}
	if sb.err != nil {
		return b.fail("site", sb.err)
	}
	if len(site.Children) == 0 {
		return b.fail("site", ErrEmptySite)
	}
	return b.push(site)
}

// SiteBuilder scopes construction of one site block.
type SiteBuilder struct {
	site   *ast.Site
	routes map[string]bool
	err    error
}

// Domain sets the site domain.
func (s *SiteBuilder) Domain(v string) *SiteBuilder {
	s.site.Domain = v
	return s
}

// Name sets the site name.
func (s *SiteBuilder) Name(v string) *SiteBuilder {
	s.site.Name = v
	return s
}

// Tagline sets the site tagline.
func (s *SiteBuilder) Tagline(v string) *SiteBuilder {
	s.site.Tagline = v
	return s
}

// Theme sets the site theme.
func (s *SiteBuilder) Theme(v string) *SiteBuilder {
	s.site.Theme = v
	return s
}

// Accent sets the site accent color.
func (s *SiteBuilder) Accent(v string) *SiteBuilder {
	s.site.Accent = v
	return s
}

// Font sets the site font.
func (s *SiteBuilder) Font(v string) *SiteBuilder {
	s.site.Font = v
	return s
}

// Nav adds the site navigation. A site carries at most one.
func (s *SiteBuilder) Nav(items []ast.NavItem, logo string) *SiteBuilder {
	if s.err != nil {
		return s
	}
	if s.site.SiteNav() != nil {
		s.err = ErrSecondNav
		return s
	}
	nav, err := navBlock(items, logo)
	if err != nil {
		s.err = fmt.Errorf("nav: %w", err)
		return s
	}
	s.site.Children = append(s.site.Children, nav)
	return s
}

// Footer adds the site footer. A site carries at most one.
func (s *SiteBuilder) Footer(sections []ast.FooterSection, social []ast.SocialLink, copyright string) *SiteBuilder {
	if s.err != nil {
		return s
	}
	if s.site.SiteFooter() != nil {
		s.err = ErrSecondFooter
		return s
	}
	footer, err := footerBlock(sections, social, copyright)
	if err != nil {
		s.err = fmt.Errorf("footer: %w", err)
		return s
	}
	s.site.Children = append(s.site.Children, footer)
	return s
}

// Page adds a page under the given route. The closure fills the page
// with a nested builder. Routes must be unique within the site.
func (s *SiteBuilder) Page(route, title string, fn func(*Builder)) *SiteBuilder {
	if s.err != nil {
		return s
	}
	if err := validation.Validate(route, validation.Required); err != nil {
		s.err = fmt.Errorf("page route: %w", err)
		return s
	}
	if s.routes[route] {
		s.err = fmt.Errorf("page %q: %w", route, ErrDuplicateRoute)
		return s
	}
	sub := New()
	if fn != nil {
		fn(sub)
	}
	if sub.err != nil {
		s.err = fmt.Errorf("page %q: %w", route, sub.err)
		return s
	}
	if len(sub.blocks) == 0 {
		s.err = fmt.Errorf("page %q: %w", route, ErrEmptyPage)
		return s
	}
	if s.routes == nil {
		s.routes = make(map[string]bool)
	}
	s.routes[route] = true
	s.site.Children = append(s.site.Children, &ast.Page{
		BlockBase: base(),
		Route:     route,
		Title:     title,
		Children:  sub.blocks,
	})
	return s
}

// Columns opens a column layout scope. Each Column call on the closure's
// builder adds one column.
func (b *Builder) Columns(fn func(*ColumnsBuilder)) *Builder {
	if b.err != nil {
		return b
	}
	cb := &ColumnsBuilder{}
	if fn != nil {
		fn(cb)
	}
	if cb.err != nil {
		return b.fail("columns", cb.err)
	}
	if len(cb.cols) == 0 {
		return b.fail("columns", ErrEmptyColumns)
	}
	return b.push(&ast.Columns{BlockBase: base(), Gap: cb.gap, Cols: cb.cols})
}

// ColumnsBuilder scopes construction of one columns block.
type ColumnsBuilder struct {
	gap  string
	cols []ast.Column
	err  error
}

// Gap sets the inter-column gap.
func (c *ColumnsBuilder) Gap(gap string) *ColumnsBuilder {
	c.gap = gap
	return c
}

// Column adds one column filled by a nested builder.
func (c *ColumnsBuilder) Column(fn func(*Builder)) *ColumnsBuilder {
	if c.err != nil {
		return c
	}
	sub := New()
	if fn != nil {
		fn(sub)
	}
	if sub.err != nil {
		c.err = sub.err
		return c
	}
	if len(sub.blocks) == 0 {
		c.err = ErrEmptyColumn
		return c
	}
	c.cols = append(c.cols, ast.Column{Children: sub.blocks})
	return c
}

// Tabs opens a tab group scope. Each Tab call on the closure's builder
// adds one panel.
func (b *Builder) Tabs(fn func(*TabsBuilder)) *Builder {
	if b.err != nil {
		return b
	}
	tb := &TabsBuilder{}
	if fn != nil {
		fn(tb)
	}
	if tb.err != nil {
		return b.fail("tabs", tb.err)
	}
	if len(tb.panels) == 0 {
		return b.fail("tabs", ErrEmptyTabs)
	}
	return b.push(&ast.Tabs{BlockBase: base(), Panels: tb.panels})
}

// TabsBuilder scopes construction of one tabs block.
type TabsBuilder struct {
	panels []ast.TabPanel
	err    error
}

// Tab adds one labeled panel filled by a nested builder. The panel may
// be empty; the label may not.
func (t *TabsBuilder) Tab(label string, fn func(*Builder)) *TabsBuilder {
	if t.err != nil {
		return t
	}
	if err := validation.Validate(label, validation.Required); err != nil {
		t.err = fmt.Errorf("tab label: %w", err)
		return t
	}
	sub := New()
	if fn != nil {
		fn(sub)
	}
	if sub.err != nil {
		t.err = fmt.Errorf("tab %q: %w", label, sub.err)
		return t
	}
	t.panels = append(t.panels, ast.TabPanel{Label: label, Children: sub.blocks})
	return t
}

// Details appends collapsible content filled by a nested builder. title
// may be empty.
func (b *Builder) Details(title string, fn func(*Builder)) *Builder {
	if b.err != nil {
		return b
	}
	sub := New()
	if fn != nil {
		fn(sub)
	}
	if sub.err != nil {
		return b.fail("details", sub.err)
	}
	if len(sub.blocks) == 0 {
		return b.fail("details", ErrEmptyDetails)
	}
	return b.push(&ast.Details{BlockBase: base(), Title: title, Children: sub.blocks})
}

// Section appends a themed page region filled by a nested builder.
// headline may be empty.
func (b *Builder) Section(headline string, fn func(*Builder)) *Builder {
	if b.err != nil {
		return b
	}
	sub := New()
	if fn != nil {
		fn(sub)
	}
	if sub.err != nil {
		return b.fail("section", sub.err)
	}
	if len(sub.blocks) == 0 {
		return b.fail("section", ErrEmptySection)
	}
	return b.push(&ast.Section{BlockBase: base(), Headline: headline, Children: sub.blocks})
}
