package serialize

import (
	"testing"

	"github.com/goliatone/go-surfdoc/ast"
)

func TestBlockMarkdown(t *testing.T) {
	got := Block(&ast.Markdown{Text: ast.Rich{Raw: "# Hello\n\nSome *prose*."}})
	want := "# Hello\n\nSome *prose*."
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockCalloutDefaults(t *testing.T) {
	b := &ast.Callout{Type: "info", Text: ast.Rich{Raw: "Heads up."}}
	got := Block(b)
	want := "::callout\nHeads up.\n::"
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockCalloutAttrs(t *testing.T) {
	b := &ast.Callout{
		BlockBase: ast.BlockBase{ID: "warn-1"},
		Type:      "warning",
		Title:     "Mind the gap",
		Text:      ast.Rich{Raw: "Stand back."},
	}
	got := Block(b)
	want := `::callout[id=warn-1, type=warning, title="Mind the gap"]
Stand back.
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockUnknownVerbatim(t *testing.T) {
	b := &ast.Unknown{Name: "widget", RawAttrs: "foo=1, bar", Body: "some *content*"}
	got := Block(b)
	want := "::widget[foo=1, bar]\nsome *content*\n::"
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}

	bare := &ast.Unknown{Name: "mystery"}
	if got := Block(bare); got != "::mystery\n::" {
		t.Fatalf("Block() = %q, want %q", got, "::mystery\n::")
	}
}

func TestBlockSimpleDirectives(t *testing.T) {
	tests := []struct {
		name  string
		block ast.Block
		want  string
	}{
		{
			"summary",
			&ast.Summary{Text: ast.Rich{Raw: "One line."}},
			"::summary\nOne line.\n::",
		},
		{
			"quote",
			&ast.Quote{By: "Hopper", Cite: "1987 interview", Text: ast.Rich{Raw: "Ships are safe in harbor."}},
			"::quote[by=Hopper, cite=\"1987 interview\"]\nShips are safe in harbor.\n::",
		},
		{
			"decision default status",
			&ast.Decision{Status: "proposed", Text: ast.Rich{Raw: "Use queues."}},
			"::decision\nUse queues.\n::",
		},
		{
			"decision full",
			&ast.Decision{Status: "accepted", Date: "2026-03-01", Deciders: "core team", Text: ast.Rich{Raw: "Use queues."}},
			"::decision[status=accepted, date=2026-03-01, deciders=\"core team\"]\nUse queues.\n::",
		},
		{
			"code",
			&ast.Code{Lang: "sql", File: "q.sql", Body: "SELECT 1;"},
			"::code[lang=sql, file=q.sql]\nSELECT 1;\n::",
		},
		{
			"toc default depth",
			&ast.Toc{Depth: 3},
			"::toc\n::",
		},
		{
			"toc explicit depth",
			&ast.Toc{Depth: 2},
			"::toc[depth=2]\n::",
		},
		{
			"embed",
			&ast.Embed{Src: "https://vid.example/x", Type: "video", Title: "Demo"},
			"::embed[src=https://vid.example/x, type=video, title=Demo]\n::",
		},
		{
			"divider with label",
			&ast.Divider{Label: "Part Two"},
			"::divider[label=\"Part Two\"]\n::",
		},
		{
			"divider empty",
			&ast.Divider{},
			"::divider\n::",
		},
		{
			"cta",
			&ast.Cta{Label: "Get started", Href: "/signup", Primary: true},
			"::cta[label=\"Get started\", href=/signup, primary]\n::",
		},
		{
			"logo",
			&ast.Logo{Src: "l.svg", Size: 48},
			"::logo[src=l.svg, size=48]\n::",
		},
		{
			"hero-image",
			&ast.HeroImage{Src: "hero.png", Alt: "Team at work"},
			"::hero-image[src=hero.png, alt=\"Team at work\"]\n::",
		},
		{
			"figure",
			&ast.Figure{Src: "chart.png", Caption: "Q3 results", Width: "50%"},
			"::figure[src=chart.png, caption=\"Q3 results\", width=50%]\n::",
		},
		{
			"testimonial",
			&ast.Testimonial{Author: "Ada L", Role: "CTO", Company: "Acme", Text: ast.Rich{Raw: "It works."}},
			"::testimonial[author=\"Ada L\", role=CTO, company=Acme]\nIt works.\n::",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Block(tc.block); got != tc.want {
				t.Fatalf("Block() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBlockDataTable(t *testing.T) {
	b := &ast.Data{
		Format:  "table",
		Cols:    2,
		Headers: []string{"Name", "Role"},
		Rows:    [][]string{{"Ada", "Engineer"}, {"Lin", "Designer"}},
	}
	got := Block(b)
	want := `::data[cols=2]
| Name | Role |
| --- | --- |
| Ada | Engineer |
| Lin | Designer |
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockDataCSV(t *testing.T) {
	b := &ast.Data{
		Format:  "csv",
		Headers: []string{"name", "qty"},
		Rows:    [][]string{{"bolt", "12"}, {"nut, large", "3"}},
	}
	got := Block(b)
	want := "::data[format=csv]\nname,qty\nbolt,12\n\"nut, large\",3\n::"
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockDataJSONVerbatim(t *testing.T) {
	b := &ast.Data{Format: "json", Raw: `{"k": [1, 2]}`}
	got := Block(b)
	want := "::data[format=json]\n{\"k\": [1, 2]}\n::"
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockMetricValueKinds(t *testing.T) {
	num := &ast.Metric{Label: "Uptime", Value: ast.Number(99.95), Unit: "%"}
	if got, want := Block(num), "::metric[label=Uptime, value=99.95, unit=%]\n::"; got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}

	// Non-numeric fallback values stay bare when reparsing keeps them as
	// strings.
	text := &ast.Metric{Label: "Build", Value: ast.String("30s")}
	if got, want := Block(text), "::metric[label=Build, value=30s]\n::"; got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}

	// A string that looks numeric must be quoted to keep its type.
	strNum := &ast.Metric{Label: "Code", Value: ast.String("42")}
	if got, want := Block(strNum), "::metric[label=Code, value=\"42\"]\n::"; got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockTasks(t *testing.T) {
	b := &ast.Tasks{Items: []ast.TaskItem{
		{Text: "Ship it", Done: true, Assignee: "ada"},
		{Text: "Write docs"},
	}}
	got := Block(b)
	want := "::tasks\n- [x] Ship it @ada\n- [ ] Write docs\n::"
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockStyleAndFaq(t *testing.T) {
	style := &ast.Style{Props: []ast.StyleProp{
		{Key: "accent", Value: "#ff6600"},
		{Key: "font", Value: "Inter"},
	}}
	if got, want := Block(style), "::style\naccent: #ff6600\nfont: Inter\n::"; got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}

	faq := &ast.Faq{Items: []ast.FaqItem{
		{Question: "How fast?", Answer: ast.Rich{Raw: "Very."}},
		{Question: "Why?"},
	}}
	want := `::faq
### How fast?

Very.

### Why?
::`
	if got := Block(faq); got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockNav(t *testing.T) {
	b := &ast.Nav{
		Logo: "logo.svg",
		Items: []ast.NavItem{
			{Label: "Home", Href: "/"},
			{Label: "Docs", Href: "/docs", Icon: "book"},
		},
	}
	got := Block(b)
	want := `::nav[logo=logo.svg]
- [Home](/)
- [Docs](/docs) {icon=book}
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockFooterGroups(t *testing.T) {
	b := &ast.Footer{
		Sections: []ast.FooterSection{
			{Heading: "Product", Links: []ast.NavItem{{Label: "Pricing", Href: "/pricing"}}},
			{Links: []ast.NavItem{{Label: "Plain note"}}},
		},
		Social:    []ast.SocialLink{{Platform: "github", Href: "https://github.com/acme"}},
		Copyright: "© 2026 Acme",
	}
	got := Block(b)
	want := `::footer
## Product
- [Pricing](/pricing)

- Plain note

@github https://github.com/acme

© 2026 Acme
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockForm(t *testing.T) {
	b := &ast.Form{
		Submit: "Send",
		Fields: []ast.FormField{
			{Label: "Name", Required: true},
			{Label: "Email", Type: "email", Placeholder: "you@example.com"},
			{Label: "Topic", Type: "select", Options: []string{"Sales", "Support"}},
			{Label: "Message", Type: "textarea"},
		},
	}
	got := Block(b)
	want := `::form[submit=Send]
- Name *
- Email (email, "you@example.com")
- Topic (select: Sales | Support)
- Message (textarea)
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockGalleryCaptions(t *testing.T) {
	b := &ast.Gallery{Items: []ast.GalleryItem{
		{Src: "a.jpg", Alt: "A", Category: "Travel", Caption: "Beach"},
		{Src: "b.jpg", Caption: "Time: 5pm"},
		{Src: "c.jpg", Caption: "Sunset"},
		{Src: "d.jpg"},
	}}
	got := Block(b)
	want := `::gallery
![A](a.jpg) Travel: Beach
![](b.jpg) : Time: 5pm
![](c.jpg) Sunset
![](d.jpg)
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockHero(t *testing.T) {
	b := &ast.Hero{
		Badge:    "New",
		Align:    "left",
		Headline: "Build faster",
		Subtitle: "Ship today.",
		Buttons: []ast.HeroButton{
			{Label: "Start", Href: "/start", Primary: true},
			{Label: "Learn", Href: "/learn"},
		},
	}
	got := Block(b)
	want := `::hero[badge=New, align=left]
# Build faster
Ship today.
[Start](/start) {primary}
[Learn](/learn)
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockStats(t *testing.T) {
	b := &ast.Stats{Items: []ast.StatItem{
		{Value: "120+", Label: "Customers"},
		{Value: "99.9%", Label: "Uptime", Color: "green"},
	}}
	got := Block(b)
	want := "::stats\n- 120+ {label=\"Customers\"}\n- 99.9% {label=\"Uptime\" color=\"green\"}\n::"
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockStepsAndFeatures(t *testing.T) {
	steps := &ast.Steps{Items: []ast.StepItem{
		{Title: "Install", Time: "5 min", Body: ast.Rich{Raw: "Run the installer."}},
		{Title: "Done"},
	}}
	wantSteps := `::steps
### Install {time="5 min"}

Run the installer.

### Done
::`
	if got := Block(steps); got != wantSteps {
		t.Fatalf("Block() = %q, want %q", got, wantSteps)
	}

	features := &ast.Features{
		Cols: 3,
		Cards: []ast.FeatureCard{
			{Title: "Fast", Icon: "zap", Body: ast.Rich{Raw: "Sub-second renders."}, LinkLabel: "More", LinkHref: "/fast"},
			{Title: "Simple"},
		},
	}
	wantFeatures := `::features[cols=3]
### Fast {icon="zap"}

Sub-second renders.

[More](/fast)

### Simple
::`
	if got := Block(features); got != wantFeatures {
		t.Fatalf("Block() = %q, want %q", got, wantFeatures)
	}
}

func TestBlockBeforeAfterAndPipeline(t *testing.T) {
	ba := &ast.BeforeAfter{
		Transition: "fade",
		Before:     []ast.ChangeItem{{Label: "Deploy", Detail: "manual"}},
		After:      []ast.ChangeItem{{Label: "Deploy", Detail: "one click"}},
	}
	wantBA := `::before-after[transition=fade]
### Before
- Deploy | manual

### After
- Deploy | one click
::`
	if got := Block(ba); got != wantBA {
		t.Fatalf("Block() = %q, want %q", got, wantBA)
	}

	pl := &ast.Pipeline{Steps: []ast.PipelineStep{
		{Label: "Lint"},
		{Label: "Release", Description: "tag and publish"},
	}}
	wantPL := "::pipeline\n- Lint\n- Release | tag and publish\n::"
	if got := Block(pl); got != wantPL {
		t.Fatalf("Block() = %q, want %q", got, wantPL)
	}
}

func TestBlockProductCard(t *testing.T) {
	b := &ast.ProductCard{
		Badge:    "Popular",
		Title:    "Pro Plan",
		Subtitle: "For growing teams",
		Body:     ast.Rich{Raw: "Everything in Basic."},
		Features: []string{"SSO", "Audit logs"},
		CtaLabel: "Buy",
		CtaHref:  "/buy",
	}
	got := Block(b)
	want := `::product-card[badge=Popular]
## Pro Plan

For growing teams

Everything in Basic.

- SSO
- Audit logs

[Buy](/buy)
::`
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestBlockTabsAndColumns(t *testing.T) {
	tabs := &ast.Tabs{Panels: []ast.TabPanel{
		{Label: "One", Children: []ast.Block{&ast.Markdown{Text: ast.Rich{Raw: "First tab."}}}},
		{Label: "Two"},
	}}
	wantTabs := `::tabs
## One

First tab.

## Two
::`
	if got := Block(tabs); got != wantTabs {
		t.Fatalf("Block() = %q, want %q", got, wantTabs)
	}

	cols := &ast.Columns{
		Gap: "2rem",
		Cols: []ast.Column{
			{Children: []ast.Block{&ast.Markdown{Text: ast.Rich{Raw: "Left."}}}},
			{Children: []ast.Block{&ast.Markdown{Text: ast.Rich{Raw: "Right."}}}},
		},
	}
	wantCols := `::columns[gap=2rem]
Left.

---

Right.
::`
	if got := Block(cols); got != wantCols {
		t.Fatalf("Block() = %q, want %q", got, wantCols)
	}
}

func TestBlockContainers(t *testing.T) {
	details := &ast.Details{
		Title:    "More info",
		Open:     true,
		Children: []ast.Block{&ast.Markdown{Text: ast.Rich{Raw: "Hidden."}}},
	}
	wantDetails := "::details[title=\"More info\", open]\nHidden.\n::"
	if got := Block(details); got != wantDetails {
		t.Fatalf("Block() = %q, want %q", got, wantDetails)
	}

	site := &ast.Site{
		Domain: "acme.io",
		Name:   "Acme",
		Children: []ast.Block{
			&ast.Page{
				Route:    "/",
				Title:    "Home",
				Children: []ast.Block{&ast.Markdown{Text: ast.Rich{Raw: "Welcome."}}},
			},
		},
	}
	wantSite := `::site[domain=acme.io, name=Acme]
::page[route=/, title=Home]
Welcome.
::
::`
	if got := Block(site); got != wantSite {
		t.Fatalf("Block() = %q, want %q", got, wantSite)
	}
}

func TestBlockExtraAttrs(t *testing.T) {
	var extra ast.Attrs
	extra.Set("draft", ast.Bool(true))
	extra.Set("weight", ast.Number(2))
	extra.Set("data-x", ast.String("1"))

	b := &ast.Callout{
		BlockBase: ast.BlockBase{ID: "c1", Extra: extra},
		Type:      "info",
	}
	got := Block(b)
	want := "::callout[id=c1, draft, weight=2, data-x=\"1\"]\n::"
	if got != want {
		t.Fatalf("Block() = %q, want %q", got, want)
	}
}

func TestRenderString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"v1.2", "v1.2"},
		{"30s", "30s"},
		{"/docs", "/docs"},
		{"a b", `"a b"`},
		{"a,b", `"a,b"`},
		{"[x]", `"[x]"`},
		{"true", `"true"`},
		{"42", `"42"`},
		{"-2.5", `"-2.5"`},
		{".5", `".5"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tc := range tests {
		if got := renderString(tc.in); got != tc.want {
			t.Errorf("renderString(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDocumentFrontMatter(t *testing.T) {
	doc := &ast.Document{
		FrontMatter: ast.FrontMatter{
			Title: "Launch Plan",
			Type:  "site",
			Tags:  []string{"web", "launch"},
			Extra: map[string]any{"owner": "ada", "reviewed": true},
		},
		Blocks: []ast.Block{
			&ast.Markdown{Text: ast.Rich{Raw: "# Hello"}},
			&ast.Callout{Type: "info", Text: ast.Rich{Raw: "Hi there."}},
		},
	}
	got := Document(doc)
	want := `---
title: Launch Plan
type: site
tags: [web, launch]
owner: ada
reviewed: true
---

# Hello

::callout
Hi there.
::
`
	if got != want {
		t.Fatalf("Document() = %q, want %q", got, want)
	}
}

func TestDocumentEmpty(t *testing.T) {
	if got := Document(&ast.Document{}); got != "" {
		t.Fatalf("Document() = %q, want empty", got)
	}
}
