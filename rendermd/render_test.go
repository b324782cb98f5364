package rendermd_test

import (
	"testing"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/rendermd"
)

func render(blocks ...ast.Block) string {
	return rendermd.Render(&ast.Document{Blocks: blocks})
}

func TestRenderCallout(t *testing.T) {
	got := render(&ast.Callout{Type: "warning", Title: "Be careful", Text: ast.Rich{Raw: "Stay alert."}})
	want := "> **Warning**: Be careful\n> Stay alert."
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderQuoteAndTestimonial(t *testing.T) {
	got := render(&ast.Quote{By: "Hopper", Text: ast.Rich{Raw: "Ship early."}})
	want := "> Ship early.\n>\n> — Hopper"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}

	got = render(&ast.Testimonial{
		Author:  "Ada L",
		Role:    "CTO",
		Company: "Acme",
		Text:    ast.Rich{Raw: "It works."},
	})
	want = "> It works.\n>\n> — Ada L, CTO, Acme"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderDecision(t *testing.T) {
	got := render(&ast.Decision{Status: "accepted", Date: "2026-03-01", Text: ast.Rich{Raw: "Use queues."}})
	want := "> **Decision** (accepted) (2026-03-01)\n> Use queues."
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderMetric(t *testing.T) {
	got := render(&ast.Metric{Label: "Uptime", Value: ast.Number(99.95), Unit: "%", Trend: "up"})
	want := "**Uptime**: 99.95 % ↑"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}

	got = render(&ast.Metric{Label: "Build", Value: ast.String("30s")})
	if want = "**Build**: 30s"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderDataShapes(t *testing.T) {
	got := render(&ast.Data{
		Headers: []string{"Name", "Role"},
		Rows:    [][]string{{"Ada", "Engineer"}},
	})
	want := "| Name | Role |\n| --- | --- |\n| Ada | Engineer |"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}

	got = render(&ast.Data{Format: "json", Raw: `{"k": 1}`})
	if want = "```json\n{\"k\": 1}\n```"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderTasks(t *testing.T) {
	got := render(&ast.Tasks{Items: []ast.TaskItem{
		{Text: "Ship it", Done: true, Assignee: "ada"},
		{Text: "Write docs"},
	}})
	want := "- [x] Ship it @ada\n- [ ] Write docs"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderTabsRecursive(t *testing.T) {
	got := render(&ast.Tabs{Panels: []ast.TabPanel{
		{Label: "One", Children: []ast.Block{
			&ast.Callout{Type: "info", Text: ast.Rich{Raw: "Hi."}},
		}},
		{Label: "Two"},
	}})
	want := "### One\n\n> **Info**\n> Hi.\n\n### Two"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderSiteTree(t *testing.T) {
	got := render(&ast.Site{
		Domain: "acme.io",
		Name:   "Acme",
		Children: []ast.Block{
			&ast.Page{Title: "Home", Children: []ast.Block{
				&ast.Markdown{Text: ast.Rich{Raw: "Welcome."}},
			}},
		},
	})
	want := "**Site Configuration**\n- domain: acme.io\n- name: Acme\n\n## Home\n\nWelcome."
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderUnknownComment(t *testing.T) {
	got := render(&ast.Unknown{Name: "widget", Body: "some *content*"})
	want := "<!-- ::widget -->\nsome *content*\n<!-- :: -->"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderPipelineArrows(t *testing.T) {
	got := render(&ast.Pipeline{Steps: []ast.PipelineStep{
		{Label: "Lint"},
		{Label: "Release", Description: "tag and publish"},
	}})
	want := "Lint → Release (tag and publish)"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderStyleInvisible(t *testing.T) {
	got := render(
		&ast.Style{Props: []ast.StyleProp{{Key: "accent", Value: "#f60"}}},
		&ast.Markdown{Text: ast.Rich{Raw: "Visible."}},
	)
	if got != "Visible." {
		t.Fatalf("Render() = %q, want %q", got, "Visible.")
	}
}

func TestRenderSteps(t *testing.T) {
	got := render(&ast.Steps{Items: []ast.StepItem{
		{Title: "Install", Body: ast.Rich{Raw: "Run it."}},
		{Title: "Done"},
	}})
	want := "1. **Install**\n   Run it.\n2. **Done**"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderDivider(t *testing.T) {
	if got := render(&ast.Divider{}); got != "---" {
		t.Fatalf("Render() = %q, want ---", got)
	}
	if got := render(&ast.Divider{Label: "Part Two"}); got != "--- Part Two ---" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderFooter(t *testing.T) {
	got := render(&ast.Footer{
		Sections: []ast.FooterSection{
			{Heading: "Product", Links: []ast.NavItem{{Label: "Pricing", Href: "/pricing"}}},
		},
		Social:    []ast.SocialLink{{Platform: "github", Href: "https://github.com/acme"}},
		Copyright: "© 2026 Acme",
	})
	want := "---\n**Product**\n- [Pricing](/pricing)\n\n@github https://github.com/acme\n© 2026 Acme"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderBeforeAfter(t *testing.T) {
	got := render(&ast.BeforeAfter{
		Transition: "migration",
		Before:     []ast.ChangeItem{{Label: "Deploy", Detail: "manual"}},
		After:      []ast.ChangeItem{{Label: "Deploy", Detail: "one click"}},
	})
	want := "**Before**\n- Deploy — manual\n\n↓ *migration* ↓\n\n**After**\n- Deploy — one click"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}
