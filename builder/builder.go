// Package builder constructs documents programmatically through a fluent
// API. Arguments are validated as each call is made; the first failure is
// recorded and returned by Build, so a long chain fails fast without
// panics and invalid calls never reach the tree. Blocks carry synthetic
// spans, and a document that Build returns passes validation by
// construction.
package builder

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-surfdoc/ast"
	"github.com/goliatone/go-surfdoc/internal/assemble"
	"github.com/goliatone/go-surfdoc/internal/inline"
)

var (
	ErrNoBlock        = errors.New("builder: no block to attach the id to")
	ErrDuplicateID    = errors.New("builder: duplicate block id")
	ErrEmptySite      = errors.New("builder: site needs at least one page or chrome block")
	ErrSecondNav      = errors.New("builder: site allows a single nav block")
	ErrSecondFooter   = errors.New("builder: site allows a single footer block")
	ErrDuplicateRoute = errors.New("builder: route is already declared")
	ErrEmptyPage      = errors.New("builder: page needs at least one block")
	ErrEmptyColumns   = errors.New("builder: columns needs at least one column")
	ErrEmptyColumn    = errors.New("builder: column needs at least one block")
	ErrEmptyTabs      = errors.New("builder: tabs needs at least one tab")
	ErrEmptyDetails   = errors.New("builder: details needs at least one block")
	ErrEmptySection   = errors.New("builder: section needs at least one block")
	ErrEmptyFooter    = errors.New("builder: footer needs sections, social links, or a copyright line")
	ErrEmptyChanges   = errors.New("builder: before-after needs at least one change item")
	ErrCardSubtitle   = errors.New("builder: product card body requires a subtitle")
	ErrCardCta        = errors.New("builder: product card cta needs both label and href")
)

// Builder accumulates front matter and top-level blocks. The zero value
// is not used directly; call New.
type Builder struct {
	fm     ast.FrontMatter
	blocks []ast.Block
	err    error
}

// New returns an empty document builder.
func New() *Builder {
	return &Builder{}
}

// fail records the first error. Later calls on the chain are no-ops.
func (b *Builder) fail(op string, err error) *Builder {
	if b.err == nil {
		b.err = goerrors.Wrap(err, goerrors.CategoryValidation, "builder: invalid "+op+" call")
	}
	return b
}

func (b *Builder) push(block ast.Block) *Builder {
	b.blocks = append(b.blocks, block)
	return b
}

func base() ast.BlockBase {
	return ast.BlockBase{Span: ast.Synthetic}
}

// richOf fills in inline spans for values that arrive with raw text only.
func richOf(r ast.Rich) ast.Rich {
	if r.Raw != "" && len(r.Spans) == 0 {
		return inline.Rich(r.Raw)
	}
	return r
}

// Title sets the front matter title.
func (b *Builder) Title(title string) *Builder {
	b.fm.Title = title
	return b
}

// DocType sets the front matter document type.
func (b *Builder) DocType(dt string) *Builder {
	b.fm.Type = dt
	return b
}

// Status sets the front matter status.
func (b *Builder) Status(status string) *Builder {
	b.fm.Status = status
	return b
}

// Author sets the front matter author.
func (b *Builder) Author(author string) *Builder {
	b.fm.Author = author
	return b
}

// Description sets the front matter description.
func (b *Builder) Description(desc string) *Builder {
	b.fm.Description = desc
	return b
}

// Version sets the front matter version.
func (b *Builder) Version(version string) *Builder {
	b.fm.Version = version
	return b
}

// Tags sets the front matter tag list.
func (b *Builder) Tags(tags ...string) *Builder {
	b.fm.Tags = tags
	return b
}

// Markdown appends a prose block.
func (b *Builder) Markdown(content string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(content, validation.Required); err != nil {
		return b.fail("markdown", err)
	}
	return b.push(&ast.Markdown{BlockBase: base(), Text: inline.Rich(strings.Trim(content, "\n"))})
}

// Heading appends a markdown heading at the given level (1 through 6).
func (b *Builder) Heading(level int, text string) *Builder {
	if b.err != nil {
		return b
	}
	if err := (validation.Errors{
		"level": validation.Validate(level, validation.Required, validation.Min(1), validation.Max(6)),
		"text":  validation.Validate(text, validation.Required),
	}).Filter(); err != nil {
		return b.fail("heading", err)
	}
	line := strings.Repeat("#", level) + " " + text
	return b.push(&ast.Markdown{BlockBase: base(), Text: inline.Rich(line)})
}

// WithID sets the declared id on the most recently added block. IDs are
// checked for uniqueness across the whole document at Build.
func (b *Builder) WithID(id string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(id, validation.Required); err != nil {
		return b.fail("id", err)
	}
	if len(b.blocks) == 0 {
		return b.fail("id", ErrNoBlock)
	}
	b.blocks[len(b.blocks)-1].Base().ID = id
	return b
}

// Build returns the finished document, or the first error recorded by a
// builder call.
func (b *Builder) Build() (*ast.Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := checkIDs(b.blocks); err != nil {
		return nil, err
	}
	ix, _ := assemble.BuildIndex(b.blocks)
	return &ast.Document{FrontMatter: b.fm, Blocks: b.blocks, Index: ix}, nil
}

// MustBuild is Build for fixtures and tests; it panics on error.
func (b *Builder) MustBuild() *ast.Document {
	doc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return doc
}

func checkIDs(blocks []ast.Block) error {
	seen := make(map[string]bool)
	var dup string
	ast.Walk(blocks, func(blk ast.Block) bool {
		if dup != "" {
			return false
		}
		id := blk.Base().ID
		if id == "" {
			return true
		}
		if seen[id] {
			dup = id
			return false
		}
		seen[id] = true
		return true
	})
	if dup != "" {
		return fmt.Errorf("%w: %q", ErrDuplicateID, dup)
	}
	return nil
}
