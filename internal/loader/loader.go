// Package loader discovers SurfDoc files on a filesystem and turns them
// into parsed documents with stable identities. Discovery is glob-driven
// and deterministic: directory scans always return documents sorted by
// path, and the same file always receives the same document ID.
package loader

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-surfdoc/internal/identity"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
)

// Config configures how SurfDoc files are discovered within a base directory.
type Config struct {
	// BasePath is the root directory where SurfDoc documents live.
	BasePath string
	// Patterns limits discovered files to those matching one of the supplied
	// globs (defaults to "*.surf" and "*.md").
	Patterns []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// DefaultPatterns returns the globs used when Config.Patterns is empty.
func DefaultPatterns() []string {
	return []string{"*.surf", "*.md"}
}

// Loader turns filesystem paths into parsed documents with metadata.
type Loader struct {
	fs        fs.FS
	basePath  string
	patterns  []string
	recursive bool
	parser    interfaces.Parser
}

// NewLoader constructs a Loader using the provided filesystem, parser, and
// configuration.
func NewLoader(filesystem fs.FS, parser interfaces.Parser, cfg Config) *Loader {
	patterns := normalisePatterns(cfg.Patterns)
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		patterns:  patterns,
		recursive: cfg.Recursive,
		parser:    parser,
	}
}

// LoadFile reads and parses a single SurfDoc document.
func (l *Loader) LoadFile(ctx context.Context, path string, opts Params) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if l.parser == nil {
		return nil, fmt.Errorf("surfdoc loader: parser not configured")
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("surfdoc loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("surfdoc loader stat %s: %w", rel, err)
	}

	tree, diags, err := l.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("surfdoc loader parse %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)

	return &Result{
		Document: &interfaces.Document{
			Path:         rel,
			ID:           identity.DocumentUUID(rel),
			Tree:         tree,
			Diagnostics:  diags,
			LastModified: info.ModTime(),
			Checksum:     sum[:],
		},
		Source: data,
	}, nil
}

// LoadDirectory discovers SurfDoc files under dir and returns parsed documents.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts Params) ([]*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	var results []*Result

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel, opts.Patterns) {
			return nil
		}

		result, err := l.LoadFile(ctx, rel, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.Path < results[j].Document.Path
	})

	return results, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	cleanRoot := filepath.Clean(root)
	cleanCurrent := filepath.Clean(current)
	return cleanRoot == cleanCurrent
}

func (l *Loader) matchesPattern(path string, overrides []string) bool {
	patterns := normalisePatterns(overrides)
	if len(patterns) == 0 {
		patterns = l.patterns
	}
	for _, pattern := range patterns {
		if matchesGlob(pattern, path) {
			return true
		}
	}
	return false
}

func matchesGlob(pattern, path string) bool {
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("surfdoc loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("surfdoc loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

// Result carries the parsed document along with the raw source.
type Result struct {
	Document *interfaces.Document
	Source   []byte
}

// Params provide call-specific overrides for pattern matching and recursion.
type Params struct {
	Patterns  []string
	Recursive *bool
}

func normalisePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
