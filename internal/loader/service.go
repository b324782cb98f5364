package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-surfdoc/internal/logging"
	"github.com/goliatone/go-surfdoc/pkg/interfaces"
)

const (
	documentLoadFailedCode = "DOCUMENT_LOAD_FAILED"
	documentScanFailedCode = "DOCUMENT_SCAN_FAILED"
)

// Service implements interfaces.DocumentLoader for filesystem-backed documents.
type Service struct {
	cfg    Config
	loader *Loader
	logger interfaces.Logger
}

var _ interfaces.DocumentLoader = (*Service)(nil)

// NewService constructs a loader service rooted at the configured base path.
// The parser is required; the logger provider may be nil, in which case the
// service stays silent.
func NewService(cfg Config, parser interfaces.Parser, provider interfaces.LoggerProvider) (*Service, error) {
	if parser == nil {
		return nil, errors.New("surfdoc loader: parser is required")
	}

	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:    cfg,
		loader: NewLoader(filesystem, parser, cfg),
		logger: logging.LoaderLogger(provider),
	}, nil
}

// Load reads and parses a single document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), Params{})
	if err != nil {
		s.logger.Error("document.load.failed", "document_path", path, "error", err)
		return nil, wrapLoaderError(err, "document load failed", documentLoadFailedCode)
	}

	doc := result.Document
	logging.WithDocumentContext(s.logger, doc.Path, doc.ID.String(), "load").
		Debug("document.loaded", "diagnostics", len(doc.Diagnostics))
	return doc, nil
}

// LoadDir reads every matching document within the supplied directory.
func (s *Service) LoadDir(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), Params{})
	if err != nil {
		s.logger.Error("document.scan.failed", "dir", dir, "error", err)
		return nil, wrapLoaderError(err, "document scan failed", documentScanFailedCode)
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, result.Document)
	}

	s.logger.Info("documents.loaded", "dir", dir, "count", len(docs))
	return docs, nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func wrapLoaderError(err error, msg, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("surfdoc loader: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
