package scanner

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/clientlibs/internal/files/filesystem"
	"github.com/vvka-141/clientlibs/internal/logging"
	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// Scanner discovers candidate .css and .js files from a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	excluded   []string
	logger     clientlibs.Logger
	workers    int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExcludedDir skips dir and everything below it. Used for the output
// directory so generated bundles are never re-scanned.
func WithExcludedDir(dir string) Option {
	return func(s *Scanner) {
		if strings.TrimSpace(dir) == "" {
			return
		}
		s.excluded = append(s.excluded, cleanSlash(dir))
	}
}

// WithLogger sets the logger used for verbose skip messages.
func WithLogger(logger clientlibs.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a new file scanner over the given filesystem provider.
// Panics if fsProvider is nil.
func NewScanner(fsProvider filesystem.FileSystemProvider, opts ...Option) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	s := &Scanner{
		fsProvider: fsProvider,
		logger:     logging.NewNullLogger(),
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanDirectory walks root and returns the readable candidate files in
// walk order. A missing root is an error; unreadable entries become
// read diagnostics.
func (s *Scanner) ScanDirectory(ctx context.Context, root string) (clientlibs.FileScanResult, error) {
	info, err := s.fsProvider.Stat(root)
	if err != nil || !info.IsDir() {
		return clientlibs.FileScanResult{}, fmt.Errorf("%s: %w", root, clientlibs.ErrRootNotFound)
	}

	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return clientlibs.FileScanResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var (
		candidates  []filesystem.File
		diagnostics []clientlibs.Diagnostic
	)

	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			diagnostics = append(diagnostics, clientlibs.Diagnostic{
				Stage: clientlibs.StageRead,
				Err:   walkErr,
			})
			return nil
		}

		relPath := file.RelativePath()
		if file.Info().IsDir() {
			if s.skipDir(file) {
				s.logger.Verbose("Skipping directory %s", relPath)
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(file.Path()) {
			return nil
		}
		if _, ok := clientlibs.AssetTypeForPath(relPath); !ok {
			return nil
		}

		candidates = append(candidates, file)
		return nil
	})
	if err != nil {
		return clientlibs.FileScanResult{}, err
	}

	files, readDiags, err := s.readAll(ctx, candidates)
	if err != nil {
		return clientlibs.FileScanResult{}, err
	}

	return clientlibs.FileScanResult{
		Files:       files,
		Diagnostics: append(diagnostics, readDiags...),
	}, nil
}

// readAll loads candidate contents concurrently. Results keep the
// candidates' order regardless of completion order.
func (s *Scanner) readAll(ctx context.Context, candidates []filesystem.File) ([]clientlibs.SourceFile, []clientlibs.Diagnostic, error) {
	contents := make([][]byte, len(candidates))
	errs := make([]error, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, file := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			contents[i], errs[i] = file.ReadContent()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	files := make([]clientlibs.SourceFile, 0, len(candidates))
	var diagnostics []clientlibs.Diagnostic
	for i, file := range candidates {
		if errs[i] != nil {
			diagnostics = append(diagnostics, clientlibs.Diagnostic{
				Stage: clientlibs.StageRead,
				Path:  file.RelativePath(),
				Err:   errs[i],
			})
			continue
		}
		files = append(files, clientlibs.SourceFile{
			Path:    file.Path(),
			RelPath: file.RelativePath(),
			Content: string(contents[i]),
		})
	}
	return files, diagnostics, nil
}

func (s *Scanner) skipDir(file filesystem.File) bool {
	if file.Info().Name() == clientlibs.IgnoredPathSegment {
		return true
	}
	return s.isExcluded(file.Path())
}

func (s *Scanner) isExcluded(p string) bool {
	p = cleanSlash(p)
	for _, dir := range s.excluded {
		if p == dir || strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

func cleanSlash(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// Verify Scanner implements the interface at compile time
var _ clientlibs.FileScanner = (*Scanner)(nil)
