package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vvka-141/clientlibs/internal/annotation"
	"github.com/vvka-141/clientlibs/internal/bundle"
	"github.com/vvka-141/clientlibs/internal/checksum"
	"github.com/vvka-141/clientlibs/internal/emit"
	"github.com/vvka-141/clientlibs/internal/files/filesystem"
	"github.com/vvka-141/clientlibs/internal/files/scanner"
	"github.com/vvka-141/clientlibs/internal/minify"
	"github.com/vvka-141/clientlibs/internal/registry"
	"github.com/vvka-141/clientlibs/internal/retry"
	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// BuildService runs the clientlib pipeline:
// purge -> scan -> parse -> register -> assemble -> emit.
//
// Thread-Safety: safe for concurrent Build() calls as long as they target
// different output roots. All per-run state lives in the call.
type BuildService struct {
	fs         filesystem.FileSystem
	logger     clientlibs.Logger
	calculator checksum.Calculator
	minifierFn func(settings minify.Settings) clientlibs.Minifier
}

// NewBuildService creates a BuildService with all dependencies injected.
// Panics on nil dependencies.
func NewBuildService(fsys filesystem.FileSystem, logger clientlibs.Logger, calculator checksum.Calculator) *BuildService {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &BuildService{
		fs:         fsys,
		logger:     logger,
		calculator: calculator,
		minifierFn: func(settings minify.Settings) clientlibs.Minifier { return minify.New(settings) },
	}
}

// WithMinifier replaces the minifier used for bundles.
func (s *BuildService) WithMinifier(m clientlibs.Minifier) *BuildService {
	s.minifierFn = func(minify.Settings) clientlibs.Minifier { return m }
	return s
}

// Build runs a full build and writes every library under
// cfg.ClientLibPath. It returns an error only for configuration problems
// or cancellation; every per-file and per-library failure is reported in
// the returned report's diagnostics.
func (s *BuildService) Build(ctx context.Context, cfg clientlibs.BuildConfig) (clientlibs.BuildReport, error) {
	minifier, err := s.prepare(cfg)
	if err != nil {
		return clientlibs.BuildReport{}, err
	}

	s.logger.Verbose("Source root: %s", cfg.Root)
	s.logger.Verbose("Output root: %s", cfg.ClientLibPath)

	writer := emit.NewWriter(s.fs, cfg.ClientLibPath, s.logger, emit.WithRetry(s.writeRetrier(cfg)))
	report := clientlibs.BuildReport{}
	report.Diagnostics = append(report.Diagnostics, writer.Purge(ctx)...)

	outputs, diags, err := s.assemble(ctx, cfg, minifier)
	report.Diagnostics = append(report.Diagnostics, diags...)
	if err != nil {
		return report, err
	}

	for _, out := range outputs {
		report.Diagnostics = append(report.Diagnostics, writer.Emit(ctx, out)...)
		report.Libraries = append(report.Libraries, s.libraryReport(cfg, out))
		s.logger.Verbose("Wrote %s and %s", out.Full.Folder, out.Min.Folder)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	s.logger.Info("✓ Built %d client librar%s", len(report.Libraries), plural(len(report.Libraries), "y", "ies"))
	if report.HasDiagnostics() {
		s.logger.Info("%d item(s) skipped or degraded", len(report.Diagnostics))
	}
	return report, nil
}

func (s *BuildService) writeRetrier(cfg clientlibs.BuildConfig) *retry.Executor {
	return retry.NewExecutor(
		retry.NewFileSystemErrorClassifier(),
		retry.NewExponentialBackoff(cfg.WriteRetries),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		s.logger.Verbose("Retrying write in %v (attempt %d/%d): %v", delay, attempt+1, cfg.WriteRetries, err)
	})
}

// Plan resolves and assembles every library without touching the output
// root. The report carries the same ordering, unresolved mentions and
// checksums a build would produce.
func (s *BuildService) Plan(ctx context.Context, cfg clientlibs.BuildConfig) (clientlibs.BuildReport, error) {
	minifier, err := s.prepare(cfg)
	if err != nil {
		return clientlibs.BuildReport{}, err
	}

	outputs, diags, err := s.assemble(ctx, cfg, minifier)
	report := clientlibs.BuildReport{Diagnostics: diags}
	if err != nil {
		return report, err
	}
	for _, out := range outputs {
		report.Libraries = append(report.Libraries, s.libraryReport(cfg, out))
	}
	return report, nil
}

// prepare validates the configuration, checks the root and builds the
// minifier from minSettings.
func (s *BuildService) prepare(cfg clientlibs.BuildConfig) (clientlibs.Minifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	info, err := s.fs.Stat(cfg.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", cfg.Root, clientlibs.ErrRootNotFound)
	}

	settings, unknown, err := minify.SettingsFromMap(cfg.MinSettings)
	if err != nil {
		return nil, err
	}
	for _, key := range unknown {
		s.logger.Info("Ignoring unknown minSettings key %q", key)
	}
	return s.minifierFn(settings), nil
}

// assemble scans, parses and registers every file, then assembles all
// libraries. Registration completes before any library is assembled.
func (s *BuildService) assemble(ctx context.Context, cfg clientlibs.BuildConfig, minifier clientlibs.Minifier) ([]clientlibs.LibraryOutput, []clientlibs.Diagnostic, error) {
	reg, diags, err := s.collect(ctx, cfg)
	if err != nil {
		return nil, diags, err
	}

	libs := reg.Libraries()
	s.logger.Verbose("Registered %d librar%s", len(libs), plural(len(libs), "y", "ies"))

	assembler := bundle.NewAssembler(cfg, s.fs, minifier, s.logger)
	outputs, assembleDiags, err := assembler.AssembleAll(ctx, libs)
	diags = append(diags, assembleDiags...)
	return outputs, diags, err
}

func (s *BuildService) collect(ctx context.Context, cfg clientlibs.BuildConfig) (*registry.Registry, []clientlibs.Diagnostic, error) {
	fileScanner := scanner.NewScanner(s.fs,
		scanner.WithExcludedDir(cfg.ClientLibPath),
		scanner.WithLogger(s.logger),
	)

	scanResult, err := fileScanner.ScanDirectory(ctx, cfg.Root)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Verbose("Discovered %d candidate file(s)", len(scanResult.Files))

	diags := scanResult.Diagnostics
	reg := registry.New(cfg.Normalizer())

	for _, file := range scanResult.Files {
		parsed, err := annotation.Parse(file.Path, file.RelPath, file.Content)
		if err != nil {
			if errors.Is(err, clientlibs.ErrNoAnnotations) {
				s.logger.Verbose("No @clientlib annotation in %s", file.RelPath)
				continue
			}
			s.logger.Verbose("Skipping %s: %v", file.RelPath, err)
			diags = append(diags, clientlibs.Diagnostic{
				Stage: clientlibs.StageParse,
				Path:  file.RelPath,
				Err:   err,
			})
			continue
		}

		for _, name := range parsed.Libraries {
			if reg.Register(name, parsed.Record) {
				s.logger.Verbose("Added %s to %s", file.RelPath, name)
			}
		}
	}
	return reg, diags, nil
}

func (s *BuildService) libraryReport(cfg clientlibs.BuildConfig, out clientlibs.LibraryOutput) clientlibs.LibraryReport {
	r := clientlibs.LibraryReport{
		ID:           annotation.LibraryID(out.Name).String(),
		Name:         out.Name,
		FullDir:      cfg.OutputDir(out.Full.Folder),
		MinDir:       cfg.OutputDir(out.Min.Folder),
		Unresolved:   out.Unresolved,
		Includes:     make(map[string][]string),
		Checksums:    make(map[string]string),
		Fingerprints: make(map[string]string),
		LineMaps:     make(map[string][]clientlibs.LineMapEntry),
	}

	for _, b := range out.Bundles {
		name := b.AssetType.BundleFileName()
		switch b.AssetType {
		case clientlibs.AssetStyle:
			r.Styles = b.ContainedFiles()
		case clientlibs.AssetScript:
			r.Scripts = b.ContainedFiles()
		}
		if len(b.Includes) > 0 {
			r.Includes[b.AssetType.Extension()] = b.Includes
		}
		r.Checksums[filepath.ToSlash(filepath.Join(out.Full.Folder, name))] = s.calculator.CalculateRaw([]byte(b.Full))
		r.Checksums[filepath.ToSlash(filepath.Join(out.Min.Folder, name))] = s.calculator.CalculateRaw([]byte(b.Minified))
		r.Fingerprints[name] = s.calculator.CalculateNormalized(b.AssetType, []byte(b.Full))
		r.LineMaps[name] = b.LineMap
	}
	return r
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
