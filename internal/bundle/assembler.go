package bundle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/clientlibs/internal/files/filesystem"
	"github.com/vvka-141/clientlibs/internal/logging"
	"github.com/vvka-141/clientlibs/internal/resolver"
	"github.com/vvka-141/clientlibs/internal/sourcemap"
	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// Assembler turns registered libraries into bundles and manifest texts.
// Besides reading configured include files, its only side effect is
// shrinking each assembled library's mention set.
// Safe for concurrent use as long as the filesystem provider and
// minifier are.
type Assembler struct {
	cfg        clientlibs.BuildConfig
	norm       clientlibs.Normalizer
	fsProvider filesystem.FileSystemProvider
	minifier   clientlibs.Minifier
	logger     clientlibs.Logger
}

// NewAssembler creates an Assembler.
// Panics if fsProvider or minifier is nil.
func NewAssembler(cfg clientlibs.BuildConfig, fsProvider filesystem.FileSystemProvider, minifier clientlibs.Minifier, logger clientlibs.Logger) *Assembler {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if minifier == nil {
		panic("minifier cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Assembler{
		cfg:        cfg,
		norm:       cfg.Normalizer(),
		fsProvider: fsProvider,
		minifier:   minifier,
		logger:     logger,
	}
}

// AssembleAll assembles every library in parallel. Outputs and
// diagnostics are returned in the order the libraries were given.
// The only error is context cancellation.
func (a *Assembler) AssembleAll(ctx context.Context, libs []*clientlibs.Library) ([]clientlibs.LibraryOutput, []clientlibs.Diagnostic, error) {
	outputs := make([]clientlibs.LibraryOutput, len(libs))
	diags := make([][]clientlibs.Diagnostic, len(libs))

	g, ctx := errgroup.WithContext(ctx)
	for i, lib := range libs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outputs[i], diags[i] = a.Assemble(ctx, lib)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var all []clientlibs.Diagnostic
	for _, d := range diags {
		all = append(all, d...)
	}
	return outputs, all, nil
}

// Assemble builds the bundles and both variant folders for one library.
// On return lib.Mentioned holds only the references that matched no
// member of the library.
func (a *Assembler) Assemble(ctx context.Context, lib *clientlibs.Library) (clientlibs.LibraryOutput, []clientlibs.Diagnostic) {
	out := clientlibs.LibraryOutput{Name: lib.Name}
	var diags []clientlibs.Diagnostic

	lib.Mentioned = a.shrinkMentions(lib)
	unresolved := make(map[string]bool, len(lib.Mentioned))
	for _, ref := range lib.Mentioned {
		unresolved[ref] = true
	}

	for _, t := range clientlibs.AssetTypes {
		members := lib.Members(t)
		if len(members) == 0 {
			continue
		}
		result, d := a.assembleType(ctx, lib.Name, t, members, unresolved)
		out.Bundles = append(out.Bundles, result)
		diags = append(diags, d...)
	}

	out.Unresolved = append([]string(nil), lib.Mentioned...)
	sort.Strings(out.Unresolved)
	out.Full = a.variant(out, a.cfg.FullFolder(lib.Name), false)
	out.Min = a.variant(out, a.cfg.MinFolder(lib.Name), true)

	a.logger.Verbose("Assembled %s: %d style(s), %d script(s), %d unresolved",
		lib.Name, len(lib.Styles), len(lib.Scripts), len(out.Unresolved))
	return out, diags
}

func (a *Assembler) assembleType(ctx context.Context, library string, t clientlibs.AssetType, members []clientlibs.FileRecord, unresolved map[string]bool) (clientlibs.BundleResult, []clientlibs.Diagnostic) {
	result := clientlibs.BundleResult{
		Library:   library,
		AssetType: t,
		Ordered:   resolver.Order(members, a.norm),
	}
	var diags []clientlibs.Diagnostic

	var full strings.Builder
	sm := sourcemap.New()
	appendSegment := func(file, content string) {
		segment := content + clientlibs.LineBreak
		full.WriteString(segment)
		sm.Append(file, segment)
	}

	for _, entry := range a.cfg.IncludesFor(library, t) {
		if ctx.Err() != nil {
			break
		}
		data, err := a.fsProvider.ReadFile(a.cfg.IncludePath(entry))
		if err != nil {
			a.logger.Verbose("Skipping include %s for %s: %v", entry, library, err)
			diags = append(diags, clientlibs.Diagnostic{
				Stage:   clientlibs.StageInclude,
				Library: library,
				Path:    entry,
				Err:     err,
			})
			continue
		}
		result.Includes = append(result.Includes, entry)
		appendSegment(entry, string(data))
	}

	for _, rec := range result.Ordered {
		appendSegment(rec.RelPath, rec.Content)
	}

	result.Full = full.String()
	result.LineMap = sm.Entries()
	result.Unresolved = declaredIn(members, unresolved)

	if !a.cfg.Compress(t) {
		result.Minified = result.Full
		return result, diags
	}

	minified, err := a.minifier.Minify(t, result.Full)
	if err != nil {
		var merr *clientlibs.MinifyError
		if errors.As(err, &merr) {
			if file, line, ok := sm.Resolve(merr.Line); ok {
				err = fmt.Errorf("%s line %d: %w", file, line, err)
			}
		}
		a.logger.Verbose("Minification of %s %s bundle failed: %v", library, t, err)
		diags = append(diags, clientlibs.Diagnostic{
			Stage:   clientlibs.StageMinify,
			Library: library,
			Path:    t.BundleFileName(),
			Err:     err,
		})
		return result, diags
	}
	result.Minified = minified
	return result, diags
}

// shrinkMentions removes from the library's mention set every reference
// that matches an emitted member of any asset type. Each type's members
// are matched with that type's prefix rule. Order is preserved.
func (a *Assembler) shrinkMentions(lib *clientlibs.Library) []string {
	matched := make(map[string]bool)
	for _, t := range clientlibs.AssetTypes {
		for _, ref := range resolver.Matched(lib.Members(t), lib.Mentioned, a.norm) {
			matched[ref] = true
		}
	}

	var remaining []string
	for _, ref := range lib.Mentioned {
		if !matched[ref] {
			remaining = append(remaining, ref)
		}
	}
	return remaining
}

// declaredIn returns the distinct unresolved references declared by
// members, sorted.
func declaredIn(members []clientlibs.FileRecord, unresolved map[string]bool) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, rec := range members {
		for _, dep := range rec.DependsOn {
			if unresolved[dep] && !seen[dep] {
				seen[dep] = true
				refs = append(refs, dep)
			}
		}
	}
	sort.Strings(refs)
	return refs
}

func (a *Assembler) variant(out clientlibs.LibraryOutput, folder string, minified bool) clientlibs.Variant {
	v := clientlibs.Variant{
		Folder:   folder,
		Minified: minified,
		Artifacts: []clientlibs.Artifact{
			{Name: clientlibs.ContentXMLFile, Content: ContentXML(folder)},
		},
	}

	var externalCSS, externalJS, contained []string
	for _, b := range out.Bundles {
		content := b.Full
		if minified {
			content = b.Minified
		}
		v.Artifacts = append(v.Artifacts,
			clientlibs.Artifact{Name: b.AssetType.BundleFileName(), Content: content},
			clientlibs.Artifact{Name: b.AssetType.ManifestFileName(), Content: AssetManifest(b.AssetType)},
		)

		switch b.AssetType {
		case clientlibs.AssetStyle:
			externalCSS = b.Includes
		case clientlibs.AssetScript:
			externalJS = b.Includes
		}
		contained = append(contained, b.ContainedFiles()...)
	}

	if includes := IncludesManifest(externalCSS, externalJS, contained); includes != "" {
		v.Artifacts = append(v.Artifacts, clientlibs.Artifact{Name: clientlibs.IncludesFile, Content: includes})
	}
	if depends := DependsManifest(out.Unresolved); depends != "" {
		v.Artifacts = append(v.Artifacts, clientlibs.Artifact{Name: clientlibs.DependsFile, Content: depends})
	}
	return v
}
