// Package emit writes assembled libraries to the output root.
//
// Every directory and file write is attempted independently. Transient
// failures are retried when a retry executor is configured; a failure that
// persists is recorded as a diagnostic and the remaining writes still run.
package emit

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/clientlibs/internal/files/filesystem"
	"github.com/vvka-141/clientlibs/internal/logging"
	"github.com/vvka-141/clientlibs/internal/retry"
	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// Writer emits library folders through a filesystem abstraction.
type Writer struct {
	fs         filesystem.FileSystem
	outputRoot string
	logger     clientlibs.Logger
	retrier    *retry.Executor
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithRetry retries directory creation and file writes through executor.
func WithRetry(executor *retry.Executor) WriterOption {
	return func(w *Writer) {
		w.retrier = executor
	}
}

// NewWriter creates a Writer rooted at outputRoot.
// Panics if fsys is nil.
func NewWriter(fsys filesystem.FileSystem, outputRoot string, logger clientlibs.Logger, opts ...WriterOption) *Writer {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	w := &Writer{fs: fsys, outputRoot: outputRoot, logger: logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Purge removes everything below the output root and recreates it empty.
func (w *Writer) Purge(ctx context.Context) []clientlibs.Diagnostic {
	if err := ctx.Err(); err != nil {
		return []clientlibs.Diagnostic{{Stage: clientlibs.StagePurge, Path: w.outputRoot, Err: err}}
	}

	var diags []clientlibs.Diagnostic
	entries, err := w.fs.ReadDir(w.outputRoot)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		w.logger.Verbose("Output root %s does not exist yet", w.outputRoot)
	case err != nil:
		diags = append(diags, clientlibs.Diagnostic{Stage: clientlibs.StagePurge, Path: w.outputRoot, Err: err})
	}

	for _, entry := range entries {
		target := w.join(entry.Name())
		if err := w.fs.RemoveAll(target); err != nil {
			diags = append(diags, clientlibs.Diagnostic{Stage: clientlibs.StagePurge, Path: target, Err: err})
			continue
		}
		w.logger.Verbose("Removed %s", target)
	}

	if err := w.fs.MkdirAll(w.outputRoot); err != nil {
		diags = append(diags, clientlibs.Diagnostic{Stage: clientlibs.StagePurge, Path: w.outputRoot, Err: err})
	}
	return diags
}

// Emit writes the full and minified folders of one library.
func (w *Writer) Emit(ctx context.Context, out clientlibs.LibraryOutput) []clientlibs.Diagnostic {
	var diags []clientlibs.Diagnostic
	for _, v := range []clientlibs.Variant{out.Full, out.Min} {
		diags = append(diags, w.emitVariant(ctx, out.Name, v)...)
	}
	return diags
}

func (w *Writer) emitVariant(ctx context.Context, library string, v clientlibs.Variant) []clientlibs.Diagnostic {
	dir := w.join(v.Folder)
	if err := ctx.Err(); err != nil {
		return []clientlibs.Diagnostic{{Stage: clientlibs.StageWrite, Library: library, Path: dir, Err: err}}
	}
	if err := w.attempt(ctx, func() error { return w.fs.MkdirAll(dir) }); err != nil {
		w.logger.Error("Cannot create %s: %v", dir, err)
		return []clientlibs.Diagnostic{{Stage: clientlibs.StageWrite, Library: library, Path: dir, Err: err}}
	}

	var diags []clientlibs.Diagnostic
	for _, a := range v.Artifacts {
		target := filepath.Join(dir, a.Name)
		data := []byte(a.Content)
		if err := w.attempt(ctx, func() error { return w.fs.WriteFile(target, data) }); err != nil {
			w.logger.Error("Cannot write %s: %v", target, err)
			diags = append(diags, clientlibs.Diagnostic{Stage: clientlibs.StageWrite, Library: library, Path: target, Err: err})
			continue
		}
		w.logger.Verbose("Wrote %s (%d bytes)", target, len(a.Content))
	}
	return diags
}

func (w *Writer) attempt(ctx context.Context, op func() error) error {
	if w.retrier == nil {
		return op()
	}
	return w.retrier.Execute(ctx, func(context.Context) error { return op() })
}

func (w *Writer) join(name string) string {
	return filepath.Join(w.outputRoot, name)
}

var _ clientlibs.Emitter = (*Writer)(nil)
