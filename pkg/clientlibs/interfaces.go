package clientlibs

import "context"

// FileScanner discovers candidate files under a root directory.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ScanDirectory walks root and returns readable candidate files in
	// deterministic discovery order. Per-file read failures are returned as
	// diagnostics, not as an error.
	ScanDirectory(ctx context.Context, root string) (FileScanResult, error)
}

// SourceFile is a candidate file with its raw content.
type SourceFile struct {
	Path    string
	RelPath string
	Content string
}

// FileScanResult contains the results of scanning a directory.
type FileScanResult struct {
	Files       []SourceFile
	Diagnostics []Diagnostic
}

// Minifier compresses a concatenated bundle.
// Minify returns an error when the source cannot be parsed.
type Minifier interface {
	Minify(t AssetType, source string) (string, error)
}

// Emitter writes assembled libraries to the output root.
// Failures are returned as diagnostics; emission never aborts the run.
type Emitter interface {
	// Purge removes all previously generated output.
	Purge(ctx context.Context) []Diagnostic

	// Emit writes the full and minified folders of one library.
	Emit(ctx context.Context, out LibraryOutput) []Diagnostic
}
