// Package scanner discovers candidate asset files for the build.
//
// The scanner walks the configured root in deterministic lexical order and
// returns every .css and .js file with its content. It skips:
//   - node_modules directories
//   - the output directory (configured with WithExcludedDir)
//   - .json files and any other extension
//
// Contents are read concurrently with a bounded errgroup, but results
// keep walk order so discovery order is stable across runs. A file that
// cannot be read becomes a read diagnostic; the scan continues.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// enabling both production use with the OS filesystem and testing with
// in-memory filesystems.
package scanner
