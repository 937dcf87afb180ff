package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the slash-separated path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order, calling fn for each
	// file and directory. Returning filepath.SkipDir from fn for a directory
	// skips its contents; any other error stops the walk.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the read side of the filesystem abstraction.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the immediate entries of a directory.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// FileWriter is the write side of the filesystem abstraction used for
// emitting bundles.
type FileWriter interface {
	// WriteFile creates or truncates the file at path. The parent
	// directory must exist.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// RemoveAll removes path and everything below it. A missing path is
	// not an error.
	RemoveAll(path string) error
}

// FileSystem combines read and write access.
type FileSystem interface {
	FileSystemProvider
	FileWriter
}
