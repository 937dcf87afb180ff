package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    fs.FileInfo
	readErr error
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.getEntriesUnder(d.absPath)

	// Same visiting order as filepath.Walk: segment by segment, so a
	// directory's contents come before a sibling whose name extends it.
	sort.Slice(entries, func(i, j int) bool {
		return lessBySegments(entries[i].absPath, entries[j].absPath)
	})

	var skipped []string
	for _, entry := range entries {
		if isUnderAny(entry.absPath, skipped) {
			continue
		}

		rel := d.relativeTo(entry.absPath)
		view := &memoryFile{absPath: entry.absPath, relPath: rel, content: entry.content, info: entry.info, readErr: entry.readErr}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			callbackErr = fn(view, nil)
		}()

		if callbackErr == filepath.SkipDir && entry.info.IsDir() {
			skipped = append(skipped, entry.absPath)
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func (d *memoryDirectory) relativeTo(absPath string) string {
	if absPath == d.absPath {
		return "."
	}
	if d.absPath == "/" {
		return strings.TrimPrefix(absPath, "/")
	}
	return strings.TrimPrefix(absPath, d.absPath+"/")
}

func lessBySegments(a, b string) bool {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

func isUnderAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystem in memory for testing.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu        sync.RWMutex
	files     map[string]*memoryFile // map of absolute path -> file
	root      string                 // root directory path
	writeErrs map[string]error       // injected write failures by absolute path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:     make(map[string]*memoryFile),
		root:      root,
		writeErrs: make(map[string]error),
	}
	mfs.files[root] = newMemoryDir(root)

	return mfs
}

func newMemoryDir(absPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// resolve maps a caller path to an absolute path in the virtual tree.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.putFile(mfs.resolve(filePath), []byte(content), modTime)
}

// FailRead makes every later read of an existing file return err.
func (mfs *MemoryFileSystem) FailRead(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if file, ok := mfs.files[mfs.resolve(filePath)]; ok {
		file.readErr = err
	}
}

// FailWrite makes later writes to filePath return err.
func (mfs *MemoryFileSystem) FailWrite(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.writeErrs[mfs.resolve(filePath)] = err
}

func (mfs *MemoryFileSystem) putFile(absPath string, content []byte, modTime time.Time) {
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newMemoryDir(dir)
	mfs.ensureDirectoriesExist(dir)
}

// getEntriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) getEntriesUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var entries []*memoryFile
	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}
		if matched {
			entries = append(entries, file)
		}
	}
	return entries
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("directory not found: %s", openPath)
	}
	if !file.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.resolve(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if file.readErr != nil {
		return nil, file.readErr
	}
	return file.content, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	absPath := mfs.resolve(dirPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	dir, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to read directory: %s: %w", dirPath, fs.ErrNotExist)
	}
	if !dir.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	var result []FileInfo
	for p, file := range mfs.files {
		if p != absPath && path.Dir(p) == absPath {
			result = append(result, file.info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.resolve(statPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return file.info, nil
}

// WriteFile implements FileWriter.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if err := mfs.writeErrs[absPath]; err != nil {
		return err
	}
	parent, exists := mfs.files[path.Dir(absPath)]
	if !exists {
		return fmt.Errorf("parent directory not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if !parent.info.IsDir() {
		return fmt.Errorf("parent is not a directory: %s", filePath)
	}
	if existing, ok := mfs.files[absPath]; ok && existing.info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.putFile(absPath, content, time.Now())
	return nil
}

// MkdirAll implements FileWriter.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	absPath := mfs.resolve(dirPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	for p := absPath; p != "/" && p != "."; p = path.Dir(p) {
		if existing, ok := mfs.files[p]; ok && !existing.info.IsDir() {
			return fmt.Errorf("path exists and is not a directory: %s", p)
		}
	}
	if _, ok := mfs.files[absPath]; !ok {
		mfs.files[absPath] = newMemoryDir(absPath)
		mfs.ensureDirectoriesExist(absPath)
	}
	return nil
}

// RemoveAll implements FileWriter.RemoveAll
func (mfs *MemoryFileSystem) RemoveAll(removePath string) error {
	absPath := mfs.resolve(removePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	for p := range mfs.files {
		if p == absPath || strings.HasPrefix(p, absPath+"/") {
			delete(mfs.files, p)
		}
	}
	return nil
}

var _ FileSystem = (*MemoryFileSystem)(nil)
