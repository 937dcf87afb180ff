package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOSFileSystem_Open_ValidDirectory(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	d, err := fs.Open(dir)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", dir, err)
	}

	absDir, _ := filepath.Abs(dir)
	if d.Path() != absDir {
		t.Errorf("directory.Path() = %q, want %q", d.Path(), absDir)
	}
}

func TestOSFileSystem_Open_NonexistentPath(t *testing.T) {
	fs := NewOSFileSystem()

	_, err := fs.Open(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Error("Open(nonexistent) should return error")
	}
}

func TestOSFileSystem_Open_FileNotDirectory(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	os.WriteFile(filePath, []byte("content"), 0644)

	fs := NewOSFileSystem()

	_, err := fs.Open(filePath)
	if err == nil {
		t.Error("Open(file) should return error")
	}
}

func TestOSFileSystem_ReadFile(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "test.css")
	expected := "body{margin:0}"
	os.WriteFile(filePath, []byte(expected), 0644)

	fs := NewOSFileSystem()

	data, err := fs.ReadFile(filePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != expected {
		t.Errorf("ReadFile() = %q, want %q", string(data), expected)
	}
}

func TestOSFileSystem_ReadFile_Nonexistent(t *testing.T) {
	fs := NewOSFileSystem()

	_, err := fs.ReadFile(filepath.Join(t.TempDir(), "nope.css"))
	if err == nil {
		t.Error("ReadFile(nonexistent) should return error")
	}
}

func TestOSFileSystem_Stat_File(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "test.css")
	os.WriteFile(filePath, []byte("body{margin:0}"), 0644)

	fs := NewOSFileSystem()

	info, err := fs.Stat(filePath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.IsDir() {
		t.Error("Stat(file) should not be a directory")
	}
	if info.Name() != "test.css" {
		t.Errorf("Stat().Name() = %q, want %q", info.Name(), "test.css")
	}
}

func TestOSFileSystem_Stat_Directory(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	info, err := fs.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat(dir) should be a directory")
	}
}

func TestOSFileSystem_Stat_Nonexistent(t *testing.T) {
	fs := NewOSFileSystem()

	_, err := fs.Stat(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("Stat(nonexistent) should return error")
	}
}

func TestOSFileSystem_Walk(t *testing.T) {
	dir := t.TempDir()

	// Create a tree:
	//   dir/
	//     a.js
	//     sub/
	//       b.js
	sub := filepath.Join(dir, "sub")
	os.Mkdir(sub, 0755)
	os.WriteFile(filepath.Join(dir, "a.js"), []byte("body{margin:0}"), 0644)
	os.WriteFile(filepath.Join(sub, "b.js"), []byte("var b;"), 0644)

	fs := NewOSFileSystem()
	d, err := fs.Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var files []string
	err = d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !f.Info().IsDir() {
			files = append(files, f.RelativePath())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Walk found %d files, want 2: %v", len(files), files)
	}

	found := map[string]bool{}
	for _, f := range files {
		found[f] = true
	}

	if !found["a.js"] {
		t.Error("Walk did not find a.js")
	}
	if !found["sub/b.js"] {
		t.Error("Walk did not find sub/b.js")
	}
}

func TestOSFile_ReadContent(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "content.js")
	expected := "/* @clientlib x */ var x;"
	os.WriteFile(filePath, []byte(expected), 0644)

	fs := NewOSFileSystem()
	d, err := fs.Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var fileContent string
	d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if f.RelativePath() == "content.js" {
			data, err := f.ReadContent()
			if err != nil {
				t.Fatalf("ReadContent() error = %v", err)
			}
			fileContent = string(data)
		}
		return nil
	})

	if fileContent != expected {
		t.Errorf("ReadContent() = %q, want %q", fileContent, expected)
	}
}

func TestOSFileSystem_WalkSkipDir(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "node_modules", "pkg"), 0755)
	os.WriteFile(filepath.Join(dir, "node_modules", "pkg", "index.js"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "app.js"), []byte("y"), 0644)

	d, err := NewOSFileSystem().Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var files []string
	err = d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if f.Info().IsDir() && f.Info().Name() == "node_modules" {
			return filepath.SkipDir
		}
		if !f.Info().IsDir() {
			files = append(files, f.RelativePath())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(files) != 1 || files[0] != "app.js" {
		t.Errorf("Walk() files = %v, want [app.js]", files)
	}
}

func TestOSFileSystem_WriteAndRemove(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	lib := filepath.Join(dir, "clientlibs", "site")
	if err := fs.MkdirAll(lib); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	target := filepath.Join(lib, "styles.css")
	if err := fs.WriteFile(target, []byte("a{}")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := fs.ReadFile(target)
	if err != nil || string(data) != "a{}" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}

	entries, err := fs.ReadDir(filepath.Join(dir, "clientlibs"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "site" {
		t.Errorf("ReadDir() = %v, want [site]", entries)
	}

	if err := fs.RemoveAll(lib); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if _, err := fs.Stat(target); err == nil {
		t.Error("Stat() after RemoveAll should fail")
	}
	if err := fs.RemoveAll(lib); err != nil {
		t.Errorf("RemoveAll(missing) error = %v, want nil", err)
	}
}

func TestOSFileSystem_WriteFile_MissingParent(t *testing.T) {
	fs := NewOSFileSystem()

	err := fs.WriteFile(filepath.Join(t.TempDir(), "missing", "x.js"), []byte("x"))
	if err == nil {
		t.Error("WriteFile() into missing directory should fail")
	}
}

func TestOSFileSystem_WriteFile_ReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	target := filepath.Join(dir, "classes.js")

	if err := fs.WriteFile(target, []byte("var a;")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := fs.WriteFile(target, []byte("var b;")); err != nil {
		t.Fatalf("WriteFile() overwrite error = %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil || string(data) != "var b;" {
		t.Fatalf("ReadFile() = %q, %v; want %q", data, err, "var b;")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries after writes, want 1 (temp files left behind?)", len(entries))
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}
