// Package files groups the file-related sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: discovery of annotated .css and .js files below a root
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/clientlibs/internal/files/filesystem"
//	    "github.com/vvka-141/clientlibs/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScanner(filesystem.NewOSFileSystem(),
//	    scanner.WithExcludedDir(cfg.ClientLibPath))
//	result, err := fileScanner.ScanDirectory(ctx, cfg.Root)
package files
