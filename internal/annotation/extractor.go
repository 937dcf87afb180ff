package annotation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// ownershipRegex matches "@clientlib <name>". The token may be empty, in
// which case the match is ignored.
var ownershipRegex = regexp.MustCompile(`@clientlib ([A-Za-z0-9._-]*)`)

// dependRegex matches "@depend <ref>" and "@depends <ref>".
var dependRegex = regexp.MustCompile(`@depends? ([A-Za-z0-9/._-]*)`)

// Annotations holds the raw annotation tokens found in a file.
type Annotations struct {
	// Libraries lists ownership names, deduplicated, in order of appearance.
	Libraries []string

	// DependsOn lists dependency references in order of appearance,
	// duplicates included.
	DependsOn []string
}

// Extract scans content for ownership and dependency annotations.
func Extract(content string) Annotations {
	var result Annotations

	seen := make(map[string]bool)
	for _, match := range ownershipRegex.FindAllStringSubmatch(content, -1) {
		name := strings.TrimSpace(match[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result.Libraries = append(result.Libraries, name)
	}

	for _, match := range dependRegex.FindAllStringSubmatch(content, -1) {
		ref := strings.TrimSpace(match[1])
		if ref == "" {
			continue
		}
		result.DependsOn = append(result.DependsOn, ref)
	}

	return result
}

// Parsed is a file record together with the libraries that own it.
type Parsed struct {
	Record    clientlibs.FileRecord
	Libraries []string
}

// Parse builds a FileRecord from a file's path and content.
//
// Error cases:
//   - unsupported extension -> *AnnotationError
//   - NUL-containing or invalid UTF-8 content -> ErrBinaryContent
//   - no ownership annotation, including empty content -> ErrNoAnnotations
func Parse(path, relPath, content string) (Parsed, error) {
	assetType, ok := clientlibs.AssetTypeForPath(path)
	if !ok {
		return Parsed{}, &AnnotationError{
			FilePath: path,
			Message:  "unsupported file type",
			Hint:     "Only .css and .js files can belong to a client library.",
		}
	}

	if !isText(content) {
		return Parsed{}, fmt.Errorf("%s: %w", path, clientlibs.ErrBinaryContent)
	}

	found := Extract(content)
	if len(found.Libraries) == 0 {
		return Parsed{}, fmt.Errorf("%s: %w", path, clientlibs.ErrNoAnnotations)
	}

	if relPath == "" {
		relPath = path
	}

	return Parsed{
		Record: clientlibs.FileRecord{
			Path:      path,
			RelPath:   relPath,
			AssetType: assetType,
			DependsOn: found.DependsOn,
			Content:   content,
		},
		Libraries: found.Libraries,
	}, nil
}

func isText(content string) bool {
	if strings.IndexByte(content, 0) >= 0 {
		return false
	}
	return utf8.ValidString(content)
}
