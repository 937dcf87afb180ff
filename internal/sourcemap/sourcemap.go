// Package sourcemap maps lines of a concatenated bundle back to the files
// that produced them.
package sourcemap

import (
	"strings"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// SourceMap tracks which bundle lines came from which source file.
// Segments are appended in bundle order.
type SourceMap struct {
	entries  []clientlibs.LineMapEntry
	nextLine int
}

// New creates an empty SourceMap whose first segment starts at line 1.
func New() *SourceMap {
	return &SourceMap{nextLine: 1}
}

// Append records that text, produced by file, was appended to the bundle.
// Text ending without a newline still occupies its last line.
func (sm *SourceMap) Append(file, text string) {
	if text == "" {
		return
	}
	lines := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lines++
	}
	sm.entries = append(sm.entries, clientlibs.LineMapEntry{
		Start: sm.nextLine,
		End:   sm.nextLine + lines - 1,
		File:  file,
	})
	sm.nextLine += lines
}

// Resolve finds the source file for a bundle line and the 1-based line
// within that file.
func (sm *SourceMap) Resolve(bundleLine int) (file string, line int, found bool) {
	for _, entry := range sm.entries {
		if bundleLine >= entry.Start && bundleLine <= entry.End {
			return entry.File, bundleLine - entry.Start + 1, true
		}
	}
	return "", 0, false
}

// Entries returns a copy of all entries.
func (sm *SourceMap) Entries() []clientlibs.LineMapEntry {
	result := make([]clientlibs.LineMapEntry, len(sm.entries))
	copy(result, sm.entries)
	return result
}
