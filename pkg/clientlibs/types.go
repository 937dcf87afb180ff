package clientlibs

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// AssetType identifies which bundle a member file contributes to.
type AssetType string

const (
	// AssetStyle marks style sheet members (.css).
	AssetStyle AssetType = "style"

	// AssetScript marks script members (.js).
	AssetScript AssetType = "script"
)

// AssetTypes lists the asset types in emission order.
var AssetTypes = []AssetType{AssetStyle, AssetScript}

// Extension returns the short key used in configuration ("css" or "js").
func (t AssetType) Extension() string {
	switch t {
	case AssetStyle:
		return "css"
	case AssetScript:
		return "js"
	default:
		return ""
	}
}

// BundleFileName returns the bundle artifact name for the asset type.
func (t AssetType) BundleFileName() string {
	switch t {
	case AssetStyle:
		return StyleBundleFile
	case AssetScript:
		return ScriptBundleFile
	default:
		return ""
	}
}

// ManifestFileName returns the "#base=." manifest name for the asset type.
func (t AssetType) ManifestFileName() string {
	switch t {
	case AssetStyle:
		return StyleManifestFile
	case AssetScript:
		return ScriptManifestFile
	default:
		return ""
	}
}

// AssetTypeForPath infers the asset type from the file extension.
// JSON files and anything that is neither .css nor .js are rejected.
func AssetTypeForPath(p string) (AssetType, bool) {
	switch strings.ToLower(path.Ext(p)) {
	case ".css":
		return AssetStyle, true
	case ".js":
		return AssetScript, true
	default:
		return "", false
	}
}

// FileRecord is one annotated file's contribution to a library.
// It is created once when the file is parsed and never mutated afterwards.
type FileRecord struct {
	// Path is the path used for I/O.
	Path string

	// RelPath is the root-relative, slash-separated path used in manifests.
	RelPath string

	AssetType AssetType

	// DependsOn holds dependency references in declaration order.
	// Duplicates are preserved.
	DependsOn []string

	Content string
}

// Library is a named bundle target built from registered members.
type Library struct {
	Name    string
	Styles  []FileRecord
	Scripts []FileRecord

	// Mentioned holds every dependency reference declared by a member,
	// deduplicated, in first-seen order. Assembly shrinks it to the
	// references that matched no member.
	Mentioned []string
}

// Members returns the member collection for the given asset type.
func (l *Library) Members(t AssetType) []FileRecord {
	switch t {
	case AssetStyle:
		return l.Styles
	case AssetScript:
		return l.Scripts
	default:
		return nil
	}
}

// MemberCount returns the number of members across all asset types.
func (l *Library) MemberCount() int {
	return len(l.Styles) + len(l.Scripts)
}

// LineMapEntry maps a range of bundle lines back to the member file that
// produced them. Lines are 1-based and inclusive.
type LineMapEntry struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	File  string `json:"file"`
}

// BundleResult is the assembled output of one library for one asset type.
type BundleResult struct {
	Library   string
	AssetType AssetType

	// Ordered holds members in dependency order.
	Ordered []FileRecord

	// Includes lists the external include paths that were prepended.
	Includes []string

	Full     string
	Minified string

	// Unresolved lists references declared by this asset type's members
	// that matched no member of the library.
	Unresolved []string

	LineMap []LineMapEntry
}

// ContainedFiles returns the root-relative paths of the included members.
func (b BundleResult) ContainedFiles() []string {
	files := make([]string, 0, len(b.Ordered))
	for _, rec := range b.Ordered {
		files = append(files, rec.RelPath)
	}
	return files
}

// Artifact is one file written into a library folder.
type Artifact struct {
	Name    string
	Content string
}

// Variant is one of the two sibling folders emitted per library.
type Variant struct {
	// Folder is the library name plus the variant suffix.
	Folder    string
	Minified  bool
	Artifacts []Artifact
}

// LibraryOutput is everything assembled for one library.
type LibraryOutput struct {
	Name    string
	Bundles []BundleResult

	// Unresolved is the library's mention set after shrinkage: every
	// declared reference that matched no member, sorted.
	Unresolved []string

	Full Variant
	Min  Variant
}

// Bundle returns the bundle for the asset type, if the library has one.
func (o LibraryOutput) Bundle(t AssetType) (BundleResult, bool) {
	for _, b := range o.Bundles {
		if b.AssetType == t {
			return b, true
		}
	}
	return BundleResult{}, false
}

// Stage names the pipeline step a Diagnostic was recorded in.
type Stage string

const (
	StageRead    Stage = "read"
	StageParse   Stage = "parse"
	StageInclude Stage = "include"
	StageMinify  Stage = "minify"
	StagePurge   Stage = "purge"
	StageWrite   Stage = "write"
)

// Diagnostic records a failure that was recovered locally.
// The run continues; diagnostics are returned with the build report.
type Diagnostic struct {
	Stage   Stage
	Library string
	Path    string
	Err     error
}

// Error implements the error interface so diagnostics can be joined.
func (d Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(string(d.Stage))
	if d.Library != "" {
		fmt.Fprintf(&b, " [%s]", d.Library)
	}
	if d.Path != "" {
		fmt.Fprintf(&b, " %s", d.Path)
	}
	if d.Err != nil {
		fmt.Fprintf(&b, ": %v", d.Err)
	}
	return b.String()
}

// MarshalJSON renders the wrapped error as its message.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	var msg string
	if d.Err != nil {
		msg = d.Err.Error()
	}
	return json.Marshal(struct {
		Stage   Stage  `json:"stage"`
		Library string `json:"library,omitempty"`
		Path    string `json:"path,omitempty"`
		Error   string `json:"error"`
	}{d.Stage, d.Library, d.Path, msg})
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// LibraryReport summarizes what was built for one library.
type LibraryReport struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	FullDir    string              `json:"full_dir"`
	MinDir     string              `json:"min_dir"`
	Styles     []string            `json:"styles,omitempty"`
	Scripts    []string            `json:"scripts,omitempty"`
	Includes   map[string][]string `json:"includes,omitempty"`
	Unresolved []string            `json:"unresolved,omitempty"`
	Checksums  map[string]string   `json:"checksums,omitempty"`

	// Fingerprints are comment- and whitespace-insensitive checksums of
	// the full bundles, keyed by bundle file name.
	Fingerprints map[string]string `json:"fingerprints,omitempty"`

	LineMaps map[string][]LineMapEntry `json:"line_maps,omitempty"`
}

// BuildReport is the result of one build run.
type BuildReport struct {
	Libraries   []LibraryReport `json:"libraries"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
}

// HasDiagnostics reports whether anything was skipped or degraded.
func (r BuildReport) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}
