package clientlibs

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Includes lists externally sourced files prepended to a library's bundles.
type Includes struct {
	CSS []string `yaml:"css" json:"css,omitempty"`
	JS  []string `yaml:"js" json:"js,omitempty"`
}

// For returns the include paths for the given asset type.
func (i Includes) For(t AssetType) []string {
	switch t {
	case AssetStyle:
		return i.CSS
	case AssetScript:
		return i.JS
	default:
		return nil
	}
}

// BuildConfig contains all parameters needed for a build run.
type BuildConfig struct {
	// Root is the directory scanned for annotated files.
	Root string

	// ClientLibPath is the output root. It is purged before every run.
	ClientLibPath string

	// FullSuffix and MinSuffix are appended to the library name to form
	// the full and minified folder names.
	FullSuffix string
	MinSuffix  string

	// CSSDependPrefix and JSDependPrefix are stripped when comparing
	// dependency references with member paths.
	CSSDependPrefix string
	JSDependPrefix  string

	// Includes maps library names to externally sourced files.
	Includes map[string]Includes

	CompressCSS bool
	CompressJS  bool

	// MinSettings are overrides merged into the minifier options.
	MinSettings map[string]interface{}

	// WriteRetries is how many times a write that failed for a transient
	// reason (busy or locked file) is retried. Zero disables retries.
	WriteRetries int

	Verbose bool
}

// DefaultBuildConfig returns the configuration used when nothing is set.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Root:          DefaultRoot,
		ClientLibPath: DefaultClientLibPath,
		FullSuffix:    DefaultFullSuffix,
		MinSuffix:     DefaultMinSuffix,
		CompressCSS:   true,
		CompressJS:    true,
		WriteRetries:  DefaultWriteRetries,
	}
}

// Validate checks the configuration and returns every problem found.
func (c *BuildConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, fmt.Errorf("root is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.ClientLibPath) == "" {
		errs = append(errs, fmt.Errorf("clientLibPath is required: %w", ErrInvalidConfig))
	} else if strings.TrimSpace(c.Root) != "" && isWithin(c.Root, c.ClientLibPath) {
		errs = append(errs, fmt.Errorf("clientLibPath %q must not be root or contain it, it is purged before each run: %w", c.ClientLibPath, ErrInvalidConfig))
	}

	if c.FullSuffix == c.MinSuffix {
		errs = append(errs, fmt.Errorf("fullSuffix and minSuffix must differ (both %q): %w", c.FullSuffix, ErrInvalidConfig))
	}

	for _, s := range []string{c.FullSuffix, c.MinSuffix} {
		if strings.ContainsAny(s, `/\`) {
			errs = append(errs, fmt.Errorf("suffix %q must not contain path separators: %w", s, ErrInvalidConfig))
		}
	}

	if c.WriteRetries < 0 {
		errs = append(errs, fmt.Errorf("writeRetries must not be negative (got %d): %w", c.WriteRetries, ErrInvalidConfig))
	}

	for name := range c.Includes {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("includes has an empty library name: %w", ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// isWithin reports whether p is dir or lies below it.
func isWithin(p, dir string) bool {
	absDir, errDir := filepath.Abs(dir)
	absP, errP := filepath.Abs(p)
	if errDir != nil || errP != nil {
		absDir, absP = filepath.Clean(dir), filepath.Clean(p)
	}
	rel, err := filepath.Rel(absDir, absP)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Compress reports whether bundles of type t are minified.
func (c *BuildConfig) Compress(t AssetType) bool {
	switch t {
	case AssetStyle:
		return c.CompressCSS
	case AssetScript:
		return c.CompressJS
	default:
		return false
	}
}

// IncludesFor returns the configured includes for a library and asset type.
func (c *BuildConfig) IncludesFor(library string, t AssetType) []string {
	return c.Includes[library].For(t)
}

// Normalizer returns the reference normalizer for the configured prefixes.
func (c *BuildConfig) Normalizer() Normalizer {
	return NewNormalizer(c.CSSDependPrefix, c.JSDependPrefix)
}

// FullFolder returns the full variant folder name for a library.
func (c *BuildConfig) FullFolder(library string) string {
	return library + c.FullSuffix
}

// MinFolder returns the minified variant folder name for a library.
func (c *BuildConfig) MinFolder(library string) string {
	return library + c.MinSuffix
}

// OutputDir joins a folder name onto the output root using OS separators.
func (c *BuildConfig) OutputDir(folder string) string {
	return filepath.Join(c.ClientLibPath, folder)
}

// IncludePath resolves an include entry. Relative entries are taken
// relative to Root.
func (c *BuildConfig) IncludePath(entry string) string {
	if filepath.IsAbs(entry) || path.IsAbs(entry) {
		return entry
	}
	return filepath.Join(c.Root, entry)
}
