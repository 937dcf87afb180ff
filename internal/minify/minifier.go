// Package minify adapts the tdewolff minifiers to the clientlibs.Minifier
// interface.
package minify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/parse/v2"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

const (
	mediaTypeCSS = "text/css"
	mediaTypeJS  = "application/javascript"
)

// Settings are the minifier options that can be overridden from
// configuration (minSettings).
type Settings struct {
	// Precision is the number of significant digits kept in numbers.
	// Zero keeps all digits.
	Precision int

	// KeepVarNames disables renaming of local script variables.
	KeepVarNames bool

	// KeepCSS2 avoids CSS3-only shorthands in style sheets.
	KeepCSS2 bool
}

// DefaultSettings keeps full numeric precision and lets the script
// minifier rename local variables.
func DefaultSettings() Settings {
	return Settings{}
}

// Minifier minifies style and script bundles.
// Safe for concurrent use by multiple goroutines.
type Minifier struct {
	m *minify.M
}

// New creates a Minifier with the given settings.
func New(settings Settings) *Minifier {
	m := minify.New()
	m.Add(mediaTypeCSS, &css.Minifier{
		Precision: settings.Precision,
		KeepCSS2:  settings.KeepCSS2,
	})
	m.Add(mediaTypeJS, &js.Minifier{
		Precision:    settings.Precision,
		KeepVarNames: settings.KeepVarNames,
	})
	return &Minifier{m: m}
}

// Minify compresses source of the given asset type.
// Syntax errors are reported as *clientlibs.MinifyError carrying the
// bundle position; every failure wraps clientlibs.ErrMinifyFailed.
func (mf *Minifier) Minify(t clientlibs.AssetType, source string) (string, error) {
	var mediaType string
	switch t {
	case clientlibs.AssetStyle:
		mediaType = mediaTypeCSS
	case clientlibs.AssetScript:
		mediaType = mediaTypeJS
	default:
		return "", fmt.Errorf("unsupported asset type %q: %w", t, clientlibs.ErrMinifyFailed)
	}

	out, err := mf.m.String(mediaType, source)
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			return "", fmt.Errorf("%s: %w", t, &clientlibs.MinifyError{
				Line:    perr.Line,
				Column:  perr.Column,
				Message: perr.Message,
			})
		}
		return "", fmt.Errorf("%s: %v: %w", t, err, clientlibs.ErrMinifyFailed)
	}
	return out, nil
}

// SettingsFromMap merges overrides onto DefaultSettings.
// Recognized keys: precision (int), keepVarNames (bool), keepCSS2 (bool).
// A recognized key with the wrong type is an error; unknown keys are
// returned so the caller can warn about them.
func SettingsFromMap(overrides map[string]interface{}) (Settings, []string, error) {
	settings := DefaultSettings()
	var unknown []string

	for key, raw := range overrides {
		switch key {
		case "precision":
			n, ok := toInt(raw)
			if !ok || n < 0 {
				return Settings{}, nil, fmt.Errorf("minSettings.precision must be a non-negative integer, got %v: %w", raw, clientlibs.ErrInvalidConfig)
			}
			settings.Precision = n
		case "keepVarNames":
			b, ok := raw.(bool)
			if !ok {
				return Settings{}, nil, fmt.Errorf("minSettings.keepVarNames must be a boolean, got %v: %w", raw, clientlibs.ErrInvalidConfig)
			}
			settings.KeepVarNames = b
		case "keepCSS2":
			b, ok := raw.(bool)
			if !ok {
				return Settings{}, nil, fmt.Errorf("minSettings.keepCSS2 must be a boolean, got %v: %w", raw, clientlibs.ErrInvalidConfig)
			}
			settings.KeepCSS2 = b
		default:
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)
	return settings, unknown, nil
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

var _ clientlibs.Minifier = (*Minifier)(nil)
