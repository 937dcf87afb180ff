package minify

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

func TestMinify_Style(t *testing.T) {
	m := New(DefaultSettings())

	out, err := m.Minify(clientlibs.AssetStyle, "body {\r\n  margin : 0px ;\r\n}\r\n/* comment */\r\n")
	require.NoError(t, err)

	assert.NotContains(t, out, "comment")
	assert.NotContains(t, out, "\n")
	assert.True(t, strings.HasPrefix(out, "body{"), "got %q", out)
}

func TestMinify_Script(t *testing.T) {
	m := New(DefaultSettings())

	src := "// leading comment\r\nvar answer = 40 + 2;\r\nconsole.log( answer );\r\n"
	out, err := m.Minify(clientlibs.AssetScript, src)
	require.NoError(t, err)

	assert.NotContains(t, out, "leading comment")
	assert.Less(t, len(out), len(src))
}

func TestMinify_ScriptSyntaxError(t *testing.T) {
	m := New(DefaultSettings())

	_, err := m.Minify(clientlibs.AssetScript, "function ( {")
	require.Error(t, err)
	assert.True(t, errors.Is(err, clientlibs.ErrMinifyFailed))
}

func TestMinify_SyntaxErrorPosition(t *testing.T) {
	m := New(DefaultSettings())

	_, err := m.Minify(clientlibs.AssetScript, "var a = 1;\r\nfunction ( {\r\n")
	require.Error(t, err)

	var merr *clientlibs.MinifyError
	require.True(t, errors.As(err, &merr), "got %v", err)
	assert.Equal(t, 2, merr.Line)
	assert.NotEmpty(t, merr.Message)
	assert.True(t, errors.Is(err, clientlibs.ErrMinifyFailed))
}

func TestMinify_UnsupportedType(t *testing.T) {
	m := New(DefaultSettings())

	_, err := m.Minify(clientlibs.AssetType("image"), "x")
	assert.True(t, errors.Is(err, clientlibs.ErrMinifyFailed))
}

func TestSettingsFromMap(t *testing.T) {
	settings, unknown, err := SettingsFromMap(map[string]interface{}{
		"precision":    3,
		"keepVarNames": true,
		"keepCSS2":     true,
		"dead_code":    true,
		"unsafe":       false,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, settings.Precision)
	assert.True(t, settings.KeepVarNames)
	assert.True(t, settings.KeepCSS2)
	assert.Equal(t, []string{"dead_code", "unsafe"}, unknown)
}

func TestSettingsFromMap_Empty(t *testing.T) {
	settings, unknown, err := SettingsFromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.Empty(t, unknown)
}

func TestSettingsFromMap_InvalidTypes(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"precision string", map[string]interface{}{"precision": "3"}},
		{"precision negative", map[string]interface{}{"precision": -1}},
		{"precision fractional", map[string]interface{}{"precision": 2.5}},
		{"keepVarNames string", map[string]interface{}{"keepVarNames": "yes"}},
		{"keepCSS2 int", map[string]interface{}{"keepCSS2": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SettingsFromMap(tt.overrides)
			require.Error(t, err)
			assert.True(t, errors.Is(err, clientlibs.ErrInvalidConfig))
		})
	}
}
