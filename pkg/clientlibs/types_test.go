package clientlibs_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

func TestAssetTypeForPath(t *testing.T) {
	tests := []struct {
		path   string
		want   clientlibs.AssetType
		wantOK bool
	}{
		{"css/site.css", clientlibs.AssetStyle, true},
		{"SITE.CSS", clientlibs.AssetStyle, true},
		{"js/app.js", clientlibs.AssetScript, true},
		{"package.json", "", false},
		{"readme.md", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := clientlibs.AssetTypeForPath(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestAssetType_FileNames(t *testing.T) {
	assert.Equal(t, "styles.css", clientlibs.AssetStyle.BundleFileName())
	assert.Equal(t, "classes.js", clientlibs.AssetScript.BundleFileName())
	assert.Equal(t, "css.txt", clientlibs.AssetStyle.ManifestFileName())
	assert.Equal(t, "js.txt", clientlibs.AssetScript.ManifestFileName())
	assert.Equal(t, "css", clientlibs.AssetStyle.Extension())
	assert.Equal(t, "js", clientlibs.AssetScript.Extension())
}

func TestNormalizer_Key(t *testing.T) {
	n := clientlibs.NewNormalizer("styles/", "./js/")

	tests := []struct {
		name string
		t    clientlibs.AssetType
		ref  string
		want string
	}{
		{"plain", clientlibs.AssetScript, "lib/util.js", "libutil.js"},
		{"leading dot slash", clientlibs.AssetScript, "./lib/util.js", "libutil.js"},
		{"script prefix", clientlibs.AssetScript, "js/lib/util.js", "libutil.js"},
		{"style prefix", clientlibs.AssetStyle, "styles/base.css", "base.css"},
		{"prefix of other type kept", clientlibs.AssetStyle, "js/base.css", "jsbase.css"},
		{"backslashes", clientlibs.AssetScript, `js\lib\util.js`, "libutil.js"},
		{"whitespace", clientlibs.AssetStyle, "  base.css ", "base.css"},
		{"only first prefix occurrence", clientlibs.AssetStyle, "styles/styles/a.css", "stylesa.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Key(tt.t, tt.ref))
		})
	}
}

func TestNormalizer_RecordKeyFallsBackToPath(t *testing.T) {
	n := clientlibs.NewNormalizer("", "")
	rec := clientlibs.FileRecord{Path: "a/b.js", AssetType: clientlibs.AssetScript}
	assert.Equal(t, "ab.js", n.RecordKey(rec))

	rec.RelPath = "c/d.js"
	assert.Equal(t, "cd.js", n.RecordKey(rec))
}

func TestBuildConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*clientlibs.BuildConfig)
		wantErr bool
	}{
		{"defaults", func(*clientlibs.BuildConfig) {}, false},
		{"custom suffixes", func(c *clientlibs.BuildConfig) { c.FullSuffix = "-full"; c.MinSuffix = "" }, false},
		{"empty root", func(c *clientlibs.BuildConfig) { c.Root = " " }, true},
		{"empty output", func(c *clientlibs.BuildConfig) { c.ClientLibPath = "" }, true},
		{"output equals root", func(c *clientlibs.BuildConfig) { c.Root = "./web"; c.ClientLibPath = "web/" }, true},
		{"output is ancestor of root", func(c *clientlibs.BuildConfig) { c.Root = "/project/ui/src"; c.ClientLibPath = "/project/ui" }, true},
		{"output is filesystem root", func(c *clientlibs.BuildConfig) { c.Root = "/project"; c.ClientLibPath = "/" }, true},
		{"output below root", func(c *clientlibs.BuildConfig) { c.Root = "/project"; c.ClientLibPath = "/project/clientlibs" }, false},
		{"output sibling with shared prefix", func(c *clientlibs.BuildConfig) { c.Root = "/project/ui"; c.ClientLibPath = "/project/ui-out" }, false},
		{"equal suffixes", func(c *clientlibs.BuildConfig) { c.MinSuffix = "" }, true},
		{"suffix with separator", func(c *clientlibs.BuildConfig) { c.MinSuffix = "/min" }, true},
		{"retries disabled", func(c *clientlibs.BuildConfig) { c.WriteRetries = 0 }, false},
		{"negative retries", func(c *clientlibs.BuildConfig) { c.WriteRetries = -1 }, true},
		{"empty include name", func(c *clientlibs.BuildConfig) {
			c.Includes = map[string]clientlibs.Includes{"": {CSS: []string{"a.css"}}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clientlibs.DefaultBuildConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, clientlibs.ErrInvalidConfig), "expected ErrInvalidConfig, got: %v", err)
		})
	}
}

func TestBuildConfig_Accessors(t *testing.T) {
	cfg := clientlibs.DefaultBuildConfig()
	cfg.Root = "/src"
	cfg.ClientLibPath = "/out"
	cfg.CompressJS = false
	cfg.Includes = map[string]clientlibs.Includes{
		"site": {CSS: []string{"vendor/a.css"}, JS: []string{"/abs/b.js"}},
	}

	assert.True(t, cfg.Compress(clientlibs.AssetStyle))
	assert.False(t, cfg.Compress(clientlibs.AssetScript))
	assert.Equal(t, "site", cfg.FullFolder("site"))
	assert.Equal(t, "site-min", cfg.MinFolder("site"))
	assert.Equal(t, []string{"vendor/a.css"}, cfg.IncludesFor("site", clientlibs.AssetStyle))
	assert.Nil(t, cfg.IncludesFor("other", clientlibs.AssetScript))
	assert.Equal(t, "/src/vendor/a.css", cfg.IncludePath("vendor/a.css"))
	assert.Equal(t, "/abs/b.js", cfg.IncludePath("/abs/b.js"))
	assert.Equal(t, "/out/site-min", cfg.OutputDir(cfg.MinFolder("site")))
}

func TestBuildReport_HasDiagnostics(t *testing.T) {
	var r clientlibs.BuildReport
	assert.False(t, r.HasDiagnostics())
	r.Diagnostics = append(r.Diagnostics, clientlibs.Diagnostic{Stage: clientlibs.StageRead})
	assert.True(t, r.HasDiagnostics())
}

func TestBundleResult_ContainedFiles(t *testing.T) {
	b := clientlibs.BundleResult{
		Ordered: []clientlibs.FileRecord{{RelPath: "a.js"}, {RelPath: "lib/b.js"}},
	}
	assert.Equal(t, []string{"a.js", "lib/b.js"}, b.ContainedFiles())
}

func TestDiagnostic_MarshalJSON(t *testing.T) {
	d := clientlibs.Diagnostic{
		Stage:   clientlibs.StageWrite,
		Library: "site",
		Path:    "clientlibs/site/styles.css",
		Err:     errors.New("disk full"),
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stage":"write","library":"site","path":"clientlibs/site/styles.css","error":"disk full"}`, string(data))
}
