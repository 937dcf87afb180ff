package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/clientlibs/internal/config"
	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// sourceFlags holds the flags shared by build and plan.
type sourceFlags struct {
	root          string
	output        string
	configFile    string
	noCompressCSS bool
	noCompressJS  bool
	json          bool
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringVar(&flags.root, "root", "",
		"Directory scanned for annotated files (overrides clientlibs.yaml and CLIENTLIBS_ROOT)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output root for generated libraries, purged before each build\n"+
			"(overrides clientLibPath and CLIENTLIBS_OUTPUT)")
	cmd.Flags().StringVar(&flags.configFile, "config", "",
		"Path to a config file (default: <project_path>/clientlibs.yaml)")
	cmd.Flags().BoolVar(&flags.noCompressCSS, "no-compress-css", false,
		"Copy the full style bundle into the minified folder instead of minifying")
	cmd.Flags().BoolVar(&flags.noCompressJS, "no-compress-js", false,
		"Copy the full script bundle into the minified folder instead of minifying")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output the report as JSON on stdout")
}

// resolveBuildConfig merges defaults, clientlibs.yaml, environment and flags.
// Priority (highest to lowest): flags > CLIENTLIBS_* env > clientlibs.yaml > defaults
func resolveBuildConfig(cmd *cobra.Command, projectPath string, flags sourceFlags, verbose bool) (clientlibs.BuildConfig, error) {
	cfg, err := config.Resolve(projectPath, flags.configFile)
	if err != nil {
		return clientlibs.BuildConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("root") {
		if cfg.Root, err = filepath.Abs(flags.root); err != nil {
			return clientlibs.BuildConfig{}, fmt.Errorf("invalid --root %q: %w", flags.root, clientlibs.ErrInvalidConfig)
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.ClientLibPath, err = filepath.Abs(flags.output); err != nil {
			return clientlibs.BuildConfig{}, fmt.Errorf("invalid --output %q: %w", flags.output, clientlibs.ErrInvalidConfig)
		}
	}
	if flags.noCompressCSS {
		cfg.CompressCSS = false
	}
	if flags.noCompressJS {
		cfg.CompressJS = false
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
