package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/clientlibs/internal/checksum"
	"github.com/vvka-141/clientlibs/internal/files/filesystem"
	"github.com/vvka-141/clientlibs/internal/logging"
	"github.com/vvka-141/clientlibs/internal/services"
	"github.com/vvka-141/clientlibs/internal/tui"
	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

type buildFlagValues struct {
	sourceFlags
	reportFile string
	strict     bool
}

var buildFlags buildFlagValues

var buildCmd = &cobra.Command{
	Use:   "build [project_path]",
	Short: "Build client libraries from annotated sources",
	Long: `Build scans the project for @clientlib annotations and writes a full and a
minified client library folder for every library found.

The output root is purged before each build. Files that cannot be read,
bundles that fail to minify and writes that fail are reported as
diagnostics; the build still completes. Use --strict to turn diagnostics
into a non-zero exit code.`,
	Example: `  clientlibs build
  clientlibs build ./ui.frontend --output ./ui.apps/src/main/content/jcr_root/etc/clientlibs
  clientlibs build --no-compress-js --report build-report.json`,
	Args: OptionalProjectPath,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addSourceFlags(buildCmd, &buildFlags.sourceFlags)
	buildCmd.Flags().StringVar(&buildFlags.reportFile, "report", "",
		"Write the JSON build report (IDs, members, checksums, line maps) to this file")
	buildCmd.Flags().BoolVar(&buildFlags.strict, "strict", false,
		"Exit with code 12 when the build records any diagnostic")
}

func runBuild(cmd *cobra.Command, args []string) error {
	projectPath := projectPathArg(args)
	verbose := getVerboseFlag(cmd)

	cfg, err := resolveBuildConfig(cmd, projectPath, buildFlags.sourceFlags, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	builder := services.NewBuildService(filesystem.NewOSFileSystem(), logger, checksum.New())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := builder.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if buildFlags.reportFile != "" {
		if err := writeReport(buildFlags.reportFile, report); err != nil {
			return err
		}
		logger.Verbose("Report written to %s", buildFlags.reportFile)
	}

	if buildFlags.json {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		fmt.Fprint(os.Stderr, tui.NewRenderer(tui.DetectMode(os.Stderr)).BuildSummary(report))
	}

	if buildFlags.strict && report.HasDiagnostics() {
		return fmt.Errorf("%d diagnostic(s) recorded: %w", len(report.Diagnostics), clientlibs.ErrDegradedBuild)
	}
	return nil
}

func writeReport(path string, report clientlibs.BuildReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
