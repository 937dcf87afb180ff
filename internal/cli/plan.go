package cli

import (
	"context"
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
)

var planFlags sourceFlags

var planCmd = &cobra.Command{
	Use:   "plan [project_path]",
	Short: "Show libraries and bundle order without writing anything",
	Long: `Plan runs discovery and dependency resolution and prints every library as a
tree: its bundles, the files in the order they will be concatenated, and
any dependency that matched no member. Nothing is written or purged.`,
	Example: `  clientlibs plan
  clientlibs plan ./ui.frontend --json`,
	Args: OptionalProjectPath,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	addSourceFlags(planCmd, &planFlags)
}

func runPlan(cmd *cobra.Command, args []string) error {
	projectPath := projectPathArg(args)
	verbose := getVerboseFlag(cmd)

	cfg, err := resolveBuildConfig(cmd, projectPath, planFlags, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	planner := services.NewBuildService(filesystem.NewOSFileSystem(), logger, checksum.New())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := planner.Plan(ctx, cfg)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	if planFlags.json {
		return printJSON(report)
	}

	renderer := tui.NewRenderer(tui.DetectMode(os.Stdout))
	fmt.Print(renderer.PlanTree(cfg.Root, report))
	fmt.Fprint(os.Stderr, renderer.Diagnostics(report.Diagnostics))
	return nil
}
