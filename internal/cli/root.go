package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clientlibs",
	Short: "Annotation-driven AEM client library builder",
	Long: `clientlibs scans a source tree for @clientlib and @depends annotations in
.css and .js files, orders every library's members so dependencies come
first, and writes a full and a minified AEM client library folder for each.

Annotate a file to add it to a library and declare what it needs:

  /* @clientlib site */
  /* @depends lib/util.js */

Configuration is read from clientlibs.yaml in the project directory.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Source root not found
  12 - Build finished with diagnostics (--strict only)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for clientlibs")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag reads the persistent verbose flag, which is also found
// when cmd runs outside rootCmd.Execute (as in tests).
func getVerboseFlag(cmd *cobra.Command) bool {
	flag := cmd.Flag("verbose")
	if flag == nil {
		return false
	}
	verbose, err := strconv.ParseBool(flag.Value.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
