package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalProjectPath accepts zero or one project_path argument.
// Returns a helpful error message with usage and examples if there are too many.
func OptionalProjectPath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./ui.frontend`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// projectPathArg returns the project path argument, defaulting to the
// current directory.
func projectPathArg(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "."
	}
	return args[0]
}
