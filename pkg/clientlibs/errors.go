package clientlibs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRootNotFound indicates the scan root does not exist or is not a directory.
	ErrRootNotFound = errors.New("source root not found")

	// ErrNoAnnotations indicates a file declares no @clientlib ownership.
	// Such files contribute to no library; this is not a failure.
	ErrNoAnnotations = errors.New("no @clientlib annotation found")

	// ErrBinaryContent indicates file content contains NUL bytes or is not
	// valid UTF-8.
	ErrBinaryContent = errors.New("content is not valid text")

	// ErrMinifyFailed indicates the minifier rejected a bundle.
	ErrMinifyFailed = errors.New("minification failed")

	// ErrDegradedBuild indicates the build finished but recorded diagnostics.
	// Only returned when strict mode is requested.
	ErrDegradedBuild = errors.New("build finished with diagnostics")
)

// MinifyError is a minifier syntax error at a position in a bundle.
// Line and Column are 1-based; zero means unknown.
type MinifyError struct {
	Line    int
	Column  int
	Message string
}

func (e *MinifyError) Error() string {
	if e.Line <= 0 {
		return e.Message
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
}

// Unwrap makes errors.Is(err, ErrMinifyFailed) hold.
func (e *MinifyError) Unwrap() error {
	return ErrMinifyFailed
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrRootNotFound):
		return ExitRootNotFound
	case errors.Is(err, ErrDegradedBuild):
		return ExitDegradedBuild
	}

	// cobra reports argument and flag problems as plain errors
	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}
