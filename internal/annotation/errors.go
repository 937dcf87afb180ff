package annotation

import "fmt"

// AnnotationError describes a file that cannot take part in a library,
// with an actionable hint.
type AnnotationError struct {
	FilePath string
	Message  string
	Hint     string
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	msg := fmt.Sprintf("annotation error in %s: %s", e.FilePath, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}
