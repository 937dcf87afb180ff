package retry

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
)

// ErrorClassifier decides whether a failed operation may succeed if retried.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// FileSystemErrorClassifier recognizes transient filesystem failures.
type FileSystemErrorClassifier struct{}

// NewFileSystemErrorClassifier creates a new filesystem error classifier.
func NewFileSystemErrorClassifier() *FileSystemErrorClassifier {
	return &FileSystemErrorClassifier{}
}

var transientErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.EAGAIN,
	syscall.EINTR,
	syscall.ETXTBSY,
}

// Messages reported by Windows for sharing and lock violations, which do
// not map onto a portable errno.
var transientPatterns = []string{
	"being used by another process",
	"sharing violation",
	"lock violation",
	"resource busy",
	"temporarily unavailable",
}

// IsTransient determines if an error is temporary and retryable.
func (c *FileSystemErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrExist) {
		return false
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
