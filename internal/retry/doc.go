// Package retry retries output writes that fail for transient reasons,
// such as a file held open by a sync tool or an editor, using
// exponential backoff.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewFileSystemErrorClassifier(),
//	    retry.NewExponentialBackoff(3),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fsys.WriteFile(target, data)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface decides which errors are worth another
// attempt. FileSystemErrorClassifier treats busy, locked and interrupted
// operations as transient; missing paths and permission errors are fatal.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
