package retry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemErrorClassifier_IsTransient(t *testing.T) {
	c := NewFileSystemErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"busy", &os.PathError{Op: "open", Path: "x.css", Err: syscall.EBUSY}, true},
		{"interrupted", fmt.Errorf("write: %w", syscall.EINTR), true},
		{"windows sharing violation", errors.New("open styles.css: The process cannot access the file because it is being used by another process."), true},
		{"not exist", &os.PathError{Op: "open", Path: "x.css", Err: fs.ErrNotExist}, false},
		{"permission", &os.PathError{Op: "open", Path: "x.css", Err: fs.ErrPermission}, false},
		{"other", errors.New("disk quota exceeded"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(10*time.Millisecond),
		WithMaxDelay(50*time.Millisecond),
		WithJitter(0),
	)

	assert.Equal(t, 10*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 20*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 40*time.Millisecond, b.NextDelay(2))
	assert.Equal(t, 50*time.Millisecond, b.NextDelay(3), "capped at max delay")
	assert.Equal(t, 5, b.MaxAttempts())
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	b := NewExponentialBackoff(1,
		WithInitialDelay(100*time.Millisecond),
		WithJitter(0.1),
		WithJitterFunc(func() float64 { return 1.0 }),
	)
	assert.Equal(t, 110*time.Millisecond, b.NextDelay(0))

	b = NewExponentialBackoff(1,
		WithInitialDelay(100*time.Millisecond),
		WithJitter(0.1),
		WithJitterFunc(func() float64 { return 0.0 }),
	)
	assert.Equal(t, 90*time.Millisecond, b.NextDelay(0))
}

func fastExecutor(maxAttempts int) *Executor {
	return NewExecutor(
		NewFileSystemErrorClassifier(),
		NewExponentialBackoff(maxAttempts, WithInitialDelay(time.Millisecond), WithJitter(0)),
	)
}

func TestExecutor_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	var retried []int

	err := fastExecutor(3).
		WithOnRetry(func(attempt int, err error, delay time.Duration) { retried = append(retried, attempt) }).
		Execute(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return syscall.EBUSY
			}
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{0, 1}, retried)
}

func TestExecutor_FatalErrorIsNotRetried(t *testing.T) {
	calls := 0
	err := fastExecutor(3).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return fs.ErrPermission
	})

	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, 1, calls)
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := fastExecutor(2).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return syscall.EBUSY
	})

	assert.ErrorIs(t, err, syscall.EBUSY)
	assert.Equal(t, 3, calls, "first attempt plus two retries")
}

func TestExecutor_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := fastExecutor(0).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return syscall.EBUSY
	})

	assert.ErrorIs(t, err, syscall.EBUSY)
	assert.Equal(t, 1, calls)
}

func TestExecutor_StopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := fastExecutor(5).Execute(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return syscall.EBUSY
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, NewExponentialBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewFileSystemErrorClassifier(), nil) })
}
