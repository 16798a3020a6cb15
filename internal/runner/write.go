package runner

import (
	"context"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// writeAttempts is the first try plus three retries.
const writeAttempts = 4

// writeFile replaces the content of path, keeping perm. Transient errors
// from busy files are retried with backoff; anything else fails at once.
func writeFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := os.WriteFile(path, data, perm)
		if err == nil || isTransient(err) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	},
		backoff.WithBackOff(newWriteBackoff()),
		backoff.WithMaxTries(writeAttempts),
		backoff.WithMaxElapsedTime(0),
	)
	return err
}

func newWriteBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	return b
}
