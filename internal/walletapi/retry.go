package walletapi

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
)

// withRetries runs op under the retry policy: up to maxRetries attempts in
// total, exponential backoff without jitter between attempts, retrying only
// errors marked retryable (HTTP 429 and 5xx). Whatever error the final
// attempt produced is returned unchanged.
func (c *Client) withRetries(ctx context.Context, label string, op func() error) error {
	err := retry.Do(
		op,
		retry.Context(ctx),
		retry.Attempts(c.maxRetries),
		retry.Delay(c.retryBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			apiErr, ok := AsAPIError(err)
			return ok && apiErr.Retryable()
		}),
		retry.OnRetry(func(n uint, err error) {
			if n+1 >= c.maxRetries {
				// The budget is spent, no retry follows.
				return
			}
			c.log.WithFields(logrus.Fields{
				"endpoint":     label,
				"attempt":      n + 1,
				"max_attempts": c.maxRetries,
				"delay":        (c.retryBaseDelay << n).String(),
				"error":        err.Error(),
			}).Warn("wallet API request failed, retrying")
		}),
	)
	if err == nil {
		return nil
	}

	if apiErr, ok := AsAPIError(err); ok {
		return apiErr
	}

	// Cancellation during the backoff wait surfaces the raw context error.
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(c.timeout, err)
	}
	return newNetworkError(err)
}
