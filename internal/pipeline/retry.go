package pipeline

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/hvalle/blogforge/internal/genai"
	"github.com/hvalle/blogforge/internal/sanity"
)

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var genErr *genai.RetryableError
	if errors.As(err, &genErr) {
		return true
	}
	var storeErr *sanity.RetryableError
	return errors.As(err, &storeErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3
