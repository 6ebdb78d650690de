package ratelimiter

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidConfig indicates an invalid bucket configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Store is the storage backend for bucket state.
type Store interface {
	// ConsumeTokens attempts to consume the given number of tokens for
	// key. Returns the remaining tokens (negative means the request
	// should be denied) and the next refill time.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset clears the rate limit state for key.
	Reset(ctx context.Context, key string) error
}
