// Package ratelimiter provides token-bucket rate limiting with an
// in-memory store and HTTP middleware, standing in for the per-IP
// request limiter in front of the API.
package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config defines the token bucket parameters.
type Config struct {
	Capacity       int           // Maximum tokens the bucket can hold (burst limit)
	RefillRate     int           // Tokens added per refill interval
	RefillInterval time.Duration // How often tokens are added
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result contains the outcome of a rate limit check.
type Result struct {
	Limit     int       // Bucket capacity
	Remaining int       // Tokens remaining; negative means denied
	ResetAt   time.Time // When tokens are next refilled
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before retrying; 0 if allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Bucket implements a token bucket rate limiter over a Store.
type Bucket struct {
	store  Store
	config Config
}

// NewBucket creates a token bucket rate limiter.
func NewBucket(store Store, config Config) (*Bucket, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, 1, b.config)
	if err != nil {
		return nil, err
	}
	return &Result{Limit: b.config.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}

// Reset clears the rate limit state for key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
