package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a token-per-minute budget for LLM API calls. The
// budget refills fully at the start of each one-minute window.
type TokenLimiter struct {
	mu        sync.Mutex
	limit     int
	remaining int
	resetAt   time.Time
}

// NewTokenLimiter creates a limiter with the given tokens-per-minute budget.
func NewTokenLimiter(tokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		limit:     tokensPerMinute,
		remaining: tokensPerMinute,
		resetAt:   time.Now().Add(time.Minute),
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return l.remaining
}

// Wait consumes the given number of tokens, blocking until the window resets
// if the current budget is exhausted.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.refill()
		if tokens <= l.remaining || tokens > l.limit {
			l.remaining -= tokens
			if l.remaining < 0 {
				l.remaining = 0
			}
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.resetAt)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// refill resets the budget when the window has elapsed. Callers must hold mu.
func (l *TokenLimiter) refill() {
	if time.Now().After(l.resetAt) {
		l.remaining = l.limit
		l.resetAt = time.Now().Add(time.Minute)
	}
}
