package time

import (
	"context"
	"time"

	"github.com/shoppro/storefront/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider port with wall-clock time
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// FixedTimeProvider pins Now to a constant instant. Used in tests where
// prorated pricing depends on the clock.
type FixedTimeProvider struct {
	Instant time.Time
}

// NewFixedTimeProvider creates a provider pinned to the given instant
func NewFixedTimeProvider(instant time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{Instant: instant}
}

// Now returns the pinned instant
func (p *FixedTimeProvider) Now() time.Time {
	return p.Instant
}

// Since returns the elapsed time relative to the pinned instant
func (p *FixedTimeProvider) Since(t time.Time) time.Duration {
	return p.Instant.Sub(t)
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
