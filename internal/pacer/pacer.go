// Package pacer throttles the importer between repositories.
package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next repository may be processed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Fixed pauses for a constant delay on every call.
type Fixed struct {
	Delay time.Duration
}

// Wait sleeps for the delay or until ctx is done.
func (f Fixed) Wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(f.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Limited allows at most perSecond calls per second, without bursts.
type Limited struct {
	limiter *rate.Limiter
}

// NewLimited creates a token-bucket pacer.
func NewLimited(perSecond float64) *Limited {
	return &Limited{limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// Wait blocks until a token is available.
func (l *Limited) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// None never waits.
type None struct{}

// Wait returns immediately.
func (None) Wait(ctx context.Context) error { return ctx.Err() }

// New picks Limited when perSecond is positive and Fixed otherwise.
func New(delay time.Duration, perSecond float64) Pacer {
	if perSecond > 0 {
		return NewLimited(perSecond)
	}
	return Fixed{Delay: delay}
}
