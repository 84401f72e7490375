package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out successive upstream calls inside a flex window. This is
// a self-imposed rate limit toward the fare API, not a performance knob:
// the per-date loop must stay sequential.
type Pacer interface {
	Wait(ctx context.Context) error
}

// ratePacer paces calls at a fixed interval using a token bucket of size 1.
type ratePacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer that allows one call per interval. The first
// Wait returns immediately; later calls block until the interval elapses.
func NewPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return noopPacer{}
	}
	return &ratePacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (p *ratePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// noopPacer is used when pacing is disabled (tests, single-date windows).
type noopPacer struct{}

func (noopPacer) Wait(context.Context) error { return nil }
