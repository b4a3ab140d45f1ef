package clock

import (
	"context"
	"time"
)

// Sleeper suspends the calling goroutine between polls or retry attempts.
// Injectable so that timing-dependent loops are deterministic in tests.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Real sleeps on a timer, waking early if the context is cancelled
type Real struct{}

func (Real) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
