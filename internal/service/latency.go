package service

import (
	"context"
	"math/rand/v2"
	"time"
)

// SimulateLatency blocks for a random duration in [0, maxDelay] to stand in for
// slow downstream work. It returns early with ctx.Err() if ctx is done.
func SimulateLatency(ctx context.Context, maxDelay time.Duration) (time.Duration, error) {
	if maxDelay <= 0 {
		return 0, ctx.Err()
	}
	d := rand.N(maxDelay + 1)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return d, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
