package utils

import (
	"context"
	"time"
)

// Wait espera d o hasta que se cancele ctx, lo que ocurra antes.
func Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Backoff duplica d sin pasar de max.
func Backoff(d, max time.Duration) time.Duration {
	if d *= 2; d > max {
		return max
	}
	return d
}
