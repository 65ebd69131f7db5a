package service

import (
	"context"
	"time"
)

// runProgress advances a counter by step every interval until it reaches 100,
// reporting each value to fn. It returns ctx.Err() if ctx ends first.
func runProgress(ctx context.Context, step int, interval time.Duration, fn ProgressFunc) error {
	if step <= 0 {
		step = 1
	}
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	percent := 0
	for percent < 100 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			percent += step
			if percent > 100 {
				percent = 100
			}
			if fn != nil {
				fn(percent)
			}
		}
	}
	return nil
}
