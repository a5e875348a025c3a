package limitio

import (
	"context"

	"golang.org/x/time/rate"
)

// waitFor blocks until the limiter allows n bytes, asking for at most one burst at a time
func waitFor(limiter *rate.Limiter, n int) error {
	for n > 0 {
		chunk := n
		if chunk > limiter.Burst() {
			chunk = limiter.Burst()
		}
		if err := limiter.WaitN(context.Background(), chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
