package client

import (
	"context"
	"sync"
	"time"

	"lifeupmcp/internal/apierr"
	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/types"
)

// HealthCheck probes GET /info up to attempts times, waiting delay between
// attempts. When every attempt fails it returns a SERVER_UNREACHABLE error.
// Cancelling ctx stops the wait early.
func (c *Client) HealthCheck(ctx context.Context, attempts int, delay time.Duration) (*types.UserInfo, error) {
	if attempts < 1 {
		attempts = 1
	}
	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		info, err := c.Info(ctx)
		if err == nil {
			logging.TransportDebug("health check ok on attempt %d/%d", attempt, attempts)
			return info, nil
		}
		last = err
		logging.TransportWarn("health check attempt %d/%d failed: %v", attempt, attempts, err)

		if attempt == attempts {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, apierr.Unreachable(attempt, ctx.Err())
		case <-t.C:
		}
	}
	return nil, apierr.Unreachable(attempts, last)
}

// HealthGate runs the health check before mutations until one succeeds. After
// that it lets every call through; later outages surface as classified
// transport errors.
type HealthGate struct {
	client   *Client
	attempts int
	delay    time.Duration

	mu      sync.Mutex
	healthy bool
}

// NewHealthGate creates a gate over c.
func NewHealthGate(c *Client, attempts int, delay time.Duration) *HealthGate {
	return &HealthGate{client: c, attempts: attempts, delay: delay}
}

// MarkHealthy records a successful check made elsewhere, e.g. at startup.
func (g *HealthGate) MarkHealthy() {
	g.mu.Lock()
	g.healthy = true
	g.mu.Unlock()
}

// Ensure returns nil once LifeUp has answered a health check.
func (g *HealthGate) Ensure(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.healthy {
		return nil
	}
	if _, err := g.client.HealthCheck(ctx, g.attempts, g.delay); err != nil {
		return err
	}
	g.healthy = true
	return nil
}
