package client

import (
	"context"
	"errors"
	"time"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

const (
	// DefaultMaxAttempts is the poll attempt budget.
	DefaultMaxAttempts = 30

	// DefaultPollInterval is the fixed delay between attempts. With
	// the default budget the observation window is about 150 seconds.
	DefaultPollInterval = 5 * time.Second
)

// SleepFunc waits for the given duration or until the context is
// cancelled. Injected so tests run without wall-clock waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poller repeatedly queries the result of one work identifier until it
// appears or the attempt budget is exhausted.
type Poller struct {
	client      *Client
	maxAttempts int
	interval    time.Duration
	sleep       SleepFunc
}

// PollerOption is a functional option for configuring a Poller.
type PollerOption func(*Poller)

// WithMaxAttempts sets the attempt budget.
func WithMaxAttempts(n int) PollerOption {
	return func(p *Poller) {
		p.maxAttempts = n
	}
}

// WithInterval sets the fixed delay between attempts.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.interval = d
	}
}

// WithSleep substitutes the inter-attempt sleep.
func WithSleep(fn SleepFunc) PollerOption {
	return func(p *Poller) {
		p.sleep = fn
	}
}

// NewPoller creates a poller with the default 30x5s budget.
func NewPoller(c *Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client:      c,
		maxAttempts: DefaultMaxAttempts,
		interval:    DefaultPollInterval,
		sleep:       contextSleep,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Wait polls until a terminal outcome:
//
//   - a successful result returns the Label;
//   - "not ready" consumes one attempt and retries after the interval;
//   - any other error is a hard failure and ends polling immediately;
//   - an exhausted budget returns logopulse.ErrPollTimeout.
//
// There is no sleep after the final attempt.
func (p *Poller) Wait(ctx context.Context, imageID string) (*logopulse.Label, error) {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		label, err := p.client.GetResult(ctx, imageID)
		if err == nil {
			return label, nil
		}
		if !errors.Is(err, logopulse.ErrResultNotReady) {
			return nil, err
		}
		if attempt == p.maxAttempts {
			break
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, err
		}
	}
	return nil, logopulse.ErrPollTimeout
}
