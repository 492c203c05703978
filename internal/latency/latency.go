// Package latency emulates network round trips with timer-based waits.
package latency

import (
	"context"
	"time"

	"github.com/youruser/cardbinder/internal/config"
)

// Kind selects which configured delay applies.
type Kind int

const (
	// Read is paid by a cache miss on a user collection.
	Read Kind = iota
	// Write is paid before every mutation.
	Write
	// System is paid by a cache miss on the system card pool.
	System
	// Settle is paid after materializing a deck's cards.
	Settle
	// Refresh is paid by a background refresh before it runs.
	Refresh
)

// Simulator waits for the delay configured per Kind.
type Simulator struct {
	delays map[Kind]time.Duration
}

// New builds a Simulator from configuration.
func New(cfg config.LatencyConfig) *Simulator {
	return &Simulator{delays: map[Kind]time.Duration{
		Read:    cfg.Read,
		Write:   cfg.Write,
		System:  cfg.System,
		Settle:  cfg.Settle,
		Refresh: cfg.Refresh,
	}}
}

// None returns a Simulator that never waits.
func None() *Simulator {
	return &Simulator{delays: map[Kind]time.Duration{}}
}

// Delay reports the configured delay for k.
func (s *Simulator) Delay(k Kind) time.Duration {
	if s == nil {
		return 0
	}
	return s.delays[k]
}

// Wait blocks for the delay of kind k or until ctx is done.
func (s *Simulator) Wait(ctx context.Context, k Kind) error {
	d := s.Delay(k)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
