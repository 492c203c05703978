package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardbinder/internal/config"
)

func TestNone_NeverWaits(t *testing.T) {
	t.Parallel()

	s := None()
	start := time.Now()
	require.NoError(t, s.Wait(context.Background(), Write))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWait_HonoursDelay(t *testing.T) {
	t.Parallel()

	s := New(config.LatencyConfig{Write: 20 * time.Millisecond})
	start := time.Now()
	require.NoError(t, s.Wait(context.Background(), Write))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWait_Cancelled(t *testing.T) {
	t.Parallel()

	s := New(config.LatencyConfig{Read: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Wait(ctx, Read)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWait_ZeroDelayStillReportsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, None().Wait(ctx, Settle), context.Canceled)
}

func TestDelay_NilSimulator(t *testing.T) {
	t.Parallel()

	var s *Simulator
	assert.Zero(t, s.Delay(Read))
}
