package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUptimeSince(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, 25*time.Second, uptimeSince(now.Add(-25*time.Second), now))
	assert.Equal(t, time.Duration(0), uptimeSince(time.Time{}, now))
	assert.Equal(t, time.Duration(0), uptimeSince(now.Add(time.Minute), now), "creation in the future")
}

func TestSleepContext(t *testing.T) {
	start := time.Now()
	assert.NoError(t, SleepContext(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start = time.Now()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
