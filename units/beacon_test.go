package units

import (
	"context"
	"testing"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBeacon(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	t.Run("CountsUntilStopped", func(t *testing.T) {
		b := NewBeacon(time.Millisecond)
		require.NoError(t, b.Start(context.Background()))
		assert.True(t, b.Running())

		assert.Eventually(t, func() bool { return b.Count() >= 5 }, time.Second, time.Millisecond)

		b.Stop()
		assert.False(t, b.Running())

		stoppedAt := b.Count()
		assert.Never(t, func() bool { return b.Count() != stoppedAt }, 50*time.Millisecond, 5*time.Millisecond)
	})
	t.Run("ReachesCountWithRetry", func(t *testing.T) {
		b := NewBeacon(time.Millisecond)
		require.NoError(t, b.Start(context.Background()))
		defer b.Stop()

		require.NoError(t, utility.Retry(context.Background(), func() (bool, error) {
			if count := b.Count(); count < 10 {
				return true, errors.Errorf("beacon at %d ticks", count)
			}
			return false, nil
		}, utility.RetryOptions{
			MaxAttempts: 50,
			MinDelay:    5 * time.Millisecond,
			MaxDelay:    50 * time.Millisecond,
		}))
	})
	t.Run("ReportsProgress", func(t *testing.T) {
		b := NewBeacon(time.Millisecond)
		require.NoError(t, b.Start(context.Background()))
		defer b.Stop()

		start := b.Count()
		assert.EventuallyWithT(t, func(c *assert.CollectT) {
			assert.True(c, b.Running())
			assert.Greater(c, b.Count(), start+2)
		}, time.Second, 5*time.Millisecond)
	})
	t.Run("RejectsDoubleStart", func(t *testing.T) {
		b := NewBeacon(time.Millisecond)
		require.NoError(t, b.Start(context.Background()))
		defer b.Stop()

		assert.Error(t, b.Start(context.Background()))
	})
	t.Run("RestartsAfterStop", func(t *testing.T) {
		b := NewBeacon(time.Millisecond)
		require.NoError(t, b.Start(context.Background()))
		b.Stop()
		require.NoError(t, b.Start(context.Background()))
		assert.True(t, b.Running())
		b.Stop()
	})
	t.Run("StopsWithContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		b := NewBeacon(time.Millisecond)
		require.NoError(t, b.Start(ctx))

		cancel()
		assert.Eventually(t, func() bool { return !b.Running() }, time.Second, time.Millisecond)
		b.Stop()
	})
	t.Run("InvalidInterval", func(t *testing.T) {
		b := NewBeacon(0)
		assert.Error(t, b.Start(context.Background()))
		assert.False(t, b.Running())
		b.Stop()
	})
}
