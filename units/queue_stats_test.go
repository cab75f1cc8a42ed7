package units

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testexamples "github.com/rudikone/TestExamples"
)

func TestQueueStatsCollector(t *testing.T) {
	t.Run("ID", func(t *testing.T) {
		j := NewQueueStatsCollector(nil, "now")
		assert.Equal(t, "testexamples.queue.queue-stats-collector.now", j.ID())
		assert.Equal(t, queueStatsCollectorJobName, j.Type().Name)
	})
	t.Run("RecordsStats", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		env := newTestEnvironment(t, nil)

		j := NewQueueStatsCollector(env, "direct").(*queueStatsCollector)
		j.Run(ctx)

		assert.True(t, j.Status().Completed)
		assert.NoError(t, j.Error())
		assert.Equal(t, env.GetQueue().Stats(ctx).Total, j.Stats.Total)
	})
	t.Run("RunsOnQueue", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		env := newTestEnvironment(t, nil)

		j := NewQueueStatsCollector(env, "queued")
		require.NoError(t, env.GetQueue().Put(ctx, j))
		waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
		defer waitCancel()
		require.True(t, waitForQueue(waitCtx, env.GetQueue()))

		stored, ok := env.GetQueue().Get(ctx, j.ID())
		require.True(t, ok)
		assert.True(t, stored.Status().Completed)
		assert.NoError(t, stored.Error())
	})
	t.Run("WithoutQueue", func(t *testing.T) {
		j := NewQueueStatsCollector(testexamples.GetEnvironment(), "none")
		j.Run(context.Background())
		assert.Error(t, j.Error())
	})
}
