package units

import (
	"context"
	"time"

	"github.com/mongodb/amboy"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	testexamples "github.com/rudikone/TestExamples"
)

const tsFormat = "2006-01-02.15-04-05"

// StartCrons schedules the periodic census and queue stats jobs on the
// environment's queue. The schedule stops when the context is canceled.
func StartCrons(ctx context.Context, env testexamples.Environment) error {
	if env == nil {
		return errors.New("must specify an environment")
	}

	q := env.GetQueue()
	if q == nil {
		return errors.New("environment has no queue")
	}

	conf := env.GetConf()
	if conf == nil {
		return errors.New("environment has no configuration")
	}

	opts := amboy.QueueOperationConfig{
		ContinueOnError: true,
		LogErrors:       true,
	}

	grip.Info(message.Fields{
		"message":  "starting background cron jobs",
		"interval": conf.CensusInterval.String(),
		"started":  q.Info().Started,
		"stats":    q.Stats(ctx),
	})

	interval := conf.CensusInterval
	amboy.IntervalQueueOperation(ctx, q, interval, time.Now(), opts, func(ctx context.Context, queue amboy.Queue) error {
		ts := time.Now().Truncate(interval).Format(tsFormat)
		return queue.Put(ctx, NewCensusJob(env, ts))
	})
	amboy.IntervalQueueOperation(ctx, q, interval, time.Now(), opts, func(ctx context.Context, queue amboy.Queue) error {
		ts := time.Now().Truncate(interval).Format(tsFormat)
		return queue.Put(ctx, NewQueueStatsCollector(env, ts))
	})

	return nil
}
