package units

import (
	"context"
	"fmt"

	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/dependency"
	"github.com/mongodb/amboy/job"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	testexamples "github.com/rudikone/TestExamples"
)

const queueStatsCollectorJobName = "queue-stats-collector"

func init() {
	registry.AddJobType(queueStatsCollectorJobName,
		func() amboy.Job { return makeQueueStatsCollector() })
}

type queueStatsCollector struct {
	Stats    amboy.QueueStats `bson:"stats" json:"stats" yaml:"stats"`
	job.Base `bson:"job_base" json:"job_base" yaml:"job_base"`
	env      testexamples.Environment
}

// NewQueueStatsCollector logs the stats of the queue registered in the
// environment.
func NewQueueStatsCollector(env testexamples.Environment, id string) amboy.Job {
	j := makeQueueStatsCollector()
	j.env = env
	j.SetID(fmt.Sprintf("%s.%s.%s", testexamples.QueueName, queueStatsCollectorJobName, id))
	return j
}

func makeQueueStatsCollector() *queueStatsCollector {
	j := &queueStatsCollector{
		Base: job.Base{
			JobType: amboy.JobType{
				Name:    queueStatsCollectorJobName,
				Version: 0,
			},
		},
	}

	j.SetDependency(dependency.NewAlways())
	return j
}

func (j *queueStatsCollector) Run(ctx context.Context) {
	defer j.MarkComplete()

	if j.env == nil {
		j.env = testexamples.GetEnvironment()
	}

	q := j.env.GetQueue()
	if q == nil || !q.Info().Started {
		j.AddError(errors.New("environment has no running queue"))
		return
	}

	j.Stats = q.Stats(ctx)
	grip.Info(message.Fields{
		"message": "queue stats",
		"job":     j.ID(),
		"stats":   j.Stats,
	})
}
