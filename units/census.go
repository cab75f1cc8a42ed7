package units

import (
	"context"
	"fmt"
	"time"

	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/dependency"
	"github.com/mongodb/amboy/job"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	testexamples "github.com/rudikone/TestExamples"
	"github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/roster"
)

const censusJobName = "census"

// CensusReport is the value the census job publishes into the environment
// cache.
type CensusReport struct {
	JobID    string       `json:"job_id"`
	Census   model.Census `json:"census"`
	Total    int          `json:"total"`
	Dominant model.Race   `json:"dominant,omitempty"`
	TakenAt  time.Time    `json:"taken_at"`
}

// LatestCensus returns the most recently published census report.
func LatestCensus(env testexamples.Environment) (*CensusReport, bool) {
	if env == nil || env.GetCache() == nil {
		return nil, false
	}

	value, ok := env.GetCache().Get(testexamples.CensusCacheKey)
	if !ok {
		return nil, false
	}

	report, ok := value.(*CensusReport)
	return report, ok
}

type censusJob struct {
	job.Base `bson:"metadata" json:"metadata" yaml:"metadata"`
	Report   *CensusReport `bson:"report" json:"report" yaml:"report"`

	env   testexamples.Environment
	store roster.Store
}

func init() {
	registry.AddJobType(censusJobName, func() amboy.Job { return makeCensusJob() })
}

func makeCensusJob() *censusJob {
	j := &censusJob{
		Base: job.Base{
			JobType: amboy.JobType{
				Name:    censusJobName,
				Version: 1,
			},
		},
	}
	j.SetDependency(dependency.NewAlways())
	return j
}

// NewCensusJob counts the roster and publishes the result in the
// environment cache. The suffix makes the job id unique.
func NewCensusJob(env testexamples.Environment, suffix string) amboy.Job {
	j := makeCensusJob()
	j.env = env
	j.SetID(fmt.Sprintf("%s.%s.%s", testexamples.QueueName, censusJobName, suffix))
	return j
}

func (j *censusJob) Run(ctx context.Context) {
	defer j.MarkComplete()

	if j.env == nil {
		j.env = testexamples.GetEnvironment()
	}

	if j.store == nil {
		bucket := j.env.GetBucket()
		if bucket == nil {
			j.AddError(errors.New("environment has no roster bucket"))
			return
		}

		var err error
		j.store, err = roster.NewBucketStore(bucket)
		if err != nil {
			j.AddError(errors.WithStack(err))
			return
		}
	}

	service, err := roster.NewService(j.store, nil)
	if err != nil {
		j.AddError(errors.WithStack(err))
		return
	}

	census, err := service.Census(ctx)
	if err != nil {
		j.AddError(errors.Wrap(err, "problem taking census"))
		grip.Error(message.WrapError(err, message.Fields{
			"message": "census failed",
			"job":     j.ID(),
		}))
		return
	}

	j.Report = &CensusReport{
		JobID:    j.ID(),
		Census:   census,
		Total:    census.Total(),
		Dominant: census.Dominant(),
		TakenAt:  time.Now(),
	}
	j.env.GetCache().Put(testexamples.CensusCacheKey, j.Report)

	grip.Info(message.Fields{
		"message":  "published census",
		"job":      j.ID(),
		"total":    j.Report.Total,
		"dominant": j.Report.Dominant.String(),
	})
}
