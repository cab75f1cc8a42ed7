package model

import (
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/units"
)

// APICensus is the REST view of the most recent roster census.
type APICensus struct {
	JobID    *string        `json:"job_id"`
	Races    map[string]int `json:"races"`
	Total    int            `json:"total"`
	Dominant *string        `json:"dominant,omitempty"`
	TakenAt  time.Time      `json:"taken_at"`
}

// Import transforms a census report into an APICensus object.
func (a *APICensus) Import(i interface{}) error {
	var report *units.CensusReport
	switch r := i.(type) {
	case units.CensusReport:
		report = &r
	case *units.CensusReport:
		report = r
	default:
		return errors.Errorf("incorrect type %T when importing into APICensus", i)
	}
	if report == nil {
		return errors.New("cannot import a nil census report")
	}

	a.JobID = utility.ToStringPtr(report.JobID)
	a.Races = make(map[string]int, len(report.Census))
	for race, count := range report.Census {
		a.Races[race.String()] = count
	}
	a.Total = report.Total
	a.Dominant = nil
	if report.Dominant.IsValid() {
		a.Dominant = utility.ToStringPtr(report.Dominant.String())
	}
	a.TakenAt = report.TakenAt.UTC()

	return nil
}

// Export is not supported; censuses are only ever produced by the census
// job.
func (a *APICensus) Export() (interface{}, error) {
	return nil, errors.New("not implemented")
}
