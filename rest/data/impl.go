package data

import (
	"net/http"
	"sync"

	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"

	testexamples "github.com/rudikone/TestExamples"
	"github.com/rudikone/TestExamples/roster"
)

// DBConnector is a struct that implements all of the methods which connect to
// the roster stored in the environment's bucket. These methods abstract the
// link between the service and the API layers, allowing for changes in the
// service architecture without forcing changes to the API.
type DBConnector struct {
	env testexamples.Environment
}

// CreateNewDBConnector returns a connector backed by the given environment.
func CreateNewDBConnector(env testexamples.Environment) Connector {
	return &DBConnector{
		env: env,
	}
}

func (dbc *DBConnector) roster() (*roster.Service, error) {
	bucket := dbc.env.GetBucket()
	if bucket == nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "roster storage is not configured",
		}
	}

	store, err := roster.NewBucketStore(bucket)
	if err != nil {
		return nil, newErrorResponse(err, "problem opening roster")
	}

	service, err := roster.NewService(store, &censusNotifier{env: dbc.env})
	if err != nil {
		return nil, newErrorResponse(err, "problem opening roster")
	}
	service.Lock = rosterLock(dbc.env)

	return service, nil
}

// rosterLock returns the lock shared by every connector using the
// environment, or nil when the environment has no cache.
func rosterLock(env testexamples.Environment) sync.Locker {
	cache := env.GetCache()
	if cache == nil {
		return nil
	}

	cache.PutNew(testexamples.RosterLockCacheKey, &sync.Mutex{})
	value, _ := cache.Get(testexamples.RosterLockCacheKey)
	lock, _ := value.(sync.Locker)
	return lock
}

// newErrorResponse converts roster errors into responses with a matching
// status code.
func newErrorResponse(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(gimlet.ErrorResponse); ok {
		return err
	}

	status := http.StatusInternalServerError
	switch {
	case roster.IsValidation(err):
		status = http.StatusBadRequest
	case roster.IsDuplicateName(err), roster.IsDuplicateID(err):
		status = http.StatusConflict
	case roster.IsNotFound(err):
		status = http.StatusNotFound
	}

	return gimlet.ErrorResponse{
		StatusCode: status,
		Message:    errors.Wrap(err, msg).Error(),
	}
}
