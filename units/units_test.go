package units

import (
	"context"
	"testing"
	"time"

	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testexamples "github.com/rudikone/TestExamples"
	"github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/roster"
)

// newTestEnvironment builds an environment with a temporary bucket and a
// running local queue, closed when the test ends.
func newTestEnvironment(t *testing.T, conf *testexamples.Configuration) testexamples.Environment {
	ctx, cancel := context.WithCancel(context.Background())
	if conf == nil {
		conf = &testexamples.Configuration{}
	}
	env, err := testexamples.NewEnvironment(ctx, t.Name(), conf)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, env.Close(context.Background()))
		cancel()
	})

	return env
}

func newTestService(t *testing.T, env testexamples.Environment) *roster.Service {
	store, err := roster.NewBucketStore(env.GetBucket())
	require.NoError(t, err)
	service, err := roster.NewService(store, nil)
	require.NoError(t, err)
	return service
}

func TestAllRegisteredUnitsAreRemoteSafe(t *testing.T) {
	assert := assert.New(t)

	for id := range registry.JobTypeNames() {
		grip.Infoln("testing job is remote ready:", id)
		factory, err := registry.GetJobFactory(id)
		assert.NoError(err)
		assert.NotNil(factory)
		job := factory()

		assert.NotNil(job)

		assert.Equal(id, job.Type().Name)

		for _, f := range []amboy.Format{amboy.JSON, amboy.BSON} {
			assert.NotPanics(func() {
				dbjob, err := registry.MakeJobInterchange(job, f)

				assert.NoError(err)
				assert.NotNil(dbjob)
				assert.NotNil(dbjob.Dependency)
				assert.Equal(id, dbjob.Type)
			}, id)
		}
	}
}

type failingStore struct{}

func (failingStore) Put(context.Context, model.Character) error { return errors.New("store is down") }
func (failingStore) Get(context.Context, string) (model.Character, error) {
	return model.Character{}, errors.New("store is down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("store is down") }
func (failingStore) List(context.Context) (model.Fellowship, error) {
	return nil, errors.New("store is down")
}

// waitForQueue blocks until every job in the queue is complete or the
// context ends.
func waitForQueue(ctx context.Context, q amboy.Queue) bool {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if q.Stats(ctx).IsComplete() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}
