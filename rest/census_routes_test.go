package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testexamples "github.com/rudikone/TestExamples"
	dbmodel "github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/rest/data"
	"github.com/rudikone/TestExamples/rest/model"
)

func TestCensusHandlers(t *testing.T) {
	sc := &data.MockConnector{CachedCharacters: map[string]dbmodel.Character{}}
	for _, c := range dbmodel.TheFellowship() {
		c.ID = c.Name
		sc.CachedCharacters[c.ID] = c
	}

	t.Run("NoCensusYet", func(t *testing.T) {
		resp := makeGetCensus(sc).Run(context.TODO())
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Status())
	})
	t.Run("Schedule", func(t *testing.T) {
		resp := makeScheduleCensus(sc).Run(context.TODO())
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusAccepted, resp.Status())
		assert.Equal(t, model.APIScheduledJob{ID: "mock-census-0"}, resp.Data())
		assert.Equal(t, []string{"mock-census-0"}, sc.ScheduledJobs)
	})
	t.Run("Latest", func(t *testing.T) {
		resp := makeGetCensus(sc).Run(context.TODO())
		require.NotNil(t, resp)
		require.Equal(t, http.StatusOK, resp.Status())

		census, ok := resp.Data().(*model.APICensus)
		require.True(t, ok)
		assert.Equal(t, 9, census.Total)
		assert.Equal(t, 4, census.Races["Hobbit"])
		assert.Equal(t, "Hobbit", utility.FromStringPtr(census.Dominant))
		assert.Equal(t, "mock-census-0", utility.FromStringPtr(census.JobID))
	})
}

func TestStatusHandler(t *testing.T) {
	t.Run("WithoutEnvironment", func(t *testing.T) {
		resp := makeGetStatus(nil, nil).Factory().Run(context.TODO())
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusOK, resp.Status())

		status, ok := resp.Data().(model.APIStatus)
		require.True(t, ok)
		assert.Equal(t, testexamples.Version, status.Version)
		assert.Equal(t, testexamples.Identity(), status.Identity)
		assert.Equal(t, testexamples.BuildRevision, status.Revision)
		assert.Zero(t, status.Heartbeats)
		assert.Nil(t, status.Queue)
	})
	t.Run("WithQueue", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		env, err := testexamples.NewEnvironment(ctx, t.Name(), &testexamples.Configuration{})
		require.NoError(t, err)
		defer func() { assert.NoError(t, env.Close(ctx)) }()

		resp := makeGetStatus(env, nil).Run(ctx)
		require.NotNil(t, resp)
		status, ok := resp.Data().(model.APIStatus)
		require.True(t, ok)
		require.NotNil(t, status.Queue)
		assert.Zero(t, status.Queue.Pending)
	})
}
