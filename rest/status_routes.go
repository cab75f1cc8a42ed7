package rest

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"

	testexamples "github.com/rudikone/TestExamples"
	"github.com/rudikone/TestExamples/rest/model"
	"github.com/rudikone/TestExamples/units"
)

///////////////////////////////////////////////////////////////////////////////
//
// GET /status

type statusHandler struct {
	env    testexamples.Environment
	beacon *units.Beacon
}

func makeGetStatus(env testexamples.Environment, beacon *units.Beacon) gimlet.RouteHandler {
	return &statusHandler{
		env:    env,
		beacon: beacon,
	}
}

// Factory returns a pointer to a new statusHandler.
func (h *statusHandler) Factory() gimlet.RouteHandler {
	return &statusHandler{
		env:    h.env,
		beacon: h.beacon,
	}
}

// Parse is a noop.
func (h *statusHandler) Parse(_ context.Context, _ *http.Request) error { return nil }

// Run reports the build and liveness of the service.
func (h *statusHandler) Run(ctx context.Context) gimlet.Responder {
	status := model.APIStatus{
		Revision: testexamples.BuildRevision,
		Version:  testexamples.Version,
		Identity: testexamples.Identity(),
	}
	if h.beacon != nil {
		status.Heartbeats = h.beacon.Count()
	}

	if h.env != nil {
		if q := h.env.GetQueue(); q != nil {
			stats := q.Stats(ctx)
			status.Queue = &model.APIQueueStats{
				Running:   stats.Running,
				Pending:   stats.Pending,
				Completed: stats.Completed,
			}
		}
	}

	return gimlet.NewJSONResponse(status)
}
