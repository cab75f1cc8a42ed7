package rest

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/rest/data"
	"github.com/rudikone/TestExamples/rest/model"
)

///////////////////////////////////////////////////////////////////////////////
//
// GET /census

type censusGetHandler struct {
	sc data.Connector
}

func makeGetCensus(sc data.Connector) gimlet.RouteHandler {
	return &censusGetHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new censusGetHandler.
func (h *censusGetHandler) Factory() gimlet.RouteHandler {
	return &censusGetHandler{
		sc: h.sc,
	}
}

// Parse is a noop.
func (h *censusGetHandler) Parse(_ context.Context, _ *http.Request) error { return nil }

// Run returns the latest census.
func (h *censusGetHandler) Run(ctx context.Context) gimlet.Responder {
	census, err := h.sc.GetLatestCensus(ctx)
	if err != nil {
		err = errors.Wrap(err, "problem getting census")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/census",
		})
		return gimlet.MakeJSONErrorResponder(unwrapResponse(err))
	}

	return gimlet.NewJSONResponse(census)
}

///////////////////////////////////////////////////////////////////////////////
//
// POST /census

type censusScheduleHandler struct {
	sc data.Connector
}

func makeScheduleCensus(sc data.Connector) gimlet.RouteHandler {
	return &censusScheduleHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new censusScheduleHandler.
func (h *censusScheduleHandler) Factory() gimlet.RouteHandler {
	return &censusScheduleHandler{
		sc: h.sc,
	}
}

// Parse is a noop.
func (h *censusScheduleHandler) Parse(_ context.Context, _ *http.Request) error { return nil }

// Run schedules a census and returns the id of its job.
func (h *censusScheduleHandler) Run(ctx context.Context) gimlet.Responder {
	id, err := h.sc.ScheduleCensus(ctx)
	if err != nil {
		err = errors.Wrap(err, "problem scheduling census")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "POST",
			"route":   "/census",
		})
		return gimlet.MakeJSONErrorResponder(unwrapResponse(err))
	}

	resp := gimlet.NewJSONResponse(model.APIScheduledJob{ID: id})
	if err = resp.SetStatus(http.StatusAccepted); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "problem setting response status"))
	}

	return resp
}
