package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	dbmodel "github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/rest/data"
	"github.com/rudikone/TestExamples/rest/model"
)

const raceParam = "race"

///////////////////////////////////////////////////////////////////////////////
//
// GET /characters?race=<race>

type charactersListHandler struct {
	race *dbmodel.Race
	sc   data.Connector
}

func makeListCharacters(sc data.Connector) gimlet.RouteHandler {
	return &charactersListHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new charactersListHandler.
func (h *charactersListHandler) Factory() gimlet.RouteHandler {
	return &charactersListHandler{
		sc: h.sc,
	}
}

// Parse reads the optional race filter from the query string.
func (h *charactersListHandler) Parse(_ context.Context, r *http.Request) error {
	vals := r.URL.Query()
	if len(vals[raceParam]) == 0 {
		return nil
	}

	race, err := dbmodel.ParseRace(vals.Get(raceParam))
	if err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}
	h.race = &race

	return nil
}

// Run calls FindCharacters and returns the members.
func (h *charactersListHandler) Run(ctx context.Context) gimlet.Responder {
	characters, err := h.sc.FindCharacters(ctx, h.race)
	if err != nil {
		err = errors.Wrap(err, "problem listing characters")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/characters",
		})
		return gimlet.MakeJSONErrorResponder(unwrapResponse(err))
	}

	return gimlet.NewJSONResponse(characters)
}

///////////////////////////////////////////////////////////////////////////////
//
// POST /characters

type characterRecruitHandler struct {
	character model.APICharacter
	sc        data.Connector
}

func makeRecruitCharacter(sc data.Connector) gimlet.RouteHandler {
	return &characterRecruitHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new characterRecruitHandler.
func (h *characterRecruitHandler) Factory() gimlet.RouteHandler {
	return &characterRecruitHandler{
		sc: h.sc,
	}
}

// Parse decodes the character from the request body.
func (h *characterRecruitHandler) Parse(_ context.Context, r *http.Request) error {
	if err := gimlet.GetJSON(r.Body, &h.character); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "problem parsing character").Error(),
		}
	}

	return nil
}

// Run calls RecruitCharacter and returns the new member.
func (h *characterRecruitHandler) Run(ctx context.Context) gimlet.Responder {
	character, err := h.sc.RecruitCharacter(ctx, h.character)
	if err != nil {
		err = errors.Wrap(err, "problem recruiting character")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "POST",
			"route":   "/characters",
		})
		return gimlet.MakeJSONErrorResponder(unwrapResponse(err))
	}

	resp := gimlet.NewJSONResponse(character)
	if err = resp.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "problem setting response status"))
	}

	return resp
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /characters/{id}

type characterGetByIDHandler struct {
	id string
	sc data.Connector
}

func makeGetCharacter(sc data.Connector) gimlet.RouteHandler {
	return &characterGetByIDHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new characterGetByIDHandler.
func (h *characterGetByIDHandler) Factory() gimlet.RouteHandler {
	return &characterGetByIDHandler{
		sc: h.sc,
	}
}

// Parse fetches the id from the http request.
func (h *characterGetByIDHandler) Parse(_ context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

// Run calls FindCharacterByID and returns the member.
func (h *characterGetByIDHandler) Run(ctx context.Context) gimlet.Responder {
	character, err := h.sc.FindCharacterByID(ctx, h.id)
	if err != nil {
		err = errors.Wrapf(err, "problem getting character by id '%s'", h.id)
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/characters/{id}",
			"id":      h.id,
		})
		return gimlet.MakeJSONErrorResponder(unwrapResponse(err))
	}

	return gimlet.NewJSONResponse(character)
}

///////////////////////////////////////////////////////////////////////////////
//
// DELETE /characters/{id}

type characterDismissHandler struct {
	id string
	sc data.Connector
}

func makeDismissCharacter(sc data.Connector) gimlet.RouteHandler {
	return &characterDismissHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new characterDismissHandler.
func (h *characterDismissHandler) Factory() gimlet.RouteHandler {
	return &characterDismissHandler{
		sc: h.sc,
	}
}

// Parse fetches the id from the http request.
func (h *characterDismissHandler) Parse(_ context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

// Run calls DismissCharacterByID and returns the former member.
func (h *characterDismissHandler) Run(ctx context.Context) gimlet.Responder {
	character, err := h.sc.DismissCharacterByID(ctx, h.id)
	if err != nil {
		err = errors.Wrapf(err, "problem dismissing character '%s'", h.id)
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "DELETE",
			"route":   "/characters/{id}",
			"id":      h.id,
		})
		return gimlet.MakeJSONErrorResponder(unwrapResponse(err))
	}

	return gimlet.NewJSONResponse(character)
}

// unwrapResponse returns the error response at the cause of err, keeping
// the wrapped message, so that the status code survives wrapping.
func unwrapResponse(err error) error {
	if errResp, ok := errors.Cause(err).(gimlet.ErrorResponse); ok {
		return gimlet.ErrorResponse{
			StatusCode: errResp.StatusCode,
			Message:    err.Error(),
		}
	}
	return gimlet.ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("%s", err),
	}
}
