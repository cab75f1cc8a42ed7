package data

import (
	"context"
	"fmt"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/google/uuid"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	testexamples "github.com/rudikone/TestExamples"
	dbmodel "github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/rest/model"
	"github.com/rudikone/TestExamples/roster"
	"github.com/rudikone/TestExamples/units"
)

/////////////////////////////
// DBConnector Implementation
/////////////////////////////

// FindCharacters lists the members stored in the environment's bucket.
func (dbc *DBConnector) FindCharacters(ctx context.Context, race *dbmodel.Race) ([]model.APICharacter, error) {
	service, err := dbc.roster()
	if err != nil {
		return nil, err
	}

	members, err := service.Members(ctx, race)
	if err != nil {
		return nil, newErrorResponse(err, "problem listing characters")
	}

	return importMembers(members)
}

// FindCharacterByID finds a member in the environment's bucket.
func (dbc *DBConnector) FindCharacterByID(ctx context.Context, id string) (*model.APICharacter, error) {
	service, err := dbc.roster()
	if err != nil {
		return nil, err
	}

	c, err := service.Member(ctx, id)
	if err != nil {
		return nil, newErrorResponse(err, fmt.Sprintf("character with id '%s'", id))
	}

	return importCharacter(c)
}

// RecruitCharacter stores a new member in the environment's bucket. Each
// change to the roster schedules a new census.
func (dbc *DBConnector) RecruitCharacter(ctx context.Context, apiChar model.APICharacter) (*model.APICharacter, error) {
	c, err := exportCharacter(apiChar)
	if err != nil {
		return nil, err
	}

	service, err := dbc.roster()
	if err != nil {
		return nil, err
	}

	c, err = service.Recruit(ctx, c)
	if err != nil {
		return nil, newErrorResponse(err, "problem recruiting character")
	}

	return importCharacter(c)
}

// DismissCharacterByID removes a member from the environment's bucket.
func (dbc *DBConnector) DismissCharacterByID(ctx context.Context, id string) (*model.APICharacter, error) {
	service, err := dbc.roster()
	if err != nil {
		return nil, err
	}

	c, err := service.Dismiss(ctx, id)
	if err != nil {
		return nil, newErrorResponse(err, fmt.Sprintf("problem dismissing character with id '%s'", id))
	}

	return importCharacter(c)
}

// GetLatestCensus returns the census most recently published in the
// environment cache.
func (dbc *DBConnector) GetLatestCensus(_ context.Context) (*model.APICensus, error) {
	report, ok := units.LatestCensus(dbc.env)
	if !ok {
		return nil, errNoCensus
	}

	return importCensus(report)
}

// ScheduleCensus adds a census job to the environment's queue.
func (dbc *DBConnector) ScheduleCensus(ctx context.Context) (string, error) {
	return scheduleCensus(ctx, dbc.env)
}

func scheduleCensus(ctx context.Context, env testexamples.Environment) (string, error) {
	q := env.GetQueue()
	if q == nil {
		return "", gimlet.ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "no queue is configured",
		}
	}

	j := units.NewCensusJob(env, uuid.New().String())
	if err := q.Put(ctx, j); err != nil {
		return "", gimlet.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    errors.Wrap(err, "problem scheduling census").Error(),
		}
	}

	return j.ID(), nil
}

// censusNotifier schedules a census whenever the roster changes.
type censusNotifier struct {
	env testexamples.Environment
}

func (n *censusNotifier) Joined(ctx context.Context, c dbmodel.Character) error {
	return n.schedule(ctx, "joined", c)
}

func (n *censusNotifier) Left(ctx context.Context, c dbmodel.Character) error {
	return n.schedule(ctx, "left", c)
}

func (n *censusNotifier) schedule(ctx context.Context, event string, c dbmodel.Character) error {
	id, err := scheduleCensus(ctx, n.env)
	if err != nil {
		return errors.Wrapf(err, "scheduling census after '%s' %s", c.Name, event)
	}

	grip.Debug(message.Fields{
		"message": "scheduled census",
		"event":   event,
		"id":      c.ID,
		"job":     id,
	})
	return nil
}

var errNoCensus = gimlet.ErrorResponse{
	StatusCode: http.StatusServiceUnavailable,
	Message:    "no census has been taken yet",
}

func exportCharacter(apiChar model.APICharacter) (dbmodel.Character, error) {
	c, err := apiChar.ExportCharacter()
	if err != nil {
		return dbmodel.Character{}, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "invalid character").Error(),
		}
	}
	return c, nil
}

func importCharacter(c dbmodel.Character) (*model.APICharacter, error) {
	apiChar := &model.APICharacter{}
	if err := apiChar.Import(c); err != nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "corrupt data",
		}
	}
	return apiChar, nil
}

func importMembers(members dbmodel.Fellowship) ([]model.APICharacter, error) {
	out, err := model.ImportFellowship(members)
	if err != nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "corrupt data",
		}
	}
	return out, nil
}

func importCensus(report *units.CensusReport) (*model.APICensus, error) {
	apiCensus := &model.APICensus{}
	if err := apiCensus.Import(report); err != nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "corrupt data",
		}
	}
	return apiCensus, nil
}

var _ roster.Notifier = &censusNotifier{}
