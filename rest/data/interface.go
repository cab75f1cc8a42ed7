package data

import (
	"context"

	dbmodel "github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/rest/model"
)

// Connector abstracts the link between the roster and the API layer,
// allowing for changes in the service architecture without forcing changes
// to the API. Errors are returned as gimlet.ErrorResponse values that carry
// the HTTP status for the failure.
type Connector interface {
	////////////
	// Characters
	////////////
	// FindCharacters returns the members sorted by name, limited to the
	// given race when it is not nil.
	FindCharacters(context.Context, *dbmodel.Race) ([]model.APICharacter, error)
	// FindCharacterByID returns the member with the given id.
	FindCharacterByID(context.Context, string) (*model.APICharacter, error)
	// RecruitCharacter validates and adds a new member, returning it with
	// its assigned id.
	RecruitCharacter(context.Context, model.APICharacter) (*model.APICharacter, error)
	// DismissCharacterByID removes the member with the given id and
	// returns it.
	DismissCharacterByID(context.Context, string) (*model.APICharacter, error)

	////////
	// Census
	////////
	// GetLatestCensus returns the most recently published census.
	GetLatestCensus(context.Context) (*model.APICensus, error)
	// ScheduleCensus requests a new census and returns the id of the job
	// that will take it.
	ScheduleCensus(context.Context) (string, error)
}
