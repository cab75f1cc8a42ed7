package model

import (
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"

	dbmodel "github.com/rudikone/TestExamples/model"
)

// APICharacter describes a fellowship member as it is read and written by
// the REST API. Races are exchanged by display name.
type APICharacter struct {
	ID   *string `json:"id,omitempty"`
	Name *string `json:"name"`
	Age  *int    `json:"age"`
	Race *string `json:"race"`
}

// Import transforms a Character object into an APICharacter object.
func (a *APICharacter) Import(i interface{}) error {
	switch c := i.(type) {
	case dbmodel.Character:
		a.importCharacter(c)
	case *dbmodel.Character:
		if c == nil {
			return errors.New("cannot import a nil character")
		}
		a.importCharacter(*c)
	default:
		return errors.Errorf("incorrect type %T when importing into APICharacter", i)
	}

	return nil
}

func (a *APICharacter) importCharacter(c dbmodel.Character) {
	if c.ID != "" {
		a.ID = utility.ToStringPtr(c.ID)
	}
	a.Name = utility.ToStringPtr(c.Name)
	a.Age = utility.ToIntPtr(c.Age)
	a.Race = utility.ToStringPtr(c.Race.String())
}

// Export returns the dbmodel.Character described by the API model. Name, age
// and race are required; the race may be given either by display name or by
// constant name.
func (a *APICharacter) Export() (interface{}, error) {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(a.Name == nil, "character name is required")
	catcher.NewWhen(a.Age == nil, "character age is required")
	catcher.NewWhen(a.Race == nil, "character race is required")
	if catcher.HasErrors() {
		return nil, catcher.Resolve()
	}

	race, err := dbmodel.ParseRace(utility.FromStringPtr(a.Race))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return dbmodel.Character{
		ID:   utility.FromStringPtr(a.ID),
		Name: utility.FromStringPtr(a.Name),
		Age:  utility.FromIntPtr(a.Age),
		Race: race,
	}, nil
}

// ExportCharacter is Export with the concrete return type.
func (a *APICharacter) ExportCharacter() (dbmodel.Character, error) {
	out, err := a.Export()
	if err != nil {
		return dbmodel.Character{}, err
	}
	return out.(dbmodel.Character), nil
}

// ImportFellowship converts every member of the fellowship.
func ImportFellowship(f dbmodel.Fellowship) ([]APICharacter, error) {
	out := make([]APICharacter, 0, len(f))
	for _, c := range f {
		apiChar := APICharacter{}
		if err := apiChar.Import(c); err != nil {
			return nil, errors.Wrapf(err, "importing character '%s'", c.ID)
		}
		out = append(out, apiChar)
	}
	return out, nil
}
