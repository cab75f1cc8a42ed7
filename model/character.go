package model

import (
	"fmt"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/text"
)

// Character is a member, or a prospective member, of a fellowship.
type Character struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`
	Race Race   `json:"race" yaml:"race"`
}

// NewCharacter builds a character without an ID; the roster assigns one on
// recruitment.
func NewCharacter(name string, age int, race Race) Character {
	return Character{Name: name, Age: age, Race: race}
}

// AgeError reports an age outside of the accepted range.
type AgeError struct {
	Age int
}

func (e *AgeError) Error() string { return fmt.Sprintf("wrong age %d", e.Age) }

// IsAgeError reports whether the cause of err is an AgeError.
func IsAgeError(err error) bool {
	_, ok := errors.Cause(err).(*AgeError)
	return ok
}

// ValidateAge rejects negative ages.
func ValidateAge(age int) error {
	if age < 0 {
		return &AgeError{Age: age}
	}
	return nil
}

// Validate reports every problem with the character at once.
func (c Character) Validate() error {
	catcher := grip.NewBasicCatcher()

	catcher.NewWhen(text.IsBlank(c.Name), "character name must not be blank")
	catcher.Add(ValidateAge(c.Age))
	catcher.ErrorfWhen(!c.Race.IsValid(), "race %d is not valid", int(c.Race))

	return catcher.Resolve()
}

// Title is the display form used in logs and the CLI.
func (c Character) Title() string {
	return fmt.Sprintf("%s the %s (%d)", text.Capitalize(c.Name), c.Race, c.Age)
}

func (c Character) String() string { return c.Title() }
