package roster

import (
	"context"

	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/model"
)

// ErrNotFound is the cause of errors for characters missing from a store.
var ErrNotFound = errors.New("character not found")

// IsNotFound reports whether err was caused by a missing character.
func IsNotFound(err error) bool { return errors.Cause(err) == ErrNotFound }

// Store persists characters by ID.
type Store interface {
	// Put inserts or replaces the character with the same ID.
	Put(context.Context, model.Character) error
	// Get returns the character with the given ID, or an error whose
	// cause is ErrNotFound.
	Get(context.Context, string) (model.Character, error)
	// Delete removes the character with the given ID, or returns an
	// error whose cause is ErrNotFound.
	Delete(context.Context, string) error
	// List returns every stored character in no particular order.
	List(context.Context) (model.Fellowship, error)
}

// Notifier is told about changes to the roster.
type Notifier interface {
	Joined(context.Context, model.Character) error
	Left(context.Context, model.Character) error
}
