/*
Package roster manages the members of the fellowship: recruiting and
dismissing characters, and answering questions about who is in it.
*/
package roster

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/model"
)

// DuplicateNameError reports an attempt to recruit a second character with
// an existing name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "a character named '" + e.Name + "' is already a member"
}

func IsDuplicateName(err error) bool {
	_, ok := errors.Cause(err).(*DuplicateNameError)
	return ok
}

// DuplicateIDError reports an attempt to recruit a character under an ID
// that is already taken.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return "a character with id '" + e.ID + "' is already a member"
}

func IsDuplicateID(err error) bool {
	_, ok := errors.Cause(err).(*DuplicateIDError)
	return ok
}

// ValidationError wraps the problems found with a character.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid character: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// Service is the roster's business logic. The notifier is optional.
//
// Recruit and Dismiss hold Lock while they read and then modify the store.
// Services sharing a store must share the lock; when Lock is nil the
// service uses a lock of its own.
type Service struct {
	Store    Store
	Notifier Notifier
	Lock     sync.Locker

	mu sync.Mutex
}

func NewService(store Store, notifier Notifier) (*Service, error) {
	if store == nil {
		return nil, errors.New("must specify a store")
	}
	return &Service{Store: store, Notifier: notifier}, nil
}

func (s *Service) locker() sync.Locker {
	if s.Lock != nil {
		return s.Lock
	}
	return &s.mu
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Errorf("id '%s' is not a valid uuid", id)
	}
	return nil
}

// Recruit validates and stores a new member, assigning an ID when the
// character has none. A supplied ID must be a UUID not held by another
// member. Names are unique, ignoring case.
func (s *Service) Recruit(ctx context.Context, c model.Character) (model.Character, error) {
	if err := c.Validate(); err != nil {
		return model.Character{}, &ValidationError{Err: err}
	}
	if c.ID != "" {
		if err := ValidateID(c.ID); err != nil {
			return model.Character{}, &ValidationError{Err: err}
		}
	}

	lock := s.locker()
	lock.Lock()
	defer lock.Unlock()

	members, err := s.Store.List(ctx)
	if err != nil {
		return model.Character{}, errors.Wrap(err, "listing members")
	}
	for _, m := range members {
		if c.ID != "" && m.ID == c.ID {
			return model.Character{}, &DuplicateIDError{ID: c.ID}
		}
		if strings.EqualFold(m.Name, c.Name) {
			return model.Character{}, &DuplicateNameError{Name: c.Name}
		}
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if err = s.Store.Put(ctx, c); err != nil {
		return model.Character{}, errors.Wrapf(err, "storing '%s'", c.Name)
	}

	grip.Info(message.Fields{
		"message": "recruited character",
		"id":      c.ID,
		"name":    c.Name,
		"race":    c.Race.String(),
	})

	if s.Notifier != nil {
		grip.Warning(message.WrapError(s.Notifier.Joined(ctx, c), message.Fields{
			"message": "problem notifying about new member",
			"id":      c.ID,
		}))
	}

	return c, nil
}

// Dismiss removes a member and returns it.
func (s *Service) Dismiss(ctx context.Context, id string) (model.Character, error) {
	lock := s.locker()
	lock.Lock()
	defer lock.Unlock()

	c, err := s.Store.Get(ctx, id)
	if err != nil {
		return model.Character{}, errors.Wrapf(err, "finding '%s'", id)
	}

	if err = s.Store.Delete(ctx, id); err != nil {
		return model.Character{}, errors.Wrapf(err, "deleting '%s'", id)
	}

	grip.Info(message.Fields{
		"message": "dismissed character",
		"id":      c.ID,
		"name":    c.Name,
	})

	if s.Notifier != nil {
		grip.Warning(message.WrapError(s.Notifier.Left(ctx, c), message.Fields{
			"message": "problem notifying about departed member",
			"id":      c.ID,
		}))
	}

	return c, nil
}

// Member returns the member with the given ID.
func (s *Service) Member(ctx context.Context, id string) (model.Character, error) {
	c, err := s.Store.Get(ctx, id)
	return c, errors.Wrapf(err, "finding '%s'", id)
}

// Members returns the members sorted by name, limited to one race when race
// is not nil.
func (s *Service) Members(ctx context.Context, race *model.Race) (model.Fellowship, error) {
	members, err := s.Store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing members")
	}

	if race != nil {
		members = members.Filter(func(c model.Character) bool { return c.Race == *race })
	}

	return members.SortBy(model.Chain(model.ByName, model.ByAge)), nil
}

// Census counts the current members by race.
func (s *Service) Census(ctx context.Context) (model.Census, error) {
	members, err := s.Store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing members")
	}
	return model.CensusOf(members), nil
}
