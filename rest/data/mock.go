package data

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	dbmodel "github.com/rudikone/TestExamples/model"
	"github.com/rudikone/TestExamples/rest/model"
	"github.com/rudikone/TestExamples/roster"
	"github.com/rudikone/TestExamples/units"
)

// MockConnector implements Connector over in-memory state for use in
// handler tests. The cached fields may be seeded directly.
type MockConnector struct {
	CachedCharacters map[string]dbmodel.Character
	CachedCensus     *units.CensusReport
	ScheduledJobs    []string

	mu       sync.Mutex
	rosterMu sync.Mutex
}

///////////////////////////////
// MockConnector Implementation
///////////////////////////////

// FindCharacters lists the cached characters.
func (mc *MockConnector) FindCharacters(ctx context.Context, race *dbmodel.Race) ([]model.APICharacter, error) {
	members, err := mc.roster().Members(ctx, race)
	if err != nil {
		return nil, newErrorResponse(err, "problem listing characters")
	}

	return importMembers(members)
}

// FindCharacterByID finds a cached character.
func (mc *MockConnector) FindCharacterByID(ctx context.Context, id string) (*model.APICharacter, error) {
	c, err := mc.roster().Member(ctx, id)
	if err != nil {
		return nil, newErrorResponse(err, fmt.Sprintf("character with id '%s'", id))
	}

	return importCharacter(c)
}

// RecruitCharacter adds a character to the cache.
func (mc *MockConnector) RecruitCharacter(ctx context.Context, apiChar model.APICharacter) (*model.APICharacter, error) {
	c, err := exportCharacter(apiChar)
	if err != nil {
		return nil, err
	}

	c, err = mc.roster().Recruit(ctx, c)
	if err != nil {
		return nil, newErrorResponse(err, "problem recruiting character")
	}

	return importCharacter(c)
}

// DismissCharacterByID removes a character from the cache.
func (mc *MockConnector) DismissCharacterByID(ctx context.Context, id string) (*model.APICharacter, error) {
	c, err := mc.roster().Dismiss(ctx, id)
	if err != nil {
		return nil, newErrorResponse(err, fmt.Sprintf("problem dismissing character with id '%s'", id))
	}

	return importCharacter(c)
}

// GetLatestCensus returns the cached census.
func (mc *MockConnector) GetLatestCensus(_ context.Context) (*model.APICensus, error) {
	mc.mu.Lock()
	report := mc.CachedCensus
	mc.mu.Unlock()

	if report == nil {
		return nil, errNoCensus
	}

	return importCensus(report)
}

// ScheduleCensus takes the census synchronously and caches it.
func (mc *MockConnector) ScheduleCensus(ctx context.Context) (string, error) {
	census, err := mc.roster().Census(ctx)
	if err != nil {
		return "", newErrorResponse(err, "problem taking census")
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	id := fmt.Sprintf("mock-census-%d", len(mc.ScheduledJobs))
	mc.ScheduledJobs = append(mc.ScheduledJobs, id)
	mc.CachedCensus = &units.CensusReport{
		JobID:    id,
		Census:   census,
		Total:    census.Total(),
		Dominant: census.Dominant(),
		TakenAt:  time.Now(),
	}

	return id, nil
}

func (mc *MockConnector) roster() *roster.Service {
	return &roster.Service{Store: &mockStore{mc: mc}, Lock: &mc.rosterMu}
}

// mockStore is a roster.Store over the connector's cached characters.
type mockStore struct {
	mc *MockConnector
}

func (s *mockStore) Put(_ context.Context, c dbmodel.Character) error {
	s.mc.mu.Lock()
	defer s.mc.mu.Unlock()

	if s.mc.CachedCharacters == nil {
		s.mc.CachedCharacters = map[string]dbmodel.Character{}
	}
	s.mc.CachedCharacters[c.ID] = c
	return nil
}

func (s *mockStore) Get(_ context.Context, id string) (dbmodel.Character, error) {
	s.mc.mu.Lock()
	defer s.mc.mu.Unlock()

	c, ok := s.mc.CachedCharacters[id]
	if !ok {
		return dbmodel.Character{}, errors.Wrapf(roster.ErrNotFound, "character '%s'", id)
	}
	return c, nil
}

func (s *mockStore) Delete(_ context.Context, id string) error {
	s.mc.mu.Lock()
	defer s.mc.mu.Unlock()

	if _, ok := s.mc.CachedCharacters[id]; !ok {
		return errors.Wrapf(roster.ErrNotFound, "character '%s'", id)
	}
	delete(s.mc.CachedCharacters, id)
	return nil
}

func (s *mockStore) List(_ context.Context) (dbmodel.Fellowship, error) {
	s.mc.mu.Lock()
	defer s.mc.mu.Unlock()

	out := make(dbmodel.Fellowship, 0, len(s.mc.CachedCharacters))
	for _, c := range s.mc.CachedCharacters {
		out = append(out, c)
	}
	return out, nil
}
