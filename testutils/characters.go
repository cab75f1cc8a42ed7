// Package testutils generates random, optionally reproducible, roster data
// for tests.
package testutils

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/model"
)

const (
	minAge = 0
	maxAge = 3000
)

// Generator produces random characters. Generators built with the same
// non-zero seed produce the same sequence of characters.
type Generator struct {
	seed  int64
	faker *gofakeit.Faker
}

// NewGenerator builds a generator; a zero seed picks a random one.
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed, faker: gofakeit.New(seed)}
}

// SeedValue returns the seed the generator was built with.
func (g *Generator) SeedValue() int64 { return g.seed }

// CharacterOption customizes one field of a generated character.
type CharacterOption func(*Generator, *model.Character)

func WithName(name string) CharacterOption {
	return func(_ *Generator, c *model.Character) { c.Name = name }
}

func WithAge(age int) CharacterOption {
	return func(_ *Generator, c *model.Character) { c.Age = age }
}

// WithAgeBetween draws the age from the inclusive range.
func WithAgeBetween(min, max int) CharacterOption {
	return func(g *Generator, c *model.Character) { c.Age = g.faker.Number(min, max) }
}

func WithRace(race model.Race) CharacterOption {
	return func(_ *Generator, c *model.Character) { c.Race = race }
}

// WithRaceIn draws the race from the given races.
func WithRaceIn(races ...model.Race) CharacterOption {
	return func(g *Generator, c *model.Character) { c.Race = races[g.faker.Number(0, len(races)-1)] }
}

func WithID(id string) CharacterOption {
	return func(_ *Generator, c *model.Character) { c.ID = id }
}

// WithoutID leaves the ID empty, as for a character not yet recruited.
func WithoutID() CharacterOption {
	return func(_ *Generator, c *model.Character) { c.ID = "" }
}

// Character returns a valid random character, then applies the options in
// order.
func (g *Generator) Character(opts ...CharacterOption) model.Character {
	races := model.Races()
	c := model.Character{
		ID:   g.faker.UUID(),
		Name: g.faker.FirstName(),
		Age:  g.faker.Number(minAge, maxAge),
		Race: races[g.faker.Number(0, len(races)-1)],
	}

	for _, opt := range opts {
		opt(g, &c)
	}

	return c
}

// Fellowship returns n random characters with distinct names.
func (g *Generator) Fellowship(n int, opts ...CharacterOption) model.Fellowship {
	out := make(model.Fellowship, 0, n)
	seen := map[string]int{}
	for i := 0; i < n; i++ {
		c := g.Character(opts...)
		if count := seen[c.Name]; count > 0 {
			seen[c.Name]++
			c.Name = fmt.Sprintf("%s %d", c.Name, count+1)
		}
		seen[c.Name]++
		out = append(out, c)
	}
	return out
}

// Recruiter is anything that can take on new characters.
type Recruiter interface {
	Recruit(context.Context, model.Character) (model.Character, error)
}

// Seed recruits n random characters and returns them as stored.
func (g *Generator) Seed(ctx context.Context, r Recruiter, n int, opts ...CharacterOption) (model.Fellowship, error) {
	out := make(model.Fellowship, 0, n)
	for _, c := range g.Fellowship(n, opts...) {
		stored, err := r.Recruit(ctx, c)
		if err != nil {
			return nil, errors.Wrapf(err, "recruiting '%s'", c.Name)
		}
		out = append(out, stored)
	}
	return out, nil
}
