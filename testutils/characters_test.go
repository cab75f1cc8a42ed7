package testutils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudikone/TestExamples/model"
)

func TestGeneratorCharacter(t *testing.T) {
	g := NewGenerator(0)

	for i := 0; i < 100; i++ {
		c := g.Character()
		require.NoError(t, c.Validate())
		assert.NotEmpty(t, c.Name)
		assert.GreaterOrEqual(t, c.Age, minAge)
		assert.LessOrEqual(t, c.Age, maxAge)
		_, err := uuid.Parse(c.ID)
		assert.NoError(t, err, c.ID)
	}
}

func TestGeneratorOptions(t *testing.T) {
	g := NewGenerator(0)

	t.Run("SetFields", func(t *testing.T) {
		c := g.Character(WithName("Frodo"), WithAge(50), WithRace(model.Hobbit), WithoutID())
		assert.Equal(t, model.NewCharacter("Frodo", 50, model.Hobbit), c)
	})
	t.Run("AgeRange", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			c := g.Character(WithAgeBetween(18, 21))
			assert.True(t, c.Age >= 18 && c.Age <= 21, "age %d", c.Age)
		}
	})
	t.Run("RaceSubset", func(t *testing.T) {
		f := g.Fellowship(50, WithRaceIn(model.Elf, model.Dwarf))
		assert.True(t, f.AllMatch(func(c model.Character) bool {
			return c.Race == model.Elf || c.Race == model.Dwarf
		}))
	})
	t.Run("LaterOptionsWin", func(t *testing.T) {
		c := g.Character(WithRace(model.Orc), WithRace(model.Elf))
		assert.Equal(t, model.Elf, c.Race)
	})
}

func TestGeneratorFellowship(t *testing.T) {
	g := NewGenerator(0)

	f := g.Fellowship(200)
	require.Len(t, f, 200)

	names := map[string]bool{}
	for _, c := range f {
		assert.False(t, names[c.Name], "duplicate name %s", c.Name)
		names[c.Name] = true
	}

	assert.Empty(t, g.Fellowship(0))

	// a single name forces renaming
	same := g.Fellowship(3, WithName("Sam"))
	assert.Equal(t, []string{"Sam", "Sam 2", "Sam 3"}, same.Names())
}

func TestGeneratorSeed(t *testing.T) {
	first := NewGenerator(42)
	second := NewGenerator(42)

	assert.EqualValues(t, 42, first.SeedValue())
	assert.Equal(t, first.Fellowship(10), second.Fellowship(10))
	assert.NotEqual(t, NewGenerator(1).Fellowship(10), NewGenerator(2).Fellowship(10))
}

type recruiterFunc func(context.Context, model.Character) (model.Character, error)

func (f recruiterFunc) Recruit(ctx context.Context, c model.Character) (model.Character, error) {
	return f(ctx, c)
}

func TestGeneratorSeedRecruiter(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(7)

	t.Run("RecruitsAll", func(t *testing.T) {
		var recruited model.Fellowship
		r := recruiterFunc(func(_ context.Context, c model.Character) (model.Character, error) {
			c.ID = "stored-" + c.Name
			recruited = append(recruited, c)
			return c, nil
		})

		out, err := g.Seed(ctx, r, 5, WithoutID())
		require.NoError(t, err)
		assert.Equal(t, recruited, out)
		for _, c := range out {
			assert.Equal(t, "stored-"+c.Name, c.ID)
		}
	})
	t.Run("StopsOnError", func(t *testing.T) {
		calls := 0
		r := recruiterFunc(func(_ context.Context, c model.Character) (model.Character, error) {
			calls++
			if calls == 2 {
				return model.Character{}, errors.New("roster is full")
			}
			return c, nil
		})

		out, err := g.Seed(ctx, r, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "roster is full")
		assert.Nil(t, out)
		assert.Equal(t, 2, calls)
	})
}
