package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestRaceNames(t *testing.T) {
	assert.Equal(t, []Race{Hobbit, Man, Maia, Dwarf, Elf, Orc}, Races())
	for _, r := range Races() {
		assert.True(t, r.IsValid())
		assert.NotEqual(t, "Unknown", r.String())
		assert.Equal(t, r.String(), r.Name())
	}
	assert.Equal(t, "Dwarf", Dwarf.String())
	assert.Equal(t, "DWARF", Dwarf.Constant())
	assert.False(t, RaceUnknown.IsValid())
	assert.Equal(t, "Unknown", Race(42).String())
}

func TestParseRace(t *testing.T) {
	for input, expected := range map[string]Race{
		"Hobbit":  Hobbit,
		"HOBBIT":  Hobbit,
		"hobbit":  Hobbit,
		" elf ":   Elf,
		"maia":    Maia,
		"DwArF":   Dwarf,
		"ORC":     Orc,
		"man":     Man,
		"Unknown": RaceUnknown,
		"ent":     RaceUnknown,
		"":        RaceUnknown,
	} {
		r, err := ParseRace(input)
		if expected == RaceUnknown {
			assert.Error(t, err, input)
			continue
		}
		require.NoError(t, err, input)
		assert.Equal(t, expected, r, input)
	}
}

func TestRaceEncoding(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		data, err := json.Marshal(map[string]Race{"race": Elf})
		require.NoError(t, err)
		assert.JSONEq(t, `{"race": "Elf"}`, string(data))

		var out struct {
			Race Race `json:"race"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"race": "DWARF"}`), &out))
		assert.Equal(t, Dwarf, out.Race)

		assert.Error(t, json.Unmarshal([]byte(`{"race": "Ent"}`), &out))
		assert.Error(t, json.Unmarshal([]byte(`{"race": 3}`), &out))

		_, err = json.Marshal(RaceUnknown)
		assert.Error(t, err)
	})
	t.Run("JSONMapKeys", func(t *testing.T) {
		data, err := json.Marshal(Census{Hobbit: 4, Man: 2})
		require.NoError(t, err)
		assert.JSONEq(t, `{"Hobbit": 4, "Man": 2}`, string(data))

		out := Census{}
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, Census{Hobbit: 4, Man: 2}, out)
	})
	t.Run("YAML", func(t *testing.T) {
		data, err := yaml.Marshal(NewCharacter("Gimli", 139, Dwarf))
		require.NoError(t, err)
		assert.Contains(t, string(data), "race: Dwarf")

		var out Character
		require.NoError(t, yaml.Unmarshal([]byte("name: Legolas\nage: 2931\nrace: elf\n"), &out))
		assert.Equal(t, NewCharacter("Legolas", 2931, Elf), out)

		assert.Error(t, yaml.Unmarshal([]byte("race: ent\n"), &out))
	})
}
