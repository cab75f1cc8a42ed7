package model

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Race is the people a character belongs to.
type Race int

const (
	RaceUnknown Race = iota
	Hobbit
	Man
	Maia
	Dwarf
	Elf
	Orc
)

var raceNames = map[Race]string{
	Hobbit: "Hobbit",
	Man:    "Man",
	Maia:   "Maia",
	Dwarf:  "Dwarf",
	Elf:    "Elf",
	Orc:    "Orc",
}

var raceConstants = map[Race]string{
	Hobbit: "HOBBIT",
	Man:    "MAN",
	Maia:   "MAIA",
	Dwarf:  "DWARF",
	Elf:    "ELF",
	Orc:    "ORC",
}

// Races returns every valid race in declaration order.
func Races() []Race { return []Race{Hobbit, Man, Maia, Dwarf, Elf, Orc} }

// String returns the display name of the race.
func (r Race) String() string {
	if name, ok := raceNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Name returns the display name; it is the "race.name" property.
func (r Race) Name() string { return r.String() }

// Constant returns the upper case identifier of the race.
func (r Race) Constant() string { return raceConstants[r] }

func (r Race) IsValid() bool {
	_, ok := raceNames[r]
	return ok
}

// ParseRace accepts either the display name or the constant name of a race,
// ignoring case.
func ParseRace(in string) (Race, error) {
	in = strings.TrimSpace(in)
	for _, r := range Races() {
		if strings.EqualFold(in, raceNames[r]) || strings.EqualFold(in, raceConstants[r]) {
			return r, nil
		}
	}

	return RaceUnknown, errors.Errorf("'%s' is not a valid race", in)
}

func (r Race) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, errors.Errorf("cannot marshal invalid race %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Race) UnmarshalText(text []byte) error {
	parsed, err := ParseRace(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*r = parsed
	return nil
}

func (r Race) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (r *Race) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Wrap(err, "race must be a string")
	}
	return r.UnmarshalText([]byte(name))
}

func (r Race) MarshalYAML() (interface{}, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func (r *Race) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return errors.Wrap(err, "race must be a string")
	}
	return r.UnmarshalText([]byte(name))
}
