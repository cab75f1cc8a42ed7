package model

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Fellowship is an ordered group of characters.
type Fellowship []Character

// Names returns the names of the members in order.
func (f Fellowship) Names() []string {
	out := make([]string, 0, len(f))
	for _, c := range f {
		out = append(out, c.Name)
	}
	return out
}

// Contains reports whether a member equals c field by field.
func (f Fellowship) Contains(c Character) bool {
	return f.ContainsUsing(func(a, b Character) int {
		if a == b {
			return 0
		}
		return 1
	}, c)
}

// ContainsUsing reports whether a member is equivalent to c under the
// comparator.
func (f Fellowship) ContainsUsing(cmp Comparator, c Character) bool {
	for _, member := range f {
		if cmp(member, c) == 0 {
			return true
		}
	}
	return false
}

// ContainsOnly reports whether the fellowship holds exactly the given
// characters, in any order, with the same multiplicity.
func (f Fellowship) ContainsOnly(cs ...Character) bool {
	if len(f) != len(cs) {
		return false
	}

	counts := make(map[Character]int, len(cs))
	for _, c := range cs {
		counts[c]++
	}
	for _, member := range f {
		if counts[member] == 0 {
			return false
		}
		counts[member]--
	}
	return true
}

// Filter returns the members accepted by the predicate, keeping order.
func (f Fellowship) Filter(pred func(Character) bool) Fellowship {
	out := Fellowship{}
	for _, c := range f {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

func (f Fellowship) AllMatch(pred func(Character) bool) bool {
	for _, c := range f {
		if !pred(c) {
			return false
		}
	}
	return true
}

func (f Fellowship) AnyMatch(pred func(Character) bool) bool {
	for _, c := range f {
		if pred(c) {
			return true
		}
	}
	return false
}

func (f Fellowship) NoneMatch(pred func(Character) bool) bool { return !f.AnyMatch(pred) }

// SortBy returns a sorted copy; members that compare equal keep their
// relative order.
func (f Fellowship) SortBy(cmp Comparator) Fellowship {
	out := make(Fellowship, len(f))
	copy(out, f)
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	return out
}

// FilteredOn keeps the members whose property at path satisfies expected.
// The expected value may be a Matcher; any other value is compared for
// equality.
func (f Fellowship) FilteredOn(path string, expected interface{}) (Fellowship, error) {
	matcher, ok := expected.(Matcher)
	if !ok {
		matcher = Equal(expected)
	}

	out := Fellowship{}
	for _, c := range f {
		value, err := Property(c, path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if matcher.Matches(value) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Property resolves a dotted property path on the character. Supported
// paths are id, name, age, race, race.name and race.constant.
func Property(c Character, path string) (interface{}, error) {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "id":
		return c.ID, nil
	case "name":
		return c.Name, nil
	case "age":
		return c.Age, nil
	case "race":
		return c.Race, nil
	case "race.name":
		return c.Race.Name(), nil
	case "race.constant":
		return c.Race.Constant(), nil
	default:
		return nil, errors.Errorf("character has no property '%s'", path)
	}
}

// Matcher tests a property value.
type Matcher interface {
	Matches(interface{}) bool
	fmt.Stringer
}

type matcherFunc struct {
	desc string
	fn   func(interface{}) bool
}

func (m matcherFunc) Matches(v interface{}) bool { return m.fn(v) }
func (m matcherFunc) String() string             { return m.desc }

func Equal(expected interface{}) Matcher {
	return matcherFunc{
		desc: fmt.Sprintf("equal to %v", expected),
		fn:   func(v interface{}) bool { return reflect.DeepEqual(v, expected) },
	}
}

// Not matches values different from expected.
func Not(expected interface{}) Matcher {
	return matcherFunc{
		desc: fmt.Sprintf("not %v", expected),
		fn:   func(v interface{}) bool { return !reflect.DeepEqual(v, expected) },
	}
}

func In(values ...interface{}) Matcher {
	return matcherFunc{
		desc: fmt.Sprintf("in %v", values),
		fn:   func(v interface{}) bool { return containsValue(values, v) },
	}
}

func NotIn(values ...interface{}) Matcher {
	return matcherFunc{
		desc: fmt.Sprintf("not in %v", values),
		fn:   func(v interface{}) bool { return !containsValue(values, v) },
	}
}

func containsValue(values []interface{}, v interface{}) bool {
	for _, candidate := range values {
		if reflect.DeepEqual(candidate, v) {
			return true
		}
	}
	return false
}
