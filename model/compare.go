package model

import "strings"

// Comparator orders two characters, returning a negative number, zero or a
// positive number.
type Comparator func(a, b Character) int

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func ByName(a, b Character) int { return strings.Compare(a.Name, b.Name) }
func ByAge(a, b Character) int  { return compareInts(a.Age, b.Age) }
func ByRace(a, b Character) int { return compareInts(int(a.Race), int(b.Race)) }

// Chain applies the comparators in order, returning the first non-zero
// result.
func Chain(cmps ...Comparator) Comparator {
	return func(a, b Character) int {
		for _, cmp := range cmps {
			if out := cmp(a, b); out != 0 {
				return out
			}
		}
		return 0
	}
}

// Reverse inverts the order of a comparator.
func Reverse(cmp Comparator) Comparator {
	return func(a, b Character) int { return cmp(b, a) }
}

// Equivalent builds an equality check under the comparator.
func Equivalent(cmp Comparator) func(a, b Character) bool {
	return func(a, b Character) bool { return cmp(a, b) == 0 }
}
