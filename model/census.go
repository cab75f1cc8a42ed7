package model

// Census counts the members of a fellowship by race.
type Census map[Race]int

func CensusOf(f Fellowship) Census {
	out := Census{}
	for _, c := range f {
		out[c.Race]++
	}
	return out
}

func (c Census) Count(r Race) int { return c[r] }

func (c Census) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Dominant returns the race with the most members. Ties go to the race
// declared first; an empty census returns RaceUnknown.
func (c Census) Dominant() Race {
	best := RaceUnknown
	bestCount := 0
	for _, r := range Races() {
		if c[r] > bestCount {
			best, bestCount = r, c[r]
		}
	}
	return best
}
