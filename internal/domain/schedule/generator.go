package schedule

import (
	"errors"
	"fmt"
)

// ByeTeam is the synthetic placeholder injected when the roster size is odd.
// It never appears in generated pairs; the real team paired with it simply
// has no match that round.
const ByeTeam = "__bye__"

var ErrTooFewTeams = errors.New("schedule needs at least two teams")

// Pair is one fixture within a round. Home/Away only drives venue
// assignment; the scoring engine treats both sides symmetrically.
type Pair struct {
	Home string
	Away string
}

// Round is the set of fixtures played concurrently.
type Round struct {
	Number int
	Pairs  []Pair
}

// Schedule is an ordered round-robin fixture list.
type Schedule struct {
	Rounds []Round
}

// Generate builds a round-robin schedule with the circle method: the first
// team stays fixed while the rest rotate one slot per round, pairing slot i
// against slot n-1-i. Output is deterministic for a given team order. With
// doubleRound a second full cycle is appended with home and away swapped.
func Generate(teamIDs []string, doubleRound bool) (Schedule, error) {
	realTeams := 0
	for _, id := range teamIDs {
		if id != "" && id != ByeTeam {
			realTeams++
		}
	}
	if realTeams < 2 {
		return Schedule{}, fmt.Errorf("%w: got %d", ErrTooFewTeams, realTeams)
	}

	ring := make([]string, 0, len(teamIDs)+1)
	for _, id := range teamIDs {
		if id != "" && id != ByeTeam {
			ring = append(ring, id)
		}
	}
	if len(ring)%2 != 0 {
		ring = append(ring, ByeTeam)
	}

	n := len(ring)
	rounds := make([]Round, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := Round{Number: r + 1, Pairs: make([]Pair, 0, n/2)}
		for i := 0; i < n/2; i++ {
			a, b := ring[i], ring[n-1-i]
			if a == ByeTeam || b == ByeTeam {
				continue
			}
			// Alternate sides every other round so venues balance out.
			if r%2 == 1 {
				a, b = b, a
			}
			round.Pairs = append(round.Pairs, Pair{Home: a, Away: b})
		}
		rounds = append(rounds, round)
		rotate(ring)
	}

	if doubleRound {
		first := len(rounds)
		for i := 0; i < first; i++ {
			src := rounds[i]
			round := Round{Number: first + i + 1, Pairs: make([]Pair, 0, len(src.Pairs))}
			for _, p := range src.Pairs {
				round.Pairs = append(round.Pairs, Pair{Home: p.Away, Away: p.Home})
			}
			rounds = append(rounds, round)
		}
	}

	return Schedule{Rounds: rounds}, nil
}

// rotate keeps ring[0] fixed and shifts the remainder by one position.
func rotate(ring []string) {
	last := ring[len(ring)-1]
	copy(ring[2:], ring[1:len(ring)-1])
	ring[1] = last
}
