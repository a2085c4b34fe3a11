package schedule

import (
	"errors"
	"fmt"
	"testing"
)

func TestGenerateSingleRound(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c", "d", "e", "f"}
	sched, err := Generate(teams, false)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}

	if got, want := len(sched.Rounds), len(teams)-1; got != want {
		t.Fatalf("expected %d rounds, got %d", want, got)
	}

	seenPairs := map[string]int{}
	for _, round := range sched.Rounds {
		if got, want := len(round.Pairs), len(teams)/2; got != want {
			t.Fatalf("round %d: expected %d pairs, got %d", round.Number, want, got)
		}
		seenTeams := map[string]bool{}
		for _, p := range round.Pairs {
			if p.Home == p.Away {
				t.Fatalf("round %d: team %s paired with itself", round.Number, p.Home)
			}
			if seenTeams[p.Home] || seenTeams[p.Away] {
				t.Fatalf("round %d: a team plays twice", round.Number)
			}
			seenTeams[p.Home] = true
			seenTeams[p.Away] = true
			seenPairs[pairKey(p)]++
		}
	}

	// Every unordered pair meets exactly once per cycle.
	want := len(teams) * (len(teams) - 1) / 2
	if len(seenPairs) != want {
		t.Fatalf("expected %d distinct pairings, got %d", want, len(seenPairs))
	}
	for key, count := range seenPairs {
		if count != 1 {
			t.Fatalf("pairing %s occurs %d times", key, count)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	teams := []string{"alley-cats", "pin-pushers", "split-happens", "gutter-gang"}
	first, err := Generate(teams, false)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	second, err := Generate(teams, false)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}

	if len(first.Rounds) != len(second.Rounds) {
		t.Fatalf("round counts differ: %d vs %d", len(first.Rounds), len(second.Rounds))
	}
	for i := range first.Rounds {
		for j := range first.Rounds[i].Pairs {
			if first.Rounds[i].Pairs[j] != second.Rounds[i].Pairs[j] {
				t.Fatalf("round %d pair %d differs between runs", i+1, j)
			}
		}
	}
}

func TestGenerateOddTeamsGetsBye(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c", "d", "e"}
	sched, err := Generate(teams, false)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}

	// Five teams pad to six slots, so five rounds with two fixtures each.
	if got := len(sched.Rounds); got != 5 {
		t.Fatalf("expected 5 rounds, got %d", got)
	}

	byes := map[string]int{}
	for _, round := range sched.Rounds {
		if got := len(round.Pairs); got != 2 {
			t.Fatalf("round %d: expected 2 pairs, got %d", round.Number, got)
		}
		playing := map[string]bool{}
		for _, p := range round.Pairs {
			if p.Home == ByeTeam || p.Away == ByeTeam {
				t.Fatalf("round %d: bye placeholder leaked into a pair", round.Number)
			}
			playing[p.Home] = true
			playing[p.Away] = true
		}
		for _, team := range teams {
			if !playing[team] {
				byes[team]++
			}
		}
	}

	for _, team := range teams {
		if byes[team] != 1 {
			t.Fatalf("team %s has %d byes, expected 1", team, byes[team])
		}
	}
}

func TestGenerateDoubleRound(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c", "d"}
	sched, err := Generate(teams, true)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}

	if got, want := len(sched.Rounds), 2*(len(teams)-1); got != want {
		t.Fatalf("expected %d rounds, got %d", want, got)
	}

	half := len(sched.Rounds) / 2
	for i := 0; i < half; i++ {
		forward := sched.Rounds[i]
		back := sched.Rounds[half+i]
		if back.Number != half+i+1 {
			t.Fatalf("return round has number %d, expected %d", back.Number, half+i+1)
		}
		for j, p := range forward.Pairs {
			mirrored := back.Pairs[j]
			if mirrored.Home != p.Away || mirrored.Away != p.Home {
				t.Fatalf("round %d pair %d is not the mirror of round %d", back.Number, j, forward.Number)
			}
		}
	}
}

func TestGenerateTooFewTeams(t *testing.T) {
	t.Parallel()

	for _, teams := range [][]string{nil, {"solo"}, {"", ByeTeam}} {
		if _, err := Generate(teams, false); !errors.Is(err, ErrTooFewTeams) {
			t.Fatalf("teams %v: expected ErrTooFewTeams, got %v", teams, err)
		}
	}
}

func pairKey(p Pair) string {
	if p.Home < p.Away {
		return fmt.Sprintf("%s|%s", p.Home, p.Away)
	}
	return fmt.Sprintf("%s|%s", p.Away, p.Home)
}
