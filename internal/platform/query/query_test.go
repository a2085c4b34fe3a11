package query

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type frame struct {
	team   string
	week   int
	score  int
	points float64
	played time.Time
	input  bool
}

func (f frame) Field(column string) (any, error) {
	switch column {
	case "team":
		return f.team, nil
	case "week":
		return f.week, nil
	case "score":
		return f.score, nil
	case "points":
		return f.points, nil
	case "played":
		return f.played, nil
	case "input":
		return f.input, nil
	default:
		return nil, fmt.Errorf("unknown column %q", column)
	}
}

func sampleFrames() []frame {
	day := func(d int) time.Time { return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC) }
	return []frame{
		{team: "alley-cats", week: 1, score: 214, points: 1, played: day(1), input: true},
		{team: "pin-pushers", week: 1, score: 189, points: 0, played: day(1), input: true},
		{team: "alley-cats", week: 2, score: 176, points: 0.5, played: day(8), input: true},
		{team: "split-happens", week: 2, score: 203, points: 1, played: day(8), input: false},
	}
}

func TestFilterAndsConditions(t *testing.T) {
	t.Parallel()

	got, err := Filter(sampleFrames(), Eq("team", "alley-cats"), Ge("score", 200))
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].week != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterOperators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cond Condition
		want int
	}{
		{"ne", Ne("team", "alley-cats"), 2},
		{"lt", Lt("score", 190), 2},
		{"le", Le("week", 1), 2},
		{"gt", Gt("points", 0.5), 2},
		{"in", In("team", "pin-pushers", "split-happens"), 2},
		{"not_in", NotIn("team", "alley-cats"), 2},
		{"contains", Contains("team", "push"), 1},
		{"startswith", StartsWith("team", "split"), 1},
		{"endswith", EndsWith("team", "cats"), 2},
		{"bool", Eq("input", false), 1},
		{"time", Lt("played", time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)), 2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Filter(sampleFrames(), tc.cond)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d rows, got %d", tc.want, len(got))
			}
		})
	}
}

func TestFilterUnknownOperator(t *testing.T) {
	t.Parallel()

	_, err := Filter(sampleFrames(), Condition{Column: "team", Op: "between", Value: "a"})
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}

	// The operator is checked before any record is read, so an empty input
	// still surfaces the configuration error.
	_, err = Filter([]frame{}, Condition{Column: "team", Op: "between", Value: "a"})
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator over zero records, got %v", err)
	}
}

func TestFilterUnknownColumn(t *testing.T) {
	t.Parallel()

	if _, err := Filter(sampleFrames(), Eq("handicap", 10)); err == nil {
		t.Fatal("expected an error for an unknown column")
	}
}

func TestFilterNotComparable(t *testing.T) {
	t.Parallel()

	_, err := Filter(sampleFrames(), Lt("team", 42))
	if !errors.Is(err, ErrNotComparable) {
		t.Fatalf("expected ErrNotComparable, got %v", err)
	}
}

func TestSelectProjectsColumns(t *testing.T) {
	t.Parallel()

	rows, err := Select(sampleFrames(), "team", "score")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if len(rows[0]) != 2 || rows[0]["team"] != "alley-cats" || rows[0]["score"] != 214 {
		t.Fatalf("unexpected projection: %+v", rows[0])
	}
}

func TestSortMultiKeyStable(t *testing.T) {
	t.Parallel()

	got, err := Sort(sampleFrames(), []string{"week", "score"}, []Direction{Asc, Desc})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}

	wantScores := []int{214, 189, 203, 176}
	for i, f := range got {
		if f.score != wantScores[i] {
			t.Fatalf("position %d: expected score %d, got %d", i, wantScores[i], f.score)
		}
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := sampleFrames()
	if _, err := Sort(in, []string{"score"}, nil); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if in[0].score != 214 {
		t.Fatalf("input slice was reordered: %+v", in[0])
	}
}

func TestSortUnknownDirection(t *testing.T) {
	t.Parallel()

	_, err := Sort(sampleFrames(), []string{"score"}, []Direction{"descending"})
	if !errors.Is(err, ErrUnknownDirection) {
		t.Fatalf("expected ErrUnknownDirection, got %v", err)
	}

	_, err = Sort([]frame{}, []string{"score"}, []Direction{""})
	if !errors.Is(err, ErrUnknownDirection) {
		t.Fatalf("expected ErrUnknownDirection over zero records, got %v", err)
	}
}

func TestLimit(t *testing.T) {
	t.Parallel()

	in := sampleFrames()
	if got := Limit(in, 2); len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got := Limit(in, -1); len(got) != len(in) {
		t.Fatalf("negative limit should keep all rows, got %d", len(got))
	}
	if got := Limit(in, 99); len(got) != len(in) {
		t.Fatalf("oversized limit should keep all rows, got %d", len(got))
	}
}
