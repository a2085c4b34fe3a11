package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strikelane/bowling-league/internal/domain/result"
	"github.com/strikelane/bowling-league/internal/domain/roster"
)

func inputRow(team, opponent, player string, position, score int) result.Row {
	return result.Row{
		Season:         "2025/26",
		Week:           1,
		Date:           time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		League:         "city-league",
		PlayersPerTeam: 4,
		Location:       "Kegelbahn Mitte",
		RoundNumber:    1,
		MatchNumber:    1,
		Team:           team,
		Position:       result.IntPtr(position),
		PlayerName:     player,
		Opponent:       opponent,
		Score:          score,
		InputData:      true,
	}
}

func duelRows(homeScores, awayScores []int) []result.Row {
	rows := make([]result.Row, 0, len(homeScores)+len(awayScores))
	for i, score := range homeScores {
		rows = append(rows, inputRow("alley-cats", "pin-pushers", "Home Player", i, score))
	}
	for i, score := range awayScores {
		rows = append(rows, inputRow("pin-pushers", "alley-cats", "Away Player", i, score))
	}
	return rows
}

func TestScoreMatchDuelsAndTeamTotals(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 0, nil)
	individual, totals, err := svc.ScoreMatch(duelRows(
		[]int{220, 200, 190, 180},
		[]int{210, 200, 195, 185},
	))
	if err != nil {
		t.Fatalf("score match: %v", err)
	}

	if len(individual) != 8 {
		t.Fatalf("expected 8 individual rows, got %d", len(individual))
	}

	points := map[string]float64{}
	for _, row := range individual {
		points[row.Team] += row.Points
		if !row.InputData || row.ComputedData {
			t.Fatalf("individual row lost its input flags: %+v", row)
		}
	}
	if points["alley-cats"] != 1.5 || points["pin-pushers"] != 2.5 {
		t.Fatalf("unexpected duel points: %+v", points)
	}

	if len(totals) != 2 {
		t.Fatalf("expected 2 team-total rows, got %d", len(totals))
	}
	for _, row := range totals {
		if row.Score != 790 {
			t.Fatalf("team %s: expected total 790, got %d", row.Team, row.Score)
		}
		if row.Points != 1 {
			t.Fatalf("team %s: expected tie point 1, got %v", row.Team, row.Points)
		}
		if row.PlayerName != result.TeamTotalPlayerName {
			t.Fatalf("unexpected team row player name %q", row.PlayerName)
		}
		if row.InputData || !row.ComputedData {
			t.Fatalf("team row flags are wrong: %+v", row)
		}
		if row.Position != nil || row.PlayerID != nil {
			t.Fatalf("team row carries player fields: %+v", row)
		}
	}
}

func TestScoreMatchTeamWin(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 0, nil)
	_, totals, err := svc.ScoreMatch(duelRows([]int{200, 200}, []int{180, 190}))
	if err != nil {
		t.Fatalf("score match: %v", err)
	}

	byTeam := map[string]result.Row{}
	for _, row := range totals {
		byTeam[row.Team] = row
	}
	if byTeam["alley-cats"].Points != 2 || byTeam["pin-pushers"].Points != 0 {
		t.Fatalf("unexpected team points: %+v", byTeam)
	}
}

func TestScoreMatchTotalPointsConserved(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 0, nil)
	individual, totals, err := svc.ScoreMatch(duelRows(
		[]int{211, 168, 199, 240},
		[]int{190, 168, 230, 151},
	))
	if err != nil {
		t.Fatalf("score match: %v", err)
	}

	var sum float64
	for _, row := range individual {
		sum += row.Points
	}
	for _, row := range totals {
		sum += row.Points
	}
	// Four duels at one point each plus two team points.
	if sum != 6 {
		t.Fatalf("expected 6 distributed points, got %v", sum)
	}
}

func TestScoreMatchDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 0, nil)
	rows := duelRows([]int{200, 180}, []int{190, 210})
	if _, _, err := svc.ScoreMatch(rows); err != nil {
		t.Fatalf("score match: %v", err)
	}
	for _, row := range rows {
		if row.Points != 0 {
			t.Fatalf("input row was mutated: %+v", row)
		}
	}
}

func TestScoreMatchStructuralMismatch(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 0, nil)

	cases := []struct {
		name string
		rows []result.Row
	}{
		{"no rows", nil},
		{"one team", []result.Row{
			inputRow("alley-cats", "pin-pushers", "P1", 0, 200),
		}},
		{"unmirrored positions", []result.Row{
			inputRow("alley-cats", "pin-pushers", "P1", 0, 200),
			inputRow("pin-pushers", "alley-cats", "P2", 1, 190),
		}},
		{"duplicate position", []result.Row{
			inputRow("alley-cats", "pin-pushers", "P1", 0, 200),
			inputRow("alley-cats", "pin-pushers", "P2", 0, 180),
			inputRow("pin-pushers", "alley-cats", "P3", 0, 190),
		}},
		{"missing position", []result.Row{
			{Team: "alley-cats", Opponent: "pin-pushers", PlayerName: "P1", Score: 200, InputData: true},
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := svc.ScoreMatch(tc.rows)
			if !errors.Is(err, ErrStructuralMismatch) {
				t.Fatalf("expected ErrStructuralMismatch, got %v", err)
			}
		})
	}
}

func TestScoreSeasonSkipsBrokenMatches(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 2, nil)

	rows := duelRows([]int{200, 180}, []int{190, 210})
	broken := inputRow("split-happens", "gutter-gang", "P1", 0, 150)
	broken.MatchNumber = 2
	rows = append(rows, broken)

	scored, err := svc.ScoreSeason(context.Background(), rows)
	if err != nil {
		t.Fatalf("score season: %v", err)
	}

	if len(scored.Individual) != 4 {
		t.Fatalf("expected 4 individual rows, got %d", len(scored.Individual))
	}
	if len(scored.TeamTotals) != 2 {
		t.Fatalf("expected 2 team-total rows, got %d", len(scored.TeamTotals))
	}
	if len(scored.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(scored.Issues))
	}
	if scored.Issues[0].Kind != IssueStructuralMismatch {
		t.Fatalf("unexpected issue kind %q", scored.Issues[0].Kind)
	}
}

func TestScoreSeasonIgnoresComputedRows(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 0, nil)

	rows := duelRows([]int{200, 180}, []int{190, 210})
	first, err := svc.ScoreSeason(context.Background(), rows)
	if err != nil {
		t.Fatalf("first scoring pass: %v", err)
	}

	// Re-scoring the combined snapshot must reproduce the same output.
	second, err := svc.ScoreSeason(context.Background(), first.Rows())
	if err != nil {
		t.Fatalf("second scoring pass: %v", err)
	}

	if len(second.Individual) != len(first.Individual) {
		t.Fatalf("individual row count changed: %d vs %d", len(second.Individual), len(first.Individual))
	}
	if len(second.TeamTotals) != len(first.TeamTotals) {
		t.Fatalf("team-total row count changed: %d vs %d", len(second.TeamTotals), len(first.TeamTotals))
	}
	for i := range first.TeamTotals {
		if second.TeamTotals[i] != first.TeamTotals[i] {
			t.Fatalf("team-total row %d changed between passes", i)
		}
	}
}

func TestScoreSeasonDeterministicOrder(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(roster.DefaultScoring(), 4, nil)

	var rows []result.Row
	teams := [][2]string{
		{"alley-cats", "pin-pushers"},
		{"split-happens", "gutter-gang"},
		{"alley-cats", "split-happens"},
		{"pin-pushers", "gutter-gang"},
	}
	for m, pair := range teams {
		for pos := 0; pos < 2; pos++ {
			home := inputRow(pair[0], pair[1], "H", pos, 180+m+pos)
			home.Week = m/2 + 1
			home.RoundNumber = m/2 + 1
			home.MatchNumber = m%2 + 1
			away := inputRow(pair[1], pair[0], "A", pos, 175+m+pos)
			away.Week = m/2 + 1
			away.RoundNumber = m/2 + 1
			away.MatchNumber = m%2 + 1
			rows = append(rows, home, away)
		}
	}

	first, err := svc.ScoreSeason(context.Background(), rows)
	if err != nil {
		t.Fatalf("score season: %v", err)
	}
	second, err := svc.ScoreSeason(context.Background(), rows)
	if err != nil {
		t.Fatalf("score season: %v", err)
	}

	if len(first.Individual) != len(second.Individual) {
		t.Fatalf("row counts differ between runs")
	}
	for i := range first.Individual {
		if first.Individual[i] != second.Individual[i] {
			t.Fatalf("individual row %d differs between runs", i)
		}
	}
	for i := range first.TeamTotals {
		if first.TeamTotals[i] != second.TeamTotals[i] {
			t.Fatalf("team-total row %d differs between runs", i)
		}
	}
}
