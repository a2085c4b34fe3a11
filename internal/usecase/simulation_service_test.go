package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strikelane/bowling-league/internal/domain/roster"
	"github.com/strikelane/bowling-league/internal/domain/schedule"
)

func simDefinition() roster.LeagueSeason {
	def := leagueDef()
	def.PlayersPerTeam = 2
	return def
}

func TestSimulateSeasonShape(t *testing.T) {
	t.Parallel()

	def := simDefinition()
	schedSvc := NewScheduleService(nil)
	sched, err := schedSvc.Generate(context.Background(), def, false)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}

	simSvc := NewSimulationService(42, nil)
	firstDay := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	rows, err := simSvc.SimulateSeason(context.Background(), def, sched, firstDay, "Kegelbahn Mitte")
	if err != nil {
		t.Fatalf("simulate season: %v", err)
	}

	// Three rounds, two fixtures each, two players per side.
	want := 3 * 2 * 2 * 2
	if len(rows) != want {
		t.Fatalf("expected %d rows, got %d", want, len(rows))
	}

	for _, row := range rows {
		if !row.InputData || row.ComputedData {
			t.Fatalf("simulated row has wrong flags: %+v", row)
		}
		if row.Position == nil || *row.Position < 0 || *row.Position >= def.PlayersPerTeam {
			t.Fatalf("simulated row has bad position: %+v", row)
		}
		if row.Score < 0 || row.Score > 300 {
			t.Fatalf("simulated score out of range: %+v", row)
		}
		if row.PlayerID == nil {
			t.Fatalf("simulated row without player id: %+v", row)
		}
		wantDate := firstDay.AddDate(0, 0, 7*(row.Week-1))
		if !row.Date.Equal(wantDate) {
			t.Fatalf("week %d row has date %v, expected %v", row.Week, row.Date, wantDate)
		}
	}
}

func TestSimulateSeasonDeterministicBySeed(t *testing.T) {
	t.Parallel()

	def := simDefinition()
	sched, err := NewScheduleService(nil).Generate(context.Background(), def, false)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	firstDay := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	first, err := NewSimulationService(7, nil).SimulateSeason(context.Background(), def, sched, firstDay, "")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	second, err := NewSimulationService(7, nil).SimulateSeason(context.Background(), def, sched, firstDay, "")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Score != second[i].Score || first[i].PlayerName != second[i].PlayerName {
			t.Fatalf("row %d differs between equal seeds", i)
		}
	}

	other, err := NewSimulationService(8, nil).SimulateSeason(context.Background(), def, sched, firstDay, "")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	same := true
	for i := range first {
		if first[i].Score != other[i].Score {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical scores")
	}
}

func TestSimulateSeasonScoresCleanly(t *testing.T) {
	t.Parallel()

	def := simDefinition()
	sched, err := NewScheduleService(nil).Generate(context.Background(), def, true)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	firstDay := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	rows, err := NewSimulationService(99, nil).SimulateSeason(context.Background(), def, sched, firstDay, "")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	scored, err := NewScoreService(def.Scoring, 0, nil).ScoreSeason(context.Background(), rows)
	if err != nil {
		t.Fatalf("score simulated season: %v", err)
	}
	if len(scored.Issues) != 0 {
		t.Fatalf("simulated season should score cleanly, got %v", scored.Issues)
	}

	issues := NewValidationService(nil).Validate(context.Background(), scored.Rows(), []roster.LeagueSeason{def})
	if len(issues) != 0 {
		t.Fatalf("simulated season should validate cleanly, got %v", issues)
	}
}

func TestSimulateSeasonInvalidDefinition(t *testing.T) {
	t.Parallel()

	def := simDefinition()
	def.Teams = def.Teams[:1]

	_, err := NewSimulationService(1, nil).SimulateSeason(context.Background(), def, schedule.Schedule{}, time.Time{}, "")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
