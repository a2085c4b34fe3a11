package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/strikelane/bowling-league/internal/domain/result"
	"github.com/strikelane/bowling-league/internal/domain/roster"
	"github.com/strikelane/bowling-league/internal/domain/schedule"
	"github.com/strikelane/bowling-league/internal/platform/logging"
)

const (
	simBaseScore  = 170
	simScoreSigma = 22
	simMaxScore   = 300
)

// SimulationService produces raw per-player rows for a whole season, so the
// engine can be exercised without hand-entered results. Output is
// deterministic for a given seed.
type SimulationService struct {
	seed   int64
	logger *logging.Logger
}

func NewSimulationService(seed int64, logger *logging.Logger) *SimulationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SimulationService{seed: seed, logger: logger}
}

// SimulateSeason walks the schedule round by round (one round per week) and
// rolls a score for every lineup slot of every fixture.
func (s *SimulationService) SimulateSeason(ctx context.Context, def roster.LeagueSeason, sched schedule.Schedule, firstMatchDay time.Time, location string) ([]result.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.SimulateSeason")
	defer span.End()

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	rng := rand.New(rand.NewSource(s.seed))
	lineups := buildLineups(def)

	rows := make([]result.Row, 0, len(sched.Rounds)*def.PlayersPerTeam*2)
	matchNumber := 0
	for _, round := range sched.Rounds {
		week := round.Number
		date := firstMatchDay.AddDate(0, 0, 7*(week-1))
		for _, pair := range round.Pairs {
			matchNumber++
			for pos := 0; pos < def.PlayersPerTeam; pos++ {
				for _, side := range []struct {
					team     string
					opponent string
				}{
					{team: pair.Home, opponent: pair.Away},
					{team: pair.Away, opponent: pair.Home},
				} {
					player := lineups[side.team][pos]
					rows = append(rows, result.Row{
						Season:         def.Season,
						Week:           week,
						Date:           date,
						League:         def.League,
						PlayersPerTeam: def.PlayersPerTeam,
						Location:       location,
						RoundNumber:    round.Number,
						MatchNumber:    matchNumber,
						Team:           side.team,
						Position:       result.IntPtr(pos),
						PlayerName:     player.Name,
						PlayerID:       result.StringPtr(player.ID),
						Opponent:       side.opponent,
						Score:          rollScore(rng),
						InputData:      true,
					})
				}
			}
		}
	}

	s.logger.DebugContext(ctx, "season simulated",
		"league", def.League, "season", def.Season,
		"rounds", len(sched.Rounds), "rows", len(rows))
	return rows, nil
}

// buildLineups assigns each team's first PlayersPerTeam rostered players to
// its lineup slots, inventing players where the roster has none.
func buildLineups(def roster.LeagueSeason) map[string][]roster.Player {
	byTeam := make(map[string][]roster.Player, len(def.Teams))
	for _, p := range def.Players {
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}

	lineups := make(map[string][]roster.Player, len(def.Teams))
	for _, team := range def.Teams {
		lineup := byTeam[team]
		for len(lineup) < def.PlayersPerTeam {
			n := len(lineup) + 1
			lineup = append(lineup, roster.Player{
				ID:   fmt.Sprintf("%s-p%d", team, n),
				Name: fmt.Sprintf("%s Player %d", team, n),
				Team: team,
			})
		}
		lineups[team] = lineup[:def.PlayersPerTeam]
	}
	return lineups
}

func rollScore(rng *rand.Rand) int {
	score := simBaseScore + int(rng.NormFloat64()*simScoreSigma)
	if score < 0 {
		return 0
	}
	if score > simMaxScore {
		return simMaxScore
	}
	return score
}
