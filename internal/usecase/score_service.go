package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/strikelane/bowling-league/internal/domain/result"
	"github.com/strikelane/bowling-league/internal/domain/roster"
	"github.com/strikelane/bowling-league/internal/platform/logging"
	"github.com/strikelane/bowling-league/internal/platform/query"
)

const defaultScoreWorkers = 8

// ScoreService turns raw per-player rows into duel points and derived
// team-total rows.
type ScoreService struct {
	scoring roster.Scoring
	logger  *logging.Logger
	workers int
}

func NewScoreService(scoring roster.Scoring, workers int, logger *logging.Logger) *ScoreService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if workers <= 0 {
		workers = defaultScoreWorkers
	}
	return &ScoreService{
		scoring: scoring,
		logger:  logger,
		workers: workers,
	}
}

// ScoredSeason is the output of recomputing a whole dataset slice: the
// repointed individual rows, the derived team-total rows, and one issue per
// match that had to be skipped.
type ScoredSeason struct {
	Individual []result.Row
	TeamTotals []result.Row
	Issues     []Issue
}

// Rows returns individual and team-total rows as one combined snapshot.
func (s ScoredSeason) Rows() []result.Row {
	out := make([]result.Row, 0, len(s.Individual)+len(s.TeamTotals))
	out = append(out, s.Individual...)
	out = append(out, s.TeamTotals...)
	return out
}

// ScoreMatch scores one match's raw rows. It is pure: input rows are never
// modified, all returned rows are fresh copies. The rows must cover exactly
// two teams with mirrored position sets, otherwise the match is rejected
// with ErrStructuralMismatch and nothing is emitted.
func (s *ScoreService) ScoreMatch(rows []result.Row) (individual, teamTotals []result.Row, err error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: no rows", ErrStructuralMismatch)
	}

	teams := make([]string, 0, 2)
	byTeam := make(map[string]map[int]result.Row, 2)
	for _, row := range rows {
		if row.Position == nil {
			return nil, nil, fmt.Errorf("%w: input row without position (player=%s)", ErrStructuralMismatch, row.PlayerName)
		}
		if _, seen := byTeam[row.Team]; !seen {
			teams = append(teams, row.Team)
			byTeam[row.Team] = make(map[int]result.Row)
		}
		if prev, dup := byTeam[row.Team][*row.Position]; dup {
			return nil, nil, fmt.Errorf("%w: position %d of team %s occupied by %s and %s",
				ErrStructuralMismatch, *row.Position, row.Team, prev.PlayerName, row.PlayerName)
		}
		byTeam[row.Team][*row.Position] = row
	}
	if len(teams) != 2 {
		return nil, nil, fmt.Errorf("%w: expected rows for exactly 2 teams, got %d", ErrStructuralMismatch, len(teams))
	}

	home, away := teams[0], teams[1]
	if err := positionsMirror(byTeam[home], byTeam[away], home, away); err != nil {
		return nil, nil, err
	}

	positions := make([]int, 0, len(byTeam[home]))
	for p := range byTeam[home] {
		positions = append(positions, p)
	}
	sort.Ints(positions)

	individual = make([]result.Row, 0, len(rows))
	var homeTotal, awayTotal int
	for _, p := range positions {
		h, a := byTeam[home][p], byTeam[away][p]
		homeTotal += h.Score
		awayTotal += a.Score

		switch {
		case h.Score > a.Score:
			h.Points, a.Points = s.scoring.WinPoints, 0
		case h.Score < a.Score:
			h.Points, a.Points = 0, s.scoring.WinPoints
		default:
			h.Points, a.Points = s.scoring.TiePoints, s.scoring.TiePoints
		}
		individual = append(individual, h, a)
	}

	var homeTeamPts, awayTeamPts float64
	switch {
	case homeTotal > awayTotal:
		homeTeamPts = s.scoring.TeamWinPoints
	case homeTotal < awayTotal:
		awayTeamPts = s.scoring.TeamWinPoints
	default:
		homeTeamPts, awayTeamPts = s.scoring.TeamTiePoints, s.scoring.TeamTiePoints
	}

	teamTotals = []result.Row{
		teamTotalRow(byTeam[home][positions[0]], homeTotal, homeTeamPts),
		teamTotalRow(byTeam[away][positions[0]], awayTotal, awayTeamPts),
	}
	return individual, teamTotals, nil
}

// teamTotalRow derives the computed team row from any input row of that
// side, carrying over the match identifiers.
func teamTotalRow(src result.Row, totalScore int, points float64) result.Row {
	return result.Row{
		Season:         src.Season,
		Week:           src.Week,
		Date:           src.Date,
		League:         src.League,
		PlayersPerTeam: src.PlayersPerTeam,
		Location:       src.Location,
		RoundNumber:    src.RoundNumber,
		MatchNumber:    src.MatchNumber,
		Team:           src.Team,
		PlayerName:     result.TeamTotalPlayerName,
		Opponent:       src.Opponent,
		Score:          totalScore,
		Points:         points,
		InputData:      false,
		ComputedData:   true,
	}
}

func positionsMirror(home, away map[int]result.Row, homeID, awayID string) error {
	for p := range home {
		if _, ok := away[p]; !ok {
			return fmt.Errorf("%w: position %d present for %s but missing for %s",
				ErrStructuralMismatch, p, homeID, awayID)
		}
	}
	for p := range away {
		if _, ok := home[p]; !ok {
			return fmt.Errorf("%w: position %d present for %s but missing for %s",
				ErrStructuralMismatch, p, awayID, homeID)
		}
	}
	return nil
}

// ScoreSeason recomputes every match found among the raw input rows.
// Matches are grouped by identity key and scored concurrently; structurally
// broken matches are skipped and reported as issues while all other matches
// still produce output. Output ordering is deterministic regardless of
// worker interleaving.
func (s *ScoreService) ScoreSeason(ctx context.Context, rows []result.Row) (ScoredSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ScoreSeason")
	defer span.End()

	raw, err := query.Filter(rows, query.Eq(result.ColInputData, true))
	if err != nil {
		return ScoredSeason{}, fmt.Errorf("select input rows: %w", err)
	}

	groups := make(map[result.MatchKey][]result.Row)
	for _, row := range raw {
		key := row.Key().Normalized()
		groups[key] = append(groups[key], row)
	}

	keys := make([]result.MatchKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	type matchOutcome struct {
		individual []result.Row
		teamTotals []result.Row
		err        error
	}
	outcomes := make([]matchOutcome, len(keys))

	workers := s.workers
	if workers > len(keys) {
		workers = len(keys)
	}
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return ScoredSeason{}, fmt.Errorf("create scoring worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, key := range keys {
		i, key := i, key
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			ind, totals, scoreErr := s.ScoreMatch(groups[key])
			outcomes[i] = matchOutcome{individual: ind, teamTotals: totals, err: scoreErr}
		}); err != nil {
			wg.Done()
			return ScoredSeason{}, fmt.Errorf("submit match to worker pool: %w", err)
		}
	}
	wg.Wait()

	var out ScoredSeason
	for i, key := range keys {
		outcome := outcomes[i]
		if outcome.err != nil {
			s.logger.WarnContext(ctx, "match skipped",
				"match", key.String(), "error", outcome.err)
			out.Issues = append(out.Issues, Issue{
				Kind:    IssueStructuralMismatch,
				League:  key.League,
				Season:  key.Season,
				Week:    key.Week,
				Details: outcome.err.Error(),
			})
			continue
		}
		out.Individual = append(out.Individual, outcome.individual...)
		out.TeamTotals = append(out.TeamTotals, outcome.teamTotals...)
	}

	s.logger.DebugContext(ctx, "season scored",
		"matches", len(keys), "skipped", len(out.Issues))
	return out, nil
}
