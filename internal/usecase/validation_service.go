package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/strikelane/bowling-league/internal/domain/result"
	"github.com/strikelane/bowling-league/internal/domain/roster"
	"github.com/strikelane/bowling-league/internal/platform/logging"
	"github.com/strikelane/bowling-league/internal/platform/query"
)

// ValidationService cross-checks a fully computed dataset for structural
// consistency. It only ever reports; nothing here mutates the dataset or
// aborts on the first finding.
type ValidationService struct {
	logger *logging.Logger
}

func NewValidationService(logger *logging.Logger) *ValidationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ValidationService{logger: logger}
}

type validationCheck func(rows []result.Row, def roster.LeagueSeason) []Issue

// Validate runs every check for every league season definition. Checks are
// independent of each other and run concurrently; the combined findings come
// back in a deterministic order.
func (s *ValidationService) Validate(ctx context.Context, rows []result.Row, defs []roster.LeagueSeason) []Issue {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidationService.Validate")
	defer span.End()

	checks := []validationCheck{
		checkTeamsPresent,
		checkMatchPointRange,
		checkRoundMatchCounts,
		checkRosterMembership,
		checkDuplicatePositions,
	}

	var mu sync.Mutex
	var issues []Issue

	var wg conc.WaitGroup
	for _, def := range defs {
		def := def
		scoped, err := query.Filter(rows,
			query.Eq(result.ColLeague, def.League),
			query.Eq(result.ColSeason, def.Season),
		)
		if err != nil {
			// The column set is fixed, so this only fires on a programming
			// error; surface it as a finding rather than dropping it.
			issues = append(issues, Issue{
				Kind:    IssueStructuralMismatch,
				League:  def.League,
				Season:  def.Season,
				Details: err.Error(),
			})
			continue
		}

		for _, check := range checks {
			check := check
			wg.Go(func() {
				found := check(scoped, def)
				if len(found) == 0 {
					return
				}
				mu.Lock()
				issues = append(issues, found...)
				mu.Unlock()
			})
		}
	}
	wg.Wait()

	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.League != b.League {
			return a.League < b.League
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Details < b.Details
	})

	s.logger.DebugContext(ctx, "dataset validated",
		"definitions", len(defs), "issues", len(issues))
	return issues
}

// checkTeamsPresent reports rostered teams with no rows in a week that other
// teams did play.
func checkTeamsPresent(rows []result.Row, def roster.LeagueSeason) []Issue {
	teamsByWeek := make(map[int]map[string]struct{})
	for _, row := range rows {
		teams, ok := teamsByWeek[row.Week]
		if !ok {
			teams = make(map[string]struct{})
			teamsByWeek[row.Week] = teams
		}
		teams[row.Team] = struct{}{}
	}

	var issues []Issue
	for week, present := range teamsByWeek {
		var missing []string
		for _, team := range def.Teams {
			if _, ok := present[team]; !ok {
				missing = append(missing, team)
			}
		}
		if len(missing) == 0 {
			continue
		}
		sort.Strings(missing)
		issues = append(issues, Issue{
			Kind:    IssueMissingTeams,
			League:  def.League,
			Season:  def.Season,
			Week:    week,
			Details: fmt.Sprintf("teams without rows: %s", strings.Join(missing, ", ")),
		})
	}
	return issues
}

// checkMatchPointRange verifies each match's combined point total against
// the theoretical bounds of the scoring system, including partial ties.
func checkMatchPointRange(rows []result.Row, def roster.LeagueSeason) []Issue {
	totals := make(map[result.MatchKey]float64)
	for _, row := range rows {
		if !row.InputData && !row.ComputedData {
			continue
		}
		totals[row.Key().Normalized()] += row.Points
	}

	duelMin, duelMax := bounds(def.Scoring.WinPoints, 2*def.Scoring.TiePoints)
	teamMin, teamMax := bounds(def.Scoring.TeamWinPoints, 2*def.Scoring.TeamTiePoints)
	minTotal := float64(def.PlayersPerTeam)*duelMin + teamMin
	maxTotal := float64(def.PlayersPerTeam)*duelMax + teamMax

	var issues []Issue
	for key, total := range totals {
		if total >= minTotal && total <= maxTotal {
			continue
		}
		issues = append(issues, Issue{
			Kind:    IssuePointsOutOfRange,
			League:  def.League,
			Season:  def.Season,
			Week:    key.Week,
			Details: fmt.Sprintf("%s: combined points %.1f outside [%.1f, %.1f]", key, total, minTotal, maxTotal),
		})
	}
	return issues
}

func bounds(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}

// checkRoundMatchCounts verifies each round holds exactly teams/2 matches.
func checkRoundMatchCounts(rows []result.Row, def roster.LeagueSeason) []Issue {
	type roundKey struct {
		week  int
		round int
	}
	matches := make(map[roundKey]map[result.MatchKey]struct{})
	for _, row := range rows {
		rk := roundKey{week: row.Week, round: row.RoundNumber}
		set, ok := matches[rk]
		if !ok {
			set = make(map[result.MatchKey]struct{})
			matches[rk] = set
		}
		set[row.Key().Normalized()] = struct{}{}
	}

	want := len(def.Teams) / 2
	var issues []Issue
	for rk, set := range matches {
		if len(set) == want {
			continue
		}
		issues = append(issues, Issue{
			Kind:    IssueRoundMatchCount,
			League:  def.League,
			Season:  def.Season,
			Week:    rk.week,
			Details: fmt.Sprintf("round %d has %d matches, expected %d", rk.round, len(set), want),
		})
	}
	return issues
}

// checkRosterMembership verifies every (player, team) pairing on input rows
// against the roster definition.
func checkRosterMembership(rows []result.Row, def roster.LeagueSeason) []Issue {
	type pairing struct {
		playerID string
		team     string
		week     int
	}
	seen := make(map[pairing]struct{})

	var issues []Issue
	for _, row := range rows {
		if !row.InputData || row.PlayerID == nil {
			continue
		}
		p := pairing{playerID: *row.PlayerID, team: row.Team, week: row.Week}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if def.IsRostered(*row.PlayerID, row.Team) {
			continue
		}
		issues = append(issues, Issue{
			Kind:    IssueUnknownPlayer,
			League:  def.League,
			Season:  def.Season,
			Week:    row.Week,
			Details: fmt.Sprintf("player %s (%s) is not rostered for team %s", row.PlayerName, *row.PlayerID, row.Team),
		})
	}
	return issues
}

// checkDuplicatePositions reports lineup slots occupied by more than one
// distinct player within a single match.
func checkDuplicatePositions(rows []result.Row, def roster.LeagueSeason) []Issue {
	type slot struct {
		key      result.MatchKey
		team     string
		position int
	}
	occupants := make(map[slot]string)

	var issues []Issue
	for _, row := range rows {
		if !row.InputData || row.Position == nil {
			continue
		}
		sl := slot{key: row.Key().Normalized(), team: row.Team, position: *row.Position}
		prev, taken := occupants[sl]
		if !taken {
			occupants[sl] = row.PlayerName
			continue
		}
		if prev == row.PlayerName {
			continue
		}
		issues = append(issues, Issue{
			Kind:    IssueDuplicatePosition,
			League:  def.League,
			Season:  def.Season,
			Week:    row.Week,
			Details: fmt.Sprintf("%s: position %d of team %s occupied by %s and %s", sl.key, sl.position, row.Team, prev, row.PlayerName),
		})
	}
	return issues
}
