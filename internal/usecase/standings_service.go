package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/strikelane/bowling-league/internal/domain/result"
	"github.com/strikelane/bowling-league/internal/domain/standings"
	"github.com/strikelane/bowling-league/internal/platform/logging"
	"github.com/strikelane/bowling-league/internal/platform/query"
)

// StandingsService rolls computed rows up into weekly tables and cumulative
// league standings. Every call recomputes from the snapshot it reads; no
// aggregation state survives between calls.
type StandingsService struct {
	results result.Repository
	logger  *logging.Logger
}

func NewStandingsService(results result.Repository, logger *logging.Logger) *StandingsService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StandingsService{results: results, logger: logger}
}

type teamAccumulator struct {
	teamID      string
	score       int
	points      float64
	gamesPlayed int
	weeks       map[int]*standings.WeekPerformance
}

// WeeklyTable returns per-team score, points, and average for exactly one
// week. A week with no rows yields an empty table, not an error.
func (s *StandingsService) WeeklyTable(ctx context.Context, league, season string, week int) ([]standings.WeeklyRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.WeeklyTable")
	defer span.End()

	rows, err := s.results.ListBySeason(ctx, league, season)
	if err != nil {
		return nil, fmt.Errorf("list season rows: %w", err)
	}

	weekRows, err := query.Filter(rows, query.Eq(result.ColWeek, week))
	if err != nil {
		return nil, fmt.Errorf("filter week rows: %w", err)
	}

	acc := accumulate(weekRows, week)
	out := make([]standings.WeeklyRow, 0, len(acc))
	for _, a := range acc {
		row := standings.WeeklyRow{
			TeamID:      a.teamID,
			Score:       a.score,
			Points:      a.points,
			GamesPlayed: a.gamesPlayed,
		}
		if a.gamesPlayed > 0 {
			row.Average = float64(a.score) / float64(a.gamesPlayed)
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

// Standings returns the cumulative table through throughWeek, ranked by
// points, then score, then team id. Teams never share a position; the team
// id tie-break keeps repeated calls byte-identical.
func (s *StandingsService) Standings(ctx context.Context, league, season string, throughWeek int) ([]standings.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	rows, err := s.results.ListBySeason(ctx, league, season)
	if err != nil {
		return nil, fmt.Errorf("list season rows: %w", err)
	}

	inRange, err := query.Filter(rows, query.Le(result.ColWeek, throughWeek))
	if err != nil {
		return nil, fmt.Errorf("filter weeks: %w", err)
	}
	if len(inRange) == 0 {
		s.logger.DebugContext(ctx, "empty standings",
			"league", league, "season", season, "through_week", throughWeek)
		return []standings.TeamStanding{}, nil
	}

	acc := accumulate(inRange, 0)

	table := make([]standings.TeamStanding, 0, len(acc))
	for _, a := range acc {
		st := standings.TeamStanding{
			TeamID:      a.teamID,
			TotalScore:  a.score,
			TotalPoints: a.points,
			GamesPlayed: a.gamesPlayed,
			Weeks:       sortedWeeks(a.weeks),
		}
		if a.gamesPlayed > 0 {
			st.Average = float64(a.score) / float64(a.gamesPlayed)
		}
		table = append(table, st)
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].TotalPoints != table[j].TotalPoints {
			return table[i].TotalPoints > table[j].TotalPoints
		}
		if table[i].TotalScore != table[j].TotalScore {
			return table[i].TotalScore > table[j].TotalScore
		}
		return table[i].TeamID < table[j].TeamID
	})
	for i := range table {
		table[i].Position = i + 1
	}

	attachRankHistory(table, throughWeek)
	return table, nil
}

// accumulate sums input-row and team-total points per team. Pin scores come
// from the input rows only, so the per-game average stays a real pin
// average; the team-total rows contribute their match points on top.
// week > 0 restricts to that week alone.
func accumulate(rows []result.Row, week int) []*teamAccumulator {
	byTeam := make(map[string]*teamAccumulator)
	order := make([]string, 0, 8)

	get := func(teamID string) *teamAccumulator {
		if a, ok := byTeam[teamID]; ok {
			return a
		}
		a := &teamAccumulator{teamID: teamID, weeks: make(map[int]*standings.WeekPerformance)}
		byTeam[teamID] = a
		order = append(order, teamID)
		return a
	}

	for _, row := range rows {
		if week > 0 && row.Week != week {
			continue
		}
		a := get(row.Team)
		w, ok := a.weeks[row.Week]
		if !ok {
			w = &standings.WeekPerformance{Week: row.Week}
			a.weeks[row.Week] = w
		}

		switch {
		case row.InputData:
			a.score += row.Score
			a.points += row.Points
			a.gamesPlayed++
			w.Score += row.Score
			w.Points += row.Points
			w.GamesPlayed++
		case row.ComputedData:
			a.points += row.Points
			w.Points += row.Points
		}
	}

	out := make([]*teamAccumulator, 0, len(order))
	for _, teamID := range order {
		out = append(out, byTeam[teamID])
	}
	return out
}

func sortedWeeks(weeks map[int]*standings.WeekPerformance) []standings.WeekPerformance {
	out := make([]standings.WeekPerformance, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// attachRankHistory fills the two parallel position series: each week ranked
// on that week's points alone, and on the running totals through that week.
func attachRankHistory(table []standings.TeamStanding, throughWeek int) {
	type cursor struct {
		idx       int
		cumPoints float64
		cumScore  int
		weekByNum map[int]standings.WeekPerformance
	}

	cursors := make([]*cursor, len(table))
	weekSet := make(map[int]struct{})
	for i := range table {
		byNum := make(map[int]standings.WeekPerformance, len(table[i].Weeks))
		for _, w := range table[i].Weeks {
			byNum[w.Week] = w
			weekSet[w.Week] = struct{}{}
		}
		cursors[i] = &cursor{idx: i, weekByNum: byNum}
	}

	weeks := make([]int, 0, len(weekSet))
	for w := range weekSet {
		if w <= throughWeek {
			weeks = append(weeks, w)
		}
	}
	sort.Ints(weeks)

	for _, week := range weeks {
		for _, c := range cursors {
			if w, ok := c.weekByNum[week]; ok {
				c.cumPoints += w.Points
				c.cumScore += w.Score
			}
		}

		weekly := make([]*cursor, len(cursors))
		copy(weekly, cursors)
		sort.SliceStable(weekly, func(i, j int) bool {
			wi, wj := weekly[i].weekByNum[week], weekly[j].weekByNum[week]
			if wi.Points != wj.Points {
				return wi.Points > wj.Points
			}
			if wi.Score != wj.Score {
				return wi.Score > wj.Score
			}
			return table[weekly[i].idx].TeamID < table[weekly[j].idx].TeamID
		})
		for rank, c := range weekly {
			table[c.idx].WeeklyRanks = append(table[c.idx].WeeklyRanks,
				standings.RankPoint{Week: week, Rank: rank + 1})
		}

		cumulative := make([]*cursor, len(cursors))
		copy(cumulative, cursors)
		sort.SliceStable(cumulative, func(i, j int) bool {
			if cumulative[i].cumPoints != cumulative[j].cumPoints {
				return cumulative[i].cumPoints > cumulative[j].cumPoints
			}
			if cumulative[i].cumScore != cumulative[j].cumScore {
				return cumulative[i].cumScore > cumulative[j].cumScore
			}
			return table[cumulative[i].idx].TeamID < table[cumulative[j].idx].TeamID
		})
		for rank, c := range cumulative {
			table[c.idx].CumulativeRanks = append(table[c.idx].CumulativeRanks,
				standings.RankPoint{Week: week, Rank: rank + 1})
		}
	}
}
