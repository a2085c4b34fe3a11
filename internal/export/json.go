// Package export renders engine output as JSON for downstream tables and
// charts. The DTOs here are the engine's only presentation concern.
package export

import (
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/strikelane/bowling-league/internal/domain/standings"
	"github.com/strikelane/bowling-league/internal/usecase"
)

type standingRow struct {
	Position    int                `json:"position"`
	TeamID      string             `json:"team_id"`
	TotalPoints float64            `json:"total_points"`
	TotalScore  int                `json:"total_score"`
	Average     float64            `json:"average"`
	GamesPlayed int                `json:"games_played"`
	Weeks       []weekRow          `json:"weeks,omitempty"`
	WeeklyRanks []rankPoint        `json:"weekly_ranks,omitempty"`
	CumRanks    []rankPoint        `json:"cumulative_ranks,omitempty"`
}

type weekRow struct {
	Week        int     `json:"week"`
	Score       int     `json:"score"`
	Points      float64 `json:"points"`
	GamesPlayed int     `json:"games_played"`
}

type rankPoint struct {
	Week int `json:"week"`
	Rank int `json:"rank"`
}

type issueRow struct {
	Kind    string `json:"kind"`
	League  string `json:"league"`
	Season  string `json:"season"`
	Week    int    `json:"week"`
	Details string `json:"details"`
}

type report struct {
	League    string        `json:"league"`
	Season    string        `json:"season"`
	Standings []standingRow `json:"standings"`
	Issues    []issueRow    `json:"issues"`
}

// WriteReport streams a season report as JSON.
func WriteReport(dst io.Writer, league, season string, table []standings.TeamStanding, issues []usecase.Issue) error {
	out := report{
		League:    league,
		Season:    season,
		Standings: make([]standingRow, 0, len(table)),
		Issues:    make([]issueRow, 0, len(issues)),
	}

	for _, st := range table {
		row := standingRow{
			Position:    st.Position,
			TeamID:      st.TeamID,
			TotalPoints: st.TotalPoints,
			TotalScore:  st.TotalScore,
			Average:     st.Average,
			GamesPlayed: st.GamesPlayed,
		}
		for _, w := range st.Weeks {
			row.Weeks = append(row.Weeks, weekRow{
				Week: w.Week, Score: w.Score, Points: w.Points, GamesPlayed: w.GamesPlayed,
			})
		}
		for _, r := range st.WeeklyRanks {
			row.WeeklyRanks = append(row.WeeklyRanks, rankPoint{Week: r.Week, Rank: r.Rank})
		}
		for _, r := range st.CumulativeRanks {
			row.CumRanks = append(row.CumRanks, rankPoint{Week: r.Week, Rank: r.Rank})
		}
		out.Standings = append(out.Standings, row)
	}

	for _, issue := range issues {
		out.Issues = append(out.Issues, issueRow{
			Kind:    issue.Kind,
			League:  issue.League,
			Season:  issue.Season,
			Week:    issue.Week,
			Details: issue.Details,
		})
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(out); err != nil {
		return err
	}

	_, err := dst.Write(buf.Bytes())
	return err
}
