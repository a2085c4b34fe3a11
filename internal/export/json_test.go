package export

import (
	"bytes"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strikelane/bowling-league/internal/domain/standings"
	"github.com/strikelane/bowling-league/internal/usecase"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	table := []standings.TeamStanding{
		{
			Position:    1,
			TeamID:      "pin-pushers",
			TotalPoints: 4,
			TotalScore:  765,
			Average:     191.25,
			GamesPlayed: 4,
			Weeks: []standings.WeekPerformance{
				{Week: 1, Score: 350, Points: 0, GamesPlayed: 2},
				{Week: 2, Score: 415, Points: 4, GamesPlayed: 2},
			},
			WeeklyRanks:     []standings.RankPoint{{Week: 1, Rank: 2}, {Week: 2, Rank: 1}},
			CumulativeRanks: []standings.RankPoint{{Week: 1, Rank: 2}, {Week: 2, Rank: 1}},
		},
		{
			Position:    2,
			TeamID:      "alley-cats",
			TotalPoints: 4,
			TotalScore:  745,
			Average:     186.25,
			GamesPlayed: 4,
		},
	}
	issues := []usecase.Issue{{
		Kind:    usecase.IssueMissingTeams,
		League:  "city-league",
		Season:  "2025/26",
		Week:    3,
		Details: "teams without rows: gutter-gang",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "city-league", "2025/26", table, issues))

	var got struct {
		League    string `json:"league"`
		Season    string `json:"season"`
		Standings []struct {
			Position    int     `json:"position"`
			TeamID      string  `json:"team_id"`
			TotalPoints float64 `json:"total_points"`
			TotalScore  int     `json:"total_score"`
			Average     float64 `json:"average"`
			Weeks       []struct {
				Week  int `json:"week"`
				Score int `json:"score"`
			} `json:"weeks"`
			WeeklyRanks []struct {
				Week int `json:"week"`
				Rank int `json:"rank"`
			} `json:"weekly_ranks"`
		} `json:"standings"`
		Issues []struct {
			Kind string `json:"kind"`
			Week int    `json:"week"`
		} `json:"issues"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "city-league", got.League)
	assert.Equal(t, "2025/26", got.Season)
	require.Len(t, got.Standings, 2)

	lead := got.Standings[0]
	assert.Equal(t, 1, lead.Position)
	assert.Equal(t, "pin-pushers", lead.TeamID)
	assert.Equal(t, 765, lead.TotalScore)
	assert.InDelta(t, 191.25, lead.Average, 1e-9)
	require.Len(t, lead.Weeks, 2)
	assert.Equal(t, 415, lead.Weeks[1].Score)
	require.Len(t, lead.WeeklyRanks, 2)
	assert.Equal(t, 1, lead.WeeklyRanks[1].Rank)

	// Empty slices stay out of the payload entirely.
	assert.Empty(t, got.Standings[1].Weeks)

	require.Len(t, got.Issues, 1)
	assert.Equal(t, usecase.IssueMissingTeams, got.Issues[0].Kind)
	assert.Equal(t, 3, got.Issues[0].Week)
}

func TestWriteReportEmptyInputs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "city-league", "2025/26", nil, nil))

	var got struct {
		Standings []any `json:"standings"`
		Issues    []any `json:"issues"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	assert.NotNil(t, got.Standings)
	assert.Empty(t, got.Standings)
	assert.NotNil(t, got.Issues)
	assert.Empty(t, got.Issues)
}
