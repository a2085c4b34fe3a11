package postgres

import (
	"database/sql"
	"time"

	"github.com/strikelane/bowling-league/internal/domain/result"
)

type resultTableModel struct {
	ID             int64          `db:"id"`
	Season         string         `db:"season"`
	Week           int            `db:"week"`
	MatchDate      sql.NullTime   `db:"match_date"`
	League         string         `db:"league"`
	PlayersPerTeam int            `db:"players_per_team"`
	Location       string         `db:"location"`
	RoundNumber    int            `db:"round_number"`
	MatchNumber    int            `db:"match_number"`
	Team           string         `db:"team"`
	Position       sql.NullInt64  `db:"position"`
	PlayerName     string         `db:"player_name"`
	PlayerID       sql.NullString `db:"player_id"`
	Opponent       string         `db:"opponent"`
	Score          int            `db:"score"`
	Points         float64        `db:"points"`
	InputData      bool           `db:"input_data"`
	ComputedData   bool           `db:"computed_data"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (m resultTableModel) toDomain() result.Row {
	row := result.Row{
		Season:         m.Season,
		Week:           m.Week,
		League:         m.League,
		PlayersPerTeam: m.PlayersPerTeam,
		Location:       m.Location,
		RoundNumber:    m.RoundNumber,
		MatchNumber:    m.MatchNumber,
		Team:           m.Team,
		PlayerName:     m.PlayerName,
		Opponent:       m.Opponent,
		Score:          m.Score,
		Points:         m.Points,
		InputData:      m.InputData,
		ComputedData:   m.ComputedData,
	}
	if m.MatchDate.Valid {
		row.Date = m.MatchDate.Time
	}
	if m.Position.Valid {
		row.Position = result.IntPtr(int(m.Position.Int64))
	}
	if m.PlayerID.Valid {
		row.PlayerID = result.StringPtr(m.PlayerID.String)
	}
	return row
}

func rowValues(row result.Row) []any {
	var date any
	if !row.Date.IsZero() {
		date = row.Date
	}
	var position any
	if row.Position != nil {
		position = *row.Position
	}
	var playerID any
	if row.PlayerID != nil {
		playerID = *row.PlayerID
	}
	return []any{
		row.Season, row.Week, date, row.League, row.PlayersPerTeam,
		row.Location, row.RoundNumber, row.MatchNumber, row.Team, position,
		row.PlayerName, playerID, row.Opponent, row.Score, row.Points,
		row.InputData, row.ComputedData,
	}
}

var resultColumns = []string{
	"season", "week", "match_date", "league", "players_per_team",
	"location", "round_number", "match_number", "team", "position",
	"player_name", "player_id", "opponent", "score", "points",
	"input_data", "computed_data",
}
