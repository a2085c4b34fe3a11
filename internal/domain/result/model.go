package result

import (
	"fmt"
	"time"
)

// Column names for the tabular row schema. Loaders address columns by name,
// never by index, so delimited files may order them freely.
const (
	ColSeason         = "Season"
	ColWeek           = "Week"
	ColDate           = "Date"
	ColLeague         = "League"
	ColPlayersPerTeam = "PlayersPerTeam"
	ColLocation       = "Location"
	ColRoundNumber    = "RoundNumber"
	ColMatchNumber    = "MatchNumber"
	ColTeam           = "Team"
	ColPosition       = "Position"
	ColPlayer         = "Player"
	ColPlayerID       = "PlayerID"
	ColOpponent       = "Opponent"
	ColScore          = "Score"
	ColPoints         = "Points"
	ColInputData      = "InputData"
	ColComputedData   = "ComputedData"
)

// Columns lists the full schema in canonical order.
var Columns = []string{
	ColSeason, ColWeek, ColDate, ColLeague, ColPlayersPerTeam, ColLocation,
	ColRoundNumber, ColMatchNumber, ColTeam, ColPosition, ColPlayer,
	ColPlayerID, ColOpponent, ColScore, ColPoints, ColInputData,
	ColComputedData,
}

// TeamTotalPlayerName marks derived team-total rows.
const TeamTotalPlayerName = "Team Total"

// Row is one player's (or one team's) result in one game. Raw hand-entered
// rows carry InputData=true; derived team-total rows carry ComputedData=true
// with Position and PlayerID left nil.
type Row struct {
	Season         string
	Week           int
	Date           time.Time
	League         string
	PlayersPerTeam int
	Location       string
	RoundNumber    int
	// MatchNumber is a legacy display identifier. Match identity is
	// (Season, League, Week, RoundNumber, Team, Opponent).
	MatchNumber int
	Team        string
	// Position is the 0-based lineup slot; nil on team-total rows.
	Position     *int
	PlayerName   string
	PlayerID     *string
	Opponent     string
	Score        int
	Points       float64
	InputData    bool
	ComputedData bool
}

// MatchKey identifies one match from either side's perspective.
type MatchKey struct {
	Season   string
	League   string
	Week     int
	Round    int
	Team     string
	Opponent string
}

// Field returns the named column's value, so generic query code can read
// rows without knowing the struct layout. Unknown columns are an error.
func (r Row) Field(column string) (any, error) {
	switch column {
	case ColSeason:
		return r.Season, nil
	case ColWeek:
		return r.Week, nil
	case ColDate:
		return r.Date, nil
	case ColLeague:
		return r.League, nil
	case ColPlayersPerTeam:
		return r.PlayersPerTeam, nil
	case ColLocation:
		return r.Location, nil
	case ColRoundNumber:
		return r.RoundNumber, nil
	case ColMatchNumber:
		return r.MatchNumber, nil
	case ColTeam:
		return r.Team, nil
	case ColPosition:
		if r.Position == nil {
			return nil, nil
		}
		return *r.Position, nil
	case ColPlayer:
		return r.PlayerName, nil
	case ColPlayerID:
		if r.PlayerID == nil {
			return nil, nil
		}
		return *r.PlayerID, nil
	case ColOpponent:
		return r.Opponent, nil
	case ColScore:
		return r.Score, nil
	case ColPoints:
		return r.Points, nil
	case ColInputData:
		return r.InputData, nil
	case ColComputedData:
		return r.ComputedData, nil
	default:
		return nil, fmt.Errorf("unknown column %q", column)
	}
}

// Key returns the match identity from this row's side.
func (r Row) Key() MatchKey {
	return MatchKey{
		Season:   r.Season,
		League:   r.League,
		Week:     r.Week,
		Round:    r.RoundNumber,
		Team:     r.Team,
		Opponent: r.Opponent,
	}
}

// Normalized returns the same key for both sides of a match by ordering the
// team pair lexicographically.
func (k MatchKey) Normalized() MatchKey {
	if k.Team > k.Opponent {
		k.Team, k.Opponent = k.Opponent, k.Team
	}
	return k
}

func (k MatchKey) String() string {
	return fmt.Sprintf("%s/%s week=%d round=%d %s vs %s",
		k.League, k.Season, k.Week, k.Round, k.Team, k.Opponent)
}

// IntPtr and StringPtr build the nullable columns of a Row.
func IntPtr(v int) *int { return &v }

func StringPtr(v string) *string { return &v }
