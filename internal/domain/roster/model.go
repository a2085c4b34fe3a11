package roster

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrTooFewTeams       = errors.New("league needs at least two teams")
	ErrDuplicateTeam     = errors.New("duplicate team in league")
	ErrUnknownTeam       = errors.New("player assigned to unknown team")
	ErrInvalidScoring    = errors.New("invalid scoring values")
	ErrInvalidDefinition = errors.New("invalid league season definition")
)

// Scoring stores the point values awarded per duel and per team total.
// Values are per match: each duel pays out WinPoints split 1/0 or tied at
// TiePoints each; the team comparison pays TeamWinPoints / TeamTiePoints.
type Scoring struct {
	WinPoints     float64 `validate:"gt=0"`
	TiePoints     float64 `validate:"gte=0"`
	TeamWinPoints float64 `validate:"gt=0"`
	TeamTiePoints float64 `validate:"gte=0"`
}

// DefaultScoring mirrors the classic setup: one point per duel, two for the
// team total, ties split evenly.
func DefaultScoring() Scoring {
	return Scoring{
		WinPoints:     1,
		TiePoints:     0.5,
		TeamWinPoints: 2,
		TeamTiePoints: 1,
	}
}

// Player is one rostered player of a team.
type Player struct {
	ID   string `validate:"required"`
	Name string `validate:"required"`
	Team string `validate:"required"`
}

// LeagueSeason defines one league's configuration for one season: who
// competes, how many lineup slots each side fields, and the point values.
type LeagueSeason struct {
	League         string   `validate:"required"`
	Season         string   `validate:"required"`
	Teams          []string `validate:"min=2,dive,required"`
	PlayersPerTeam int      `validate:"gte=1"`
	Players        []Player `validate:"dive"`
	// Scoring is validated separately so broken point values surface as
	// ErrInvalidScoring rather than a generic definition error.
	Scoring Scoring `validate:"-"`
}

var validate = validator.New()

// Validate checks structural soundness of the definition. Field rules run
// through the validator tags; cross-entity checks (team uniqueness, player
// membership) follow explicitly.
func (d LeagueSeason) Validate() error {
	if err := validate.Struct(d); err != nil {
		if len(d.Teams) < 2 {
			return fmt.Errorf("%w: got %d", ErrTooFewTeams, len(d.Teams))
		}
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	if err := validate.Struct(d.Scoring); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScoring, err)
	}

	seen := make(map[string]struct{}, len(d.Teams))
	for _, team := range d.Teams {
		if _, dup := seen[team]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateTeam, team)
		}
		seen[team] = struct{}{}
	}

	for _, p := range d.Players {
		if _, ok := seen[p.Team]; !ok {
			return fmt.Errorf("%w: player=%s team=%s", ErrUnknownTeam, p.ID, p.Team)
		}
	}

	return nil
}

// HasTeam reports whether teamID competes in this league season.
func (d LeagueSeason) HasTeam(teamID string) bool {
	for _, team := range d.Teams {
		if team == teamID {
			return true
		}
	}
	return false
}

// IsRostered reports whether the (player, team) pairing is a legitimate
// roster association. An empty player list disables the check so leagues
// without maintained rosters still validate.
func (d LeagueSeason) IsRostered(playerID, teamID string) bool {
	if len(d.Players) == 0 {
		return true
	}
	for _, p := range d.Players {
		if p.ID == playerID && p.Team == teamID {
			return true
		}
	}
	return false
}

// MaxMatchPoints is the highest combined point total one match can produce:
// every duel pays WinPoints and the team comparison pays TeamWinPoints.
func (d LeagueSeason) MaxMatchPoints() float64 {
	return float64(d.PlayersPerTeam)*d.Scoring.WinPoints + d.Scoring.TeamWinPoints
}
