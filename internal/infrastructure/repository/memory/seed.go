package memory

import "github.com/strikelane/bowling-league/internal/domain/roster"

const (
	SeedLeague = "city-league"
	SeedSeason = "2025/26"
)

// SeedLeagueSeason is a small four-team fixture league used by the simulator
// and the tests.
func SeedLeagueSeason() roster.LeagueSeason {
	return roster.LeagueSeason{
		League:         SeedLeague,
		Season:         SeedSeason,
		Teams:          []string{"alley-cats", "pin-pushers", "split-happens", "gutter-gang"},
		PlayersPerTeam: 4,
		Players: []roster.Player{
			{ID: "ac-01", Name: "Mara Voss", Team: "alley-cats"},
			{ID: "ac-02", Name: "Jonas Brandt", Team: "alley-cats"},
			{ID: "ac-03", Name: "Heike Sommer", Team: "alley-cats"},
			{ID: "ac-04", Name: "Timo Keller", Team: "alley-cats"},
			{ID: "pp-01", Name: "Lena Hartmann", Team: "pin-pushers"},
			{ID: "pp-02", Name: "Oskar Wendt", Team: "pin-pushers"},
			{ID: "pp-03", Name: "Rita Falk", Team: "pin-pushers"},
			{ID: "pp-04", Name: "Dario Lange", Team: "pin-pushers"},
			{ID: "sh-01", Name: "Nils Gruber", Team: "split-happens"},
			{ID: "sh-02", Name: "Carla Winter", Team: "split-happens"},
			{ID: "sh-03", Name: "Falko Busch", Team: "split-happens"},
			{ID: "sh-04", Name: "Ines Roth", Team: "split-happens"},
			{ID: "gg-01", Name: "Paul Siebert", Team: "gutter-gang"},
			{ID: "gg-02", Name: "Anja Krause", Team: "gutter-gang"},
			{ID: "gg-03", Name: "Leif Maurer", Team: "gutter-gang"},
			{ID: "gg-04", Name: "Sonja Vogt", Team: "gutter-gang"},
		},
		Scoring: roster.DefaultScoring(),
	}
}
