package usecase

import "fmt"

// Issue kinds reported by scoring and validation. Issues are always
// collected, never raised; the caller decides whether any of them is fatal.
const (
	IssueStructuralMismatch = "structural_mismatch"
	IssueMissingTeams       = "missing_teams"
	IssuePointsOutOfRange   = "points_out_of_range"
	IssueRoundMatchCount    = "round_match_count"
	IssueUnknownPlayer      = "unknown_player"
	IssueDuplicatePosition  = "duplicate_position"
)

// Issue is one structural finding about the dataset.
type Issue struct {
	Kind    string
	League  string
	Season  string
	Week    int
	Details string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s league=%s season=%s week=%d: %s",
		i.Kind, i.League, i.Season, i.Week, i.Details)
}
