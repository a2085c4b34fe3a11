package standings

// WeekPerformance is one team's totals for a single week.
type WeekPerformance struct {
	Week        int
	Score       int
	Points      float64
	GamesPlayed int
}

// RankPoint is a team's 1-based rank at one week for one metric.
type RankPoint struct {
	Week int
	Rank int
}

// TeamStanding is one ranked row of a league table. Position is recomputed
// from scratch on every aggregation; nothing here mutates incrementally.
type TeamStanding struct {
	TeamID      string
	Position    int
	TotalScore  int
	TotalPoints float64
	// Average is total score over individual games played, not over the
	// number of team-total rows.
	Average     float64
	GamesPlayed int
	Weeks       []WeekPerformance
	// WeeklyRanks ranks each week in isolation; CumulativeRanks ranks the
	// running totals through each week. The two series move independently.
	WeeklyRanks     []RankPoint
	CumulativeRanks []RankPoint
}

// WeeklyRow is one team's line in a single-week table.
type WeeklyRow struct {
	TeamID      string
	Score       int
	Points      float64
	Average     float64
	GamesPlayed int
}
