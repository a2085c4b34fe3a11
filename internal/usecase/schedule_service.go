package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/strikelane/bowling-league/internal/domain/roster"
	"github.com/strikelane/bowling-league/internal/domain/schedule"
	"github.com/strikelane/bowling-league/internal/platform/logging"
)

// ScheduleService builds round-robin fixture lists for a league season.
type ScheduleService struct {
	logger *logging.Logger
}

func NewScheduleService(logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ScheduleService{logger: logger}
}

// Generate validates the definition and produces its fixture schedule. The
// team order of the definition fully determines the output.
func (s *ScheduleService) Generate(ctx context.Context, def roster.LeagueSeason, doubleRound bool) (schedule.Schedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate")
	defer span.End()

	if err := def.Validate(); err != nil {
		return schedule.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sched, err := schedule.Generate(def.Teams, doubleRound)
	if err != nil {
		if errors.Is(err, schedule.ErrTooFewTeams) {
			return schedule.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return schedule.Schedule{}, fmt.Errorf("generate schedule: %w", err)
	}

	s.logger.DebugContext(ctx, "schedule generated",
		"league", def.League, "season", def.Season,
		"teams", len(def.Teams), "rounds", len(sched.Rounds))
	return sched, nil
}
