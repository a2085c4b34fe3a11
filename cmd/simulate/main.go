package main

import (
	"context"
	"fmt"
	"os"

	"github.com/strikelane/bowling-league/internal/app"
	"github.com/strikelane/bowling-league/internal/config"
	"github.com/strikelane/bowling-league/internal/domain/roster"
	"github.com/strikelane/bowling-league/internal/domain/standings"
	"github.com/strikelane/bowling-league/internal/export"
	"github.com/strikelane/bowling-league/internal/infrastructure/repository/memory"
	"github.com/strikelane/bowling-league/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	def := memory.SeedLeagueSeason()

	engine, err := app.NewEngine(cfg, def, logger)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer func() { _ = engine.Close() }()

	sched, err := engine.Schedule.Generate(ctx, def, cfg.DoubleRound)
	if err != nil {
		return fmt.Errorf("generate schedule: %w", err)
	}

	raw, err := engine.Simulation.SimulateSeason(ctx, def, sched, cfg.SimFirstMatchDay, cfg.SimLocation)
	if err != nil {
		return fmt.Errorf("simulate season: %w", err)
	}

	scored, err := engine.Score.ScoreSeason(ctx, raw)
	if err != nil {
		return fmt.Errorf("score season: %w", err)
	}

	if err := engine.Writer.ReplaceSeason(ctx, def.League, def.Season, scored.Rows()); err != nil {
		return fmt.Errorf("store computed rows: %w", err)
	}

	table, err := engine.Standings.Standings(ctx, def.League, def.Season, len(sched.Rounds))
	if err != nil {
		return fmt.Errorf("compute standings: %w", err)
	}

	issues := engine.Validation.Validate(ctx, scored.Rows(), []roster.LeagueSeason{def})
	issues = append(issues, scored.Issues...)

	printTable(def, table)
	for _, issue := range issues {
		fmt.Printf("issue: %s\n", issue)
	}

	if cfg.ExportPath != "" {
		f, err := os.Create(cfg.ExportPath)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := export.WriteReport(f, def.League, def.Season, table, issues); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		logger.Info("report exported", "path", cfg.ExportPath)
	}

	return nil
}

func printTable(def roster.LeagueSeason, table []standings.TeamStanding) {
	fmt.Printf("%s %s\n", def.League, def.Season)
	fmt.Printf("%-3s %-16s %8s %8s %8s\n", "#", "team", "points", "pins", "avg")
	for _, st := range table {
		fmt.Printf("%-3d %-16s %8.1f %8d %8.1f\n",
			st.Position, st.TeamID, st.TotalPoints, st.TotalScore, st.Average)
	}
}
