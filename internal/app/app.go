// Package app wires a dataset backend and the engine services together for
// the command-line tools. The engine packages stay free of environment and
// connection concerns.
package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/strikelane/bowling-league/internal/config"
	"github.com/strikelane/bowling-league/internal/domain/result"
	"github.com/strikelane/bowling-league/internal/domain/roster"
	"github.com/strikelane/bowling-league/internal/infrastructure/repository/csvfile"
	"github.com/strikelane/bowling-league/internal/infrastructure/repository/memory"
	"github.com/strikelane/bowling-league/internal/infrastructure/repository/postgres"
	"github.com/strikelane/bowling-league/internal/platform/logging"
	"github.com/strikelane/bowling-league/internal/usecase"
)

// Engine bundles the computation services over one dataset backend.
type Engine struct {
	Results    result.Repository
	Writer     result.Writer
	Schedule   *usecase.ScheduleService
	Score      *usecase.ScoreService
	Standings  *usecase.StandingsService
	Validation *usecase.ValidationService
	Simulation *usecase.SimulationService

	close func() error
}

// NewEngine builds the engine over the configured data source. The returned
// close function releases the backend (a no-op for memory and csv).
func NewEngine(cfg config.Config, def roster.LeagueSeason, logger *logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var (
		results result.Repository
		writer  result.Writer
		closeFn = func() error { return nil }
	)

	switch cfg.DataSource {
	case config.SourceMemory:
		repo := memory.NewResultRepository(nil)
		results, writer = repo, repo
	case config.SourceCSV:
		repo, err := csvfile.Open(cfg.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("open csv dataset: %w", err)
		}
		results, writer = repo, repo
	case config.SourcePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres dataset: %w", err)
		}
		repo := postgres.NewResultRepository(db)
		results, writer = repo, repo
		closeFn = db.Close
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}

	return &Engine{
		Results:    results,
		Writer:     writer,
		Schedule:   usecase.NewScheduleService(logger),
		Score:      usecase.NewScoreService(def.Scoring, cfg.ScoreWorkers, logger),
		Standings:  usecase.NewStandingsService(results, logger),
		Validation: usecase.NewValidationService(logger),
		Simulation: usecase.NewSimulationService(cfg.SimSeed, logger),
		close:      closeFn,
	}, nil
}

func (e *Engine) Close() error {
	if e == nil || e.close == nil {
		return nil
	}
	return e.close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}
