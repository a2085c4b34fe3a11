package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/strikelane/bowling-league/internal/platform/logging"
)

const (
	SourceMemory   = "memory"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config stores runtime configuration for the engine tooling. The engine
// packages themselves never read the environment; everything is passed in.
type Config struct {
	AppEnv                  string
	ServiceName             string
	LogLevel                logging.Level
	DataSource              string
	CSVPath                 string
	DBURL                   string
	DBDisablePreparedBinary bool
	DoubleRound             bool
	ScoreWorkers            int
	SimSeed                 int64
	SimFirstMatchDay        time.Time
	SimLocation             string
	ExportPath              string
}

func Load() (Config, error) {
	cfg := Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "bowling-league"),
		DataSource:  strings.ToLower(getEnv("DATA_SOURCE", SourceMemory)),
		CSVPath:     getEnv("CSV_PATH", ""),
		DBURL:       getEnv("DB_URL", ""),
		SimLocation: getEnv("SIM_LOCATION", "Kegelbahn Mitte"),
		ExportPath:  getEnv("EXPORT_PATH", ""),
	}

	switch cfg.DataSource {
	case SourceMemory, SourceCSV, SourcePostgres:
	default:
		return Config{}, fmt.Errorf("parse DATA_SOURCE: unknown source %q", cfg.DataSource)
	}
	if cfg.DataSource == SourceCSV && cfg.CSVPath == "" {
		return Config{}, fmt.Errorf("CSV_PATH is required when DATA_SOURCE=csv")
	}
	if cfg.DataSource == SourcePostgres && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DATA_SOURCE=postgres")
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	doubleRound, err := strconv.ParseBool(getEnv("DOUBLE_ROUND", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DOUBLE_ROUND: %w", err)
	}
	cfg.DoubleRound = doubleRound

	disablePrepared, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY: %w", err)
	}
	cfg.DBDisablePreparedBinary = disablePrepared

	workers, err := strconv.Atoi(getEnv("SCORE_WORKERS", "8"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_WORKERS: %w", err)
	}
	if workers < 1 {
		return Config{}, fmt.Errorf("parse SCORE_WORKERS: must be >= 1, got %d", workers)
	}
	cfg.ScoreWorkers = workers

	seed, err := strconv.ParseInt(getEnv("SIM_SEED", "1"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIM_SEED: %w", err)
	}
	cfg.SimSeed = seed

	firstDay, err := time.Parse("2006-01-02", getEnv("SIM_FIRST_MATCH_DAY", "2025-09-01"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SIM_FIRST_MATCH_DAY: %w", err)
	}
	cfg.SimFirstMatchDay = firstDay

	return cfg, nil
}

func parseLogLevel(raw string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.LevelDebug, nil
	case "info", "":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return logging.LevelInfo, fmt.Errorf("parse LOG_LEVEL: unknown level %q", raw)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
