package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/strikelane/bowling-league/internal/domain/result"
	qb "github.com/strikelane/bowling-league/internal/platform/querybuilder"
)

const resultTable = "match_results"

// ResultRepository stores result rows in postgres. It satisfies both
// result.Repository and result.Writer.
type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListBySeason(ctx context.Context, league, season string) ([]result.Row, error) {
	query, args, err := qb.Select("*").From(resultTable).
		Where(
			qb.Eq("league", league),
			qb.Eq("season", season),
		).
		OrderBy("week", "round_number", "match_number", "team", "position NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select results by season")
	}

	out := make([]result.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ResultRepository) ListAll(ctx context.Context) ([]result.Row, error) {
	query, args, err := qb.Select("*").From(resultTable).
		OrderBy("league", "season", "week", "round_number", "match_number", "team", "position NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select all results")
	}

	out := make([]result.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceSeason deletes and reinserts one league season inside a single
// transaction so readers never observe a half-written snapshot.
func (r *ResultRepository) ReplaceSeason(ctx context.Context, league, season string, rows []result.Row) error {
	deleteSQL, deleteArgs, err := qb.DeleteFrom(resultTable).
		Where(
			qb.Eq("league", league),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete results query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin replace season")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return crerr.Wrap(err, "delete season rows")
	}

	if len(rows) > 0 {
		builder := qb.InsertInto(resultTable).Columns(resultColumns...)
		for _, row := range rows {
			builder = builder.Values(rowValues(row)...)
		}
		insertSQL, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return crerr.Wrap(err, "insert season rows")
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit replace season")
	}
	return nil
}
