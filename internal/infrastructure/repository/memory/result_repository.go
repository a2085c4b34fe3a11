package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/strikelane/bowling-league/internal/domain/result"
)

type seasonKey struct {
	league string
	season string
}

// ResultRepository keeps result rows in memory, grouped by league season.
// Reads copy out so callers always work on their own snapshot.
type ResultRepository struct {
	mu   sync.RWMutex
	rows map[seasonKey][]result.Row
}

func NewResultRepository(rows []result.Row) *ResultRepository {
	bySeason := make(map[seasonKey][]result.Row)
	for _, row := range rows {
		key := seasonKey{league: row.League, season: row.Season}
		bySeason[key] = append(bySeason[key], row)
	}
	return &ResultRepository{rows: bySeason}
}

func (r *ResultRepository) ListBySeason(_ context.Context, league, season string) ([]result.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.rows[seasonKey{league: league, season: season}]
	out := make([]result.Row, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *ResultRepository) ListAll(_ context.Context) ([]result.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]seasonKey, 0, len(r.rows))
	total := 0
	for key, items := range r.rows {
		keys = append(keys, key)
		total += len(items)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].league != keys[j].league {
			return keys[i].league < keys[j].league
		}
		return keys[i].season < keys[j].season
	})

	out := make([]result.Row, 0, total)
	for _, key := range keys {
		out = append(out, r.rows[key]...)
	}
	return out, nil
}

func (r *ResultRepository) ReplaceSeason(_ context.Context, league, season string, rows []result.Row) error {
	fresh := make([]result.Row, 0, len(rows))
	fresh = append(fresh, rows...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[seasonKey{league: league, season: season}] = fresh
	return nil
}
