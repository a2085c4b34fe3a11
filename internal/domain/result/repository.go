package result

import "context"

// Repository exposes read access to one immutable snapshot of result rows.
// Implementations must return freshly allocated slices; callers are free to
// reorder what they receive.
type Repository interface {
	ListBySeason(ctx context.Context, league, season string) ([]Row, error)
	ListAll(ctx context.Context) ([]Row, error)
}

// Writer is implemented by backends that can persist computed rows back
// alongside the raw input snapshot.
type Writer interface {
	ReplaceSeason(ctx context.Context, league, season string, rows []Row) error
}
