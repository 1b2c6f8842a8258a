package admin

import (
	"context"
	"time"

	"eventrent/internal/domain"
)

type PackRepository interface {
	Create(ctx context.Context, p *domain.Pack) error
	List(ctx context.Context) ([]domain.Pack, error)
}

// HoldJanitor flips lapsed holds to their terminal status. Readers already
// ignore them; this is bookkeeping, not correctness.
type HoldJanitor interface {
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}
