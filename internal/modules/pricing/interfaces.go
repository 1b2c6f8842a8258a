package pricing

import (
	"context"

	"eventrent/internal/domain"
)

// PackRepository provides the immutable pack reference data the engine
// prices against.
type PackRepository interface {
	GetByKey(ctx context.Context, key domain.PackKey) (*domain.Pack, error)
}
