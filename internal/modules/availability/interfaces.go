package availability

import (
	"context"
	"time"

	"eventrent/internal/domain"
)

// HoldRepository supplies holds that may still block a candidate window.
type HoldRepository interface {
	FindBlocking(ctx context.Context, packKey domain.PackKey, startDate, endDate, now time.Time, excludeID string) ([]domain.Hold, error)
}

// ReservationRepository supplies committed bookings for a candidate window.
type ReservationRepository interface {
	FindBlocking(ctx context.Context, packKey domain.PackKey, startDate, endDate time.Time) ([]domain.Reservation, error)
}

// PackRepository reads pack stock. The ForUpdate variant locks the pack
// row when an enclosing transaction is open, serializing writers on the
// same pack for the rest of that transaction.
type PackRepository interface {
	GetByKeyForUpdate(ctx context.Context, key domain.PackKey) (*domain.Pack, error)
}
