package hold

import (
	"context"
	"time"

	"eventrent/internal/domain"
	"eventrent/internal/modules/availability"
)

type HoldRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, h *domain.Hold) error
	GetByID(ctx context.Context, id string) (*domain.Hold, error)
	Consume(ctx context.Context, holdID, reservationID string, now time.Time) (bool, error)
}

// AvailabilityChecker is re-run inside the hold-insert transaction to keep
// check-then-act one indivisible step.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, packKey domain.PackKey, interval domain.TimeInterval, excludeHoldID string) (*availability.Result, error)
}

// NotificationSender pushes lifecycle events to the admin hub. Failures
// never fail the business operation.
type NotificationSender interface {
	NotifyHoldCreated(ctx context.Context, holdID string, packKey domain.PackKey, startAt time.Time) error
}
