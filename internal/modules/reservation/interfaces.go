package reservation

import (
	"context"

	"eventrent/internal/domain"
	"eventrent/internal/modules/availability"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Save(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context, limit, offset int) ([]domain.Reservation, error)
}

// Quoter owns all money arithmetic. The lifecycle never computes a price
// itself; it stores what the quoter returns.
type Quoter interface {
	Quote(ctx context.Context, packKey domain.PackKey, interval domain.TimeInterval, items []domain.FinalItem) (domain.PricingSnapshot, domain.FinalItems, error)
}

// AvailabilityChecker is re-run inside the create transaction so a
// reservation can never land on a window another writer just took.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, packKey domain.PackKey, interval domain.TimeInterval, excludeHoldID string) (*availability.Result, error)
}

// HoldConsumer links the claimed hold to the new reservation. The hold is
// an optimization: a lapsed one is reported, never fatal.
type HoldConsumer interface {
	ConsumeHold(ctx context.Context, holdID, reservationID string) (*domain.Hold, bool, error)
}

type NotificationSender interface {
	NotifyReservationCreated(ctx context.Context, r *domain.Reservation) error
	NotifyReservationStatus(ctx context.Context, reservationID string, from, to domain.ReservationStatus) error
}
