package payment

import (
	"context"

	"eventrent/internal/domain"

	"github.com/shopspring/decimal"
)

type PaymentEventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, ev *domain.PaymentEvent) error
	FindByKey(ctx context.Context, key string) (*domain.PaymentEvent, error)
}

// ReservationLifecycle is the single writer of reservation payment state.
// The reconciler only verifies, dedupes and dispatches.
type ReservationLifecycle interface {
	ApplyDepositPaid(ctx context.Context, id string, amount decimal.Decimal, paymentRef string) (*domain.Reservation, error)
	ApplyBalancePaid(ctx context.Context, id string, amount decimal.Decimal, paymentRef string) (*domain.Reservation, error)
	ApplySecurityDepositAuthorized(ctx context.Context, id, paymentRef string) (*domain.Reservation, error)
}
