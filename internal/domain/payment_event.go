package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentKind string

const (
	PaymentDeposit         PaymentKind = "deposit"
	PaymentBalance         PaymentKind = "balance"
	PaymentSecurityDeposit PaymentKind = "security_deposit"
)

// PaymentEvent is one processed provider callback. IdempotencyKey is the
// provider-assigned key; a row existing for a key means the event has
// already taken effect and redelivery must be a no-op.
type PaymentEvent struct {
	ID             int64           `json:"id"`
	IdempotencyKey string          `json:"idempotency_key"`
	ReservationID  string          `json:"reservation_id"`
	Kind           PaymentKind     `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	RawBody        string          `json:"-"`
	ProcessedAt    time.Time       `json:"processed_at"`
}
