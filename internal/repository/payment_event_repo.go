package repository

import (
	"context"
	"errors"
	"time"

	"eventrent/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrDuplicatePaymentEvent = errors.New("payment event already processed")

type PaymentEventRepository struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) *PaymentEventRepository {
	return &PaymentEventRepository{db: db}
}

type paymentEventModel struct {
	ID             int64           `gorm:"column:id;primaryKey"`
	IdempotencyKey string          `gorm:"column:idempotency_key;uniqueIndex"`
	ReservationID  string          `gorm:"column:reservation_id;index"`
	Kind           string          `gorm:"column:kind"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(12,2)"`
	RawBody        string          `gorm:"column:raw_body;type:text"`
	ProcessedAt    time.Time       `gorm:"column:processed_at"`
}

func (paymentEventModel) TableName() string { return "payment_events" }

func (r *PaymentEventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

// Create records a processed event. The unique index on idempotency_key is
// what makes concurrent duplicate deliveries collapse to one effect.
func (r *PaymentEventRepository) Create(ctx context.Context, ev *domain.PaymentEvent) error {
	m := paymentEventModel{
		IdempotencyKey: ev.IdempotencyKey,
		ReservationID:  ev.ReservationID,
		Kind:           string(ev.Kind),
		Amount:         ev.Amount,
		RawBody:        ev.RawBody,
		ProcessedAt:    ev.ProcessedAt,
	}
	if tx := conn(ctx, r.db).Create(&m); tx.Error != nil {
		if IsUniqueViolation(tx.Error) {
			return ErrDuplicatePaymentEvent
		}
		return tx.Error
	}
	ev.ID = m.ID
	return nil
}

func (r *PaymentEventRepository) FindByKey(ctx context.Context, key string) (*domain.PaymentEvent, error) {
	var m paymentEventModel
	tx := conn(ctx, r.db).Where("idempotency_key = ?", key).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &domain.PaymentEvent{
		ID:             m.ID,
		IdempotencyKey: m.IdempotencyKey,
		ReservationID:  m.ReservationID,
		Kind:           domain.PaymentKind(m.Kind),
		Amount:         m.Amount,
		RawBody:        m.RawBody,
		ProcessedAt:    m.ProcessedAt,
	}, nil
}
