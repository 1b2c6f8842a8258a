package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"eventrent/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID      string `gorm:"column:id;primaryKey"`
	PackKey string `gorm:"column:pack_key;index:idx_reservations_pack_window"`

	StartAt   time.Time `gorm:"column:start_at;index:idx_reservations_pack_window"`
	EndAt     time.Time `gorm:"column:end_at"`
	StartTime *string   `gorm:"column:start_time"`
	EndTime   *string   `gorm:"column:end_time"`

	Address       string  `gorm:"column:address"`
	CustomerName  *string `gorm:"column:customer_name"`
	CustomerEmail *string `gorm:"column:customer_email"`
	CustomerPhone *string `gorm:"column:customer_phone"`

	Items *string `gorm:"column:items;type:text"`

	BasePackPrice decimal.Decimal `gorm:"column:base_pack_price;type:decimal(12,2)"`
	ExtrasTotal   decimal.Decimal `gorm:"column:extras_total;type:decimal(12,2)"`
	PriceTotal    decimal.Decimal `gorm:"column:price_total;type:decimal(12,2)"`
	DepositAmount decimal.Decimal `gorm:"column:deposit_amount;type:decimal(12,2)"`
	BalanceAmount decimal.Decimal `gorm:"column:balance_amount;type:decimal(12,2)"`

	Status string `gorm:"column:status;index"`

	DepositPaidAmount  *decimal.Decimal `gorm:"column:deposit_paid_amount;type:decimal(12,2)"`
	DepositPaidAt      *time.Time       `gorm:"column:deposit_paid_at"`
	BalanceDueAt       *time.Time       `gorm:"column:balance_due_at"`
	BalancePaidAt      *time.Time       `gorm:"column:balance_paid_at"`
	DepositRequestedAt *time.Time       `gorm:"column:deposit_requested_at"`

	SecurityDepositAuthorizedAt *time.Time `gorm:"column:security_deposit_authorized_at"`

	DepositPaymentRef         *string `gorm:"column:deposit_payment_ref"`
	BalancePaymentRef         *string `gorm:"column:balance_payment_ref"`
	SecurityDepositPaymentRef *string `gorm:"column:security_deposit_payment_ref"`

	ContractSigned bool    `gorm:"column:contract_signed"`
	HoldID         *string `gorm:"column:hold_id"`
	Summary        *string `gorm:"column:summary;type:text"`
	AdminNotes     *string `gorm:"column:admin_notes;type:text"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) (*domain.Reservation, error) {
	r := &domain.Reservation{
		ID:      m.ID,
		PackKey: domain.PackKey(m.PackKey),
		Interval: domain.TimeInterval{
			StartAt:   m.StartAt,
			EndAt:     m.EndAt,
			StartTime: m.StartTime,
			EndTime:   m.EndTime,
		},
		Address: m.Address,
		Pricing: domain.PricingSnapshot{
			BasePackPrice: m.BasePackPrice,
			ExtrasTotal:   m.ExtrasTotal,
			PriceTotal:    m.PriceTotal,
			DepositAmount: m.DepositAmount,
			BalanceAmount: m.BalanceAmount,
		},
		Status:             domain.ReservationStatus(m.Status),
		DepositPaidAmount:  m.DepositPaidAmount,
		DepositPaidAt:      m.DepositPaidAt,
		BalanceDueAt:       m.BalanceDueAt,
		BalancePaidAt:      m.BalancePaidAt,
		DepositRequestedAt: m.DepositRequestedAt,

		SecurityDepositAuthorizedAt: m.SecurityDepositAuthorizedAt,

		ContractSigned: m.ContractSigned,
		HoldID:         m.HoldID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		CancelledAt:    m.CancelledAt,
	}
	if m.CustomerName != nil {
		r.CustomerName = *m.CustomerName
	}
	if m.CustomerEmail != nil {
		r.CustomerEmail = *m.CustomerEmail
	}
	if m.CustomerPhone != nil {
		r.CustomerPhone = *m.CustomerPhone
	}
	if m.DepositPaymentRef != nil {
		r.DepositPaymentRef = *m.DepositPaymentRef
	}
	if m.BalancePaymentRef != nil {
		r.BalancePaymentRef = *m.BalancePaymentRef
	}
	if m.SecurityDepositPaymentRef != nil {
		r.SecurityDepositPaymentRef = *m.SecurityDepositPaymentRef
	}
	if m.Summary != nil {
		r.Summary = *m.Summary
	}
	if m.AdminNotes != nil {
		r.AdminNotes = *m.AdminNotes
	}
	if m.Items != nil && *m.Items != "" {
		if err := json.Unmarshal([]byte(*m.Items), &r.Items); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func toReservationModel(r *domain.Reservation) (reservationModel, error) {
	m := reservationModel{
		ID:                 r.ID,
		PackKey:            string(r.PackKey),
		StartAt:            r.Interval.StartDate(),
		EndAt:              r.Interval.EndDate(),
		StartTime:          r.Interval.StartTime,
		EndTime:            r.Interval.EndTime,
		Address:            r.Address,
		BasePackPrice:      r.Pricing.BasePackPrice,
		ExtrasTotal:        r.Pricing.ExtrasTotal,
		PriceTotal:         r.Pricing.PriceTotal,
		DepositAmount:      r.Pricing.DepositAmount,
		BalanceAmount:      r.Pricing.BalanceAmount,
		Status:             string(r.Status),
		DepositPaidAmount:  r.DepositPaidAmount,
		DepositPaidAt:      r.DepositPaidAt,
		BalanceDueAt:       r.BalanceDueAt,
		BalancePaidAt:      r.BalancePaidAt,
		DepositRequestedAt: r.DepositRequestedAt,

		SecurityDepositAuthorizedAt: r.SecurityDepositAuthorizedAt,

		ContractSigned: r.ContractSigned,
		HoldID:         r.HoldID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		CancelledAt:    r.CancelledAt,
	}
	setIfNotEmpty := func(dst **string, v string) {
		if v != "" {
			s := v
			*dst = &s
		}
	}
	setIfNotEmpty(&m.CustomerName, r.CustomerName)
	setIfNotEmpty(&m.CustomerEmail, r.CustomerEmail)
	setIfNotEmpty(&m.CustomerPhone, r.CustomerPhone)
	setIfNotEmpty(&m.DepositPaymentRef, r.DepositPaymentRef)
	setIfNotEmpty(&m.BalancePaymentRef, r.BalancePaymentRef)
	setIfNotEmpty(&m.SecurityDepositPaymentRef, r.SecurityDepositPaymentRef)
	setIfNotEmpty(&m.Summary, r.Summary)
	setIfNotEmpty(&m.AdminNotes, r.AdminNotes)
	if len(r.Items) > 0 {
		raw, err := json.Marshal(r.Items)
		if err != nil {
			return m, err
		}
		s := string(raw)
		m.Items = &s
	}
	return m, nil
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m, err := toReservationModel(res)
	if err != nil {
		return err
	}
	if tx := conn(ctx, r.db).Create(&m); tx.Error != nil {
		return tx.Error
	}
	res.CreatedAt = m.CreatedAt
	res.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var m reservationModel
	tx := conn(ctx, r.db).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, tx.Error
	}
	return toDomainReservation(m)
}

// Save persists the full record. Callers run it inside WithTx when the
// write must be atomic with a status guard they re-checked.
func (r *ReservationRepository) Save(ctx context.Context, res *domain.Reservation) error {
	m, err := toReservationModel(res)
	if err != nil {
		return err
	}
	tx := conn(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	res.UpdatedAt = m.UpdatedAt
	return nil
}

// FindBlocking returns non-cancelled reservations whose day window
// intersects the candidate one. Time-of-day refinement stays in-process.
func (r *ReservationRepository) FindBlocking(ctx context.Context, packKey domain.PackKey, startDate, endDate time.Time) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := conn(ctx, r.db).
		Where("pack_key = ?", string(packKey)).
		Where("status <> ?", string(domain.ReservationCancelled)).
		Where("start_at <= ? AND end_at >= ?", endDate, startDate).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		res, err := toDomainReservation(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

func (r *ReservationRepository) List(ctx context.Context, limit, offset int) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := conn(ctx, r.db).Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		res, err := toDomainReservation(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}
