package repository

import (
	"context"
	"errors"
	"time"

	"eventrent/internal/domain"

	"gorm.io/gorm"
)

var ErrHoldNotFound = errors.New("hold not found")

type HoldRepository struct {
	db *gorm.DB
}

func NewHoldRepository(db *gorm.DB) *HoldRepository {
	return &HoldRepository{db: db}
}

type holdModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	PackKey       string    `gorm:"column:pack_key;index:idx_holds_pack_window"`
	StartAt       time.Time `gorm:"column:start_at;index:idx_holds_pack_window"`
	EndAt         time.Time `gorm:"column:end_at"`
	StartTime     *string   `gorm:"column:start_time"`
	EndTime       *string   `gorm:"column:end_time"`
	Status        string    `gorm:"column:status"`
	ExpiresAt     time.Time `gorm:"column:expires_at"`
	ReservationID *string   `gorm:"column:reservation_id"`
	ContactEmail  *string   `gorm:"column:contact_email"`
	ContactPhone  *string   `gorm:"column:contact_phone"`
	Source        *string   `gorm:"column:source"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (holdModel) TableName() string { return "holds" }

func toDomainHold(m holdModel) *domain.Hold {
	h := &domain.Hold{
		ID:      m.ID,
		PackKey: domain.PackKey(m.PackKey),
		Interval: domain.TimeInterval{
			StartAt:   m.StartAt,
			EndAt:     m.EndAt,
			StartTime: m.StartTime,
			EndTime:   m.EndTime,
		},
		Status:        domain.HoldStatus(m.Status),
		ExpiresAt:     m.ExpiresAt,
		ReservationID: m.ReservationID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.ContactEmail != nil {
		h.ContactEmail = *m.ContactEmail
	}
	if m.ContactPhone != nil {
		h.ContactPhone = *m.ContactPhone
	}
	if m.Source != nil {
		h.Source = *m.Source
	}
	return h
}

func toHoldModel(h *domain.Hold) holdModel {
	m := holdModel{
		ID:            h.ID,
		PackKey:       string(h.PackKey),
		StartAt:       h.Interval.StartDate(),
		EndAt:         h.Interval.EndDate(),
		StartTime:     h.Interval.StartTime,
		EndTime:       h.Interval.EndTime,
		Status:        string(h.Status),
		ExpiresAt:     h.ExpiresAt,
		ReservationID: h.ReservationID,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
	if h.ContactEmail != "" {
		v := h.ContactEmail
		m.ContactEmail = &v
	}
	if h.ContactPhone != "" {
		v := h.ContactPhone
		m.ContactPhone = &v
	}
	if h.Source != "" {
		v := h.Source
		m.Source = &v
	}
	return m
}

func (r *HoldRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

func (r *HoldRepository) Create(ctx context.Context, h *domain.Hold) error {
	m := toHoldModel(h)
	if tx := conn(ctx, r.db).Create(&m); tx.Error != nil {
		return tx.Error
	}
	h.CreatedAt = m.CreatedAt
	h.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *HoldRepository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	var m holdModel
	tx := conn(ctx, r.db).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, tx.Error
	}
	return toDomainHold(m), nil
}

// FindBlocking returns holds that could still block the candidate day
// window: active, unexpired at now, date ranges intersecting. Time-of-day
// refinement stays with the caller.
func (r *HoldRepository) FindBlocking(ctx context.Context, packKey domain.PackKey, startDate, endDate, now time.Time, excludeID string) ([]domain.Hold, error) {
	q := conn(ctx, r.db).
		Where("pack_key = ?", string(packKey)).
		Where("status = ?", string(domain.HoldActive)).
		Where("expires_at > ?", now).
		Where("start_at <= ? AND end_at >= ?", endDate, startDate)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var rows []holdModel
	if tx := q.Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Hold, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainHold(m))
	}
	return out, nil
}

// Consume flips an ACTIVE unexpired hold to CONSUMED and links the
// reservation. The status guard makes the update a compare-and-set: a
// false return means another writer won or the hold lapsed.
func (r *HoldRepository) Consume(ctx context.Context, holdID, reservationID string, now time.Time) (bool, error) {
	tx := conn(ctx, r.db).Model(&holdModel{}).
		Where("id = ? AND status = ? AND expires_at > ?", holdID, string(domain.HoldActive), now).
		Updates(map[string]interface{}{
			"status":         string(domain.HoldConsumed),
			"reservation_id": reservationID,
			"updated_at":     now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// MarkExpired is bookkeeping for the janitor; correctness never depends on
// it because blocking reads filter on expires_at.
func (r *HoldRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := conn(ctx, r.db).Model(&holdModel{}).
		Where("status = ? AND expires_at <= ?", string(domain.HoldActive), now).
		Updates(map[string]interface{}{
			"status":     string(domain.HoldExpired),
			"updated_at": now,
		})
	return tx.RowsAffected, tx.Error
}
