package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"eventrent/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPackNotFound = errors.New("pack not found")

type PackRepository struct {
	db *gorm.DB
}

func NewPackRepository(db *gorm.DB) *PackRepository {
	return &PackRepository{db: db}
}

type packModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	Key           string          `gorm:"column:key;uniqueIndex"`
	Name          string          `gorm:"column:name"`
	BasePrice     decimal.Decimal `gorm:"column:base_price;type:decimal(12,2)"`
	IncludedDays  int             `gorm:"column:included_days"`
	ExtraDayPrice decimal.Decimal `gorm:"column:extra_day_price;type:decimal(12,2)"`
	TotalQuantity int             `gorm:"column:total_quantity"`
	DefaultItems  *string         `gorm:"column:default_items;type:text"`
	Catalog       *string         `gorm:"column:catalog;type:text"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (packModel) TableName() string { return "packs" }

func toDomainPack(m packModel) (*domain.Pack, error) {
	p := &domain.Pack{
		ID:            m.ID,
		Key:           domain.PackKey(m.Key),
		Name:          m.Name,
		BasePrice:     m.BasePrice,
		IncludedDays:  m.IncludedDays,
		ExtraDayPrice: m.ExtraDayPrice,
		TotalQuantity: m.TotalQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.DefaultItems != nil && *m.DefaultItems != "" {
		if err := json.Unmarshal([]byte(*m.DefaultItems), &p.DefaultItems); err != nil {
			return nil, err
		}
	}
	if m.Catalog != nil && *m.Catalog != "" {
		if err := json.Unmarshal([]byte(*m.Catalog), &p.Catalog); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func toPackModel(p *domain.Pack) (packModel, error) {
	m := packModel{
		ID:            p.ID,
		Key:           string(p.Key),
		Name:          p.Name,
		BasePrice:     p.BasePrice,
		IncludedDays:  p.IncludedDays,
		ExtraDayPrice: p.ExtraDayPrice,
		TotalQuantity: p.TotalQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if len(p.DefaultItems) > 0 {
		raw, err := json.Marshal(p.DefaultItems)
		if err != nil {
			return m, err
		}
		s := string(raw)
		m.DefaultItems = &s
	}
	if len(p.Catalog) > 0 {
		raw, err := json.Marshal(p.Catalog)
		if err != nil {
			return m, err
		}
		s := string(raw)
		m.Catalog = &s
	}
	return m, nil
}

func (r *PackRepository) Create(ctx context.Context, p *domain.Pack) error {
	m, err := toPackModel(p)
	if err != nil {
		return err
	}
	if tx := conn(ctx, r.db).Create(&m); tx.Error != nil {
		return tx.Error
	}
	p.ID = m.ID
	return nil
}

func (r *PackRepository) GetByKey(ctx context.Context, key domain.PackKey) (*domain.Pack, error) {
	return getPackByKey(conn(ctx, r.db), key)
}

// GetByKeyForUpdate reads the pack row under SELECT ... FOR UPDATE when an
// enclosing transaction is open on postgres. Writers for the same pack
// serialize on that row lock until commit, so the availability re-check
// and the insert that follows act as one indivisible step even under
// READ COMMITTED. Outside a transaction, and on sqlite (whose
// database-level write lock already serializes writers), this is a plain
// read.
func (r *PackRepository) GetByKeyForUpdate(ctx context.Context, key domain.PackKey) (*domain.Pack, error) {
	h := conn(ctx, r.db)
	if txFromContext(ctx) != nil && h.Dialector.Name() == "postgres" {
		h = h.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return getPackByKey(h, key)
}

func getPackByKey(h *gorm.DB, key domain.PackKey) (*domain.Pack, error) {
	var m packModel
	tx := h.Where("key = ?", string(key)).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPackNotFound
		}
		return nil, tx.Error
	}
	return toDomainPack(m)
}

func (r *PackRepository) List(ctx context.Context) ([]domain.Pack, error) {
	var rows []packModel
	tx := conn(ctx, r.db).Order("key").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Pack, 0, len(rows))
	for _, m := range rows {
		p, err := toDomainPack(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}
