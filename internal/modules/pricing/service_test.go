package pricing

import (
	"context"
	"testing"
	"time"

	"eventrent/internal/domain"
	"eventrent/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPackRepository struct {
	mock.Mock
}

func (m *MockPackRepository) GetByKey(ctx context.Context, key domain.PackKey) (*domain.Pack, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pack), args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func conferencePack() *domain.Pack {
	return &domain.Pack{
		ID:            1,
		Key:           domain.PackConference,
		Name:          "Conference",
		BasePrice:     dec("500.00"),
		IncludedDays:  1,
		ExtraDayPrice: dec("120.00"),
		TotalQuantity: 3,
		Catalog: []domain.CatalogItem{
			{Label: "projector", UnitPrice: dec("100.00")},
			{Label: "chair", UnitPrice: dec("2.50")},
		},
	}
}

func singleDay(y int, m time.Month, d int) domain.TimeInterval {
	dt := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return domain.TimeInterval{StartAt: dt, EndAt: dt}
}

func TestBasePackPrice_SingleDay(t *testing.T) {
	price, err := BasePackPrice(conferencePack(), singleDay(2026, 1, 10))

	assert.NoError(t, err)
	assert.True(t, price.Equal(dec("500.00")), "got %s", price)
}

func TestBasePackPrice_ExtraDaySurcharge(t *testing.T) {
	iv := domain.TimeInterval{
		StartAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}

	// 3 rental days, 1 included, 2 extra at 120 each.
	price, err := BasePackPrice(conferencePack(), iv)

	assert.NoError(t, err)
	assert.True(t, price.Equal(dec("740.00")), "got %s", price)
}

func TestBasePackPrice_InvertedInterval(t *testing.T) {
	iv := domain.TimeInterval{
		StartAt: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	_, err := BasePackPrice(conferencePack(), iv)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExtrasTotal_PricedAndUnpriced(t *testing.T) {
	items := []domain.FinalItem{
		{Label: "projector", Quantity: 1},
		{Label: "chair", Quantity: 10},
		{Label: "fog-machine", Quantity: 2},
	}

	total, priced := ExtrasTotal(conferencePack(), items)

	assert.True(t, total.Equal(dec("125.00")), "got %s", total)
	assert.False(t, priced[0].Unpriced)
	assert.False(t, priced[1].Unpriced)
	assert.True(t, priced[2].Unpriced, "unknown label must be flagged, not rejected")
}

func TestDepositAmount_RoundsHalfUp(t *testing.T) {
	assert.True(t, DepositAmount(dec("500.00")).Equal(dec("150.00")))
	// 333.35 * 0.30 = 100.005 -> 100.01
	assert.True(t, DepositAmount(dec("333.35")).Equal(dec("100.01")))
}

func TestBalanceAmount_UsesPaidDepositWhenPresent(t *testing.T) {
	paid := dec("150.00")

	// Price later adjusted to 600; the paid deposit stays authoritative.
	balance := BalanceAmount(dec("600.00"), &paid)
	assert.True(t, balance.Equal(dec("450.00")), "got %s", balance)

	// Before any payment the computed deposit is used.
	balance = BalanceAmount(dec("500.00"), nil)
	assert.True(t, balance.Equal(dec("350.00")), "got %s", balance)
}

func TestQuote_Snapshot(t *testing.T) {
	mockPacks := new(MockPackRepository)
	mockPacks.On("GetByKey", mock.Anything, domain.PackConference).Return(conferencePack(), nil)
	service := NewService(mockPacks)

	snap, items, err := service.Quote(context.Background(), domain.PackConference, singleDay(2026, 1, 10), []domain.FinalItem{
		{Label: "projector", Quantity: 1},
	})

	assert.NoError(t, err)
	assert.True(t, snap.BasePackPrice.Equal(dec("500.00")))
	assert.True(t, snap.ExtrasTotal.Equal(dec("100.00")))
	assert.True(t, snap.PriceTotal.Equal(dec("600.00")))
	assert.True(t, snap.DepositAmount.Equal(dec("180.00")))
	assert.True(t, snap.BalanceAmount.Equal(dec("420.00")))
	assert.Len(t, items, 1)
}

func TestQuote_Deterministic(t *testing.T) {
	mockPacks := new(MockPackRepository)
	mockPacks.On("GetByKey", mock.Anything, domain.PackConference).Return(conferencePack(), nil)
	service := NewService(mockPacks)

	iv := singleDay(2026, 1, 10)
	items := []domain.FinalItem{{Label: "chair", Quantity: 4}}

	first, _, err := service.Quote(context.Background(), domain.PackConference, iv, items)
	assert.NoError(t, err)
	second, _, err := service.Quote(context.Background(), domain.PackConference, iv, items)
	assert.NoError(t, err)

	assert.True(t, first.PriceTotal.Equal(second.PriceTotal))
	assert.True(t, first.DepositAmount.Equal(second.DepositAmount))
	assert.True(t, first.BalanceAmount.Equal(second.BalanceAmount))
}

func TestQuote_UnknownPack(t *testing.T) {
	mockPacks := new(MockPackRepository)
	mockPacks.On("GetByKey", mock.Anything, domain.PackKey("yacht")).Return(nil, repository.ErrPackNotFound)
	service := NewService(mockPacks)

	_, _, err := service.Quote(context.Background(), domain.PackKey("yacht"), singleDay(2026, 1, 10), nil)
	assert.ErrorIs(t, err, ErrUnknownPack)
}
