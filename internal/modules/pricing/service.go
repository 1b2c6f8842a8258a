package pricing

import (
	"context"
	"errors"

	"eventrent/internal/domain"
	"eventrent/internal/repository"

	"github.com/shopspring/decimal"
)

// depositRate is the share of the price total due up front.
var depositRate = decimal.RequireFromString("0.30")

type Service struct {
	packs PackRepository
}

func NewService(packs PackRepository) *Service {
	return &Service{packs: packs}
}

// Quote computes the full authoritative pricing snapshot for a pack,
// interval and add-on list. The returned items carry the Unpriced flag for
// labels absent from the pack catalog.
func (s *Service) Quote(ctx context.Context, packKey domain.PackKey, interval domain.TimeInterval, items []domain.FinalItem) (domain.PricingSnapshot, domain.FinalItems, error) {
	pack, err := s.packs.GetByKey(ctx, packKey)
	if err != nil {
		if errors.Is(err, repository.ErrPackNotFound) {
			return domain.PricingSnapshot{}, nil, ErrUnknownPack
		}
		return domain.PricingSnapshot{}, nil, err
	}

	base, err := BasePackPrice(pack, interval)
	if err != nil {
		return domain.PricingSnapshot{}, nil, err
	}
	extras, priced := ExtrasTotal(pack, items)
	total := PriceTotal(base, extras)

	snap := domain.PricingSnapshot{
		BasePackPrice: base,
		ExtrasTotal:   extras,
		PriceTotal:    total,
		DepositAmount: DepositAmount(total),
		BalanceAmount: BalanceAmount(total, nil),
	}
	return snap, priced, nil
}

// BasePackPrice is the pack base price plus the per-extra-day surcharge
// for rental days beyond the pack's included window.
func BasePackPrice(pack *domain.Pack, interval domain.TimeInterval) (decimal.Decimal, error) {
	days := RentalDays(interval)
	if days <= 0 {
		return decimal.Zero, ErrInvalidInterval
	}
	price := pack.BasePrice
	if extra := days - pack.IncludedDays; extra > 0 && pack.IncludedDays > 0 {
		price = price.Add(pack.ExtraDayPrice.Mul(decimal.NewFromInt(int64(extra))))
	}
	return price.Round(2), nil
}

// RentalDays counts the calendar days a day-granular interval occupies.
func RentalDays(interval domain.TimeInterval) int {
	start, end := interval.StartDate(), interval.EndDate()
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// ExtrasTotal sums unit price times quantity over the pack catalog.
// Unknown labels never fail the quote: they are valued at zero and flagged
// for admin review.
func ExtrasTotal(pack *domain.Pack, items []domain.FinalItem) (decimal.Decimal, domain.FinalItems) {
	total := decimal.Zero
	out := make(domain.FinalItems, 0, len(items))
	for _, it := range items {
		line := it
		if unit, ok := pack.CatalogPrice(it.Label); ok {
			line.Unpriced = false
			total = total.Add(unit.Mul(decimal.NewFromInt(int64(it.Quantity))))
		} else {
			line.Unpriced = true
		}
		out = append(out, line)
	}
	return total.Round(2), out
}

func PriceTotal(base, extras decimal.Decimal) decimal.Decimal {
	return base.Add(extras).Round(2)
}

// DepositAmount is 30% of the price total, rounded half-up to cents.
func DepositAmount(priceTotal decimal.Decimal) decimal.Decimal {
	return priceTotal.Mul(depositRate).Round(2)
}

// BalanceAmount subtracts what the customer actually paid as deposit when
// a payment happened, so later price adjustments never rewrite history;
// before any payment it subtracts the computed deposit.
func BalanceAmount(priceTotal decimal.Decimal, depositPaid *decimal.Decimal) decimal.Decimal {
	if depositPaid != nil {
		return priceTotal.Sub(*depositPaid).Round(2)
	}
	return priceTotal.Sub(DepositAmount(priceTotal)).Round(2)
}
