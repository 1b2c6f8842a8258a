package availability

import (
	"context"
	"errors"

	"eventrent/internal/domain"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/repository"
)

// Result reports whether a slot is free and, when it is not, which record
// blocks it. Quantity fields describe the pack stock for the window.
type Result struct {
	Available                bool   `json:"available"`
	ConflictingHoldID        string `json:"conflicting_hold_id,omitempty"`
	ConflictingReservationID string `json:"conflicting_reservation_id,omitempty"`
	Remaining                int    `json:"remaining"`
	BookedQuantity           int    `json:"booked_quantity"`
	TotalQuantity            int    `json:"total_quantity"`
}

type Service struct {
	holds        HoldRepository
	reservations ReservationRepository
	packs        PackRepository
	clock        clock.Clock
}

func NewService(holds HoldRepository, reservations ReservationRepository, packs PackRepository, clk clock.Clock) *Service {
	return &Service{holds: holds, reservations: reservations, packs: packs, clock: clk}
}

// IsAvailable checks the candidate interval against active holds and then
// against committed reservations. The store narrows by day range and
// expiry; the time-of-day refinement runs here. excludeHoldID lets a
// caller re-check a window it already holds.
//
// The check is advisory on its own: writers re-run it inside the
// transaction that performs the insert, where the pack read below takes a
// row lock and serializes concurrent writers on the same pack.
func (s *Service) IsAvailable(ctx context.Context, packKey domain.PackKey, interval domain.TimeInterval, excludeHoldID string) (*Result, error) {
	if err := interval.Validate(); err != nil {
		return nil, ErrValidation
	}
	pack, err := s.packs.GetByKeyForUpdate(ctx, packKey)
	if err != nil {
		if errors.Is(err, repository.ErrPackNotFound) {
			return nil, ErrUnknownPack
		}
		return nil, err
	}

	now := s.clock.Now()
	out := &Result{TotalQuantity: pack.TotalQuantity}

	holds, err := s.holds.FindBlocking(ctx, packKey, interval.StartDate(), interval.EndDate(), now, excludeHoldID)
	if err != nil {
		return nil, err
	}
	for _, h := range holds {
		if h.Blocking(now) && interval.Overlaps(h.Interval) {
			out.BookedQuantity++
			if out.ConflictingHoldID == "" {
				out.ConflictingHoldID = h.ID
			}
		}
	}

	reservations, err := s.reservations.FindBlocking(ctx, packKey, interval.StartDate(), interval.EndDate())
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		if r.Status.Blocks() && interval.Overlaps(r.Interval) {
			out.BookedQuantity++
			if out.ConflictingReservationID == "" {
				out.ConflictingReservationID = r.ID
			}
		}
	}

	out.Available = out.ConflictingHoldID == "" && out.ConflictingReservationID == ""
	out.Remaining = pack.TotalQuantity - out.BookedQuantity
	if out.Remaining < 0 {
		out.Remaining = 0
	}
	return out, nil
}
