package notification

import (
	"context"
	"time"

	"eventrent/internal/domain"
	"eventrent/internal/pkg/clock"
)

// Event is the wire shape pushed to admin consoles.
type Event struct {
	Type    string      `json:"type"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload"`
}

// Service turns lifecycle callbacks into hub broadcasts. Delivery is best
// effort: no connected console is not an error.
type Service struct {
	hub   *Hub
	clock clock.Clock
}

func NewService(hub *Hub, clk clock.Clock) *Service {
	return &Service{hub: hub, clock: clk}
}

func (s *Service) NotifyHoldCreated(ctx context.Context, holdID string, packKey domain.PackKey, startAt time.Time) error {
	s.hub.Broadcast(Event{
		Type: "hold.created",
		At:   s.clock.Now(),
		Payload: map[string]interface{}{
			"hold_id":  holdID,
			"pack_key": packKey,
			"start_at": startAt,
		},
	})
	return nil
}

func (s *Service) NotifyReservationCreated(ctx context.Context, r *domain.Reservation) error {
	s.hub.Broadcast(Event{
		Type: "reservation.created",
		At:   s.clock.Now(),
		Payload: map[string]interface{}{
			"reservation_id": r.ID,
			"pack_key":       r.PackKey,
			"start_at":       r.Interval.StartDate(),
			"price_total":    r.Pricing.PriceTotal,
			"summary":        r.Summary,
		},
	})
	return nil
}

func (s *Service) NotifyReservationStatus(ctx context.Context, reservationID string, from, to domain.ReservationStatus) error {
	s.hub.Broadcast(Event{
		Type: "reservation.status_changed",
		At:   s.clock.Now(),
		Payload: map[string]interface{}{
			"reservation_id": reservationID,
			"from":           from,
			"to":             to,
		},
	})
	return nil
}
