package hold

import (
	"context"
	"errors"
	"log"
	"time"

	"eventrent/internal/domain"
	"eventrent/internal/modules/availability"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/repository"

	"github.com/google/uuid"
)

const defaultHoldTTL = 10 * time.Minute

type Service struct {
	holds   HoldRepository
	checker AvailabilityChecker
	notifs  NotificationSender
	clock   clock.Clock
	ttl     time.Duration
}

func NewService(holds HoldRepository, checker AvailabilityChecker, notifs NotificationSender, clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		holds:   holds,
		checker: checker,
		notifs:  notifs,
		clock:   clk,
		ttl:     defaultHoldTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

// WithTTL overrides the default lifetime of new holds.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// CreateHold grants a temporary exclusive claim on (pack, interval). The
// availability re-check and the insert run in one transaction, and the
// re-check locks the pack row, so two concurrent overlapping requests
// serialize and exactly one succeeds; a unique-violation from a store
// constraint maps to the same slot-taken error.
func (s *Service) CreateHold(ctx context.Context, req CreateHoldRequest) (*domain.Hold, error) {
	interval, err := req.interval()
	if err != nil {
		return nil, ErrValidation
	}
	if err := interval.Validate(); err != nil {
		return nil, ErrValidation
	}

	now := s.clock.Now()
	h := &domain.Hold{
		ID:           uuid.NewString(),
		PackKey:      domain.PackKey(req.PackKey),
		Interval:     interval,
		Status:       domain.HoldActive,
		ExpiresAt:    now.Add(s.ttl),
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Source:       req.Source,
	}

	err = s.holds.WithTx(ctx, func(txCtx context.Context) error {
		result, err := s.checker.IsAvailable(txCtx, h.PackKey, interval, "")
		if err != nil {
			switch {
			case errors.Is(err, availability.ErrUnknownPack):
				return ErrUnknownPack
			case errors.Is(err, availability.ErrValidation):
				return ErrValidation
			}
			return err
		}
		if !result.Available {
			return ErrSlotTaken
		}

		if err := s.holds.Create(txCtx, h); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrSlotTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyHoldCreated(ctx, h.ID, h.PackKey, h.Interval.StartAt); err != nil {
			log.Printf("level=warn msg=hold notification failed hold_id=%s err=%v", h.ID, err)
		}
	}
	return h, nil
}

// ConsumeHold links a hold to the reservation that claimed it. The hold is
// an optimization, not the reservation's source of truth: when it already
// expired or another writer consumed it, the call reports consumed=false
// and the caller proceeds anyway.
func (s *Service) ConsumeHold(ctx context.Context, holdID, reservationID string) (*domain.Hold, bool, error) {
	consumed, err := s.holds.Consume(ctx, holdID, reservationID, s.clock.Now())
	if err != nil {
		return nil, false, err
	}
	if !consumed {
		log.Printf("level=info msg=hold not consumable hold_id=%s reservation_id=%s", holdID, reservationID)
	}

	h, err := s.holds.GetByID(ctx, holdID)
	if err != nil {
		if errors.Is(err, repository.ErrHoldNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	return h, consumed, nil
}

func (s *Service) GetHold(ctx context.Context, id string) (*domain.Hold, error) {
	h, err := s.holds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHoldNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}
