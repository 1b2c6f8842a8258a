package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventrent/internal/domain"
	"eventrent/internal/modules/availability"
	"eventrent/internal/modules/pricing"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment milestones are anchored to the rental start date.
const (
	balanceDueDaysBefore     = 5
	depositRequestDaysBefore = 2
	milestoneHourUTC         = 9
)

type Service struct {
	reservations ReservationRepository
	quoter       Quoter
	checker      AvailabilityChecker
	holds        HoldConsumer
	notifs       NotificationSender
	clock        clock.Clock
}

func NewService(reservations ReservationRepository, quoter Quoter, checker AvailabilityChecker, holds HoldConsumer, notifs NotificationSender, clk clock.Clock) *Service {
	return &Service{
		reservations: reservations,
		quoter:       quoter,
		checker:      checker,
		holds:        holds,
		notifs:       notifs,
		clock:        clk,
	}
}

// Create books the window. The availability re-check and the insert run in
// one transaction; a hold the customer already owns is excluded from the
// check and consumed afterwards.
func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	interval, err := req.interval()
	if err != nil {
		return nil, ErrValidation
	}
	if err := interval.Validate(); err != nil {
		return nil, ErrValidation
	}

	snap, items, err := s.quoter.Quote(ctx, domain.PackKey(req.PackKey), interval, req.items())
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrUnknownPack):
			return nil, ErrUnknownPack
		case errors.Is(err, pricing.ErrInvalidInterval):
			return nil, ErrValidation
		}
		return nil, err
	}

	res := &domain.Reservation{
		ID:             uuid.NewString(),
		PackKey:        domain.PackKey(req.PackKey),
		Interval:       interval,
		Address:        req.Address,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Items:          items,
		Pricing:        snap,
		Status:         domain.ReservationAwaitingPayment,
		ContractSigned: req.ContractSigned,
	}
	if req.HoldID != "" {
		id := req.HoldID
		res.HoldID = &id
	}
	s.setMilestones(res)
	res.Summary = summarize(res)

	err = s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		result, err := s.checker.IsAvailable(txCtx, res.PackKey, interval, req.HoldID)
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
		return s.reservations.Create(txCtx, res)
	})
	if err != nil {
		return nil, err
	}

	if req.HoldID != "" && s.holds != nil {
		if _, consumed, err := s.holds.ConsumeHold(ctx, req.HoldID, res.ID); err != nil {
			log.Printf("level=warn msg=hold consume failed hold_id=%s reservation_id=%s err=%v", req.HoldID, res.ID, err)
		} else if !consumed {
			log.Printf("level=info msg=hold lapsed before consume hold_id=%s reservation_id=%s", req.HoldID, res.ID)
		}
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyReservationCreated(ctx, res); err != nil {
			log.Printf("level=warn msg=reservation notification failed reservation_id=%s err=%v", res.ID, err)
		}
	}
	return res, nil
}

// setMilestones derives the payment deadlines from the rental start date:
// the balance falls due five days before it, the security-deposit request
// goes out two days before it, both at 09:00 UTC.
func (s *Service) setMilestones(r *domain.Reservation) {
	start := r.Interval.StartDate()
	at := func(daysBefore int) *time.Time {
		t := time.Date(start.Year(), start.Month(), start.Day(), milestoneHourUTC, 0, 0, 0, time.UTC).
			AddDate(0, 0, -daysBefore)
		return &t
	}
	r.BalanceDueAt = at(balanceDueDaysBefore)
	r.DepositRequestedAt = at(depositRequestDaysBefore)
}

// ApplyDepositPaid records a confirmed deposit payment. Replays of the
// same payment reference return the current record unchanged; a second
// deposit under a new reference is a state error.
func (s *Service) ApplyDepositPaid(ctx context.Context, id string, amount decimal.Decimal, paymentRef string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.get(txCtx, id)
		if err != nil {
			return err
		}
		if paymentRef != "" && res.DepositPaymentRef == paymentRef {
			out = res
			return nil
		}
		if res.DepositPaidAt != nil {
			return ErrInvalidState
		}

		balance := pricing.BalanceAmount(res.Pricing.PriceTotal, &amount)
		next := domain.ReservationAwaitingBalance
		if balance.LessThanOrEqual(decimal.Zero) {
			next = domain.ReservationPaid
		}
		if !res.Status.CanTransitionTo(next) {
			return ErrInvalidState
		}

		now := s.clock.Now()
		res.DepositPaidAmount = &amount
		res.DepositPaidAt = &now
		res.DepositPaymentRef = paymentRef
		res.Pricing.BalanceAmount = balance
		from := res.Status
		res.Status = next
		if err := s.reservations.Save(txCtx, res); err != nil {
			return err
		}
		s.notifyStatus(txCtx, res.ID, from, next)
		out = res
		return nil
	})
	return out, err
}

// ApplyBalancePaid records the remainder payment and confirms the booking.
func (s *Service) ApplyBalancePaid(ctx context.Context, id string, amount decimal.Decimal, paymentRef string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.get(txCtx, id)
		if err != nil {
			return err
		}
		if paymentRef != "" && res.BalancePaymentRef == paymentRef {
			out = res
			return nil
		}
		if res.DepositPaidAt == nil || res.BalancePaidAt != nil {
			return ErrInvalidState
		}
		if !res.Status.CanTransitionTo(domain.ReservationConfirmed) {
			return ErrInvalidState
		}

		now := s.clock.Now()
		res.BalancePaidAt = &now
		res.BalancePaymentRef = paymentRef
		res.Pricing.BalanceAmount = res.Pricing.BalanceAmount.Sub(amount).Round(2)
		from := res.Status
		res.Status = domain.ReservationConfirmed
		if err := s.reservations.Save(txCtx, res); err != nil {
			return err
		}
		s.notifyStatus(txCtx, res.ID, from, res.Status)
		out = res
		return nil
	})
	return out, err
}

// ApplySecurityDepositAuthorized marks the pre-event card authorization.
// It never moves the lifecycle.
func (s *Service) ApplySecurityDepositAuthorized(ctx context.Context, id, paymentRef string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.get(txCtx, id)
		if err != nil {
			return err
		}
		if paymentRef != "" && res.SecurityDepositPaymentRef == paymentRef {
			out = res
			return nil
		}
		if res.Status == domain.ReservationCancelled {
			return ErrInvalidState
		}
		now := s.clock.Now()
		res.SecurityDepositAuthorizedAt = &now
		res.SecurityDepositPaymentRef = paymentRef
		if err := s.reservations.Save(txCtx, res); err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

// AdjustItems replaces the add-on list and reprices the booking. The
// balance is recomputed against the deposit actually paid, so an upward
// adjustment after a deposit payment lands entirely on the balance.
func (s *Service) AdjustItems(ctx context.Context, id string, items []domain.FinalItem, note string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.get(txCtx, id)
		if err != nil {
			return err
		}
		if res.Status.Terminal() {
			return ErrInvalidState
		}

		snap, priced, err := s.quoter.Quote(txCtx, res.PackKey, res.Interval, items)
		if err != nil {
			if errors.Is(err, pricing.ErrUnknownPack) {
				return ErrUnknownPack
			}
			return err
		}
		snap.BalanceAmount = pricing.BalanceAmount(snap.PriceTotal, res.DepositPaidAmount)

		res.Items = priced
		res.Pricing = snap
		res.Summary = summarize(res)
		s.appendNote(res, note)
		if err := s.reservations.Save(txCtx, res); err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

// RequestCancel parks the booking in cancel_requested for admin review.
// The slot stays blocked until the request is resolved.
func (s *Service) RequestCancel(ctx context.Context, id, note string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationCancelRequested, note)
}

func (s *Service) RequestChange(ctx context.Context, id, note string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationChangeRequested, note)
}

// ResolveRequest settles a pending cancel or change request. An approved
// cancel releases the slot; everything else returns the booking to the
// payment state its milestones imply.
func (s *Service) ResolveRequest(ctx context.Context, id string, approve bool, note string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.get(txCtx, id)
		if err != nil {
			return err
		}
		if res.Status != domain.ReservationCancelRequested && res.Status != domain.ReservationChangeRequested {
			return ErrInvalidState
		}

		next := paymentState(res)
		if approve && res.Status == domain.ReservationCancelRequested {
			next = domain.ReservationCancelled
		}
		if !res.Status.CanTransitionTo(next) {
			return ErrInvalidState
		}

		from := res.Status
		res.Status = next
		if next == domain.ReservationCancelled {
			now := s.clock.Now()
			res.CancelledAt = &now
		}
		s.appendNote(res, note)
		if err := s.reservations.Save(txCtx, res); err != nil {
			return err
		}
		s.notifyStatus(txCtx, res.ID, from, next)
		out = res
		return nil
	})
	return out, err
}

// Cancel is the admin-side hard cancel. It works from any live state and
// frees the slot immediately.
func (s *Service) Cancel(ctx context.Context, id, note string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.get(txCtx, id)
		if err != nil {
			return err
		}
		if !res.Status.CanTransitionTo(domain.ReservationCancelled) {
			return ErrInvalidState
		}
		from := res.Status
		now := s.clock.Now()
		res.Status = domain.ReservationCancelled
		res.CancelledAt = &now
		s.appendNote(res, note)
		if err := s.reservations.Save(txCtx, res); err != nil {
			return err
		}
		s.notifyStatus(txCtx, res.ID, from, res.Status)
		out = res
		return nil
	})
	return out, err
}

// Complete closes out a finished rental.
func (s *Service) Complete(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationCompleted, "")
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Reservation, error) {
	return s.reservations.List(ctx, limit, offset)
}

func (s *Service) transition(ctx context.Context, id string, next domain.ReservationStatus, note string) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.reservations.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.get(txCtx, id)
		if err != nil {
			return err
		}
		if !res.Status.CanTransitionTo(next) {
			return ErrInvalidState
		}
		from := res.Status
		res.Status = next
		s.appendNote(res, note)
		if err := s.reservations.Save(txCtx, res); err != nil {
			return err
		}
		s.notifyStatus(txCtx, res.ID, from, next)
		out = res
		return nil
	})
	return out, err
}

func (s *Service) get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *Service) appendNote(r *domain.Reservation, note string) {
	if note == "" {
		return
	}
	line := s.clock.Now().Format(time.RFC3339) + " " + note
	if r.AdminNotes != "" {
		r.AdminNotes += "\n"
	}
	r.AdminNotes += line
}

func (s *Service) notifyStatus(ctx context.Context, id string, from, to domain.ReservationStatus) {
	if s.notifs == nil || from == to {
		return
	}
	if err := s.notifs.NotifyReservationStatus(ctx, id, from, to); err != nil {
		log.Printf("level=warn msg=status notification failed reservation_id=%s err=%v", id, err)
	}
}

// paymentState infers which payment stage a parked booking returns to from
// its milestone timestamps.
func paymentState(r *domain.Reservation) domain.ReservationStatus {
	switch {
	case r.BalancePaidAt != nil:
		return domain.ReservationConfirmed
	case r.DepositPaidAt != nil:
		if r.Pricing.BalanceAmount.LessThanOrEqual(decimal.Zero) {
			return domain.ReservationPaid
		}
		return domain.ReservationAwaitingBalance
	default:
		return domain.ReservationAwaitingPayment
	}
}

func summarize(r *domain.Reservation) string {
	return fmt.Sprintf("%s pack, %s to %s, total %s (deposit %s)",
		r.PackKey,
		r.Interval.StartDate().Format("2006-01-02"),
		r.Interval.EndDate().Format("2006-01-02"),
		r.Pricing.PriceTotal.StringFixed(2),
		r.Pricing.DepositAmount.StringFixed(2),
	)
}
