package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"eventrent/internal/domain"
	"eventrent/internal/modules/reservation"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/repository"

	"github.com/shopspring/decimal"
)

type Service struct {
	events    PaymentEventRepository
	lifecycle ReservationLifecycle
	clock     clock.Clock
	loggerf   func(format string, args ...interface{})

	secret []byte
}

func NewService(events PaymentEventRepository, lifecycle ReservationLifecycle, clk clock.Clock, secret []byte, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		events:    events,
		lifecycle: lifecycle,
		clock:     clk,
		loggerf:   loggerf,
		secret:    secret,
	}
}

// VerifySignature checks the hex HMAC-SHA256 of the raw request body. The
// raw bytes must be hashed before any JSON decoding touches them.
func (s *Service) VerifySignature(rawBody []byte, signature string) bool {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(rawBody)
	want := mac.Sum(nil)
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(want, got)
}

// HandleWebhook reconciles one provider callback against the reservation
// it names. The event row and the lifecycle update commit together: a
// failed dispatch leaves no trace of the key, so the provider's retry can
// land once the underlying problem is fixed.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*Receipt, error) {
	if !s.VerifySignature(rawBody, signature) {
		s.loggerf("level=warn msg=webhook signature rejected body_len=%d", len(rawBody))
		return nil, ErrInvalidSignature
	}

	var ev WebhookEvent
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		return nil, ErrValidation
	}
	if ev.IdempotencyKey == "" || ev.ReservationID == "" || ev.Kind == "" {
		return nil, ErrValidation
	}
	kind := domain.PaymentKind(ev.Kind)
	switch kind {
	case domain.PaymentDeposit, domain.PaymentBalance, domain.PaymentSecurityDeposit:
	default:
		return nil, ErrUnknownKind
	}

	amount := decimal.Zero
	if ev.Amount != "" {
		parsed, err := decimal.NewFromString(ev.Amount)
		if err != nil || parsed.IsNegative() {
			return nil, ErrValidation
		}
		amount = parsed
	}
	if amount.IsZero() && kind != domain.PaymentSecurityDeposit {
		return nil, ErrValidation
	}

	ref := ev.PaymentRef
	if ref == "" {
		ref = ev.IdempotencyKey
	}

	out := &Receipt{ReservationID: ev.ReservationID, Kind: ev.Kind}
	err := s.events.WithTx(ctx, func(txCtx context.Context) error {
		record := &domain.PaymentEvent{
			IdempotencyKey: ev.IdempotencyKey,
			ReservationID:  ev.ReservationID,
			Kind:           kind,
			Amount:         amount,
			RawBody:        string(rawBody),
			ProcessedAt:    s.clock.Now(),
		}
		if err := s.events.Create(txCtx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicatePaymentEvent) {
				s.loggerf("level=info msg=webhook redelivery ignored idempotency_key=%s", ev.IdempotencyKey)
				// The receipt echoes the event as it was originally
				// processed, not whatever the retry body claims.
				prev, err := s.events.FindByKey(txCtx, ev.IdempotencyKey)
				if err != nil {
					return err
				}
				if prev != nil {
					out.ReservationID = prev.ReservationID
					out.Kind = string(prev.Kind)
				}
				out.Duplicate = true
				out.Status = "already_processed"
				return nil
			}
			return err
		}

		res, err := s.dispatch(txCtx, kind, ev.ReservationID, amount, ref)
		if err != nil {
			switch {
			case errors.Is(err, reservation.ErrNotFound):
				return ErrReservationNotFound
			case errors.Is(err, reservation.ErrInvalidState):
				return ErrInvalidState
			}
			return err
		}
		out.Status = string(res.Status)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) dispatch(ctx context.Context, kind domain.PaymentKind, reservationID string, amount decimal.Decimal, ref string) (*domain.Reservation, error) {
	switch kind {
	case domain.PaymentDeposit:
		return s.lifecycle.ApplyDepositPaid(ctx, reservationID, amount, ref)
	case domain.PaymentBalance:
		return s.lifecycle.ApplyBalancePaid(ctx, reservationID, amount, ref)
	case domain.PaymentSecurityDeposit:
		return s.lifecycle.ApplySecurityDepositAuthorized(ctx, reservationID, ref)
	default:
		return nil, ErrUnknownKind
	}
}
