package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationAwaitingPayment ReservationStatus = "awaiting_payment"
	ReservationAwaitingBalance ReservationStatus = "awaiting_balance"
	ReservationPaid            ReservationStatus = "paid"
	ReservationConfirmed       ReservationStatus = "confirmed"
	ReservationCompleted       ReservationStatus = "completed"
	ReservationCancelRequested ReservationStatus = "cancel_requested"
	ReservationChangeRequested ReservationStatus = "change_requested"
	ReservationCancelled       ReservationStatus = "cancelled"
)

// legalTransitions is the single source of truth for the lifecycle.
// CANCELLED and COMPLETED are terminal.
var legalTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationAwaitingPayment: {
		ReservationAwaitingBalance, ReservationPaid, ReservationConfirmed,
		ReservationCancelRequested, ReservationChangeRequested, ReservationCancelled,
	},
	ReservationAwaitingBalance: {
		ReservationPaid, ReservationConfirmed,
		ReservationCancelRequested, ReservationChangeRequested, ReservationCancelled,
	},
	ReservationPaid: {
		ReservationConfirmed, ReservationCompleted,
		ReservationCancelRequested, ReservationChangeRequested, ReservationCancelled,
	},
	ReservationConfirmed: {
		ReservationCompleted,
		ReservationCancelRequested, ReservationChangeRequested, ReservationCancelled,
	},
	ReservationCancelRequested: {
		ReservationAwaitingPayment, ReservationAwaitingBalance, ReservationPaid,
		ReservationConfirmed, ReservationCancelled,
	},
	ReservationChangeRequested: {
		ReservationAwaitingPayment, ReservationAwaitingBalance, ReservationPaid,
		ReservationConfirmed, ReservationCancelled,
	},
	ReservationCancelled: {},
	ReservationCompleted: {},
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	return len(legalTransitions[s]) == 0
}

// Blocks reports whether a reservation in this status still occupies its
// slot for availability purposes. Only a cancelled booking frees the slot.
func (s ReservationStatus) Blocks() bool {
	return s != ReservationCancelled
}

// FinalItem is a customer-selected add-on line.
type FinalItem struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
	// Unpriced marks labels absent from the pack catalog; they are valued
	// at zero and left for admin review.
	Unpriced bool `json:"unpriced,omitempty"`
}

// PricingSnapshot is the authoritative money state of a reservation at the
// time it was last computed.
type PricingSnapshot struct {
	BasePackPrice decimal.Decimal `json:"base_pack_price"`
	ExtrasTotal   decimal.Decimal `json:"extras_total"`
	PriceTotal    decimal.Decimal `json:"price_total"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
}

// Reservation is the durable booking record.
type Reservation struct {
	ID       string       `json:"id"`
	PackKey  PackKey      `json:"pack_key"`
	Interval TimeInterval `json:"interval"`
	Address  string       `json:"address"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	Items   FinalItems      `json:"items"`
	Pricing PricingSnapshot `json:"pricing"`

	Status ReservationStatus `json:"status"`

	// DepositPaidAmount records what the customer actually paid, which is
	// what balance arithmetic must use after any later price adjustment.
	DepositPaidAmount *decimal.Decimal `json:"deposit_paid_amount,omitempty"`

	DepositPaidAt      *time.Time `json:"deposit_paid_at,omitempty"`
	BalanceDueAt       *time.Time `json:"balance_due_at,omitempty"`
	BalancePaidAt      *time.Time `json:"balance_paid_at,omitempty"`
	DepositRequestedAt *time.Time `json:"deposit_requested_at,omitempty"`

	SecurityDepositAuthorizedAt *time.Time `json:"security_deposit_authorized_at,omitempty"`

	DepositPaymentRef         string `json:"deposit_payment_ref,omitempty"`
	BalancePaymentRef         string `json:"balance_payment_ref,omitempty"`
	SecurityDepositPaymentRef string `json:"security_deposit_payment_ref,omitempty"`

	ContractSigned bool    `json:"contract_signed"`
	HoldID         *string `json:"hold_id,omitempty"`
	Summary        string  `json:"summary,omitempty"`
	AdminNotes     string  `json:"admin_notes,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type FinalItems []FinalItem
