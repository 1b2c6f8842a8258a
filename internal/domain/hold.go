package domain

import "time"

type HoldStatus string

const (
	HoldActive   HoldStatus = "active"
	HoldExpired  HoldStatus = "expired"
	HoldConsumed HoldStatus = "consumed"
)

// Hold is a short-lived exclusive claim on (pack, interval) that closes the
// race between an availability check and reservation commit. Expiry is
// lazy: readers must treat a hold whose ExpiresAt has passed as
// non-blocking whatever its stored status says. Holds are kept for audit.
type Hold struct {
	ID            string       `json:"id"`
	PackKey       PackKey      `json:"pack_key"`
	Interval      TimeInterval `json:"interval"`
	Status        HoldStatus   `json:"status"`
	ExpiresAt     time.Time    `json:"expires_at"`
	ReservationID *string      `json:"reservation_id,omitempty"`
	ContactEmail  string       `json:"contact_email,omitempty"`
	ContactPhone  string       `json:"contact_phone,omitempty"`
	Source        string       `json:"source,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Blocking reports whether the hold still excludes other claims at instant now.
func (h *Hold) Blocking(now time.Time) bool {
	return h.Status == HoldActive && h.ExpiresAt.After(now)
}
