package payment

// WebhookEvent is the provider callback payload. Amount travels as a
// decimal string; the reconciler never parses it into a binary float.
type WebhookEvent struct {
	IdempotencyKey string `json:"idempotency_key"`
	ReservationID  string `json:"reservation_id"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	PaymentRef     string `json:"payment_ref"`
}

// Receipt is what the provider gets back for an accepted event.
type Receipt struct {
	ReservationID string `json:"reservation_id"`
	Kind          string `json:"kind"`
	Status        string `json:"status"`
	Duplicate     bool   `json:"duplicate"`
}
