package reservation

import (
	"time"

	"eventrent/internal/domain"
)

type ItemRequest struct {
	Label    string `json:"label" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type CreateReservationRequest struct {
	PackKey   string `json:"pack_key" binding:"required"`
	StartAt   string `json:"start_at" binding:"required"`
	EndAt     string `json:"end_at" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Address   string `json:"address" binding:"required"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone string `json:"customer_phone"`

	Items          []ItemRequest `json:"items"`
	HoldID         string        `json:"hold_id"`
	ContractSigned bool          `json:"contract_signed"`
}

func (r CreateReservationRequest) interval() (domain.TimeInterval, error) {
	start, err := time.Parse("2006-01-02", r.StartAt)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	end, err := time.Parse("2006-01-02", r.EndAt)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	iv := domain.TimeInterval{StartAt: start, EndAt: end}
	if r.StartTime != "" {
		v := r.StartTime
		iv.StartTime = &v
	}
	if r.EndTime != "" {
		v := r.EndTime
		iv.EndTime = &v
	}
	return iv, nil
}

func (r CreateReservationRequest) items() []domain.FinalItem {
	out := make([]domain.FinalItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, domain.FinalItem{Label: it.Label, Quantity: it.Quantity})
	}
	return out
}

type AdjustItemsRequest struct {
	Items []ItemRequest `json:"items" binding:"required"`
	Note  string        `json:"note"`
}

func (r AdjustItemsRequest) items() []domain.FinalItem {
	out := make([]domain.FinalItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, domain.FinalItem{Label: it.Label, Quantity: it.Quantity})
	}
	return out
}

type NoteRequest struct {
	Note string `json:"note"`
}

type ResolveRequestRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Note    string `json:"note"`
}
