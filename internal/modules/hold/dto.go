package hold

import (
	"time"

	"eventrent/internal/domain"
)

type CreateHoldRequest struct {
	PackKey      string `json:"pack_key" binding:"required"`
	StartAt      string `json:"start_at" binding:"required"`
	EndAt        string `json:"end_at" binding:"required"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Source       string `json:"source" binding:"required"`
}

func (r CreateHoldRequest) interval() (domain.TimeInterval, error) {
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

type ConsumeHoldRequest struct {
	ReservationID string `json:"reservation_id" binding:"required"`
}
