package availability

import (
	"time"

	"eventrent/internal/domain"
)

// CheckRequest accepts either pack_key or the legacy product_id alias.
type CheckRequest struct {
	PackKey   string `form:"pack_key" json:"pack_key"`
	ProductID string `form:"product_id" json:"product_id"`
	StartDate string `form:"start_date" json:"start_date" binding:"required"`
	EndDate   string `form:"end_date" json:"end_date" binding:"required"`
	StartTime string `form:"start_time" json:"start_time"`
	EndTime   string `form:"end_time" json:"end_time"`
}

func (r CheckRequest) packKey() domain.PackKey {
	if r.PackKey != "" {
		return domain.PackKey(r.PackKey)
	}
	return domain.PackKey(r.ProductID)
}

func (r CheckRequest) interval() (domain.TimeInterval, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
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
