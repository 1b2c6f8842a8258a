package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PackKey string

const (
	PackConference PackKey = "conference"
	PackParty      PackKey = "party"
	PackWedding    PackKey = "wedding"
)

// Pack is immutable reference data for a rental product line. BasePrice
// covers IncludedDays of rental; each further day adds ExtraDayPrice.
type Pack struct {
	ID            int64           `json:"id"`
	Key           PackKey         `json:"key"`
	Name          string          `json:"name"`
	BasePrice     decimal.Decimal `json:"base_price"`
	IncludedDays  int             `json:"included_days"`
	ExtraDayPrice decimal.Decimal `json:"extra_day_price"`
	TotalQuantity int             `json:"total_quantity"`
	DefaultItems  []PackItem      `json:"default_items,omitempty"`
	Catalog       []CatalogItem   `json:"catalog,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PackItem is equipment bundled with the pack at no extra charge.
type PackItem struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// CatalogItem is an add-on the pack prices per unit.
type CatalogItem struct {
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CatalogPrice looks up the unit price of an add-on label.
func (p *Pack) CatalogPrice(label string) (decimal.Decimal, bool) {
	for _, it := range p.Catalog {
		if it.Label == label {
			return it.UnitPrice, true
		}
	}
	return decimal.Zero, false
}
