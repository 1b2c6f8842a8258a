package admin

type IssueTokenRequest struct {
	BootstrapToken string `json:"bootstrap_token" binding:"required"`
	Subject        string `json:"subject"`
}

type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type PackItemRequest struct {
	Label    string `json:"label" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type CatalogItemRequest struct {
	Label     string `json:"label" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
}

type CreatePackRequest struct {
	Key           string               `json:"key" binding:"required"`
	Name          string               `json:"name" binding:"required"`
	BasePrice     string               `json:"base_price" binding:"required"`
	IncludedDays  int                  `json:"included_days"`
	ExtraDayPrice string               `json:"extra_day_price"`
	TotalQuantity int                  `json:"total_quantity" binding:"required,min=1"`
	DefaultItems  []PackItemRequest    `json:"default_items"`
	Catalog       []CatalogItemRequest `json:"catalog"`
}
