package dto

import "github.com/shopspring/decimal"

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date   string `form:"date"`                     // YYYY-MM-DD; empty = today
	Status string `form:"status,default=completed"` // completed | future | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleItemResponse struct {
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Total            decimal.Decimal `json:"total"`
	SoldWithoutStock bool            `json:"sold_without_stock"`
}

type SaleResponse struct {
	ID              string             `json:"id"`
	SaleNumber      int64              `json:"sale_number"`
	Items           []SaleItemResponse `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Discount        decimal.Decimal    `json:"discount"`
	Total           decimal.Decimal    `json:"total"`
	CostTotal       decimal.Decimal    `json:"cost_total"`
	Profit          decimal.Decimal    `json:"profit"`
	Payments        []PaymentResponse  `json:"payments"`
	PointsRedeemed  int64              `json:"points_redeemed"`
	Change          decimal.Decimal    `json:"change"`
	Status          string             `json:"status"`
	FulfillmentDate *string            `json:"fulfillment_date,omitempty"`
	CreatedAt       string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
