package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	RegisterID int `json:"register_id" validate:"required,min=1"`
}

// ScanRequest adds a product to the cart. Confirm re-invokes a stock-guarded
// add after the operator accepted the override; UnitPrice re-invokes an
// open-price add once a price was supplied.
type ScanRequest struct {
	Code         string           `json:"code"       validate:"required"`
	Quantity     *decimal.Decimal `json:"quantity"   validate:"omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price" validate:"omitempty"`
	Confirm      bool             `json:"confirm"`
	ManualSearch bool             `json:"manual_search"`
}

// UpdateItemRequest edits a cart line. A quantity increase past available
// stock follows the same confirm workflow as a scan.
type UpdateItemRequest struct {
	Quantity  *decimal.Decimal `json:"quantity"   validate:"omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty"`
	Confirm   bool             `json:"confirm"`
}

type AttachCustomerRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
}

type DiscountRequest struct {
	Value decimal.Decimal `json:"value" validate:"min=0"`
	Type  string          `json:"type"  validate:"required,oneof=percent amount"`
}

type LoyaltyRequest struct {
	Points int64 `json:"points" validate:"min=0"`
}

type AddPaymentRequest struct {
	PaymentMethodID string          `json:"payment_method_id" validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"            validate:"required"`
	Installments    int             `json:"installments"      validate:"omitempty,min=1"`
}

type FinalizeRequest struct {
	// FutureOrder switches to the deferred-fulfillment terminal path.
	FutureOrder     bool    `json:"future_order"`
	FulfillmentDate *string `json:"fulfillment_date" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Total            decimal.Decimal `json:"total"`
	SoldWithoutStock bool            `json:"sold_without_stock"`
}

type PaymentResponse struct {
	ID           string          `json:"id"`
	MethodName   string          `json:"method_name"`
	Amount       decimal.Decimal `json:"amount"`
	Installments int             `json:"installments"`
	FeePercent   decimal.Decimal `json:"fee_percent"`
	Fee          decimal.Decimal `json:"fee"`
}

type TotalsResponse struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	VIPDiscount     decimal.Decimal `json:"vip_discount"`
	ManualDiscount  decimal.Decimal `json:"manual_discount"`
	LoyaltyDiscount decimal.Decimal `json:"loyalty_discount"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	Total           decimal.Decimal `json:"total"`
	// DiscountClamped tells the UI the manual discount was reduced to the
	// operator's maximum.
	DiscountClamped bool `json:"discount_clamped"`
}

type SessionResponse struct {
	ID          string             `json:"id"`
	Items       []LineItemResponse `json:"items"`
	Totals      TotalsResponse     `json:"totals"`
	Payments    []PaymentResponse  `json:"payments"`
	TotalPaid   decimal.Decimal    `json:"total_paid"`
	Remaining   decimal.Decimal    `json:"remaining"`
	Change      decimal.Decimal    `json:"change"`
	Customer    *CustomerResponse  `json:"customer,omitempty"`
	FutureOrder bool               `json:"future_order"`
}

type CustomerResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	VIPDiscountPercent decimal.Decimal `json:"vip_discount_percent"`
	LoyaltyPoints      int64           `json:"loyalty_points"`
}
