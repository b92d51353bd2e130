package dto

import "github.com/shopspring/decimal"

// PriceCheckResponse is served by the public price check endpoint, cached in
// redis per barcode.
type PriceCheckResponse struct {
	Name           string          `json:"name"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	StockAvailable decimal.Decimal `json:"stock_available"`
	IsService      bool            `json:"is_service"`
}
