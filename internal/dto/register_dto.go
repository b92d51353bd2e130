package dto

import "github.com/shopspring/decimal"

type OpenRegisterRequest struct {
	RegisterID   int             `json:"register_id"   validate:"required,min=1"`
	OpeningFloat decimal.Decimal `json:"opening_float" validate:"min=0"`
}

type RegisterSessionResponse struct {
	ID           string          `json:"id"`
	RegisterID   int             `json:"register_id"`
	OperatorID   string          `json:"operator_id"`
	OpeningFloat decimal.Decimal `json:"opening_float"`
	Status       string          `json:"status"`
	OpenedAt     string          `json:"opened_at"`
	ClosedAt     *string         `json:"closed_at,omitempty"`
}
