// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}

// ConfirmRequired signals the confirm-then-override stock workflow: the add
// was not applied and must be re-sent with confirm=true to proceed.
type ConfirmRequired struct {
	Detail          string `json:"detail"`
	ConfirmRequired bool   `json:"confirm_required"`
}

func NewConfirmRequired(msg string) *ConfirmRequired {
	return &ConfirmRequired{Detail: msg, ConfirmRequired: true}
}

// PriceRequired signals an open-price product: the add must be re-sent with
// an explicit unit price.
type PriceRequired struct {
	Detail        string `json:"detail"`
	PriceRequired bool   `json:"price_required"`
}

func NewPriceRequired(msg string) *PriceRequired {
	return &PriceRequired{Detail: msg, PriceRequired: true}
}
