package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeMissingCustomer  = "MISSING_CUSTOMER"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodeUnknownProduct   = "UNKNOWN_PRODUCT"
	ErrCodeInvalidPromoCode = "INVALID_PROMO_CODE"
	ErrCodeSessionFailed    = "SESSION_CREATION_FAILED"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code alongside the message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "Cart must contain at least one item")
	ErrMissingCustomer  = NewDomainError(ErrCodeMissingCustomer, "Customer email and name are required")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPrice     = NewDomainError(ErrCodeInvalidPrice, "Unit price cannot be negative")
	ErrUnknownProduct   = NewDomainError(ErrCodeUnknownProduct, "Cart contains a product that does not exist")
	ErrInvalidPromoCode = NewDomainError(ErrCodeInvalidPromoCode, "Promo code is not recognised")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
)
