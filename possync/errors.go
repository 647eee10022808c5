package possync

import (
	"errors"
	"net/http"
)

// AppError is a stable error code + message surfaced to callers.
// Precondition and authorization failures reject the whole call with one of
// these; per-record failures never do, they end up in the SyncResult instead.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code string, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

var (
	ErrMissingAPIKey      = NewAppError("MISSING_API_KEY", "API key is required", http.StatusBadRequest)
	ErrInvalidAPIKey      = NewAppError("INVALID_API_KEY", "Invalid API key", http.StatusUnauthorized)
	ErrInactiveRestaurant = NewAppError("INACTIVE_RESTAURANT", "Restaurant is not active", http.StatusUnauthorized)

	ErrEmptyBatch    = NewAppError("EMPTY_BATCH", "Record list is required", http.StatusBadRequest)
	ErrBatchTooLarge = NewAppError("BATCH_TOO_LARGE", "Maximum batch size exceeded", http.StatusBadRequest)

	ErrWindowNotConfigured = NewAppError("INVALID_CONFIGURATION", "Opening and closing times are not configured", http.StatusBadRequest)

	ErrNoRestaurantSelected    = NewAppError("NO_RESTAURANT_SELECTED", "No restaurant selected or associated with user", http.StatusBadRequest)
	ErrRestaurantNotFound      = NewAppError("RESTAURANT_NOT_FOUND", "Restaurant not found", http.StatusBadRequest)
	ErrRestaurantNotAssociated = NewAppError("RESTAURANT_NOT_ASSOCIATED", "Restaurant is not associated with user", http.StatusForbidden)
)

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
