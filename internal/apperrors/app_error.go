package apperrors

import "net/http"

// AppError is an error carrying an HTTP status code and a client-safe message.
// Handlers that build responses directly (the OAuth flow) use it instead of the
// sentinel errors above.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, cause: cause}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Message: message}
}
