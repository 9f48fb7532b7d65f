package utils

import (
	"errors"
	"fmt"
)

// AppError application error structure
type AppError struct {
	Code    ResponseCode `json:"code"`
	Message string       `json:"message"`
	Err     error        `json:"-"`
}

// Error implement error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code: %d, message: %s, error: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

// Unwrap implement errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError create new application error
func NewError(code ResponseCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError wrap an underlying error
func WrapError(err error, code ResponseCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Predefined errors. These map the lifecycle failure taxonomy:
// not-found, illegal state-machine moves, balance conflicts and
// duplicate signals are client-distinguishable; everything else is
// an internal failure.
var (
	ErrInvalidParam = NewError(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized = NewError(CodeUnauthorized, "unauthorized")
	ErrForbidden    = NewError(CodeForbidden, "insufficient permissions")

	ErrUserNotFound    = NewError(CodeUserNotFound, "user not found")
	ErrProductNotFound = NewError(CodeProductNotFound, "product not found")
	ErrOrderNotFound   = NewError(CodeOrderNotFound, "order not found")
	ErrPostNotFound    = NewError(CodePostNotFound, "post not found")

	ErrCartEmpty          = NewError(CodeCartEmpty, "cart is empty")
	ErrProductUnavailable = NewError(CodeProductUnavailable, "product unavailable")
	ErrInsufficientPoints = NewError(CodeInsufficientPoints, "insufficient reward points")
	ErrInvalidTransition  = NewError(CodeInvalidTransition, "invalid order state transition")
	ErrAlreadyProcessed   = NewError(CodeAlreadyProcessed, "order already processed")

	ErrInternalError = NewError(CodeInternalError, "internal server error")
	ErrDatabaseError = NewError(CodeDatabaseError, "database error")
)

// AsAppError check if err carries an application error
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetErrorCode get error code, defaulting to internal error
func GetErrorCode(err error) ResponseCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// GetErrorMessage get user-facing error message
func GetErrorMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
