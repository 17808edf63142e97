package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeRateLimit    ErrorType = "RATE_LIMIT"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

// ErrorCode is the stable machine-readable code carried alongside the human
// message. Codes are grouped by range: AUTH_1xxx authentication, USER_2xxx
// user accounts, VALIDATION_3xxx input validation, AUTHZ_4xxx authorization,
// RATE_5xxx admission control, INTERNAL_9xxx everything we never show.
type ErrorCode string

const (
	ErrCodeInvalidCredentials ErrorCode = "AUTH_1001"
	ErrCodeTokenExpired       ErrorCode = "AUTH_1002"
	ErrCodeTokenInvalid       ErrorCode = "AUTH_1003"
	ErrCodeTokenMissing       ErrorCode = "AUTH_1004"

	ErrCodeUserNotFound   ErrorCode = "USER_2001"
	ErrCodeUsernameExists ErrorCode = "USER_2002"
	ErrCodeEmailExists    ErrorCode = "USER_2003"
	ErrCodeUserCreation   ErrorCode = "USER_2004"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_3000"
	ErrCodePasswordWeak     ErrorCode = "VALIDATION_3001"
	ErrCodeUsernameInvalid  ErrorCode = "VALIDATION_3002"
	ErrCodeEmailInvalid     ErrorCode = "VALIDATION_3003"

	ErrCodeNoDepartment ErrorCode = "AUTHZ_4001"
	ErrCodeNoAccess     ErrorCode = "AUTHZ_4002"

	ErrCodeRateLimitExceeded ErrorCode = "RATE_5001"

	ErrCodeInternal ErrorCode = "INTERNAL_9001"
	ErrCodeDatabase ErrorCode = "INTERNAL_9002"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewRateLimitError carries the retry-after hint so the transport layer can
// surface it as a Retry-After header.
func NewRateLimitError(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Code:       ErrCodeRateLimitExceeded,
		Message:    message,
		StatusCode: http.StatusTooManyRequests,
		Details:    map[string]int{"retry_after_seconds": retryAfterSeconds},
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid username or password", ErrCodeInvalidCredentials)
	ErrTokenExpired       = NewUnauthorizedError("Access token has expired", ErrCodeTokenExpired)
	ErrInvalidToken       = NewUnauthorizedError("Invalid access token", ErrCodeTokenInvalid)
	ErrMissingToken       = NewUnauthorizedError("Missing authorization token", ErrCodeTokenMissing)
	ErrNoDepartment       = NewForbiddenError("User has no assigned department", ErrCodeNoDepartment)
	ErrNoAccess           = NewForbiddenError("Your department is not authorized for this resource", ErrCodeNoAccess)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
