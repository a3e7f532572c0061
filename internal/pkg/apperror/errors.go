package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnavailable  ErrorCode = "SERVICE_UNAVAILABLE"
)

// FieldError описывает ошибку конкретного поля запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Fields     []FieldError
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation создаёт ошибку валидации со списком полей.
func Validation(fields []FieldError) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    MsgValidationFailed,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// BadRequest создаёт ошибку 400 с произвольным сообщением.
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message)
}

// NotFound создаёт ошибку 404 с произвольным сообщением.
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

// Internal оборачивает внутреннюю ошибку; детали клиенту не отдаются.
func Internal(err error) *AppError {
	return Wrap(err, ErrCodeInternal, MsgInternal)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

// IsInternal сообщает, что ошибка не является ошибкой клиента.
func IsInternal(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return true
	}
	return appErr.HTTPStatus >= http.StatusInternalServerError
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

// Тексты сообщений, которые видит клиент.
const (
	MsgValidationFailed   = "Validation failed"
	MsgInternal           = "Internal server error"
	MsgNoTokenProvided    = "No token provided"
	MsgInvalidToken       = "Invalid token"
	MsgInvalidCredentials = "Invalid credentials"
	MsgCredentialsMissing = "Email and password required"
)

var (
	ErrPortfolioItemNotFound  = New(ErrCodeNotFound, "Portfolio item not found")
	ErrContactInquiryNotFound = New(ErrCodeNotFound, "Contact inquiry not found")
	ErrMediaFileNotFound      = New(ErrCodeNotFound, "Media file not found")
	ErrNoTokenProvided        = New(ErrCodeUnauthorized, MsgNoTokenProvided)
	ErrInvalidToken           = New(ErrCodeUnauthorized, MsgInvalidToken)
	ErrInvalidCredentials     = New(ErrCodeUnauthorized, MsgInvalidCredentials)
	ErrCredentialsMissing     = New(ErrCodeBadRequest, MsgCredentialsMissing)
)
