package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// С цепочкой ошибок
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Вспомогательные методы
func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{
		Code:     e.Code,
		Message:  e.Message,
		Details:  details,
		Err:      e.Err,
		HTTPCode: e.HTTPCode,
	}
}

// Для маршалинга в JSON
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Предопределенные ошибки
var (
	// Аутентификация
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Пользователи
	ErrUserNotFound    = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrWeakPassword    = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole = New(CodeInvalidUserRole, "Role must be talent or director", http.StatusBadRequest)

	// Регистрация. Email деактивированного аккаунта заблокирован навсегда -
	// это отдельный исход, а не обычный конфликт уникальности.
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "User already exists", http.StatusConflict)
	ErrEmailLocked        = New(CodeEmailLocked, "This account was deleted. Please sign up using a different email.", http.StatusConflict)

	// Доступ
	ErrNotAuthorized = New(CodeForbidden, "Access denied", http.StatusForbidden)

	// Кастинги
	ErrCastingNotFound    = New(CodeCastingNotFound, "Casting not found or no longer available", http.StatusNotFound)
	ErrCastingDeleted     = New(CodeInvalidState, "Cannot modify a deleted casting", http.StatusBadRequest)
	ErrCastingUnavailable = New(CodeCastingUnavailable, "Casting is no longer available", http.StatusGone)

	// Заявки
	ErrApplicationNotFound   = New(CodeApplicationNotFound, "Application not found", http.StatusNotFound)
	ErrAlreadyApplied        = New(CodeAlreadyApplied, "You have already applied for this casting", http.StatusConflict)
	ErrApplicationReviewed   = New(CodeInvalidState, "Cannot edit application after it has been reviewed", http.StatusBadRequest)
	ErrApplicationNotPending = New(CodeInvalidState, "Only pending applications can be withdrawn", http.StatusBadRequest)
	ErrInvalidStatusValue    = New(CodeInvalidStatusValue, "Status must be shortlisted or rejected", http.StatusBadRequest)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Функции-помощники для создания ошибок с деталями
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "Database operation failed", http.StatusInternalServerError)
}

// Функции-помощники для создания стандартных ошибок
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
